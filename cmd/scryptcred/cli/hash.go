package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/fhilgers/scryptcred/internal/credential"
	"github.com/fhilgers/scryptcred/internal/kdf"
)

func newHashCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "hash",
		Short: "Read a passphrase and print its SCRYPT credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := readPassphrase(cmd)
			if err != nil {
				return err
			}
			defer kdf.Wipe(pw)

			s, err := credential.Hash(pw, app.config.Params())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
			return errors.WithStack(err)
		},
	}
}

func newDecodeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <credential>",
		Short: "Print the parameters of a SCRYPT credential",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := credential.Decode(args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "N=%d r=%d p=%d salt=%d bytes key=%d bytes memory=%d bytes\n",
				c.Params.N, c.Params.R, c.Params.P, len(c.Salt), len(c.Key), c.Params.Memory())
			return errors.WithStack(err)
		},
	}
}
