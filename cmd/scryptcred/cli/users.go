package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/fhilgers/scryptcred/internal/constants"
	"github.com/fhilgers/scryptcred/internal/kdf"
	"github.com/fhilgers/scryptcred/internal/users"
)

func newUsersCmd(app *App) *cobra.Command {
	var username, root, file string

	c := &cobra.Command{
		Use:   "users",
		Short: "Write the admin users.json with a freshly hashed passphrase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := readPassphrase(cmd)
			if err != nil {
				return err
			}
			defer kdf.Wipe(pw)

			u, err := users.New(username, pw, app.config.Params())
			if err != nil {
				return err
			}

			if err = users.WriteFile(app.Fs, root, file, u); err != nil {
				return err
			}

			app.logger.Info("wrote users file",
				slog.String("username", u.Username),
				slog.String("path", users.Path(root, file)))

			return nil
		},
	}

	c.Flags().StringVarP(&username, "username", "u", "admin", "administrator user name")
	c.Flags().StringVar(&root, "root", "/", "install root the file path is relative to")
	c.Flags().StringVarP(&file, "file", "f", constants.UsersConfFile, "users file path")

	return c
}
