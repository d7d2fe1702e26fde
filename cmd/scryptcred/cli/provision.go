package cli

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/fhilgers/scryptcred/internal/kdf"
	"github.com/fhilgers/scryptcred/internal/provision"
)

type account struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func newProvisionCmd(app *App) *cobra.Command {
	var timeout time.Duration

	c := &cobra.Command{
		Use:   "provision",
		Short: "Hash a JSON array of {username, password} from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var accounts []account
			if err := json.NewDecoder(cmd.InOrStdin()).Decode(&accounts); err != nil {
				return errors.Wrap(err, "decoding accounts")
			}

			reqs := make([]provision.Request, len(accounts))
			for i, a := range accounts {
				if a.Username == "" || a.Password == "" {
					return errors.Errorf("account %d: username and password are required", i)
				}
				reqs[i] = provision.Request{Username: a.Username, Passphrase: []byte(a.Password)}
			}

			ctx := cmd.Context()
			if timeout > 0 {
				var cancel func()
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			p := provision.Provisioner{
				Params:      app.config.Params(),
				Concurrency: app.config.Concurrency,
				MaxMemory:   app.config.MaxMemory,
				Logger:      app.logger,
			}

			results, err := p.HashAll(ctx, reqs)
			if err != nil {
				// abandoned derivations may still be reading the passphrases
				return err
			}
			for _, r := range reqs {
				kdf.Wipe(r.Passphrase)
			}

			return writeJSON(cmd.OutOrStdout(), results)
		},
	}

	c.Flags().DurationVar(&timeout, "timeout", 0, "give up after this long (0 waits forever)")

	return c
}
