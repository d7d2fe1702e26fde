package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fhilgers/scryptcred/internal/config"
	"github.com/fhilgers/scryptcred/internal/constants"
)

type Flags struct {
	ConfigFile  string
	Verbose     bool
	N           int
	R           int
	P           int
	KeyLen      int
	Concurrency int
}

// App carries what every subcommand shares. Fs is where config files are
// read from and users.json is written to.
type App struct {
	Fs    afero.Fs
	Flags Flags

	config config.Config
	logger *slog.Logger
}

func NewRootCmd(app *App) *cobra.Command {
	if app.Fs == nil {
		app.Fs = afero.NewOsFs()
	}

	c := &cobra.Command{
		Use:           "scryptcred",
		Short:         "Hash administrator passphrases into SCRYPT credential strings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
	}

	flags := c.PersistentFlags()
	flags.StringVarP(&app.Flags.ConfigFile, "config", "c", "", "JSON file with scrypt parameters")
	flags.BoolVarP(&app.Flags.Verbose, "verbose", "v", false, "log at debug level")
	flags.IntVarP(&app.Flags.N, "cost", "N", constants.ScryptCostParam, "scrypt CPU/memory cost (power of two)")
	flags.IntVarP(&app.Flags.R, "block-size", "r", constants.ScryptBlockSize, "scrypt block size factor")
	flags.IntVarP(&app.Flags.P, "parallelism", "p", constants.ScryptParallelism, "scrypt parallelization factor")
	flags.IntVar(&app.Flags.KeyLen, "key-len", constants.ScryptKeyLen, "derived key length in bytes")
	flags.IntVar(&app.Flags.Concurrency, "concurrency", 0, "simultaneous derivations when provisioning (default GOMAXPROCS)")

	c.AddCommand(
		newHashCmd(app),
		newDecodeCmd(app),
		newUsersCmd(app),
		newProvisionCmd(app),
	)

	return c
}

func (app *App) setup(cmd *cobra.Command) error {
	lvl := slog.LevelInfo
	if app.Flags.Verbose {
		lvl = slog.LevelDebug
	}
	app.logger = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: lvl,
	}))
	slog.SetDefault(app.logger)

	app.config = config.New()
	if app.Flags.ConfigFile != "" {
		f, err := app.Fs.Open(app.Flags.ConfigFile)
		if err != nil {
			return errors.Wrap(err, "opening config")
		}
		defer f.Close()

		if app.config, err = config.Unmarshal(f); err != nil {
			return err
		}
	}

	flags := cmd.Flags()
	for name, dst := range map[string]*int{
		"cost":        &app.config.N,
		"block-size":  &app.config.R,
		"parallelism": &app.config.P,
		"key-len":     &app.config.KeyLen,
		"concurrency": &app.config.Concurrency,
	} {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetInt(name)
		if err != nil {
			return errors.WithStack(err)
		}
		*dst = v
	}

	return app.config.Valid()
}

// readPassphrase prompts without echo when stdin is a terminal and otherwise
// reads a single line.
func readPassphrase(cmd *cobra.Command) ([]byte, error) {
	in := cmd.InOrStdin()

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Passphrase: ")
		pw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return nil, errors.Wrap(err, "reading passphrase")
		}
		if len(pw) == 0 {
			return nil, errors.New("empty passphrase")
		}
		return pw, nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "reading passphrase")
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return nil, errors.New("empty passphrase")
	}

	return []byte(line), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", constants.UsersConfIndent)
	enc.SetEscapeHTML(false)
	return errors.WithStack(enc.Encode(v))
}
