package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/illarion/credvault/internal/config"
	"github.com/illarion/credvault/internal/core"
	"github.com/illarion/credvault/internal/logging"
	"github.com/illarion/credvault/internal/prompt"
	"github.com/spf13/cobra"
)

// app carries what every command shares. It is filled in by the root
// command's PersistentPreRunE.
type app struct {
	configPath string
	dir        string
	file       string
	logLevel   string
	noKeyring  bool

	base   prompt.Provider // nil reads from the command's stdin
	cfg    *config.Config
	log    *slog.Logger
	prompt *credentialPrompt
}

// Execute runs the command line and returns the first error
func Execute(ctx context.Context) error {
	return NewRootCommand(nil).ExecuteContext(ctx)
}

// NewRootCommand builds the command tree. Prompts are answered by base, or
// by the terminal when base is nil.
func NewRootCommand(base prompt.Provider) *cobra.Command {
	a := &app{base: base}

	root := &cobra.Command{
		Use:           "credvault",
		Short:         "credvault - encrypted local credential store",
		Long:          "Stores username/password records in an encrypted file guarded by a master password and security questions.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to the YAML config file")
	root.PersistentFlags().StringVarP(&a.dir, "dir", "d", "", "vault directory")
	root.PersistentFlags().StringVarP(&a.file, "file", "f", "", "vault file name inside the directory")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&a.noKeyring, "no-keyring", false, "do not read or offer to save the master password in the OS keyring")

	root.AddCommand(
		newInitCommand(a),
		newAddCommand(a),
		newGetCommand(a),
		newListCommand(a),
		newRmCommand(a),
		newGenerateCommand(a),
		newQuestionsCommand(a),
		newResetCommand(a),
		newStatusCommand(a),
		newDiffCommand(a),
		newKeyringCommand(a),
	)

	return root
}

// setup loads configuration, applies flags and builds the logger and prompt
func (a *app) setup(cmd *cobra.Command) error {
	path := a.configPath
	if path == "" && a.dir != "" {
		candidate := filepath.Join(a.dir, config.FileName)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if a.dir != "" {
		cfg.Dir = a.dir
	}
	if a.file != "" {
		cfg.VaultFile = a.file
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.noKeyring {
		cfg.Keyring = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logging.New(cmd.ErrOrStderr(), level)

	base := a.base
	if base == nil {
		base = newTerminal(cmd.InOrStdin(), cmd.ErrOrStderr())
	}
	a.prompt = &credentialPrompt{
		base:        base,
		envPassword: os.Getenv(config.EnvPassword),
	}
	return nil
}

// openStore opens the configured vault, provisioning missing artifacts
func (a *app) openStore(opts ...core.Option) (*core.Store, error) {
	opts = append([]core.Option{core.WithLogger(a.log)}, opts...)
	s, err := core.New(a.cfg.Dir, a.cfg.VaultFile, a.prompt, opts...)
	if err != nil {
		return nil, err
	}

	if a.cfg.Keyring {
		if st, err := s.Status(context.Background()); err == nil && st.Meta != nil {
			a.prompt.vaultID = st.Meta.VaultID
		}
	}
	return s, nil
}

// inspectStore opens the configured vault without creating anything
func (a *app) inspectStore() (*core.Store, error) {
	return a.openStore(core.WithoutProvisioning())
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
