package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/byxorna/shelf/pkg/app"
	"github.com/byxorna/shelf/pkg/config"
	"github.com/byxorna/shelf/pkg/db/fs"
	"github.com/byxorna/shelf/pkg/launch"
	"github.com/byxorna/shelf/pkg/logging"
	"github.com/byxorna/shelf/pkg/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type options struct {
	ConfigFile string
	Directory  string

	// launcher opens documents; tests swap it out
	launcher session.Launcher
}

// env is everything a command needs once configuration is loaded.
type env struct {
	cfg   *config.Config
	store *fs.Store
	log   zerolog.Logger

	closer io.Closer
}

func (e *env) Close() {
	if e.closer != nil {
		e.closer.Close()
	}
}

func (e *env) newSession() session.Session {
	return session.New(e.store)
}

func (o *options) setup() (*env, error) {
	cfg, err := config.Load(o.ConfigFile)
	if err != nil {
		return nil, err
	}
	if o.Directory != "" {
		cfg.Directory = o.Directory
	}

	log, closer, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	store, err := fs.NewStore(cfg.Directory, true, log)
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("unable to open %s: %w", cfg.Directory, err)
	}

	log.Debug().Str("directory", store.StoragePath()).Msg("store ready")
	return &env{cfg: cfg, store: store, log: log, closer: closer}, nil
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&options{launcher: launch.Default()})
}

func newRootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "shelf",
		Short: "Shelf files PDF and DOCX documents into themes",
		Long: `Shelf keeps documents in one folder per theme under a single root.
Run without arguments for the interactive screen.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup()
			if err != nil {
				return err
			}
			defer e.Close()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			changes, err := e.store.Watch(ctx)
			if err != nil {
				// live refresh is a nicety, run without it
				e.log.Warn().Err(err).Msg("unable to watch store")
				changes = nil
			}

			m, err := app.New(e.cfg, e.store, opts.launcher, changes, e.log)
			if err != nil {
				return err
			}

			p := tea.NewProgram(*m)
			return p.Start()
		},
	}

	root.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "~/.shelf.yaml", "configuration file")
	root.PersistentFlags().StringVarP(&opts.Directory, "directory", "d", "", "theme root, overrides the configuration")

	root.AddCommand(
		newThemeCmd(opts),
		newDocCmd(opts),
		newTreeCmd(opts),
		newNormalizeCmd(),
	)
	return root
}

func Execute() {
	err := NewRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
