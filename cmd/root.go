// Package cmd contains all Cobra commands for ragask.
//
// The root command launches the TUI directly. Subcommands reuse the same
// configuration, log file and backend client for one-shot use from scripts.
package cmd

import (
	"github.com/DachengChen/ragask/applog"
	"github.com/DachengChen/ragask/client"
	"github.com/DachengChen/ragask/config"
	"github.com/DachengChen/ragask/form"
	"github.com/DachengChen/ragask/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runtime is what every command needs once flags are parsed.
type runtime struct {
	cfg    *config.Config
	log    *applog.Logger
	client *client.Client
}

type rootFlags struct {
	configPath string
	backend    string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	rt := &runtime{}

	root := &cobra.Command{
		Use:   "ragask",
		Short: "Ask questions to a RAG backend from the terminal",
		Long: `ragask is a terminal client for a question-answering backend:
  • Interactive question form (type, press Enter, read the answer)
  • One-shot 'ask' for scripts
  • Document ingest and scraping jobs

Run 'ragask' to start the interactive form.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.setup(flags)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return rt.close()
		},
		// Running with no subcommand launches the TUI.
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := rt.newController()
			rt.log.Event("startup", "tui started", zap.String("backend", rt.client.Origin()))
			return tui.Start(tui.NewApp(ctrl, rt.client, rt.client.Origin(), rt.log.Logger))
		},
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default ~/.ragask/config.yaml)")
	root.PersistentFlags().StringVar(&flags.backend, "backend", "", "backend origin, e.g. http://localhost:8000")

	root.AddCommand(
		newAskCmd(rt),
		newPingCmd(rt),
		newIngestCmd(rt),
		newScrapeCmd(rt),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func (rt *runtime) setup(flags rootFlags) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	if flags.backend != "" {
		cfg.Backend.URL = flags.backend
	}

	log, err := applog.Open(cfg.Log)
	if err != nil {
		return err
	}

	c, err := client.New(cfg.Backend.URL, client.WithLogger(log.Named("client")))
	if err != nil {
		log.Close() //nolint:errcheck
		return err
	}

	rt.cfg = cfg
	rt.log = log
	rt.client = c
	return nil
}

func (rt *runtime) close() error {
	if rt.log == nil {
		return nil
	}
	return rt.log.Close()
}

// newController wires a form controller to the backend and logs every
// state transition.
func (rt *runtime) newController() *form.Controller {
	formLog := rt.log.Named("form")
	return form.NewController(rt.client,
		form.WithLogger(formLog),
		form.WithObserver(func(prev, next form.State) {
			formLog.Debug("state change", zap.String("from", prev.Name()), zap.String("to", next.Name()))
		}),
	)
}
