package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/domscan/internal/buildinfo"
	"github.com/aalvaropc/domscan/internal/ui/tui"
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

type globalFlags struct {
	debug      bool
	verbose    bool
	configPath string
	apiURL     string
}

func newRootCmd() *cobra.Command {
	var g globalFlags

	cmd := &cobra.Command{
		Use:          "domscan",
		Short:        "domscan: manage crawl domains and inspect scanned resources",
		Version:      buildinfo.String(),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(cmd, g)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.Run(tui.Deps{
				Domains: app.client,
				Scanner: app.client,
				Logger:  app.log,
				BaseURL: app.cfg.API.BaseURL,
				Debug:   g.debug || app.cfg.Logging.Debug,
			})
		},
	}

	pf := cmd.PersistentFlags()
	pf.BoolVar(&g.debug, "debug", false, "enable debug logging to .domscan/logs/domscan.log")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "also log to stderr")
	pf.StringVar(&g.configPath, "config", "", "path to domscan.yaml (default: search upward from the working directory)")
	pf.StringVar(&g.apiURL, "api-url", "", "remote API base URL (overrides config and "+envAPIURLHint+")")

	cmd.AddCommand(
		initCmd(),
		domainsCmd(&g),
		syncCmd(&g),
		scanCmd(&g),
		discoverCmd(&g),
		serveFakeCmd(&g),
		versionCmd(),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}
