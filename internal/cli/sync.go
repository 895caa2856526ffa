package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/domscan/internal/classify"
	"github.com/aalvaropc/domscan/internal/infra/reportstore"
	"github.com/aalvaropc/domscan/internal/usecase"
)

func syncCmd(g *globalFlags) *cobra.Command {
	var format string
	var save bool

	cmd := &cobra.Command{
		Use:   "sync <domain>",
		Short: "Crawl a registered domain and show its resources by type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			app, cleanup, err := loadApp(cmd, *g)
			if err != nil {
				return err
			}
			defer cleanup()

			opts := []usecase.SyncOption{usecase.WithSyncLogger(app.log)}
			if save {
				store := reportstore.NewJSONStore(app.root, app.cfg, reportstore.WithIndex(true))
				opts = append(opts, usecase.WithReportStore(store))
			}
			uc := usecase.NewSyncDomain(app.client, opts...)

			stop := startSpinner(cmd.ErrOrStderr(), "syncing "+args[0])
			report, err := uc.Execute(cmd.Context(), args[0])
			stop()
			if err != nil && report.Domain == "" {
				return err
			}

			out := resultOutput{
				Target:       report.Domain,
				CompletedAt:  &report.CompletedAt,
				InvalidLinks: report.InvalidLinks,
			}
			if perr := printResult(cmd.OutOrStdout(), out, classify.Classify(report.Records), format); perr != nil {
				return perr
			}
			if err != nil {
				return fmt.Errorf("report not saved: %w", err)
			}
			if report.SavedAs != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "saved report %s\n", report.SavedAs)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	cmd.Flags().BoolVar(&save, "save", false, "Save the report under the reports directory")
	return cmd
}

func scanCmd(g *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "scan <url>",
		Short: "Scan a single page and show its resources by type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			app, cleanup, err := loadApp(cmd, *g)
			if err != nil {
				return err
			}
			defer cleanup()

			stop := startSpinner(cmd.ErrOrStderr(), "scanning "+args[0])
			view, err := usecase.NewScanURL(app.client).Execute(cmd.Context(), args[0])
			stop()
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), resultOutput{Target: args[0]}, view, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return cmd
}

func discoverCmd(g *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "discover <sitemap-url>",
		Short: "List candidate domains from a sitemap and flag the registered ones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			app, cleanup, err := loadApp(cmd, *g)
			if err != nil {
				return err
			}
			defer cleanup()

			stop := startSpinner(cmd.ErrOrStderr(), "discovering")
			defer stop()

			registered, err := app.client.ListDomains(cmd.Context())
			if err != nil {
				return err
			}
			found, err := usecase.NewDiscoverDomains(app.client).Execute(cmd.Context(), args[0], registered)
			stop()
			if err != nil {
				return err
			}
			return printDiscovered(cmd.OutOrStdout(), found, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return cmd
}
