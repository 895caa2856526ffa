package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/domscan/internal/infra/fakeapi"
	"github.com/aalvaropc/domscan/internal/infra/logger"
)

func serveFakeCmd(g *globalFlags) *cobra.Command {
	var addr string
	var latency time.Duration
	var seed []string

	cmd := &cobra.Command{
		Use:   "serve-fake",
		Short: "Serve an in-memory crawl API for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logger.Console(cmd.ErrOrStderr(), g.debug)

			fake := fakeapi.New(
				fakeapi.WithDomains(seed...),
				fakeapi.WithLatency(latency),
				fakeapi.WithLogger(log),
			)

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", addr, err)
			}
			return serve(cmd.Context(), ln, fake.Routes(), func(url string) {
				fmt.Fprintf(cmd.OutOrStdout(), "fake API listening on %s\n", url)
				log.Info("fakeapi.listening", "url", url, "domains", len(seed))
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "Listen address")
	cmd.Flags().DurationVar(&latency, "latency", 0, "Artificial delay added to every response")
	cmd.Flags().StringSliceVar(&seed, "seed", []string{"example.com", "shop.example.org"}, "Domains registered at startup")
	return cmd
}

// serve runs h on ln until ctx is done, then shuts down gracefully.
func serve(ctx context.Context, ln net.Listener, h http.Handler, ready func(url string)) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	if ready != nil {
		ready("http://" + ln.Addr().String())
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
