package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/domscan/internal/domain"
	"github.com/aalvaropc/domscan/internal/infra/apiclient"
	"github.com/aalvaropc/domscan/internal/infra/config"
	"github.com/aalvaropc/domscan/internal/infra/httpclient"
	"github.com/aalvaropc/domscan/internal/infra/logger"
)

const envAPIURLHint = config.EnvAPIURL

// appCtx is what every command needs once configuration is resolved.
type appCtx struct {
	root   string
	cfg    domain.Config
	log    *slog.Logger
	client *apiclient.Client
}

// loadApp resolves configuration, sets up logging and builds the API client.
// The returned cleanup must always be called.
func loadApp(cmd *cobra.Command, g globalFlags) (*appCtx, func(), error) {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}

	res, err := config.Resolve(config.Options{
		Path:     g.configPath,
		StartDir: wd,
		APIURL:   g.apiURL,
	})
	if err != nil {
		return nil, func() {}, err
	}

	debug := g.debug || res.Config.Logging.Debug
	cleanup := func() {}
	if c, lerr := logger.Setup(logger.Config{Root: res.Root, Debug: debug}); lerr == nil && c != nil {
		cleanup = func() { _ = c() }
	}

	log := logger.L()
	if g.verbose {
		log = logger.Tee(log, logger.Console(cmd.ErrOrStderr(), debug))
	}
	log.Info("cli.start",
		"command", cmd.CommandPath(),
		"config", res.File,
		"api", res.Config.API.BaseURL,
	)

	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = res.Config.API.Timeout
	exec := httpclient.NewExecutor(
		httpclient.WithClient(httpclient.New(httpCfg)),
		httpclient.WithTimeout(res.Config.API.Timeout),
	)

	client := apiclient.New(res.Config.API.BaseURL,
		apiclient.WithExecutor(exec),
		apiclient.WithLogger(log),
	)

	return &appCtx{
		root:   res.Root,
		cfg:    res.Config,
		log:    log,
		client: client,
	}, cleanup, nil
}
