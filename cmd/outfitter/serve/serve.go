// Package servecmder provides the serve command with subcommands for running services.
package servecmder

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/outfitterco/outfitter/api"
	"github.com/outfitterco/outfitter/api/mcp"
	"github.com/outfitterco/outfitter/cmd/outfitter/clients"
	apicmder "github.com/outfitterco/outfitter/cmd/outfitter/serve/api"
	mcpcmder "github.com/outfitterco/outfitter/cmd/outfitter/serve/mcp"
	"github.com/outfitterco/outfitter/pkg/config"
	"github.com/outfitterco/outfitter/pkg/logger"
)

type serveCommander struct {
	apiListen string
	mcpListen string
	debug     bool

	cfg    *config.Config
	logger *zap.Logger
}

const serveLongDesc string = `Run outfitter services.

Use subcommands to run individual services or all services together:
  outfitter serve          Run both the HTTP API and the MCP server
  outfitter serve api      Run just the HTTP API server
  outfitter serve mcp      Run just the MCP server`

const serveShortDesc string = "Run outfitter services"

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			v, err := config.InitViper(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			fs := serveFlagSet()
			config.BindRegisteredFlags(v, cmd, fs, []string{config.FlagAPIListen, config.FlagMCPListen})

			cmder.cfg = config.ConfigFromViper(v)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The debug flag lives on the root command; standalone
			// execution runs without it.
			cmder.debug, _ = cmd.Flags().GetBool("debug")

			return cmder.run()
		},
	}

	fs := serveFlagSet()
	config.AddStringFlag(cmd, fs, config.FlagAPIListen, &cmder.apiListen)
	config.AddStringFlag(cmd, fs, config.FlagMCPListen, &cmder.mcpListen)

	cmd.AddCommand(apicmder.NewAPICmd())
	cmd.AddCommand(mcpcmder.NewMCPCmd())

	return cmd
}

func serveFlagSet() config.FlagSet {
	return config.FlagSet{
		config.FlagAPIListen: {
			Name:        "api-listen",
			Shorthand:   "a",
			ViperKey:    "api.listen",
			Description: "Address for the HTTP API server to listen on",
		},
		config.FlagMCPListen: {
			Name:        "mcp-listen",
			Shorthand:   "m",
			ViperKey:    "mcp.listen",
			Description: "Address for the MCP server to listen on",
		},
	}
}

func (c *serveCommander) run() error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	searcher, index, err := clients.NewSearcher(c.cfg, c.logger)
	if err != nil {
		return err
	}
	defer func() { _ = index.Close() }()

	// The agent is optional: without an LLM key the API still serves search.
	var assistant api.Assistant
	agent, err := clients.NewAgent(c.cfg, searcher, c.logger)
	if err != nil {
		c.logger.Warn("chat disabled", zap.Error(err))
	} else {
		assistant = agent
	}

	apiServer := api.NewServer(api.Config{ListenAddr: c.cfg.API.Listen}, searcher, assistant, c.logger)

	mcpServer, err := mcp.NewServer(mcp.Config{
		Searcher: searcher,
		Logger:   c.logger,
	})
	if err != nil {
		return fmt.Errorf("creating MCP server: %w", err)
	}

	// Channel to capture errors from goroutines
	errChan := make(chan error, 2)

	go func() {
		if err := apiServer.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	go func() {
		c.logger.Info("starting MCP server",
			zap.String("listen", c.cfg.MCP.Listen),
		)
		if err := http.ListenAndServe(c.cfg.MCP.Listen, mcpServer.Handler()); err != nil {
			errChan <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		return apiServer.Shutdown()
	}
}
