// Package apicmder provides the HTTP API server cobra command.
package apicmder

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/outfitterco/outfitter/api"
	"github.com/outfitterco/outfitter/cmd/outfitter/clients"
	"github.com/outfitterco/outfitter/pkg/config"
	"github.com/outfitterco/outfitter/pkg/logger"
)

type apiCommander struct {
	listen string
	debug  bool

	cfg    *config.Config
	logger *zap.Logger
}

const apiLongDesc string = `Run the HTTP API server for product search and chat.

Endpoints:
  GET  /ping        Health check
  GET  /v1/search   Semantic product search with optional filters
  POST /v1/chat     One conversational assistant turn`

const apiShortDesc string = "Run the HTTP API server"

func NewAPICmd() *cobra.Command {
	cmder := &apiCommander{}

	cmd := &cobra.Command{
		Use:   "api",
		Short: apiShortDesc,
		Long:  apiLongDesc,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			v, err := config.InitViper(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			fs := apiFlagSet()
			config.BindRegisteredFlags(v, cmd, fs, []string{config.FlagListenStandalone})

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

	fs := apiFlagSet()
	config.AddStringFlag(cmd, fs, config.FlagListenStandalone, &cmder.listen)

	return cmd
}

func apiFlagSet() config.FlagSet {
	return config.FlagSet{
		config.FlagListenStandalone: {
			Name:        "listen",
			Shorthand:   "l",
			ViperKey:    "api.listen",
			Description: "Address for the API server to listen on",
		},
	}
}

func (c *apiCommander) run() error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	searcher, index, err := clients.NewSearcher(c.cfg, c.logger)
	if err != nil {
		return err
	}
	defer func() { _ = index.Close() }()

	var assistant api.Assistant
	agent, err := clients.NewAgent(c.cfg, searcher, c.logger)
	if err != nil {
		c.logger.Warn("chat disabled", zap.Error(err))
	} else {
		assistant = agent
	}

	server := api.NewServer(api.Config{ListenAddr: c.cfg.API.Listen}, searcher, assistant, c.logger)

	return server.Run()
}
