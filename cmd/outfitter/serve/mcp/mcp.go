// Package mcpcmder provides the MCP server cobra command.
package mcpcmder

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/outfitterco/outfitter/api/mcp"
	"github.com/outfitterco/outfitter/cmd/outfitter/clients"
	"github.com/outfitterco/outfitter/pkg/config"
	"github.com/outfitterco/outfitter/pkg/logger"
)

type mcpCommander struct {
	listen string
	debug  bool

	cfg    *config.Config
	logger *zap.Logger
}

const mcpLongDesc string = `Run the MCP server exposing product search as a tool.

External assistants connect over streamable HTTP and call the
search_products tool to query the catalog.`

const mcpShortDesc string = "Run the MCP server"

func NewMCPCmd() *cobra.Command {
	cmder := &mcpCommander{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: mcpShortDesc,
		Long:  mcpLongDesc,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			v, err := config.InitViper(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			fs := mcpFlagSet()
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

	fs := mcpFlagSet()
	config.AddStringFlag(cmd, fs, config.FlagListenStandalone, &cmder.listen)

	return cmd
}

func mcpFlagSet() config.FlagSet {
	return config.FlagSet{
		config.FlagListenStandalone: {
			Name:        "listen",
			Shorthand:   "l",
			ViperKey:    "mcp.listen",
			Description: "Address for the MCP server to listen on",
		},
	}
}

func (c *mcpCommander) run() error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	searcher, index, err := clients.NewSearcher(c.cfg, c.logger)
	if err != nil {
		return err
	}
	defer func() { _ = index.Close() }()

	server, err := mcp.NewServer(mcp.Config{
		Searcher: searcher,
		Logger:   c.logger,
	})
	if err != nil {
		return fmt.Errorf("creating MCP server: %w", err)
	}

	c.logger.Info("starting MCP server",
		zap.String("listen", c.cfg.MCP.Listen),
	)

	return http.ListenAndServe(c.cfg.MCP.Listen, server.Handler())
}
