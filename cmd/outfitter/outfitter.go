// Package outfittercmder
package outfittercmder

import (
	"github.com/spf13/cobra"

	chatcmder "github.com/outfitterco/outfitter/cmd/outfitter/chat"
	configcmder "github.com/outfitterco/outfitter/cmd/outfitter/config"
	searchcmder "github.com/outfitterco/outfitter/cmd/outfitter/search"
	seedcmder "github.com/outfitterco/outfitter/cmd/outfitter/seed"
	servecmder "github.com/outfitterco/outfitter/cmd/outfitter/serve"
	versioncmder "github.com/outfitterco/outfitter/cmd/outfitter/version"
)

const outfitterLongDesc string = `Outfitter is a conversational product search assistant.

Seed the catalog and search it:
  outfitter seed           Embed the catalog and load it into the vector store
  outfitter search         Search the catalog from the command line
  outfitter chat           Chat with the shopping assistant

Run services using:
  outfitter serve api      Run the HTTP API server
  outfitter serve mcp      Run the MCP server
  outfitter serve          Run both servers together`

const outfitterShortDesc string = "Outfitter - Conversational Product Search"

func NewOutfitterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outfitter",
		Short: outfitterShortDesc,
		Long:  outfitterLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override path to .outfitter/ config directory")

	// Add subcommands
	cmd.AddCommand(seedcmder.NewSeedCmd())
	cmd.AddCommand(searchcmder.NewSearchCmd())
	cmd.AddCommand(chatcmder.NewChatCmd())
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
