// Package configcmder provides the config command for managing persistent
// outfitter configuration stored in the .outfitter/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent outfitter configuration.

Configuration is stored as config.toml in the .outfitter/ directory and
provides default values for command flags. CLI flags always take precedence
over config file values. API keys (OPENAI_API_KEY, QDRANT_API_KEY) come from
the environment and are never written to the config file.

Keys use dotted notation matching the TOML section structure:
  catalog.path,
  vector_store.host, vector_store.port, vector_store.collection, vector_store.use_tls,
  embedding.provider, embedding.target, embedding.model, embedding.dimensions,
  llm.model, llm.base_url, llm.max_tokens, llm.temperature,
  api.listen, mcp.listen,
  agent.instructions_file, agent.max_turns

Use subcommands to get, set, or list configuration values:
  outfitter config set <key> <value>    Set a configuration value
  outfitter config get <key>            Get a configuration value
  outfitter config list                 List all configuration values

Examples:
  outfitter config set vector_store.host qdrant.internal
  outfitter config set embedding.model text-embedding-3-small
  outfitter config get llm.model
  outfitter config list`

const configShortDesc string = "Manage persistent outfitter configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
