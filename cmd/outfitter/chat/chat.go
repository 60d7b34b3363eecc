// Package chatcmder provides the chat command: an interactive shopping
// assistant session in the terminal.
package chatcmder

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/outfitterco/outfitter/cmd/outfitter/clients"
	"github.com/outfitterco/outfitter/pkg/cliui"
	"github.com/outfitterco/outfitter/pkg/config"
	"github.com/outfitterco/outfitter/pkg/llm"
	"github.com/outfitterco/outfitter/pkg/logger"
)

var (
	userPrompt      = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true).Render("you> ")
	assistantPrompt = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("assistant> ")
)

const chatLongDesc string = `Start an interactive shopping assistant session.

The assistant answers questions about the product catalog, searching it
when needed. Conversation history is kept for the duration of the session
and discarded on exit.

Requires OPENAI_API_KEY in the environment and a seeded vector index
(see "outfitter seed").

Examples:
  outfitter chat
  outfitter chat --model gpt-4o
  outfitter chat --instructions ./stylist.md`

const chatShortDesc string = "Interactive shopping assistant"

type chatCommander struct {
	model        string
	instructions string
	debug        bool

	cfg    *config.Config
	logger *zap.Logger
}

func NewChatCmd() *cobra.Command {
	cmder := &chatCommander{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: chatShortDesc,
		Long:  chatLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			v, err := config.InitViper(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			fs := chatFlagSet()
			config.BindRegisteredFlags(v, cmd, fs, []string{config.FlagLLMModel, config.FlagInstructions})

			cmder.cfg = config.ConfigFromViper(v)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The debug flag lives on the root command; standalone
			// execution runs without it.
			cmder.debug, _ = cmd.Flags().GetBool("debug")

			return cmder.run(cmd.Context())
		},
	}

	fs := chatFlagSet()
	config.AddStringFlag(cmd, fs, config.FlagLLMModel, &cmder.model)
	config.AddStringFlag(cmd, fs, config.FlagInstructions, &cmder.instructions)

	return cmd
}

func chatFlagSet() config.FlagSet {
	return config.FlagSet{
		config.FlagLLMModel: {
			Name:        "model",
			Shorthand:   "m",
			ViperKey:    "llm.model",
			Description: "Chat model name",
		},
		config.FlagInstructions: {
			Name:        "instructions",
			ViperKey:    "agent.instructions_file",
			Description: "Path to a custom system instructions file",
		},
	}
}

func (c *chatCommander) run(ctx context.Context) error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	searcher, index, err := clients.NewSearcher(c.cfg, c.logger)
	if err != nil {
		return err
	}
	defer func() { _ = index.Close() }()

	assistant, err := clients.NewAgent(c.cfg, searcher, c.logger)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  %s %s\n",
		cliui.KeyStyle.Render("Model:"),
		cliui.NameStyle.Render(c.cfg.LLM.Model),
	)
	fmt.Printf("  %s\n\n", cliui.DimStyle.Render("Type your message and press Enter. /exit or Ctrl+D to quit."))

	var history []llm.Message
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(userPrompt)
		if !scanner.Scan() {
			// EOF or error
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "/exit" {
			break
		}

		reply, err := assistant.Run(ctx, input, history)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  %s %v\n", cliui.FailMark, err)
			c.logger.Debug("assistant turn failed", zap.Error(err))
			continue
		}

		history = append(history,
			llm.Message{Role: llm.RoleUser, Content: input},
			llm.Message{Role: llm.RoleAssistant, Content: reply},
		)

		rendered, err := cliui.RenderMarkdown(reply)
		if err != nil {
			rendered = reply
		}
		fmt.Printf("%s%s\n", assistantPrompt, strings.TrimRight(rendered, "\n"))
		fmt.Println()
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	fmt.Println()
	return nil
}
