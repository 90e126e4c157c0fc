package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/themobileprof/llmgateway/internal/api"
	"github.com/themobileprof/llmgateway/pkg/llm"
)

type chatClient interface {
	Chat(ctx context.Context, providerID string, conv llm.Conversation, cfg llm.ProviderConfig) (string, error)
	SimpleChat(ctx context.Context, prompt, providerID string, cfg llm.ProviderConfig) (string, error)
	Providers() []llm.Provider
}

func callFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "provider",
			Aliases: []string{"p"},
			Value:   "openai",
			Usage:   "provider to call: openai or claude",
		},
		&cli.StringFlag{
			Name:    "model",
			Aliases: []string{"m"},
			Usage:   "model identifier (default: the provider's default model)",
		},
		&cli.FloatFlag{
			Name:    "temperature",
			Aliases: []string{"t"},
			Usage:   "sampling temperature in [0, 2] (default: 0.7)",
		},
		&cli.IntFlag{
			Name:  "max-tokens",
			Usage: "cap on output tokens",
		},
	}
}

func providerConfig(cmd *cli.Command) llm.ProviderConfig {
	cfg := llm.ProviderConfig{
		Model:     cmd.String("model"),
		MaxTokens: int(cmd.Int("max-tokens")),
	}
	if cmd.IsSet("temperature") {
		cfg.Temperature = llm.Float(cmd.Float("temperature"))
	}
	return cfg
}

func newApp(newClient func() (chatClient, error), out io.Writer) *cli.Command {
	answer := color.New(color.FgGreen)
	label := color.New(color.FgCyan, color.Bold)

	printAnswer := func(provider, text string) {
		label.Fprintf(out, "[%s] ", provider)
		answer.Fprintln(out, text)
	}

	return &cli.Command{
		Name:    "llmctl",
		Usage:   "Ask OpenAI or Claude from the command line",
		Version: api.Version,
		Commands: []*cli.Command{
			{
				Name:      "ask",
				Usage:     "Send a single prompt",
				ArgsUsage: "<prompt...>",
				Flags:     callFlags(),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					prompt := strings.Join(cmd.Args().Slice(), " ")
					if prompt == "" {
						return errors.New("a prompt is required")
					}
					client, err := newClient()
					if err != nil {
						return err
					}

					provider := cmd.String("provider")
					text, err := client.SimpleChat(ctx, prompt, provider, providerConfig(cmd))
					if err != nil {
						return fmt.Errorf("ask %s: %w", provider, err)
					}
					printAnswer(provider, text)
					return nil
				},
			},
			{
				Name:      "chat",
				Usage:     "Send a message with a system instruction",
				ArgsUsage: "<message...>",
				Flags: append(callFlags(), &cli.StringFlag{
					Name:    "system",
					Aliases: []string{"s"},
					Usage:   "system instruction",
				}),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					message := strings.Join(cmd.Args().Slice(), " ")
					if message == "" {
						return errors.New("a message is required")
					}
					client, err := newClient()
					if err != nil {
						return err
					}

					var conv llm.Conversation
					if system := cmd.String("system"); system != "" {
						conv = append(conv, llm.Message{Role: llm.RoleSystem, Content: system})
					}
					conv = append(conv, llm.Message{Role: llm.RoleUser, Content: message})

					provider := cmd.String("provider")
					text, err := client.Chat(ctx, provider, conv, providerConfig(cmd))
					if err != nil {
						return fmt.Errorf("chat %s: %w", provider, err)
					}
					printAnswer(provider, text)
					return nil
				},
			},
			{
				Name:  "providers",
				Usage: "List providers with an API key configured",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					client, err := newClient()
					if err != nil {
						return err
					}
					providers := client.Providers()
					if len(providers) == 0 {
						color.New(color.FgYellow).Fprintln(out, "No providers configured. Set OPENAI_API_KEY or ANTHROPIC_API_KEY.")
						return nil
					}
					for _, p := range providers {
						fmt.Fprintln(out, p)
					}
					return nil
				},
			},
		},
	}
}
