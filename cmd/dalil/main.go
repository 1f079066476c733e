// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/poiesic/dalil"
	"github.com/poiesic/dalil/ai"
	"github.com/poiesic/dalil/rag"
	"github.com/urfave/cli/v2"
)

func main() {
	// A missing .env file is fine; the flags below fall back to the
	// process environment.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "dalil",
		Usage: "Bilingual retrieval-augmented assistant over Qdrant document collections",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ask",
				Usage:     "Answer a single question and exit",
				ArgsUsage: "QUESTION",
				Action:    askCommand,
				Flags:     assistantFlags(),
			},
			{
				Name:   "chat",
				Usage:  "Start an interactive conversation on stdin",
				Action: chatCommand,
				Flags:  assistantFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// assistantFlags are shared by every command that builds an Assistant.
func assistantFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "user",
			Aliases:  []string{"u"},
			Usage:    "User identifier owning the conversation",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "qdrant-url",
			Usage:   "Qdrant instance URL",
			Value:   "http://localhost:6333",
			EnvVars: []string{"QDRANT_URL"},
		},
		&cli.StringFlag{
			Name:    "qdrant-api-key",
			Usage:   "Qdrant API key",
			EnvVars: []string{"QDRANT_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "openai-token",
			Usage:   "OpenAI API token",
			EnvVars: []string{"OPENAI_API_KEY"},
		},
		&cli.StringFlag{
			Name:  "openai-host",
			Usage: "OpenAI-compatible service host URL (empty for the public API)",
		},
		&cli.StringFlag{
			Name:  "chat-model",
			Usage: "Chat model name",
			Value: "gpt-4o-mini",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "text-embedding-3-small",
		},
		&cli.StringFlag{
			Name:  "english-collection",
			Usage: "Qdrant collection holding English documents",
			Value: "en_doc",
		},
		&cli.StringFlag{
			Name:  "arabic-collection",
			Usage: "Qdrant collection holding Arabic documents",
			Value: "ar_doc",
		},
		&cli.StringFlag{
			Name:  "memory-db",
			Usage: "Path to a BadgerDB directory for persistent conversation memory (empty keeps memory in process)",
		},
		&cli.BoolFlag{
			Name:  "hub-prompt",
			Usage: "Fetch the generation prompt from the LangChain Hub instead of the built-in copy",
		},
		&cli.IntFlag{
			Name:  "max-tokens",
			Usage: "Maximum answer length in tokens",
			Value: 1500,
		},
	}
}

// newAssistant builds an Assistant from command flags.
func newAssistant(c *cli.Context) (*dalil.Assistant, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("openai-host")),
		ai.WithToken(c.String("openai-token")),
		ai.WithChatModel(c.String("chat-model")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithMaxAnswerTokens(c.Int("max-tokens")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	opts := []dalil.AssistantOption{
		dalil.WithAIConfig(aiConfig),
		dalil.WithCollections(c.String("english-collection"), c.String("arabic-collection")),
	}
	if path := c.String("memory-db"); path != "" {
		opts = append(opts, dalil.WithPersistentMemory(path))
	}
	if c.Bool("hub-prompt") {
		opts = append(opts, dalil.WithProcessorOptions(
			rag.WithPromptSource(rag.NewHubPrompt("")),
		))
	}

	return dalil.NewAssistant(c.String("qdrant-url"), c.String("qdrant-api-key"), opts...)
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("a question is required: dalil ask --user ID \"your question\"")
	}

	assistant, err := newAssistant(c)
	if err != nil {
		return fmt.Errorf("failed to create assistant: %w", err)
	}
	defer assistant.Close()

	_, err = assistant.QueryStream(context.Background(), question, c.String("user"), func(chunk string) {
		fmt.Print(chunk)
	})
	if err != nil {
		return err
	}
	fmt.Println()
	return nil
}

func chatCommand(c *cli.Context) error {
	assistant, err := newAssistant(c)
	if err != nil {
		return fmt.Errorf("failed to create assistant: %w", err)
	}
	defer assistant.Close()

	userID := c.String("user")
	ctx := context.Background()

	fmt.Fprintln(os.Stderr, "Type a question in English or Arabic. Ctrl-D or \"exit\" to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}

		_, err := assistant.QueryStream(ctx, question, userID, func(chunk string) {
			fmt.Print(chunk)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		fmt.Println()
	}
	return scanner.Err()
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
