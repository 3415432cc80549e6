package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"exam-prep-assistant/config"
	"exam-prep-assistant/internal/app"
	"exam-prep-assistant/internal/chat"
	"exam-prep-assistant/pkg/log"
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Run one chat turn and print the answer",
	Long: `Runs a single user turn through the same workflow the API serves.
Answers stream to stdout as they arrive; on a terminal they are rendered as markdown once complete.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		threadID, _ := cmd.Flags().GetString("thread")
		noColor, _ := cmd.Flags().GetBool("no-color")
		if threadID == "" {
			threadID = uuid.NewString()
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger := log.Init(log.ZapConfig{
			Level:    "warn",
			Mode:     cfg.Logger.Mode,
			Encoding: "console",
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		deps, err := app.Build(ctx, cfg, logger, nil)
		if err != nil {
			return err
		}
		defer deps.Close()

		p := newPrinter(cmd.OutOrStdout(), noColor)
		p.Info("thread %s", threadID)
		return runTurn(ctx, deps.Chat, p, chat.StreamInput{ThreadID: threadID, Query: strings.Join(args, " ")})
	},
}

// runTurn streams tokens raw when piped and renders the whole answer on a terminal.
func runTurn(ctx context.Context, uc chat.UseCase, p *printer, input chat.StreamInput) error {
	var answer strings.Builder
	var quiz string
	var failure string

	err := uc.StreamTurn(ctx, input, func(e chat.StreamEvent) {
		switch e.Type {
		case chat.EventToken:
			answer.WriteString(e.Data)
			if !p.styled {
				p.Raw(e.Data)
			}
		case chat.EventQuizJSON:
			quiz = e.Data
		case chat.EventError:
			failure = e.Data
		}
	})

	if p.styled {
		switch {
		case quiz != "":
			p.Markdown("```json\n" + quiz + "\n```")
		case answer.Len() > 0:
			p.Markdown(answer.String())
		}
	} else if answer.Len() > 0 {
		p.Raw("\n")
	}

	if err != nil {
		p.Error("error: %s", failure)
		return err
	}
	if answer.Len() == 0 && quiz == "" {
		p.Info("(no answer for this query; try asking for notes, a quiz or current affairs)")
	}
	return nil
}

func init() {
	askCmd.Flags().StringP("thread", "t", "", "Thread id to continue (default: a new one)")
	rootCmd.AddCommand(askCmd)
}
