// Command chatmsg shows a chat transcript as message bubbles in the terminal.
//
// Usage:
//
//	chatmsg [flags] [transcript.json]
//
// Flags:
//
//	-file string       Transcript file, or a glob such as "chats/**/*.json"
//	-log string        Write logs to this file while the viewer runs (env CHATMSG_LOG)
//	-show-reasoning    Show reasoning above assistant messages (env CHATMSG_SHOW_REASONING)
//	-loading           Show the final assistant message as still generating
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/charmbracelet/x/term"
	"github.com/fwojciec/chatmsg"
	bt "github.com/fwojciec/chatmsg/bubbletea"
	"github.com/fwojciec/chatmsg/clipboard"
	chatjson "github.com/fwojciec/chatmsg/json"
)

var errNoTranscript = errors.New("no transcript: pass -file or a path")

type config struct {
	path          string
	logPath       string
	showReasoning bool
	loading       bool
}

func main() {
	ancli.SetupSlog()
	if err := run(); err != nil {
		ancli.PrintErr(fmt.Sprintf("chatmsg: %v\n", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := parseConfig(os.Args[1:], os.Getenv)
	if err != nil {
		return err
	}

	msgs, err := chatjson.LoadPath(cfg.path)
	if err != nil {
		return fmt.Errorf("load transcript: %w", err)
	}

	if !term.IsTerminal(os.Stdout.Fd()) {
		return errors.New("stdout is not a terminal")
	}

	// The viewer owns the terminal, so logs go to a file or nowhere.
	restore, err := redirectLogs(cfg.logPath)
	if err != nil {
		return err
	}
	defer restore()

	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	model := bt.New(bt.Config{
		Messages: msgs,
		Theme:    chatmsg.DefaultTheme(),
		Bubble: bt.Options{
			ShowReasoning: cfg.showReasoning,
			Clipboard:     clipboard.New(),
			Logger:        slog.Default(),
		},
		Loading: cfg.loading,
	})
	slog.Info("viewer started", "path", cfg.path, "messages", len(msgs))

	if err := bt.Run(ctx, model); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	return nil
}

// parseConfig reads flags from args, falling back to environment variables
// for the log path and the reasoning switch.
func parseConfig(args []string, getenv func(string) string) (config, error) {
	fs := flag.NewFlagSet("chatmsg", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		path          = fs.String("file", "", "Transcript file, or a glob of transcript files")
		logPath       = fs.String("log", getenv("CHATMSG_LOG"), "Write logs to this file while the viewer runs")
		showReasoning = fs.Bool("show-reasoning", misc.Truthy(getenv("CHATMSG_SHOW_REASONING")), "Show reasoning above assistant messages")
		loading       = fs.Bool("loading", false, "Show the final assistant message as still generating")
	)
	if err := fs.Parse(args); err != nil {
		return config{}, fmt.Errorf("parse flags: %w", err)
	}

	cfg := config{
		path:          *path,
		logPath:       *logPath,
		showReasoning: *showReasoning,
		loading:       *loading,
	}
	if cfg.path == "" {
		cfg.path = fs.Arg(0)
	}
	if cfg.path == "" {
		return config{}, errNoTranscript
	}
	return cfg, nil
}

// redirectLogs points the default slog logger at path, or discards records
// when path is empty. The returned function restores the previous logger.
func redirectLogs(path string) (func(), error) {
	prev := slog.Default()
	if path == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() { slog.SetDefault(prev) }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, nil)))
	return func() {
		slog.SetDefault(prev)
		f.Close()
	}, nil
}
