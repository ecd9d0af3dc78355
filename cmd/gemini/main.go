// Command gemini is a terminal client for the Gemini web chat endpoint.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/skosovsky/gemini"
	"github.com/skosovsky/gemini/internal/config"
)

// asker is the part of *gemini.Client the shell uses (allows a fake in tests).
type asker interface {
	Ask(ctx context.Context, message string) (string, error)
	Reset()
}

type shell struct {
	client    asker
	in        io.Reader
	out       io.Writer
	stream    bool
	wordDelay time.Duration
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		cfgPath  string
		cfg      config.Config
		endpoint string
		timeout  time.Duration
		stream   bool
		verbose  bool
	)
	root := &cobra.Command{
		Use:          "gemini",
		Short:        "Chat with Gemini from the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cfg, err = config.Load(cfgPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("endpoint") {
				cfg.Endpoint = endpoint
			}
			if flags.Changed("timeout") {
				cfg.Timeout = timeout
			}
			if flags.Changed("stream") {
				cfg.Stream = stream
			}
			if flags.Changed("verbose") {
				cfg.Verbose = verbose
			}
			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			sh := newShell(cmd, cfg)
			return sh.interactive(cmd.Context())
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&cfgPath, "config", "c", "", "path to a YAML config file")
	pf.StringVar(&endpoint, "endpoint", "", "override the request URL")
	pf.DurationVar(&timeout, "timeout", gemini.DefaultTimeout, "per-request timeout")
	pf.BoolVarP(&stream, "stream", "s", false, "print the answer word by word")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	var message string
	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "Send a single message and print the answer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(message) == "" {
				return fmt.Errorf("message is required (use -m)")
			}
			sh := newShell(cmd, cfg)
			return sh.once(cmd.Context(), message)
		},
	}
	chatCmd.Flags().StringVarP(&message, "message", "m", "", "message to send")
	root.AddCommand(chatCmd, newToolsCommand())
	return root
}

func newShell(cmd *cobra.Command, cfg config.Config) *shell {
	return &shell{
		client:    gemini.NewClient(append(cfg.ClientOptions(), gemini.WithLogger(slog.Default()))...),
		in:        cmd.InOrStdin(),
		out:       cmd.OutOrStdout(),
		stream:    cfg.Stream,
		wordDelay: cfg.WordDelay,
	}
}

// once sends a single message; errors are returned so the process exits non-zero.
func (s *shell) once(ctx context.Context, message string) error {
	answer, err := s.client.Ask(ctx, message)
	if err != nil {
		return err
	}
	s.print(ctx, answer)
	fmt.Fprintln(s.out)
	return nil
}

func (s *shell) interactive(ctx context.Context) error {
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(s.out, "\n%s\nGemini Client\n%s\n", rule, rule)
	fmt.Fprintln(s.out, "/stream - Toggle streaming")
	fmt.Fprintln(s.out, "/clear  - Clear conversation")
	fmt.Fprintln(s.out, "/quit   - Exit")
	fmt.Fprintf(s.out, "%s\n\n", rule)

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, "You: ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out, "\nGoodbye!")
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		switch strings.ToLower(input) {
		case "/quit":
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		case "/stream":
			s.stream = !s.stream
			state := "OFF"
			if s.stream {
				state = "ON"
			}
			fmt.Fprintf(s.out, "Streaming: %s\n\n", state)
		case "/clear":
			s.client.Reset()
			fmt.Fprint(s.out, "Cleared\n\n")
		default:
			answer, err := s.client.Ask(ctx, input)
			if err != nil {
				fmt.Fprintf(s.out, "\nError: %v\n\n", err)
				continue
			}
			fmt.Fprint(s.out, "\nGemini: ")
			s.print(ctx, answer)
			fmt.Fprint(s.out, "\n\n")
		}
	}
}

// print writes the answer, paced word by word when streaming is on.
func (s *shell) print(ctx context.Context, answer string) {
	if !s.stream {
		fmt.Fprint(s.out, answer)
		return
	}
	for tok := range gemini.Tokens(answer) {
		fmt.Fprint(s.out, tok)
		if s.wordDelay <= 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.wordDelay):
		}
	}
}
