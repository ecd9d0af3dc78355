package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/skosovsky/gemini"
)

type wordCountArgs struct {
	Text string `json:"text"`
}

type wordCount struct {
	Words int `json:"words"`
	Chars int `json:"chars"`
}

// builtinRegistry returns the tools shipped with the command.
func builtinRegistry() *gemini.Registry {
	reg := gemini.NewRegistry(gemini.WithDefaultTimeout(10 * time.Second))
	reg.Use(gemini.WithRecovery())
	reg.Register(gemini.MustTool("word_count", "Count words and characters in text.",
		func(_ context.Context, a wordCountArgs) (wordCount, error) {
			return wordCount{Words: len(strings.Fields(a.Text)), Chars: len([]rune(a.Text))}, nil
		}))
	reg.Register(&gemini.Tool{
		Name:        "current_time",
		Description: "Current local time, formatted with a Go layout.",
		Params:      []gemini.Param{gemini.Optional("layout", gemini.KindString, time.RFC3339)},
		Fn: func(_ context.Context, args map[string]any) (any, error) {
			layout, _ := args["layout"].(string)
			return time.Now().Format(layout), nil
		},
	})
	return reg
}

func newToolsCommand() *cobra.Command {
	toolsCmd := &cobra.Command{
		Use:   "tools",
		Short: "List the built-in tool schemas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(builtinRegistry().Schemas())
		},
	}
	callCmd := &cobra.Command{
		Use:   "call NAME [key=value ...]",
		Short: "Invoke a built-in tool",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			named, err := parseNamedArgs(args[1:])
			if err != nil {
				return err
			}
			res, err := builtinRegistry().Invoke(cmd.Context(), args[0], named)
			if err != nil {
				return err
			}
			out, err := json.Marshal(res)
			if err != nil {
				return fmt.Errorf("encode result: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	toolsCmd.AddCommand(callCmd)
	return toolsCmd
}

// parseNamedArgs turns key=value pairs into named arguments. Values that parse as
// JSON keep their JSON type; anything else is taken as a string.
func parseNamedArgs(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		key, val, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("argument %q is not key=value", p)
		}
		var v any
		if err := json.Unmarshal([]byte(val), &v); err != nil {
			v = val
		}
		out[key] = v
	}
	return out, nil
}
