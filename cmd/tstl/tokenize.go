package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"surge/internal/source"
	"surge/internal/tsllexer"
	"surge/internal/tsltoken"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file>",
	Short: "Tokenize a TSL source file",
	Long:  `tokenize breaks a TSL source file down into its constituent tokens.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type tokenOutput struct {
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
	Span string `json:"span"`
}

func runTokenize(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	fs := source.NewFileSetWithBase("")
	id, err := fs.Load(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	src := string(fs.Get(id).Content)
	toks := tsllexer.New(id, src).Tokenize()

	switch format {
	case "pretty":
		return printTokensPretty(os.Stdout, toks)
	case "json":
		return printTokensJSON(os.Stdout, toks)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func printTokensPretty(w *os.File, toks []tsltoken.Token) error {
	for _, t := range toks {
		if t.Kind == tsltoken.EOF {
			if _, err := fmt.Fprintf(w, "%-20s %s\n", t.Kind, t.Span); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%-20s %-24q %s\n", t.Kind, t.Text, t.Span); err != nil {
			return err
		}
	}
	return nil
}

func printTokensJSON(w *os.File, toks []tsltoken.Token) error {
	out := make([]tokenOutput, 0, len(toks))
	for _, t := range toks {
		out = append(out, tokenOutput{Kind: t.Kind.String(), Text: t.Text, Span: t.Span.String()})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
