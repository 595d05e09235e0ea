package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"surge/internal/buildpipeline"
	"surge/internal/diagfmt"
	"surge/internal/host"
)

// formatCmd prints the canonical Lua a file transpiles to. Unlike build, it
// never writes output files by default: it's the quick "what would this
// become" check, the same pipeline run with --check verifying an existing
// sibling .lua is still in sync instead of printing it.
var formatCmd = &cobra.Command{
	Use:   "format [flags] <path> [path...]",
	Short: "Print the canonical Lua for TSL source files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFormat,
}

func init() {
	formatCmd.Flags().Bool("check", false, "check that each file's sibling .lua output is up to date, without printing")
	formatCmd.Flags().Bool("write", false, "write the .lua output next to each source file instead of printing it")
	formatCmd.Flags().String("config", "tstl.toml", "path to the host config file")
	formatCmd.Flags().String("format", "text", "output format (text|json)")
}

func runFormat(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return err
	}
	if check && write {
		return fmt.Errorf("format: --check and --write are mutually exclusive")
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}

	hostCfg, err := host.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", configPath, err)
	}

	files, err := collectSourceFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no source files found in %v", args)
	}

	result, err := buildpipeline.Compile(cmd.Context(), &buildpipeline.CompileRequest{
		Files:      files,
		HostConfig: hostCfg,
		MaxErrors:  uint(maxDiagnostics),
	})
	if err != nil {
		return err
	}

	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr))
	if result.FileSet != nil {
		for _, fr := range result.Files {
			if fr.Bag.HasErrors() || fr.Bag.HasWarnings() {
				diagfmt.Pretty(os.Stderr, fr.Bag, result.FileSet, diagfmt.PrettyOpts{Color: useColor, Context: 2})
			}
		}
	}
	if result.HasErrors() {
		return fmt.Errorf("format: failed with errors")
	}

	switch {
	case check:
		return renderFormatCheck(result.Files, outputFormat)
	case write:
		return renderFormatWrite(result.Files, outputFormat)
	default:
		return renderFormatStdout(result.Files, outputFormat)
	}
}

func renderFormatStdout(files []buildpipeline.FileResult, outputFormat string) error {
	if outputFormat == "json" {
		type jsonResult struct {
			Path string `json:"path"`
			Lua  string `json:"lua"`
		}
		payload := make([]jsonResult, 0, len(files))
		for _, fr := range files {
			payload = append(payload, jsonResult{Path: fr.Path, Lua: string(fr.Lua)})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}
	for i, fr := range files {
		if i > 0 {
			fmt.Fprintln(os.Stdout, "----")
		}
		fmt.Fprintf(os.Stdout, "-- %s\n", fr.Path)
		os.Stdout.Write(fr.Lua)
	}
	return nil
}

func renderFormatWrite(files []buildpipeline.FileResult, outputFormat string) error {
	type jsonResult struct {
		Path    string `json:"path"`
		Out     string `json:"out"`
		Changed bool   `json:"changed"`
	}
	payload := make([]jsonResult, 0, len(files))
	for _, fr := range files {
		outPath := luaOutputPath(fr.Path, "")
		prev, _ := os.ReadFile(outPath)
		changed := !bytes.Equal(prev, fr.Lua)
		if err := os.WriteFile(outPath, fr.Lua, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		payload = append(payload, jsonResult{Path: fr.Path, Out: outPath, Changed: changed})
	}
	if outputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}
	for _, r := range payload {
		if r.Changed {
			fmt.Fprintf(os.Stdout, "reformatted %s\n", r.Out)
		}
	}
	return nil
}

func renderFormatCheck(files []buildpipeline.FileResult, outputFormat string) error {
	type jsonResult struct {
		Path  string `json:"path"`
		Stale bool   `json:"stale"`
	}
	payload := make([]jsonResult, 0, len(files))
	var stale bool
	for _, fr := range files {
		outPath := luaOutputPath(fr.Path, "")
		prev, readErr := os.ReadFile(outPath)
		isStale := readErr != nil || !bytes.Equal(prev, fr.Lua)
		if isStale {
			stale = true
		}
		payload = append(payload, jsonResult{Path: fr.Path, Stale: isStale})
	}
	if outputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			return err
		}
	} else {
		for _, r := range payload {
			if r.Stale {
				fmt.Fprintln(os.Stdout, r.Path)
			}
		}
	}
	if stale {
		return fmt.Errorf("format: output is stale for one or more files")
	}
	return nil
}
