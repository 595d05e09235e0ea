// Package main implements the tstl CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"surge/internal/buildpipeline"
	"surge/internal/diagfmt"
	"surge/internal/host"
	"surge/internal/lualib"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] <file|dir>...",
	Short: "Transpile TSL sources to Lua",
	Long:  "build runs the full tokenize -> parse -> check -> lower -> print pipeline over the given files or directories and writes a .lua file next to each input.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  buildExecution,
}

func init() {
	buildCmd.Flags().String("ui", "auto", "user interface (auto|on|off)")
	buildCmd.Flags().String("config", "tstl.toml", "path to the host config file")
	buildCmd.Flags().String("out-dir", "", "directory to write .lua output to (default: alongside each source file)")
}

func buildExecution(cmd *cobra.Command, args []string) error {
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	outDir, err := cmd.Flags().GetString("out-dir")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
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

	baseDir := hostCfg.RootDir
	if baseDir == "" {
		baseDir, _ = os.Getwd()
	}
	displayFiles := displayFileList(files, "")

	req := &buildpipeline.CompileRequest{
		Files:      files,
		BaseDir:    baseDir,
		HostConfig: hostCfg,
		MaxErrors:  uint(maxDiagnostics),
	}

	useTUI := shouldUseTUI(uiModeValue) && !quiet
	var (
		result buildpipeline.CompileResult
		runErr error
	)
	if useTUI {
		result, runErr = runCompileWithUI(cmd.Context(), "tstl build", displayFiles, req)
	} else {
		result, runErr = buildpipeline.Compile(cmd.Context(), req)
	}
	if runErr != nil {
		return runErr
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
		return fmt.Errorf("build: failed with errors")
	}

	for _, fr := range result.Files {
		outPath := luaOutputPath(fr.Path, outDir)
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return err
		}
		lua := fr.Lua
		if prologue := result.LibBundle.Prologue; prologue != "" {
			lua = append([]byte(prologue), fr.Lua...)
		}
		if err := os.WriteFile(outPath, lua, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		if !quiet {
			fmt.Fprintf(os.Stdout, "wrote %s\n", outPath)
		}
	}

	if result.LibBundle.BundleSource != "" {
		bundlePath := filepath.Join(baseDir, lualib.BundleModuleName+".lua")
		if err := os.WriteFile(bundlePath, []byte(result.LibBundle.BundleSource), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", bundlePath, err)
		}
		if !quiet {
			fmt.Fprintf(os.Stdout, "wrote %s\n", bundlePath)
		}
	}

	if showTimings {
		printStageTimings(os.Stdout, result.Timings)
	}
	return nil
}

// luaOutputPath derives a sibling .lua path for a TSL source file, or places
// it under outDir (preserving the source's base name) when set.
func luaOutputPath(srcPath, outDir string) string {
	base := filepath.Base(srcPath)
	ext := filepath.Ext(base)
	luaName := base[:len(base)-len(ext)] + ".lua"
	if outDir != "" {
		return filepath.Join(outDir, luaName)
	}
	return filepath.Join(filepath.Dir(srcPath), luaName)
}

func printStageTimings(w *os.File, t buildpipeline.Timings) {
	stages := []buildpipeline.Stage{buildpipeline.StageParse, buildpipeline.StageCheck, buildpipeline.StageLower, buildpipeline.StagePrint}
	for _, s := range stages {
		if t.Has(s) {
			fmt.Fprintf(w, "%-6s %s\n", s, t.Duration(s))
		}
	}
}
