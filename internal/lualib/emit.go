package lualib

import (
	"fmt"
	"strings"

	"surge/internal/host"
)

// BundleModuleName is the module name a Require-mode bundle is written
// under, picked up by `require("lualib_bundle")` at the top of emitted
// chunks (spec.md §4.9/§2 "bundle is emitted once, inline or via require").
const BundleModuleName = "lualib_bundle"

// Bundle is the result of resolving one file's (or one build's) feature
// set into Lua source, per the configured host.LuaLibImport mode.
type Bundle struct {
	// Prologue is prepended verbatim to the start of an emitted chunk: the
	// feature definitions themselves under LibInline/LibAlways, or a single
	// require statement under LibRequire. Empty under LibNone.
	Prologue string

	// BundleSource is non-empty only under LibRequire: the separate
	// lualib_bundle.lua file the driver must write alongside the chunk.
	BundleSource string
}

// Emit resolves used (closed over its dependencies) into a Bundle
// appropriate for mode.
func Emit(mode host.LuaLibImport, used map[Feature]bool) (Bundle, error) {
	closed := Closure(used)
	switch mode {
	case host.LibNone:
		return Bundle{}, nil
	case host.LibRequire:
		if len(closed) == 0 {
			return Bundle{}, nil
		}
		body, err := renderDefinitions(closed)
		if err != nil {
			return Bundle{}, err
		}
		return Bundle{
			Prologue:     fmt.Sprintf("require(%q)\n", BundleModuleName),
			BundleSource: body,
		}, nil
	case host.LibAlways:
		body, err := renderAllDefinitions()
		if err != nil {
			return Bundle{}, err
		}
		return Bundle{Prologue: body}, nil
	default: // host.LibInline
		if len(closed) == 0 {
			return Bundle{}, nil
		}
		body, err := renderDefinitions(closed)
		if err != nil {
			return Bundle{}, err
		}
		return Bundle{Prologue: body}, nil
	}
}

func renderDefinitions(used map[Feature]bool) (string, error) {
	var sb strings.Builder
	for _, f := range orderedFeatures(used) {
		chunk, err := source(f)
		if err != nil {
			return "", err
		}
		sb.WriteString(chunk)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func renderAllDefinitions() (string, error) {
	all := make(map[Feature]bool, featureCount)
	for f := Feature(1); f < featureCount; f++ {
		all[f] = true
	}
	return renderDefinitions(all)
}
