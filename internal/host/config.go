// Package host is spec.md §6's Host: the configuration bundle the core
// transformer consults but never mutates, plus the on-disk TOML loading of
// it. Grounded on the teacher's internal/project/modulemeta.go manifest
// shape (vovakirdan-surge), using github.com/BurntSushi/toml (a teacher
// dependency) for parsing instead of hand-rolled key=value scanning.
package host

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// LuaTarget selects the Lua dialect the emitted source must run under
// (spec.md §6: "controls bitwise ops, goto availability, table.unpack vs.
// unpack").
type LuaTarget uint8

const (
	TargetLowest LuaTarget = iota
	TargetMid
	TargetNative
	TargetJIT
)

// ParseLuaTarget maps a tstl.toml string value to a LuaTarget, defaulting to
// TargetNative on an unrecognised name.
func ParseLuaTarget(s string) LuaTarget {
	switch s {
	case "lowest", "5.1":
		return TargetLowest
	case "mid", "5.2":
		return TargetMid
	case "jit", "luajit":
		return TargetJIT
	default:
		return TargetNative
	}
}

func (t LuaTarget) String() string {
	switch t {
	case TargetLowest:
		return "lowest"
	case TargetMid:
		return "mid"
	case TargetJIT:
		return "jit"
	default:
		return "native"
	}
}

// SupportsGoto reports whether t's dialect has goto/labels, required by the
// switch-statement lowering (spec.md §4.6).
func (t LuaTarget) SupportsGoto() bool { return t != TargetLowest }

// SupportsNativeBitwise reports whether t has native bitwise operators
// rather than needing a bit32/bit library routed through lualib.
func (t LuaTarget) SupportsNativeBitwise() bool {
	return t == TargetNative || t == TargetJIT
}

// LuaLibImport selects how the runtime-support bundle reaches emitted
// output (spec.md §6).
type LuaLibImport uint8

const (
	LibInline LuaLibImport = iota
	LibRequire
	LibAlways
	LibNone
)

func ParseLuaLibImport(s string) LuaLibImport {
	switch s {
	case "require":
		return LibRequire
	case "always":
		return LibAlways
	case "none":
		return LibNone
	default:
		return LibInline
	}
}

// Config is spec.md §6's Host configuration bundle.
type Config struct {
	RootDir          string `toml:"rootDir"`
	BaseURL          string `toml:"baseUrl"`
	NoHoisting       bool   `toml:"noHoisting"`
	Strict           bool   `toml:"strict"`
	StrictNullChecks bool   `toml:"strictNullChecks"`
	AlwaysStrict     bool   `toml:"alwaysStrict"`

	LuaTargetName     string `toml:"luaTarget"`
	LuaLibImportName   string `toml:"luaLibImport"`
}

// Target resolves the configured Lua dialect, defaulting to TargetNative.
func (c *Config) Target() LuaTarget { return ParseLuaTarget(c.LuaTargetName) }

// LibImport resolves the configured lualib delivery mode, defaulting to
// LibInline.
func (c *Config) LibImport() LuaLibImport { return ParseLuaLibImport(c.LuaLibImportName) }

// Default returns the Host configuration used when no tstl.toml is present.
func Default() *Config {
	return &Config{
		RootDir:       ".",
		Strict:        true,
		LuaTargetName: "native",
	}
}

// Load reads and parses a tstl.toml manifest at path, filling unset fields
// from Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("host: parsing %s: %w", path, err)
	}
	if cfg.RootDir == "" {
		cfg.RootDir = "."
	}
	return cfg, nil
}
