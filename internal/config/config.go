package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Config struct {
	// MAINTAINER NOTE: If you add/change/remove config fields that affect
	// install behavior, keep the CLI flag wiring in internal/cli in sync.
	Install Install
	Output  Output
	Fixup   Fixup
	Runtime Runtime
}

type Install struct {
	// Source is the install CD root (positional argument). Empty triggers
	// automatic media discovery across mounted volumes.
	Source string

	// Target is the installation target root, the application bundle
	// directory being built or repaired (see --target).
	Target string

	// PatchImage is the mounted patch image root (see --patch-image).
	// Empty triggers automatic discovery; if none is found, patch entries
	// are deferred.
	PatchImage string

	// Manifest is a path to an externally supplied YAML manifest replacing
	// the built-in file table (see --manifest).
	Manifest string

	// DryRun verifies and prints the copy plan without writing (see --dry-run).
	DryRun bool
}

type Output struct {
	// ConsoleFormat controls the human-facing console sink format (see --console-format).
	// Allowed values: text, json, ndjson.
	ConsoleFormat string

	// ConsoleFilterStatus filters console output by entry status (see --console-filter-status).
	// Allowed values: OK, COPIED, FATAL, DEFERRED.
	ConsoleFilterStatus []string

	// Report writes a Markdown install report to this path (see --report).
	Report string

	// Out writes structured output to this path (see --out).
	Out string

	// OutFormat selects the format for --out (see --out-format).
	// Allowed values: json, ndjson. If empty, it is inferred from the --out file extension.
	OutFormat string

	// Emit writes an additional structured event stream to stdout (see --emit).
	// Allowed values: json, ndjson.
	Emit []string

	// NoConsole suppresses the console sink (see --no-console).
	NoConsole bool
}

type Fixup struct {
	// CDKey is the retail key the cdkey fixup writes (see --cdkey).
	// Never generated; the key always comes from the user.
	CDKey string

	// Only selects fixup steps by ID, comma-separated (see --only).
	// Empty runs all registered fixups.
	Only string

	// CheckOnly reports what each fixup would do without applying (see --check-only).
	CheckOnly bool
}

type Runtime struct {
	// Verbose enables more detailed diagnostics.
	Verbose bool
}

// DefaultTarget is the bundle built when --target is not given.
const DefaultTarget = "Unreal Tournament 2004.app"

func New() *Config {
	return &Config{
		Install: Install{
			Target: DefaultTarget,
		},
		Output: Output{
			ConsoleFormat: "text",
		},
	}
}

func (c *Config) Validate() error {
	c.Output.ConsoleFilterStatus = splitCommaList(c.Output.ConsoleFilterStatus)
	c.Output.Emit = splitCommaList(c.Output.Emit)

	if strings.TrimSpace(c.Install.Target) == "" {
		return errors.New("--target must not be empty")
	}

	// Output validation
	c.Output.ConsoleFormat = normalizeEnumValue(c.Output.ConsoleFormat)
	if c.Output.ConsoleFormat == "" {
		c.Output.ConsoleFormat = "text"
	}
	if c.Output.ConsoleFormat != "text" && c.Output.ConsoleFormat != "json" && c.Output.ConsoleFormat != "ndjson" {
		return fmt.Errorf("unsupported --console-format: %s (must be one of: text, json, ndjson)", c.Output.ConsoleFormat)
	}

	for i, st := range c.Output.ConsoleFilterStatus {
		v := strings.ToUpper(strings.TrimSpace(st))
		switch v {
		case "OK", "COPIED", "FATAL", "DEFERRED":
			c.Output.ConsoleFilterStatus[i] = v
		default:
			return fmt.Errorf("unsupported --console-filter-status value: %s (must be one of: OK, COPIED, FATAL, DEFERRED)", st)
		}
	}

	for _, emit := range c.Output.Emit {
		v := normalizeEnumValue(emit)
		if v != "json" && v != "ndjson" {
			return fmt.Errorf("unsupported --emit value: %s (must be one of: json, ndjson)", emit)
		}
	}

	if c.Output.Out != "" {
		c.Output.OutFormat = normalizeEnumValue(c.Output.OutFormat)
		if c.Output.OutFormat == "" {
			ext := strings.ToLower(filepath.Ext(c.Output.Out))
			switch ext {
			case ".json":
				c.Output.OutFormat = "json"
			case ".ndjson", ".jsonl":
				c.Output.OutFormat = "ndjson"
			default:
				if ext == "" {
					return errors.New("cannot infer output format from file extension (missing extension); use --out-format")
				}
				return fmt.Errorf("cannot infer output format from file extension %q; use --out-format", ext)
			}
		} else {
			if c.Output.OutFormat != "json" && c.Output.OutFormat != "ndjson" {
				return fmt.Errorf("unsupported output format: %s", c.Output.OutFormat)
			}
		}
	}

	return nil
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func splitCommaList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			p := strings.TrimSpace(part)
			if p == "" {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}
