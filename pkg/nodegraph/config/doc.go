/*
Package config provides type-safe configuration extraction from map[string]any.

# Overview

config wraps a map[string]any and provides typed accessor methods that handle
missing keys and type mismatches gracefully by returning default values.
This is useful for extracting nodegraph settings from YAML/JSON structures
without verbose type assertions and nil checks.

# Basic Usage

Create a Config from any map and extract values with defaults:

	cfg := config.New(map[string]any{
	    "metrics":       true,
	    "export_indent": 2,
	})

	metrics := cfg.Bool("metrics", false)     // true
	indent := cfg.Int("export_indent", 0)     // 2
	missing := cfg.String("missing", "def")   // "def"

Numeric types handle reasonable conversions:
  - int from float64 (only without a fractional part)
  - float64 from int

All methods return the default value if the key is missing or the value
cannot be converted to the requested type.

# File Loading

Load configuration from YAML or JSON files:

	cfg, err := config.FromFile("nodegraph.yaml")
	if err != nil {
	    log.Fatal(err)
	}

	// Or load from bytes
	cfg, err = config.FromYAML(yamlBytes)
	cfg, err = config.FromJSON(jsonBytes)

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation. However, if the original map is modified
externally, behavior is undefined.
*/
package config
