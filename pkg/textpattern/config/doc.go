/*
Package config provides type-safe configuration extraction and the decoded
engine Settings.

# Overview

Config wraps a map[string]any and provides typed accessor methods that
return defaults on missing keys and type mismatches. Settings is the
validated, typed view the engine and CLI consume.

	cfg := config.New(map[string]any{
	    "culture": "de",
	    "format":  map[string]any{"max_size": 4096},
	})

	cfg.Sub("format").Int("max_size", 0) // 4096
	cfg.String("missing", "default")     // "default"

# File Loading

FromFile picks the decoder by extension: .yaml/.yml (gopkg.in/yaml.v3),
.json (encoding/json) or .toml (github.com/BurntSushi/toml).

	settings, err := config.Load("textpattern.yaml")
	if err != nil {
	    log.Fatal(err)
	}

# Settings

Decode starts from DefaultSettings and overrides what the file sets.
Invalid values (unknown culture, regex option or log level, a zero
max_size, an odd-length rule set) are configuration errors from the
textpattern errors package.

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation.
*/
package config
