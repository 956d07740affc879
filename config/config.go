// Package config loads the settings of the ember command from TOML or YAML.
//
// TOML keys are the Go field names (LogLevel, CacheSize, [Repl] Prompt ...),
// and unknown keys are rejected. YAML keys are the lower-camel-case tags.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"unicode"

	"github.com/naoina/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the ember command.
type Config struct {
	LogLevel  string `yaml:"logLevel"`  // trace, debug, info, warn, error or crit
	Color     bool   `yaml:"color"`     // colour diagnostics on a terminal
	CacheSize int    `yaml:"cacheSize"` // compiled programs kept by the runner; 0 disables
	Repl      Repl   `yaml:"repl"`
}

// Repl holds the interactive session settings.
type Repl struct {
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"historyFile"` // empty disables history
}

// Defaults are the settings used when no file is given.
var Defaults = Config{
	LogLevel:  "warn",
	Color:     true,
	CacheSize: 64,
	Repl: Repl{
		Prompt:      "ember> ",
		HistoryFile: ".ember_history",
	},
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		id := fmt.Sprintf("%s.%s", rt.String(), field)
		link := ""
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://pkg.go.dev/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, id, link)
	},
}

// Load reads the file at path over a copy of Defaults. The format is chosen
// by extension: .toml, .yaml or .yml.
func Load(path string) (Config, error) {
	cfg := Defaults
	f, err := os.Open(path)
	if err != nil {
		return cfg, errors.Wrap(err, "opening config")
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(&cfg)
		// Add file name to errors that have a line number.
		if _, ok := err.(*toml.LineError); ok {
			err = errors.New(path + ", " + err.Error())
		}
	case ".yaml", ".yml":
		// An empty YAML document leaves the defaults in place.
		if err = yaml.NewDecoder(f).Decode(&cfg); err == io.EOF {
			err = nil
		}
	default:
		return cfg, errors.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "decoding %s", path)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.CacheSize < 0 {
		return errors.Errorf("cache size must not be negative, got %d", c.CacheSize)
	}
	return nil
}
