package config

import (
	_ "embed"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
	DefaultDirName    = "hsh"
)

type Configuration struct {
	// configDir is where the configuration was loaded from, empty for the
	// built-in defaults.
	configDir string

	Prompt        string  `json:"prompt"`
	ColorPrompt   bool    `json:"color_prompt"`
	HistoryFile   string  `json:"history_file"`
	HistoryMax    int     `json:"history_max" validate:"gte=1"`
	AliasMaxDepth int     `json:"alias_max_depth" validate:"gte=1,lte=64"`
	LogLevel      string  `json:"log_level" validate:"oneof=debug info warn error"`
	Aliases       []Alias `json:"aliases" validate:"unique=Name,dive"`
}

type Alias struct {
	Name  string `json:"name" validate:"required,excludesall=="`
	Value string `json:"value"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// Dir returns the directory the configuration was loaded from.
func (c *Configuration) Dir() string {
	return c.configDir
}

// HistoryPath resolves the history file against the user's home directory.
// It returns the empty string if history persistence is disabled.
func (c *Configuration) HistoryPath(home string) string {
	file := c.HistoryFile
	switch {
	case file == "":
		return ""
	case filepath.IsAbs(file):
		return file
	case strings.HasPrefix(file, "~/"):
		return filepath.Join(home, file[2:])
	default:
		return filepath.Join(home, file)
	}
}

// Default returns a copy of the built-in configuration.
func Default() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}

// DefaultDir returns the directory configuration is read from when none is
// given, $XDG_CONFIG_HOME/hsh or ~/.config/hsh.
func DefaultDir(getenv func(string) string) string {
	if xdg := getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, DefaultDirName)
	}
	return filepath.Join(getenv("HOME"), ".config", DefaultDirName)
}
