package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v2"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Nil(t, cfg.Validate())
	assert.Equal(t, "$ ", cfg.Prompt)
	assert.Equal(t, 4096, cfg.HistoryMax)
	assert.Equal(t, 10, cfg.AliasMaxDepth)
}

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		mutate  func(*Configuration)
		wantErr string
	}{
		"default":        {func(*Configuration) {}, ""},
		"zero-history":   {func(c *Configuration) { c.HistoryMax = 0 }, "history_max"},
		"deep-aliases":   {func(c *Configuration) { c.AliasMaxDepth = 1000 }, "alias_max_depth"},
		"bad-log-level":  {func(c *Configuration) { c.LogLevel = "loud" }, "log_level"},
		"alias-no-name":  {func(c *Configuration) { c.Aliases = []Alias{{Value: "ls"}} }, "name"},
		"alias-equals":   {func(c *Configuration) { c.Aliases = []Alias{{Name: "a=b", Value: "ls"}} }, "name"},
		"alias-repeated": {func(c *Configuration) { c.Aliases = []Alias{{"a", "1"}, {"a", "2"}} }, "aliases"},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.Nil(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}

func TestHistoryPath(t *testing.T) {
	cases := map[string]string{
		"":                 "",
		".hsh_history":     "/home/u/.hsh_history",
		"~/hist/log":       "/home/u/hist/log",
		"/var/tmp/history": "/var/tmp/history",
	}

	for file, want := range cases {
		t.Run(file, func(t *testing.T) {
			cfg := &Configuration{HistoryFile: file}
			assert.Equal(t, want, cfg.HistoryPath("/home/u"))
		})
	}
}

func TestDefaultDir(t *testing.T) {
	env := map[string]string{"HOME": "/home/u"}
	assert.Equal(t, "/home/u/.config/hsh", DefaultDir(func(k string) string { return env[k] }))

	env["XDG_CONFIG_HOME"] = "/xdg"
	assert.Equal(t, "/xdg/hsh", DefaultDir(func(k string) string { return env[k] }))
}
