package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// AppName names the configuration directory.
const AppName = "ragnav"

// DefaultConfigPath returns the YAML file consulted for flag defaults.
// On Linux: ~/.config/ragnav/config.yaml
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// YAMLConfig is a kong.ConfigurationLoader. The file is a flat mapping of
// flag names to values, for example:
//
//	max-urls: 20
//	timeout: 5s
//	model: gemini-2.5-pro
//
// Keys may use underscores instead of dashes. Flags given on the command
// line take precedence.
func YAMLConfig(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		v, ok := values[flag.Name]
		if !ok {
			v, ok = values[strings.ReplaceAll(flag.Name, "-", "_")]
		}
		if !ok || v == nil {
			return nil, nil
		}
		return fmt.Sprint(v), nil
	}), nil
}
