package identity

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// Options represents the optional ident.yaml configuration file. Nil fields
// leave the corresponding Config value untouched.
type Options struct {
	Enabled      *bool   `yaml:"enabled,omitempty"`
	Namespace    *string `yaml:"namespace,omitempty"`
	Mode         *string `yaml:"mode,omitempty"`
	DebugLogging *bool   `yaml:"debugLogging,omitempty"`
}

// LoadOptions reads an options file. A missing file is not an error; it
// yields empty options.
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Options{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return &opts, nil
}

// Apply copies the set fields of opts onto the configuration.
func (c *Config) Apply(opts *Options) error {
	if opts == nil {
		return nil
	}
	if opts.Mode != nil {
		mode, err := ParseMode(*opts.Mode)
		if err != nil {
			return err
		}
		c.SetMode(mode)
	}
	if opts.Enabled != nil {
		c.SetEnabled(*opts.Enabled)
	}
	if opts.Namespace != nil {
		c.SetNamespace(*opts.Namespace)
	}
	if opts.DebugLogging != nil {
		c.SetDebugLogging(*opts.DebugLogging)
	}
	return nil
}

// DefaultNamespace derives a namespace from the Go module rooted at dir:
// the final element of the module path with any version suffix and
// non-alphanumeric characters stripped. Applications that want identifiers
// scoped to their module can feed the result to Config.SetNamespace.
func DefaultNamespace(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	if prefix, _, ok := module.SplitPathVersion(path); ok {
		path = prefix
	}
	parts := strings.Split(path, "/")
	base := parts[len(parts)-1]

	var out []rune
	for _, r := range base {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			out = append(out, r)
		}
	}
	return string(out), nil
}
