package config

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for config files other than YAML or TOML
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Load loads config from URL, unset values fall back to defaults
func Load(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	ret, err := Decode(path.Ext(URL), data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
	}
	return ret, nil
}

// Decode decodes YAML or TOML config selected by extension
func Decode(extension string, data []byte) (*Config, error) {
	ret := &Config{}
	switch strings.ToLower(extension) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, ret); err != nil {
			return nil, err
		}
	case ".toml":
		if _, err := toml.Decode(string(data), ret); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, extension)
	}
	ret.Normalize()
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}
