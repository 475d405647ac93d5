// Package config loads render settings from TOML or YAML files.
//
// Every field is optional. Unset fields leave the built-in defaults untouched,
// so an empty file renders exactly what the program renders without one.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	mandel "github.com/marben/ascii_mandel"
)

// Config holds the settings a file may override. Nil means unset.
type Config struct {
	Width         *int     `toml:"width" yaml:"width"`
	Height        *int     `toml:"height" yaml:"height"`
	X1            *float64 `toml:"x1" yaml:"x1"`
	Y1            *float64 `toml:"y1" yaml:"y1"`
	X2            *float64 `toml:"x2" yaml:"x2"`
	Y2            *float64 `toml:"y2" yaml:"y2"`
	MaxIterations *int     `toml:"max_iterations" yaml:"max_iterations"`
	Workers       *int     `toml:"workers" yaml:"workers"`
}

// Load reads the configuration file at path using the OS file system.
func Load(path string) (Config, error) {
	return LoadWithFS(DefaultFS(), path)
}

// LoadWithFS reads the configuration file at path from fsys.
// The decoder is chosen by extension: .toml, .yaml or .yml.
func LoadWithFS(fsys FileSystem, path string) (Config, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml", ".yaml", ".yml":
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if ext == ".toml" {
		return parseTOML(path, data)
	}
	return parseYAML(path, data)
}

func parseTOML(source string, data []byte) (Config, error) {
	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		return Config{}, pe
	}
	return cfg, nil
}

func parseYAML(source string, data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// an empty document sets nothing
		if errors.Is(err, io.EOF) {
			return Config{}, nil
		}
		return Config{}, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return cfg, nil
}

// Apply overlays the set fields onto p and workers.
func (c Config) Apply(p *mandel.Params, workers *int) {
	if c.Width != nil {
		p.Viewport.W = *c.Width
	}
	if c.Height != nil {
		p.Viewport.H = *c.Height
	}
	if c.X1 != nil {
		p.Region.Xmin = *c.X1
	}
	if c.Y1 != nil {
		p.Region.Ymin = *c.Y1
	}
	if c.X2 != nil {
		p.Region.Xmax = *c.X2
	}
	if c.Y2 != nil {
		p.Region.Ymax = *c.Y2
	}
	if c.MaxIterations != nil {
		p.MaxIter = *c.MaxIterations
	}
	if c.Workers != nil && workers != nil {
		*workers = *c.Workers
	}
}
