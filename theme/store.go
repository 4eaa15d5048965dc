package theme

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Store holds the registry currently served to clients. Registries are
// immutable, so a reload swaps in a whole new one.
type Store struct {
	path    string
	current atomic.Pointer[Registry]
	log     *zap.SugaredLogger
}

// NewStore builds the initial registry from the default palette merged
// with the overrides file at path. An empty path or a missing file means
// no overrides.
func NewStore(path string, log *zap.SugaredLogger) (*Store, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	s := &Store{path: path, log: log}
	reg, err := s.build()
	if err != nil {
		return nil, err
	}
	s.current.Store(reg)
	return s, nil
}

// Current returns the active registry.
func (s *Store) Current() *Registry {
	return s.current.Load()
}

// Path returns the overrides file the store reads.
func (s *Store) Path() string {
	return s.path
}

// Reload rebuilds the registry from disk. On failure the previous registry
// stays active.
func (s *Store) Reload() (*Registry, error) {
	reg, err := s.build()
	if err != nil {
		s.log.Warnw("theme reload rejected", "path", s.path, "error", err)
		return s.Current(), err
	}
	s.current.Store(reg)
	s.log.Infow("theme reloaded", "path", s.path)
	return reg, nil
}

func (s *Store) build() (*Registry, error) {
	over, err := LoadPalette(s.path)
	if err != nil {
		return nil, err
	}
	reg, err := New(DefaultPalette().Merge(over))
	if err != nil {
		return nil, fmt.Errorf("build registry: %w", err)
	}
	return reg, nil
}

// LoadPalette reads a YAML overrides file. Duplicate keys inside a family
// are rejected by the decoder.
func LoadPalette(path string) (Palette, error) {
	if path == "" {
		return Palette{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Palette{}, nil
		}
		return Palette{}, fmt.Errorf("read theme file: %w", err)
	}

	var p Palette
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return Palette{}, nil
		}
		return Palette{}, fmt.Errorf("parse theme file %s: %w", path, err)
	}
	return p, nil
}

// SavePalette writes overrides as YAML.
func SavePalette(path string, p Palette) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode theme file: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
