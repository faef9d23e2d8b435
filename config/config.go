// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the engine settings and their
// loading, saving and watching.
package config

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/rwols/gintonic-sub004/base/errors"
)

// Settings are the engine settings.
type Settings struct {

	// LogLevel is the minimum level logged: debug, info, warn or error.
	LogLevel string `toml:"log_level" yaml:"log_level"`

	// Pool are the settings of the timer pool.
	Pool PoolSettings `toml:"pool" yaml:"pool"`

	// Cache are the settings of the shared resource caches.
	Cache CacheSettings `toml:"cache" yaml:"cache"`

	// Scene are the settings of new scenes.
	Scene SceneSettings `toml:"scene" yaml:"scene"`
}

// PoolSettings are the settings of a [pool.Pool] of timers.
type PoolSettings struct {

	// Capacity is the maximum number of slots; 0 is unbounded.
	Capacity int `toml:"capacity" yaml:"capacity"`

	// ShrinkRatio is the fraction of expired slots at which the pool is
	// compacted after an update; 0 never compacts.
	ShrinkRatio float64 `toml:"shrink_ratio" yaml:"shrink_ratio"`
}

// CacheSettings are the settings of the mesh and material caches.
type CacheSettings struct {

	// PruneEvery is the number of frames between removals of expired
	// entries; 0 never prunes.
	PruneEvery int `toml:"prune_every" yaml:"prune_every"`
}

// SceneSettings are the settings of new scenes.
type SceneSettings struct {

	// RootName is the name of the root entity.
	RootName string `toml:"root_name" yaml:"root_name"`
}

// Default returns new settings with default values.
func Default() *Settings {
	s := &Settings{}
	s.Defaults()
	return s
}

// Defaults sets the default values for all of the settings.
func (s *Settings) Defaults() {
	s.LogLevel = "info"
	s.Pool.Capacity = 0
	s.Pool.ShrinkRatio = 0.5
	s.Cache.PruneEvery = 60
	s.Scene.RootName = "root"
}

// Level returns the parsed log level, or [slog.LevelInfo] if it is invalid.
func (s *Settings) Level() slog.Level {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lv
}

// Validate returns an error if any setting is out of range.
func (s *Settings) Validate() error {
	var errs []error
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(s.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("config: log_level: %w", err))
	}
	if s.Pool.Capacity < 0 {
		errs = append(errs, fmt.Errorf("config: pool.capacity %d is negative", s.Pool.Capacity))
	}
	if s.Pool.ShrinkRatio < 0 || s.Pool.ShrinkRatio > 1 {
		errs = append(errs, fmt.Errorf("config: pool.shrink_ratio %g is not in [0, 1]", s.Pool.ShrinkRatio))
	}
	if s.Cache.PruneEvery < 0 {
		errs = append(errs, fmt.Errorf("config: cache.prune_every %d is negative", s.Cache.PruneEvery))
	}
	return errors.Join(errs...)
}

// Apply does anything necessary to apply the settings to the process,
// which is setting the level of the default logger.
func (s *Settings) Apply() {
	slog.SetLogLoggerLevel(s.Level())
}

// isYAML returns whether the file is YAML, based on its extension.
// All other files are TOML.
func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Open reads settings from the given TOML or YAML file, chosen by
// extension. Fields missing from the file keep their default values.
func Open(path string) (*Settings, error) {
	s := Default()
	if err := s.Open(path); err != nil {
		return nil, err
	}
	return s, nil
}

// Open reads the given TOML or YAML file into s. Fields missing from
// the file keep their current values; unknown fields are an error.
func (s *Settings) Open(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if isYAML(path) {
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err = dec.Decode(s); errors.Is(err, io.EOF) {
			err = nil // empty file
		}
	} else {
		err = toml.NewDecoder(bytes.NewReader(b)).DisallowUnknownFields().Decode(s)
	}
	if err != nil {
		return fmt.Errorf("config: decoding %s: %w", path, err)
	}
	return s.Validate()
}

// Save writes s to the given TOML or YAML file, chosen by extension,
// creating the directory if needed.
func (s *Settings) Save(path string) error {
	var b []byte
	var err error
	if isYAML(path) {
		b, err = yaml.Marshal(s)
	} else {
		b, err = toml.Marshal(s)
	}
	if err != nil {
		return fmt.Errorf("config: encoding %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// DefaultPath returns the default settings file, ~/.gintonic/settings.toml.
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".gintonic", "settings.toml"), nil
}

// Watch calls fn with freshly opened settings every time the given file
// is written or replaced, until ctx is done. Files that fail to open are
// logged and skipped. The directory is watched, so that editors that
// replace the file by renaming are seen.
func Watch(ctx context.Context, path string, fn func(s *Settings)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: creating watcher: %w", err)
	}
	defer watcher.Close()

	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("config: watching %s: %w", path, err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			s, err := Open(path)
			if err != nil {
				slog.Error("config: reloading settings", "path", path, "err", err)
				continue
			}
			fn(s)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("config: settings watcher error: " + err.Error())
		}
	}
}
