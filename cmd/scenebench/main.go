// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command scenebench builds a scene graph and updates it for a number of
// frames while reader goroutines read global poses concurrently, then
// logs statistics. It optionally profiles the run.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/profile"

	"github.com/rwols/gintonic-sub004/config"
)

var (
	configPath = flag.String("config", "", "the settings file (TOML or YAML); defaults to ~/.gintonic/settings.toml if it exists")
	depth      = flag.Int("depth", 4, "the number of levels below the root")
	branch     = flag.Int("branch", 4, "the number of children per entity")
	frames     = flag.Int("frames", 600, "the number of frames to update")
	readers    = flag.Int("readers", 4, "the number of concurrent reader goroutines")
	dt         = flag.Duration("dt", 16*time.Millisecond, "the simulated time per frame")
	prof       = flag.String("profile", "off", "the profile to record: cpu, mem or off")
	watch      = flag.Bool("watch", false, "reload the settings file when it changes")
)

func main() {
	flag.Usage = Usage
	flag.Parse()
	if err := run(); err != nil {
		slog.Error("scenebench: " + err.Error())
		os.Exit(1)
	}
}

func run() error {
	settings, path, err := openSettings(*configPath)
	if err != nil {
		return err
	}
	settings.Apply()

	switch *prof {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "off", "":
	default:
		return fmt.Errorf("unknown profile %q", *prof)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := Run(ctx, settings, Options{
		Depth:   *depth,
		Branch:  *branch,
		Frames:  *frames,
		Readers: *readers,
		DT:      *dt,
		Config:  path,
		Watch:   *watch,
	})
	if err != nil {
		return err
	}
	perFrame := time.Duration(0)
	if res.Frames > 0 {
		perFrame = res.Elapsed / time.Duration(res.Frames)
	}
	slog.Info("scenebench: done", "frames", res.Frames, "entities", res.Entities,
		"casters", res.Casters, "reads", res.Reads, "elapsed", res.Elapsed, "perFrame", perFrame)
	return nil
}

// openSettings opens the settings at path, or at the default path if path
// is empty and that file exists. It returns the path actually used,
// which is empty for default settings.
func openSettings(path string) (*config.Settings, string, error) {
	if path == "" {
		dp, err := config.DefaultPath()
		if err != nil {
			return config.Default(), "", nil
		}
		if _, err := os.Stat(dp); err != nil {
			return config.Default(), "", nil
		}
		path = dp
	}
	s, err := config.Open(path)
	if err != nil {
		return nil, "", err
	}
	return s, path, nil
}

// Usage is a replacement usage function for the flags package.
func Usage() {
	_, _ = fmt.Fprintf(os.Stderr, "Scenebench builds and updates a scene graph with concurrent readers.\n")
	_, _ = fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
	_, _ = fmt.Fprintf(os.Stderr, "\tscenebench [flags]\n")
	_, _ = fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
}
