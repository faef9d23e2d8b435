// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rwols/gintonic-sub004/base/errors"
	"github.com/rwols/gintonic-sub004/config"
	"github.com/rwols/gintonic-sub004/math32"
	"github.com/rwols/gintonic-sub004/scene"
)

// Options are the parameters of a benchmark run.
type Options struct {

	// Depth is the number of levels below the root.
	Depth int

	// Branch is the number of children of every non-leaf entity.
	Branch int

	// Frames is the number of frames to update.
	Frames int

	// Readers is the number of goroutines reading global poses.
	Readers int

	// DT is the simulated time per frame.
	DT time.Duration

	// Config is the settings file to watch for changes, if any.
	Config string

	// Watch is whether to reload Config while running.
	Watch bool
}

// Result are the statistics of a benchmark run.
type Result struct {
	Frames   int
	Entities int
	Casters  int
	Reads    int64
	Elapsed  time.Duration
}

// Run builds a tree with the given settings and updates it for the
// configured number of frames while reader goroutines read it.
// It stops early when ctx is done.
func Run(ctx context.Context, settings *config.Settings, opts Options) (Result, error) {
	var res Result
	sc := scene.NewScene(settings)

	err := sc.Mutate(func(root *scene.Entity) error {
		n, err := build(sc.Library, root, opts.Depth, opts.Branch)
		res.Entities = n + 1
		if err != nil {
			return err
		}
		cam := scene.NewEntity("camera")
		cam.Transform().SetPosition(math32.Vec3(0, 5, 20)).LookAt(math32.Vec3(0, 0, 0), math32.Vec3(0, 1, 0))
		if _, err := cam.AddCamera(); err != nil {
			return err
		}
		if _, err := cam.AddLight(scene.DirectionalLight); err != nil {
			return err
		}
		res.Entities++
		return root.AddChild(cam)
	})
	if err != nil {
		return res, fmt.Errorf("building scene: %w", err)
	}

	spin := math32.Vec3(0, 1, 0)
	_, err = sc.AddTimer(&scene.Timer{
		Delay: opts.DT,
		Count: opts.Frames,
		Fn: func() {
			for _, c := range sc.Root.Children() {
				c.Transform().RotateOnAxis(spin, 0.01)
			}
		},
	})
	if err != nil {
		return res, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if opts.Watch && opts.Config != "" {
		go func() {
			errors.Log(config.Watch(ctx, opts.Config, func(s *config.Settings) {
				slog.Info("scenebench: settings reloaded", "path", opts.Config)
				s.Apply()
				sc.SetSettings(s)
			}))
		}()
	}

	var reads atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})
	for range opts.Readers {
		g.Go(func() error {
			return read(gctx, done, sc, &reads)
		})
	}

	start := time.Now()
	for res.Frames < opts.Frames && ctx.Err() == nil {
		sc.Update(opts.DT)
		res.Frames++
	}
	close(done)
	res.Elapsed = time.Since(start)
	if err := g.Wait(); err != nil {
		return res, err
	}
	res.Reads = reads.Load()

	sc.Read(func(root *scene.Entity) {
		cc := &scene.ShadowCasterCollector{}
		scene.Walk(root, cc)
		res.Casters = len(cc.Casters)
	})
	return res, nil
}

// build adds depth levels of branch children below e, each with a mesh
// renderer and the leaves with a collider, returning the number added.
func build(lib *scene.Library, e *scene.Entity, depth, branch int) (int, error) {
	if depth <= 0 {
		return 0, nil
	}
	mesh, err := lib.Mesh("cube")
	if err != nil {
		return 0, err
	}
	mat, err := lib.Material("default")
	if err != nil {
		return 0, err
	}
	n := 0
	for i := range branch {
		c := scene.NewEntity(fmt.Sprintf("%s-%d", e.Name(), i))
		angle := 2 * math32.Pi * float32(i) / float32(branch)
		c.Transform().
			SetPosition(math32.Vec3(math32.Cos(angle), 0, math32.Sin(angle)).MulScalar(float32(depth))).
			SetScale(math32.Vector3Scalar(0.8))
		if err := e.AddChild(c); err != nil {
			return n, err
		}
		n++
		if _, err := c.AddMeshRenderer(mesh, mat); err != nil {
			return n, err
		}
		if depth == 1 {
			if _, err := c.AddBoxCollider(); err != nil {
				return n, err
			}
		}
		m, err := build(lib, c, depth-1, branch)
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// read repeatedly sums the global positions of all entities under the
// read lock until done is closed.
func read(ctx context.Context, done <-chan struct{}, sc *scene.Scene, reads *atomic.Int64) error {
	for {
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return nil
		default:
		}
		var sum math32.Vector3
		sc.Read(func(root *scene.Entity) {
			scene.WalkFunc(root, func(e *scene.Entity) bool {
				sum.SetAdd(e.Transform().GlobalPosition())
				return true
			})
		})
		if math32.IsNaN(sum.X) || math32.IsNaN(sum.Y) || math32.IsNaN(sum.Z) {
			return fmt.Errorf("scenebench: global position sum is %v", sum)
		}
		reads.Add(1)
	}
}
