// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rwlock

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = 2 * time.Second

func TestConcurrentReaders(t *testing.T) {
	var m Mutex
	const n = 8
	release := make(chan struct{})
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RLock()
			<-release
			m.RUnlock()
		}()
	}
	require.Eventually(t, func() bool { return m.Stats().ActiveReaders == n }, waitFor, time.Millisecond)
	close(release)
	wg.Wait()
	assert.Equal(t, Stats{}, m.Stats())
}

func TestWriterBlocksNewReaders(t *testing.T) {
	var m Mutex
	m.RLock()

	writerIn := make(chan struct{})
	writerOut := make(chan struct{})
	go func() {
		m.Lock()
		close(writerIn)
		<-writerOut
		m.Unlock()
	}()
	require.Eventually(t, func() bool { return m.Stats().WaitingWriters == 1 }, waitFor, time.Millisecond)

	var readerIn atomic.Bool
	readerDone := make(chan struct{})
	go func() {
		m.RLock()
		readerIn.Store(true)
		m.RUnlock()
		close(readerDone)
	}()

	// the writer is waiting, so the new reader must not get in
	time.Sleep(20 * time.Millisecond)
	assert.False(t, readerIn.Load())
	select {
	case <-writerIn:
		t.Fatal("writer acquired while a reader is active")
	default:
	}

	m.RUnlock()
	select {
	case <-writerIn:
	case <-time.After(waitFor):
		t.Fatal("writer never acquired")
	}
	assert.False(t, readerIn.Load())
	assert.Equal(t, Stats{WaitingWriters: 1, ActiveWriters: 1}, m.Stats())

	close(writerOut)
	select {
	case <-readerDone:
	case <-time.After(waitFor):
		t.Fatal("reader never acquired after writer released")
	}
	assert.True(t, readerIn.Load())
}

func TestWritersExclusive(t *testing.T) {
	var m Mutex
	var active, maxActive atomic.Int32
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				m.Lock()
				n := active.Add(1)
				if n > maxActive.Load() {
					maxActive.Store(n)
				}
				active.Add(-1)
				m.Unlock()
			}
		}()
	}
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				m.RLock()
				assert.Zero(t, active.Load())
				m.RUnlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxActive.Load())
	assert.Equal(t, Stats{}, m.Stats())
}

func TestRLocker(t *testing.T) {
	var m Mutex
	l := m.RLocker()
	l.Lock()
	assert.Equal(t, 1, m.Stats().ActiveReaders)
	l.Unlock()
	assert.Zero(t, m.Stats().ActiveReaders)
}

func TestUnlockPanics(t *testing.T) {
	var m Mutex
	assert.Panics(t, func() { m.Unlock() })
	assert.Panics(t, func() { m.RUnlock() })
}
