// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rwlock provides a writer-preferring reader/writer lock.
//
// Once a writer calls [Mutex.Lock], no new reader acquires the lock until
// every waiting writer has been served, so a steady stream of readers can
// never starve a writer. Waiting blocks the calling goroutine; there is no
// timeout or cancellation.
package rwlock

import "sync"

// Mutex is a writer-preferring reader/writer mutual exclusion lock.
// The zero value is an unlocked mutex. A Mutex must not be copied
// after first use.
type Mutex struct {
	mu   sync.Mutex
	once sync.Once

	// readers is signaled when blocked readers may proceed.
	readers *sync.Cond

	// writers is signaled when one blocked writer may proceed.
	writers *sync.Cond

	activeReaders  int
	waitingWriters int
	activeWriters  int
}

// Stats is a snapshot of the counters of a [Mutex].
type Stats struct {
	ActiveReaders int

	// WaitingWriters includes the active writer, which stays registered
	// until it unlocks.
	WaitingWriters int

	ActiveWriters int
}

func (m *Mutex) init() {
	m.once.Do(func() {
		m.readers = sync.NewCond(&m.mu)
		m.writers = sync.NewCond(&m.mu)
	})
}

// RLock locks m for reading. It blocks while any writer is waiting or active.
// Any number of readers may hold the lock at the same time.
func (m *Mutex) RLock() {
	m.init()
	m.mu.Lock()
	for m.waitingWriters > 0 || m.activeWriters > 0 {
		m.readers.Wait()
	}
	m.activeReaders++
	m.mu.Unlock()
}

// RUnlock undoes a single [Mutex.RLock] call. When the last reader leaves,
// one waiting writer is woken. It panics if m is not locked for reading.
func (m *Mutex) RUnlock() {
	m.init()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.activeReaders <= 0 {
		panic("rwlock: RUnlock of unlocked Mutex")
	}
	m.activeReaders--
	if m.activeReaders == 0 {
		m.writers.Signal()
	}
}

// Lock locks m for writing. The intent to write is registered before
// waiting, which blocks new readers right away. It then waits until there
// are no active readers and no active writer.
func (m *Mutex) Lock() {
	m.init()
	m.mu.Lock()
	m.waitingWriters++
	for m.activeReaders > 0 || m.activeWriters > 0 {
		m.writers.Wait()
	}
	m.activeWriters++
	m.mu.Unlock()
}

// Unlock unlocks m for writing. If other writers are waiting, one of them
// is woken; otherwise all blocked readers are. It panics if m is not
// locked for writing.
func (m *Mutex) Unlock() {
	m.init()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.activeWriters <= 0 {
		panic("rwlock: Unlock of unlocked Mutex")
	}
	m.waitingWriters--
	m.activeWriters--
	if m.waitingWriters > 0 {
		m.writers.Signal()
	} else {
		m.readers.Broadcast()
	}
}

// RLocker returns a [sync.Locker] interface that implements
// the Lock and Unlock methods by calling m.RLock and m.RUnlock.
func (m *Mutex) RLocker() sync.Locker {
	return (*rlocker)(m)
}

// Stats returns a snapshot of the lock counters.
func (m *Mutex) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{
		ActiveReaders:  m.activeReaders,
		WaitingWriters: m.waitingWriters,
		ActiveWriters:  m.activeWriters,
	}
}

type rlocker Mutex

func (r *rlocker) Lock()   { (*Mutex)(r).RLock() }
func (r *rlocker) Unlock() { (*Mutex)(r).RUnlock() }

var _ sync.Locker = (*Mutex)(nil)
