// Package testdoubles provides test doubles (spies, stubs, dummies) for domain
// interfaces. These are hand-crafted implementations — no mock frameworks.
package testdoubles

import (
	"context"
	"sync"

	"github.com/rios0rios0/branchwatch/domain"
)

// ---------------------------------------------------------------------------
// SpyResolver
// ---------------------------------------------------------------------------

// SpyResolver implements domain.Resolver as a configurable spy.
// Configure the response fields for the methods your test exercises,
// then inspect the call-tracking fields to verify behavior.
type SpyResolver struct {
	// --- identity ---
	ResolverName string

	// --- Probe ---
	ProbeResult bool
	// spy: directories probed
	ProbedDirs []string

	// --- NewWatcher ---
	Watcher    domain.Watcher
	WatcherErr error
	// spy: directories a watcher was requested for
	WatchedDirs []string
}

var _ domain.Resolver = (*SpyResolver)(nil)

func (r *SpyResolver) Name() string { return r.ResolverName }

func (r *SpyResolver) Probe(dir string) bool {
	r.ProbedDirs = append(r.ProbedDirs, dir)
	return r.ProbeResult
}

func (r *SpyResolver) NewWatcher(dir string) (domain.Watcher, error) {
	r.WatchedDirs = append(r.WatchedDirs, dir)
	return r.Watcher, r.WatcherErr
}

// ---------------------------------------------------------------------------
// SpyWatcher
// ---------------------------------------------------------------------------

// SpyWatcher implements domain.Watcher with a manual change trigger:
// call Fire to simulate a branch change reaching the subscribers.
type SpyWatcher struct {
	mu sync.Mutex

	IsValid bool
	Name    string
	subs    []domain.Subscriber

	// spy: lifecycle tracking
	CloseCalls     int
	SubscribeCalls int
}

var _ domain.Watcher = (*SpyWatcher)(nil)

func (w *SpyWatcher) Valid() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.IsValid
}

func (w *SpyWatcher) DisplayName() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Name
}

func (w *SpyWatcher) Subscribe(fn domain.Subscriber) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.SubscribeCalls++
	w.subs = append(w.subs, fn)
}

func (w *SpyWatcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.CloseCalls++
	w.subs = nil
	return nil
}

// Fire simulates a branch change: updates the stored name and notifies
// all subscribers synchronously.
func (w *SpyWatcher) Fire(name string) {
	w.mu.Lock()
	w.Name = name
	subs := append([]domain.Subscriber(nil), w.subs...)
	w.mu.Unlock()

	for _, fn := range subs {
		fn(name)
	}
}

// ---------------------------------------------------------------------------
// SpySink
// ---------------------------------------------------------------------------

// SpySink implements domain.TitleSink, recording every title it receives.
type SpySink struct {
	mu sync.Mutex

	Err error
	// spy: titles received, in order
	titles []string
}

var _ domain.TitleSink = (*SpySink)(nil)

func (s *SpySink) Set(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.titles = append(s.titles, text)
	return s.Err
}

// Titles returns a copy of every title received so far.
func (s *SpySink) Titles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.titles...)
}

// ---------------------------------------------------------------------------
// SpyLauncher
// ---------------------------------------------------------------------------

// SpyLauncher implements domain.Launcher, recording every launch request.
type SpyLauncher struct {
	Pid int
	Err error
	// spy: run configs received
	Launched []domain.RunConfig
}

var _ domain.Launcher = (*SpyLauncher)(nil)

func (l *SpyLauncher) Launch(_ context.Context, cfg domain.RunConfig) (int, error) {
	l.Launched = append(l.Launched, cfg)
	if l.Err != nil {
		return 0, l.Err
	}
	return l.Pid, nil
}
