package analysis

import (
	"testing"

	"rtp/internal/config"
)

func newTestPool(workers int) *WorkerPool {
	cfg := &config.Config{Processors: workers}
	return NewWorkerPool(cfg, newTestRunner(), NewRoundRobinScheduler())
}

func poolFixtures(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()

	clean1 := writeSuite(t, dir, "clean1.robot", `*** Test Cases ***
fine
    No Operation
`)
	clean2 := writeSuite(t, dir, "clean2.robot", `*** Test Cases ***
also fine
    Log    hello
`)
	broken := writeSuite(t, dir, "broken.robot", `*** Test Cases ***
broken
    Missing Keyword
`)
	return []string{clean1, clean2, broken}
}

func TestWorkerPool_Analyze(t *testing.T) {
	pool := newTestPool(2)
	paths := poolFixtures(t)

	results, duration, err := pool.Analyze(paths)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if duration <= 0 {
		t.Error("expected a positive duration")
	}
	if len(results) != len(paths) {
		t.Fatalf("expected %d results, got %d", len(paths), len(results))
	}

	clean, flagged := 0, 0
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("unexpected suite error for %s: %v", r.SuitePath, r.Err)
		}
		if r.Clean() {
			clean++
		} else {
			flagged++
		}
	}
	if clean != 2 || flagged != 1 {
		t.Errorf("expected 2 clean and 1 flagged, got %d and %d", clean, flagged)
	}
}

func TestWorkerPool_AnalyzeEmpty(t *testing.T) {
	pool := newTestPool(2)

	results, duration, err := pool.Analyze(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
	if duration != 0 {
		t.Errorf("expected zero duration, got %v", duration)
	}
}

func TestWorkerPool_SingleWorker(t *testing.T) {
	// Processors of zero must not deadlock or drop files.
	pool := newTestPool(0)
	paths := poolFixtures(t)

	results, _, err := pool.Analyze(paths)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != len(paths) {
		t.Fatalf("expected %d results, got %d", len(paths), len(results))
	}
}

func TestWorkerPool_FailFast(t *testing.T) {
	pool := newTestPool(1)
	dir := t.TempDir()

	var paths []string
	paths = append(paths, writeSuite(t, dir, "bad.robot", `*** Test Cases ***
broken
    Missing Keyword
`))
	for _, name := range []string{"a.robot", "b.robot", "c.robot"} {
		paths = append(paths, writeSuite(t, dir, name, `*** Test Cases ***
fine
    No Operation
`))
	}

	results, _, err := pool.AnalyzeWithOptions(paths, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// With one worker the flagged suite is first, so the rest are skipped.
	if len(results) != 1 {
		t.Fatalf("expected analysis to stop after the flagged suite, got %d results", len(results))
	}
	if results[0].Clean() {
		t.Error("expected the returned result to be flagged")
	}
}

func TestWorkerPool_FailFastAllClean(t *testing.T) {
	pool := newTestPool(2)
	dir := t.TempDir()

	var paths []string
	for _, name := range []string{"a.robot", "b.robot", "c.robot"} {
		paths = append(paths, writeSuite(t, dir, name, `*** Test Cases ***
fine
    No Operation
`))
	}

	results, _, err := pool.AnalyzeWithOptions(paths, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != len(paths) {
		t.Fatalf("expected all suites analyzed, got %d of %d", len(results), len(paths))
	}
	for _, r := range results {
		if !r.Clean() {
			t.Errorf("expected %s to be clean, got %v", r.SuitePath, r.Diagnostics)
		}
	}
}
