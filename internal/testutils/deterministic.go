// Package testutils provides deterministic generators and utility functions for hoard testing.
// These utilities ensure consistent test output while maintaining production format compatibility.
package testutils

import (
	"fmt"
	"sync"
)

var (
	// Thread-safe counter for deterministic suffix generation
	suffixCounter uint64
	suffixMutex   sync.Mutex
)

// NameSuffixer returns the policy used to rename colliding commands.
// In test mode names get deterministic suffixes (-00001, -00002, ...) shared
// across the process; in production mode it returns nil so the trove keeps
// its random default.
func NameSuffixer(testMode bool) func(name string) string {
	if testMode {
		return deterministicSuffix
	}
	return nil
}

// SequenceSuffixer returns an independent suffixer producing name-1, name-2, ...
// Each returned suffixer has its own counter so tests can assert exact names.
func SequenceSuffixer() func(name string) string {
	var mu sync.Mutex
	n := 0
	return func(name string) string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", name, n)
	}
}

// FixedSuffixer always appends the same suffix. It is useful to exercise
// the retry path of collision resolution.
func FixedSuffixer(suffix string) func(name string) string {
	return func(name string) string {
		return name + suffix
	}
}

func deterministicSuffix(name string) string {
	suffixMutex.Lock()
	defer suffixMutex.Unlock()

	suffixCounter++
	return fmt.Sprintf("%s-%05x", name, suffixCounter)
}

// ResetTestCounters resets the deterministic counters for testing.
// This should only be called from test code to ensure consistent test runs.
func ResetTestCounters() {
	suffixMutex.Lock()
	defer suffixMutex.Unlock()

	suffixCounter = 0
}
