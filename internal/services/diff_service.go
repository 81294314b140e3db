package services

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffService renders line diffs between two versions of a document.
type DiffService struct {
	initialized bool
	dmp         *diffmatchpatch.DiffMatchPatch
}

// NewDiffService creates a new DiffService instance.
func NewDiffService() *DiffService {
	return &DiffService{}
}

// Name returns the service name "diff" for registration.
func (d *DiffService) Name() string {
	return "diff"
}

// Initialize sets up the diff engine.
func (d *DiffService) Initialize() error {
	d.dmp = diffmatchpatch.New()
	d.initialized = true
	return nil
}

// DiffLines compares before and after line by line. Removed lines are
// prefixed with "- ", added lines with "+ " and unchanged lines with "  ".
// Identical inputs produce an empty string.
func (d *DiffService) DiffLines(before, after string) string {
	if before == after {
		return ""
	}
	if !d.initialized {
		_ = d.Initialize()
	}

	a, b, lines := d.dmp.DiffLinesToChars(before, after)
	diffs := d.dmp.DiffCharsToLines(d.dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	for _, diff := range diffs {
		prefix := "  "
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.SplitAfter(diff.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix)
			out.WriteString(strings.TrimSuffix(line, "\n"))
			out.WriteString("\n")
		}
	}
	return out.String()
}

// HasChanges reports whether the diff contains any added or removed line.
func HasChanges(diff string) bool {
	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "+ ") {
			return true
		}
	}
	return false
}
