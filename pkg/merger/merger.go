// Package merger folds the leveled lists of an ordered plugin set into one
// merged result per identifier, with a per-plugin change report.
//
// The fold is strictly sequential in load order: removal detection and
// scalar precedence both depend on it. The first folded document is the
// baseline; every later plugin's additions and removals are computed
// against the baseline's entry sets, so a later plugin can restore an
// entry a lower-priority plugin removed.
package merger

import (
	"sort"

	"github.com/agentstation/openmwmm/pkg/errors"
	"github.com/agentstation/openmwmm/pkg/esm"
)

// Merger merges leveled lists across parsed plugin documents.
type Merger interface {
	// Merge folds the documents in slice order, skipping any whose base
	// filename is in excluded, and returns the merged lists with a report
	// of what each plugin changed.
	Merge(docs []*esm.Document, excluded map[string]bool) (*Result, error)
}

// merger is the default implementation of Merger.
type merger struct {
	withoutKept bool
}

// New creates a Merger.
func New(opts ...Option) Merger {
	m := &merger{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Merge folds the documents in order and reports per-plugin changes.
func (m *merger) Merge(docs []*esm.Document, excluded map[string]bool) (*Result, error) {
	state := NewState()
	report := &Report{}

	for i, doc := range docs {
		if doc == nil {
			return nil, errors.NewValidationError("documents", i, "nil document in merge input")
		}
		if excluded[doc.Name()] {
			continue
		}

		next, diff := Fold(state, doc)
		state = next

		if m.withoutKept {
			stripKept(diff)
		}
		report.Plugins = append(report.Plugins, *diff)
		report.Warnings = append(report.Warnings, diff.Warnings...)
	}

	return &Result{Report: report, state: state}, nil
}

// stripKept removes unchanged subsets from a plugin diff.
func stripKept(diff *PluginDiff) {
	lists := diff.Lists[:0]
	for _, d := range diff.Lists {
		if d.Status == StatusKept {
			continue
		}
		d.Kept = nil
		lists = append(lists, d)
	}
	diff.Lists = lists
}

// Result is the outcome of a merge: the final accumulator state plus the
// per-plugin report.
type Result struct {
	Report *Report

	state *State
}

// Lists returns the merged lists sorted by kind then identifier. An
// identifier pinned by a kind mismatch yields its pinned definition
// unchanged.
func (r *Result) Lists() []*esm.LeveledList {
	out := make([]*esm.LeveledList, 0, r.state.Len())
	for _, acc := range r.state.accs {
		out = append(out, acc.list())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// List returns the merged list for one identifier.
func (r *Result) List(id string) (*esm.LeveledList, bool) {
	acc, ok := r.state.accs[id]
	if !ok {
		return nil, false
	}
	return acc.list(), true
}

// Len returns the number of merged identifiers.
func (r *Result) Len() int {
	return r.state.Len()
}
