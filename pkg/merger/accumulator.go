package merger

import (
	"fmt"
	"sort"

	"github.com/agentstation/openmwmm/pkg/esm"
)

// entrySet is a leveled-list entry set keyed by the (ID, Level) pair.
type entrySet map[esm.Entry]struct{}

func newEntrySet(entries []esm.Entry) entrySet {
	s := make(entrySet, len(entries))
	for _, e := range entries {
		s[e] = struct{}{}
	}
	return s
}

func (s entrySet) clone() entrySet {
	out := make(entrySet, len(s))
	for e := range s {
		out[e] = struct{}{}
	}
	return out
}

// minus returns the entries of s that are not in other.
func (s entrySet) minus(other entrySet) entrySet {
	out := make(entrySet)
	for e := range s {
		if _, ok := other[e]; !ok {
			out[e] = struct{}{}
		}
	}
	return out
}

// intersect returns the entries present in both sets.
func (s entrySet) intersect(other entrySet) entrySet {
	out := make(entrySet)
	for e := range s {
		if _, ok := other[e]; ok {
			out[e] = struct{}{}
		}
	}
	return out
}

// sorted returns the set as a slice ordered by id then level.
func (s entrySet) sorted() []esm.Entry {
	out := make([]esm.Entry, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	sortEntries(out)
	return out
}

func sortEntries(entries []esm.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].ID != entries[j].ID {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].Level < entries[j].Level
	})
}

func sortedEntries(entries []esm.Entry) []esm.Entry {
	out := make([]esm.Entry, len(entries))
	copy(out, entries)
	sortEntries(out)
	return out
}

// accumulator carries the merge state for one list identifier.
type accumulator struct {
	id       string
	kind     esm.ListKind // kind established by the first definition
	flags    uint32       // last writer wins
	chance   uint8        // last writer wins
	entries  entrySet     // current merged set
	baseline entrySet     // entry set of the first definition, fixed
	pinned   *esm.LeveledList
}

func newAccumulator(list *esm.LeveledList) *accumulator {
	return &accumulator{
		id:       list.ID,
		kind:     list.Kind,
		flags:    list.Flags,
		chance:   list.ChanceNone,
		entries:  newEntrySet(list.Entries),
		baseline: newEntrySet(list.Entries),
	}
}

func (a *accumulator) clone() *accumulator {
	out := *a
	out.entries = a.entries.clone()
	out.baseline = a.baseline.clone()
	return &out
}

// fold applies a same-kind redefinition. Additions and removals are both
// computed against the fixed baseline, never against the previous plugin,
// so a later plugin re-adding a removed entry restores it.
func (a *accumulator) fold(list *esm.LeveledList) ListDiff {
	plugin := newEntrySet(list.Entries)
	added := plugin.minus(a.baseline)
	removed := a.baseline.minus(plugin)
	kept := plugin.intersect(a.baseline)

	// Re-adding the kept subset restores baseline entries a lower-priority
	// plugin removed; entries this plugin itself omits are removed after.
	for e := range kept {
		a.entries[e] = struct{}{}
	}
	for e := range added {
		a.entries[e] = struct{}{}
	}
	for e := range removed {
		delete(a.entries, e)
	}
	a.flags = list.Flags
	a.chance = list.ChanceNone

	status := StatusKept
	if len(added) > 0 || len(removed) > 0 {
		status = StatusMerged
	}
	return ListDiff{
		List:    a.id,
		Kind:    a.kind,
		Status:  status,
		Added:   added.sorted(),
		Removed: removed.sorted(),
		Kept:    kept.sorted(),
	}
}

// pin takes the definition wholesale, ending additive merging for this
// identifier. Every later definition replaces the pin the same way.
func (a *accumulator) pin(list *esm.LeveledList) ListDiff {
	incoming := newEntrySet(list.Entries)
	diff := ListDiff{
		List:    a.id,
		Kind:    list.Kind,
		Status:  StatusPinned,
		Added:   incoming.minus(a.entries).sorted(),
		Removed: a.entries.minus(incoming).sorted(),
		Kept:    incoming.intersect(a.entries).sorted(),
	}
	a.pinned = list
	a.entries = incoming
	a.flags = list.Flags
	a.chance = list.ChanceNone
	return diff
}

// list returns the merged result for this identifier.
func (a *accumulator) list() *esm.LeveledList {
	if a.pinned != nil {
		return a.pinned
	}
	return &esm.LeveledList{
		ID:         a.id,
		Kind:       a.kind,
		Flags:      a.flags,
		ChanceNone: a.chance,
		Entries:    a.entries.sorted(),
	}
}

// State is the merge accumulator map, keyed by list identifier. Fold never
// mutates its input State; each step derives a fresh copy.
type State struct {
	accs   map[string]*accumulator
	seeded bool // baseline has been folded
}

// NewState returns an empty merge state.
func NewState() *State {
	return &State{accs: make(map[string]*accumulator)}
}

// Len returns the number of identifiers tracked.
func (s *State) Len() int {
	return len(s.accs)
}

// List returns the current merged list for one identifier.
func (s *State) List(id string) (*esm.LeveledList, bool) {
	acc, ok := s.accs[id]
	if !ok {
		return nil, false
	}
	return acc.list(), true
}

func (s *State) clone() *State {
	next := &State{accs: make(map[string]*accumulator, len(s.accs)), seeded: s.seeded}
	for id, acc := range s.accs {
		next.accs[id] = acc.clone()
	}
	return next
}

// Fold applies one plugin's leveled lists on top of state and returns the
// next state plus a diff of what the plugin changed. The first document
// folded into a fresh state is the baseline: it seeds every accumulator
// silently and its diff carries no list changes.
func Fold(state *State, doc *esm.Document) (*State, *PluginDiff) {
	next := state.clone()
	diff := &PluginDiff{Plugin: doc.Name()}

	baseline := !next.seeded
	next.seeded = true

	for _, list := range doc.Lists {
		acc, ok := next.accs[list.ID]
		if !ok {
			next.accs[list.ID] = newAccumulator(list)
			if !baseline {
				diff.Lists = append(diff.Lists, ListDiff{
					List:   list.ID,
					Kind:   list.Kind,
					Status: StatusAdded,
					Added:  sortedEntries(list.Entries),
				})
			}
			continue
		}

		if acc.pinned != nil || list.Kind != acc.kind {
			if acc.pinned == nil {
				diff.Warnings = append(diff.Warnings, Warning{
					List:   list.ID,
					Plugin: doc.Name(),
					Message: fmt.Sprintf("list kind changed from %s to %s, keeping the later definition unmerged",
						acc.kind, list.Kind),
				})
			}
			diff.Lists = append(diff.Lists, acc.pin(list))
			continue
		}

		diff.Lists = append(diff.Lists, acc.fold(list))
	}

	sort.Slice(diff.Lists, func(i, j int) bool {
		return diff.Lists[i].List < diff.Lists[j].List
	})
	return next, diff
}
