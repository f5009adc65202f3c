package merger

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/agentstation/openmwmm/pkg/esm"
)

// Status classifies what a plugin's definition did to a list.
type Status string

const (
	// StatusAdded marks the first definition of an identifier.
	StatusAdded Status = "added"
	// StatusMerged marks a redefinition that changed entries.
	StatusMerged Status = "merged"
	// StatusKept marks a redefinition that changed nothing.
	StatusKept Status = "kept"
	// StatusPinned marks a definition taken wholesale after a kind mismatch.
	StatusPinned Status = "pinned"
)

// Category names an entry subset within a list diff.
type Category string

const (
	// CategoryAdded holds entries the plugin introduced.
	CategoryAdded Category = "added"
	// CategoryRemoved holds entries the plugin dropped.
	CategoryRemoved Category = "removed"
	// CategoryKept holds entries the plugin left in place.
	CategoryKept Category = "kept"
)

// ListDiff captures what one plugin changed in one leveled list. Entry
// subsets are sorted by id then level; empty subsets are omitted.
type ListDiff struct {
	List    string       `json:"list"              yaml:"list"`
	Kind    esm.ListKind `json:"kind"              yaml:"kind"`
	Status  Status       `json:"status"            yaml:"status"`
	Added   []esm.Entry  `json:"added,omitempty"   yaml:"added,omitempty"`
	Removed []esm.Entry  `json:"removed,omitempty" yaml:"removed,omitempty"`
	Kept    []esm.Entry  `json:"kept,omitempty"    yaml:"kept,omitempty"`
}

// HasChanges reports whether the plugin added or removed anything.
func (d *ListDiff) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0
}

// Warning flags an identifier whose definitions disagree across plugins.
type Warning struct {
	List    string `json:"list"    yaml:"list"`
	Plugin  string `json:"plugin"  yaml:"plugin"`
	Message string `json:"message" yaml:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s (%s): %s", w.List, w.Plugin, w.Message)
}

// PluginDiff is the fold result for one plugin, in load order.
type PluginDiff struct {
	Plugin   string     `json:"plugin"             yaml:"plugin"`
	Lists    []ListDiff `json:"lists,omitempty"    yaml:"lists,omitempty"`
	Warnings []Warning  `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// HasChanges reports whether the plugin changed any list.
func (p *PluginDiff) HasChanges() bool {
	for i := range p.Lists {
		if p.Lists[i].HasChanges() {
			return true
		}
	}
	return len(p.Warnings) > 0
}

// Report collects every plugin's diff, one PluginDiff per folded plugin.
type Report struct {
	Plugins  []PluginDiff `json:"plugins"            yaml:"plugins"`
	Warnings []Warning    `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// HasChanges reports whether any plugin changed any list.
func (r *Report) HasChanges() bool {
	for i := range r.Plugins {
		if r.Plugins[i].HasChanges() {
			return true
		}
	}
	return false
}

// ByList pivots the report into identifier, then plugin, then category.
// Empty categories are omitted.
func (r *Report) ByList() map[string]map[string]map[Category][]esm.Entry {
	out := make(map[string]map[string]map[Category][]esm.Entry)
	for _, plugin := range r.Plugins {
		for _, d := range plugin.Lists {
			byPlugin, ok := out[d.List]
			if !ok {
				byPlugin = make(map[string]map[Category][]esm.Entry)
				out[d.List] = byPlugin
			}
			byCategory := make(map[Category][]esm.Entry)
			if len(d.Added) > 0 {
				byCategory[CategoryAdded] = d.Added
			}
			if len(d.Removed) > 0 {
				byCategory[CategoryRemoved] = d.Removed
			}
			if len(d.Kept) > 0 {
				byCategory[CategoryKept] = d.Kept
			}
			byPlugin[plugin.Plugin] = byCategory
		}
	}
	return out
}

// String returns a one-line summary of the report.
func (r *Report) String() string {
	if !r.HasChanges() {
		return "No list changes detected"
	}

	counts := make(map[Status]int)
	for _, plugin := range r.Plugins {
		for _, d := range plugin.Lists {
			if d.Status == StatusKept {
				continue
			}
			counts[d.Status]++
		}
	}

	var parts []string
	total := 0
	for _, status := range []Status{StatusAdded, StatusMerged, StatusPinned} {
		if counts[status] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", counts[status], status))
			total += counts[status]
		}
	}
	summary := fmt.Sprintf("Lists: %s (Total: %d changes)", strings.Join(parts, ", "), total)
	if len(r.Warnings) > 0 {
		summary += fmt.Sprintf(", %d warnings", len(r.Warnings))
	}
	return summary
}

// printOrder fixes the heading order within a plugin section.
var printOrder = []Status{StatusAdded, StatusMerged, StatusKept, StatusPinned}

// Print renders the report plugin by plugin, grouping lists by kind label
// and then by status, names sorted within each group.
func (r *Report) Print(w io.Writer) {
	for _, plugin := range r.Plugins {
		fmt.Fprintf(w, "Merging: %s\n", plugin.Plugin)

		for _, kind := range []esm.ListKind{esm.ListCreatures, esm.ListItems} {
			names := make(map[Status][]string)
			for _, d := range plugin.Lists {
				if d.Kind == kind {
					names[d.Status] = append(names[d.Status], d.List)
				}
			}
			if len(names) == 0 {
				continue
			}
			fmt.Fprintf(w, "\t ==== %s ====\n", kind.Label())
			for _, status := range printOrder {
				if len(names[status]) == 0 {
					continue
				}
				fmt.Fprintf(w, "\t ==== %s ====\n", status)
				for _, name := range sortedNames(names[status]) {
					fmt.Fprintf(w, "\t\t%s\n", name)
				}
			}
		}
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warning := range r.Warnings {
			fmt.Fprintf(w, "\t%s\n", warning)
		}
	}
}

func sortedNames(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	sort.Strings(out)
	return out
}
