package openmwmm

import (
	"context"
	stderrors "errors"
	"path/filepath"
	"sort"
	"sync"

	"github.com/agentstation/openmwmm/pkg/constants"
	"github.com/agentstation/openmwmm/pkg/errors"
	"github.com/agentstation/openmwmm/pkg/esm"
	"github.com/agentstation/openmwmm/pkg/merger"
	"github.com/agentstation/openmwmm/pkg/omwconfig"
)

// Compile-time interface check to ensure proper implementation.
var _ Merger = (*manager)(nil)

// Merger folds leveled lists across the enabled plugins.
type Merger interface {
	// Merge parses every enabled plugin in load order, folds their
	// leveled lists, and writes the merged plugin to out. An empty out
	// falls back to the configured output path.
	Merge(ctx context.Context, out string) (*merger.Report, error)
}

// Merge parses every enabled plugin in load order, folds their leveled
// lists, and writes the merged plugin to out.
//
// Plugins named by the never-merge option and any previous merge output
// are dropped before parsing. Parsing runs concurrently per file; the
// fold itself is a single sequential pass in load order. A structural
// decode failure or I/O error aborts before the destination is touched.
func (m *manager) Merge(ctx context.Context, out string) (*merger.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg, err := omwconfig.LoadFile(m.options.configFile)
	if err != nil {
		return nil, err
	}

	if out == "" {
		out = m.options.mergeOutput
	}

	// The previous merge output must never feed back into itself.
	excluded := make(map[string]bool, len(m.options.neverMerge)+1)
	for _, name := range m.options.neverMerge {
		excluded[name] = true
	}
	excluded[filepath.Base(out)] = true

	plugins, err := cfg.Plugins()
	if err != nil {
		return nil, err
	}
	selected := make([]*omwconfig.Plugin, 0, len(plugins))
	for _, plugin := range plugins {
		if plugin.Enabled() && !excluded[plugin.Name()] {
			selected = append(selected, plugin)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Order() < selected[j].Order()
	})
	if len(selected) == 0 {
		return nil, &errors.ValidationError{
			Field:   "plugins",
			Message: "nothing to merge",
		}
	}

	docs, err := m.parse(ctx, selected)
	if err != nil {
		return nil, err
	}

	result, err := merger.New().Merge(docs, excluded)
	if err != nil {
		return nil, err
	}

	// The merged plugin carries only the folded lists, grafted onto a
	// header derived from the highest-priority input.
	header := *docs[0].Header
	header.Kind = esm.KindPlugin
	header.Author = constants.MergedAuthor
	header.Description = constants.MergedDescription

	base := &esm.Document{Path: out, Header: &header}
	if err := esm.Write(base, result.Lists(), out); err != nil {
		return nil, err
	}

	m.log().Info().
		Int("plugins", len(docs)).
		Int("lists", result.Len()).
		Str("out", out).
		Msg("Wrote merged plugin")

	return result.Report, nil
}

// parse loads the selected plugin files concurrently. Results keep the
// selection order so the fold still runs in load order.
func (m *manager) parse(ctx context.Context, plugins []*omwconfig.Plugin) ([]*esm.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	docs := make([]*esm.Document, len(plugins))
	errs := make([]error, len(plugins))

	var wg sync.WaitGroup
	for i, plugin := range plugins {
		wg.Add(1)
		go func(i int, plugin *omwconfig.Plugin) {
			defer wg.Done()

			m.log().Debug().Str("plugin", plugin.Name()).Msg("Parsing plugin")

			doc, err := esm.LoadFile(plugin.Path())
			if err != nil {
				errs[i] = errors.NewMergeError(plugin.Name(), "", err)
				return
			}
			docs[i] = doc
		}(i, plugin)
	}
	wg.Wait()

	if err := stderrors.Join(errs...); err != nil {
		return nil, err
	}
	return docs, nil
}
