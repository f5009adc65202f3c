package merger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/openmwmm/pkg/esm"
	"github.com/agentstation/openmwmm/pkg/merger"
)

// doc builds an in-memory parsed plugin with the given lists.
func doc(name string, lists ...*esm.LeveledList) *esm.Document {
	return &esm.Document{Path: name, Lists: lists}
}

func creatures(id string, entries ...esm.Entry) *esm.LeveledList {
	return &esm.LeveledList{ID: id, Kind: esm.ListCreatures, Entries: entries}
}

func items(id string, entries ...esm.Entry) *esm.LeveledList {
	return &esm.LeveledList{ID: id, Kind: esm.ListItems, Entries: entries}
}

func TestMergeAdditions(t *testing.T) {
	base := doc("base.esm", creatures("random_rats",
		esm.Entry{ID: "ratA", Level: 1},
		esm.Entry{ID: "ratB", Level: 2},
	))
	plugin := doc("more_rats.esp", creatures("random_rats",
		esm.Entry{ID: "ratA", Level: 1},
		esm.Entry{ID: "ratB", Level: 2},
		esm.Entry{ID: "ratC", Level: 3},
	))

	result, err := merger.New().Merge([]*esm.Document{base, plugin}, nil)
	require.NoError(t, err)

	merged, ok := result.List("random_rats")
	require.True(t, ok)
	assert.Equal(t, []esm.Entry{
		{ID: "ratA", Level: 1},
		{ID: "ratB", Level: 2},
		{ID: "ratC", Level: 3},
	}, merged.Entries)
}

func TestMergeRemovals(t *testing.T) {
	base := func() *esm.Document {
		return doc("base.esm", creatures("creature_rats",
			esm.Entry{ID: "ratA", Level: 1},
			esm.Entry{ID: "ratB", Level: 2},
		))
	}

	t.Run("a removal sticks when later plugins stay silent", func(t *testing.T) {
		p1 := doc("p1.esp", creatures("creature_rats",
			esm.Entry{ID: "ratA", Level: 1},
		))
		p2 := doc("p2.esp", creatures("creature_rats",
			esm.Entry{ID: "ratA", Level: 1},
			esm.Entry{ID: "ratC", Level: 3},
		))

		result, err := merger.New().Merge([]*esm.Document{base(), p1, p2}, nil)
		require.NoError(t, err)

		merged, ok := result.List("creature_rats")
		require.True(t, ok)
		assert.Equal(t, []esm.Entry{
			{ID: "ratA", Level: 1},
			{ID: "ratC", Level: 3},
		}, merged.Entries)
	})

	t.Run("a higher priority plugin restores a removed entry", func(t *testing.T) {
		p1 := doc("p1.esp", creatures("creature_rats",
			esm.Entry{ID: "ratA", Level: 1},
		))
		p2 := doc("p2.esp", creatures("creature_rats",
			esm.Entry{ID: "ratA", Level: 1},
			esm.Entry{ID: "ratB", Level: 2},
			esm.Entry{ID: "ratC", Level: 3},
		))

		result, err := merger.New().Merge([]*esm.Document{base(), p1, p2}, nil)
		require.NoError(t, err)

		merged, ok := result.List("creature_rats")
		require.True(t, ok)
		assert.Equal(t, []esm.Entry{
			{ID: "ratA", Level: 1},
			{ID: "ratB", Level: 2},
			{ID: "ratC", Level: 3},
		}, merged.Entries)
	})
}

func TestMergeBaselineAlone(t *testing.T) {
	base := doc("base.esm",
		creatures("random_rats", esm.Entry{ID: "rat", Level: 1}),
		items("loot_gems", esm.Entry{ID: "gem", Level: 2}),
	)

	result, err := merger.New().Merge([]*esm.Document{base}, nil)
	require.NoError(t, err)

	lists := result.Lists()
	require.Len(t, lists, 2)
	assert.Equal(t, "random_rats", lists[0].ID)
	assert.Equal(t, "loot_gems", lists[1].ID)

	require.Len(t, result.Report.Plugins, 1)
	assert.Equal(t, "base.esm", result.Report.Plugins[0].Plugin)
	assert.Empty(t, result.Report.Plugins[0].Lists)
	assert.False(t, result.Report.HasChanges())
}

func TestMergeFreshIdentifier(t *testing.T) {
	base := doc("base.esm", creatures("random_rats", esm.Entry{ID: "rat", Level: 1}))
	p1 := doc("p1.esp", items("loot_new",
		esm.Entry{ID: "sword", Level: 4},
		esm.Entry{ID: "dagger", Level: 1},
	))

	result, err := merger.New().Merge([]*esm.Document{base, p1}, nil)
	require.NoError(t, err)

	require.Len(t, result.Report.Plugins, 2)
	diff := result.Report.Plugins[1]
	require.Len(t, diff.Lists, 1)
	assert.Equal(t, merger.StatusAdded, diff.Lists[0].Status)
	assert.Equal(t, []esm.Entry{
		{ID: "dagger", Level: 1},
		{ID: "sword", Level: 4},
	}, diff.Lists[0].Added)
	assert.Empty(t, diff.Lists[0].Removed)
	assert.Empty(t, diff.Lists[0].Kept)
}

func TestMergeKindMismatch(t *testing.T) {
	base := doc("base.esm", items("loot", esm.Entry{ID: "gem", Level: 1}))
	p1 := doc("p1.esp", creatures("loot", esm.Entry{ID: "rat", Level: 2}))
	p2 := doc("p2.esp", items("loot", esm.Entry{ID: "gold", Level: 3}))

	result, err := merger.New().Merge([]*esm.Document{base, p1, p2}, nil)
	require.NoError(t, err)

	require.Len(t, result.Report.Warnings, 1)
	warning := result.Report.Warnings[0]
	assert.Equal(t, "loot", warning.List)
	assert.Equal(t, "p1.esp", warning.Plugin)
	assert.Contains(t, warning.Message, "kind changed")

	// The highest priority definition wins wholesale, unmerged.
	merged, ok := result.List("loot")
	require.True(t, ok)
	assert.Equal(t, esm.ListItems, merged.Kind)
	assert.Equal(t, []esm.Entry{{ID: "gold", Level: 3}}, merged.Entries)
}

func TestMergeExcluded(t *testing.T) {
	base := doc("base.esm", creatures("random_rats", esm.Entry{ID: "rat", Level: 1}))
	p1 := doc("p1.esp", creatures("random_rats"))

	excluded := map[string]bool{"p1.esp": true}
	result, err := merger.New().Merge([]*esm.Document{base, p1}, excluded)
	require.NoError(t, err)

	require.Len(t, result.Report.Plugins, 1)
	merged, ok := result.List("random_rats")
	require.True(t, ok)
	assert.Equal(t, []esm.Entry{{ID: "rat", Level: 1}}, merged.Entries)
}

func TestMergeScalarsLastWriterWins(t *testing.T) {
	base := doc("base.esm", &esm.LeveledList{
		ID: "loot", Kind: esm.ListItems, ChanceNone: 25,
		Entries: []esm.Entry{{ID: "gem", Level: 1}},
	})
	p1 := doc("p1.esp", &esm.LeveledList{
		ID: "loot", Kind: esm.ListItems,
		Flags: esm.FlagCalcFromAllLevels, ChanceNone: 75,
		Entries: []esm.Entry{{ID: "gem", Level: 1}},
	})

	result, err := merger.New().Merge([]*esm.Document{base, p1}, nil)
	require.NoError(t, err)

	merged, ok := result.List("loot")
	require.True(t, ok)
	assert.Equal(t, esm.FlagCalcFromAllLevels, merged.Flags)
	assert.Equal(t, uint8(75), merged.ChanceNone)
}

func TestMergeNilDocument(t *testing.T) {
	_, err := merger.New().Merge([]*esm.Document{nil}, nil)
	require.Error(t, err)
}

func TestMergeWithoutKept(t *testing.T) {
	base := doc("base.esm", creatures("random_rats", esm.Entry{ID: "rat", Level: 1}))
	p1 := doc("p1.esp", creatures("random_rats", esm.Entry{ID: "rat", Level: 1}))

	t.Run("kept subsets reported by default", func(t *testing.T) {
		result, err := merger.New().Merge([]*esm.Document{base, p1}, nil)
		require.NoError(t, err)

		diff := result.Report.Plugins[1]
		require.Len(t, diff.Lists, 1)
		assert.Equal(t, merger.StatusKept, diff.Lists[0].Status)
		assert.Equal(t, []esm.Entry{{ID: "rat", Level: 1}}, diff.Lists[0].Kept)
	})

	t.Run("WithoutKept drops them", func(t *testing.T) {
		result, err := merger.New(merger.WithoutKept()).Merge([]*esm.Document{base, p1}, nil)
		require.NoError(t, err)

		diff := result.Report.Plugins[1]
		assert.Empty(t, diff.Lists)
	})
}

func TestFoldIsPure(t *testing.T) {
	base := doc("base.esm", creatures("creature_rats",
		esm.Entry{ID: "ratA", Level: 1},
		esm.Entry{ID: "ratB", Level: 2},
	))
	removal := doc("removal.esp", creatures("creature_rats",
		esm.Entry{ID: "ratA", Level: 1},
	))
	addition := doc("addition.esp", creatures("creature_rats",
		esm.Entry{ID: "ratA", Level: 1},
		esm.Entry{ID: "ratB", Level: 2},
		esm.Entry{ID: "ratC", Level: 3},
	))

	seeded, diff := merger.Fold(merger.NewState(), base)
	assert.Empty(t, diff.Lists)

	// Two independent folds from the same state must not see each other.
	afterRemoval, diff := merger.Fold(seeded, removal)
	require.Len(t, diff.Lists, 1)
	assert.Equal(t, []esm.Entry{{ID: "ratB", Level: 2}}, diff.Lists[0].Removed)

	afterAddition, _ := merger.Fold(seeded, addition)

	removed, ok := afterRemoval.List("creature_rats")
	require.True(t, ok)
	assert.Equal(t, []esm.Entry{{ID: "ratA", Level: 1}}, removed.Entries)

	added, ok := afterAddition.List("creature_rats")
	require.True(t, ok)
	assert.Equal(t, []esm.Entry{
		{ID: "ratA", Level: 1},
		{ID: "ratB", Level: 2},
		{ID: "ratC", Level: 3},
	}, added.Entries)

	// The shared input state is untouched by either fold.
	original, ok := seeded.List("creature_rats")
	require.True(t, ok)
	assert.Equal(t, []esm.Entry{
		{ID: "ratA", Level: 1},
		{ID: "ratB", Level: 2},
	}, original.Entries)
}
