package esm

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/agentstation/openmwmm/pkg/errors"
)

// ListKind distinguishes the two leveled-list record types.
type ListKind string

// The two leveled-list kinds.
const (
	ListCreatures ListKind = "creatures" // LEVC
	ListItems     ListKind = "items"     // LEVI
)

// listKindForTag maps a record tag to its list kind.
func listKindForTag(t Tag) (ListKind, bool) {
	switch t {
	case TagLEVC:
		return ListCreatures, true
	case TagLEVI:
		return ListItems, true
	}
	return "", false
}

// Tag returns the record tag for the kind.
func (k ListKind) Tag() Tag {
	if k == ListCreatures {
		return TagLEVC
	}
	return TagLEVI
}

// entryTag returns the subrecord tag that carries entry references.
func (k ListKind) entryTag() Tag {
	if k == ListCreatures {
		return TagCNAM
	}
	return TagINAM
}

// Label returns the human-readable group name used in reports.
func (k ListKind) Label() string {
	if k == ListCreatures {
		return "Leveled Creatures"
	}
	return "Leveled Items"
}

// Leveled-list DATA flag bits.
const (
	// FlagCalcFromAllLevels selects entries from all levels at or below the
	// player's, not just the highest qualifying one.
	FlagCalcFromAllLevels uint32 = 0x1

	// FlagCalcForEachItem rolls separately for each item in a count. Item
	// lists only.
	FlagCalcForEachItem uint32 = 0x2
)

// Entry is a single leveled-list row: a referenced object id and the
// minimum player level at which it qualifies. Entries are unique by the
// (ID, Level) pair; the same id may appear at several levels.
type Entry struct {
	ID    string `json:"id"    yaml:"id"`
	Level uint16 `json:"level" yaml:"level"`
}

// LeveledList is a decoded LEVC or LEVI record.
type LeveledList struct {
	ID         string   `json:"id"          yaml:"id"`
	Kind       ListKind `json:"kind"        yaml:"kind"`
	Flags      uint32   `json:"flags"       yaml:"flags"`
	ChanceNone uint8    `json:"chance_none" yaml:"chance_none"`
	Entries    []Entry  `json:"entries"     yaml:"entries"`
}

// CalcFromAllLevels reports whether the all-levels flag is set.
func (l *LeveledList) CalcFromAllLevels() bool {
	return l.Flags&FlagCalcFromAllLevels != 0
}

// CalcForEachItem reports whether the per-item flag is set.
func (l *LeveledList) CalcForEachItem() bool {
	return l.Flags&FlagCalcForEachItem != 0
}

// DecodeLeveledList decodes a LEVC or LEVI record. Duplicate (ID, Level)
// pairs are collapsed; otherwise entries keep file order. Subrecords with
// unrecognized tags are skipped.
func DecodeLeveledList(rec *Record) (*LeveledList, error) {
	kind, ok := listKindForTag(rec.Tag)
	if !ok {
		return nil, errors.NewValidationError("record", string(rec.Tag), "not a leveled-list record")
	}

	subs, err := rec.Subrecords()
	if err != nil {
		return nil, err
	}

	l := &LeveledList{Kind: kind}
	corrupt := func(msg string) error {
		return &errors.CorruptListError{List: l.ID, Message: msg}
	}

	var (
		declared    uint32
		sawIndex    bool
		sawName     bool
		pendingRef  string
		havePending bool
		decoded     int // entry count before collapsing duplicates
	)
	seen := make(map[Entry]bool)

	for _, sub := range subs {
		switch sub.Tag {
		case TagNAME:
			id, err := decodeString(sub.Data)
			if err != nil {
				return nil, err
			}
			if id == "" {
				return nil, corrupt("empty NAME identifier")
			}
			l.ID = id
			sawName = true
		case TagDATA:
			if len(sub.Data) != 4 {
				return nil, corrupt(fmt.Sprintf("DATA is %d bytes, want 4", len(sub.Data)))
			}
			l.Flags = binary.LittleEndian.Uint32(sub.Data)
		case TagNNAM:
			if len(sub.Data) != 1 {
				return nil, corrupt(fmt.Sprintf("NNAM is %d bytes, want 1", len(sub.Data)))
			}
			l.ChanceNone = sub.Data[0]
		case TagINDX:
			if len(sub.Data) != 4 {
				return nil, corrupt(fmt.Sprintf("INDX is %d bytes, want 4", len(sub.Data)))
			}
			declared = binary.LittleEndian.Uint32(sub.Data)
			sawIndex = true
		case kind.entryTag():
			if havePending {
				return nil, corrupt(fmt.Sprintf("reference %q has no INTV", pendingRef))
			}
			ref, err := decodeString(sub.Data)
			if err != nil {
				return nil, err
			}
			pendingRef = ref
			havePending = true
		case TagINTV:
			if !havePending {
				return nil, corrupt("INTV without a preceding reference")
			}
			if len(sub.Data) != 2 {
				return nil, corrupt(fmt.Sprintf("INTV is %d bytes, want 2", len(sub.Data)))
			}
			level := binary.LittleEndian.Uint16(sub.Data)
			if level == 0 {
				return nil, corrupt(fmt.Sprintf("entry %q has level 0", pendingRef))
			}
			decoded++
			e := Entry{ID: pendingRef, Level: level}
			if !seen[e] {
				seen[e] = true
				l.Entries = append(l.Entries, e)
			}
			havePending = false
		}
	}

	if !sawName {
		return nil, corrupt("missing NAME subrecord")
	}
	if havePending {
		return nil, corrupt(fmt.Sprintf("reference %q has no INTV", pendingRef))
	}
	if sawIndex && declared != uint32(decoded) {
		return nil, corrupt(fmt.Sprintf("INDX declares %d entries, decoded %d", declared, decoded))
	}
	return l, nil
}

// Record encodes the list canonically: entries deduplicated and sorted by
// reference id then level, so semantically equal lists serialize to
// byte-identical records.
func (l *LeveledList) Record() (*Record, error) {
	id, err := encodeStringZ(l.ID)
	if err != nil {
		return nil, err
	}
	buf, err := appendSubrecord(nil, TagNAME, id)
	if err != nil {
		return nil, err
	}

	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, l.Flags)
	if buf, err = appendSubrecord(buf, TagDATA, data); err != nil {
		return nil, err
	}
	if buf, err = appendSubrecord(buf, TagNNAM, []byte{l.ChanceNone}); err != nil {
		return nil, err
	}

	entries := canonicalEntries(l.Entries)

	indx := make([]byte, 4)
	binary.LittleEndian.PutUint32(indx, uint32(len(entries)))
	if buf, err = appendSubrecord(buf, TagINDX, indx); err != nil {
		return nil, err
	}

	entryTag := l.Kind.entryTag()
	for _, e := range entries {
		ref, err := encodeStringZ(e.ID)
		if err != nil {
			return nil, err
		}
		if buf, err = appendSubrecord(buf, entryTag, ref); err != nil {
			return nil, err
		}
		level := make([]byte, 2)
		binary.LittleEndian.PutUint16(level, e.Level)
		if buf, err = appendSubrecord(buf, TagINTV, level); err != nil {
			return nil, err
		}
	}

	return &Record{Tag: l.Kind.Tag(), Data: buf}, nil
}

// canonicalEntries returns a deduplicated copy sorted by id then level.
func canonicalEntries(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	seen := make(map[Entry]bool, len(entries))
	for _, e := range entries {
		if !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ID != out[j].ID {
			return out[i].ID < out[j].ID
		}
		return out[i].Level < out[j].Level
	})
	return out
}
