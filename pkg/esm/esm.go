// Package esm reads and writes Morrowind-format data files (.esm, .esp,
// .omwaddon) as consumed by the OpenMW engine.
//
// A file is a flat sequence of records. Each record carries a four-character
// tag, a flags word, and an opaque payload of subrecords; the package keeps
// payloads byte-exact so untouched records survive a read/write cycle
// unchanged. Only the TES3 file header and the two leveled-list record types
// (LEVC, LEVI) are decoded into structured values; everything else passes
// through as raw bytes.
//
// All integers are little-endian. All strings are Windows-1252 encoded,
// NUL-terminated where variable-length.
package esm

// Tag is a four-character record or subrecord type code.
type Tag string

// Record tags understood by this package.
const (
	// TagTES3 is the file header record.
	TagTES3 Tag = "TES3"
	// TagLEVC is a leveled-creature list record.
	TagLEVC Tag = "LEVC"
	// TagLEVI is a leveled-item list record.
	TagLEVI Tag = "LEVI"
)

// Subrecord tags used by the records this package decodes.
const (
	// TagHEDR is the header data subrecord of TES3.
	TagHEDR Tag = "HEDR"
	// TagMAST names a master dependency file in TES3.
	TagMAST Tag = "MAST"
	// TagNAME is a record identifier.
	TagNAME Tag = "NAME"
	// TagDATA is record-specific data: list flags in LEVC/LEVI,
	// a master file size in TES3.
	TagDATA Tag = "DATA"
	// TagNNAM is the chance-none byte of a leveled list.
	TagNNAM Tag = "NNAM"
	// TagINDX is the entry count of a leveled list.
	TagINDX Tag = "INDX"
	// TagCNAM references a creature in a LEVC entry.
	TagCNAM Tag = "CNAM"
	// TagINAM references an item in a LEVI entry.
	TagINAM Tag = "INAM"
	// TagINTV is the player level gate of a leveled-list entry.
	TagINTV Tag = "INTV"
)

// IsLeveledList reports whether tag is one of the two leveled-list
// record types.
func (t Tag) IsLeveledList() bool {
	return t == TagLEVC || t == TagLEVI
}
