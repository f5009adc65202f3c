// Package constants provides shared constants used throughout the openmwmm
// codebase. This includes default file names, file permissions, and format
// limits that should be consistent across the application.
package constants

// Default file names and locations
const (
	// DefaultMergedName is the default file name for the merged leveled-list plugin
	DefaultMergedName = "Merged_Lists.esp"

	// DefaultConfigName is the base name of the tool's own config file (~/.openmwmm.yaml)
	DefaultConfigName = ".openmwmm"

	// OpenMWConfigName is the name of the OpenMW engine configuration file
	OpenMWConfigName = "openmw.cfg"
)

// Merged plugin header annotations
const (
	// MergedAuthor is written to the author field of a generated plugin
	MergedAuthor = "openmwmm"

	// MergedDescription is written to the description field of a generated
	// plugin so the file is recognizable as tool output
	MergedDescription = "Merged leveled lists. Generated by openmwmm."
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// ESM format limits
const (
	// MaxRecordSize is the sanity cap for a single record payload.
	// Morrowind-era records are tiny; anything near this size means the
	// declared length is corrupt.
	MaxRecordSize = 1 << 26 // 64 MiB

	// MaxSubrecordSize is the largest payload a subrecord can declare
	// (its size field is a uint16).
	MaxSubrecordSize = 1<<16 - 1
)
