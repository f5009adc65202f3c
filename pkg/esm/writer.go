package esm

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/agentstation/openmwmm/pkg/constants"
	"github.com/agentstation/openmwmm/pkg/errors"
)

// Write rewrites doc to path with the given leveled lists folded in.
// Records that are not leveled lists pass through byte-for-byte. A record
// whose identifier appears in lists is replaced by the canonical encoding
// of the new definition; later duplicates of a replaced identifier are
// dropped. Lists that never appeared in doc are appended after the last
// record, sorted by kind then identifier. The TES3 record is regenerated
// from doc.Header with the record count corrected.
//
// The file is assembled in memory and written through a temp file in the
// destination directory, so an encode failure or write error leaves the
// destination untouched.
func Write(doc *Document, lists []*LeveledList, path string) error {
	byID := make(map[string]*LeveledList, len(lists))
	for _, l := range lists {
		byID[l.ID] = l
	}

	var plan []*Record
	substituted := make(map[string]bool)
	for _, rec := range doc.Records {
		if !rec.Tag.IsLeveledList() {
			plan = append(plan, rec)
			continue
		}
		id := doc.listIDs[rec]
		list, ok := byID[id]
		if !ok {
			plan = append(plan, rec)
			continue
		}
		if substituted[id] {
			continue
		}
		encoded, err := list.Record()
		if err != nil {
			return err
		}
		plan = append(plan, encoded)
		substituted[id] = true
	}

	var extras []*LeveledList
	for id, l := range byID {
		if !substituted[id] {
			extras = append(extras, l)
		}
	}
	sort.Slice(extras, func(i, j int) bool {
		if extras[i].Kind != extras[j].Kind {
			return extras[i].Kind < extras[j].Kind
		}
		return extras[i].ID < extras[j].ID
	})
	for _, l := range extras {
		encoded, err := l.Record()
		if err != nil {
			return err
		}
		plan = append(plan, encoded)
	}

	header := *doc.Header
	header.NumRecords = uint32(len(plan))
	headerRec, err := header.record()
	if err != nil {
		return err
	}

	size := headerRec.Size()
	for _, rec := range plan {
		size += rec.Size()
	}
	out := make([]byte, 0, size)
	out = appendRecord(out, headerRec)
	for _, rec := range plan {
		out = appendRecord(out, rec)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(out); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.WrapIO("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("write", path, err)
	}
	if err := os.Chmod(tmpPath, constants.FilePermissions); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("chmod", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("move", path, err)
	}
	return nil
}
