// Package omwconfig reads and edits openmw.cfg, the OpenMW launcher
// configuration file.
//
// The file is line-oriented `key=value` with significant duplicate keys:
// every `data=` line registers a mod directory and every `content=` line
// enables a plugin, both in file order. Loading keeps comments, blank
// lines and entry order intact, so a load/edit/write cycle only touches
// the lines it changed.
package omwconfig

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/openmwmm/pkg/constants"
	"github.com/agentstation/openmwmm/pkg/errors"
)

// Keys with special meaning to the manager.
const (
	// KeyData registers a mod directory. Later entries shadow earlier
	// ones when both provide a file of the same name.
	KeyData = "data"
	// KeyContent enables a plugin. Entry order is load order.
	KeyContent = "content"
)

// Entry is one key=value line. Key and Value are read-only views of the
// parsed line; edit the file by removing and re-adding entries.
type Entry struct {
	Key   string
	Value string

	quoted bool   // value was wrapped in double quotes
	raw    string // verbatim source line, empty for entries added in memory
}

// String renders the entry as a config line.
func (e *Entry) String() string {
	if e.raw != "" {
		return e.raw
	}
	if e.quoted || strings.ContainsAny(e.Value, " \t") || e.Key == KeyData {
		return e.Key + `="` + e.Value + `"`
	}
	return e.Key + "=" + e.Value
}

// line is one physical line of the file. Exactly one field is set.
type line struct {
	text  string // verbatim comment, blank or unparsed line
	entry *Entry
}

// File is a parsed openmw.cfg.
type File struct {
	Path string

	lines []line
}

// LoadFile parses the config file at path.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()
	return Load(f, path)
}

// Load parses a config file from r. The path is kept for Write and error
// messages.
func Load(r io.Reader, path string) (*File, error) {
	file := &File{Path: path}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		raw := strings.TrimRight(scanner.Text(), "\r")
		file.lines = append(file.lines, parseLine(raw))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapParse("config", path, err)
	}
	return file, nil
}

func parseLine(raw string) line {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return line{text: raw}
	}
	eq := strings.Index(trimmed, "=")
	if eq < 1 {
		return line{text: raw}
	}

	entry := &Entry{
		Key: strings.TrimSpace(trimmed[:eq]),
		raw: raw,
	}
	value := strings.TrimSpace(trimmed[eq+1:])
	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		value = value[1 : len(value)-1]
		entry.quoted = true
	}
	entry.Value = value
	return line{entry: entry}
}

// Entries returns every key=value entry in file order.
func (f *File) Entries() []*Entry {
	var out []*Entry
	for _, l := range f.lines {
		if l.entry != nil {
			out = append(out, l.entry)
		}
	}
	return out
}

// FindKey returns all entries with the given key, in file order.
func (f *File) FindKey(key string) []*Entry {
	var out []*Entry
	for _, l := range f.lines {
		if l.entry != nil && l.entry.Key == key {
			out = append(out, l.entry)
		}
	}
	return out
}

// Add appends a new entry at the end of the file and returns it. For data
// and content entries the end is the highest priority position.
func (f *File) Add(key, value string) *Entry {
	entry := &Entry{Key: key, Value: value}
	f.lines = append(f.lines, line{entry: entry})
	return entry
}

// Remove deletes an entry. It reports whether the entry was present.
// The match is by key and value, so a caller may remove an entry it
// constructed rather than one returned by FindKey.
func (f *File) Remove(entry *Entry) bool {
	for i, l := range f.lines {
		if l.entry == nil {
			continue
		}
		if l.entry == entry || (l.entry.Key == entry.Key && l.entry.Value == entry.Value) {
			f.lines = append(f.lines[:i], f.lines[i+1:]...)
			return true
		}
	}
	return false
}

// Write saves the file back to its path via a temp file and atomic
// rename, so a failed write never truncates the original.
func (f *File) Write() error {
	if f.Path == "" {
		return errors.NewValidationError("path", "", "config file has no path to write to")
	}

	var b strings.Builder
	for _, l := range f.lines {
		if l.entry != nil {
			b.WriteString(l.entry.String())
		} else {
			b.WriteString(l.text)
		}
		b.WriteByte('\n')
	}

	dir := filepath.Dir(f.Path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.Path)+".tmp-*")
	if err != nil {
		return errors.WrapIO("create", f.Path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(b.String()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.WrapIO("write", f.Path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("write", f.Path, err)
	}
	if err := os.Chmod(tmpPath, constants.FilePermissions); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("chmod", f.Path, err)
	}
	if err := os.Rename(tmpPath, f.Path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("move", f.Path, err)
	}
	return nil
}
