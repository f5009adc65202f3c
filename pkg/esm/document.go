package esm

import (
	stderrors "errors"
	"io"
	"os"
	"path/filepath"

	pkgerrors "github.com/agentstation/openmwmm/pkg/errors"
)

// Document is a fully parsed content file. Loading never mutates the
// source; Records keeps every post-header record byte-for-byte so a
// rewrite can pass untouched records through verbatim.
type Document struct {
	// Path is where the file was read from, empty for in-memory streams.
	Path string

	// Header is the decoded TES3 record.
	Header *Header

	// Records holds every record after the TES3 header, in file order.
	Records []*Record

	// Lists holds the decoded leveled lists in order of first appearance.
	// When an identifier is defined twice in one file the later definition
	// replaces the earlier one in place.
	Lists []*LeveledList

	index   map[string]*LeveledList
	listIDs map[*Record]string
}

// LoadFile parses the content file at path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.WrapIO("open", path, err)
	}
	defer f.Close()
	return Load(f, path)
}

// Load parses a content file from r. The path annotates errors and names
// the document; it may be empty. Leveled lists are decoded eagerly and a
// corrupt one fails the whole load.
func Load(r io.Reader, path string) (*Document, error) {
	reader := NewReader(r, path)

	first, err := reader.Next()
	if err == io.EOF {
		return nil, &pkgerrors.MalformedRecordError{
			Path:    path,
			Message: "file has no records",
		}
	}
	if err != nil {
		return nil, err
	}

	header, err := decodeHeader(first, path)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Path:    path,
		Header:  header,
		index:   make(map[string]*LeveledList),
		listIDs: make(map[*Record]string),
	}

	for {
		rec, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		doc.Records = append(doc.Records, rec)

		if !rec.Tag.IsLeveledList() {
			continue
		}
		list, err := DecodeLeveledList(rec)
		if err != nil {
			return nil, notePath(err, path)
		}
		doc.listIDs[rec] = list.ID
		if prev, ok := doc.index[list.ID]; ok {
			// Last definition wins, keeping the original position.
			for i, l := range doc.Lists {
				if l == prev {
					doc.Lists[i] = list
					break
				}
			}
		} else {
			doc.Lists = append(doc.Lists, list)
		}
		doc.index[list.ID] = list
	}

	return doc, nil
}

// List returns the leveled list with the given identifier.
func (d *Document) List(id string) (*LeveledList, bool) {
	l, ok := d.index[id]
	return l, ok
}

// Name returns the document's base filename, or empty for in-memory
// documents.
func (d *Document) Name() string {
	if d.Path == "" {
		return ""
	}
	return filepath.Base(d.Path)
}

// notePath stamps the source path onto a CorruptListError raised while
// decoding, so callers see which file held the broken list.
func notePath(err error, path string) error {
	var corrupt *pkgerrors.CorruptListError
	if stderrors.As(err, &corrupt) && corrupt.Path == "" {
		corrupt.Path = path
	}
	return err
}
