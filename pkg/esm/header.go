package esm

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/agentstation/openmwmm/pkg/errors"
)

// FileKind is the file type stamped into the TES3 header.
type FileKind uint32

// File kinds as stored on disk.
const (
	KindPlugin FileKind = 0  // .esp
	KindMaster FileKind = 1  // .esm
	KindSave   FileKind = 32 // .ess
)

// Version13 is the format version written by the Morrowind toolset and the
// one stamped on generated files.
const Version13 float32 = 1.3

// hedrSize is the fixed size of the HEDR subrecord payload.
const hedrSize = 4 + 4 + 32 + 256 + 4

const (
	authorFieldSize      = 32
	descriptionFieldSize = 256
)

// Master names a file this one depends on, with the size recorded at
// creation time. Engines use the size only for stale-master warnings.
type Master struct {
	Name string
	Size uint64
}

// Header is the decoded TES3 record that leads every content file.
type Header struct {
	Version     float32
	Kind        FileKind
	Author      string
	Description string
	NumRecords  uint32
	Masters     []Master
}

// decodeHeader decodes a TES3 record. The path annotates errors only.
func decodeHeader(rec *Record, path string) (*Header, error) {
	if rec.Tag != TagTES3 {
		return nil, &errors.MalformedRecordError{
			Path:    path,
			Record:  string(rec.Tag),
			Offset:  rec.offset,
			Message: "file does not start with a TES3 record",
		}
	}

	subs, err := rec.Subrecords()
	if err != nil {
		return nil, err
	}

	malformed := func(msg string) error {
		return &errors.MalformedRecordError{
			Path:    path,
			Record:  string(TagTES3),
			Offset:  rec.offset,
			Message: msg,
		}
	}

	h := &Header{}
	sawHEDR := false
	pendingMaster := "" // MAST seen, DATA not yet

	for _, sub := range subs {
		switch sub.Tag {
		case TagHEDR:
			if sawHEDR {
				return nil, malformed("duplicate HEDR subrecord")
			}
			sawHEDR = true
			if len(sub.Data) != hedrSize {
				return nil, malformed(fmt.Sprintf("HEDR is %d bytes, want %d", len(sub.Data), hedrSize))
			}
			h.Version = math.Float32frombits(binary.LittleEndian.Uint32(sub.Data[0:4]))
			h.Kind = FileKind(binary.LittleEndian.Uint32(sub.Data[4:8]))
			if h.Author, err = decodeString(sub.Data[8:40]); err != nil {
				return nil, err
			}
			if h.Description, err = decodeString(sub.Data[40:296]); err != nil {
				return nil, err
			}
			h.NumRecords = binary.LittleEndian.Uint32(sub.Data[296:300])
		case TagMAST:
			if pendingMaster != "" {
				return nil, malformed(fmt.Sprintf("master %q has no DATA subrecord", pendingMaster))
			}
			name, err := decodeString(sub.Data)
			if err != nil {
				return nil, err
			}
			pendingMaster = name
		case TagDATA:
			if pendingMaster == "" {
				return nil, malformed("DATA subrecord without a preceding MAST")
			}
			if len(sub.Data) != 8 {
				return nil, malformed(fmt.Sprintf("master DATA is %d bytes, want 8", len(sub.Data)))
			}
			h.Masters = append(h.Masters, Master{
				Name: pendingMaster,
				Size: binary.LittleEndian.Uint64(sub.Data),
			})
			pendingMaster = ""
		}
	}

	if !sawHEDR {
		return nil, malformed("missing HEDR subrecord")
	}
	if pendingMaster != "" {
		return nil, malformed(fmt.Sprintf("master %q has no DATA subrecord", pendingMaster))
	}
	return h, nil
}

// record encodes the header back into a TES3 record.
func (h *Header) record() (*Record, error) {
	hedr := make([]byte, hedrSize)
	binary.LittleEndian.PutUint32(hedr[0:4], math.Float32bits(h.Version))
	binary.LittleEndian.PutUint32(hedr[4:8], uint32(h.Kind))

	author, err := encodeFixedString(h.Author, authorFieldSize)
	if err != nil {
		return nil, err
	}
	copy(hedr[8:40], author)

	desc, err := encodeFixedString(h.Description, descriptionFieldSize)
	if err != nil {
		return nil, err
	}
	copy(hedr[40:296], desc)

	binary.LittleEndian.PutUint32(hedr[296:300], h.NumRecords)

	buf, err := appendSubrecord(nil, TagHEDR, hedr)
	if err != nil {
		return nil, err
	}
	for _, m := range h.Masters {
		name, err := encodeStringZ(m.Name)
		if err != nil {
			return nil, err
		}
		if buf, err = appendSubrecord(buf, TagMAST, name); err != nil {
			return nil, err
		}
		size := make([]byte, 8)
		binary.LittleEndian.PutUint64(size, m.Size)
		if buf, err = appendSubrecord(buf, TagDATA, size); err != nil {
			return nil, err
		}
	}

	return &Record{Tag: TagTES3, Data: buf}, nil
}
