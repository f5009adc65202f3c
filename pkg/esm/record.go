package esm

import (
	"encoding/binary"
	"fmt"

	"github.com/agentstation/openmwmm/pkg/constants"
	"github.com/agentstation/openmwmm/pkg/errors"
)

// Record is one top-level unit of a data file:
// {4-byte tag}{4-byte size}{4-byte flags}{payload[size]}.
// The payload is opaque and passed through unchanged unless the record is a
// leveled list or the file header; Subrecords decodes it on demand.
type Record struct {
	Tag   Tag
	Flags uint32
	Data  []byte

	// offset is the record's byte position in the source stream,
	// carried for error reporting. Zero for synthesized records.
	offset int64
}

// Subrecord is a nested unit within a record payload:
// {4-byte tag}{2-byte size}{payload[size]}.
type Subrecord struct {
	Tag  Tag
	Data []byte
}

// Size returns the encoded size of the record including its header.
func (r *Record) Size() int {
	return recordHeaderSize + len(r.Data)
}

// Subrecords decodes the record payload into its subrecord sequence.
// It returns a MalformedRecordError when a subrecord header is truncated or
// a declared subrecord length overruns the parent payload.
func (r *Record) Subrecords() ([]Subrecord, error) {
	var subs []Subrecord
	data := r.Data
	off := 0
	for off < len(data) {
		if len(data)-off < subrecordHeaderSize {
			return nil, &errors.MalformedRecordError{
				Record:  string(r.Tag),
				Offset:  r.offset,
				Message: fmt.Sprintf("truncated subrecord header at payload byte %d", off),
			}
		}
		tag := Tag(data[off : off+4])
		size := int(binary.LittleEndian.Uint16(data[off+4 : off+6]))
		off += subrecordHeaderSize
		if size > len(data)-off {
			return nil, &errors.MalformedRecordError{
				Record:  string(r.Tag),
				Offset:  r.offset,
				Message: fmt.Sprintf("subrecord %s overruns parent record by %d bytes", tag, size-(len(data)-off)),
			}
		}
		subs = append(subs, Subrecord{Tag: tag, Data: data[off : off+size]})
		off += size
	}
	return subs, nil
}

const (
	recordHeaderSize    = 12 // tag + size + flags
	subrecordHeaderSize = 6  // tag + size
)

// appendSubrecord appends one encoded subrecord to buf.
func appendSubrecord(buf []byte, tag Tag, data []byte) ([]byte, error) {
	if len(data) > constants.MaxSubrecordSize {
		return nil, errors.NewValidationError(string(tag), len(data),
			fmt.Sprintf("subrecord payload of %d bytes exceeds the %d byte limit", len(data), constants.MaxSubrecordSize))
	}
	buf = append(buf, tag...)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(data)))
	return append(buf, data...), nil
}

// appendRecord appends the record's full wire form to buf.
func appendRecord(buf []byte, rec *Record) []byte {
	buf = append(buf, rec.Tag...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(rec.Data)))
	buf = binary.LittleEndian.AppendUint32(buf, rec.Flags)
	return append(buf, rec.Data...)
}
