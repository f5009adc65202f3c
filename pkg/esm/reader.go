package esm

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/agentstation/openmwmm/pkg/constants"
	"github.com/agentstation/openmwmm/pkg/errors"
)

// Reader scans records from a Morrowind-format stream in file order.
type Reader struct {
	r      *bufio.Reader
	path   string
	offset int64
}

// NewReader returns a Reader over r. The path is only used to annotate
// errors and may be empty.
func NewReader(r io.Reader, path string) *Reader {
	return &Reader{
		r:    bufio.NewReader(r),
		path: path,
	}
}

// Next returns the next record in the stream. It returns io.EOF once the
// stream is cleanly exhausted. A stream that ends inside a record header or
// payload yields a MalformedRecordError instead.
func (r *Reader) Next() (*Record, error) {
	start := r.offset

	var header [recordHeaderSize]byte
	n, err := io.ReadFull(r.r, header[:])
	if err == io.EOF && n == 0 {
		return nil, io.EOF
	}
	if err != nil {
		return nil, r.malformed(start, "", "truncated record header", err)
	}
	r.offset += recordHeaderSize

	tag := Tag(header[0:4])
	size := binary.LittleEndian.Uint32(header[4:8])
	flags := binary.LittleEndian.Uint32(header[8:12])

	if size > constants.MaxRecordSize {
		return nil, r.malformed(start, tag,
			fmt.Sprintf("declared size %d exceeds the %d byte limit", size, constants.MaxRecordSize), nil)
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(r.r, data); err != nil {
		return nil, r.malformed(start, tag, "truncated record payload", err)
	}
	r.offset += int64(size)

	return &Record{
		Tag:    tag,
		Flags:  flags,
		Data:   data,
		offset: start,
	}, nil
}

func (r *Reader) malformed(offset int64, tag Tag, msg string, err error) error {
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		err = nil // the message already says truncated
	}
	return &errors.MalformedRecordError{
		Path:    r.path,
		Record:  string(tag),
		Offset:  offset,
		Message: msg,
		Err:     err,
	}
}
