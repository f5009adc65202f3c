package esm

import (
	"encoding/binary"
	"math"
)

// Fixtures are assembled byte-by-byte, independent of the package's own
// encoders, so a symmetric codec bug cannot cancel itself out in tests.

func le16(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

func le32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func le64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

func zstr(s string) []byte {
	return append([]byte(s), 0)
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// rawSub builds one subrecord: tag, uint16 length, payload.
func rawSub(tag string, data []byte) []byte {
	out := []byte(tag)
	out = binary.LittleEndian.AppendUint16(out, uint16(len(data)))
	return append(out, data...)
}

// rawRecord builds one record: tag, uint32 length, uint32 flags, payload.
func rawRecord(tag string, flags uint32, payload []byte) []byte {
	out := []byte(tag)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(payload)))
	out = binary.LittleEndian.AppendUint32(out, flags)
	return append(out, payload...)
}

// rawHeader builds a TES3 record with the given record count and masters.
func rawHeader(numRecords uint32, masters ...string) []byte {
	hedr := make([]byte, 300)
	binary.LittleEndian.PutUint32(hedr[0:4], math.Float32bits(Version13))
	binary.LittleEndian.PutUint32(hedr[4:8], uint32(KindPlugin))
	copy(hedr[8:40], "tester")
	copy(hedr[40:296], "fixture file")
	binary.LittleEndian.PutUint32(hedr[296:300], numRecords)

	payload := rawSub("HEDR", hedr)
	for _, m := range masters {
		payload = append(payload, rawSub("MAST", zstr(m))...)
		payload = append(payload, rawSub("DATA", le64(1024))...)
	}
	return rawRecord("TES3", 0, payload)
}

type fxEntry struct {
	id    string
	level uint16
}

// rawList builds a LEVC or LEVI record with entries in the given order.
func rawList(tag, id string, flags uint32, chance uint8, entries []fxEntry) []byte {
	entryTag := "CNAM"
	if tag == "LEVI" {
		entryTag = "INAM"
	}
	payload := rawSub("NAME", zstr(id))
	payload = append(payload, rawSub("DATA", le32(flags))...)
	payload = append(payload, rawSub("NNAM", []byte{chance})...)
	payload = append(payload, rawSub("INDX", le32(uint32(len(entries))))...)
	for _, e := range entries {
		payload = append(payload, rawSub(entryTag, zstr(e.id))...)
		payload = append(payload, rawSub("INTV", le16(e.level))...)
	}
	return rawRecord(tag, 0, payload)
}
