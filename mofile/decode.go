package mofile

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Entry is one message decoded from an MO file.
type Entry struct {
	// Ctx is the msgctxt split off the on-disk key. Only meaningful when
	// HasCtx is true.
	Ctx string
	// HasCtx reports whether the on-disk key contained a 0x04 separator.
	HasCtx bool
	// ID is the msgid (singular source text).
	ID string
	// PluralID is the msgid_plural, present when the key held two
	// NUL-joined source forms.
	PluralID string
	// Plural reports whether the entry carries plural forms.
	Plural bool
	// Strs are the translations: one element for plain entries, one per
	// plural form otherwise.
	Strs []string
}

// File is a decoded MO catalog.
type File struct {
	// BigEndian reports the byte order the file was written in.
	BigEndian bool
	// Entries are the messages in on-disk (sorted key) order.
	Entries []Entry
}

// Header returns the metadata block of the header entry (empty msgid), or
// "" when the catalog has none.
func (f *File) Header() string {
	for _, e := range f.Entries {
		if e.ID == "" && !e.HasCtx {
			if len(e.Strs) > 0 {
				return e.Strs[0]
			}
			return ""
		}
	}
	return ""
}

// HeaderField extracts a field from the header metadata block by
// case-insensitive name.
func (f *File) HeaderField(name string) string {
	for _, line := range strings.Split(f.Header(), "\n") {
		if idx := strings.Index(line, ":"); idx > 0 {
			if strings.EqualFold(strings.TrimSpace(line[:idx]), name) {
				return strings.TrimSpace(line[idx+1:])
			}
		}
	}
	return ""
}

// Decode parses an MO file buffer. Both byte orders are accepted; the
// first word identifies which one is in use.
func Decode(data []byte) (*File, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("truncated MO file: %d bytes", len(data))
	}

	var order binary.ByteOrder = binary.LittleEndian
	f := &File{}
	switch order.Uint32(data[0:4]) {
	case MagicLittleEndian:
	case MagicBigEndian:
		order = binary.BigEndian
		f.BigEndian = true
	default:
		return nil, fmt.Errorf("bad magic number: not an MO file")
	}

	version := order.Uint32(data[4:8])
	if major := version >> 16; major > 1 {
		return nil, fmt.Errorf("unsupported MO format revision %d", major)
	}

	count := order.Uint32(data[8:12])
	keyTable := order.Uint32(data[12:16])
	valTable := order.Uint32(data[16:20])

	readString := func(table, i uint32) (string, error) {
		off := table + 8*i
		if uint64(off)+8 > uint64(len(data)) {
			return "", fmt.Errorf("index table entry %d out of bounds", i)
		}
		length := order.Uint32(data[off : off+4])
		start := order.Uint32(data[off+4 : off+8])
		if uint64(start)+uint64(length) > uint64(len(data)) {
			return "", fmt.Errorf("string %d out of bounds", i)
		}
		return string(data[start : start+length]), nil
	}

	f.Entries = make([]Entry, 0, count)
	for i := uint32(0); i < count; i++ {
		key, err := readString(keyTable, i)
		if err != nil {
			return nil, err
		}
		val, err := readString(valTable, i)
		if err != nil {
			return nil, err
		}

		var e Entry
		if idx := strings.IndexByte(key, '\x04'); idx >= 0 {
			e.Ctx = key[:idx]
			e.HasCtx = true
			key = key[idx+1:]
		}
		ids := strings.Split(key, "\x00")
		e.ID = ids[0]
		if len(ids) > 1 {
			e.PluralID = ids[1]
			e.Plural = true
		}
		e.Strs = strings.Split(val, "\x00")
		f.Entries = append(f.Entries, e)
	}
	return f, nil
}
