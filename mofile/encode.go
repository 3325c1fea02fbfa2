// Package mofile implements encoding and decoding of GNU MO binary
// catalogs, the compiled form of PO translation files loaded by gettext
// runtimes.
package mofile

import (
	"bytes"
	"encoding/binary"
	"sort"
	"strings"

	"github.com/minios-linux/mofmt/pofile"
)

const (
	// MagicLittleEndian is the MO magic number as written by this encoder.
	MagicLittleEndian uint32 = 0x950412de
	// MagicBigEndian is the byte-swapped magic found in big-endian files.
	MagicBigEndian uint32 = 0xde120495

	// headerSize is the fixed MO header: 7 32-bit words.
	headerSize = 7 * 4
)

// moKey returns the on-disk lookup key for a message: the msgid alone, or
// context and msgid joined by the 0x04 separator byte.
func moKey(m *pofile.Message) string {
	if m.HasCtx {
		return m.Ctx + "\x04" + m.ID
	}
	return m.ID
}

// moValue returns the on-disk value for a message: the translation, or
// the NUL-joined plural forms in index order.
func moValue(m *pofile.Message) string {
	if m.Plural {
		return strings.Join(m.Strs, "\x00")
	}
	return m.Str
}

// Encode serializes a catalog into the MO binary layout: header, key
// index, value index, key blob, value blob. Keys are sorted, so the
// output is deterministic and independent of the catalog's commit order.
// No hash table is emitted (size and offset are zero); runtimes fall back
// to binary search over the sorted key table.
func Encode(c *pofile.Catalog) []byte {
	msgs := c.Messages()
	sort.Slice(msgs, func(i, j int) bool {
		return moKey(msgs[i]) < moKey(msgs[j])
	})

	n := uint32(len(msgs))
	type span struct {
		keyOff, keyLen uint32
		valOff, valLen uint32
	}
	spans := make([]span, 0, n)

	var keys, values bytes.Buffer
	for _, m := range msgs {
		k, v := moKey(m), moValue(m)
		spans = append(spans, span{
			keyOff: uint32(keys.Len()),
			keyLen: uint32(len(k)),
			valOff: uint32(values.Len()),
			valLen: uint32(len(v)),
		})
		// Each string is NUL terminated; the NUL does not count into
		// the recorded length.
		keys.WriteString(k)
		keys.WriteByte(0)
		values.WriteString(v)
		values.WriteByte(0)
	}

	keyStart := uint32(headerSize) + 16*n
	valueStart := keyStart + uint32(keys.Len())

	out := &bytes.Buffer{}
	out.Grow(int(valueStart) + values.Len())
	order := binary.LittleEndian

	writeU32 := func(v uint32) {
		var word [4]byte
		order.PutUint32(word[:], v)
		out.Write(word[:])
	}

	writeU32(MagicLittleEndian) // magic
	writeU32(0)                 // format version
	writeU32(n)                 // number of entries
	writeU32(headerSize)        // offset of key index table
	writeU32(headerSize + 8*n)  // offset of value index table
	writeU32(0)                 // hash table size
	writeU32(0)                 // hash table offset

	for _, s := range spans {
		writeU32(s.keyLen)
		writeU32(keyStart + s.keyOff)
	}
	for _, s := range spans {
		writeU32(s.valLen)
		writeU32(valueStart + s.valOff)
	}
	out.Write(keys.Bytes())
	out.Write(values.Bytes())
	return out.Bytes()
}
