// Package pofile implements strict parsing of GNU gettext PO catalogs.
//
// Unlike lenient PO editors, the parser in this package enforces the full
// catalog grammar: section ordering, quoted-string syntax, the allowed
// escape set, plural index sequencing, and key uniqueness. Any violation
// aborts the parse with a SyntaxError carrying the filename and 1-based
// line number. The result is an ordered collection of messages suitable
// for compilation into a binary MO catalog.
package pofile

import (
	"fmt"
	"strings"
)

// Key identifies a message within a catalog: the msgid, optionally
// disambiguated by a msgctxt. Keys are comparable and unique per catalog.
type Key struct {
	// Ctx is the msgctxt. Only meaningful when HasCtx is true.
	Ctx string
	// HasCtx reports whether the message carries a context.
	HasCtx bool
	// ID is the msgid. The empty string identifies the header entry.
	ID string
}

// String renders the key for diagnostics.
func (k Key) String() string {
	if k.HasCtx {
		return fmt.Sprintf("%q (context %q)", k.ID, k.Ctx)
	}
	return fmt.Sprintf("%q", k.ID)
}

// Message is a single translation unit from a PO file.
type Message struct {
	// Ctx is the msgctxt. Only meaningful when HasCtx is true.
	Ctx string
	// HasCtx reports whether a msgctxt section was present.
	HasCtx bool
	// ID is the msgid (source-language text).
	ID string
	// PluralID is the msgid_plural. Only meaningful when Plural is true.
	PluralID string
	// Plural reports whether the message has plural forms.
	Plural bool
	// Str is the translation for non-plural messages.
	Str string
	// Strs are the plural translations, indexed 0..N-1, for plural messages.
	Strs []string
	// Fuzzy is set when a "#," flag comment marks the entry as unreviewed.
	Fuzzy bool
}

// Key returns the catalog key of the message.
func (m *Message) Key() Key {
	return Key{Ctx: m.Ctx, HasCtx: m.HasCtx, ID: m.ID}
}

// IsHeader reports whether this is the catalog header entry (empty msgid,
// no context).
func (m *Message) IsHeader() bool {
	return m.ID == "" && !m.HasCtx
}

// HeaderField extracts a field value from a header entry's RFC-822-style
// metadata block. Field names are matched case-insensitively. Returns ""
// when the field is absent.
func (m *Message) HeaderField(name string) string {
	for _, line := range strings.Split(m.Str, "\n") {
		if idx := strings.Index(line, ":"); idx > 0 {
			if strings.EqualFold(strings.TrimSpace(line[:idx]), name) {
				return strings.TrimSpace(line[idx+1:])
			}
		}
	}
	return ""
}

// Catalog is the parsed form of a PO file: a mapping from key to message
// that also remembers commit order.
type Catalog struct {
	byKey map[Key]*Message
	order []Key
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byKey: make(map[Key]*Message)}
}

// Add commits a message to the catalog. A repeated key is an error, never
// a merge.
func (c *Catalog) Add(m *Message) error {
	key := m.Key()
	if _, exists := c.byKey[key]; exists {
		return fmt.Errorf("duplicate entry: %s", key)
	}
	c.byKey[key] = m
	c.order = append(c.order, key)
	return nil
}

// Lookup returns the message stored under key, if any.
func (c *Catalog) Lookup(key Key) (*Message, bool) {
	m, ok := c.byKey[key]
	return m, ok
}

// Len returns the number of messages in the catalog.
func (c *Catalog) Len() int {
	return len(c.byKey)
}

// Messages returns all messages in commit order.
func (c *Catalog) Messages() []*Message {
	msgs := make([]*Message, 0, len(c.order))
	for _, key := range c.order {
		msgs = append(msgs, c.byKey[key])
	}
	return msgs
}

// Header returns the catalog header entry (empty msgid), or nil when the
// catalog has none.
func (c *Catalog) Header() *Message {
	m, ok := c.byKey[Key{}]
	if !ok {
		return nil
	}
	return m
}

// RemoveFuzzy drops all non-header messages marked fuzzy and returns the
// number removed. Compilers skip fuzzy entries unless told otherwise.
func (c *Catalog) RemoveFuzzy() int {
	removed := 0
	kept := c.order[:0]
	for _, key := range c.order {
		m := c.byKey[key]
		if m.Fuzzy && !m.IsHeader() {
			delete(c.byKey, key)
			removed++
			continue
		}
		kept = append(kept, key)
	}
	c.order = kept
	return removed
}
