package pofile

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// headerCharset extracts the charset parameter from the Content-Type field
// of a header entry's metadata block. Returns "" when no charset is
// declared.
func headerCharset(header string) string {
	for _, line := range strings.Split(header, "\n") {
		idx := strings.Index(line, ":")
		if idx <= 0 || !strings.EqualFold(strings.TrimSpace(line[:idx]), "Content-Type") {
			continue
		}
		for _, part := range strings.Split(line[idx+1:], ";") {
			part = strings.TrimSpace(part)
			if len(part) > 8 && strings.EqualFold(part[:8], "charset=") {
				return strings.Trim(part[8:], `"'`)
			}
		}
	}
	return ""
}

// charsetAliases maps common non-IANA charset spellings (Python codec
// names, historical aliases) to names the IANA index resolves.
var charsetAliases = map[string]string{
	"latin1":    "iso-8859-1",
	"latin-1":   "iso-8859-1",
	"iso8859-1": "iso-8859-1",
	"ascii":     "utf-8",
	"us-ascii":  "utf-8",
	"utf8":      "utf-8",
	"mac-roman": "macintosh",
	"macroman":  "macintosh",
	"cp1252":    "windows-1252",
}

// charsetEncoding resolves a charset name, as declared in a PO header, to
// a decoder-capable encoding.
func charsetEncoding(name string) (encoding.Encoding, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "_", "-")
	if alias, ok := charsetAliases[n]; ok {
		n = alias
	}
	if n == "macintosh" {
		return charmap.Macintosh, nil
	}
	enc, err := ianaindex.IANA.Encoding(n)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", name)
	}
	return enc, nil
}
