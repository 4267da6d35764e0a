package parser

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decodeInput converts raw export bytes to UTF-8 and strips any byte-order mark.
// UTF-8 and UTF-16 are recognised by BOM; invalid UTF-8 without a BOM is read as Latin-1.
// Returns the decoded bytes and the name of the detected encoding.
func decodeInput(data []byte) ([]byte, string, error) {
	name := "utf-8"
	fallback := unicode.UTF8.NewDecoder()
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		name = "utf-8-bom"
	case bytes.HasPrefix(data, bomUTF16LE):
		name = "utf-16le"
	case bytes.HasPrefix(data, bomUTF16BE):
		name = "utf-16be"
	case !utf8.Valid(data):
		name = "latin-1"
		fallback = charmap.ISO8859_1.NewDecoder()
	}

	decoded, _, err := transform.Bytes(unicode.BOMOverride(fallback), data)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", name, err)
	}
	return decoded, name, nil
}
