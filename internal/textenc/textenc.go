// Package textenc inspects Markdown bytes for encoding defects that break
// frontmatter detection or indicate mojibake.
package textenc

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	utf8BOM     = []byte{0xEF, 0xBB, 0xBF}
	replacement = []byte(string(utf8.RuneError))
)

// Report summarizes the defects found in a document.
type Report struct {
	BOM         bool
	InvalidUTF8 bool
	// Replacements counts U+FFFD characters already present in the input.
	Replacements int
}

// Clean reports whether no defect was found.
func (r Report) Clean() bool {
	return !r.BOM && !r.InvalidUTF8 && r.Replacements == 0
}

// Decode returns data as UTF-8 text with any leading byte order mark
// removed and each ill-formed byte sequence replaced by U+FFFD, together
// with a report of the defects in the original bytes.
func Decode(data []byte) (string, Report) {
	rep := Report{
		BOM:          bytes.HasPrefix(data, utf8BOM),
		InvalidUTF8:  !utf8.Valid(data),
		Replacements: bytes.Count(data, replacement),
	}

	text, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), data)
	if err != nil {
		return string(bytes.TrimPrefix(data, utf8BOM)), rep
	}
	return string(text), rep
}
