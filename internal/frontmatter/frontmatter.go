// Package frontmatter splits Markdown documents into a YAML frontmatter
// block and a body, and reads or writes the fields of that block.
package frontmatter

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrAbsent is returned when a document does not open with a --- line.
var ErrAbsent = errors.New("no frontmatter found")

// ErrUnclosed is returned when the opening --- has no matching closing line.
var ErrUnclosed = errors.New("unclosed frontmatter")

// ErrNotMapping is returned when the frontmatter block is valid YAML but not a mapping.
var ErrNotMapping = errors.New("frontmatter is not a mapping")

const delimiter = "---"

// Split separates a document into frontmatter and body components.
// Frontmatter is delimited by --- on its own line; CRLF line endings are accepted.
func Split(input string) (string, string, error) {
	first, rest, found := strings.Cut(input, "\n")
	if strings.TrimSuffix(first, "\r") != delimiter {
		return "", input, ErrAbsent
	}
	if !found {
		return "", "", ErrUnclosed
	}

	pos := 0
	for pos < len(rest) {
		nlIdx := strings.IndexByte(rest[pos:], '\n')

		var line string
		var nextPos int
		if nlIdx < 0 {
			line = rest[pos:]
			nextPos = len(rest)
		} else {
			line = rest[pos : pos+nlIdx]
			nextPos = pos + nlIdx + 1
		}

		if strings.TrimSuffix(line, "\r") == delimiter {
			return rest[:pos], rest[nextPos:], nil
		}

		pos = nextPos
	}

	return "", "", ErrUnclosed
}

// Field is one key of a parsed frontmatter block.
type Field struct {
	Key   string
	Value *yaml.Node
}

// Document holds the fields of a frontmatter block in source order.
type Document struct {
	Fields []Field
}

// Parse decodes a frontmatter block. An empty block yields an empty Document.
// Merge keys are expanded and a repeated key keeps its last value.
func Parse(fm string) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(fm), &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return &Document{}, nil
	}

	mapping := resolve(root.Content[0])
	if mapping.Kind == yaml.ScalarNode && mapping.Tag == "!!null" {
		return &Document{}, nil
	}
	if mapping.Kind != yaml.MappingNode {
		return nil, ErrNotMapping
	}

	fields, err := MappingFields(mapping)
	if err != nil {
		return nil, err
	}
	return &Document{Fields: fields}, nil
}

// Lookup returns the rendered value of key and whether the key is present.
func (d *Document) Lookup(key string) (string, bool) {
	for _, f := range d.Fields {
		if f.Key == key {
			return Render(f.Value), true
		}
	}
	return "", false
}

// Render formats a YAML value for display. Scalars print their literal
// text, null prints as "null", and collections print in flow style.
func Render(n *yaml.Node) string {
	n = resolve(n)
	if n.Kind == yaml.ScalarNode {
		if n.Tag == "!!null" {
			return "null"
		}
		return n.Value
	}

	flow := *n
	flow.Style = yaml.FlowStyle
	out, err := yaml.Marshal(&flow)
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return strings.TrimSpace(string(out))
}

// EncodeYAMLValue encodes a string as a safe YAML scalar value.
// Strings that YAML would read as something other than the same plain
// string are emitted double-quoted with escape sequences.
func EncodeYAMLValue(s string) string {
	if isPlainSafe(s) {
		return s
	}

	var b strings.Builder
	b.WriteByte('"')
	for _, c := range s {
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// isPlainSafe reports whether s round-trips through YAML as the same plain string.
func isPlainSafe(s string) bool {
	if s == "" || strings.ContainsAny(s, "\n\r\t:\"\\#'") || strings.TrimSpace(s) != s {
		return false
	}
	if strings.ContainsAny(s[:1], "-?[]{},&*!|>%@`") {
		return false
	}
	var probe any
	if err := yaml.Unmarshal([]byte(s), &probe); err != nil {
		return false
	}
	str, ok := probe.(string)
	return ok && str == s
}

// Serialize combines frontmatter and body into a complete document.
func Serialize(fm string, body string) string {
	return delimiter + "\n" + fm + delimiter + "\n" + body
}
