package frontmatter

import (
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrBadMerge is returned when a << merge key does not reference a mapping
// or a sequence of mappings.
var ErrBadMerge = errors.New("merge key value is not a mapping or a sequence of mappings")

// ErrRecursiveMerge is returned when a merged mapping includes itself.
var ErrRecursiveMerge = errors.New("merge key references its own mapping")

// MappingFields returns the key/value pairs of a mapping node the way a
// YAML loader builds a dictionary from it: aliases are followed, << merge
// keys are expanded, and a repeated key keeps the position of its first
// occurrence with the value of its last. Explicit keys override merged
// ones; in a merged sequence, earlier mappings override later ones.
func MappingFields(n *yaml.Node) ([]Field, error) {
	raw, err := flatten(resolve(n), map[*yaml.Node]bool{})
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(raw))
	fields := make([]Field, 0, len(raw))
	for _, f := range raw {
		if i, ok := index[f.Key]; ok {
			fields[i].Value = f.Value
			continue
		}
		index[f.Key] = len(fields)
		fields = append(fields, f)
	}
	return fields, nil
}

// flatten lists merged pairs first, then the mapping's own pairs, so that
// last-wins deduplication gives explicit keys precedence.
func flatten(n *yaml.Node, active map[*yaml.Node]bool) ([]Field, error) {
	if active[n] {
		return nil, ErrRecursiveMerge
	}
	active[n] = true
	defer delete(active, n)

	var merged, own []Field
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if key.ShortTag() != "!!merge" {
			own = append(own, Field{Key: key.Value, Value: resolve(val)})
			continue
		}

		sources, err := mergeSources(resolve(val))
		if err != nil {
			return nil, err
		}
		for _, src := range sources {
			pairs, err := flatten(src, active)
			if err != nil {
				return nil, err
			}
			merged = append(merged, pairs...)
		}
	}
	return append(merged, own...), nil
}

// mergeSources returns the mappings a merge value names, last first.
func mergeSources(v *yaml.Node) ([]*yaml.Node, error) {
	switch v.Kind {
	case yaml.MappingNode:
		return []*yaml.Node{v}, nil
	case yaml.SequenceNode:
		sources := make([]*yaml.Node, len(v.Content))
		for i, item := range v.Content {
			item = resolve(item)
			if item.Kind != yaml.MappingNode {
				return nil, ErrBadMerge
			}
			sources[len(v.Content)-1-i] = item
		}
		return sources, nil
	default:
		return nil, ErrBadMerge
	}
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
