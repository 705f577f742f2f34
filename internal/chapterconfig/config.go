// Package chapterconfig decodes a chapter's .chapter/config.yaml into a
// domain.ChapterConfig, preserving the document order of scenarios.
package chapterconfig

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/eykd/chapterlint/internal/domain"
	"github.com/eykd/chapterlint/internal/frontmatter"
)

// ErrNotMapping is returned when the config document is not a YAML mapping.
var ErrNotMapping = errors.New("config is not a mapping")

// Parse decodes config data. An empty document yields a config with no keys.
// Merge keys are expanded and a repeated key keeps its last value.
func Parse(data []byte) (*domain.ChapterConfig, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	cfg := &domain.ChapterConfig{Present: map[string]bool{}}
	if len(root.Content) == 0 {
		return cfg, nil
	}

	top := resolve(root.Content[0])
	if isNull(top) {
		return cfg, nil
	}
	if top.Kind != yaml.MappingNode {
		return nil, ErrNotMapping
	}

	fields, err := frontmatter.MappingFields(top)
	if err != nil {
		return nil, err
	}
	for _, f := range fields {
		cfg.Present[f.Key] = true

		switch f.Key {
		case "id":
			cfg.ID = scalar(f.Value)
		case "title":
			cfg.Title = scalar(f.Value)
		case "scenarios":
			if err := readScenarios(cfg, f.Value); err != nil {
				return nil, err
			}
		}
	}
	return cfg, nil
}

// readScenarios walks the scenarios mapping: type -> complexity -> name.
// Non-mapping type entries and empty names are skipped without a note.
func readScenarios(cfg *domain.ChapterConfig, node *yaml.Node) error {
	if isNull(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		cfg.Notes = append(cfg.Notes, domain.ConfigNote{
			Kind:    domain.KindConfigScenariosShape,
			Message: "Config field scenarios is not a mapping; no scenarios checked",
		})
		return nil
	}

	types, err := frontmatter.MappingFields(node)
	if err != nil {
		return err
	}
	for _, t := range types {
		if t.Value.Kind != yaml.MappingNode {
			continue
		}
		levels, err := frontmatter.MappingFields(t.Value)
		if err != nil {
			return err
		}

		for _, level := range levels {
			nameNode := level.Value
			if isEmptyName(nameNode) {
				continue
			}
			if nameNode.Kind != yaml.ScalarNode {
				cfg.Notes = append(cfg.Notes, domain.ConfigNote{
					Kind:    domain.KindScenarioNameShape,
					Message: fmt.Sprintf("Scenario name for %s/%s is not a string; skipped", t.Key, level.Key),
				})
				continue
			}

			cfg.Scenarios = append(cfg.Scenarios, domain.ScenarioRef{
				Name:       nameNode.Value,
				Type:       t.Key,
				Complexity: level.Key,
			})
		}
	}
	return nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

// isEmptyName reports whether a name marks an unplanned scenario: null,
// "", false, zero, or an empty collection.
func isEmptyName(n *yaml.Node) bool {
	switch n.Kind {
	case yaml.SequenceNode, yaml.MappingNode:
		return len(n.Content) == 0
	case yaml.ScalarNode:
	default:
		return false
	}

	switch {
	case isNull(n), n.Value == "":
		return true
	case n.Tag == "!!bool":
		var b bool
		return n.Decode(&b) == nil && !b
	case n.Tag == "!!int", n.Tag == "!!float":
		var f float64
		return n.Decode(&f) == nil && f == 0
	}
	return false
}

func scalar(n *yaml.Node) string {
	if n.Kind != yaml.ScalarNode || isNull(n) {
		return ""
	}
	return n.Value
}
