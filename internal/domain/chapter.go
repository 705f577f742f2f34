// Package domain holds the chapter layout, report records, and validation
// result types shared by the validator and the CLI.
package domain

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrInvalidUnitID is returned when a chapter id is absolute or escapes topics/.
var ErrInvalidUnitID = errors.New("invalid chapter id")

// ErrInvalidScenarioName is returned when a scenario name escapes scenarios/.
var ErrInvalidScenarioName = errors.New("invalid scenario name")

// Layout constants for a chapter tree.
const (
	TopicsDir     = "topics"
	ConfigDir     = ".chapter"
	ConfigFile    = "config.yaml"
	LockFile      = ".lock"
	ScenariosDir  = "scenarios"
	DescriptionMD = "README.md"
	DefaultStatus = "draft"
	KeepFile      = ".gitkeep"
)

// RequiredConfigFields lists the top-level keys every chapter config must define.
var RequiredConfigFields = []string{"id", "title", "scenarios"}

// RequiredFrontmatterFields lists the keys every scenario README frontmatter must define.
var RequiredFrontmatterFields = []string{"title", "type", "complexity", "status"}

// ArtifactKind enumerates the entries a scenario directory must contain.
type ArtifactKind int

const (
	// ArtifactDescription is the scenario README.md.
	ArtifactDescription ArtifactKind = iota
	// ArtifactImplementation is the implementation/ directory.
	ArtifactImplementation
	// ArtifactTests is the tests/ directory.
	ArtifactTests
)

// Artifacts is the fixed, ordered set of required scenario artifacts.
var Artifacts = []ArtifactKind{ArtifactDescription, ArtifactImplementation, ArtifactTests}

// Name returns the on-disk name of the artifact.
func (k ArtifactKind) Name() string {
	switch k {
	case ArtifactDescription:
		return DescriptionMD
	case ArtifactImplementation:
		return "implementation"
	default:
		return "tests"
	}
}

// IsDir reports whether the artifact is expected to be a directory.
func (k ArtifactKind) IsDir() bool {
	return k != ArtifactDescription
}

// Label returns the artifact name as shown in reports; directories carry a trailing slash.
func (k ArtifactKind) Label() string {
	if k.IsDir() {
		return k.Name() + "/"
	}
	return k.Name()
}

// ScenarioRef is one named scenario referenced from a chapter config.
type ScenarioRef struct {
	Name       string
	Type       string
	Complexity string
}

// ChapterConfig is the parsed form of a chapter's .chapter/config.yaml.
type ChapterConfig struct {
	// Present records which top-level keys the document defines.
	Present map[string]bool
	// ID and Title hold the scalar values of the id and title keys, if any.
	ID    string
	Title string
	// Scenarios lists the non-empty scenario entries in document order.
	Scenarios []ScenarioRef
	// Notes holds shape problems found while reading the scenarios mapping.
	Notes []ConfigNote
}

// Has reports whether the config defines the given top-level key.
func (c *ChapterConfig) Has(key string) bool {
	return c.Present[key]
}

// ConfigNote describes a tolerated shape problem in a chapter config.
type ConfigNote struct {
	Kind    Kind
	Message string
}

// Unit resolves the filesystem paths of one chapter under a repository root.
type Unit struct {
	Root string
	ID   string
}

// NewUnit validates id and returns the unit rooted at root.
func NewUnit(root, id string) (Unit, error) {
	if id == "" || filepath.IsAbs(id) || escapes(id) {
		return Unit{}, ErrInvalidUnitID
	}
	return Unit{Root: root, ID: id}, nil
}

// Dir returns <root>/topics/<id>.
func (u Unit) Dir() string {
	return filepath.Join(u.Root, TopicsDir, u.ID)
}

// ConfigPath returns <root>/topics/<id>/.chapter/config.yaml.
func (u Unit) ConfigPath() string {
	return filepath.Join(u.Dir(), ConfigDir, ConfigFile)
}

// LockPath returns the advisory lock file used by mutating commands.
func (u Unit) LockPath() string {
	return filepath.Join(u.Dir(), ConfigDir, LockFile)
}

// ScenariosPath returns <root>/topics/<id>/scenarios.
func (u Unit) ScenariosPath() string {
	return filepath.Join(u.Dir(), ScenariosDir)
}

// ScenarioPath returns the directory of the named scenario.
func (u Unit) ScenarioPath(name string) (string, error) {
	if filepath.IsAbs(name) || escapes(name) {
		return "", ErrInvalidScenarioName
	}
	return filepath.Join(u.ScenariosPath(), name), nil
}

// escapes reports whether a relative path climbs above its base.
func escapes(rel string) bool {
	clean := filepath.ToSlash(filepath.Clean(rel))
	return clean == "." || clean == ".." || strings.HasPrefix(clean, "../")
}
