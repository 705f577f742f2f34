// Package chapter provides the application services that validate and
// scaffold a chapter's scenario tree.
package chapter

import (
	"context"
	"errors"
	iofs "io/fs"
	"log/slog"
	"path/filepath"

	"github.com/eykd/chapterlint/internal/domain"
	"github.com/eykd/chapterlint/internal/frontmatter"
	"github.com/eykd/chapterlint/internal/slug"
	"github.com/eykd/chapterlint/internal/textenc"
)

// FileSystem abstracts the read-only filesystem access the validator needs.
type FileSystem interface {
	Stat(ctx context.Context, path string) (iofs.FileInfo, error)
	ReadFile(ctx context.Context, path string) ([]byte, error)
	ReadDir(ctx context.Context, path string) ([]string, error)
}

// Validator checks a chapter's config and every scenario it references.
type Validator struct {
	fs  FileSystem
	log *slog.Logger
}

// NewValidator creates a Validator reading through fs. A nil logger discards output.
func NewValidator(fs FileSystem, logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Validator{fs: fs, log: logger}
}

// Validate produces the full report for the chapter id under root.
// Missing files and malformed YAML are recorded, never returned; the only
// error is a context that was already done before the run started.
func (v *Validator) Validate(ctx context.Context, root, id string) (*domain.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &domain.Result{}

	unit, err := domain.NewUnit(root, id)
	if err != nil {
		res.Error(domain.KindInvalidUnitID, id, "Invalid chapter id: %q", id)
		return res, nil
	}
	if _, err := v.fs.Stat(ctx, unit.Dir()); err != nil {
		res.Error(domain.KindUnitNotFound, unit.Dir(), "Chapter path not found: %s", unit.Dir())
		return res, nil
	}

	cfg := v.checkConfig(ctx, unit, res)
	if cfg == nil {
		return res, nil
	}

	for _, note := range cfg.Notes {
		res.Warn(note.Kind, unit.ConfigPath(), "%s", note.Message)
	}
	for _, ref := range cfg.Scenarios {
		v.checkScenario(ctx, unit, ref, res)
	}

	v.log.Debug("chapter validated", "chapter", id,
		"passed", len(res.Passed), "warnings", len(res.Warnings), "errors", len(res.Errors))
	return res, nil
}

// checkConfig records config presence, parse and field checks. It returns
// nil when scenario enumeration must be skipped.
func (v *Validator) checkConfig(ctx context.Context, unit domain.Unit, res *domain.Result) *domain.ChapterConfig {
	path := unit.ConfigPath()

	cfg, err := loadConfig(ctx, v.fs, unit)
	if err != nil {
		var cerr *ConfigError
		errors.As(err, &cerr)
		switch {
		case errors.Is(err, ErrConfigMissing):
			res.Error(domain.KindConfigNotFound, path, "Config not found: %s", path)
		case errors.Is(err, ErrConfigUnreadable):
			res.Error(domain.KindReadError, path, "Cannot read config: %v", cerr.Err)
		default:
			res.Error(domain.KindConfigParseError, path, "Invalid YAML in config: %v", cerr.Err)
		}
		return nil
	}
	v.log.Debug("loaded chapter config", "path", path, "id", cfg.ID, "scenarios", len(cfg.Scenarios))

	for _, field := range domain.RequiredConfigFields {
		if cfg.Has(field) {
			res.Pass(domain.KindConfigField, path, "Config field present: %s", field)
		} else {
			res.Error(domain.KindConfigFieldMissing, path, "Missing config field: %s", field)
		}
	}
	return cfg
}

func (v *Validator) checkScenario(ctx context.Context, unit domain.Unit, ref domain.ScenarioRef, res *domain.Result) {
	dir, err := unit.ScenarioPath(ref.Name)
	if err != nil {
		res.Error(domain.KindInvalidScenarioName, unit.ScenariosPath(),
			"Invalid scenario name: %q (%s/%s)", ref.Name, ref.Type, ref.Complexity)
		return
	}

	if _, err := v.fs.Stat(ctx, dir); err != nil {
		res.Error(domain.KindScenarioNotFound, dir,
			"Scenario not found: %s (%s/%s)", ref.Name, ref.Type, ref.Complexity)
		return
	}
	res.Pass(domain.KindScenarioExists, dir, "Scenario exists: %s", ref.Name)

	if !slug.IsCanonical(ref.Name) {
		res.Warn(domain.KindScenarioNameNotCanonical, dir,
			"  %s: name is not a canonical slug (expected %q)", ref.Name, slug.Slug(ref.Name))
	}

	descriptionExists := false
	for _, kind := range domain.Artifacts {
		path := filepath.Join(dir, kind.Name())
		info, err := v.fs.Stat(ctx, path)
		if err != nil {
			res.Error(domain.KindArtifactMissing, path, "  %s: Missing %s", ref.Name, kind.Label())
			continue
		}
		res.Pass(domain.KindArtifactPresent, path, "  %s: %s exists", ref.Name, kind.Label())
		if kind == domain.ArtifactDescription {
			descriptionExists = true
		}
		v.inspectArtifact(ctx, ref.Name, kind, path, info, res)
	}

	if descriptionExists {
		v.checkFrontmatter(ctx, ref.Name, filepath.Join(dir, domain.DescriptionMD), res)
	}
}

// inspectArtifact adds warnings for artifacts that exist but look wrong.
func (v *Validator) inspectArtifact(ctx context.Context, name string, kind domain.ArtifactKind, path string, info iofs.FileInfo, res *domain.Result) {
	if info.IsDir() != kind.IsDir() {
		want := "a file"
		if kind.IsDir() {
			want = "a directory"
		}
		res.Warn(domain.KindArtifactWrongKind, path, "  %s: %s is not %s", name, kind.Label(), want)
		return
	}
	if !kind.IsDir() {
		return
	}

	entries, err := v.fs.ReadDir(ctx, path)
	if err != nil {
		v.log.Debug("cannot list artifact directory", "path", path, "error", err)
		return
	}
	if len(entries) == 0 {
		res.Warn(domain.KindArtifactEmpty, path, "  %s: %s is empty", name, kind.Label())
	}
}

func (v *Validator) checkFrontmatter(ctx context.Context, name, path string, res *domain.Result) {
	data, err := v.fs.ReadFile(ctx, path)
	if err != nil {
		res.Error(domain.KindReadError, path, "  %s: Cannot read %s: %v", name, domain.DescriptionMD, err)
		return
	}

	content, enc := textenc.Decode(data)
	if enc.BOM {
		res.Warn(domain.KindEncodingBOM, path, "  %s: %s starts with a UTF-8 byte order mark", name, domain.DescriptionMD)
	}
	if enc.InvalidUTF8 {
		res.Warn(domain.KindEncodingInvalidUTF8, path, "  %s: %s is not valid UTF-8", name, domain.DescriptionMD)
	}
	if enc.Replacements > 0 {
		res.Warn(domain.KindEncodingReplacementChar, path,
			"  %s: %s contains %d replacement character(s)", name, domain.DescriptionMD, enc.Replacements)
	}

	fm, _, err := frontmatter.Split(content)
	switch {
	case errors.Is(err, frontmatter.ErrAbsent):
		res.Error(domain.KindFrontmatterAbsent, path, "  %s: No frontmatter found", name)
		return
	case errors.Is(err, frontmatter.ErrUnclosed):
		res.Error(domain.KindFrontmatterUnclosed, path, "  %s: Unclosed frontmatter", name)
		return
	}

	doc, err := frontmatter.Parse(fm)
	if err != nil {
		res.Error(domain.KindFrontmatterParseError, path, "  %s: Invalid frontmatter YAML: %v", name, err)
		return
	}

	for _, field := range domain.RequiredFrontmatterFields {
		if value, ok := doc.Lookup(field); ok {
			res.Pass(domain.KindFrontmatterField, path, "  %s: frontmatter.%s = %s", name, field, value)
		} else {
			res.Error(domain.KindFrontmatterFieldMissing, path, "  %s: Missing frontmatter field: %s", name, field)
		}
	}
}
