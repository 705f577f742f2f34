package chapter

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/eykd/chapterlint/internal/domain"
	"github.com/eykd/chapterlint/internal/frontmatter"
)

// FileWriter abstracts creating scenario skeleton files.
type FileWriter interface {
	CreateFile(ctx context.Context, path, content string) error
}

// Locker abstracts advisory lock acquisition for mutating commands.
type Locker interface {
	With(ctx context.Context, fn func() error) error
}

// LockerFactory returns the Locker guarding the lock file at path.
type LockerFactory func(path string) Locker

// PlannedFile is one file the scaffolder creates or would create.
type PlannedFile struct {
	Scenario string
	Path     string
	Content  string
}

// ScaffoldResult holds the outcome of a scaffold run.
type ScaffoldResult struct {
	Files   []PlannedFile
	Applied bool
}

// Scaffolder creates skeletons for scenarios a chapter config references
// but that do not exist on disk yet.
type Scaffolder struct {
	fs      FileSystem
	writer  FileWriter
	newLock LockerFactory
	log     *slog.Logger
}

// NewScaffolder creates a Scaffolder. A nil logger discards output.
func NewScaffolder(fs FileSystem, writer FileWriter, newLock LockerFactory, logger *slog.Logger) *Scaffolder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scaffolder{fs: fs, writer: writer, newLock: newLock, log: logger}
}

// Scaffold plans the missing files for chapter id and, when apply is set,
// writes them under the chapter lock. Existing files are never touched.
func (s *Scaffolder) Scaffold(ctx context.Context, root, id string, apply bool) (*ScaffoldResult, error) {
	unit, err := domain.NewUnit(root, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, id)
	}

	cfg, err := loadConfig(ctx, s.fs, unit)
	if err != nil {
		return nil, err
	}

	var planned []PlannedFile
	for _, ref := range cfg.Scenarios {
		files, err := s.plan(ctx, unit, ref)
		if err != nil {
			return nil, err
		}
		planned = append(planned, files...)
	}

	result := &ScaffoldResult{Files: planned}
	if !apply || len(planned) == 0 {
		return result, nil
	}

	err = s.newLock(unit.LockPath()).With(ctx, func() error {
		for _, f := range planned {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := s.writer.CreateFile(ctx, f.Path, f.Content); err != nil {
				return err
			}
			s.log.Debug("created scaffold file", "path", f.Path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Applied = true
	return result, nil
}

// plan lists the skeleton files missing for one scenario.
func (s *Scaffolder) plan(ctx context.Context, unit domain.Unit, ref domain.ScenarioRef) ([]PlannedFile, error) {
	dir, err := unit.ScenarioPath(ref.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, ref.Name)
	}

	var files []PlannedFile
	for _, kind := range domain.Artifacts {
		target := filepath.Join(dir, kind.Name())
		exists, err := s.exists(ctx, target)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		f := PlannedFile{Scenario: ref.Name}
		if kind.IsDir() {
			f.Path = filepath.Join(target, domain.KeepFile)
		} else {
			f.Path = target
			f.Content = DescriptionTemplate(ref)
		}
		files = append(files, f)
	}
	return files, nil
}

func (s *Scaffolder) exists(ctx context.Context, path string) (bool, error) {
	_, err := s.fs.Stat(ctx, path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, iofs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
}

// DescriptionTemplate renders the README.md skeleton for a scenario.
func DescriptionTemplate(ref domain.ScenarioRef) string {
	var fm strings.Builder
	fields := [][2]string{
		{"title", ref.Name},
		{"type", ref.Type},
		{"complexity", ref.Complexity},
		{"status", domain.DefaultStatus},
	}
	for _, kv := range fields {
		fm.WriteString(kv[0] + ": " + frontmatter.EncodeYAMLValue(kv[1]) + "\n")
	}
	return frontmatter.Serialize(fm.String(), "\n# "+ref.Name+"\n")
}
