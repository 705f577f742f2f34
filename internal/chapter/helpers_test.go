package chapter

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eykd/chapterlint/internal/domain"
	"github.com/eykd/chapterlint/internal/fs"
)

const demoConfig = "id: demo\ntitle: Demo\nscenarios:\n  basic:\n    easy: intro\n"

const introReadme = "---\ntitle: Intro\ntype: basic\ncomplexity: easy\nstatus: done\n---\nbody"

// writeTree creates files under root. Keys ending in "/" become directories.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			if err := os.MkdirAll(path, 0o755); err != nil {
				t.Fatalf("creating %s: %v", rel, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating parent of %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", rel, err)
		}
	}
}

// demoTree returns the files of a fully valid "demo" chapter.
func demoTree() map[string]string {
	return map[string]string{
		"topics/demo/.chapter/config.yaml":                   demoConfig,
		"topics/demo/scenarios/intro/README.md":              introReadme,
		"topics/demo/scenarios/intro/implementation/main.go": "package main\n",
		"topics/demo/scenarios/intro/tests/main_test.go":     "package main\n",
	}
}

func validate(t *testing.T, root, id string) *domain.Result {
	t.Helper()
	res, err := NewValidator(fs.OSReader{}, nil).Validate(context.Background(), root, id)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	return res
}

func messages(records []domain.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Message
	}
	return out
}

func kinds(records []domain.Record) []domain.Kind {
	out := make([]domain.Kind, len(records))
	for i, r := range records {
		out[i] = r.Kind
	}
	return out
}

func countKind(records []domain.Record, kind domain.Kind) int {
	n := 0
	for _, r := range records {
		if r.Kind == kind {
			n++
		}
	}
	return n
}

// faultyFS wraps OSReader and fails ReadFile for one path.
type faultyFS struct {
	fs.OSReader
	failPath string
	err      error
}

func (f faultyFS) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if path == f.failPath {
		return nil, f.err
	}
	return f.OSReader.ReadFile(ctx, path)
}

var errPermission = &iofs.PathError{Op: "open", Path: "README.md", Err: errors.New("permission denied")}
