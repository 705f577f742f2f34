package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

// writeDemoChapter creates a fully valid "demo" chapter under root.
func writeDemoChapter(t *testing.T, root string) {
	t.Helper()
	files := map[string]string{
		"topics/demo/.chapter/config.yaml":                   "id: demo\ntitle: Demo\nscenarios:\n  basic:\n    easy: intro\n",
		"topics/demo/scenarios/intro/README.md":              "---\ntitle: Intro\ntype: basic\ncomplexity: easy\nstatus: done\n---\nbody",
		"topics/demo/scenarios/intro/implementation/main.go": "package main\n",
		"topics/demo/scenarios/intro/tests/main_test.go":     "package main\n",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating parent of %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", rel, err)
		}
	}
}
