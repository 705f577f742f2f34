package acceptance_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// runChapterlint executes the binary in dir and returns stdout, stderr, and exit code.
func runChapterlint(t *testing.T, dir string, args ...string) (string, string, int) {
	t.Helper()
	cmd := exec.Command(chapterlintBinary, args...)
	cmd.Dir = dir
	cmd.Env = cleanEnv()
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			t.Fatalf("failed to run chapterlint: %v", err)
		}
	}
	return stdout.String(), stderr.String(), exitCode
}

// cleanEnv drops CHAPTERLINT_* overrides inherited from the developer's shell.
func cleanEnv() []string {
	var env []string
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, "CHAPTERLINT_") {
			env = append(env, kv)
		}
	}
	return env
}

// writeFiles creates files under root. Keys ending in "/" become directories.
func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			if err := os.MkdirAll(path, 0o755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// demoChapter returns a fully valid chapter with one scenario.
func demoChapter() map[string]string {
	return map[string]string{
		"topics/demo/.chapter/config.yaml":                   "id: demo\ntitle: Demo\nscenarios:\n  basic:\n    easy: intro\n",
		"topics/demo/scenarios/intro/README.md":              "---\ntitle: Intro\ntype: basic\ncomplexity: easy\nstatus: done\n---\nbody",
		"topics/demo/scenarios/intro/implementation/main.go": "package main\n",
		"topics/demo/scenarios/intro/tests/main_test.go":     "package main\n",
	}
}

func lines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
