package acceptance_test

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestValidate_ValidChapter(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, demoChapter())

	stdout, stderr, code := runChapterlint(t, dir, "validate", "--chapter", "demo")

	if code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr: %s", code, stderr)
	}
	want := []string{
		"[PASS] Config field present: id",
		"[PASS] Config field present: title",
		"[PASS] Config field present: scenarios",
		"[PASS] Scenario exists: intro",
		"[PASS]   intro: README.md exists",
		"[PASS]   intro: implementation/ exists",
		"[PASS]   intro: tests/ exists",
		"[PASS]   intro: frontmatter.title = Intro",
		"[PASS]   intro: frontmatter.type = basic",
		"[PASS]   intro: frontmatter.complexity = easy",
		"[PASS]   intro: frontmatter.status = done",
	}
	got := lines(stdout)
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("stdout lines:\n%s\nwant:\n%s", stdout, strings.Join(want, "\n"))
	}
	if stderr != "" {
		t.Errorf("stderr = %q, want empty", stderr)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	dir := t.TempDir()
	files := demoChapter()
	files["topics/demo/.chapter/config.yaml"] = "id: demo\nscenarios:\n  basic:\n    easy: intro\n    hard: missing\n"
	writeFiles(t, dir, files)

	out1, err1, code1 := runChapterlint(t, dir, "validate", "demo")
	out2, err2, code2 := runChapterlint(t, dir, "validate", "demo")

	if out1 != out2 || err1 != err2 || code1 != code2 {
		t.Errorf("runs differ:\n%q %q %d\n%q %q %d", out1, err1, code1, out2, err2, code2)
	}
	if code1 != 1 {
		t.Errorf("exit code = %d, want 1", code1)
	}
}

func TestValidate_MissingChapter(t *testing.T) {
	dir := t.TempDir()

	stdout, stderr, code := runChapterlint(t, dir, "validate", "--chapter", "nope")

	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	got := lines(stderr)
	if len(got) != 1 || !strings.HasPrefix(got[0], "[ERROR] Chapter path not found: ") {
		t.Errorf("stderr = %q, want one chapter-not-found error", stderr)
	}
}

func TestValidate_StreamsSeparated(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"topics/demo/.chapter/config.yaml":               "id: demo\nscenarios:\n  basic:\n    easy: intro\n",
		"topics/demo/scenarios/intro/README.md":          "no frontmatter here\n",
		"topics/demo/scenarios/intro/implementation/":    "",
		"topics/demo/scenarios/intro/tests/main_test.go": "package main\n",
	})

	stdout, stderr, code := runChapterlint(t, dir, "validate", "demo")

	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	for _, line := range lines(stdout) {
		if !strings.HasPrefix(line, "[PASS] ") && !strings.HasPrefix(line, "[WARN] ") {
			t.Errorf("unexpected stdout line %q", line)
		}
	}
	wantErr := []string{
		"[ERROR] Missing config field: title",
		"[ERROR]   intro: No frontmatter found",
	}
	if strings.Join(lines(stderr), "\n") != strings.Join(wantErr, "\n") {
		t.Errorf("stderr = %q, want %q", stderr, wantErr)
	}
	if !strings.Contains(stdout, "[WARN] ") {
		t.Errorf("expected an empty-directory warning on stdout, got %q", stdout)
	}
}

func TestValidate_JSON(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, demoChapter())

	stdout, _, code := runChapterlint(t, dir, "validate", "--json", "demo")

	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	var out struct {
		Valid   bool `json:"valid"`
		Summary struct {
			Passed int `json:"passed"`
			Errors int `json:"errors"`
		} `json:"summary"`
	}
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if !out.Valid || out.Summary.Passed != 11 || out.Summary.Errors != 0 {
		t.Errorf("output = %+v", out)
	}
}

func TestValidate_NoChapter(t *testing.T) {
	_, stderr, code := runChapterlint(t, t.TempDir(), "validate")

	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.HasPrefix(stderr, "chapterlint: ") {
		t.Errorf("stderr = %q, want chapterlint: prefix", stderr)
	}
}
