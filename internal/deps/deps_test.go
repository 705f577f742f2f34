package deps_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/gofrs/flock"
	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// TestYAMLDependencyAvailable verifies that gopkg.in/yaml.v3 is importable
// and functional for frontmatter parsing.
func TestYAMLDependencyAvailable(t *testing.T) {
	input := "title: hello"
	var node yaml.Node
	err := yaml.Unmarshal([]byte(input), &node)
	if err != nil {
		t.Fatalf("yaml.Unmarshal() returned error: %v", err)
	}
	if node.Kind != yaml.DocumentNode {
		t.Errorf("yaml.Node.Kind = %v, want %v (DocumentNode)", node.Kind, yaml.DocumentNode)
	}
}

// TestFlockDependencyAvailable verifies that github.com/gofrs/flock is
// importable and can construct a lock handle.
func TestFlockDependencyAvailable(t *testing.T) {
	fl := flock.New(t.TempDir() + "/test.lock")
	if fl == nil {
		t.Fatal("flock.New() returned nil")
	}
	path := fl.Path()
	if path == "" {
		t.Error("flock.Path() returned empty string")
	}
}

// TestUnicodeTextDependencyAvailable verifies that golang.org/x/text is
// importable and can perform NFC normalization.
func TestUnicodeTextDependencyAvailable(t *testing.T) {
	// NFC normalization of a combining sequence: e + combining acute = é
	input := "e\u0301" // decomposed form
	got := norm.NFC.String(input)
	want := "\u00e9" // composed form: é
	if got != want {
		t.Errorf("norm.NFC.String(%q) = %q, want %q", input, got, want)
	}
}

// TestTextEncodingDependencyAvailable verifies that the x/text UTF-8 BOM
// decoder strips a leading byte order mark and replaces ill-formed bytes.
func TestTextEncodingDependencyAvailable(t *testing.T) {
	got, _, err := transform.String(unicode.UTF8BOM.NewDecoder(), "\uFEFFtitle\xFF")
	if err != nil {
		t.Fatalf("transform.String() returned error: %v", err)
	}
	if got != "title\uFFFD" {
		t.Errorf("transform.String() = %q, want %q", got, "title\uFFFD")
	}
}

// TestViperDependencyAvailable verifies that github.com/spf13/viper is
// importable and can read YAML settings.
func TestViperDependencyAvailable(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(strings.NewReader("repo-root: /docs\n")); err != nil {
		t.Fatalf("viper.ReadConfig() returned error: %v", err)
	}
	if got := v.GetString("repo-root"); got != "/docs" {
		t.Errorf("GetString(repo-root) = %q, want /docs", got)
	}
}

// TestLipglossDependencyAvailable verifies that lipgloss renders plain text
// when the destination is not a terminal.
func TestLipglossDependencyAvailable(t *testing.T) {
	r := lipgloss.NewRenderer(new(bytes.Buffer))
	got := r.NewStyle().Foreground(lipgloss.Color("2")).Render("[PASS]")
	if got != "[PASS]" {
		t.Errorf("Render() = %q, want unstyled %q", got, "[PASS]")
	}
}

// TestIsattyDependencyAvailable verifies that github.com/mattn/go-isatty
// reports a regular file as not a terminal.
func TestIsattyDependencyAvailable(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "tty")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if isatty.IsTerminal(f.Fd()) {
		t.Error("isatty.IsTerminal() = true for a regular file")
	}
}
