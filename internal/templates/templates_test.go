package templates

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	velderrors "github.com/veld-dev/veld/internal/errors"
)

func TestGetKnownTemplate(t *testing.T) {
	tmpl, err := Get("counter")
	if err != nil {
		t.Fatalf("counter template should exist: %v", err)
	}
	if tmpl.Name != "counter" {
		t.Errorf("wrong template returned: %s", tmpl.Name)
	}
	if _, ok := tmpl.Files["app/main.go"]; !ok {
		t.Error("counter template should scaffold app/main.go")
	}
}

func TestGetUnknownTemplate(t *testing.T) {
	_, err := Get("nope")
	var ve *velderrors.VeldError
	if !stderrors.As(err, &ve) || ve.Code != "E081" {
		t.Errorf("expected E081 for unknown template, got %v", err)
	}
}

func TestListIsSorted(t *testing.T) {
	names := List()
	if len(names) < 3 {
		t.Fatalf("expected at least 3 templates, got %v", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
}

func TestCreateSubstitutesConfig(t *testing.T) {
	dir := t.TempDir()
	tmpl, err := Get("minimal")
	if err != nil {
		t.Fatal(err)
	}

	cfg := Config{
		ProjectName: "demo",
		ModulePath:  "example.com/demo",
		Description: "A demo app",
	}
	if err := tmpl.Create(dir, cfg); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	main := readFile(t, filepath.Join(dir, "app", "main.go"))
	if !strings.Contains(main, "Welcome to demo") {
		t.Error("project name should be substituted into main.go")
	}
	if !strings.Contains(main, "A demo app") {
		t.Error("description should be substituted into main.go")
	}

	gomod := readFile(t, filepath.Join(dir, "go.mod"))
	if !strings.Contains(gomod, "module example.com/demo") {
		t.Errorf("module path not substituted: %q", gomod)
	}

	veldJSON := readFile(t, filepath.Join(dir, "veld.json"))
	if !strings.Contains(veldJSON, `"name": "demo"`) {
		t.Errorf("project name missing from veld.json: %q", veldJSON)
	}
}

func TestCreateWritesNestedFiles(t *testing.T) {
	dir := t.TempDir()
	tmpl, err := Get("counter")
	if err != nil {
		t.Fatal(err)
	}
	if err := tmpl.Create(dir, Config{ProjectName: "x", ModulePath: "x"}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "public", "index.html")); err != nil {
		t.Error("nested public/index.html should be written")
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
