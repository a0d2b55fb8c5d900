package cli

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/erdiagram/pkg/errors"
	pkgio "github.com/matzehuels/erdiagram/pkg/io"
	"github.com/matzehuels/erdiagram/pkg/model"
)

// school returns a diagram whose "Enrolls" relationship can be converted.
func school() model.Diagram {
	student := model.NewEntity("student", "Student", 0, 0)
	student.Attributes = []model.Attribute{model.NewAttribute("a1", "id", model.Key)}
	course := model.NewEntity("course", "Course", 300, 0)
	enrolls := model.NewRelationship("enrolls", "Enrolls", 150, 100)
	enrolls.Connections = []model.Connection{
		{EntityID: "student", Cardinality: model.OneMany},
		{EntityID: "course", Cardinality: model.Many},
	}
	d := model.New("School")
	d.Entities = []model.Entity{student, course}
	d.Relationships = []model.Relationship{enrolls}
	return d
}

// isolate points the config and cache directories at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	return dir
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func writeSchool(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "school.json")
	if err := pkgio.ExportJSON(school(), path); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	return path
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/xdg", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}

	t.Setenv("XDG_CACHE_HOME", "")
	dir, err = cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if !strings.HasSuffix(dir, filepath.Join(".cache", appName)) {
		t.Errorf("cacheDir() = %q, should end with .cache/%s", dir, appName)
	}
}

func TestCacheDir_ConfigOverride(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config.Cache.Dir = "/srv/cache"
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "/srv/cache" {
		t.Errorf("cacheDir() = %q, want /srv/cache", dir)
	}
}

func TestPathHelpers(t *testing.T) {
	tests := []struct {
		path, ext, replaced, key string
	}{
		{"school.json", "png", "school.png", "school"},
		{"/a/b/library.v2.json", "dot", "/a/b/library.v2.dot", "library.v2"},
		{"noext", "svg", "noext.svg", "noext"},
	}
	for _, tt := range tests {
		if got := replaceExt(tt.path, tt.ext); got != tt.replaced {
			t.Errorf("replaceExt(%q, %q) = %q, want %q", tt.path, tt.ext, got, tt.replaced)
		}
		if got := keyFromPath(tt.path); got != tt.key {
			t.Errorf("keyFromPath(%q) = %q, want %q", tt.path, got, tt.key)
		}
	}
}

func TestNewCommand(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "fresh.json")

	if err := run(t, "new", path, "--name", "Library"); err != nil {
		t.Fatalf("new error = %v", err)
	}
	d, err := pkgio.ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	if d.Name != "Library" || len(d.Entities) != 0 {
		t.Errorf("new wrote %+v", d)
	}

	if err := run(t, "new", path); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("new over existing file error = %v, want %v", err, errors.ErrCodeInvalidInput)
	}
	if err := run(t, "new", path, "-f"); err != nil {
		t.Errorf("new -f error = %v", err)
	}
}

func TestConvertCommand(t *testing.T) {
	dir := isolate(t)
	path := writeSchool(t, dir)
	out := filepath.Join(dir, "converted.json")

	if err := run(t, "convert", path, "-r", "enrolls", "-o", out); err != nil {
		t.Fatalf("convert error = %v", err)
	}
	d, err := pkgio.ImportJSON(out)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	if len(d.Entities) != 3 || len(d.Relationships) != 2 {
		t.Fatalf("converted diagram has %d entities, %d relationships; want 3, 2", len(d.Entities), len(d.Relationships))
	}
	if d.Entities[2].Name != "Enrolls" {
		t.Errorf("associative entity name = %q, want Enrolls", d.Entities[2].Name)
	}

	// The input is left alone when -o is given.
	orig, _ := pkgio.ImportJSON(path)
	if !orig.Equal(school()) {
		t.Error("convert -o modified the input file")
	}
}

func TestConvertCommand_Errors(t *testing.T) {
	dir := isolate(t)
	path := writeSchool(t, dir)

	if err := run(t, "convert", path, "-r", "missing"); !errors.Is(err, errors.ErrCodeRelationshipNotFound) {
		t.Errorf("convert unknown relationship error = %v", err)
	}

	d := school()
	d.Relationships[0].Connections = d.Relationships[0].Connections[:1]
	if err := pkgio.ExportJSON(d, path); err != nil {
		t.Fatal(err)
	}
	if err := run(t, "convert", path, "-r", "Enrolls"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("convert ineligible relationship error = %v", err)
	}
}

func TestExportCommand(t *testing.T) {
	dir := isolate(t)
	path := writeSchool(t, dir)

	dot := filepath.Join(dir, "school.dot")
	if err := run(t, "export", path, "-f", "dot", "-o", dot); err != nil {
		t.Fatalf("export dot error = %v", err)
	}
	data, err := os.ReadFile(dot)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "graph G {") || !strings.Contains(string(data), "Enrolls") {
		t.Errorf("dot output = %q", data)
	}

	if err := run(t, "export", path); err != nil {
		t.Fatalf("export png error = %v", err)
	}
	f, err := os.Open(filepath.Join(dir, "school.png"))
	if err != nil {
		t.Fatalf("default png output missing: %v", err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("png.Decode() error = %v", err)
	}
}

func TestExportCommand_Errors(t *testing.T) {
	dir := isolate(t)
	path := writeSchool(t, dir)

	if err := run(t, "export", path, "-f", "gif"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("export gif error = %v, want %v", err, errors.ErrCodeInvalidFormat)
	}
	if err := run(t, "export", path, "-f", "json", "-o", path); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("export json over input error = %v, want %v", err, errors.ErrCodeInvalidInput)
	}
	for _, scale := range []string{"0", "-1", "100"} {
		if err := run(t, "export", path, "--scale="+scale); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("export --scale %s error = %v, want %v", scale, err, errors.ErrCodeInvalidInput)
		}
	}
	if err := run(t, "export", filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("export missing file error = %v, want %v", err, errors.ErrCodeFileNotFound)
	}
}

func TestStoreCommands(t *testing.T) {
	dir := isolate(t)
	path := writeSchool(t, dir)
	storeDir := filepath.Join(dir, "shared")

	if err := run(t, "store", "push", path, "--store", storeDir); err != nil {
		t.Fatalf("store push error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(storeDir, "school.json")); err != nil {
		t.Fatalf("pushed document missing: %v", err)
	}
	if err := run(t, "store", "list", "--store", storeDir); err != nil {
		t.Errorf("store list error = %v", err)
	}

	pulled := filepath.Join(dir, "pulled.json")
	if err := run(t, "store", "pull", "school", pulled, "--store", storeDir); err != nil {
		t.Fatalf("store pull error = %v", err)
	}
	d, err := pkgio.ImportJSON(pulled)
	if err != nil {
		t.Fatal(err)
	}
	if !d.Equal(school()) {
		t.Error("pulled diagram differs from the pushed one")
	}

	if err := run(t, "store", "delete", "school", "--store", storeDir); err != nil {
		t.Fatalf("store delete error = %v", err)
	}
	if err := run(t, "store", "pull", "school", pulled, "-f", "--store", storeDir); !errors.Is(err, errors.ErrCodeDiagramNotFound) {
		t.Errorf("store pull after delete error = %v, want %v", err, errors.ErrCodeDiagramNotFound)
	}
	if err := run(t, "store", "push", path, "../escape", "--store", storeDir); !errors.Is(err, errors.ErrCodeInvalidKey) {
		t.Errorf("store push bad key error = %v, want %v", err, errors.ErrCodeInvalidKey)
	}
}

func TestConfigFlag(t *testing.T) {
	dir := isolate(t)
	cfg := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(cfg, []byte("colour = \"blue\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	err := run(t, "--config", cfg, "new", filepath.Join(dir, "x.json"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("unknown config key error = %v, want %v", err, errors.ErrCodeInvalidConfig)
	}

	good := filepath.Join(dir, "good.toml")
	conf := "save_directory = \"" + filepath.ToSlash(dir) + "\"\ndefault_diagram_name = \"Configured\"\n"
	if err := os.WriteFile(good, []byte(conf), 0644); err != nil {
		t.Fatal(err)
	}
	if err := run(t, "--config", good, "new", "named.json"); err != nil {
		t.Fatalf("new with config error = %v", err)
	}
	d, err := pkgio.ImportJSON(filepath.Join(dir, "named.json"))
	if err != nil {
		t.Fatalf("new did not write into save_directory: %v", err)
	}
	if d.Name != "Configured" {
		t.Errorf("diagram name = %q, want Configured", d.Name)
	}
}

func TestInfo(t *testing.T) {
	out := renderInfo(school(), "school.json")
	for _, want := range []string{"School", "school.json", "Student", "Course", "Enrolls", "(1,N)", "id*", "2 entities"} {
		if !strings.Contains(out, want) {
			t.Errorf("renderInfo() missing %q", want)
		}
	}
	if !bytes.Contains([]byte(out), []byte("yes")) {
		t.Error("renderInfo() should mark Enrolls convertible")
	}
}
