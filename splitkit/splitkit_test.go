package splitkit_test

import (
	"errors"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sokinpui/splitkit/cli"
	"github.com/sokinpui/splitkit/internal/source"
	"github.com/sokinpui/splitkit/internal/tiles"
	"github.com/sokinpui/splitkit/internal/ui"
	"github.com/sokinpui/splitkit/splitkit"
)

func TestMain(m *testing.M) {
	ui.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// chdirTemp changes the working directory to a fresh temp dir for the
// duration of a test.
func chdirTemp(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get current working directory: %v", err)
	}
	dir := t.TempDir()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to change to temp dir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatalf("failed to restore working directory: %v", err)
		}
	})
	return dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func TestExtract(t *testing.T) {
	chdirTemp(t)
	if err := os.WriteFile("input.txt", []byte("// a.go\nfoo\nbar\n// b.go\nbaz\n"), 0644); err != nil {
		t.Fatal(err)
	}

	app := splitkit.New()
	summary, err := app.Extract(cli.DefaultExtractConfig())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if got := readFile(t, "a.go"); got != "package main\nfoo\nbar\n" {
		t.Errorf("a.go: got %q", got)
	}
	if got := readFile(t, "b.go"); got != "package main\nbaz\n" {
		t.Errorf("b.go: got %q", got)
	}
	if len(summary.Created) != 2 || len(summary.Modified) != 0 {
		t.Errorf("unexpected summary %+v", summary)
	}
	if summary.Message != "File extraction and update complete." {
		t.Errorf("unexpected message %q", summary.Message)
	}
}

func TestExtractDiscardsLeadingLines(t *testing.T) {
	chdirTemp(t)
	if err := os.WriteFile("input.txt", []byte("junk\n// a.go\nx\n"), 0644); err != nil {
		t.Fatal(err)
	}

	summary, err := splitkit.New().Extract(cli.DefaultExtractConfig())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(summary.Created) != 1 || summary.Created[0] != "a.go" {
		t.Fatalf("expected only a.go, got %+v", summary)
	}
	if got := readFile(t, "a.go"); got != "package main\nx\n" {
		t.Errorf("a.go: got %q", got)
	}
	if _, err := os.Stat("junk"); !os.IsNotExist(err) {
		t.Error("leading line should not produce a file")
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	chdirTemp(t)
	if err := os.WriteFile("input.txt", []byte("// a.go\nfoo\n"), 0644); err != nil {
		t.Fatal(err)
	}

	app := splitkit.New()
	if _, err := app.Extract(cli.DefaultExtractConfig()); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	first := readFile(t, "a.go")

	summary, err := app.Extract(cli.DefaultExtractConfig())
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if got := readFile(t, "a.go"); got != first {
		t.Errorf("second run changed output: %q vs %q", got, first)
	}
	if len(summary.Modified) != 1 || len(summary.Created) != 0 {
		t.Errorf("second run should only update: %+v", summary)
	}
}

func TestExtractMissingInput(t *testing.T) {
	chdirTemp(t)

	_, err := splitkit.New().Extract(cli.DefaultExtractConfig())
	if !errors.Is(err, source.ErrNotFound) {
		t.Fatalf("expected source.ErrNotFound, got %v", err)
	}
	entries, _ := os.ReadDir(".")
	if len(entries) != 0 {
		t.Errorf("nothing should be written, found %d entries", len(entries))
	}
}

func TestExtractNoMarkers(t *testing.T) {
	chdirTemp(t)
	if err := os.WriteFile("input.txt", []byte("nothing here\n"), 0644); err != nil {
		t.Fatal(err)
	}

	summary, err := splitkit.New().Extract(cli.DefaultExtractConfig())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(summary.Created) != 0 || summary.Message == "" {
		t.Errorf("unexpected summary %+v", summary)
	}
}

func TestExtractOutputDirAndMarkdown(t *testing.T) {
	chdirTemp(t)
	content := "Two files:\n\n```go\n// cmd/app/main.go\nfunc main() {}\n```\n\n```go\n// util.go\n```\n"
	if err := os.WriteFile("reply.md", []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := cli.DefaultExtractConfig()
	cfg.Input = "reply.md"
	cfg.Markdown = true
	cfg.Parents = true
	cfg.OutputDir = "out"

	summary, err := splitkit.New().Extract(cfg)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got := readFile(t, filepath.Join("out", "cmd", "app", "main.go")); got != "package main\nfunc main() {}\n" {
		t.Errorf("main.go: got %q", got)
	}
	if got := readFile(t, filepath.Join("out", "util.go")); got != "package main\n" {
		t.Errorf("util.go: got %q", got)
	}
	want := filepath.Join("out", "cmd", "app", "main.go")
	if len(summary.Created) != 2 || summary.Created[0] != want {
		t.Errorf("unexpected created paths %+v", summary.Created)
	}
}

func TestExtractWriteFailure(t *testing.T) {
	chdirTemp(t)
	if err := os.WriteFile("input.txt", []byte("// a.go\nx\n// missing/dir/b.go\ny\n"), 0644); err != nil {
		t.Fatal(err)
	}

	summary, err := splitkit.New().Extract(cli.DefaultExtractConfig())
	if err == nil {
		t.Fatal("expected a write error without --parents")
	}
	if len(summary.Created) != 1 || len(summary.Failed) != 1 {
		t.Errorf("unexpected summary %+v", summary)
	}
}

func TestSplitImage(t *testing.T) {
	chdirTemp(t)
	f, err := os.Create("atlas.png")
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 64, 64))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	app := splitkit.New()
	var last int
	app.SetProgressCallback(func(current, total int) { last = current })

	summary, err := app.SplitImage(&cli.TileConfig{Input: "atlas.png", OutputDir: "tiles"})
	if err != nil {
		t.Fatalf("SplitImage failed: %v", err)
	}
	if len(summary.Created) != 4 || last != 4 {
		t.Errorf("expected 4 tiles, got %+v (progress %d)", summary, last)
	}
	if summary.Created[1] != filepath.Join("tiles", "tile_1_0.png") {
		t.Errorf("unexpected tile order %v", summary.Created)
	}
	if summary.Message != "Tiles have been saved to tiles" {
		t.Errorf("unexpected message %q", summary.Message)
	}
}

func TestSplitImageInvalidDimensions(t *testing.T) {
	chdirTemp(t)
	f, err := os.Create("bad.png")
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 50, 32))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	_, err = splitkit.New().SplitImage(&cli.TileConfig{Input: "bad.png", OutputDir: "tiles"})
	if !errors.Is(err, tiles.ErrInvalidDimensions) {
		t.Fatalf("expected tiles.ErrInvalidDimensions, got %v", err)
	}
	if _, err := os.Stat("tiles"); !os.IsNotExist(err) {
		t.Error("output dir should not be created")
	}
}
