package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readArchive(t *testing.T, name string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(name)
	if err != nil {
		t.Fatalf("failed to open report archive: %v", err)
	}
	defer zr.Close()

	files := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read %s: %v", f.Name, err)
		}
		files[f.Name] = string(data)
	}
	return files
}

func TestReport_Close(t *testing.T) {
	tmpDir := t.TempDir()

	conf := ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}
	if r.Name() != conf.Destination {
		t.Errorf("Name() = %q, want %q", r.Name(), conf.Destination)
	}

	input := filepath.Join(tmpDir, "page.html")
	if err := os.WriteFile(input, []byte("<p>hi</p>"), 0644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}

	r.Store("input/page.html", input)
	r.Store("missing.log", filepath.Join(tmpDir, "absent.log"))
	r.StoreData("layout.txt", []byte("block <p>"))
	r.StoreData("layout.txt", []byte("second pass"))

	if err := r.Close(); err != nil {
		t.Fatalf("Report.Close() error: %v", err)
	}

	files := readArchive(t, conf.Destination)
	if files["input/page.html"] != "<p>hi</p>" {
		t.Errorf("stored file content = %q", files["input/page.html"])
	}
	if files["layout.txt"] != "block <p>" {
		t.Errorf("stored data content = %q", files["layout.txt"])
	}
	if _, ok := files["missing.log"]; ok {
		t.Error("absent file must be skipped")
	}

	versioned := 0
	for name, content := range files {
		if strings.HasPrefix(name, "layout.txt-") && content == "second pass" {
			versioned++
		}
	}
	if versioned != 1 {
		t.Errorf("expected versioned copy of repeated data entry, got files %v", files)
	}
	if !strings.Contains(files["MANIFEST"], "input/page.html") {
		t.Errorf("manifest misses stored file:\n%s", files["MANIFEST"])
	}
}

func TestReport_StoreConflictPanics(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.Store("final.log", "a.log")
	r.Store("final.log", "a.log")

	defer func() {
		if recover() == nil {
			t.Error("expected panic when overwriting stored file with different path")
		}
	}()
	r.Store("final.log", "b.log")
}

func TestReport_NilReport(t *testing.T) {
	var r *Report
	r.Store("x", "y")
	r.StoreData("x", nil)
	if r.Name() != "" {
		t.Error("Name on nil report should be empty")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
}

func TestReport_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
