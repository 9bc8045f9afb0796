package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCopyTexturesSkipsMissing(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	if err := os.WriteFile(filepath.Join(src, "bark_albedo.tif"), []byte("tif-bytes"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "leaves_masked.png"), []byte("png-bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	results := CopyTextures(src, dst, []string{
		"bark_albedo.tif",
		"bark_height.tif", // not present at source
		"leaves_masked.png",
	})

	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	byFile := map[string]CopyStatus{}
	for _, r := range results {
		byFile[r.File] = r.Status
	}
	if byFile["bark_albedo.tif"] != Copied || byFile["leaves_masked.png"] != Copied {
		t.Errorf("present files not copied: %v", byFile)
	}
	if byFile["bark_height.tif"] != Missing {
		t.Errorf("missing file status = %v, want Missing", byFile["bark_height.tif"])
	}

	// Present files really landed, with their content.
	data, err := os.ReadFile(filepath.Join(dst, "bark_albedo.tif"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "tif-bytes" {
		t.Errorf("copied content = %q", data)
	}
	if _, err := os.Stat(filepath.Join(dst, "bark_height.tif")); !os.IsNotExist(err) {
		t.Error("missing source produced an output file")
	}

	copied := CopiedFiles(results)
	if len(copied) != 2 {
		t.Errorf("CopiedFiles = %v, want 2 entries", copied)
	}
}

func TestCopyTexturesPreservesModTime(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	path := filepath.Join(src, "bark.png")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	stamp := time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(path, stamp, stamp); err != nil {
		t.Fatal(err)
	}

	results := CopyTextures(src, dst, []string{"bark.png"})
	if results[0].Status != Copied {
		t.Fatalf("status = %v, err = %v", results[0].Status, results[0].Err)
	}

	info, err := os.Stat(filepath.Join(dst, "bark.png"))
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(stamp) {
		t.Errorf("modtime = %v, want %v", info.ModTime(), stamp)
	}
}

func TestCopyTexturesStripsSourceDirs(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	if err := os.WriteFile(filepath.Join(src, "bark.png"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	// MTL references may carry directories; only the base name is looked up.
	results := CopyTextures(src, dst, []string{"textures/bark.png"})
	if results[0].Status != Copied {
		t.Fatalf("status = %v, err = %v", results[0].Status, results[0].Err)
	}
	if _, err := os.Stat(filepath.Join(dst, "bark.png")); err != nil {
		t.Errorf("expected flat copy: %v", err)
	}
}

func TestCopyTexturesEmptyList(t *testing.T) {
	if results := CopyTextures(t.TempDir(), t.TempDir(), nil); len(results) != 0 {
		t.Errorf("results = %v, want none", results)
	}
}
