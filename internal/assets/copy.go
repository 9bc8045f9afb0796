// Package assets copies a scene's auxiliary texture files into the export
// directory and optionally writes WebP thumbnails of them. Both steps are
// best-effort per file: a texture missing at the source is an expected
// condition, reported and skipped, never a run failure.
package assets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyStatus classifies the outcome for one texture file.
type CopyStatus int

const (
	Copied CopyStatus = iota
	Missing
	Failed
)

// CopyResult is the per-file outcome of a texture copy pass.
type CopyResult struct {
	File   string
	Status CopyStatus
	Err    error
}

// CopyTextures copies each listed file from srcDir to dstDir, preserving
// modification times. Files absent at the source are skipped with a Missing
// result; other I/O errors mark that file Failed. The pass always runs to
// the end of the list.
func CopyTextures(srcDir, dstDir string, files []string) []CopyResult {
	results := make([]CopyResult, 0, len(files))
	for _, name := range files {
		src := filepath.Join(srcDir, filepath.Base(name))
		dst := filepath.Join(dstDir, filepath.Base(name))

		info, err := os.Stat(src)
		if os.IsNotExist(err) {
			results = append(results, CopyResult{File: name, Status: Missing})
			continue
		}
		if err != nil {
			results = append(results, CopyResult{File: name, Status: Failed, Err: err})
			continue
		}

		if err := copyFile(src, dst, info); err != nil {
			results = append(results, CopyResult{File: name, Status: Failed, Err: err})
			continue
		}
		results = append(results, CopyResult{File: name, Status: Copied})
	}
	return results
}

func copyFile(src, dst string, info os.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("assets: copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	// Keep the source timestamp so downstream sync tools see an unchanged file.
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// CopiedFiles returns the file names that were actually copied.
func CopiedFiles(results []CopyResult) []string {
	var out []string
	for _, r := range results {
		if r.Status == Copied {
			out = append(out, r.File)
		}
	}
	return out
}
