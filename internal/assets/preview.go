package assets

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	_ "github.com/ftrvxmtrx/tga"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/tiff"
)

// WritePreviews decodes each copied texture in dir and writes a WebP
// thumbnail no wider/taller than maxSize into dir/previews. Like the copy
// pass it is best-effort: undecodable or unreadable files are reported and
// skipped.
func WritePreviews(dir string, files []string, maxSize int) []CopyResult {
	previewDir := filepath.Join(dir, "previews")
	results := make([]CopyResult, 0, len(files))
	for _, name := range files {
		base := filepath.Base(name)
		err := writePreview(filepath.Join(dir, base), previewDir, maxSize)
		switch {
		case err == nil:
			results = append(results, CopyResult{File: name, Status: Copied})
		case os.IsNotExist(err):
			results = append(results, CopyResult{File: name, Status: Missing})
		default:
			results = append(results, CopyResult{File: name, Status: Failed, Err: err})
		}
	}
	return results
}

func writePreview(src, previewDir string, maxSize int) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("assets: decode %s: %w", src, err)
	}

	thumb := resize.Thumbnail(uint(maxSize), uint(maxSize), img, resize.Lanczos3)

	if err := os.MkdirAll(previewDir, 0755); err != nil {
		return err
	}
	base := filepath.Base(src)
	out := filepath.Join(previewDir, strings.TrimSuffix(base, filepath.Ext(base))+".webp")
	w, err := os.Create(out)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := nativewebp.Encode(w, thumb, nil); err != nil {
		return fmt.Errorf("assets: webp encode %s: %w", out, err)
	}
	return nil
}
