package filemgr

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

// EntityType namespaces the upload directories.
type EntityType string

const (
	EntityProduct EntityType = "product"
	EntityFarmer  EntityType = "farmer"
	EntityUser    EntityType = "user"
)

var allowedExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

var baseDir = filepath.Join("static", "uploads")

// SetBaseDir points uploads at the configured directory; called from
// main after config load.
func SetBaseDir(dir string) {
	if dir != "" {
		baseDir = dir
	}
}

func resolvePath(entity EntityType, thumb bool) string {
	sub := "images"
	if thumb {
		sub = "thumbs"
	}
	return filepath.Join(baseDir, string(entity), sub)
}

func extensionAllowed(ext string) bool {
	for _, a := range allowedExtensions {
		if ext == a {
			return true
		}
	}
	return false
}

// SaveFormImage stores the uploaded image and a 300px-wide JPEG
// thumbnail, returning the stored filename. Missing optional files
// return ("", nil).
func SaveFormImage(form *multipart.Form, formKey string, entity EntityType, required bool) (string, error) {
	files := form.File[formKey]
	if len(files) == 0 {
		if required {
			return "", fmt.Errorf("missing required file: %s", formKey)
		}
		return "", nil
	}

	header := files[0]
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !extensionAllowed(ext) {
		return "", fmt.Errorf("unsupported image type %s", ext)
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", formKey, err)
	}
	defer file.Close()

	buf, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", formKey, err)
	}

	img, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return "", fmt.Errorf("decode image %q: %w", header.Filename, err)
	}

	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)

	origDir := resolvePath(entity, false)
	if err := os.MkdirAll(origDir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(origDir, name), buf, 0o644); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}

	if err := writeThumbnail(img, entity, name); err != nil {
		// The original is saved; a missing thumbnail is not fatal.
		return name, nil
	}
	return name, nil
}

func writeThumbnail(img image.Image, entity EntityType, baseFilename string) error {
	resized := imaging.Resize(img, 300, 0, imaging.Lanczos)
	name := strings.TrimSuffix(baseFilename, filepath.Ext(baseFilename)) + ".jpg"

	dir := resolvePath(entity, true)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	out, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer out.Close()

	return jpeg.Encode(out, resized, &jpeg.Options{Quality: 85})
}
