// Package media validates picked images and renders local upload previews.
package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	tenantmodel "github.com/dzhngzturi/qr-menu-management-admin/internal/models/tenant"
)

// DefaultPreviewSize is the bounding box of a preview, in pixels.
const DefaultPreviewSize = 320

// MaxUploadBytes caps what is read into memory for an upload.
const MaxUploadBytes = 10 << 20

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// PreviewImage is a downscaled JPEG rendition of a picked file.
type PreviewImage struct {
	Format         string
	Width, Height  int
	OriginalWidth  int
	OriginalHeight int
	JPEG           []byte
}

// Preview decodes the image at path and fits it into maxSize x maxSize.
func Preview(path string, maxSize int) (*PreviewImage, error) {
	data, err := readImageFile(path)
	if err != nil {
		return nil, err
	}
	return PreviewBytes(data, maxSize)
}

// PreviewBytes is Preview for an image already in memory.
func PreviewBytes(data []byte, maxSize int) (*PreviewImage, error) {
	if maxSize <= 0 {
		maxSize = DefaultPreviewSize
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	bounds := src.Bounds()

	thumb := imaging.Fit(src, maxSize, maxSize, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return &PreviewImage{
		Format:         format,
		Width:          thumb.Bounds().Dx(),
		Height:         thumb.Bounds().Dy(),
		OriginalWidth:  bounds.Dx(),
		OriginalHeight: bounds.Dy(),
		JPEG:           buf.Bytes(),
	}, nil
}

// Save writes the preview as a JPEG file.
func (p *PreviewImage) Save(path string) error {
	if err := os.WriteFile(path, p.JPEG, 0o644); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}
	return nil
}

// Open loads a picked file for upload. The file must be a decodable image
// (webp is passed through by extension since only the server decodes it).
func Open(path string) (*tenantmodel.Image, error) {
	data, err := readImageFile(path)
	if err != nil {
		return nil, err
	}
	if strings.ToLower(filepath.Ext(path)) != ".webp" {
		if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("%s is not a supported image: %w", filepath.Base(path), err)
		}
	}
	return &tenantmodel.Image{
		Filename: filepath.Base(path),
		Content:  bytes.NewReader(data),
	}, nil
}

func readImageFile(path string) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !allowedExt[ext] {
		return nil, fmt.Errorf("unsupported image extension %q", ext)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	if info.Size() > MaxUploadBytes {
		return nil, fmt.Errorf("image %s exceeds %d bytes", filepath.Base(path), MaxUploadBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return data, nil
}
