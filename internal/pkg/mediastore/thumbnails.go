package mediastore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2/log"
)

const (
	// SmallThumbnailSize is the width for list views and chat avatars
	SmallThumbnailSize = 200
	// MediumThumbnailSize is the width for profile pages and post covers
	MediumThumbnailSize = 600
)

// ThumbnailSet holds the local paths of generated thumbnail variants
type ThumbnailSet struct {
	Small  string
	Medium string
}

// GenerateThumbnails creates small and medium resized variants of an image
// next to the original file. Variants keep the original extension.
func GenerateThumbnails(originalPath string) (*ThumbnailSet, error) {
	img, err := imaging.Open(originalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", originalPath, err)
	}

	dir := filepath.Dir(originalPath)
	ext := filepath.Ext(originalPath)
	base := originalPath[:len(originalPath)-len(ext)]
	base = filepath.Base(base)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	set := &ThumbnailSet{
		Small:  filepath.Join(dir, base+"_small"+ext),
		Medium: filepath.Join(dir, base+"_medium"+ext),
	}

	smallThumb := imaging.Resize(img, SmallThumbnailSize, 0, imaging.Lanczos)
	if err := imaging.Save(smallThumb, set.Small); err != nil {
		return nil, fmt.Errorf("failed to save small thumbnail: %w", err)
	}

	mediumThumb := imaging.Resize(img, MediumThumbnailSize, 0, imaging.Lanczos)
	if err := imaging.Save(mediumThumb, set.Medium); err != nil {
		return nil, fmt.Errorf("failed to save medium thumbnail: %w", err)
	}

	log.Debugf("[MediaStore] Generated thumbnails for %s", originalPath)
	return set, nil
}
