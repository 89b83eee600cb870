package upload

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"
)

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	// Note: SVG is intentionally excluded due to XSS risk without sanitization
}

var allowedImageMime = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var allowedAudioExt = map[string]bool{
	".mp3": true,
	".wav": true,
	".ogg": true,
	".m4a": true,
}

var allowedAudioMime = map[string]bool{
	"audio/mpeg":  true,
	"audio/wave":  true,
	"audio/wav":   true,
	"audio/ogg":   true,
	"audio/mp4":   true,
	"video/mp4":   true, // m4a containers sniff as video/mp4
	"audio/x-m4a": true,
}

// ValidateImageBySniff checks the provided filename (extension) and the first bytes (head)
// against a whitelist of image types. Returns detected mime or an error.
func ValidateImageBySniff(filename string, head []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExt[ext] {
		return "", errors.New("only JPG, JPEG, PNG, GIF and WEBP images are supported")
	}

	detected := http.DetectContentType(head)

	// Block obvious scriptable types regardless of extension
	if strings.HasPrefix(detected, "text/html") || strings.HasPrefix(detected, "application/xhtml") {
		return "", errors.New("invalid file type: HTML content is not allowed")
	}
	if strings.HasPrefix(detected, "text/xml") || strings.HasPrefix(detected, "application/xml") || detected == "image/svg+xml" {
		// Block SVG/XML until sanitizer is available
		return "", errors.New("SVG/XML files are not supported for security reasons")
	}

	if allowedImageMime[detected] {
		return detected, nil
	}

	return "", errors.New("unsupported image type")
}

// ValidateAudioBySniff checks the provided filename (extension) and the first bytes (head)
// against a whitelist of audio types. Returns detected mime or an error.
func ValidateAudioBySniff(filename string, head []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedAudioExt[ext] {
		return "", errors.New("only MP3, WAV, OGG and M4A audio files are supported")
	}

	detected := http.DetectContentType(head)

	if strings.HasPrefix(detected, "text/html") || strings.HasPrefix(detected, "application/xhtml") {
		return "", errors.New("invalid file type: HTML content is not allowed")
	}

	// MP3 files without an ID3 tag sniff as octet-stream; allow by extension
	if detected == "application/octet-stream" && allowedAudioExt[ext] {
		return detected, nil
	}

	if allowedAudioMime[detected] {
		return detected, nil
	}

	return "", errors.New("unsupported audio type")
}
