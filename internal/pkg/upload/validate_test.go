package upload_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/naijavibes/NaijaVibes/internal/pkg/upload"
)

var pngHead = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
var mp3ID3Head = append([]byte("ID3"), make([]byte, 16)...)

func TestValidateImageBySniff(t *testing.T) {
	t.Run("accepts png content with png extension", func(t *testing.T) {
		mime, err := upload.ValidateImageBySniff("photo.png", pngHead)
		assert.NoError(t, err)
		assert.Equal(t, "image/png", mime)
	})

	t.Run("rejects disallowed extensions", func(t *testing.T) {
		_, err := upload.ValidateImageBySniff("vector.svg", pngHead)
		assert.Error(t, err)
	})

	t.Run("rejects html masquerading as an image", func(t *testing.T) {
		_, err := upload.ValidateImageBySniff("photo.png", []byte("<html><script>alert(1)</script>"))
		assert.Error(t, err)
	})

	t.Run("rejects audio content with image extension", func(t *testing.T) {
		_, err := upload.ValidateImageBySniff("photo.jpg", mp3ID3Head)
		assert.Error(t, err)
	})
}

func TestValidateAudioBySniff(t *testing.T) {
	t.Run("accepts mp3 with ID3 header", func(t *testing.T) {
		_, err := upload.ValidateAudioBySniff("track.mp3", mp3ID3Head)
		assert.NoError(t, err)
	})

	t.Run("accepts raw mp3 frames by extension", func(t *testing.T) {
		_, err := upload.ValidateAudioBySniff("track.mp3", []byte{0xFF, 0xFB, 0x90, 0x00, 0x00})
		assert.NoError(t, err)
	})

	t.Run("rejects disallowed extensions", func(t *testing.T) {
		_, err := upload.ValidateAudioBySniff("track.exe", mp3ID3Head)
		assert.Error(t, err)
	})

	t.Run("rejects html masquerading as audio", func(t *testing.T) {
		_, err := upload.ValidateAudioBySniff("track.mp3", []byte("<html><body>nope</body></html>"))
		assert.Error(t, err)
	})
}
