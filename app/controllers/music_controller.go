package controllers

import (
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/naijavibes/NaijaVibes/app/models"
	"github.com/naijavibes/NaijaVibes/app/repository"
	"github.com/naijavibes/NaijaVibes/internal/pkg/env"
	"github.com/naijavibes/NaijaVibes/internal/pkg/mediastore"
	"github.com/naijavibes/NaijaVibes/internal/pkg/upload"
)

// mediaClient is set during router installation when S3 media storage is enabled
var mediaClient *mediastore.Client
var mediaConfig *mediastore.Config

// InitializeMediaStore wires the optional S3 media client into the controllers.
func InitializeMediaStore() {
	cfg, err := mediastore.LoadConfig()
	if err != nil {
		log.Printf("[Music] invalid media storage config: %v", err)
		return
	}
	mediaConfig = cfg
	if !cfg.IsEnabled() {
		return
	}
	client, err := mediastore.NewClient(cfg)
	if err != nil {
		log.Printf("[Music] media storage disabled: %v", err)
		return
	}
	mediaClient = client
}

// HandleListMusic returns tracks from the catalog, optionally by category.
func HandleListMusic(c *fiber.Ctx) error {
	category := c.Query("category", "")
	if category != "" && category != models.MusicCategoryGospel && category != models.MusicCategoryMainstream {
		return jsonError(c, fiber.StatusBadRequest, "category must be gospel or mainstream")
	}

	offset, limit := pagination(c)
	tracks, err := repository.GetGlobalFactory().GetMusicRepository().List(category, offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not load tracks")
	}

	return c.JSON(fiber.Map{
		"tracks": tracks,
	})
}

// HandleGetTrack returns a single track.
func HandleGetTrack(c *fiber.Ctx) error {
	track, err := repository.GetGlobalFactory().GetMusicRepository().GetByUUID(c.Params("uuid"))
	if err != nil || track == nil {
		return jsonError(c, fiber.StatusNotFound, "track not found")
	}
	return c.JSON(track)
}

// HandlePlayTrack counts a play and returns the audio URL.
func HandlePlayTrack(c *fiber.Ctx) error {
	musicRepo := repository.GetGlobalFactory().GetMusicRepository()
	track, err := musicRepo.GetByUUID(c.Params("uuid"))
	if err != nil || track == nil {
		return jsonError(c, fiber.StatusNotFound, "track not found")
	}

	_ = musicRepo.IncrementPlays(track.ID)

	return c.JSON(fiber.Map{
		"audio_url": track.AudioURL,
	})
}

// HandleDownloadTrack counts a download and returns the audio URL.
func HandleDownloadTrack(c *fiber.Ctx) error {
	musicRepo := repository.GetGlobalFactory().GetMusicRepository()
	track, err := musicRepo.GetByUUID(c.Params("uuid"))
	if err != nil || track == nil {
		return jsonError(c, fiber.StatusNotFound, "track not found")
	}

	_ = musicRepo.IncrementDownloads(track.ID)

	return c.JSON(fiber.Map{
		"audio_url": track.AudioURL,
	})
}

// HandleUploadTrack accepts a multipart upload with the audio file and an
// optional cover image and creates the catalog entry (admin only).
func HandleUploadTrack(c *fiber.Ctx) error {
	title := strings.TrimSpace(c.FormValue("title"))
	artist := strings.TrimSpace(c.FormValue("artist"))
	category := c.FormValue("category", models.MusicCategoryMainstream)

	if title == "" || artist == "" {
		return jsonError(c, fiber.StatusBadRequest, "title and artist are required")
	}
	if category != models.MusicCategoryGospel && category != models.MusicCategoryMainstream {
		return jsonError(c, fiber.StatusBadRequest, "category must be gospel or mainstream")
	}

	audioHeader, err := c.FormFile("audio")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "audio file missing")
	}

	trackUUID := uuid.New().String()

	audioURL, err := storeUploadedFile(c, audioHeader, "audio", trackUUID, upload.ValidateAudioBySniff)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	imageURL := ""
	if imageHeader, err := c.FormFile("image"); err == nil && imageHeader != nil {
		imageURL, err = storeUploadedFile(c, imageHeader, "covers", trackUUID, upload.ValidateImageBySniff)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, err.Error())
		}
	}

	track := &models.MusicTrack{
		UUID:       trackUUID,
		Title:      title,
		Artist:     artist,
		Duration:   c.FormValue("duration", ""),
		AudioURL:   audioURL,
		ImageURL:   imageURL,
		Category:   category,
		UploadedBy: CurrentUserID(c),
	}

	if err := repository.GetGlobalFactory().GetMusicRepository().Create(track); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not save track")
	}

	return c.Status(fiber.StatusCreated).JSON(track)
}

type sniffValidator func(filename string, head []byte) (string, error)

// storeUploadedFile validates, stores locally, generates thumbnails for images
// and mirrors the file to S3 when the media client is configured.
func storeUploadedFile(c *fiber.Ctx, header *multipart.FileHeader, kind, mediaUUID string, validateFn sniffValidator) (string, error) {
	f, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("could not read upload")
	}
	defer f.Close()

	head := make([]byte, 512)
	n, _ := f.Read(head)
	if _, err := validateFn(header.Filename, head[:n]); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	now := time.Now()
	relDir := filepath.Join("uploads", kind, fmt.Sprintf("%04d", now.Year()), fmt.Sprintf("%02d", now.Month()))
	localDir := filepath.Join(env.GetEnv("UPLOAD_DIR", "./data"), relDir)
	if err := os.MkdirAll(localDir, 0755); err != nil {
		return "", fmt.Errorf("could not store upload")
	}

	localPath := filepath.Join(localDir, mediaUUID+ext)
	if err := c.SaveFile(header, localPath); err != nil {
		return "", fmt.Errorf("could not store upload")
	}

	if kind != "audio" {
		if _, err := mediastore.GenerateThumbnails(localPath); err != nil {
			log.Printf("[Upload] thumbnail generation failed for %s: %v", localPath, err)
		}
	}

	if mediaClient != nil && mediaConfig != nil {
		key := mediaConfig.GetObjectKey(kind, mediaUUID, ext, now.Year(), int(now.Month()))
		if _, err := mediaClient.UploadFile(localPath, key); err != nil {
			log.Printf("[Upload] S3 mirror failed for %s: %v", localPath, err)
		}
	}

	return "/" + filepath.ToSlash(relDir) + "/" + mediaUUID + ext, nil
}
