package service

import (
	"context"
	"strings"
	"time"

	"github.com/aarsh-studio/portfolio-backend/models"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// allowedImageTypes is the upload allow-list for photos.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// MediaService owns the media record lifecycle: validation, derived fields,
// blob store orchestration, and the soft-delete visibility flag.
type MediaService struct {
	media          MediaStore
	blobs          BlobStore
	maxUploadBytes int64
	logger         zerolog.Logger
}

func NewMediaService(media MediaStore, blobs BlobStore, maxUploadBytes int64, logger zerolog.Logger) *MediaService {
	return &MediaService{
		media:          media,
		blobs:          blobs,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With().Str("service", "media").Logger(),
	}
}

// ListPublic returns active media for the public gallery, optionally filtered
// by type. No authentication required.
func (s *MediaService) ListPublic(ctx context.Context, mediaType string) ([]models.Media, error) {
	if mediaType != "" && mediaType != models.MediaPhoto && mediaType != models.MediaVideo {
		return nil, models.E(models.KindInvalidInput, "type must be photo or video")
	}
	items, err := s.media.ListActiveMedia(ctx, mediaType)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list media")
		return nil, models.Internal("failed to list media", err)
	}
	return items, nil
}

// Get returns a single record regardless of its visibility flag.
func (s *MediaService) Get(ctx context.Context, id primitive.ObjectID) (*models.Media, error) {
	m, err := s.media.MediaByID(ctx, id)
	if err != nil {
		return nil, models.Internal("failed to load media", err)
	}
	if m == nil {
		return nil, models.E(models.KindNotFound, "media not found")
	}
	return m, nil
}

type PhotoUpload struct {
	Filename    string
	ContentType string
	Data        []byte
	Title       string
	Description string
}

// CreatePhoto validates the binary, uploads it to the blob store, and
// persists the record with its derived fields. A blob store failure aborts
// the operation with nothing persisted.
func (s *MediaService) CreatePhoto(ctx context.Context, up PhotoUpload, actor *models.User) (*models.Media, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if len(up.Data) == 0 {
		return nil, models.E(models.KindInvalidFile, "image file is required")
	}
	if int64(len(up.Data)) > s.maxUploadBytes {
		return nil, models.E(models.KindInvalidFile, "image exceeds the maximum upload size")
	}
	if !allowedImageTypes[up.ContentType] {
		return nil, models.E(models.KindInvalidFile, "only jpeg, png and webp images are allowed")
	}

	img, err := s.blobs.UploadImage(ctx, up.Filename, up.Data, up.ContentType)
	if err != nil {
		s.logger.Error().Err(err).Str("filename", up.Filename).Msg("blob store upload failed")
		return nil, &models.Error{Kind: models.KindUploadFailed, Message: "image upload failed", Err: err}
	}

	now := time.Now().UTC()
	media := &models.Media{
		Type:           models.MediaPhoto,
		Title:          strings.TrimSpace(up.Title),
		Description:    strings.TrimSpace(up.Description),
		ImageURL:       img.URL,
		StorageKey:     img.Key,
		PlaceholderKey: img.PlaceholderKey,
		Width:          img.Width,
		Height:         img.Height,
		AspectRatio:    aspectRatio(img.Width, img.Height),
		PlaceholderURL: img.PlaceholderURL,
		DominantColor:  img.DominantColor,
		UploadedBy:     actor.ID,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	id, err := s.media.InsertMedia(ctx, media)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to persist photo record")
		return nil, models.Internal("failed to save photo", err)
	}
	media.ID = id
	s.logger.Info().Str("id", id.Hex()).Int("width", img.Width).Int("height", img.Height).Msg("photo uploaded")
	return media, nil
}

type VideoInput struct {
	VideoURL    string
	Title       string
	Description string
}

// CreateVideo stores a video by URL. When the URL is a recognized
// video-hosting link, a thumbnail is derived; otherwise the URL is stored
// verbatim with no thumbnail.
func (s *MediaService) CreateVideo(ctx context.Context, in VideoInput, actor *models.User) (*models.Media, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	videoURL := strings.TrimSpace(in.VideoURL)
	if videoURL == "" {
		return nil, models.E(models.KindInvalidInput, "video URL is required")
	}

	now := time.Now().UTC()
	media := &models.Media{
		Type:         models.MediaVideo,
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		VideoURL:     videoURL,
		ThumbnailURL: VideoThumbnail(videoURL),
		UploadedBy:   actor.ID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	id, err := s.media.InsertMedia(ctx, media)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to persist video record")
		return nil, models.Internal("failed to save video", err)
	}
	media.ID = id
	return media, nil
}

type MediaUpdate struct {
	Title        *string
	Description  *string
	Order        *int
	IsActive     *bool
	ImageURL     *string
	VideoURL     *string
	ThumbnailURL *string
}

// Update applies a partial patch. Omitted fields are untouched. The thumbnail
// is re-derived only when the video URL changes without an explicit
// thumbnail, and the aspect ratio is always recomputed from the stored
// dimensions rather than trusted from input.
func (s *MediaService) Update(ctx context.Context, id primitive.ObjectID, in MediaUpdate, actor *models.User) (*models.Media, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	m, err := s.media.MediaByID(ctx, id)
	if err != nil {
		return nil, models.Internal("failed to load media", err)
	}
	if m == nil {
		return nil, models.E(models.KindNotFound, "media not found")
	}

	patch := models.MediaPatch{
		Title:       in.Title,
		Description: in.Description,
		Order:       in.Order,
		IsActive:    in.IsActive,
		ImageURL:    in.ImageURL,
		VideoURL:    in.VideoURL,
	}
	if in.ThumbnailURL != nil {
		patch.ThumbnailURL = in.ThumbnailURL
	} else if in.VideoURL != nil && m.Type == models.MediaVideo {
		thumb := VideoThumbnail(*in.VideoURL)
		patch.ThumbnailURL = &thumb
	}
	if m.Width > 0 && m.Height > 0 {
		ratio := aspectRatio(m.Width, m.Height)
		patch.AspectRatio = &ratio
	}

	if err := s.media.UpdateMedia(ctx, id, patch); err != nil {
		s.logger.Error().Err(err).Str("id", id.Hex()).Msg("failed to update media")
		return nil, models.Internal("failed to update media", err)
	}
	updated, err := s.media.MediaByID(ctx, id)
	if err != nil || updated == nil {
		return nil, models.Internal("failed to reload media", err)
	}
	return updated, nil
}

// Delete removes a record and returns it. For photos the blob store objects
// are cleaned up first, best-effort: a failed remote delete is logged and
// the local record is removed regardless.
func (s *MediaService) Delete(ctx context.Context, id primitive.ObjectID, actor *models.User) (*models.Media, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	m, err := s.media.MediaByID(ctx, id)
	if err != nil {
		return nil, models.Internal("failed to load media", err)
	}
	if m == nil {
		return nil, models.E(models.KindNotFound, "media not found")
	}

	if m.Type == models.MediaPhoto {
		for _, key := range []string{m.StorageKey, m.PlaceholderKey} {
			if key == "" {
				continue
			}
			if err := s.blobs.DeleteImage(ctx, key); err != nil {
				s.logger.Warn().Err(err).Str("key", key).Msg("blob store cleanup failed; removing record anyway")
			}
		}
	}

	if _, err := s.media.DeleteMedia(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("id", id.Hex()).Msg("failed to delete media record")
		return nil, models.Internal("failed to delete media", err)
	}
	s.logger.Info().Str("id", id.Hex()).Str("type", m.Type).Msg("media deleted")
	return m, nil
}

func aspectRatio(width, height int) float64 {
	if width <= 0 || height <= 0 {
		return 0
	}
	return float64(width) / float64(height)
}
