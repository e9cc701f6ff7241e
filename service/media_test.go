package service

import (
	"context"
	"errors"
	"testing"

	"github.com/aarsh-studio/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMaxUpload = 10 * 1024 * 1024

func newTestMediaService(media *mockMediaStore, blobs *mockBlobStore) *MediaService {
	return NewMediaService(media, blobs, testMaxUpload, zerolog.Nop())
}

func TestListPublicHidesInactive(t *testing.T) {
	media := newMockMediaStore()
	media.InsertMedia(context.Background(), &models.Media{Type: models.MediaPhoto, IsActive: true})
	media.InsertMedia(context.Background(), &models.Media{Type: models.MediaPhoto, IsActive: false})
	svc := newTestMediaService(media, newMockBlobStore(100, 100))

	items, err := svc.ListPublic(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].IsActive)
}

func TestListPublicTypeFilter(t *testing.T) {
	media := newMockMediaStore()
	media.InsertMedia(context.Background(), &models.Media{Type: models.MediaPhoto, IsActive: true})
	media.InsertMedia(context.Background(), &models.Media{Type: models.MediaVideo, IsActive: true})
	svc := newTestMediaService(media, newMockBlobStore(100, 100))

	photos, err := svc.ListPublic(context.Background(), models.MediaPhoto)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, models.MediaPhoto, photos[0].Type)

	_, err = svc.ListPublic(context.Background(), "audio")
	require.Error(t, err)
	assert.Equal(t, models.KindInvalidInput, models.KindOf(err))
}

func TestCreatePhotoRejectsOversizeFile(t *testing.T) {
	users := newMockUserStore()
	actor := adminUser(users, "admin@example.com")
	svc := newTestMediaService(newMockMediaStore(), newMockBlobStore(100, 100))

	_, err := svc.CreatePhoto(context.Background(), PhotoUpload{
		Filename:    "big.jpg",
		ContentType: "image/jpeg",
		Data:        make([]byte, 12*1024*1024),
	}, actor)
	require.Error(t, err)
	assert.Equal(t, models.KindInvalidFile, models.KindOf(err))
}

func TestCreatePhotoRejectsDisallowedType(t *testing.T) {
	users := newMockUserStore()
	actor := adminUser(users, "admin@example.com")
	svc := newTestMediaService(newMockMediaStore(), newMockBlobStore(100, 100))

	_, err := svc.CreatePhoto(context.Background(), PhotoUpload{
		Filename:    "clip.gif",
		ContentType: "image/gif",
		Data:        []byte("gif bytes"),
	}, actor)
	require.Error(t, err)
	assert.Equal(t, models.KindInvalidFile, models.KindOf(err))
}

func TestCreatePhotoForbiddenForPendingUser(t *testing.T) {
	users := newMockUserStore()
	actor := pendingUser(users, "new@example.com")
	svc := newTestMediaService(newMockMediaStore(), newMockBlobStore(100, 100))

	_, err := svc.CreatePhoto(context.Background(), PhotoUpload{
		Filename:    "a.jpg",
		ContentType: "image/jpeg",
		Data:        []byte("jpeg bytes"),
	}, actor)
	require.Error(t, err)
	assert.Equal(t, models.KindForbidden, models.KindOf(err))
}

func TestCreatePhotoDerivesAspectRatio(t *testing.T) {
	users := newMockUserStore()
	actor := adminUser(users, "admin@example.com")
	media := newMockMediaStore()
	svc := newTestMediaService(media, newMockBlobStore(1600, 1200))

	m, err := svc.CreatePhoto(context.Background(), PhotoUpload{
		Filename:    "wedding.jpg",
		ContentType: "image/jpeg",
		Data:        make([]byte, 2*1024*1024),
		Title:       "First dance",
	}, actor)
	require.NoError(t, err)
	assert.Equal(t, models.MediaPhoto, m.Type)
	assert.Equal(t, 1600, m.Width)
	assert.Equal(t, 1200, m.Height)
	assert.InDelta(t, 1.3333, m.AspectRatio, 0.0001)
	assert.NotEmpty(t, m.ImageURL)
	assert.NotEmpty(t, m.PlaceholderURL)
	assert.True(t, m.IsActive)
	assert.Equal(t, actor.ID, m.UploadedBy)

	// Same dimensions always derive the same ratio.
	again := aspectRatio(m.Width, m.Height)
	assert.Equal(t, m.AspectRatio, again)
}

func TestCreatePhotoUploadFailureLeavesNoRecord(t *testing.T) {
	users := newMockUserStore()
	actor := adminUser(users, "admin@example.com")
	media := newMockMediaStore()
	blobs := newMockBlobStore(100, 100)
	blobs.uploadErr = errors.New("connection reset")
	svc := newTestMediaService(media, blobs)

	_, err := svc.CreatePhoto(context.Background(), PhotoUpload{
		Filename:    "a.jpg",
		ContentType: "image/jpeg",
		Data:        []byte("jpeg bytes"),
	}, actor)
	require.Error(t, err)
	assert.Equal(t, models.KindUploadFailed, models.KindOf(err))
	assert.Empty(t, media.media)
}

func TestCreateVideoRequiresURL(t *testing.T) {
	users := newMockUserStore()
	actor := adminUser(users, "admin@example.com")
	svc := newTestMediaService(newMockMediaStore(), newMockBlobStore(100, 100))

	_, err := svc.CreateVideo(context.Background(), VideoInput{VideoURL: "  "}, actor)
	require.Error(t, err)
	assert.Equal(t, models.KindInvalidInput, models.KindOf(err))
}

func TestCreateVideoDerivesThumbnail(t *testing.T) {
	users := newMockUserStore()
	actor := adminUser(users, "admin@example.com")
	svc := newTestMediaService(newMockMediaStore(), newMockBlobStore(100, 100))

	m, err := svc.CreateVideo(context.Background(), VideoInput{
		VideoURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=10s",
	}, actor)
	require.NoError(t, err)
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", m.ThumbnailURL)
}

func TestCreateVideoUnrecognizedURLStoredVerbatim(t *testing.T) {
	users := newMockUserStore()
	actor := adminUser(users, "admin@example.com")
	svc := newTestMediaService(newMockMediaStore(), newMockBlobStore(100, 100))

	m, err := svc.CreateVideo(context.Background(), VideoInput{
		VideoURL: "https://vimeo.com/123456789",
	}, actor)
	require.NoError(t, err)
	assert.Equal(t, "https://vimeo.com/123456789", m.VideoURL)
	assert.Empty(t, m.ThumbnailURL)
}

func TestUpdatePartialPatch(t *testing.T) {
	users := newMockUserStore()
	actor := adminUser(users, "admin@example.com")
	media := newMockMediaStore()
	id, _ := media.InsertMedia(context.Background(), &models.Media{
		Type:        models.MediaPhoto,
		Title:       "Old title",
		Description: "Keep me",
		IsActive:    true,
	})
	svc := newTestMediaService(media, newMockBlobStore(100, 100))

	title := "New title"
	m, err := svc.Update(context.Background(), id, MediaUpdate{Title: &title}, actor)
	require.NoError(t, err)
	assert.Equal(t, "New title", m.Title)
	assert.Equal(t, "Keep me", m.Description)
}

func TestUpdateTogglingActiveHidesFromPublicList(t *testing.T) {
	users := newMockUserStore()
	actor := adminUser(users, "admin@example.com")
	media := newMockMediaStore()
	id, _ := media.InsertMedia(context.Background(), &models.Media{
		Type:     models.MediaPhoto,
		IsActive: true,
	})
	svc := newTestMediaService(media, newMockBlobStore(100, 100))

	items, err := svc.ListPublic(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, items, 1)

	inactive := false
	_, err = svc.Update(context.Background(), id, MediaUpdate{IsActive: &inactive}, actor)
	require.NoError(t, err)

	items, err = svc.ListPublic(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdateVideoURLRederivesThumbnail(t *testing.T) {
	users := newMockUserStore()
	actor := adminUser(users, "admin@example.com")
	media := newMockMediaStore()
	id, _ := media.InsertMedia(context.Background(), &models.Media{
		Type:         models.MediaVideo,
		VideoURL:     "https://youtu.be/dQw4w9WgXcQ",
		ThumbnailURL: "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg",
		IsActive:     true,
	})
	svc := newTestMediaService(media, newMockBlobStore(100, 100))

	newURL := "https://youtu.be/9bZkp7q19f0"
	m, err := svc.Update(context.Background(), id, MediaUpdate{VideoURL: &newURL}, actor)
	require.NoError(t, err)
	assert.Equal(t, "https://img.youtube.com/vi/9bZkp7q19f0/hqdefault.jpg", m.ThumbnailURL)
}

func TestUpdateExplicitThumbnailWins(t *testing.T) {
	users := newMockUserStore()
	actor := adminUser(users, "admin@example.com")
	media := newMockMediaStore()
	id, _ := media.InsertMedia(context.Background(), &models.Media{
		Type:     models.MediaVideo,
		VideoURL: "https://youtu.be/dQw4w9WgXcQ",
		IsActive: true,
	})
	svc := newTestMediaService(media, newMockBlobStore(100, 100))

	newURL := "https://youtu.be/9bZkp7q19f0"
	thumb := "https://example.com/custom-thumb.jpg"
	m, err := svc.Update(context.Background(), id, MediaUpdate{VideoURL: &newURL, ThumbnailURL: &thumb}, actor)
	require.NoError(t, err)
	assert.Equal(t, thumb, m.ThumbnailURL)
}

func TestUpdateNotFound(t *testing.T) {
	users := newMockUserStore()
	actor := adminUser(users, "admin@example.com")
	svc := newTestMediaService(newMockMediaStore(), newMockBlobStore(100, 100))

	title := "x"
	_, err := svc.Update(context.Background(), adminUser(newMockUserStore(), "y@example.com").ID, MediaUpdate{Title: &title}, actor)
	require.Error(t, err)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

func TestDeletePhotoCleansUpBlobObjects(t *testing.T) {
	users := newMockUserStore()
	actor := adminUser(users, "admin@example.com")
	media := newMockMediaStore()
	id, _ := media.InsertMedia(context.Background(), &models.Media{
		Type:           models.MediaPhoto,
		StorageKey:     "photos/abc.jpg",
		PlaceholderKey: "photos/placeholders/abc.jpg",
		IsActive:       true,
	})
	blobs := newMockBlobStore(100, 100)
	svc := newTestMediaService(media, blobs)

	_, err := svc.Delete(context.Background(), id, actor)
	require.NoError(t, err)
	assert.Equal(t, []string{"photos/abc.jpg", "photos/placeholders/abc.jpg"}, blobs.deleted)
	assert.Empty(t, media.media)
}

func TestDeletePhotoBlobFailureStillRemovesRecord(t *testing.T) {
	users := newMockUserStore()
	actor := adminUser(users, "admin@example.com")
	media := newMockMediaStore()
	id, _ := media.InsertMedia(context.Background(), &models.Media{
		Type:       models.MediaPhoto,
		StorageKey: "photos/abc.jpg",
		IsActive:   true,
	})
	blobs := newMockBlobStore(100, 100)
	blobs.deleteErr = errors.New("access denied")
	svc := newTestMediaService(media, blobs)

	_, err := svc.Delete(context.Background(), id, actor)
	require.NoError(t, err)
	assert.Empty(t, media.media)
}

func TestDeleteVideoSkipsBlobStore(t *testing.T) {
	users := newMockUserStore()
	actor := adminUser(users, "admin@example.com")
	media := newMockMediaStore()
	id, _ := media.InsertMedia(context.Background(), &models.Media{
		Type:     models.MediaVideo,
		VideoURL: "https://youtu.be/dQw4w9WgXcQ",
		IsActive: true,
	})
	blobs := newMockBlobStore(100, 100)
	svc := newTestMediaService(media, blobs)

	_, err := svc.Delete(context.Background(), id, actor)
	require.NoError(t, err)
	assert.Empty(t, blobs.deleted)
}

func TestDeleteNotFound(t *testing.T) {
	users := newMockUserStore()
	actor := adminUser(users, "admin@example.com")
	svc := newTestMediaService(newMockMediaStore(), newMockBlobStore(100, 100))

	_, err := svc.Delete(context.Background(), actor.ID, actor)
	require.Error(t, err)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}
