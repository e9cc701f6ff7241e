package service

import (
	"context"

	"github.com/aarsh-studio/portfolio-backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore is the credential-store surface the services need. Lookup methods
// return (nil, nil) when no record matches. *store.DB satisfies this.
type UserStore interface {
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UsersByRoles(ctx context.Context, roles ...string) ([]models.User, error)
	CountByRole(ctx context.Context, role string) (int64, error)
	CreateUser(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, patch models.UserPatch) error
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
}

// MediaStore is the media-collection surface the services need.
type MediaStore interface {
	InsertMedia(ctx context.Context, media *models.Media) (primitive.ObjectID, error)
	ListActiveMedia(ctx context.Context, mediaType string) ([]models.Media, error)
	MediaByID(ctx context.Context, id primitive.ObjectID) (*models.Media, error)
	UpdateMedia(ctx context.Context, id primitive.ObjectID, patch models.MediaPatch) error
	DeleteMedia(ctx context.Context, id primitive.ObjectID) (*models.Media, error)
	CountActiveMedia(ctx context.Context, mediaType string) (int64, error)
}

// UploadedImage is what the blob store reports back after storing an image.
type UploadedImage struct {
	URL            string
	Key            string
	PlaceholderURL string
	PlaceholderKey string
	Width          int
	Height         int
	DominantColor  string
}

// BlobStore stores image binaries and returns durable URLs.
type BlobStore interface {
	UploadImage(ctx context.Context, filename string, data []byte, contentType string) (*UploadedImage, error)
	DeleteImage(ctx context.Context, key string) error
}
