package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Media type constants.
const (
	MediaPhoto = "photo"
	MediaVideo = "video"
)

type Media struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type        string             `bson:"type" json:"type"` // photo or video
	Title       string             `bson:"title,omitempty" json:"title,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`

	// Photo fields
	ImageURL       string  `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	StorageKey     string  `bson:"storageKey,omitempty" json:"-"` // blob store key for deletion
	PlaceholderKey string  `bson:"placeholderKey,omitempty" json:"-"`
	Width          int     `bson:"width,omitempty" json:"width,omitempty"`
	Height         int     `bson:"height,omitempty" json:"height,omitempty"`
	AspectRatio    float64 `bson:"aspectRatio,omitempty" json:"aspectRatio,omitempty"`
	PlaceholderURL string  `bson:"placeholderUrl,omitempty" json:"placeholderUrl,omitempty"`
	DominantColor  string  `bson:"dominantColor,omitempty" json:"dominantColor,omitempty"`

	// Video fields
	VideoURL     string `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	ThumbnailURL string `bson:"thumbnailUrl,omitempty" json:"thumbnailUrl,omitempty"`

	UploadedBy primitive.ObjectID `bson:"uploadedBy" json:"uploadedBy"`
	IsActive   bool               `bson:"isActive" json:"isActive"`
	Order      int                `bson:"order" json:"order"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// MediaPatch carries partial updates for a media record. Nil fields are left
// untouched; a non-nil pointer to a zero value clears the field.
type MediaPatch struct {
	Title       *string
	Description *string
	Order       *int
	IsActive    *bool
	ImageURL    *string
	VideoURL    *string

	// Derived fields set by the media service, never by callers.
	ThumbnailURL *string
	AspectRatio  *float64
}
