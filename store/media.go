package store

import (
	"context"
	"time"

	"github.com/aarsh-studio/portfolio-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func nowUTC() time.Time { return time.Now().UTC() }

func (db *DB) InsertMedia(ctx context.Context, media *models.Media) (primitive.ObjectID, error) {
	res, err := db.Media().InsertOne(ctx, media, options.InsertOne())
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// ListActiveMedia returns active media, optionally filtered by type, ordered
// by manual sort priority then newest first.
func (db *DB) ListActiveMedia(ctx context.Context, mediaType string) ([]models.Media, error) {
	filter := bson.M{"isActive": true}
	if mediaType != "" {
		filter["type"] = mediaType
	}
	cur, err := db.Media().Find(ctx, filter, options.Find().SetSort(bson.D{
		{Key: "order", Value: 1},
		{Key: "createdAt", Value: -1},
	}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var items []models.Media
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (db *DB) MediaByID(ctx context.Context, id primitive.ObjectID) (*models.Media, error) {
	var m models.Media
	err := db.Media().FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (db *DB) UpdateMedia(ctx context.Context, id primitive.ObjectID, patch models.MediaPatch) error {
	updates := bson.M{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Order != nil {
		updates["order"] = *patch.Order
	}
	if patch.IsActive != nil {
		updates["isActive"] = *patch.IsActive
	}
	if patch.ImageURL != nil {
		updates["imageUrl"] = *patch.ImageURL
	}
	if patch.VideoURL != nil {
		updates["videoUrl"] = *patch.VideoURL
	}
	if patch.ThumbnailURL != nil {
		updates["thumbnailUrl"] = *patch.ThumbnailURL
	}
	if patch.AspectRatio != nil {
		updates["aspectRatio"] = *patch.AspectRatio
	}
	if len(updates) == 0 {
		return nil
	}
	updates["updatedAt"] = nowUTC()
	_, err := db.Media().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	return err
}

// DeleteMedia removes a media record by ID and returns the deleted record so
// callers can clean up blob store objects.
func (db *DB) DeleteMedia(ctx context.Context, id primitive.ObjectID) (*models.Media, error) {
	var m models.Media
	err := db.Media().FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CountActiveMedia returns the number of active media records of the given type.
func (db *DB) CountActiveMedia(ctx context.Context, mediaType string) (int64, error) {
	return db.Media().CountDocuments(ctx, bson.M{"type": mediaType, "isActive": true})
}
