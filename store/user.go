package store

import (
	"context"

	"github.com/aarsh-studio/portfolio-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := db.Users().FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (db *DB) UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := db.Users().FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UsersByRoles returns users whose role is in roles, newest first.
func (db *DB) UsersByRoles(ctx context.Context, roles ...string) ([]models.User, error) {
	cur, err := db.Users().Find(ctx,
		bson.M{"role": bson.M{"$in": roles}},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (db *DB) CountByRole(ctx context.Context, role string) (int64, error) {
	return db.Users().CountDocuments(ctx, bson.M{"role": role})
}

func (db *DB) CreateUser(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	res, err := db.Users().InsertOne(ctx, user, options.InsertOne())
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) UpdateUser(ctx context.Context, id primitive.ObjectID, patch models.UserPatch) error {
	updates := bson.M{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	if patch.Password != nil {
		updates["password"] = *patch.Password
	}
	if patch.Role != nil {
		updates["role"] = *patch.Role
	}
	if patch.IsApproved != nil {
		updates["isApproved"] = *patch.IsApproved
	}
	if patch.ApprovedBy != nil {
		updates["approvedBy"] = *patch.ApprovedBy
	}
	if patch.ApprovedAt != nil {
		updates["approvedAt"] = *patch.ApprovedAt
	}
	if len(updates) == 0 {
		return nil
	}
	updates["updatedAt"] = nowUTC()
	_, err := db.Users().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	return err
}

func (db *DB) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	_, err := db.Users().DeleteOne(ctx, bson.M{"_id": id})
	return err
}
