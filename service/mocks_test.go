package service

import (
	"context"
	"errors"
	"time"

	"github.com/aarsh-studio/portfolio-backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// mockUserStore is an in-memory UserStore.
type mockUserStore struct {
	users map[primitive.ObjectID]*models.User
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

// add inserts a user with a fresh ID, bypassing validation.
func (m *mockUserStore) add(u *models.User) *models.User {
	u.ID = primitive.NewObjectID()
	cp := *u
	m.users[u.ID] = &cp
	return u
}

func (m *mockUserStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockUserStore) UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserStore) UsersByRoles(ctx context.Context, roles ...string) ([]models.User, error) {
	var out []models.User
	for _, u := range m.users {
		for _, r := range roles {
			if u.Role == r {
				out = append(out, *u)
				break
			}
		}
	}
	return out, nil
}

func (m *mockUserStore) CountByRole(ctx context.Context, role string) (int64, error) {
	var n int64
	for _, u := range m.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (m *mockUserStore) CreateUser(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	cp := *user
	cp.ID = id
	m.users[id] = &cp
	return id, nil
}

func (m *mockUserStore) UpdateUser(ctx context.Context, id primitive.ObjectID, patch models.UserPatch) error {
	u, ok := m.users[id]
	if !ok {
		return errors.New("no such user")
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Password != nil {
		u.Password = *patch.Password
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.IsApproved != nil {
		u.IsApproved = *patch.IsApproved
	}
	if patch.ApprovedBy != nil {
		u.ApprovedBy = patch.ApprovedBy
	}
	if patch.ApprovedAt != nil {
		u.ApprovedAt = patch.ApprovedAt
	}
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *mockUserStore) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	delete(m.users, id)
	return nil
}

// mockMediaStore is an in-memory MediaStore.
type mockMediaStore struct {
	media map[primitive.ObjectID]*models.Media
}

func newMockMediaStore() *mockMediaStore {
	return &mockMediaStore{media: make(map[primitive.ObjectID]*models.Media)}
}

func (m *mockMediaStore) InsertMedia(ctx context.Context, media *models.Media) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	cp := *media
	cp.ID = id
	m.media[id] = &cp
	return id, nil
}

func (m *mockMediaStore) ListActiveMedia(ctx context.Context, mediaType string) ([]models.Media, error) {
	var out []models.Media
	for _, item := range m.media {
		if !item.IsActive {
			continue
		}
		if mediaType != "" && item.Type != mediaType {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}

func (m *mockMediaStore) MediaByID(ctx context.Context, id primitive.ObjectID) (*models.Media, error) {
	item, ok := m.media[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (m *mockMediaStore) UpdateMedia(ctx context.Context, id primitive.ObjectID, patch models.MediaPatch) error {
	item, ok := m.media[id]
	if !ok {
		return errors.New("no such media")
	}
	if patch.Title != nil {
		item.Title = *patch.Title
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Order != nil {
		item.Order = *patch.Order
	}
	if patch.IsActive != nil {
		item.IsActive = *patch.IsActive
	}
	if patch.ImageURL != nil {
		item.ImageURL = *patch.ImageURL
	}
	if patch.VideoURL != nil {
		item.VideoURL = *patch.VideoURL
	}
	if patch.ThumbnailURL != nil {
		item.ThumbnailURL = *patch.ThumbnailURL
	}
	if patch.AspectRatio != nil {
		item.AspectRatio = *patch.AspectRatio
	}
	item.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *mockMediaStore) DeleteMedia(ctx context.Context, id primitive.ObjectID) (*models.Media, error) {
	item, ok := m.media[id]
	if !ok {
		return nil, nil
	}
	delete(m.media, id)
	return item, nil
}

func (m *mockMediaStore) CountActiveMedia(ctx context.Context, mediaType string) (int64, error) {
	var n int64
	for _, item := range m.media {
		if item.IsActive && item.Type == mediaType {
			n++
		}
	}
	return n, nil
}

// mockBlobStore records uploads and deletions.
type mockBlobStore struct {
	uploadErr error
	deleteErr error
	width     int
	height    int
	uploads   []string
	deleted   []string
}

func newMockBlobStore(width, height int) *mockBlobStore {
	return &mockBlobStore{width: width, height: height}
}

func (m *mockBlobStore) UploadImage(ctx context.Context, filename string, data []byte, contentType string) (*UploadedImage, error) {
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	key := "photos/" + filename
	m.uploads = append(m.uploads, key)
	return &UploadedImage{
		URL:            "https://bucket.s3.us-east-1.amazonaws.com/" + key,
		Key:            key,
		PlaceholderURL: "https://bucket.s3.us-east-1.amazonaws.com/photos/placeholders/" + filename,
		PlaceholderKey: "photos/placeholders/" + filename,
		Width:          m.width,
		Height:         m.height,
		DominantColor:  "#aabbcc",
	}, nil
}

func (m *mockBlobStore) DeleteImage(ctx context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	return m.deleteErr
}

// test fixtures

func hashPassword(password string) string {
	h, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(h)
}

func superAdminUser(users *mockUserStore) *models.User {
	now := time.Now().UTC()
	return users.add(&models.User{
		Name:       "Root",
		Email:      "root@example.com",
		Password:   hashPassword("rootpass"),
		Role:       models.RoleSuperAdmin,
		IsApproved: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

func adminUser(users *mockUserStore, email string) *models.User {
	now := time.Now().UTC()
	return users.add(&models.User{
		Name:       "Admin",
		Email:      email,
		Password:   hashPassword("adminpass"),
		Role:       models.RoleAdmin,
		IsApproved: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

func pendingUser(users *mockUserStore, email string) *models.User {
	now := time.Now().UTC()
	return users.add(&models.User{
		Name:      "Pending",
		Email:     email,
		Password:  hashPassword("pendingpass"),
		Role:      models.RolePending,
		CreatedAt: now,
		UpdatedAt: now,
	})
}
