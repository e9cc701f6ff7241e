package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/aarsh-studio/portfolio-backend/metrics"
	"github.com/aarsh-studio/portfolio-backend/models"
	"github.com/aarsh-studio/portfolio-backend/service"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MediaHandler struct {
	Media    *service.MediaService
	MaxBytes int64
}

type CreateVideoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl"`
}

type UpdateMediaRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Order        *int    `json:"order"`
	IsActive     *bool   `json:"isActive"`
	ImageURL     *string `json:"imageUrl"`
	VideoURL     *string `json:"videoUrl"`
	ThumbnailURL *string `json:"thumbnailUrl"`
}

// List is the public gallery endpoint; only active media is returned.
func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Media.ListPublic(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items, Count: len(items)})
}

// Get returns a single record regardless of visibility.
func (h *MediaHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := mediaIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	m, err := h.Media.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// UploadPhoto accepts a multipart image upload and creates a photo record.
func (h *MediaHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	// Cap the request body a little above the image limit to leave room for
	// the form fields; the service enforces the exact image size.
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes+64*1024)
	if err := r.ParseMultipartForm(h.MaxBytes); err != nil {
		metrics.UploadFailures.WithLabelValues(string(models.KindInvalidFile)).Inc()
		writeError(w, models.E(models.KindInvalidFile, "image exceeds the maximum upload size"))
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, models.E(models.KindInvalidFile, "image file is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, models.Internal("failed to read upload", err))
		return
	}

	m, err := h.Media.CreatePhoto(r.Context(), service.PhotoUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}, actor)
	if err != nil {
		if kind := models.KindOf(err); kind == models.KindInvalidFile || kind == models.KindUploadFailed {
			metrics.UploadFailures.WithLabelValues(string(kind)).Inc()
		}
		writeError(w, err)
		return
	}
	metrics.MediaCreated.WithLabelValues(models.MediaPhoto).Inc()
	writeJSON(w, http.StatusCreated, m)
}

// CreateVideo creates a video record from a URL.
func (h *MediaHandler) CreateVideo(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req CreateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, models.E(models.KindInvalidInput, "invalid json"))
		return
	}
	m, err := h.Media.CreateVideo(r.Context(), service.VideoInput{
		VideoURL:    req.VideoURL,
		Title:       req.Title,
		Description: req.Description,
	}, actor)
	if err != nil {
		writeError(w, err)
		return
	}
	metrics.MediaCreated.WithLabelValues(models.MediaVideo).Inc()
	writeJSON(w, http.StatusCreated, m)
}

// Update applies a partial patch to a media record.
func (h *MediaHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := mediaIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req UpdateMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, models.E(models.KindInvalidInput, "invalid json"))
		return
	}
	m, err := h.Media.Update(r.Context(), id, service.MediaUpdate{
		Title:        req.Title,
		Description:  req.Description,
		Order:        req.Order,
		IsActive:     req.IsActive,
		ImageURL:     req.ImageURL,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
	}, actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// Delete removes a media record, cleaning up blob store objects for photos.
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := mediaIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	m, err := h.Media.Delete(r.Context(), id, actor)
	if err != nil {
		writeError(w, err)
		return
	}
	metrics.MediaDeleted.WithLabelValues(m.Type).Inc()
	w.WriteHeader(http.StatusNoContent)
}

func mediaIDParam(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, models.E(models.KindInvalidInput, "invalid media id")
	}
	return id, nil
}
