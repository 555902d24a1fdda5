package http

import (
	"errors"
	"io"
	"net/http"
	"path"
	"strconv"

	"github.com/glockstar/fanpage/pkg/domain/interfaces"
	"github.com/glockstar/fanpage/pkg/domain/model/memory"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/ctxlog"
)

// maxImageSize bounds uploaded gallery images.
const maxImageSize = 10 << 20

// MemoriesController serves the memories gallery.
type MemoriesController struct {
	memories interfaces.MemoryUseCases
}

func NewMemoriesController(memories interfaces.MemoryUseCases) *MemoriesController {
	return &MemoriesController{memories: memories}
}

type memoriesListResponse struct {
	Success  bool             `json:"success"`
	Memories []*memory.Memory `json:"memories"`
	Total    int              `json:"total"`
}

// HandleList returns stored memories, newest first.
func (c *MemoriesController) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	offset := 0
	limit := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			offset = parsed
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	memories, total, err := c.memories.ListMemories(ctx, offset, limit)
	if err != nil {
		ctxlog.From(ctx).Error("failed to list memories", "error", err)
		writeFailure(ctx, w, "failed to list memories")
		return
	}
	if memories == nil {
		memories = []*memory.Memory{}
	}

	writeJSON(ctx, w, http.StatusOK, &memoriesListResponse{
		Success:  true,
		Memories: memories,
		Total:    total,
	})
}

// HandleCreate accepts a multipart form with title, text and an optional
// image file.
func (c *MemoriesController) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		writeFailure(ctx, w, "invalid form data")
		return
	}

	input := &interfaces.CreateMemoryInput{
		Title: r.FormValue("title"),
		Text:  r.FormValue("text"),
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()

		data, readErr := io.ReadAll(io.LimitReader(file, maxImageSize))
		if readErr != nil {
			writeFailure(ctx, w, "failed to read image")
			return
		}
		input.ImageName = header.Filename
		input.ImageData = data
	}

	created, err := c.memories.CreateMemory(ctx, input)
	if err != nil {
		if errors.Is(err, memory.ErrInvalidMemory) {
			writeFailure(ctx, w, err.Error())
			return
		}
		ctxlog.From(ctx).Error("failed to create memory", "error", err)
		writeFailure(ctx, w, "failed to save memory")
		return
	}

	writeSuccess(ctx, w, created)
}

// HandleImage streams a stored gallery image.
func (c *MemoriesController) HandleImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	key := chi.URLParam(r, "*")
	data, err := c.memories.GetImage(ctx, key)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	contentType := "application/octet-stream"
	switch path.Ext(key) {
	case ".png":
		contentType = "image/png"
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".gif":
		contentType = "image/gif"
	case ".webp":
		contentType = "image/webp"
	}
	w.Header().Set("Content-Type", contentType)
	if _, err := w.Write(data); err != nil {
		ctxlog.From(ctx).Warn("failed to write image response", "error", err)
	}
}
