package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/kalshme/kalshme/internal/domain"
)

// imageKeyPattern accepts object keys the slideshow can display.
var imageKeyPattern = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp)$`)

// BlobStore defines the blob-store methods that the asset handler requires.
type BlobStore interface {
	List(ctx context.Context, prefix string) ([]domain.BlobInfo, error)
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	Exists(ctx context.Context, path string) (bool, error)
}

// AssetHandler serves the dashboard's static assets (slideshow images,
// background music) from the object store: listings under the configured
// prefixes, and the object bytes themselves.
type AssetHandler struct {
	blobs        BlobStore
	imagesPrefix string
	musicPrefix  string
	logger       *slog.Logger
}

// NewAssetHandler creates an AssetHandler serving the given prefixes.
func NewAssetHandler(blobs BlobStore, imagesPrefix, musicPrefix string, logger *slog.Logger) *AssetHandler {
	return &AssetHandler{
		blobs:        blobs,
		imagesPrefix: imagesPrefix,
		musicPrefix:  musicPrefix,
		logger:       logHandler(logger, "assets"),
	}
}

// listAssetsResponse wraps an asset listing.
type listAssetsResponse struct {
	Assets []domain.BlobInfo `json:"assets"`
}

// ListImages returns the slideshow image objects. Non-image objects under
// the prefix (readmes, thumbnails the slideshow cannot render) are filtered
// out by extension.
// GET /api/assets/images
func (h *AssetHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	assets, err := h.blobs.List(r.Context(), h.imagesPrefix)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "handler: asset listing failed",
			slog.String("prefix", h.imagesPrefix),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to list assets")
		return
	}

	images := make([]domain.BlobInfo, 0, len(assets))
	for _, a := range assets {
		if imageKeyPattern.MatchString(a.Path) {
			images = append(images, a)
		}
	}

	writeJSON(w, http.StatusOK, listAssetsResponse{Assets: images})
}

// ListMusic returns the background music objects.
// GET /api/assets/music
func (h *AssetHandler) ListMusic(w http.ResponseWriter, r *http.Request) {
	assets, err := h.blobs.List(r.Context(), h.musicPrefix)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "handler: asset listing failed",
			slog.String("prefix", h.musicPrefix),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to list assets")
		return
	}

	if assets == nil {
		assets = []domain.BlobInfo{}
	}

	writeJSON(w, http.StatusOK, listAssetsResponse{Assets: assets})
}

// GetAsset streams one object's bytes so the dashboard can render the paths
// returned by the listings. Only keys under the configured prefixes are
// served; anything else in the bucket 404s. HEAD requests check existence
// without transferring the body.
// GET|HEAD /api/assets/{path...}
func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("path")
	if !h.servableKey(key) {
		writeError(w, http.StatusNotFound, "asset not found")
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if r.Method == http.MethodHead {
		ok, err := h.blobs.Exists(r.Context(), key)
		if err != nil {
			h.logger.ErrorContext(r.Context(), "handler: asset head failed",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
			writeError(w, http.StatusInternalServerError, "failed to fetch asset")
			return
		}
		if !ok {
			writeError(w, http.StatusNotFound, "asset not found")
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		return
	}

	body, err := h.blobs.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "asset not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "handler: asset fetch failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to fetch asset")
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	if _, err := io.Copy(w, body); err != nil {
		// Headers are gone; all we can do is log the broken transfer.
		h.logger.WarnContext(r.Context(), "handler: asset stream interrupted",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

// servableKey restricts asset serving to the configured prefixes so the
// route cannot be used to read arbitrary bucket contents.
func (h *AssetHandler) servableKey(key string) bool {
	if key == "" || strings.Contains(key, "..") {
		return false
	}
	return (h.imagesPrefix != "" && strings.HasPrefix(key, h.imagesPrefix)) ||
		(h.musicPrefix != "" && strings.HasPrefix(key, h.musicPrefix))
}
