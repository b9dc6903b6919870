package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rakatama/koperasi-admin/internal/infra/gateway/platform"
	"github.com/rakatama/koperasi-admin/internal/platform/resource"
	"github.com/rakatama/koperasi-admin/internal/transport/httpapi/middleware"
	"github.com/rakatama/koperasi-admin/pkg/logger"
)

// maxUploadBytes caps in-memory multipart parsing
const maxUploadBytes = 32 << 20

// ResourceHandler serves the generic CRUD endpoints for every registered
// master-data resource
type ResourceHandler struct {
	resources *resource.Controller
	logger    *logger.Logger
}

// NewResourceHandler creates a new resource handler
func NewResourceHandler(resources *resource.Controller, log *logger.Logger) *ResourceHandler {
	return &ResourceHandler{
		resources: resources,
		logger:    log.WithField("component", "resource_handler"),
	}
}

// List handles GET /resources/{resource}. Query parameters pass through to
// the platform unchanged.
func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetTokenFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	name := chi.URLParam(r, "resource")
	items, err := h.resources.List(r.Context(), token, name, r.URL.Query())
	if err != nil {
		h.respondControllerError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"data": items})
}

// Get handles GET /resources/{resource}/{id}
func (h *ResourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetTokenFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	name := chi.URLParam(r, "resource")
	id := chi.URLParam(r, "id")

	item, err := h.resources.Get(r.Context(), token, name, id)
	if err != nil {
		h.respondControllerError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"data": item})
}

// Create handles POST /resources/{resource}
func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "")
}

// Update handles PUT /resources/{resource}/{id}
func (h *ResourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, chi.URLParam(r, "id"))
}

// save dispatches on the request content type: JSON bodies go through the
// plain save path, multipart bodies through the upload path. The response is
// the refreshed list either way.
func (h *ResourceHandler) save(w http.ResponseWriter, r *http.Request, id string) {
	token, ok := middleware.GetTokenFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	name := chi.URLParam(r, "resource")

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var (
		items []json.RawMessage
		err   error
	)
	if strings.HasPrefix(mediaType, "multipart/") {
		items, err = h.saveMultipart(r, token, name, id)
	} else {
		var body json.RawMessage
		if decodeErr := json.NewDecoder(r.Body).Decode(&body); decodeErr != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		items, err = h.resources.Save(r.Context(), token, name, id, body)
	}
	if err != nil {
		h.respondControllerError(w, err)
		return
	}

	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	respondWithJSON(w, status, map[string]interface{}{"data": items})
}

func (h *ResourceHandler) saveMultipart(r *http.Request, token, name, id string) ([]json.RawMessage, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, err
	}

	fields := make(map[string]string)
	for key, values := range r.MultipartForm.Value {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}

	var uploads []platform.Upload
	for field, headers := range r.MultipartForm.File {
		for _, fh := range headers {
			file, err := fh.Open()
			if err != nil {
				return nil, err
			}
			defer file.Close()
			uploads = append(uploads, platform.Upload{
				Field:    field,
				FileName: fh.Filename,
				Reader:   file,
			})
		}
	}

	progress := func(sent, total int64) {
		h.logger.WithField("resource", name).Debug("upload progress",
			"sent", sent, "total", total)
	}
	return h.resources.SaveMultipart(r.Context(), token, name, id, fields, uploads, progress)
}

// Delete handles DELETE /resources/{resource}/{id}. The confirmation the
// panel's dialog used to provide arrives as ?confirm=true.
func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetTokenFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	name := chi.URLParam(r, "resource")
	id := chi.URLParam(r, "id")
	confirmed := r.URL.Query().Get("confirm") == "true"

	items, err := h.resources.Delete(r.Context(), token, name, id, confirmed)
	if err != nil {
		h.respondControllerError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"data": items})
}

func (h *ResourceHandler) respondControllerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, resource.ErrUnknownResource):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, resource.ErrNotConfirmed):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, resource.ErrNotMultipart):
		respondWithError(w, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, io.ErrUnexpectedEOF):
		respondWithError(w, http.StatusBadRequest, "invalid request body")
	default:
		respondUpstreamError(w, err)
	}
}
