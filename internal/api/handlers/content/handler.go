package content

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Stash/internal/api/handlers"
	"Stash/internal/api/middleware"
	"Stash/internal/core/content"
)

// Handler serves saved-item endpoints
type Handler struct {
	service content.Service
}

// NewHandler creates a new content handler
func NewHandler(service content.Service) *Handler {
	return &Handler{service: service}
}

// HandleSaveLink resolves a URL through the preview pipeline and saves it
// POST /content/save
func (h *Handler) HandleSaveLink(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.WriteError(w, http.StatusUnauthorized, "Unauthorized", "Missing user identity")
		return
	}

	var req content.SaveLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid JSON body")
		return
	}

	item, err := h.service.SaveLink(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, item)
}

// HandleCreate saves an item from caller-supplied fields
// POST /content
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.WriteError(w, http.StatusUnauthorized, "Unauthorized", "Missing user identity")
		return
	}

	var req content.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid JSON body")
		return
	}

	item, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, item)
}

// HandleList returns one page of the caller's items
// GET /content?cursor={cursor}&limit={n}&search={q}&folderId={id}
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.WriteError(w, http.StatusUnauthorized, "Unauthorized", "Missing user identity")
		return
	}

	filter := content.Filter{
		Cursor:   r.URL.Query().Get("cursor"),
		Search:   r.URL.Query().Get("search"),
		FolderID: r.URL.Query().Get("folderId"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "limit must be a positive integer")
			return
		}
		filter.Limit = limit
	}

	page, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, page)
}

// HandleGet returns a single item
// GET /content/{contentID}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.WriteError(w, http.StatusUnauthorized, "Unauthorized", "Missing user identity")
		return
	}

	item, err := h.service.Get(r.Context(), userID, chi.URLParam(r, "contentID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, item)
}

// HandleUpdate applies a partial update
// PATCH /content/{contentID}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.WriteError(w, http.StatusUnauthorized, "Unauthorized", "Missing user identity")
		return
	}

	var req content.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid JSON body")
		return
	}

	item, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "contentID"), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, item)
}

// HandleDelete removes an item
// DELETE /content/{contentID}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.WriteError(w, http.StatusUnauthorized, "Unauthorized", "Missing user identity")
		return
	}

	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "contentID")); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleAddToFolders attaches the item to additional folders
// POST /content/{contentID}/folders
func (h *Handler) HandleAddToFolders(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.WriteError(w, http.StatusUnauthorized, "Unauthorized", "Missing user identity")
		return
	}

	var req struct {
		FolderIDs []string `json:"folderIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid JSON body")
		return
	}
	if len(req.FolderIDs) == 0 {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "folderIds is required")
		return
	}

	item, err := h.service.AddToFolders(r.Context(), userID, chi.URLParam(r, "contentID"), req.FolderIDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, item)
}

// HandleSetSimilar replaces the item's similar-content suggestions
// PUT /content/{contentID}/similar
func (h *Handler) HandleSetSimilar(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.WriteError(w, http.StatusUnauthorized, "Unauthorized", "Missing user identity")
		return
	}

	var req struct {
		Items []content.SimilarContent `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid JSON body")
		return
	}

	items, err := h.service.SetSimilar(r.Context(), userID, chi.URLParam(r, "contentID"), req.Items)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, items)
}

// HandleGetSimilar returns the item's similar-content suggestions
// GET /content/{contentID}/similar
func (h *Handler) HandleGetSimilar(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.WriteError(w, http.StatusUnauthorized, "Unauthorized", "Missing user identity")
		return
	}

	items, err := h.service.GetSimilar(r.Context(), userID, chi.URLParam(r, "contentID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, items)
}
