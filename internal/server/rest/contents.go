package rest

import (
	"net/http"

	"github.com/dmitrijs2005/brainly/internal/server/auth"
	"github.com/dmitrijs2005/brainly/internal/server/services"
)

type createContentRequest struct {
	Title string   `json:"title"`
	Link  string   `json:"link"`
	Type  string   `json:"type"`
	Tags  []string `json:"tags"`
}

func (h *handler) createContent(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	var req createContentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	c, err := h.deps.Contents.Create(r.Context(), id.UserID, services.ContentInput{
		Title: req.Title,
		Link:  req.Link,
		Type:  req.Type,
		Tags:  req.Tags,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	c.OwnerUsername = id.Username

	writeSuccess(w, http.StatusCreated, "Content created successfully", toContentDTO(c))
}

func (h *handler) findContent(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	items, err := h.deps.Contents.Find(r.Context(), id.UserID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Content found", toContentDTOs(items))
}

func (h *handler) deleteContent(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	if err := h.deps.Contents.Delete(r.Context(), id.UserID, r.PathValue("id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Content deleted successfully", nil)
}

func (h *handler) exportContent(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	res, err := h.deps.Exports.Export(r.Context(), id.UserID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Content exported", map[string]any{
		"url":       res.URL,
		"key":       res.Key,
		"expiresAt": res.ExpiresAt,
	})
}
