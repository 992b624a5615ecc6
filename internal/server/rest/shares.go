package rest

import (
	"net/http"

	"github.com/dmitrijs2005/brainly/internal/server/auth"
)

type shareRequest struct {
	Share any `json:"share"`
}

// toggleShareLink reads the share flag from the JSON body on POST and from
// the query string on GET. Both go through truthy, so any non-empty query
// value enables the link.
func (h *handler) toggleShareLink(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	var share bool
	if r.Method == http.MethodGet {
		share = truthy(r.URL.Query().Get("share"))
	} else {
		var req shareRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		share = truthy(req.Share)
	}

	hash, err := h.deps.Shares.Toggle(r.Context(), id.UserID, share)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if !share {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Removed link"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"hash": hash})
}

func (h *handler) sharedContent(w http.ResponseWriter, r *http.Request) {
	brain, err := h.deps.Shares.Resolve(r.Context(), r.PathValue("shareLink"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"username": brain.Username,
		"content":  toContentDTOs(brain.Contents),
	})
}
