package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/brainly/internal/common"
	"github.com/dmitrijs2005/brainly/internal/server/auth"
)

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	in, err := bindCredentials(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	u, err := h.deps.Users.Register(r.Context(), in.Username, in.Password)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "User registered successfully", map[string]any{"user": toUserDTO(u)})
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	in, err := bindCredentials(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	res, err := h.deps.Users.Login(r.Context(), in.Username, in.Password)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.setTokenCookies(w, res.Tokens.AccessToken, res.Tokens.RefreshToken)
	writeSuccess(w, http.StatusOK, "User logged in successfully!", map[string]any{
		"user":         toUserDTO(res.User),
		"accessToken":  res.Tokens.AccessToken,
		"refreshToken": res.Tokens.RefreshToken,
	})
}

func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, common.Unauthenticated(msgNoToken, nil))
		return
	}

	if err := h.deps.Users.Logout(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.clearTokenCookies(w)
	writeSuccess(w, http.StatusOK, "User logged out", map[string]any{})
}

func (h *handler) me(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, common.Unauthenticated(msgNoToken, nil))
		return
	}

	u, err := h.deps.Users.GetPublicByID(r.Context(), id.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			err = common.Unauthenticated(msgUserNotFound, err)
		}
		writeError(w, r, h.logger, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Current user", map[string]any{"user": toUserDTO(u)})
}
