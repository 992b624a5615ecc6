package rest

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/brainly/internal/common"
)

func (h *handler) setSessionCookie(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
	})
}

func (h *handler) clearSessionCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func (h *handler) setTokenCookies(w http.ResponseWriter, access, refresh string) {
	h.setSessionCookie(w, common.AccessTokenCookieName, access, h.opts.AccessTokenExpiry)
	h.setSessionCookie(w, common.RefreshTokenCookieName, refresh, h.opts.RefreshTokenExpiry)
}

func (h *handler) clearTokenCookies(w http.ResponseWriter) {
	h.clearSessionCookie(w, common.AccessTokenCookieName)
	h.clearSessionCookie(w, common.RefreshTokenCookieName)
}
