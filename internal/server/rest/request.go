package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/brainly/internal/common"
)

func bodyTooLarge() *common.Error {
	return &common.Error{
		Kind:    common.KindValidation,
		Status:  http.StatusRequestEntityTooLarge,
		Message: "Request body too large",
	}
}

// decodeJSON reads a JSON body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return bodyTooLarge()
	}
	return common.Validation("Invalid JSON body")
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// bindCredentials accepts either a JSON or a urlencoded form body.
func bindCredentials(r *http.Request) (credentials, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				return credentials{}, bodyTooLarge()
			}
			return credentials{}, common.Validation("Invalid form body")
		}
		return credentials{Username: r.PostForm.Get("username"), Password: r.PostForm.Get("password")}, nil
	}

	var c credentials
	err := decodeJSON(r, &c)
	return c, err
}

// truthy follows the loose boolean rules the web client relies on for
// the share flag.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}
