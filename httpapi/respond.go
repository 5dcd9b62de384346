package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/muhammadali233755/blogging-app/blog/domain"
)

// errorBody is the error envelope every failure uses.
type errorBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorBody{Detail: detail})
}

func writeAuthError(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, detail)
}

// statusByErr maps the domain sentinels to status codes and client-facing
// messages.
var statusByErr = []struct {
	err    error
	status int
	detail string
}{
	{domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{domain.ErrUsernameTaken, http.StatusBadRequest, "Username already taken"},
	{domain.ErrPostNotFound, http.StatusNotFound, "Post not found"},
	{domain.ErrDuplicateTitle, http.StatusBadRequest, "Post title already exists"},
	{domain.ErrCategoryNotFound, http.StatusNotFound, "Category not found"},
	{domain.ErrCategoryExists, http.StatusBadRequest, "Category already exists"},
	{domain.ErrCommentNotFound, http.StatusNotFound, "Comment not found"},
	{domain.ErrLikeNotFound, http.StatusNotFound, "Like not found"},
	{domain.ErrAlreadyLiked, http.StatusBadRequest, "Post already liked"},
	{domain.ErrForbidden, http.StatusForbidden, "Insufficient permissions"},
	{domain.ErrAdminRequired, http.StatusForbidden, "Admin privileges required"},
}

// writeDomainError translates a service error. Anything unknown is a 500
// with a generic body; the real error only goes to the log.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusUnprocessableEntity, verr.Error())
		return
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		writeAuthError(w, "Invalid credentials")
		return
	}
	if errors.Is(err, domain.ErrInvalidToken) {
		writeAuthError(w, "Could not validate credentials")
		return
	}
	for _, m := range statusByErr {
		if errors.Is(err, m.err) {
			writeError(w, m.status, m.detail)
			return
		}
	}

	log.Printf("internal error: %s %s: %v", r.Method, r.URL.Path, err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
