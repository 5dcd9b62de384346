package httpapi

import (
	"net/http"
	"strings"

	"github.com/muhammadali233755/blogging-app/blog/application"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request body")
		return
	}

	u, err := a.Auth.Register(r.Context(), application.RegisterInput(req))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(u))
}

// handleToken implements the OAuth2 password flow: form-encoded
// username/password plus an optional space-separated scope list.
func (a *API) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed form body")
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}
	scopes := strings.Fields(r.PostFormValue("scope"))

	pair, err := a.Auth.Login(r.Context(), username, password, scopes)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse(pair))
}

func (a *API) handleRefresh(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeAuthError(w, "Refresh token required")
		return
	}

	pair, err := a.Auth.Refresh(r.Context(), token)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse(pair))
}
