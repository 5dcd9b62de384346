package httpapi

import (
	"net/http"

	"github.com/muhammadali233755/blogging-app/blog/application"
)

type createCommentRequest struct {
	PostID  int64  `json:"post_id"`
	Content string `json:"content"`
}

func (a *API) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req createCommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request body")
		return
	}

	c, err := a.Comments.Create(r.Context(), id, application.CreateCommentInput(req))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCommentResponse(*c))
}

func (a *API) handlePostComments(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "post_id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	page := pageFrom(r)
	comments, total, err := a.Comments.ByPost(r.Context(), postID, page)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, paged(mapSlice(comments, toCommentResponse), total, page))
}

func (a *API) handleUserComments(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	page := pageFrom(r)
	comments, total, err := a.Comments.ByUser(r.Context(), userID, page)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, paged(mapSlice(comments, toCommentResponse), total, page))
}

type updateCommentRequest struct {
	Content string `json:"content"`
}

func (a *API) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	commentID, err := pathID(r, "comment_id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var req updateCommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request body")
		return
	}

	c, err := a.Comments.Update(r.Context(), id, commentID, req.Content)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCommentResponse(*c))
}

func (a *API) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	commentID, err := pathID(r, "comment_id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if err := a.Comments.Delete(r.Context(), id, commentID); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
