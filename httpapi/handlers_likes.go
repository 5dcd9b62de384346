package httpapi

import "net/http"

func (a *API) handleLikePost(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	postID, err := pathID(r, "post_id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	l, err := a.Likes.Like(r.Context(), id, postID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toLikeResponse(*l))
}

func (a *API) handleUnlikePost(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	postID, err := pathID(r, "post_id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if err := a.Likes.Unlike(r.Context(), id, postID); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handlePostLikes(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "post_id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	page := pageFrom(r)
	likes, total, err := a.Likes.ByPost(r.Context(), postID, page)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, postLikesResponse{
		PostID:    postID,
		LikeCount: total,
		Likes:     mapSlice(likes, toLikeResponse),
	})
}

func (a *API) handleUserLikes(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	page := pageFrom(r)
	likes, total, err := a.Likes.ByUser(r.Context(), userID, page)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, paged(mapSlice(likes, toLikeResponse), total, page))
}
