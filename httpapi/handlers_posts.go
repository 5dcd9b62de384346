package httpapi

import (
	"log"
	"net/http"

	"github.com/muhammadali233755/blogging-app/blog/application"
	"github.com/muhammadali233755/blogging-app/blog/domain"
)

type createPostRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	CategoryID int64  `json:"category_id"`
}

func (a *API) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req createPostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request body")
		return
	}

	p, err := a.Posts.Create(r.Context(), id, application.CreatePostInput(req))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPostResponse(p, domain.PostStats{}))
}

func (a *API) handleGetPost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "post_id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	p, stats, err := a.Posts.Get(r.Context(), postID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	// Reads count as views; a failed insert must not fail the read.
	if err := a.Views.Record(r.Context(), identityFrom(r.Context()), postID, clientIP(r, a.TrustXFF)); err != nil {
		log.Printf("record view post=%d: %v", postID, err)
	} else {
		stats.Views++
	}

	writeJSON(w, http.StatusOK, toPostResponse(p, stats))
}

func (a *API) handleListPosts(w http.ResponseWriter, r *http.Request) {
	page := pageFrom(r)
	posts, total, err := a.Posts.List(r.Context(), page)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	items := make([]postResponse, 0, len(posts))
	for i := range posts {
		stats, err := a.Posts.StatsOf(r.Context(), posts[i].ID)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		items = append(items, toPostResponse(&posts[i], stats))
	}
	writeJSON(w, http.StatusOK, paged(items, total, page))
}

type updatePostRequest struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	CategoryID *int64  `json:"category_id"`
}

func (a *API) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	postID, err := pathID(r, "post_id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var req updatePostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request body")
		return
	}

	p, err := a.Posts.Update(r.Context(), id, postID, application.UpdatePostInput(req))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	stats, err := a.Posts.StatsOf(r.Context(), p.ID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPostResponse(p, stats))
}

func (a *API) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	postID, err := pathID(r, "post_id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if err := a.Posts.Delete(r.Context(), id, postID); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handlePostViews(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "post_id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if _, _, err := a.Posts.Get(r.Context(), postID); err != nil {
		writeDomainError(w, r, err)
		return
	}

	n, err := a.Views.Count(r.Context(), postID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, postViewsResponse{PostID: postID, ViewCount: n})
}
