package httpapi

import (
	"net/http"

	"github.com/muhammadali233755/blogging-app/blog/application"
	"github.com/muhammadali233755/blogging-app/blog/domain"
)

type categoryRequest struct {
	Name string `json:"name"`
}

func (a *API) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request body")
		return
	}

	c, err := a.Categories.Create(r.Context(), id, application.CategoryInput(req))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCategoryResponse(*c))
}

func (a *API) handleListCategories(w http.ResponseWriter, r *http.Request) {
	page := pageFrom(r)
	categories, total, err := a.Categories.List(r.Context(), page)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, paged(mapSlice(categories, toCategoryResponse), total, page))
}

func (a *API) handleCategoryPosts(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "category_id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	c, posts, err := a.Categories.PostsOf(r.Context(), categoryID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	resp := categoryPostsResponse{ID: c.ID, Name: c.Name, Posts: []postResponse{}}
	for i := range posts {
		stats, err := a.Posts.StatsOf(r.Context(), posts[i].ID)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		resp.Posts = append(resp.Posts, toPostResponse(&posts[i], stats))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	categoryID, err := pathID(r, "category_id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var req struct {
		Name *string `json:"name"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request body")
		return
	}

	var c *domain.Category
	if req.Name == nil {
		// Nothing to change; still requires the category to exist and
		// the caller to be an admin.
		if !id.IsAdmin() {
			writeDomainError(w, r, domain.ErrAdminRequired)
			return
		}
		c, err = a.Categories.ByID(r.Context(), categoryID)
	} else {
		c, err = a.Categories.Rename(r.Context(), id, categoryID, application.CategoryInput{Name: *req.Name})
	}
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponse(*c))
}

func (a *API) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	categoryID, err := pathID(r, "category_id")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if err := a.Categories.Delete(r.Context(), id, categoryID); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
