package backend

import (
	"errors"
	"net/http"
	"strings"

	"github.com/wansing/gazette/core"
)

var errMissingName = errors.New("name is required")

var categoryCreateTmpl = tmpl(`<h1>New category</h1>

	{{ template "categoryForm" . }}`)

type categoryFormData struct {
	*Route
	Draft core.CategoryDraft
}

func readCategoryDraft(req *http.Request) core.CategoryDraft {
	return core.CategoryDraft{
		Name:     strings.TrimSpace(req.PostFormValue("name")),
		ImageURL: strings.TrimSpace(req.PostFormValue("image_url")),
	}
}

func createCategory(w http.ResponseWriter, req *http.Request, r *Route) error {

	if !core.HasPermission(r.User, core.CategoryCreate) {
		return core.ErrNotFound
	}

	var draft core.CategoryDraft

	if req.Method == http.MethodPost {
		draft = readCategoryDraft(req)
		if draft.Name == "" {
			r.Danger(errMissingName)
		} else if _, err := r.db.CreateCategory(r.User, draft); err == nil {
			r.SeeOther("/article/category")
			return nil
		} else {
			r.Danger(err)
		}
	}

	return categoryCreateTmpl.Execute(w, &categoryFormData{
		Route: r,
		Draft: draft,
	})
}
