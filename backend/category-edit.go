package backend

import (
	"net/http"

	"github.com/wansing/gazette/core"
)

var categoryEditTmpl = tmpl(`<h1>Edit category</h1>

	{{ template "categoryForm" . }}`)

func editCategory(w http.ResponseWriter, req *http.Request, r *Route, id int) error {

	category, err := r.db.GetCategory(id)
	if err != nil {
		return core.ErrNotFound
	}

	if !core.HasPermission(r.User, core.CategoryEdit) {
		return core.ErrNotFound
	}

	var draft = core.CategoryDraft{
		Name:     category.Name(),
		ImageURL: category.ImageURL(),
	}

	if req.Method == http.MethodPost {
		draft = readCategoryDraft(req)
		if draft.Name == "" {
			r.Danger(errMissingName)
		} else if err := r.db.EditCategory(r.User, category, draft); err == nil {
			r.SeeOther("/article/category")
			return nil
		} else {
			r.Danger(err)
		}
	}

	return categoryEditTmpl.Execute(w, &categoryFormData{
		Route: r,
		Draft: draft,
	})
}
