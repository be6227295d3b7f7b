package backend

import (
	"net/http"

	"github.com/wansing/gazette/core"
)

var editTmpl = tmpl(`<h1>Edit article</h1>

	{{ template "articleForm" . }}`)

func editArticle(w http.ResponseWriter, req *http.Request, r *Route, id int) error {

	article, err := r.db.GetArticle(id)
	if err != nil {
		return core.ErrNotFound
	}

	// authorship only, a missing article and a foreign article look the same
	if !core.CanEditArticle(r.User, article) {
		return core.ErrNotFound
	}

	var draft = core.ArticleDraft{
		Title:       article.Title(),
		CategoryID:  article.CategoryID(),
		Description: article.Description(),
		Content:     article.Content(),
		ImageURL:    article.ImageURL(),
		IsPublic:    article.IsPublic(),
	}

	if req.Method == http.MethodPost {
		draft = readArticleDraft(req)
		if draft.Title == "" || draft.Content == "" {
			r.Danger(errMissingFields)
		} else if err := r.db.EditArticle(r.User, article, draft); err == nil {
			r.SeeOther("/article/%d", article.ID())
			return nil
		} else {
			r.Danger(err)
			// keep user input, don't redirect
		}
	}

	categories, err := r.db.GetAllCategories()
	if err != nil {
		return err
	}

	return editTmpl.Execute(w, &articleFormData{
		Route:      r,
		Draft:      draft,
		Categories: categories,
	})
}
