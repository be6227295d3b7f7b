package backend

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/wansing/gazette/core"
)

var errMissingFields = errors.New("title and content are required")

var createTmpl = tmpl(`<h1>New article</h1>

	{{ template "articleForm" . }}`)

type articleFormData struct {
	*Route
	Draft      core.ArticleDraft
	Categories []core.DBCategory
}

func readArticleDraft(req *http.Request) core.ArticleDraft {
	categoryID, _ := strconv.Atoi(req.PostFormValue("category"))
	return core.ArticleDraft{
		Title:       strings.TrimSpace(req.PostFormValue("title")),
		CategoryID:  categoryID,
		Description: strings.TrimSpace(req.PostFormValue("description")),
		Content:     req.PostFormValue("content"),
		ImageURL:    strings.TrimSpace(req.PostFormValue("image_url")),
		IsPublic:    req.PostFormValue("is_public") != "",
	}
}

func createArticle(w http.ResponseWriter, req *http.Request, r *Route) error {

	if !core.CanCreateArticle(r.User) {
		return core.ErrNotFound
	}

	var draft core.ArticleDraft

	if req.Method == http.MethodPost {
		draft = readArticleDraft(req)
		if draft.Title == "" || draft.Content == "" {
			r.Danger(errMissingFields)
		} else if article, err := r.db.CreateArticle(r.User, draft); err == nil {
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

	return createTmpl.Execute(w, &articleFormData{
		Route:      r,
		Draft:      draft,
		Categories: categories,
	})
}
