package backend

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/gazette/core"
)

var articleListTmpl = tmpl(`<h1>{{ .Title }}</h1>

	{{ template "articleList" . }}`)

type articleListData struct {
	*Route
	Title    string
	Articles []core.DBArticle
}

func listArticles(w http.ResponseWriter, req *http.Request, r *Route, _ httprouter.Params) error {

	articles, err := r.db.ListArticles(r.User)
	if err != nil {
		return err
	}

	return articleListTmpl.Execute(w, &articleListData{
		Route:    r,
		Title:    "All articles",
		Articles: articles,
	})
}

func listArticlesByCategory(w http.ResponseWriter, req *http.Request, r *Route, categoryID int) error {

	category, err := r.db.GetCategory(categoryID)
	if err != nil {
		return core.ErrNotFound
	}

	articles, err := r.db.ListArticlesByCategory(r.User, categoryID)
	if err != nil {
		return err
	}

	return articleListTmpl.Execute(w, &articleListData{
		Route:    r,
		Title:    "Articles in category: " + category.Name(),
		Articles: articles,
	})
}
