package backend

import (
	"net/http"

	"github.com/wansing/gazette/core"
)

var searchTmpl = tmpl(`<h1>Search articles</h1>

	<form method="get" class="form-inline mb-3">
		<input class="form-control mr-sm-2" type="search" name="q" value="{{ .Query }}" autofocus>
		<button type="submit" class="btn btn-primary">Search</button>
	</form>

	{{ template "articleList" . }}`)

type searchData struct {
	*Route
	Query    string
	Articles []core.DBArticle
}

func searchArticles(w http.ResponseWriter, req *http.Request, r *Route) error {

	var query = req.URL.Query().Get("q")

	articles, err := r.db.SearchArticles(r.User, query)
	if err != nil {
		return err
	}

	return searchTmpl.Execute(w, &searchData{
		Route:    r,
		Query:    query,
		Articles: articles,
	})
}
