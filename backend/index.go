package backend

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// number of articles on the home feed
const feedLimit = 10

func index(w http.ResponseWriter, req *http.Request, r *Route, _ httprouter.Params) error {

	articles, err := r.db.LastPublicArticles(feedLimit)
	if err != nil {
		return err
	}

	return articleListTmpl.Execute(w, &articleListData{
		Route:    r,
		Title:    "Latest articles",
		Articles: articles,
	})
}
