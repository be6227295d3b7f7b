package backend

import (
	"net/http"

	"github.com/wansing/gazette/core"
)

func deleteArticle(w http.ResponseWriter, req *http.Request, r *Route, id int) error {

	article, err := r.db.GetArticle(id)
	if err != nil {
		return core.ErrNotFound
	}

	if err := r.db.DeleteArticle(r.User, article); err != nil {
		return err
	}

	r.Success("The article has been deleted")
	r.SeeOther("/article")
	return nil
}
