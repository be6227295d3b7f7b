package backend

import (
	"errors"
	"net/http"

	"github.com/wansing/gazette/core"
)

func deleteCategory(w http.ResponseWriter, req *http.Request, r *Route, id int) error {

	category, err := r.db.GetCategory(id)
	if err != nil {
		return core.ErrNotFound
	}

	if err := r.db.DeleteCategory(r.User, category); err != nil {
		if errors.Is(err, core.ErrCategoryInUse) {
			r.Danger(err)
			r.SeeOther("/article/category")
			return nil
		}
		return err
	}

	r.Success("The category %s has been deleted", category.Name())
	r.SeeOther("/article/category")
	return nil
}
