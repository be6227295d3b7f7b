package backend

import (
	"net/http"

	"github.com/wansing/gazette/core"
)

var categoriesTmpl = tmpl(`<h1>Categories</h1>

	<ul class="list-group">
		{{ range .Categories }}
			<li class="list-group-item">
				<a href="article/category/{{ .ID }}">{{ .Name }}</a>
				{{ if $.CanEditCategory }}
					<a class="badge badge-secondary" href="article/category/edit/{{ .ID }}">edit</a>
				{{ end }}
				{{ if $.CanDeleteCategory }}
					<a class="badge badge-danger" href="article/category/delete/{{ .ID }}">delete</a>
				{{ end }}
			</li>
		{{ else }}
			<li class="list-group-item">No categories yet.</li>
		{{ end }}
	</ul>

	{{ if .CanCreateCategory }}
		<p class="mt-3">
			<a class="btn btn-primary" href="article/category/new">New category</a>
		</p>
	{{ end }}`)

type categoriesData struct {
	*Route
	Categories []core.DBCategory
}

func listCategories(w http.ResponseWriter, req *http.Request, r *Route) error {

	categories, err := r.db.GetAllCategories()
	if err != nil {
		return err
	}

	return categoriesTmpl.Execute(w, &categoriesData{
		Route:      r,
		Categories: categories,
	})
}
