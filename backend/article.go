package backend

import (
	"net/http"

	"github.com/wansing/gazette/core"
)

var articleTmpl = tmpl(`<article>

	<h1>{{ .Article.Title }}</h1>

	<p class="text-muted">
		{{ .CategoryName .Article.CategoryID }}
		&middot; {{ .FormatDateTime .Article.CreatedAt }}
		{{ if .Article.LastUpdatedAt }}
			&middot; updated {{ Ago .Article.LastUpdatedAt }}
		{{ end }}
		{{ if not .Article.IsPublic }}
			&middot; <span class="badge badge-secondary">private</span>
		{{ end }}
	</p>

	{{ with .Article.ImageURL }}
		<img class="img-fluid mb-3" src="{{ . }}" alt="">
	{{ end }}

	{{ Markdown .Article.Content }}

	{{ if or .CanEdit .CanDelete }}
		<p class="mt-3">
			{{ if .CanEdit }}
				<a class="btn btn-secondary" href="article/edit/{{ .Article.ID }}">Edit</a>
			{{ end }}
			{{ if .CanDelete }}
				<a class="btn btn-danger" href="article/delete/{{ .Article.ID }}">Delete</a>
			{{ end }}
		</p>
	{{ end }}

</article>`)

type articleData struct {
	*Route
	Article core.DBArticle
}

func (data *articleData) CanEdit() bool {
	return core.CanEditArticle(data.User, data.Article)
}

func (data *articleData) CanDelete() bool {
	return core.CanDeleteArticle(data.User, data.Article)
}

func viewArticle(w http.ResponseWriter, req *http.Request, r *Route, id int) error {

	article, err := r.db.GetArticleForViewer(r.User, id)
	if err != nil {
		return err
	}

	return articleTmpl.Execute(w, &articleData{
		Route:   r,
		Article: article,
	})
}
