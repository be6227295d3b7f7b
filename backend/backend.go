// Package backend contains the HTTP controllers.
package backend

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/gazette/core"
	"github.com/wansing/gazette/util"
	"gitlab.com/golang-commonmark/markdown"
)

// we need the CoreDB in the backend
type Route struct {
	*core.Request
	Prefix string // with trailing slash
	db     *core.CoreDB
}

func (r *Route) CanCreateArticle() bool {
	return core.CanCreateArticle(r.User)
}

func (r *Route) CanCreateCategory() bool {
	return core.HasPermission(r.User, core.CategoryCreate)
}

func (r *Route) CanEditCategory() bool {
	return core.HasPermission(r.User, core.CategoryEdit)
}

func (r *Route) CanDeleteCategory() bool {
	return core.HasPermission(r.User, core.CategoryDelete)
}

// CategoryName resolves a category id for templates. Unknown ids yield an empty string.
func (r *Route) CategoryName(id int) string {
	if c, err := r.db.GetCategory(id); err == nil {
		return c.Name()
	}
	return ""
}

func middleware(db *core.CoreDB, prefix string, f func(http.ResponseWriter, *http.Request, *Route, httprouter.Params) error) httprouter.Handle {
	return func(w http.ResponseWriter, req *http.Request, params httprouter.Params) {

		var r = &Route{
			Prefix:  prefix + "/",
			Request: db.NewRequest(w, req),
			db:      db,
		}
		defer r.Cleanup()

		err := f(w, req, r, params)
		switch {
		case err == nil:
			// ok
		case errors.Is(err, core.ErrNotFound):
			w.WriteHeader(http.StatusNotFound)
			notFoundTmpl.Execute(w, r)
		case errors.Is(err, core.ErrForbidden):
			w.WriteHeader(http.StatusForbidden)
			forbiddenTmpl.Execute(w, r)
		default:
			// probably no template has been executed, so execute error template
			errorTmpl.Execute(w, struct {
				*Route
				Err error
			}{
				Route: r,
				Err:   err,
			})
		}
	}
}

// NewRouter returns the router for the whole site.
func NewRouter(db *core.CoreDB, prefix string) http.Handler {

	var router = httprouter.New()

	var GETAndPOST = func(path string, handle httprouter.Handle) {
		router.GET(path, handle)
		router.POST(path, handle)
	}

	router.GET("/", middleware(db, prefix, index))
	GETAndPOST("/login", middleware(db, prefix, login))
	router.GET("/logout", middleware(db, prefix, logout))
	router.GET("/article", middleware(db, prefix, listArticles))

	// httprouter can't mix static and parameter segments at the same position,
	// so everything below /article/ is dispatched on the literal segment values.
	GETAndPOST("/article/:a", middleware(db, prefix, dispatchOne))
	GETAndPOST("/article/:a/:b", middleware(db, prefix, dispatchTwo))
	GETAndPOST("/article/:a/:b/:c", middleware(db, prefix, dispatchThree))

	return router
}

// /article/{new|search|category|id}
func dispatchOne(w http.ResponseWriter, req *http.Request, r *Route, params httprouter.Params) error {
	switch a := params.ByName("a"); a {
	case "new":
		return createArticle(w, req, r)
	case "search":
		return searchArticles(w, req, r)
	case "category":
		return listCategories(w, req, r)
	default:
		id, err := strconv.Atoi(a)
		if err != nil {
			return core.ErrNotFound
		}
		return viewArticle(w, req, r, id)
	}
}

// /article/{edit|delete}/{id}, /article/category/{new|id}
func dispatchTwo(w http.ResponseWriter, req *http.Request, r *Route, params httprouter.Params) error {
	var b = params.ByName("b")
	switch params.ByName("a") {
	case "edit":
		if id, err := strconv.Atoi(b); err == nil {
			return editArticle(w, req, r, id)
		}
	case "delete":
		if id, err := strconv.Atoi(b); err == nil {
			return deleteArticle(w, req, r, id)
		}
	case "category":
		if b == "new" {
			return createCategory(w, req, r)
		}
		if id, err := strconv.Atoi(b); err == nil {
			return listArticlesByCategory(w, req, r, id)
		}
	}
	return core.ErrNotFound
}

// /article/category/{edit|delete}/{id}
func dispatchThree(w http.ResponseWriter, req *http.Request, r *Route, params httprouter.Params) error {
	if params.ByName("a") != "category" {
		return core.ErrNotFound
	}
	id, err := strconv.Atoi(params.ByName("c"))
	if err != nil {
		return core.ErrNotFound
	}
	switch params.ByName("b") {
	case "edit":
		return editCategory(w, req, r, id)
	case "delete":
		return deleteCategory(w, req, r, id)
	}
	return core.ErrNotFound
}

var markdownParser = markdown.New(markdown.HTML(true), markdown.Linkify(true), markdown.Typographer(true), markdown.MaxNesting(10))

// Markdown renders CommonMark to HTML.
func Markdown(content string) template.HTML {
	return template.HTML(markdownParser.RenderToString([]byte(content)))
}

// Teaser returns the article's description. If there is none, it makes a
// plain-text excerpt of the content, at most as long as the description
// column.
func Teaser(a core.DBArticle) string {
	if d := a.Description(); d != "" {
		return d
	}
	return util.Excerpt(string(Markdown(a.Content())), 160)
}

func tmpl(text string) *template.Template {
	t := template.Must(baseTmpl.Clone())
	t = template.Must(t.Parse(`{{ define "content" }}` + text + `{{ end }}`))
	return t
}

var baseTmpl = template.Must(template.New("base").Funcs(template.FuncMap{
	"Ago":      util.Ago,
	"Markdown": Markdown,
	"Teaser":   Teaser,
}).Parse(`
<!DOCTYPE html>
<html>
	<head>
		<base href="{{ .Prefix }}">
		<link rel="stylesheet" type="text/css" href="static/bootstrap-4.4.1.min.css">
		<meta charset="utf-8">
		<meta name="viewport" content="width=device-width, initial-scale=1, shrink-to-fit=no">
		<title>Gazette</title>

		<style>

			h1 {
				font-size: 1.5rem !important;
				margin: 1rem 0 0.7rem !important;
			}

			h2 {
				font-size: 1.3rem !important;
				margin: 0.2rem 0 0.5rem !important;
			}

			textarea {
				tab-size: 4;
				-moz-tab-size: 4;
			}

		</style>
	</head>
	<body>

		<nav class="navbar navbar-expand-md bg-light">
			<a class="navbar-brand" href=".">Gazette</a>
			<ul class="navbar-nav">
				<li class="nav-item">
					<a class="nav-link" href="article">Articles</a>
				</li>
				<li class="nav-item">
					<a class="nav-link" href="article/category">Categories</a>
				</li>
				{{ if .CanCreateArticle }}
					<li class="nav-item">
						<a class="nav-link" href="article/new">New article</a>
					</li>
				{{ end }}
				{{ if .LoggedIn }}
					<li class="nav-item">
						<span class="nav-link text-muted">{{ .User.Email }}</span>
					</li>
					<li class="nav-item">
						<a class="nav-link" href="logout">Logout</a>
					</li>
				{{ else }}
					<li class="nav-item">
						<a class="nav-link" href="login">Login</a>
					</li>
				{{ end }}
			</ul>
			<form class="form-inline ml-auto" action="article/search" method="get">
				<input class="form-control" type="search" name="q" placeholder="Search">
			</form>
		</nav>

		<div class="container pt-3">
			{{ .RenderNotifications }}
			{{ template "content" . }}
		</div>
	</body>
</html>

{{ define "articleList" }}
	{{ range .Articles }}
		<div class="card mb-3">
			<div class="card-body">
				<h2 class="card-title">
					<a href="article/{{ .ID }}">{{ .Title }}</a>
					{{ if not .IsPublic }}<span class="badge badge-secondary">private</span>{{ end }}
				</h2>
				<h6 class="card-subtitle mb-2 text-muted">{{ $.CategoryName .CategoryID }} &middot; {{ Ago .CreatedAt }}</h6>
				<p class="card-text">{{ Teaser . }}</p>
			</div>
		</div>
	{{ else }}
		<p>No articles found.</p>
	{{ end }}
{{ end }}

{{ define "articleForm" }}
	<form method="post">
		<div class="form-group">
			<label>Title</label>
			<input class="form-control" name="title" value="{{ .Draft.Title }}" required>
		</div>
		<div class="form-group">
			<label>Category</label>
			<select class="form-control" name="category">
				{{ $selected := .Draft.CategoryID }}
				{{ range .Categories }}
					<option value="{{ .ID }}"{{ if eq .ID $selected }} selected{{ end }}>{{ .Name }}</option>
				{{ end }}
			</select>
		</div>
		<div class="form-group">
			<label>Description</label>
			<input class="form-control" name="description" maxlength="160" value="{{ .Draft.Description }}">
		</div>
		<div class="form-group">
			<label>Image URL</label>
			<input class="form-control" name="image_url" value="{{ .Draft.ImageURL }}">
		</div>
		<div class="form-group">
			<label>Content</label>
			<textarea class="form-control" name="content" rows="20">{{ .Draft.Content }}</textarea>
		</div>
		<div class="form-check mb-3">
			<input class="form-check-input" type="checkbox" name="is_public" id="is_public"{{ if .Draft.IsPublic }} checked{{ end }}>
			<label class="form-check-label" for="is_public">Public</label>
		</div>
		<button type="submit" class="btn btn-primary">Save</button>
	</form>
{{ end }}

{{ define "categoryForm" }}
	<form method="post">
		<div class="form-group">
			<label>Name</label>
			<input class="form-control" name="name" value="{{ .Draft.Name }}" required>
		</div>
		<div class="form-group">
			<label>Image URL</label>
			<input class="form-control" name="image_url" value="{{ .Draft.ImageURL }}">
		</div>
		<button type="submit" class="btn btn-primary">Save</button>
	</form>
{{ end }}`))

var errorTmpl = tmpl(`
	<div class="alert alert-danger" role="alert">
		{{ .Err }}
	</div>`)

var notFoundTmpl = tmpl(`
	<h1>Not found</h1>
	<p>The page you requested does not exist.</p>`)

var forbiddenTmpl = tmpl(`
	<h1>Access denied</h1>
	<p>You are not allowed to do this.</p>`)
