package core

import (
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
)

type CoreDB struct {
	ArticleDB
	CategoryDB
	UserDB
	SessionManager *scs.SessionManager
}

// Init validates the permission enumeration and sets up the session manager.
// If sessionStore is nil, sessions are kept in memory.
func (c *CoreDB) Init(sessionStore scs.Store, cookiePath string) error {

	if err := ValidatePermissions(); err != nil {
		return err
	}

	c.SessionManager = scs.New()
	if sessionStore != nil {
		c.SessionManager.Store = sessionStore
	}
	c.SessionManager.Cookie.Path = cookiePath + "/"
	c.SessionManager.Cookie.Persist = false                 // don't store the cookie across browser sessions, see GDPR cookie consent exemption criterion B
	c.SessionManager.Cookie.SameSite = http.SameSiteLaxMode // good CSRF protection if HTTP GET doesn't modify anything
	c.SessionManager.Cookie.Secure = false                  // else running on localhost or behind a http proxy fails
	c.SessionManager.IdleTimeout = 12 * time.Hour
	c.SessionManager.Lifetime = 720 * time.Hour

	return nil
}

// CreateArticle inserts a new article authored by actor. The creation
// timestamp is set once here and never changes afterwards.
func (c *CoreDB) CreateArticle(actor DBUser, draft ArticleDraft) (DBArticle, error) {
	if !CanCreateArticle(actor) {
		return nil, ErrNotFound
	}
	if _, err := c.CategoryDB.GetCategory(draft.CategoryID); err != nil {
		return nil, fmt.Errorf("create article: no category %d: %w", draft.CategoryID, err)
	}
	return c.ArticleDB.InsertArticle(actor.ID(), draft, time.Now().Unix())
}

// EditArticle rewrites the draft fields of the article and stamps its
// last-updated timestamp. Only the author may edit.
func (c *CoreDB) EditArticle(actor DBUser, article DBArticle, draft ArticleDraft) error {
	if !CanEditArticle(actor, article) {
		return ErrNotFound
	}
	if _, err := c.CategoryDB.GetCategory(draft.CategoryID); err != nil {
		return fmt.Errorf("edit article: no category %d: %w", draft.CategoryID, err)
	}
	return c.ArticleDB.UpdateArticle(article, draft, time.Now().Unix())
}

func (c *CoreDB) DeleteArticle(actor DBUser, article DBArticle) error {
	if actor == nil {
		return ErrNotFound
	}
	if !CanDeleteArticle(actor, article) {
		return ErrForbidden
	}
	return c.ArticleDB.DeleteArticle(article)
}

// GetArticleForViewer returns the article if the viewer may read it, else
// ErrNotFound. Missing and unreadable articles are indistinguishable.
func (c *CoreDB) GetArticleForViewer(viewer DBUser, id int) (DBArticle, error) {
	article, err := c.ArticleDB.GetArticle(id)
	if err != nil {
		return nil, ErrNotFound
	}
	if !CanViewArticle(viewer, article) {
		return nil, ErrNotFound
	}
	return article, nil
}

// ListArticles returns the articles the viewer may read, ascending by id.
func (c *CoreDB) ListArticles(viewer DBUser) ([]DBArticle, error) {
	switch {
	case viewer == nil:
		return c.ArticleDB.GetAllPublic()
	case HasPermission(viewer, ArticleViewPrivate):
		return c.ArticleDB.GetAll()
	default:
		return c.ArticleDB.GetAllForAuthor(viewer.ID())
	}
}

// ListArticlesByCategory filters ListArticles by category.
func (c *CoreDB) ListArticlesByCategory(viewer DBUser, categoryID int) ([]DBArticle, error) {

	if _, err := c.CategoryDB.GetCategory(categoryID); err != nil {
		return nil, ErrNotFound
	}

	all, err := c.ListArticles(viewer)
	if err != nil {
		return nil, err
	}

	var articles = []DBArticle{}
	for _, a := range all {
		if a.CategoryID() == categoryID {
			articles = append(articles, a)
		}
	}
	return articles, nil
}

// SearchArticles returns the articles the viewer may read whose title or
// content contains the query, case-insensitively, ascending by id.
func (c *CoreDB) SearchArticles(viewer DBUser, query string) ([]DBArticle, error) {
	switch {
	case viewer == nil:
		return c.ArticleDB.SearchPublic(query)
	case HasPermission(viewer, ArticleViewPrivate):
		return c.ArticleDB.SearchAll(query)
	default:
		return c.ArticleDB.SearchForAuthor(viewer.ID(), query)
	}
}

// LastPublicArticles returns the most recent public articles, newest first.
func (c *CoreDB) LastPublicArticles(limit int) ([]DBArticle, error) {
	if limit <= 0 {
		limit = 10
	}
	return c.ArticleDB.LastPublic(limit)
}

func (c *CoreDB) CreateCategory(actor DBUser, draft CategoryDraft) (DBCategory, error) {
	if !HasPermission(actor, CategoryCreate) {
		return nil, ErrNotFound
	}
	return c.CategoryDB.InsertCategory(draft)
}

func (c *CoreDB) EditCategory(actor DBUser, category DBCategory, draft CategoryDraft) error {
	if !HasPermission(actor, CategoryEdit) {
		return ErrNotFound
	}
	return c.CategoryDB.UpdateCategory(category, draft)
}

// DeleteCategory refuses to delete a category which articles still reference,
// so the storage layer's foreign key constraint is never hit.
func (c *CoreDB) DeleteCategory(actor DBUser, category DBCategory) error {
	if actor == nil {
		return ErrNotFound
	}
	if !HasPermission(actor, CategoryDelete) {
		return ErrForbidden
	}
	count, err := c.ArticleDB.CountByCategory(category.ID())
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	return c.CategoryDB.DeleteCategory(category)
}
