package core

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCoreDB() *CoreDB {
	return &CoreDB{
		ArticleDB:  newTestArticleDB(),
		CategoryDB: newTestCategoryDB(),
	}
}

func mustCategory(t *testing.T, db *CoreDB, name string) DBCategory {
	c, err := db.CategoryDB.InsertCategory(CategoryDraft{Name: name})
	require.NoError(t, err)
	return c
}

func TestCreateArticle(t *testing.T) {

	var db = newTestCoreDB()
	var category = mustCategory(t, db, "News")
	var author = &testUser{id: 1, roles: []string{"ROLE_ARTICLE_CREATE"}}
	var draft = ArticleDraft{Title: "Hello", CategoryID: category.ID(), Content: "world"}

	_, err := db.CreateArticle(nil, draft)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = db.CreateArticle(&testUser{id: 2}, draft)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = db.CreateArticle(author, ArticleDraft{Title: "Hello", CategoryID: 999})
	assert.Error(t, err)

	before := time.Now().Unix()
	article, err := db.CreateArticle(author, draft)
	after := time.Now().Unix()
	require.NoError(t, err)

	assert.Equal(t, author.ID(), article.AuthorID())
	assert.Equal(t, "Hello", article.Title())
	assert.GreaterOrEqual(t, article.CreatedAt(), before)
	assert.LessOrEqual(t, article.CreatedAt(), after)
	assert.EqualValues(t, 0, article.LastUpdatedAt())
}

func TestEditArticle(t *testing.T) {

	var db = newTestCoreDB()
	var category = mustCategory(t, db, "News")
	var author = &testUser{id: 1, roles: []string{"ROLE_ARTICLE_CREATE"}}

	article, err := db.CreateArticle(author, ArticleDraft{Title: "Old", CategoryID: category.ID()})
	require.NoError(t, err)
	createdAt := article.CreatedAt()

	var draft = ArticleDraft{Title: "New", CategoryID: category.ID(), IsPublic: true}

	assert.ErrorIs(t, db.EditArticle(nil, article, draft), ErrNotFound)
	assert.ErrorIs(t, db.EditArticle(&testUser{id: 2}, article, draft), ErrNotFound)

	before := time.Now().Unix()
	require.NoError(t, db.EditArticle(author, article, draft))

	edited, err := db.ArticleDB.GetArticle(article.ID())
	require.NoError(t, err)
	assert.Equal(t, "New", edited.Title())
	assert.True(t, edited.IsPublic())
	assert.Equal(t, createdAt, edited.CreatedAt())
	assert.GreaterOrEqual(t, edited.LastUpdatedAt(), before)
}

func TestDeleteArticle(t *testing.T) {

	var db = newTestCoreDB()
	var category = mustCategory(t, db, "News")
	var author = &testUser{id: 1, roles: []string{"ROLE_ARTICLE_CREATE"}}
	var moderator = &testUser{id: 2, roles: []string{"ROLE_ARTICLE_DELETE_PRIVATE"}}

	article, err := db.CreateArticle(author, ArticleDraft{Title: "Hello", CategoryID: category.ID()})
	require.NoError(t, err)

	assert.ErrorIs(t, db.DeleteArticle(nil, article), ErrNotFound)
	assert.ErrorIs(t, db.DeleteArticle(&testUser{id: 3}, article), ErrForbidden)

	require.NoError(t, db.DeleteArticle(author, article))
	_, err = db.ArticleDB.GetArticle(article.ID())
	assert.Error(t, err)

	article, err = db.CreateArticle(author, ArticleDraft{Title: "Hello again", CategoryID: category.ID()})
	require.NoError(t, err)
	require.NoError(t, db.DeleteArticle(moderator, article))
}

func TestGetArticleForViewer(t *testing.T) {

	var db = newTestCoreDB()
	var category = mustCategory(t, db, "News")
	var author = &testUser{id: 1, roles: []string{"ROLE_ARTICLE_CREATE"}}
	var moderator = &testUser{id: 2, roles: []string{"ROLE_ARTICLE_VIEW_PRIVATE"}}

	private, err := db.CreateArticle(author, ArticleDraft{Title: "Private", CategoryID: category.ID()})
	require.NoError(t, err)
	public, err := db.CreateArticle(author, ArticleDraft{Title: "Public", CategoryID: category.ID(), IsPublic: true})
	require.NoError(t, err)

	_, err = db.GetArticleForViewer(nil, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	// a private article of someone else is indistinguishable from a missing one
	_, err = db.GetArticleForViewer(nil, private.ID())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = db.GetArticleForViewer(&testUser{id: 3}, private.ID())
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := db.GetArticleForViewer(nil, public.ID())
	require.NoError(t, err)
	assert.Equal(t, public.ID(), got.ID())

	_, err = db.GetArticleForViewer(author, private.ID())
	assert.NoError(t, err)
	_, err = db.GetArticleForViewer(moderator, private.ID())
	assert.NoError(t, err)
}

func ids(articles []DBArticle) []int {
	var result = []int{}
	for _, a := range articles {
		result = append(result, a.ID())
	}
	return result
}

func TestListArticles(t *testing.T) {

	var db = newTestCoreDB()
	var category = mustCategory(t, db, "News")
	var alice = &testUser{id: 1, roles: []string{"ROLE_ARTICLE_CREATE"}}
	var bob = &testUser{id: 2, roles: []string{"ROLE_ARTICLE_CREATE"}}
	var moderator = &testUser{id: 3, roles: []string{"ROLE_ARTICLE_VIEW_PRIVATE"}}

	// 1: alice public, 2: alice private, 3: bob public, 4: bob private
	_, err := db.CreateArticle(alice, ArticleDraft{Title: "a1", CategoryID: category.ID(), IsPublic: true})
	require.NoError(t, err)
	_, err = db.CreateArticle(alice, ArticleDraft{Title: "a2", CategoryID: category.ID()})
	require.NoError(t, err)
	_, err = db.CreateArticle(bob, ArticleDraft{Title: "b1", CategoryID: category.ID(), IsPublic: true})
	require.NoError(t, err)
	_, err = db.CreateArticle(bob, ArticleDraft{Title: "b2", CategoryID: category.ID()})
	require.NoError(t, err)

	anonymous, err := db.ListArticles(nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, ids(anonymous))

	all, err := db.ListArticles(moderator)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, ids(all))

	own, err := db.ListArticles(alice)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ids(own))
}

func TestListArticlesByCategory(t *testing.T) {

	var db = newTestCoreDB()
	var news = mustCategory(t, db, "News")
	var sports = mustCategory(t, db, "Sports")
	var author = &testUser{id: 1, roles: []string{"ROLE_ARTICLE_CREATE"}}

	_, err := db.CreateArticle(author, ArticleDraft{Title: "n", CategoryID: news.ID(), IsPublic: true})
	require.NoError(t, err)
	_, err = db.CreateArticle(author, ArticleDraft{Title: "s", CategoryID: sports.ID(), IsPublic: true})
	require.NoError(t, err)

	_, err = db.ListArticlesByCategory(nil, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	articles, err := db.ListArticlesByCategory(nil, sports.ID())
	require.NoError(t, err)
	assert.Equal(t, []int{2}, ids(articles))
}

func TestSearchArticles(t *testing.T) {

	var db = newTestCoreDB()
	var category = mustCategory(t, db, "News")
	var alice = &testUser{id: 1, roles: []string{"ROLE_ARTICLE_CREATE"}}
	var moderator = &testUser{id: 2, roles: []string{"ROLE_ARTICLE_VIEW_PRIVATE"}}

	_, err := db.CreateArticle(alice, ArticleDraft{Title: "Go Release Notes", CategoryID: category.ID(), IsPublic: true})
	require.NoError(t, err)
	_, err = db.CreateArticle(alice, ArticleDraft{Title: "Drafting", CategoryID: category.ID(), Content: "go faster"})
	require.NoError(t, err)

	// matching is case-insensitive and searches title and content
	public, err := db.SearchArticles(nil, "GO")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids(public))

	all, err := db.SearchArticles(moderator, "go")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ids(all))

	own, err := db.SearchArticles(alice, "faster")
	require.NoError(t, err)
	assert.Equal(t, []int{2}, ids(own))

	none, err := db.SearchArticles(nil, "faster")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLastPublicArticles(t *testing.T) {

	var db = newTestCoreDB()
	var category = mustCategory(t, db, "News")
	var author = &testUser{id: 1, roles: []string{"ROLE_ARTICLE_CREATE"}}

	for i := 0; i < 12; i++ {
		_, err := db.CreateArticle(author, ArticleDraft{Title: "t", CategoryID: category.ID(), IsPublic: true})
		require.NoError(t, err)
	}
	_, err := db.CreateArticle(author, ArticleDraft{Title: "private", CategoryID: category.ID()})
	require.NoError(t, err)

	articles, err := db.LastPublicArticles(0)
	require.NoError(t, err)
	assert.Equal(t, []int{12, 11, 10, 9, 8, 7, 6, 5, 4, 3}, ids(articles))

	articles, err = db.LastPublicArticles(2)
	require.NoError(t, err)
	assert.Equal(t, []int{12, 11}, ids(articles))
}

func TestCategoryWrites(t *testing.T) {

	var db = newTestCoreDB()
	var manager = &testUser{id: 1, roles: []string{
		"ROLE_ARTICLE_CATEGORY_CREATE",
		"ROLE_ARTICLE_CATEGORY_EDIT",
		"ROLE_ARTICLE_CATEGORY_DELETE",
	}}

	_, err := db.CreateCategory(nil, CategoryDraft{Name: "News"})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = db.CreateCategory(&testUser{id: 2}, CategoryDraft{Name: "News"})
	assert.ErrorIs(t, err, ErrNotFound)

	category, err := db.CreateCategory(manager, CategoryDraft{Name: "News"})
	require.NoError(t, err)

	assert.ErrorIs(t, db.EditCategory(&testUser{id: 2}, category, CategoryDraft{Name: "Updates"}), ErrNotFound)
	require.NoError(t, db.EditCategory(manager, category, CategoryDraft{Name: "Updates"}))

	got, err := db.GetCategory(category.ID())
	require.NoError(t, err)
	assert.Equal(t, "Updates", got.Name())
}

func TestDeleteCategory(t *testing.T) {

	var db = newTestCoreDB()
	var manager = &testUser{id: 1, roles: []string{"ROLE_ARTICLE_CATEGORY_CREATE", "ROLE_ARTICLE_CATEGORY_DELETE", "ROLE_ARTICLE_CREATE"}}

	category, err := db.CreateCategory(manager, CategoryDraft{Name: "News"})
	require.NoError(t, err)

	assert.ErrorIs(t, db.DeleteCategory(nil, category), ErrNotFound)
	assert.ErrorIs(t, db.DeleteCategory(&testUser{id: 2}, category), ErrForbidden)

	article, err := db.CreateArticle(manager, ArticleDraft{Title: "t", CategoryID: category.ID()})
	require.NoError(t, err)

	assert.ErrorIs(t, db.DeleteCategory(manager, category), ErrCategoryInUse)

	require.NoError(t, db.DeleteArticle(manager, article))
	require.NoError(t, db.DeleteCategory(manager, category))

	_, err = db.GetCategory(category.ID())
	assert.Error(t, err)
}

func TestSetPassword(t *testing.T) {
	var db = newTestCoreDB()
	assert.ErrorIs(t, db.SetPassword(&testUser{id: 1}, ""), ErrEmptyPassword)
}

func TestGrantRole(t *testing.T) {
	var db = newTestCoreDB()
	var err = db.GrantRole(&testUser{id: 1}, "ROLE_SOMETHING_ELSE")
	assert.True(t, errors.Is(err, ErrUnknownRole))
}
