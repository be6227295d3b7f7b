package core

import (
	"errors"
	"sort"
	"strings"
)

var errNoRow = errors.New("no such row")

type testUser struct {
	id       int
	email    string
	roles    []string
	verified bool
}

func (u *testUser) ID() int         { return u.id }
func (u *testUser) Email() string   { return u.email }
func (u *testUser) Roles() []string { return u.roles }
func (u *testUser) Verified() bool  { return u.verified }

type testArticle struct {
	id            int
	authorID      int
	categoryID    int
	title         string
	description   string
	content       string
	imageURL      string
	createdAt     int64
	lastUpdatedAt int64
	isPublic      bool
}

func (a *testArticle) ID() int              { return a.id }
func (a *testArticle) AuthorID() int        { return a.authorID }
func (a *testArticle) CategoryID() int      { return a.categoryID }
func (a *testArticle) Title() string        { return a.title }
func (a *testArticle) Description() string  { return a.description }
func (a *testArticle) Content() string      { return a.content }
func (a *testArticle) ImageURL() string     { return a.imageURL }
func (a *testArticle) CreatedAt() int64     { return a.createdAt }
func (a *testArticle) LastUpdatedAt() int64 { return a.lastUpdatedAt }
func (a *testArticle) IsPublic() bool       { return a.isPublic }

type testArticleDB struct {
	articles map[int]*testArticle
	nextID   int
}

func newTestArticleDB() *testArticleDB {
	return &testArticleDB{
		articles: make(map[int]*testArticle),
		nextID:   1,
	}
}

func (db *testArticleDB) all(accept func(*testArticle) bool) []DBArticle {
	var result = []DBArticle{}
	for _, a := range db.articles {
		if accept(a) {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID() < result[j].ID()
	})
	return result
}

func matches(a *testArticle, query string) bool {
	query = strings.ToLower(query)
	return strings.Contains(strings.ToLower(a.title), query) || strings.Contains(strings.ToLower(a.content), query)
}

func (db *testArticleDB) GetArticle(id int) (DBArticle, error) {
	if a, ok := db.articles[id]; ok {
		return a, nil
	}
	return nil, errNoRow
}

func (db *testArticleDB) GetAll() ([]DBArticle, error) {
	return db.all(func(*testArticle) bool { return true }), nil
}

func (db *testArticleDB) GetAllPublic() ([]DBArticle, error) {
	return db.all(func(a *testArticle) bool { return a.isPublic }), nil
}

func (db *testArticleDB) GetAllForAuthor(authorID int) ([]DBArticle, error) {
	return db.all(func(a *testArticle) bool { return a.isPublic || a.authorID == authorID }), nil
}

func (db *testArticleDB) SearchAll(query string) ([]DBArticle, error) {
	return db.all(func(a *testArticle) bool { return matches(a, query) }), nil
}

func (db *testArticleDB) SearchPublic(query string) ([]DBArticle, error) {
	return db.all(func(a *testArticle) bool { return a.isPublic && matches(a, query) }), nil
}

func (db *testArticleDB) SearchForAuthor(authorID int, query string) ([]DBArticle, error) {
	return db.all(func(a *testArticle) bool { return (a.isPublic || a.authorID == authorID) && matches(a, query) }), nil
}

func (db *testArticleDB) LastPublic(limit int) ([]DBArticle, error) {
	var public = db.all(func(a *testArticle) bool { return a.isPublic })
	// reverse to descending id
	for i, j := 0, len(public)-1; i < j; i, j = i+1, j-1 {
		public[i], public[j] = public[j], public[i]
	}
	if len(public) > limit {
		public = public[:limit]
	}
	return public, nil
}

func (db *testArticleDB) CountByCategory(categoryID int) (int, error) {
	var count int
	for _, a := range db.articles {
		if a.categoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (db *testArticleDB) InsertArticle(authorID int, draft ArticleDraft, createdAt int64) (DBArticle, error) {
	var a = &testArticle{
		id:          db.nextID,
		authorID:    authorID,
		categoryID:  draft.CategoryID,
		title:       draft.Title,
		description: draft.Description,
		content:     draft.Content,
		imageURL:    draft.ImageURL,
		createdAt:   createdAt,
		isPublic:    draft.IsPublic,
	}
	db.articles[a.id] = a
	db.nextID++
	return a, nil
}

func (db *testArticleDB) UpdateArticle(article DBArticle, draft ArticleDraft, lastUpdatedAt int64) error {
	a, ok := db.articles[article.ID()]
	if !ok {
		return errNoRow
	}
	a.categoryID = draft.CategoryID
	a.title = draft.Title
	a.description = draft.Description
	a.content = draft.Content
	a.imageURL = draft.ImageURL
	a.isPublic = draft.IsPublic
	a.lastUpdatedAt = lastUpdatedAt
	return nil
}

func (db *testArticleDB) DeleteArticle(article DBArticle) error {
	if _, ok := db.articles[article.ID()]; !ok {
		return errNoRow
	}
	delete(db.articles, article.ID())
	return nil
}

func (db *testArticleDB) Writeable() bool {
	return true
}

type testCategory struct {
	id       int
	name     string
	imageURL string
}

func (c *testCategory) ID() int          { return c.id }
func (c *testCategory) Name() string     { return c.name }
func (c *testCategory) ImageURL() string { return c.imageURL }

type testCategoryDB struct {
	categories map[int]*testCategory
	nextID     int
}

func newTestCategoryDB() *testCategoryDB {
	return &testCategoryDB{
		categories: make(map[int]*testCategory),
		nextID:     1,
	}
}

func (db *testCategoryDB) GetCategory(id int) (DBCategory, error) {
	if c, ok := db.categories[id]; ok {
		return c, nil
	}
	return nil, errNoRow
}

func (db *testCategoryDB) GetAllCategories() ([]DBCategory, error) {
	var result = []DBCategory{}
	for _, c := range db.categories {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID() < result[j].ID()
	})
	return result, nil
}

func (db *testCategoryDB) InsertCategory(draft CategoryDraft) (DBCategory, error) {
	var c = &testCategory{
		id:       db.nextID,
		name:     draft.Name,
		imageURL: draft.ImageURL,
	}
	db.categories[c.id] = c
	db.nextID++
	return c, nil
}

func (db *testCategoryDB) UpdateCategory(category DBCategory, draft CategoryDraft) error {
	c, ok := db.categories[category.ID()]
	if !ok {
		return errNoRow
	}
	c.name = draft.Name
	c.imageURL = draft.ImageURL
	return nil
}

func (db *testCategoryDB) DeleteCategory(category DBCategory) error {
	if _, ok := db.categories[category.ID()]; !ok {
		return errNoRow
	}
	delete(db.categories, category.ID())
	return nil
}

func (db *testCategoryDB) Writeable() bool {
	return true
}
