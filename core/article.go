package core

type DBArticle interface {
	ID() int
	AuthorID() int // 0 if the article has no author
	CategoryID() int
	Title() string
	Description() string
	Content() string
	ImageURL() string
	CreatedAt() int64     // unix timestamp, set once at creation
	LastUpdatedAt() int64 // unix timestamp, 0 until the first edit
	IsPublic() bool
}

// An ArticleDraft carries the user-editable fields of an article.
type ArticleDraft struct {
	Title       string
	CategoryID  int
	Description string
	Content     string
	ImageURL    string
	IsPublic    bool
}

// ArticleDB implementations must return listings and search results ordered by
// ascending id, and LastPublic ordered by descending id. Search matching is
// case-insensitive substring matching on title or content.
type ArticleDB interface {
	GetArticle(id int) (DBArticle, error)
	GetAll() ([]DBArticle, error)
	GetAllPublic() ([]DBArticle, error)
	GetAllForAuthor(authorID int) ([]DBArticle, error) // public or authored
	SearchAll(query string) ([]DBArticle, error)
	SearchPublic(query string) ([]DBArticle, error)
	SearchForAuthor(authorID int, query string) ([]DBArticle, error)
	LastPublic(limit int) ([]DBArticle, error)
	CountByCategory(categoryID int) (int, error)
	InsertArticle(authorID int, draft ArticleDraft, createdAt int64) (DBArticle, error)
	UpdateArticle(a DBArticle, draft ArticleDraft, lastUpdatedAt int64) error
	DeleteArticle(a DBArticle) error
	Writeable() bool
}
