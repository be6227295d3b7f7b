package sqldb

import (
	"database/sql"

	"github.com/wansing/gazette/core"
)

type article struct {
	id            int
	authorID      int // 0 = no author
	categoryID    int
	title         string
	description   string
	content       string
	imageURL      string
	createdAt     int64
	lastUpdatedAt int64 // 0 = never edited
	isPublic      bool
}

func (a *article) ID() int              { return a.id }
func (a *article) AuthorID() int        { return a.authorID }
func (a *article) CategoryID() int      { return a.categoryID }
func (a *article) Title() string        { return a.title }
func (a *article) Description() string  { return a.description }
func (a *article) Content() string      { return a.content }
func (a *article) ImageURL() string     { return a.imageURL }
func (a *article) CreatedAt() int64     { return a.createdAt }
func (a *article) LastUpdatedAt() int64 { return a.lastUpdatedAt }
func (a *article) IsPublic() bool       { return a.isPublic }

// nullable columns are folded to zero values on scan
const articleCols = "id, COALESCE(author_id, 0), category_id, title, COALESCE(description, ''), content, COALESCE(image_url, ''), created_at, COALESCE(last_updated_at, 0), is_public"

type ArticleDB struct {
	*sql.DB
	countByCategory *sql.Stmt
	delete          *sql.Stmt
	get             *sql.Stmt
	getAll          *sql.Stmt
	getForAuthor    *sql.Stmt
	getPublic       *sql.Stmt
	insert          *sql.Stmt
	lastPublic      *sql.Stmt
	searchAll       *sql.Stmt
	searchForAuthor *sql.Stmt
	searchPublic    *sql.Stmt
	update          *sql.Stmt
}

// NewArticleDB creates the article table. The user and article_category
// tables must exist already because of the foreign keys.
func NewArticleDB(db *sql.DB) *ArticleDB {

	db.Exec(
		`CREATE TABLE IF NOT EXISTS article (
			id INTEGER PRIMARY KEY,
			author_id int(11),
			category_id int(11) NOT NULL,
			title varchar(255) NOT NULL,
			description varchar(160),
			content TEXT NOT NULL,
			image_url TEXT,
			created_at INTEGER NOT NULL,
			last_updated_at INTEGER,
			is_public bool NOT NULL,
			FOREIGN KEY (author_id) REFERENCES user(id),
			FOREIGN KEY (category_id) REFERENCES article_category(id)
		);`)

	var articleDB = &ArticleDB{}
	articleDB.DB = db
	articleDB.countByCategory = mustPrepare(db, "SELECT COUNT(1) FROM article WHERE category_id = ?")
	articleDB.delete = mustPrepare(db, "DELETE FROM article WHERE id = ?")
	articleDB.get = mustPrepare(db, "SELECT "+articleCols+" FROM article WHERE id = ? LIMIT 1")
	articleDB.getAll = mustPrepare(db, "SELECT "+articleCols+" FROM article ORDER BY id")
	articleDB.getForAuthor = mustPrepare(db, "SELECT "+articleCols+" FROM article WHERE is_public = 1 OR author_id = ? ORDER BY id")
	articleDB.getPublic = mustPrepare(db, "SELECT "+articleCols+" FROM article WHERE is_public = 1 ORDER BY id")
	articleDB.insert = mustPrepare(db, "INSERT INTO article (author_id, category_id, title, description, content, image_url, created_at, last_updated_at, is_public) VALUES (NULLIF(?, 0), ?, ?, NULLIF(?, ''), ?, NULLIF(?, ''), ?, NULL, ?)")
	articleDB.lastPublic = mustPrepare(db, "SELECT "+articleCols+" FROM article WHERE is_public = 1 ORDER BY id DESC LIMIT ?")
	articleDB.searchAll = mustPrepare(db, "SELECT "+articleCols+" FROM article WHERE (lower(title) LIKE ? OR lower(content) LIKE ?) ORDER BY id")
	articleDB.searchForAuthor = mustPrepare(db, "SELECT "+articleCols+" FROM article WHERE (lower(title) LIKE ? OR lower(content) LIKE ?) AND (is_public = 1 OR author_id = ?) ORDER BY id")
	articleDB.searchPublic = mustPrepare(db, "SELECT "+articleCols+" FROM article WHERE (lower(title) LIKE ? OR lower(content) LIKE ?) AND is_public = 1 ORDER BY id")
	articleDB.update = mustPrepare(db, "UPDATE article SET category_id = ?, title = ?, description = NULLIF(?, ''), content = ?, image_url = NULLIF(?, ''), last_updated_at = ?, is_public = ? WHERE id = ?")
	return articleDB
}

func (db *ArticleDB) Writeable() bool {
	return true
}

func (db *ArticleDB) getMultiple(stmt *sql.Stmt, args ...interface{}) ([]core.DBArticle, error) {

	rows, err := stmt.Query(args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles = []core.DBArticle{}

	for rows.Next() {
		var a = &article{}
		err = rows.Scan(&a.id, &a.authorID, &a.categoryID, &a.title, &a.description, &a.content, &a.imageURL, &a.createdAt, &a.lastUpdatedAt, &a.isPublic)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	return articles, nil
}

func (db *ArticleDB) GetArticle(id int) (core.DBArticle, error) {
	var a = &article{}
	err := db.get.QueryRow(id).Scan(&a.id, &a.authorID, &a.categoryID, &a.title, &a.description, &a.content, &a.imageURL, &a.createdAt, &a.lastUpdatedAt, &a.isPublic)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (db *ArticleDB) GetAll() ([]core.DBArticle, error) {
	return db.getMultiple(db.getAll)
}

func (db *ArticleDB) GetAllPublic() ([]core.DBArticle, error) {
	return db.getMultiple(db.getPublic)
}

func (db *ArticleDB) GetAllForAuthor(authorID int) ([]core.DBArticle, error) {
	return db.getMultiple(db.getForAuthor, authorID)
}

func (db *ArticleDB) SearchAll(query string) ([]core.DBArticle, error) {
	var pattern = searchPattern(query)
	return db.getMultiple(db.searchAll, pattern, pattern)
}

func (db *ArticleDB) SearchPublic(query string) ([]core.DBArticle, error) {
	var pattern = searchPattern(query)
	return db.getMultiple(db.searchPublic, pattern, pattern)
}

func (db *ArticleDB) SearchForAuthor(authorID int, query string) ([]core.DBArticle, error) {
	var pattern = searchPattern(query)
	return db.getMultiple(db.searchForAuthor, pattern, pattern, authorID)
}

func (db *ArticleDB) LastPublic(limit int) ([]core.DBArticle, error) {
	return db.getMultiple(db.lastPublic, limit)
}

func (db *ArticleDB) CountByCategory(categoryID int) (int, error) {
	var count int
	err := db.countByCategory.QueryRow(categoryID).Scan(&count)
	return count, err
}

func (db *ArticleDB) InsertArticle(authorID int, draft core.ArticleDraft, createdAt int64) (core.DBArticle, error) {

	res, err := db.insert.Exec(authorID, draft.CategoryID, draft.Title, draft.Description, draft.Content, draft.ImageURL, createdAt, draft.IsPublic)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &article{
		id:          int(id),
		authorID:    authorID,
		categoryID:  draft.CategoryID,
		title:       draft.Title,
		description: draft.Description,
		content:     draft.Content,
		imageURL:    draft.ImageURL,
		createdAt:   createdAt,
		isPublic:    draft.IsPublic,
	}, nil
}

func (db *ArticleDB) UpdateArticle(a core.DBArticle, draft core.ArticleDraft, lastUpdatedAt int64) error {
	_, err := db.update.Exec(draft.CategoryID, draft.Title, draft.Description, draft.Content, draft.ImageURL, lastUpdatedAt, draft.IsPublic, a.ID())
	return err
}

func (db *ArticleDB) DeleteArticle(a core.DBArticle) error {
	_, err := db.delete.Exec(a.ID())
	return err
}
