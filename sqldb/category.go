package sqldb

import (
	"database/sql"

	"github.com/wansing/gazette/core"
)

type category struct {
	id       int
	name     string
	imageURL string
}

func (c *category) ID() int {
	return c.id
}

func (c *category) Name() string {
	return c.name
}

func (c *category) ImageURL() string {
	return c.imageURL
}

type CategoryDB struct {
	*sql.DB
	delete *sql.Stmt
	get    *sql.Stmt
	getAll *sql.Stmt
	insert *sql.Stmt
	update *sql.Stmt
}

func NewCategoryDB(db *sql.DB) *CategoryDB {

	db.Exec(
		`CREATE TABLE IF NOT EXISTS article_category (
			id INTEGER PRIMARY KEY,
			name varchar(255) NOT NULL,
			image_url TEXT
		);`)

	var categoryDB = &CategoryDB{}
	categoryDB.DB = db
	categoryDB.delete = mustPrepare(db, "DELETE FROM article_category WHERE id = ?")
	categoryDB.get = mustPrepare(db, "SELECT name, COALESCE(image_url, '') FROM article_category WHERE id = ? LIMIT 1")
	categoryDB.getAll = mustPrepare(db, "SELECT id, name, COALESCE(image_url, '') FROM article_category ORDER BY id")
	categoryDB.insert = mustPrepare(db, "INSERT INTO article_category (name, image_url) VALUES (?, NULLIF(?, ''))")
	categoryDB.update = mustPrepare(db, "UPDATE article_category SET name = ?, image_url = NULLIF(?, '') WHERE id = ?")
	return categoryDB
}

func (db *CategoryDB) Writeable() bool {
	return true
}

func (db *CategoryDB) GetCategory(id int) (core.DBCategory, error) {
	var c = &category{
		id: id,
	}
	return c, db.get.QueryRow(id).Scan(&c.name, &c.imageURL)
}

func (db *CategoryDB) GetAllCategories() ([]core.DBCategory, error) {

	rows, err := db.getAll.Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all = []core.DBCategory{}

	for rows.Next() {
		var c = &category{}
		if err = rows.Scan(&c.id, &c.name, &c.imageURL); err != nil {
			return nil, err
		}
		all = append(all, c)
	}

	return all, nil
}

func (db *CategoryDB) InsertCategory(draft core.CategoryDraft) (core.DBCategory, error) {
	res, err := db.insert.Exec(draft.Name, draft.ImageURL)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &category{
		id:       int(id),
		name:     draft.Name,
		imageURL: draft.ImageURL,
	}, nil
}

func (db *CategoryDB) UpdateCategory(c core.DBCategory, draft core.CategoryDraft) error {
	_, err := db.update.Exec(draft.Name, draft.ImageURL, c.ID())
	return err
}

func (db *CategoryDB) DeleteCategory(c core.DBCategory) error {
	_, err := db.delete.Exec(c.ID())
	return err
}
