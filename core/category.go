package core

type DBCategory interface {
	ID() int
	Name() string
	ImageURL() string
}

type CategoryDraft struct {
	Name     string
	ImageURL string
}

type CategoryDB interface {
	GetCategory(id int) (DBCategory, error)
	GetAllCategories() ([]DBCategory, error)
	InsertCategory(draft CategoryDraft) (DBCategory, error)
	UpdateCategory(c DBCategory, draft CategoryDraft) error
	DeleteCategory(c DBCategory) error
	Writeable() bool
}
