package sqldb

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/wansing/gazette/core"
	"golang.org/x/crypto/bcrypt"
)

type user struct {
	id       int
	email    string
	roles    []string
	pass     string // bcrypt hash
	verified bool
}

func (u *user) ID() int {
	return u.id
}

func (u *user) Email() string {
	return u.email
}

func (u *user) Roles() []string {
	return u.roles
}

func (u *user) Verified() bool {
	return u.verified
}

// scanRoles decodes the JSON-encoded roles column.
func (u *user) scanRoles(raw string) error {
	if raw == "" {
		u.roles = []string{}
		return nil
	}
	return json.Unmarshal([]byte(raw), &u.roles)
}

type UserDB struct {
	*sql.DB
	get         *sql.Stmt
	getAll      *sql.Stmt
	getByEmail  *sql.Stmt
	insert      *sql.Stmt
	login       *sql.Stmt
	setPassword *sql.Stmt
	setRoles    *sql.Stmt
	setVerified *sql.Stmt
}

func NewUserDB(db *sql.DB) *UserDB {

	db.Exec(
		`CREATE TABLE IF NOT EXISTS user (
			id INTEGER PRIMARY KEY,
			email varchar(180) NOT NULL,
			roles TEXT NOT NULL,
			password varchar(255) NOT NULL,
			is_verified bool NOT NULL,
			UNIQUE(email)
		);`)

	var userDB = &UserDB{}
	userDB.DB = db
	userDB.get = mustPrepare(db, "SELECT email, roles, is_verified FROM user WHERE id = ? LIMIT 1")
	userDB.getAll = mustPrepare(db, "SELECT id, email, roles, is_verified FROM user ORDER BY email LIMIT ? OFFSET ?")
	userDB.getByEmail = mustPrepare(db, "SELECT id, roles, is_verified FROM user WHERE email = ? LIMIT 1")
	userDB.insert = mustPrepare(db, "INSERT INTO user (email, roles, password, is_verified) VALUES (?, '[]', '', 0)") // empty password field is safe because no bcrypt hash equals it
	userDB.login = mustPrepare(db, "SELECT id, roles, password, is_verified FROM user WHERE email = ?")
	userDB.setPassword = mustPrepare(db, "UPDATE user SET password = ? WHERE id = ?")
	userDB.setRoles = mustPrepare(db, "UPDATE user SET roles = ? WHERE id = ?")
	userDB.setVerified = mustPrepare(db, "UPDATE user SET is_verified = ? WHERE id = ?")
	return userDB
}

func (db *UserDB) Writeable() bool {
	return true
}

func (db *UserDB) GetUser(id int) (core.DBUser, error) {
	var u = &user{
		id: id,
	}
	var rawRoles string
	if err := db.get.QueryRow(id).Scan(&u.email, &rawRoles, &u.verified); err != nil {
		return nil, err
	}
	return u, u.scanRoles(rawRoles)
}

func (db *UserDB) GetUserByEmail(email string) (core.DBUser, error) {
	var u = &user{
		email: clean(email),
	}
	var rawRoles string
	if err := db.getByEmail.QueryRow(u.email).Scan(&u.id, &rawRoles, &u.verified); err != nil {
		return nil, err
	}
	return u, u.scanRoles(rawRoles)
}

func (db *UserDB) GetAllUsers(limit, offset int) ([]core.DBUser, error) {

	rows, err := db.getAll.Query(limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all = []core.DBUser{}

	for rows.Next() {
		var u = &user{}
		var rawRoles string
		if err = rows.Scan(&u.id, &u.email, &rawRoles, &u.verified); err != nil {
			return nil, err
		}
		if err = u.scanRoles(rawRoles); err != nil {
			return nil, err
		}
		all = append(all, u)
	}

	return all, nil
}

func (db *UserDB) InsertUser(email string) (core.DBUser, error) {
	email = clean(email)
	res, err := db.insert.Exec(email)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &user{
		id:    int(id),
		email: email,
		roles: []string{},
	}, nil
}

func (db *UserDB) LoginUser(email, password string) (core.DBUser, error) {

	email = clean(email)

	var u = &user{
		email: email,
	}
	var rawRoles string

	err := db.login.QueryRow(email).Scan(&u.id, &rawRoles, &u.pass, &u.verified)
	if err == sql.ErrNoRows {
		return nil, ErrAuth // user not found
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.pass), []byte(password)) != nil {
		return nil, ErrAuth // wrong password
	}

	if err := u.scanRoles(rawRoles); err != nil {
		return nil, err
	}

	return u, nil
}

func (db *UserDB) SetPassword(u core.DBUser, password string) error {

	if password == "" {
		return errors.New("no password given")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.setPassword.Exec(string(hash), u.ID())
	return err
}

func (db *UserDB) SetRoles(u core.DBUser, roles []string) error {

	raw, err := json.Marshal(roles)
	if err != nil {
		return err
	}

	if _, err = db.setRoles.Exec(string(raw), u.ID()); err != nil {
		return err
	}

	u.(*user).roles = roles
	return nil
}

func (db *UserDB) SetVerified(u core.DBUser, verified bool) error {
	if _, err := db.setVerified.Exec(verified, u.ID()); err != nil {
		return err
	}
	u.(*user).verified = verified
	return nil
}
