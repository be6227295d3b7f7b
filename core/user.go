package core

type DBUser interface {
	ID() int
	Email() string
	Roles() []string
	Verified() bool
}

type UserDB interface {
	GetUser(id int) (DBUser, error)
	GetUserByEmail(email string) (DBUser, error)
	GetAllUsers(limit, offset int) ([]DBUser, error)
	InsertUser(email string) (DBUser, error)
	LoginUser(email, password string) (DBUser, error)
	SetPassword(u DBUser, password string) error
	SetRoles(u DBUser, roles []string) error
	SetVerified(u DBUser, verified bool) error
	Writeable() bool
}

// SetPassword shadows UserDB.SetPassword.
func (c *CoreDB) SetPassword(u DBUser, password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	return c.UserDB.SetPassword(u, password)
}

// GrantRole adds a role to the user's role set. The role name must belong to
// the closed permission enumeration.
func (c *CoreDB) GrantRole(u DBUser, role string) error {
	if !ValidRole(role) {
		return ErrUnknownRole
	}
	for _, r := range u.Roles() {
		if r == role {
			return nil
		}
	}
	return c.UserDB.SetRoles(u, append(u.Roles(), role))
}

// RevokeRole removes a role from the user's role set.
func (c *CoreDB) RevokeRole(u DBUser, role string) error {
	var roles = []string{}
	for _, r := range u.Roles() {
		if r != role {
			roles = append(roles, r)
		}
	}
	if len(roles) == len(u.Roles()) {
		return nil
	}
	return c.UserDB.SetRoles(u, roles)
}
