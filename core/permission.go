package core

import (
	"fmt"
	"strings"
)

// A Resource is something whose use is gated by roles.
type Resource string

const (
	ResourceArticle         Resource = "ARTICLE"
	ResourceArticleCategory Resource = "ARTICLE_CATEGORY"
)

func (r Resource) Valid() bool {
	switch r {
	case ResourceArticle:
		return true
	case ResourceArticleCategory:
		return true
	default:
		return false
	}
}

type Action string

const (
	Create        Action = "CREATE"
	Edit          Action = "EDIT"
	Delete        Action = "DELETE"
	ViewPrivate   Action = "VIEW_PRIVATE"
	DeletePrivate Action = "DELETE_PRIVATE"
)

func (a Action) Valid() bool {
	switch a {
	case Create:
		return true
	case Edit:
		return true
	case Delete:
		return true
	case ViewPrivate:
		return true
	case DeletePrivate:
		return true
	default:
		return false
	}
}

// A Permission is a (resource, action) pair.
// Role names are synthesized from it, never concatenated at call sites.
type Permission struct {
	Resource Resource
	Action   Action
}

// Every permission the application checks.
var (
	ArticleCreate        = Permission{ResourceArticle, Create}
	ArticleViewPrivate   = Permission{ResourceArticle, ViewPrivate}
	ArticleDeletePrivate = Permission{ResourceArticle, DeletePrivate}
	CategoryCreate       = Permission{ResourceArticleCategory, Create}
	CategoryEdit         = Permission{ResourceArticleCategory, Edit}
	CategoryDelete       = Permission{ResourceArticleCategory, Delete}
)

var AllPermissions = []Permission{
	ArticleCreate,
	ArticleViewPrivate,
	ArticleDeletePrivate,
	CategoryCreate,
	CategoryEdit,
	CategoryDelete,
}

// Role returns the role name which grants the permission, like "ROLE_ARTICLE_CREATE".
func (p Permission) Role() string {
	return strings.ToUpper("ROLE_" + string(p.Resource) + "_" + string(p.Action))
}

func (p Permission) Valid() bool {
	return p.Resource.Valid() && p.Action.Valid()
}

// ValidatePermissions checks AllPermissions for typos and duplicate role names.
// Main calls it on startup.
func ValidatePermissions() error {
	var seen = make(map[string]interface{})
	for _, p := range AllPermissions {
		if !p.Valid() {
			return fmt.Errorf("invalid permission: %s/%s", p.Resource, p.Action)
		}
		var role = p.Role()
		if _, ok := seen[role]; ok {
			return fmt.Errorf("duplicate role name: %s", role)
		}
		seen[role] = struct{}{}
	}
	return nil
}

// ValidRole returns whether name is the role name of a known permission.
func ValidRole(name string) bool {
	for _, p := range AllPermissions {
		if p.Role() == name {
			return true
		}
	}
	return false
}

// HasPermission returns whether the user's role set contains the role name of the permission.
// An absent user has no permissions.
func HasPermission(u DBUser, p Permission) bool {
	if u == nil {
		return false
	}
	var role = p.Role()
	for _, r := range u.Roles() {
		if r == role {
			return true
		}
	}
	return false
}

// SameIdentity returns whether both users are present and have the same id.
// Two absent users are never considered equal. It is the identity comparison
// for callers holding two user values; authorship checks compare against the
// stored author id instead, because articles may outlive their author record.
func SameIdentity(a, b DBUser) bool {
	return a != nil && b != nil && a.ID() == b.ID()
}
