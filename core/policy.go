package core

// isAuthor returns whether u is the author of a. Articles without an author
// have no authorship rights attached.
func isAuthor(u DBUser, a DBArticle) bool {
	return u != nil && a.AuthorID() != 0 && u.ID() == a.AuthorID()
}

// CanViewArticle returns whether u may read a. Public articles are visible to
// everyone, private articles to their author and to holders of
// ROLE_ARTICLE_VIEW_PRIVATE.
func CanViewArticle(u DBUser, a DBArticle) bool {
	return a.IsPublic() || HasPermission(u, ArticleViewPrivate) || isAuthor(u, a)
}

func CanCreateArticle(u DBUser) bool {
	return HasPermission(u, ArticleCreate)
}

// CanEditArticle returns whether u may edit a. Editing is tied to authorship,
// there is no role which overrides it.
func CanEditArticle(u DBUser, a DBArticle) bool {
	return isAuthor(u, a)
}

func CanDeleteArticle(u DBUser, a DBArticle) bool {
	return HasPermission(u, ArticleDeletePrivate) || isAuthor(u, a)
}
