/*
Package core contains the domain model of gazette: articles, categories, users,
the permission evaluator and the access policy.

Permissions

Write access is granted through roles. A role name is synthesized from a
(resource, action) pair, like ROLE_ARTICLE_CREATE or
ROLE_ARTICLE_CATEGORY_DELETE. The pairs form a closed enumeration
(AllPermissions) which is validated on startup, so a typo in a role name can't
silently deny or grant access.

Authorship is separate from roles: an article's author may always view, edit
and delete it. Read access to private articles additionally requires
ROLE_ARTICLE_VIEW_PRIVATE, deletion of foreign articles
ROLE_ARTICLE_DELETE_PRIVATE.

Failed read checks surface as ErrNotFound, indistinguishable from a missing
resource. Failed write checks on existing resources surface as ErrForbidden.
*/
package core
