package services

import "github.com/EngKARANGWA/rugalika-backend/domain"

// Resources and actions gated by the static policy table.
const (
	ResourceNews         = "news"
	ResourceFeedback     = "feedback"
	ResourceHelpRequests = "help_requests"
	ResourceUploads      = "uploads"
	ResourceAnalytics    = "analytics"

	ActionCreate  = "create"
	ActionRead    = "read"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionRespond = "respond"
)

type permission struct {
	resource string
	action   string
}

// rolePermissions is the whole authorization policy. Admins bypass the table
// entirely, so only citizen grants are listed.
var rolePermissions = map[domain.UserRole]map[permission]struct{}{
	domain.RoleCitizen: {
		{ResourceNews, ActionRead}:           {},
		{ResourceFeedback, ActionCreate}:     {},
		{ResourceFeedback, ActionRead}:       {},
		{ResourceHelpRequests, ActionCreate}: {},
		{ResourceHelpRequests, ActionRead}:   {},
		{ResourceUploads, ActionCreate}:      {},
	},
}

// HasRole reports whether the user holds the given role.
func HasRole(user *domain.User, role domain.UserRole) bool {
	return user != nil && user.Role == role
}

// CanAccess evaluates the static policy table. Admin is always allowed.
func CanAccess(user *domain.User, resource, action string) bool {
	if user == nil {
		return false
	}
	if user.Role == domain.RoleAdmin {
		return true
	}
	perms, ok := rolePermissions[user.Role]
	if !ok {
		return false
	}
	_, ok = perms[permission{resource, action}]
	return ok
}
