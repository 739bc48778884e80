// Package policy implements per-resource, per-verb authorization decisions.
//
// Decisions are pure functions of the verb, the resource kind, the caller,
// and (for object-level checks) the target object's author. Handlers run
// the collection-level check before dispatching; services run the
// object-level check once the target object has been loaded.
package policy

import "critica/internal/models"

// Verb is the kind of operation attempted on a resource.
type Verb string

const (
	VerbList     Verb = "list"
	VerbRetrieve Verb = "retrieve"
	VerbCreate   Verb = "create"
	VerbUpdate   Verb = "update"
	VerbDelete   Verb = "delete"
)

// Safe reports whether the verb is read-only.
func (v Verb) Safe() bool {
	return v == VerbList || v == VerbRetrieve
}

// Resource is the kind of object a request targets.
type Resource string

const (
	ResourceUsers      Resource = "users"
	ResourceCategories Resource = "categories"
	ResourceGenres     Resource = "genres"
	ResourceTitles     Resource = "titles"
	ResourceReviews    Resource = "reviews"
	ResourceComments   Resource = "comments"
)

// Caller describes the identity attempting an operation. The zero value
// is an anonymous caller.
type Caller struct {
	Authenticated bool
	UserID        uint
	Role          models.Role
	Superuser     bool
}

// CallerFor builds a Caller from a loaded user record.
func CallerFor(u *models.User) Caller {
	if u == nil {
		return Caller{}
	}
	return Caller{
		Authenticated: true,
		UserID:        u.ID,
		Role:          u.Role,
		Superuser:     u.Superuser,
	}
}

func (c Caller) isAdmin() bool {
	return c.Authenticated && (c.Role == models.RoleAdmin || c.Superuser)
}

func (c Caller) isStaff() bool {
	return c.Authenticated && (c.Role == models.RoleAdmin || c.Role == models.RoleModerator || c.Superuser)
}

// Allow is the collection-level check: may this caller attempt this verb
// on this resource kind at all. The users resource is admin-only for
// every verb, reads included; catalog resources are world-readable and
// admin-writable; reviews and comments are world-readable and writable
// by any authenticated caller (ownership is settled at object level).
func Allow(verb Verb, resource Resource, caller Caller) bool {
	switch resource {
	case ResourceUsers:
		return caller.isAdmin()
	case ResourceCategories, ResourceGenres, ResourceTitles:
		if verb.Safe() {
			return true
		}
		return caller.isAdmin()
	case ResourceReviews, ResourceComments:
		if verb.Safe() {
			return true
		}
		return caller.Authenticated
	}
	return false
}

// AllowObject is the object-level check, applied to update and delete on
// reviews and comments once the object is loaded: the author, moderators,
// admins, and superusers may mutate; everyone else is denied.
func AllowObject(verb Verb, resource Resource, caller Caller, authorID uint) bool {
	if verb.Safe() {
		return true
	}
	if !caller.Authenticated {
		return false
	}
	switch resource {
	case ResourceReviews, ResourceComments:
		if verb == VerbUpdate || verb == VerbDelete {
			return caller.UserID == authorID || caller.isStaff()
		}
		return Allow(verb, resource, caller)
	default:
		return Allow(verb, resource, caller)
	}
}
