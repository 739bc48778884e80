// Package models contains data structures for the application's domain models.
package models

import "time"

// Role is the permission level assigned to a user account.
type Role string

const (
	// RoleUser is the default role for self-registered accounts.
	RoleUser Role = "user"
	// RoleModerator may edit or remove any review or comment.
	RoleModerator Role = "moderator"
	// RoleAdmin has full control over every resource, including users.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// User represents an account in the Critica catalog.
//
// There is no password: identity is established by exchanging an emailed
// confirmation code for a signed access token. The stored code stays valid
// until the next signup for the same (username, email) pair overwrites it.
type User struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Username         string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email            string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	FirstName        string    `gorm:"size:150" json:"first_name"`
	LastName         string    `gorm:"size:150" json:"last_name"`
	Bio              string    `gorm:"type:text" json:"bio"`
	Role             Role      `gorm:"type:varchar(25);not null;default:'user'" json:"role"`
	Superuser        bool      `gorm:"not null;default:false" json:"-"`
	ConfirmationCode string    `gorm:"size:32" json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	Reviews  []Review  `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Comments []Comment `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsAdmin reports whether the user has administrative privileges.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Superuser
}

// IsStaff reports whether the user can moderate other users' content.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleModerator || u.Superuser
}
