package models

import "time"

const UserTable = "lib_users"

// Roles. A librarian holds every catalog permission, a member may only
// place borrow requests.
const (
	RoleMember    = "member"
	RoleLibrarian = "librarian"
)

type User struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	Username     string `gorm:"uniqueIndex;size:255;not null" json:"username"` // email address
	DisplayName  string `gorm:"size:255;not null" json:"displayName"`
	PasswordHash []byte `gorm:"not null" json:"-"`
	Role         string `gorm:"size:20;not null;default:'member'" json:"role"`

	LastLoginAt *time.Time `gorm:"index" json:"lastLoginAt,omitempty"`
	LoginCount  int64      `gorm:"not null;default:0" json:"loginCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return UserTable }

func (u *User) IsLibrarian() bool { return u.Role == RoleLibrarian }

// Permissions returns the catalog permissions granted by the user's role.
func (u *User) Permissions() []string {
	if u.IsLibrarian() {
		return []string{PermCanMarkReturned, PermCanRenew, PermCanBorrow}
	}
	return []string{PermCanBorrow}
}
