package models

import "time"

// Role is one of the marketplace actor kinds a user can hold.
type Role string

const (
	RoleBuyer       Role = "buyer"
	RoleAgent       Role = "agent"
	RoleTransporter Role = "transporter"
	RoleAdmin       Role = "admin"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleBuyer, RoleAgent, RoleTransporter, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	UserID       string    `json:"userid" bson:"userid"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"`
	Password     string    `json:"-" bson:"password"`
	HeldRoles    []Role    `json:"roles" bson:"roles"`
	ActiveRole   Role      `json:"active_role" bson:"active_role"`
	Name         string    `json:"name,omitempty" bson:"name,omitempty"`
	PhoneNumber  string    `json:"phone_number,omitempty" bson:"phone_number,omitempty"`
	Address      string    `json:"address,omitempty" bson:"address,omitempty"`
	Avatar       string    `json:"avatar,omitempty" bson:"avatar,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
	LastLogin    time.Time `json:"last_login" bson:"last_login"`
	RefreshToken string    `json:"-" bson:"refresh_token,omitempty"`
	RefreshExp   time.Time `json:"-" bson:"refresh_expiry,omitempty"`
}

// HasRole reports whether the user holds r at all, regardless of which
// role they are currently acting under.
func (u *User) HasRole(r Role) bool {
	for _, held := range u.HeldRoles {
		if held == r {
			return true
		}
	}
	return false
}

// CanAct reports whether the user may operate as r right now: the role
// must be held and must be the active one. Admins may act as any role
// they hold without switching.
func (u *User) CanAct(r Role) bool {
	if !u.HasRole(r) {
		return false
	}
	return u.ActiveRole == r || u.HasRole(RoleAdmin)
}
