package session

const RoleAdmin = "admin"

type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token,omitempty"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserPatch lists the profile fields a merge may touch. Nil fields are left
// alone. The token is not patchable; it only changes through login and
// register.
type UserPatch struct {
	ID    *string `json:"_id,omitempty"`
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Role  *string `json:"role,omitempty"`
}

func (u User) Merge(p UserPatch) User {
	if p.ID != nil {
		u.ID = *p.ID
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	return u
}

func Field(v string) *string {
	return &v
}
