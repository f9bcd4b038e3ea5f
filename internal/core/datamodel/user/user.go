package user

import "time"

// User is an account as the CRM backend returns it. Some endpoints name the
// identifier id, others _id.
type User struct {
	ID        string     `json:"id,omitempty"`
	MongoID   string     `json:"_id,omitempty"`
	Username  string     `json:"username"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"isActive"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

func (u *User) Key() string {
	if u.ID != "" {
		return u.ID
	}
	return u.MongoID
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
	Message string `json:"message,omitempty"`
}

type MeResponse struct {
	Success bool  `json:"success"`
	User    *User `json:"user"`
}

type ListResponse struct {
	Users []User `json:"users"`
}

type CreateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type UpdateRequest struct {
	Name     string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"`
	Password string `json:"password,omitempty"`
	IsActive *bool  `json:"isActive,omitempty"`
}
