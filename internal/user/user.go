package user

import (
	"time"

	userDatamodel "github.com/frahmantamala/crm-console/internal/core/datamodel/user"
	"github.com/frahmantamala/crm-console/internal/permission"
)

// Account is a console operator as listed by user administration.
type Account struct {
	ID        string          `json:"id"`
	Username  string          `json:"username"`
	Name      string          `json:"name"`
	Role      permission.Role `json:"role"`
	IsActive  bool            `json:"isActive"`
	CreatedAt *time.Time      `json:"createdAt,omitempty"`
}

// Protected accounts cannot be edited, deactivated or reactivated from the
// console.
func (a *Account) Protected() bool {
	return a.Role == permission.RoleSuperadmin
}

func (a *Account) StatusLabel() string {
	if a.IsActive {
		return "Active"
	}
	return "Inactive"
}

func FromDataModel(u *userDatamodel.User) Account {
	return Account{
		ID:        u.Key(),
		Username:  u.Username,
		Name:      u.Name,
		Role:      permission.Role(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

func FromDataModels(list []userDatamodel.User) []Account {
	out := make([]Account, len(list))
	for i := range list {
		out[i] = FromDataModel(&list[i])
	}
	return out
}
