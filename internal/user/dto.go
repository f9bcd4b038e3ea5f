package user

import (
	"strings"

	"github.com/frahmantamala/crm-console/internal/core/common/validation"
	userDatamodel "github.com/frahmantamala/crm-console/internal/core/datamodel/user"
	"github.com/frahmantamala/crm-console/internal/permission"
)

const MinPasswordLength = 6

func roleNames() []string {
	roles := permission.Roles()
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

type CreateDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func (d CreateDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(100)
	v.Field("username", d.Username).Required().MaxLength(50)
	v.Field("password", d.Password).Required().MinLength(MinPasswordLength)
	v.Field("role", d.Role).OneOf(roleNames()...)

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// ToRequest trims the names and defaults the role to viewer.
func (d CreateDTO) ToRequest() userDatamodel.CreateRequest {
	role := d.Role
	if role == "" {
		role = string(permission.RoleViewer)
	}
	return userDatamodel.CreateRequest{
		Username: strings.TrimSpace(d.Username),
		Password: d.Password,
		Name:     strings.TrimSpace(d.Name),
		Role:     role,
	}
}

// UpdateDTO changes name and role. An empty password keeps the current one.
type UpdateDTO struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

func (d UpdateDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(100)
	v.Field("role", d.Role).Required().OneOf(roleNames()...)
	if d.Password != "" {
		v.Field("password", d.Password).MinLength(MinPasswordLength)
	}

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d UpdateDTO) ToRequest() userDatamodel.UpdateRequest {
	return userDatamodel.UpdateRequest{
		Name:     strings.TrimSpace(d.Name),
		Role:     d.Role,
		Password: d.Password,
	}
}

type ListResponse struct {
	Users []Account `json:"users"`
}
