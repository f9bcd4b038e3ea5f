package auth

import (
	"github.com/frahmantamala/crm-console/internal/core/common/validation"
	"github.com/frahmantamala/crm-console/internal/permission"
	"github.com/frahmantamala/crm-console/internal/session"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("username", d.Username).Required()
	v.Field("password", d.Password).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type LoginResponse struct {
	Success bool          `json:"success"`
	Token   string        `json:"token"`
	User    *session.User `json:"user"`
}

// MeResponse describes the caller: the account, the actions it holds per
// resource and the navigation it may see.
type MeResponse struct {
	User        *session.User                               `json:"user"`
	Permissions map[permission.Resource][]permission.Action `json:"permissions"`
	Navigation  []permission.NavItem                        `json:"navigation"`
}

func NewMeResponse(s *session.Session) MeResponse {
	return MeResponse{
		User:        s.User,
		Permissions: permission.Grants(s.Role()),
		Navigation:  permission.NavItems(s),
	}
}
