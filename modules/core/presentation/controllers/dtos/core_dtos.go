package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/crewcall-hq/crewcall/modules/core/domain/aggregates/organization"
	"github.com/crewcall-hq/crewcall/modules/core/domain/aggregates/user"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateUserRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type OrganizationResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateOrganizationRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type MembershipResponse struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organizationId"`
	UserID         uuid.UUID `json:"userId"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"createdAt"`
}

type AddMemberRequest struct {
	UserID uuid.UUID `json:"userId"`
	Role   string    `json:"role"`
}

func UserToResponse(u user.User) UserResponse {
	return UserResponse{
		ID:        u.ID(),
		Email:     u.Email(),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}

func OrganizationToResponse(o organization.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:        o.ID(),
		Name:      o.Name(),
		Type:      string(o.Type()),
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}
}

func MembershipToResponse(m organization.Membership) MembershipResponse {
	return MembershipResponse{
		ID:             m.ID(),
		OrganizationID: m.OrganizationID(),
		UserID:         m.UserID(),
		Role:           string(m.Role()),
		CreatedAt:      m.CreatedAt(),
	}
}
