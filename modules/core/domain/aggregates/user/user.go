package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	id        uuid.UUID
	tenantID  uuid.UUID
	email     string
	firstName string
	lastName  string
	createdAt time.Time
	updatedAt time.Time
}

func New(tenantID uuid.UUID, email, firstName, lastName string) User {
	return User{
		tenantID:  tenantID,
		email:     normalizeEmail(email),
		firstName: strings.TrimSpace(firstName),
		lastName:  strings.TrimSpace(lastName),
	}
}

func Hydrate(
	id uuid.UUID,
	tenantID uuid.UUID,
	email string,
	firstName string,
	lastName string,
	createdAt time.Time,
	updatedAt time.Time,
) User {
	return User{
		id:        id,
		tenantID:  tenantID,
		email:     normalizeEmail(email),
		firstName: strings.TrimSpace(firstName),
		lastName:  strings.TrimSpace(lastName),
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (u User) ID() uuid.UUID        { return u.id }
func (u User) TenantID() uuid.UUID  { return u.tenantID }
func (u User) Email() string        { return u.email }
func (u User) FirstName() string    { return u.firstName }
func (u User) LastName() string     { return u.lastName }
func (u User) CreatedAt() time.Time { return u.createdAt }
func (u User) UpdatedAt() time.Time { return u.updatedAt }
func (u User) IsZero() bool         { return u.id == uuid.Nil && u.email == "" }

func (u User) FullName() string {
	return strings.TrimSpace(u.firstName + " " + u.lastName)
}

func normalizeEmail(v string) string { return strings.ToLower(strings.TrimSpace(v)) }
