package vitals

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DefaultStorageQuotaMB is assigned to every new account
const DefaultStorageQuotaMB = 500

// User is the account model. PasswordHash is empty for accounts that only
// ever authenticated through the external identity provider; ProviderID
// holds that provider's subject for them.
type User struct {
	bun.BaseModel  `bun:"table:users,alias:usr"`
	ID             uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	ProviderID     string     `bun:"provider_id,unique,nullzero" json:"provider_id,omitempty"`
	Email          string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash   string     `bun:"password_hash" json:"-"`
	FirstName      string     `bun:"first_name" json:"first_name,omitempty"`
	LastName       string     `bun:"last_name" json:"last_name,omitempty"`
	DateOfBirth    *time.Time `bun:"date_of_birth,nullzero" json:"date_of_birth,omitempty"`
	StorageQuotaMB int        `bun:"storage_quota_mb,notnull,default:500" json:"storage_quota_mb,omitempty"`
	StorageUsedMB  float64    `bun:"storage_used_mb,notnull,default:0" json:"storage_used_mb,omitempty"`
	IsActive       bool       `bun:"is_active,notnull,default:true" json:"is_active"`
	LoggedInAt     *time.Time `bun:"loggedin_at,nullzero" json:"loggedin_at,omitempty"`
	CreatedAt      *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt      *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt      *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// FullName joins first and last name, tolerating either being empty
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// QuotaRemainingMB reports how many megabytes the user may still upload
func (u *User) QuotaRemainingMB() float64 {
	remaining := float64(u.StorageQuotaMB) - u.StorageUsedMB
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Identity returns the auth-facing view of the user
func (u *User) Identity() Identity {
	return userIdentity{
		id:        u.ID.String(),
		email:     u.Email,
		firstName: u.FirstName,
		lastName:  u.LastName,
	}
}

type userIdentity struct {
	id        string
	email     string
	firstName string
	lastName  string
}

func (a userIdentity) ID() string        { return a.id }
func (a userIdentity) Email() string     { return a.email }
func (a userIdentity) FirstName() string { return a.firstName }
func (a userIdentity) LastName() string  { return a.lastName }

var _ Identity = userIdentity{}
