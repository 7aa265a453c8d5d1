package identity

import (
	"strings"
	"time"

	"github.com/stocker/backend/internal/domain/shared"
)

// User represents an account owning a disjoint slice of inventory data.
// Every item, partner, order and sale in the system is scoped to one user.
type User struct {
	shared.BaseAggregateRoot
	Email        string `gorm:"type:varchar(254);not null;uniqueIndex"`
	Username     string `gorm:"type:varchar(150);not null"`
	FirstName    string `gorm:"type:varchar(150)"`
	LastName     string `gorm:"type:varchar(150)"`
	PasswordHash string `gorm:"type:varchar(128);not null"`
	AvatarURL    string `gorm:"type:varchar(500)"`
	IsActive     bool   `gorm:"not null;default:true"`
	// TokenVersion invalidates outstanding refresh tokens when bumped.
	TokenVersion int `gorm:"not null;default:1"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user with the given credentials.
// passwordHash must already be hashed by the caller.
func NewUser(email, username, passwordHash string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if username == "" {
		username = email
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Password hash cannot be empty")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		Username:          username,
		PasswordHash:      passwordHash,
		IsActive:          true,
		TokenVersion:      1,
	}, nil
}

// ChangePassword replaces the password hash and bumps the token version,
// invalidating every refresh token minted before this call.
func (u *User) ChangePassword(passwordHash string) error {
	if passwordHash == "" {
		return shared.NewDomainError(shared.CodeValidation, "Password hash cannot be empty")
	}

	u.PasswordHash = passwordHash
	u.TokenVersion++
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// MatchesTokenVersion reports whether a refresh token minted with the given
// version is still acceptable.
func (u *User) MatchesTokenVersion(version int) bool {
	return u.TokenVersion == version
}

// UpdateProfile updates display fields
func (u *User) UpdateProfile(firstName, lastName string) {
	u.FirstName = firstName
	u.LastName = lastName
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// SetAvatar updates the avatar URL
func (u *User) SetAvatar(url string) {
	u.AvatarURL = url
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// RecordLogin stamps the last login time
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
}

// FullName returns the display name, falling back to the username
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError(shared.CodeValidation, "Email cannot be empty")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at+1:], ".") {
		return shared.NewDomainError(shared.CodeValidation, "Email is not valid")
	}
	if len(email) > 254 {
		return shared.NewDomainError(shared.CodeValidation, "Email cannot exceed 254 characters")
	}
	return nil
}
