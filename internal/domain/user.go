package domain

import (
	"fmt"
	"time"
)

// User-specific validation errors
var (
	// ErrUserNameEmpty is returned when a user's name is empty.
	ErrUserNameEmpty = fmt.Errorf("%w: user name cannot be empty", ErrValidation)

	// ErrUserEmailEmpty is returned when a user's email is empty.
	ErrUserEmailEmpty = fmt.Errorf("%w: user email cannot be empty", ErrValidation)
)

// User represents a registered user of the bookkeeping service.
// A user owns zero or more credit cards; deleting a user cascades to
// its cards and their balance history.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUser creates a new User with the given name and email.
// The ID is assigned by the store on creation.
// Returns an error if validation fails.
func NewUser(name, email string) (*User, error) {
	user := &User{
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrUserNameEmpty
	}

	if u.Email == "" {
		return ErrUserEmailEmpty
	}

	return nil
}
