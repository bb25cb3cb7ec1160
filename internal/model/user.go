package model

import (
	"strings"

	"github.com/iliyamo/stayhub/internal/utils"
	"github.com/iliyamo/stayhub/internal/validate"
)

const maxNameLen = 50

// User represents a registered account.  A user owns zero or more places
// and authors zero or more reviews.  PasswordHash holds the bcrypt hash of
// the credential; the plaintext is never stored and read operations never
// expose the hash.
type User struct {
	Base
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	IsAdmin      bool   `json:"is_admin"`
}

// UserUpdate is a partial payload for mutating a user.  Nil fields are
// left untouched.  Id, timestamps and the admin flag are not reachable
// through it at all.
type UserUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
}

// NewUser validates all field-level constraints, hashes the password with
// the given bcrypt cost, and returns the new user.  Every violated
// constraint is reported in one aggregated ValidationError.
func NewUser(firstName, lastName, email, password string, cost int) (*User, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = strings.ToLower(strings.TrimSpace(email))

	var vs validate.Violations
	vs.Required("first_name", firstName)
	vs.MaxLen("first_name", firstName, maxNameLen)
	vs.Required("last_name", lastName)
	vs.MaxLen("last_name", lastName, maxNameLen)
	if email == "" {
		vs.Add("email", "must not be empty")
	} else {
		vs.Email("email", email)
	}
	if password == "" {
		vs.Add("password", "must not be empty")
	} else {
		vs.Password("password", password)
	}
	if err := vs.Err(); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return nil, err
	}
	return &User{
		Base:         NewBase(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
	}, nil
}

// Validate reports the payload's field-level violations without applying
// it.  Handlers use it so responses already carrying other violations can
// fold the field problems in instead of reporting them one request later.
func (upd UserUpdate) Validate() error {
	var vs validate.Violations
	upd.check(&vs)
	return vs.Err()
}

// check runs the field rules and returns the normalized values that a
// subsequent apply would write.
func (upd UserUpdate) check(vs *validate.Violations) (first, last, email string) {
	if upd.FirstName != nil {
		first = strings.TrimSpace(*upd.FirstName)
		vs.Required("first_name", first)
		vs.MaxLen("first_name", first, maxNameLen)
	}
	if upd.LastName != nil {
		last = strings.TrimSpace(*upd.LastName)
		vs.Required("last_name", last)
		vs.MaxLen("last_name", last, maxNameLen)
	}
	if upd.Email != nil {
		email = strings.ToLower(strings.TrimSpace(*upd.Email))
		if email == "" {
			vs.Add("email", "must not be empty")
		} else {
			vs.Email("email", email)
		}
	}
	if upd.Password != nil {
		if *upd.Password == "" {
			vs.Add("password", "must not be empty")
		} else {
			vs.Password("password", *upd.Password)
		}
	}
	return first, last, email
}

// ApplyUpdate re-validates only the fields present in the payload, applies
// them and refreshes UpdatedAt.  On any violation the user is left
// unchanged.
func (u *User) ApplyUpdate(upd UserUpdate, cost int) error {
	var vs validate.Violations
	first, last, email := upd.check(&vs)
	if err := vs.Err(); err != nil {
		return err
	}

	if upd.FirstName != nil {
		u.FirstName = first
	}
	if upd.LastName != nil {
		u.LastName = last
	}
	if upd.Email != nil {
		u.Email = email
	}
	if upd.Password != nil {
		hash, err := utils.HashPassword(*upd.Password, cost)
		if err != nil {
			return err
		}
		u.PasswordHash = hash
	}
	u.Touch()
	return nil
}

// Clone returns an independent copy.
func (u *User) Clone() *User {
	cp := *u
	return &cp
}
