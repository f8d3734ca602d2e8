package entity

// Profile is the logged-in user's account snapshot as reported by the
// backend. It is replaced wholesale on every fetch, never patched.
type Profile struct {
	ID       int64
	Username string
	Email    string
}

// Registration carries the fields a new account is created from.
type Registration struct {
	Username string
	Email    string
	Password string
}

// Validate validates the registration fields before any request is issued.
func (r *Registration) Validate() error {
	if r.Username == "" {
		return ErrInvalidUsername
	}
	if r.Email == "" {
		return ErrInvalidEmail
	}
	if r.Password == "" {
		return ErrInvalidPassword
	}
	return nil
}
