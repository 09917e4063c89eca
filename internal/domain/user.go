package domain

import "time"

// TokenPair is one authenticated session: an opaque access credential plus the
// refresh credential used to renew it. A pair is either fully present or fully
// absent; partial pairs are never cached or persisted.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Empty reports whether the pair is absent.
func (p TokenPair) Empty() bool {
	return p.Access == "" || p.Refresh == ""
}

// User is the current account as seen by the client.
type User struct {
	ID     int64
	Email  string
	Status UserStatus
}

// StatusKind discriminates the subscription status variants.
type StatusKind int

const (
	StatusUnpaid StatusKind = iota
	StatusPremium
)

// UserStatus is the subscription status of an account. Premium fields are
// meaningful only when Kind is StatusPremium.
type UserStatus struct {
	Kind           StatusKind
	UserID         int64
	NextPayment    time.Time
	Active         bool
	SubscriptionID int64
}

// UserCreate represents sign-up input.
type UserCreate struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// UserLogin represents login credentials.
type UserLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// PasswordChange represents a password-change request.
type PasswordChange struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}
