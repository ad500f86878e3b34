package domain

// User is the business profile behind the authenticated session.
type User struct {
	ID               string    `json:"id"`
	BusinessName     string    `json:"businessName"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	SubscriptionPlan string    `json:"subscriptionPlan,omitempty"`
	CreatedAt        Timestamp `json:"createdAt,omitempty"`
}

// Credentials is the durable token pair. Presence of the access token is the
// sole authentication predicate; no expiry is parsed client-side.
type Credentials struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// IsAnonymous reports whether the pair carries no access token.
func (c Credentials) IsAnonymous() bool { return c.Token == "" }

// AuthSession is the payload returned by register and login.
type AuthSession struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
	Message      string `json:"message,omitempty"`
}
