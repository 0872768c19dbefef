package domain

// Caller is the authenticated principal of a request.
type Caller struct {
	UserID UserID
	Roles  []RoleCode
}

// HasRole reports whether the caller holds the given role.
func (c *Caller) HasRole(role RoleCode) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// AppContext is the per-request value carried into command and query handlers.
// A nil User means the request is anonymous.
type AppContext struct {
	User *Caller
}

// Authenticated reports whether the request carries an authenticated user.
func (c AppContext) Authenticated() bool { return c.User != nil }
