package domain

// Session identifies the authenticated caller for the duration of one
// operation. It is produced by the auth layer and passed by value into
// every service call that needs a permission check.
type Session struct {
	UserID int64
	Name   string
	Role   Role
}

// Can reports whether the session's role grants the permission.
func (s Session) Can(p Permission) bool {
	return s.Role.Allowed(p)
}
