package domain

// SessionCookieName is the cookie holding the signed session token.
const SessionCookieName = "auth-token"

// ProfileCookieName identifies one browser profile for drafts and forms.
const ProfileCookieName = "draft-profile"

// Identity is the operator embedded in a session token.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}
