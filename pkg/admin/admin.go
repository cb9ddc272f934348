package admin

import "golang.org/x/crypto/bcrypt"

// Session is an explicit capability passed into privileged operations,
// instead of process-wide login state.
type Session struct {
	username     string
	passwordHash []byte
	loggedIn     bool
}

// NewSession prepares a session gate for the given credentials. The
// plaintext password is hashed immediately and not retained.
func NewSession(username, password string) *Session {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), 10)
	return &Session{username: username, passwordHash: hash}
}

// Login checks the credentials case-sensitively and marks the session
// authenticated on success.
func (s *Session) Login(username, password string) bool {
	if username != s.username {
		return false
	}
	if bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) != nil {
		return false
	}
	s.loggedIn = true
	return true
}

func (s *Session) Logout() {
	s.loggedIn = false
}

func (s *Session) IsLoggedIn() bool {
	return s.loggedIn
}
