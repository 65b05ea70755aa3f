package storefront

import (
	"sync"

	"github.com/MikeMC777/cafe-altura/internal/auth"
	"github.com/MikeMC777/cafe-altura/internal/user"
)

// Session is the logged-in state of one storefront run.
type Session struct {
	mu    sync.RWMutex
	user  *user.User
	token string
}

func NewSession() *Session { return &Session{} }

func (s *Session) Login(u user.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u
	s.token = token
}

func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
}

func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func (s *Session) User() (user.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return user.User{}, false
	}
	return *s.user, true
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) IsAdmin() bool {
	u, ok := s.User()
	return ok && u.Role == auth.RoleAdmin
}
