package services

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"shopfront/internal/apperr"
	"shopfront/internal/domain"
	"shopfront/internal/repos"
)

var ErrBadCreds = apperr.New("UNAUTHORIZED", "invalid email or password", 401)

type AuthService struct {
	Users *repos.UserRepo
}

func NewAuthService(users *repos.UserRepo) *AuthService { return &AuthService{Users: users} }

// Register creates a USER account. Admin accounts are only created via
// RegisterWithRole behind the admin guard.
func (s *AuthService) Register(email, name, password string) (*domain.User, error) {
	return s.RegisterWithRole(email, name, password, "USER")
}

func (s *AuthService) RegisterWithRole(email, name, password, role string) (*domain.User, error) {
	if role != "USER" && role != "ADMIN" {
		return nil, apperr.Validation("role must be USER or ADMIN")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	u := &domain.User{ID: uuid.NewString(), Email: email, Name: name, Hash: string(h), Role: role}
	if err := s.Users.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies credentials and binds the session id to the user.
func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, ErrBadCreds
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}

// AllUsers lists every account for the admin surface.
func (s *AuthService) AllUsers() ([]domain.User, error) {
	return s.Users.List()
}
