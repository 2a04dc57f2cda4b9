package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// tokenTTL matches the session lifetime the dashboard expects.
const tokenTTL = time.Hour

type Service struct {
	store  *Store
	secret []byte
}

func NewService(store *Store, secret string) *Service {
	return &Service{
		store:  store,
		secret: []byte(secret),
	}
}

var ErrInvalidCredentials = errors.New("invalid email or password")

// ValidationError reports a rejected input field before any store access.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

var emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)

func validateRegistration(name, email, password, confirm string) error {
	if name == "" {
		return &ValidationError{Field: "name", Msg: "name is required"}
	}
	if email == "" {
		return &ValidationError{Field: "email", Msg: "email is required"}
	}
	if !emailRe.MatchString(email) {
		return &ValidationError{Field: "email", Msg: "please enter a valid email"}
	}
	if password == "" {
		return &ValidationError{Field: "password", Msg: "password is required"}
	}
	if len(password) < 6 {
		return &ValidationError{Field: "password", Msg: "password must be at least 6 characters"}
	}
	if password != confirm {
		return &ValidationError{Field: "confirmPassword", Msg: "passwords do not match"}
	}
	return nil
}

func validateLogin(email, password string) error {
	if email == "" {
		return &ValidationError{Field: "email", Msg: "email is required"}
	}
	if password == "" {
		return &ValidationError{Field: "password", Msg: "password is required"}
	}
	return nil
}

// Register creates a user and issues a session token for it. The isAdmin
// flag is taken from the client as-is; see DESIGN.md before changing that.
func (s *Service) Register(ctx context.Context, name, email, password, confirm string, isAdmin bool) (*User, string, error) {
	if err := validateRegistration(name, email, password, confirm); err != nil {
		return nil, "", err
	}
	role := RoleUser
	if isAdmin {
		role = RoleAdmin
	}
	user, err := s.store.Create(ctx, name, email, password, role)
	if err != nil {
		return nil, "", err
	}
	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate returns the same ErrInvalidCredentials for an unknown email
// and for a wrong password.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, string, error) {
	if err := validateLogin(email, password); err != nil {
		return nil, "", err
	}
	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

type Claims struct {
	UserID int64  `json:"uid"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

func (s *Service) issueToken(user *User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

func (s *Service) ParseToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
