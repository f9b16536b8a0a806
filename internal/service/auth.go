// Package service holds business logic that sits between the HTTP handlers
// and the store: authentication for the admin back office and storefront
// customer accounts.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/cartloom/cartloom/internal/model"
	"github.com/cartloom/cartloom/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
)

// Principal identifies an authenticated caller. Role is either "admin" or
// "customer"; the two token audiences never cross.
type Principal struct {
	ID    int64
	Email string
	Name  string
	Role  string
}

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"

	// TokenTTL is how long a login session stays valid.
	TokenTTL = 24 * time.Hour
)

type AuthService struct {
	store     *store.Store
	jwtSecret []byte
}

func NewAuthService(st *store.Store, jwtSecret string) *AuthService {
	return &AuthService{
		store:     st,
		jwtSecret: []byte(jwtSecret),
	}
}

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// LoginAdmin checks back-office credentials and returns a signed session
// token. Credential failures and unknown emails report the same error so
// the response never leaks which accounts exist.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (string, *Principal, error) {
	a, err := s.store.GetAdminByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if a.Status != model.StatusActive {
		return "", nil, ErrAccountDisabled
	}

	p := &Principal{ID: a.ID, Email: a.Email, Name: a.Name, Role: RoleAdmin}
	token, err := s.issueToken(p)
	if err != nil {
		return "", nil, err
	}
	return token, p, nil
}

// LoginCustomer checks storefront credentials and returns a signed session
// token.
func (s *AuthService) LoginCustomer(ctx context.Context, email, password string) (string, *Principal, error) {
	c, err := s.store.GetCustomerByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if c.Status != model.StatusActive {
		return "", nil, ErrAccountDisabled
	}

	p := &Principal{ID: c.ID, Email: c.Email, Name: c.Name, Role: RoleCustomer}
	token, err := s.issueToken(p)
	if err != nil {
		return "", nil, err
	}
	return token, p, nil
}

// RegisterCustomer hashes the password and creates the account, then logs
// the new customer straight in.
func (s *AuthService) RegisterCustomer(ctx context.Context, name, email, mobileNo, password string) (string, *Principal, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return "", nil, err
	}

	c := &model.Customer{Name: name, Email: email, MobileNo: mobileNo, PasswordHash: hash}
	if err := s.store.CreateCustomer(ctx, c); err != nil {
		return "", nil, err
	}

	p := &Principal{ID: c.ID, Email: c.Email, Name: c.Name, Role: RoleCustomer}
	token, err := s.issueToken(p)
	if err != nil {
		return "", nil, err
	}
	return token, p, nil
}

// ValidateToken verifies a session token and returns its principal.
func (s *AuthService) ValidateToken(tokenStr string) (*Principal, error) {
	claims := &sessionClaims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}

	return &Principal{
		ID:    claims.UserID,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  claims.Role,
	}, nil
}

func (s *AuthService) issueToken(p *Principal) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		UserID: p.ID,
		Email:  p.Email,
		Name:   p.Name,
		Role:   p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			Issuer:    "cartloom",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

type sessionClaims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
