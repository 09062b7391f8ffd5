package service

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"careassess/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService issues and validates clinician and reviewer tokens. It
// establishes identity only; workflow authorization (who may review
// whose assessment) is enforced by the collaborating backend.
type AuthService struct {
	clinicianUsername string
	clinicianPassword string
	reviewerUsername  string
	reviewerPassword  string
	jwtSecret         []byte
}

// NewAuthService creates a new auth service
func NewAuthService() *AuthService {
	clinicianUser := envOr("CLINICIAN_USERNAME", "clinician")
	clinicianPass := envOr("CLINICIAN_PASSWORD", "clinician123")
	reviewerUser := envOr("REVIEWER_USERNAME", "reviewer")
	reviewerPass := envOr("REVIEWER_PASSWORD", "reviewer123")
	secret := envOr("JWT_SECRET", "super-secret-key-change-in-production")

	return &AuthService{
		clinicianUsername: clinicianUser,
		clinicianPassword: clinicianPass,
		reviewerUsername:  reviewerUser,
		reviewerPassword:  reviewerPass,
		jwtSecret:         []byte(secret),
	}
}

func envOr(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// Login validates credentials and returns a role-scoped token
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	var role model.Role
	switch {
	case username == s.clinicianUsername && password == s.clinicianPassword:
		role = model.RoleClinician
	case username == s.reviewerUsername && password == s.reviewerPassword:
		role = model.RoleReviewer
	default:
		return nil, ErrInvalidCredentials
	}

	userID := string(role) + "_" + uuid.New().String()[:8]

	claims := &model.UserClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(12 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:  tokenString,
		UserID: userID,
		Role:   role,
	}, nil
}

// ValidateToken validates a JWT and returns its claims
func (s *AuthService) ValidateToken(tokenString string) (*model.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
