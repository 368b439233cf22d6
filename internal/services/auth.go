package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Riwantoro/Toro-Chat/internal/models"
	"github.com/Riwantoro/Toro-Chat/internal/store"
)

// Identity is a verified (user, role) pair.
type Identity struct {
	UserID string
	Role   models.Role
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

// IdentityVerifier turns a bearer credential into a verified identity.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// AuthService issues and verifies JWT credentials and manages the
// registration/approval lifecycle.
type AuthService struct {
	store     *store.Store
	secret    []byte
	expiresIn time.Duration
}

// NewAuthService constructs an AuthService.
func NewAuthService(st *store.Store, secret []byte, expiresIn time.Duration) *AuthService {
	return &AuthService{store: st, secret: secret, expiresIn: expiresIn}
}

// BootstrapAdmin ensures the admin account exists. Called once at startup.
func (s *AuthService) BootstrapAdmin(email, password string) error {
	if _, ok := s.store.UserByEmail(email); ok {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	s.store.CreateUser(models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  "Admin",
		Status:       models.StatusActive,
		Role:         models.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	})
	log.Printf("admin account bootstrapped email=%s", email)
	return nil
}

// Register creates a pending account. Pending users cannot log in until an
// admin approves them.
func (s *AuthService) Register(ctx context.Context, email, password, displayName string) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		Status:       models.StatusPending,
		Role:         models.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	if !s.store.CreateUser(user) {
		return models.User{}, ErrEmailTaken
	}
	return user, nil
}

// Login checks credentials and issues a signed token for active accounts.
// A valid password on a pending account fails with ErrPendingApproval.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, models.User, error) {
	user, ok := s.store.UserByEmail(email)
	if !ok {
		return "", models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", models.User{}, ErrInvalidCredentials
	}
	if user.Status != models.StatusActive {
		return "", models.User{}, ErrPendingApproval
	}

	token, err := s.signToken(user)
	if err != nil {
		return "", models.User{}, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}

// Verify parses and validates a token and returns the identity it carries.
func (s *AuthService) Verify(ctx context.Context, tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || role == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: sub, Role: models.Role(role)}, nil
}

// ListPending returns accounts awaiting approval.
func (s *AuthService) ListPending(ctx context.Context) ([]models.User, error) {
	return s.store.PendingUsers(), nil
}

// Approve activates a pending account.
func (s *AuthService) Approve(ctx context.Context, userID string) (models.User, error) {
	user, ok := s.store.ApproveUser(userID)
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

// ListActiveUsers returns active users other than the caller, for the
// contact picker.
func (s *AuthService) ListActiveUsers(ctx context.Context, userID string) ([]models.PublicUser, error) {
	users := s.store.ActiveUsersExcept(userID)
	result := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		result = append(result, u.Public())
	}
	return result, nil
}

func (s *AuthService) signToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(s.expiresIn).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
