package userControllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/shopfront-api/auth"
	"github.com/junaidrashid-git/shopfront-api/controllers/respond"
	"github.com/junaidrashid-git/shopfront-api/events"
	"github.com/junaidrashid-git/shopfront-api/models"
)

// Store is what account operations need from persistence.
type Store interface {
	CreateUser(ctx context.Context, u *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// -------- Request Structs --------

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminSession is the result of a successful admin login.
type AdminSession struct {
	Admin     *models.User
	Token     string
	ExpiresAt time.Time
}

// -------- Core Logic --------

type Service struct {
	store   Store
	tokens  *auth.TokenIssuer
	revoker auth.Revoker
	events  events.Publisher
}

func NewService(store Store, tokens *auth.TokenIssuer, revoker auth.Revoker, pub events.Publisher) *Service {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Service{store: store, tokens: tokens, revoker: revoker, events: pub}
}

// Signup stores a new user with a hashed password. The email must be unused.
func (s *Service) Signup(ctx context.Context, name, email, password string) (*models.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, models.ValidationError("All fields required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Name: name, Email: email, Password: hash}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, events.TopicUserCreated, gin.H{"user_id": user.ID, "name": user.Name})
	return user, nil
}

// Login checks the password for email. Unknown email and wrong password
// are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, models.ValidationError("Email and password required")
	}
	return s.authenticate(ctx, email, password, models.ErrInvalidCredentials)
}

// AdminLogin authenticates like Login and then requires the admin flag.
// The returned session carries a signed token for the /admin routes.
func (s *Service) AdminLogin(ctx context.Context, email, password string) (*AdminSession, error) {
	if email == "" || password == "" {
		return nil, models.ValidationError("Email and password required")
	}

	user, err := s.authenticate(ctx, email, password, models.ErrAdminInvalidCredentials)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin {
		return nil, models.ErrAdminsOnly
	}

	token, claims, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("sign admin token: %w", err)
	}
	return &AdminSession{Admin: user, Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// AdminLogout revokes the token described by claims until it would expire.
func (s *Service) AdminLogout(ctx context.Context, claims *auth.AdminClaims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return models.ErrAdminInvalidCredentials
	}
	if s.revoker == nil {
		return nil
	}
	return s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

func (s *Service) authenticate(ctx context.Context, email, password string, invalid error) (*models.User, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		auth.CheckPasswordDummy(password)
		return nil, invalid
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(user.Password, password) {
		return nil, invalid
	}
	return user, nil
}

// -------- Handlers --------

// POST /signup
func Signup(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Invalid(c, "All fields required")
			return
		}

		if _, err := svc.Signup(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
			respond.Error(c, err, "Signup failed")
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Signup successful"})
	}
}

// POST /login
func Login(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Invalid(c, "Email and password required")
			return
		}

		user, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respond.Error(c, err, "Login failed")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user_id": user.ID,
			"name":    user.Name,
			"message": "Login successful",
		})
	}
}
