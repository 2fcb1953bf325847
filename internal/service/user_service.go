package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/prathibhasolutions/prathibha-tech/internal/middleware"
	"github.com/prathibhasolutions/prathibha-tech/internal/model"
	"github.com/prathibhasolutions/prathibha-tech/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DTOs for Request validation
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=admin staff"`
}

type UpdateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" binding:"omitempty,email"`
	Role     string `json:"role" binding:"omitempty,oneof=admin staff"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

type LoginUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenPairResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// DTO for returning User without exposing sensitive data (e.g. password)
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

// UserService defines the interface for business logic related to User
type UserService interface {
	CreateUser(ctx context.Context, actor Actor, req CreateUserRequest) (*UserResponse, error)
	Login(ctx context.Context, remoteAddr string, req LoginUserRequest) (*TokenPairResponse, error)
	Logout(ctx context.Context, actor Actor, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string) (*TokenPairResponse, error)
	GetUserByID(ctx context.Context, id string) (*UserResponse, error)
	ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error)
	UpdateUser(ctx context.Context, actor Actor, id string, req UpdateUserRequest) (*UserResponse, error)
	DeleteUser(ctx context.Context, actor Actor, id string) error
}

type userService struct {
	repo      repository.UserRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
	now       func() time.Time
}

// NewUserService returns a new instance of UserService
func NewUserService(
	repo repository.UserRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) UserService {
	return &userService{
		repo:      repo,
		auditRepo: auditRepo,
		txManager: txManager,
		now:       time.Now,
	}
}

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// Helper: parse model to standard json API response
func mapToResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

func (s *userService) CreateUser(ctx context.Context, actor Actor, req CreateUserRequest) (*UserResponse, error) {
	if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
		return nil, errors.New("username already exists")
	}
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, errors.New("email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     req.Role,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.repo.Create(txCtx, user); createErr != nil {
			return createErr
		}
		event := auditEvent(actor, model.AuditActionAdd, "User", user.ID.String(), user.Username, "")
		return s.auditRepo.Record(txCtx, event)
	})
	if err != nil {
		return nil, err
	}

	return mapToResponse(user), nil
}

func (s *userService) Login(ctx context.Context, remoteAddr string, req LoginUserRequest) (*TokenPairResponse, error) {
	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, errors.New("invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid username or password")
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	actor := Actor{UserID: &user.ID, Username: user.Username, RemoteAddr: remoteAddr}
	event := auditEvent(actor, model.AuditActionLogin, "User", user.ID.String(), user.Username, "")
	if auditErr := s.auditRepo.Record(ctx, event); auditErr != nil {
		return nil, fmt.Errorf("failed to record audit event: %w", auditErr)
	}

	return pair, nil
}

func (s *userService) Logout(ctx context.Context, actor Actor, refreshToken string) error {
	if refreshToken != "" {
		if err := s.repo.DeleteRefreshToken(ctx, refreshToken); err != nil {
			return fmt.Errorf("failed to revoke refresh token: %w", err)
		}
	}

	var entityID string
	if actor.UserID != nil {
		entityID = actor.UserID.String()
	}
	event := auditEvent(actor, model.AuditActionLogout, "User", entityID, actor.Username, "")
	return s.auditRepo.Record(ctx, event)
}

func (s *userService) Refresh(ctx context.Context, refreshToken string) (*TokenPairResponse, error) {
	stored, err := s.repo.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, errors.New("invalid refresh token")
	}
	if s.now().After(stored.ExpiresAt) {
		_ = s.repo.DeleteRefreshToken(ctx, refreshToken)
		return nil, errors.New("refresh token expired")
	}

	user, err := s.repo.GetByID(ctx, stored.UserID.String())
	if err != nil {
		return nil, errors.New("user not found")
	}

	// Rotate: old token out, new pair in.
	if err := s.repo.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	return s.issueTokens(ctx, user)
}

func (s *userService) issueTokens(ctx context.Context, user *model.User) (*TokenPairResponse, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"role":     user.Role,
		"exp":      now.Add(accessTokenTTL).Unix(),
		"iat":      now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := token.SignedString(middleware.GetJWTSecret())
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	refreshToken, err := randomToken()
	if err != nil {
		return nil, errors.New("failed to generate refresh token")
	}
	if err := s.repo.SaveRefreshToken(ctx, &model.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: now.Add(refreshTokenTTL),
	}); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         *mapToResponse(user),
	}, nil
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("user not found")
	}
	return mapToResponse(user), nil
}

func (s *userService) ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	users, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	var responses []UserResponse
	for _, u := range users {
		responses = append(responses, *mapToResponse(&u))
	}

	return responses, total, nil
}

func (s *userService) UpdateUser(ctx context.Context, actor Actor, id string, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("user not found")
	}

	if req.Role != "" {
		user.Role = req.Role
	}

	if req.Username != "" && req.Username != user.Username {
		if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
			return nil, errors.New("username already exists")
		}
		user.Username = req.Username
	}

	if req.Email != "" && req.Email != user.Email {
		if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
			return nil, errors.New("email already exists")
		}
		user.Email = req.Email
	}

	if req.Password != "" {
		hashed, hashErr := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, errors.New("failed to hash password")
		}
		user.Password = string(hashed)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.repo.Update(txCtx, user); updateErr != nil {
			return updateErr
		}
		event := auditEvent(actor, model.AuditActionChange, "User", user.ID.String(), user.Username, "")
		return s.auditRepo.Record(txCtx, event)
	})
	if err != nil {
		return nil, err
	}

	return mapToResponse(user), nil
}

func (s *userService) DeleteUser(ctx context.Context, actor Actor, id string) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.New("user not found")
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if deleteErr := s.repo.Delete(txCtx, id); deleteErr != nil {
			return deleteErr
		}
		event := auditEvent(actor, model.AuditActionDelete, "User", id, user.Username, "")
		return s.auditRepo.Record(txCtx, event)
	})
}
