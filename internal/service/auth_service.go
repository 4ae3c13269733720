package service

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/inkstone-cms/internal/config"
	"github.com/inkstone-cms/internal/constants"
	"github.com/inkstone-cms/internal/models"
	"github.com/inkstone-cms/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 认证与账号业务逻辑
type AuthService struct {
	users       repository.UserRepository
	roles       repository.RoleRepository
	secret      []byte
	expire      time.Duration
	passwordCfg config.PasswordPolicyConfig
}

// NewAuthService 创建认证服务
func NewAuthService(
	users repository.UserRepository,
	roles repository.RoleRepository,
	jwtCfg config.JWTConfig,
	passwordCfg config.PasswordPolicyConfig,
) *AuthService {
	return &AuthService{
		users:       users,
		roles:       roles,
		secret:      []byte(jwtCfg.SecretKey),
		expire:      time.Duration(jwtCfg.ExpireHours) * time.Hour,
		passwordCfg: passwordCfg,
	}
}

// JWTClaims 令牌负载
type JWTClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// RegisterInput 注册请求
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput 登录请求
type LoginInput struct {
	Email    string
	Password string
}

// validatePassword 按配置的密码策略校验
func (s *AuthService) validatePassword(password string) error {
	minLength := s.passwordCfg.MinLength
	if minLength <= 0 {
		minLength = 8
	}
	if len(password) < minLength {
		return NewValidationError("password", fmt.Sprintf("password must be at least %d characters", minLength))
	}

	var hasUpper, hasLower, hasNumber bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		}
	}
	if s.passwordCfg.RequireUpper && !hasUpper {
		return NewValidationError("password", "password must contain an uppercase letter")
	}
	if s.passwordCfg.RequireLower && !hasLower {
		return NewValidationError("password", "password must contain a lowercase letter")
	}
	if s.passwordCfg.RequireNumber && !hasNumber {
		return NewValidationError("password", "password must contain a number")
	}
	return nil
}

// Register 注册新用户，默认授予 writer 角色
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if username == "" {
		return nil, NewValidationError("username", "username is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, NewValidationError("email", "valid email is required")
	}
	if err := s.validatePassword(input.Password); err != nil {
		return nil, err
	}

	if count, err := s.users.CountByUsername(username); err != nil {
		return nil, err
	} else if count > 0 {
		return nil, ErrUsernameExists
	}
	if count, err := s.users.CountByEmail(email); err != nil {
		return nil, err
	} else if count > 0 {
		return nil, ErrEmailExists
	}

	role, err := s.roles.GetByName(constants.RoleWriter)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("role %q not seeded", constants.RoleWriter)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		RoleID:       role.ID,
		Role:         role,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 邮箱密码登录，成功返回用户与令牌
func (s *AuthService) Login(input LoginInput) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GenerateToken 签发 HS256 令牌
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.RoleName(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expire)),
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken 解析并校验令牌
func (s *AuthService) ParseToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// GetUser 根据 ID 获取用户
func (s *AuthService) GetUser(id uint) (*models.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}
