package service

import (
	"context"
	"fmt"
	"time"

	"dating-app-be/internal/apperror"
	"dating-app-be/internal/config"
	"dating-app-be/internal/dto"
	"dating-app-be/internal/entity"
	"dating-app-be/internal/pkg/mailer"
	"dating-app-be/internal/repository/specification"
	"dating-app-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ITokenStore holds the single valid refresh token per user. The Redis-backed
// implementation lives in repository/redisstore.
type ITokenStore interface {
	Save(ctx context.Context, userId uint, token string) error
	Get(ctx context.Context, userId uint) (string, error)
	Delete(ctx context.Context, userId uint) error
}

type IAuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userId uint) error
}

type authService struct {
	uowFactory   unitofwork.RepositoryFactory
	tokenStore   ITokenStore
	emailService mailer.IEmailService
	authCfg      config.AuthConfig
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	tokenStore ITokenStore,
	emailService mailer.IEmailService,
	authCfg config.AuthConfig,
) IAuthService {
	return &authService{
		uowFactory:   uowFactory,
		tokenStore:   tokenStore,
		emailService: emailService,
		authCfg:      authCfg,
	}
}

func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.TokenResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.Conflict(apperror.CodeUserAlreadyExists, "Email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &entity.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		PhoneNumber:  req.PhoneNumber,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}

	// Delivery failures must not block the signup response.
	go func() {
		if emailErr := s.emailService.SendWelcome(user.Email, user.Name); emailErr != nil {
			fmt.Printf("Error sending welcome email: %v\n", emailErr)
		}
	}()

	return s.issueTokens(ctx, user.Id)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.Unauthorized(apperror.CodeInvalidPassword, "Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.Unauthorized(apperror.CodeInvalidPassword, "Invalid email or password")
	}

	return s.issueTokens(ctx, user.Id)
}

func (s *authService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error) {
	userId, err := s.parseRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, err
	}

	stored, err := s.tokenStore.Get(ctx, userId)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if stored == "" {
		return nil, apperror.Unauthorized(apperror.CodeRefreshTokenNotFound, "Refresh token not found")
	}
	// Rotation means only the latest issued token is accepted.
	if stored != req.RefreshToken {
		return nil, apperror.Unauthorized(apperror.CodeInvalidRefreshToken, "Invalid refresh token")
	}

	return s.issueTokens(ctx, userId)
}

func (s *authService) Logout(ctx context.Context, userId uint) error {
	if err := s.tokenStore.Delete(ctx, userId); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (s *authService) issueTokens(ctx context.Context, userId uint) (*dto.TokenResponse, error) {
	now := time.Now()

	accessToken, err := s.signToken(jwt.MapClaims{
		"user_id": userId,
		"exp":     now.Add(time.Duration(s.authCfg.AccessTokenTTLMin) * time.Minute).Unix(),
		"iat":     now.Unix(),
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}

	refreshTTL := time.Duration(s.authCfg.RefreshTokenTTLDays) * 24 * time.Hour
	refreshToken, err := s.signToken(jwt.MapClaims{
		"user_id": userId,
		"typ":     "refresh",
		"exp":     now.Add(refreshTTL).Unix(),
		"iat":     now.Unix(),
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if err := s.tokenStore.Save(ctx, userId, refreshToken); err != nil {
		return nil, apperror.Internal(err)
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *authService) signToken(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.authCfg.JwtSecret))
}

func (s *authService) parseRefreshToken(tokenStr string) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.authCfg.JwtSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, apperror.Unauthorized(apperror.CodeInvalidRefreshToken, "Invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, apperror.Unauthorized(apperror.CodeInvalidRefreshToken, "Invalid refresh token")
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return 0, apperror.Unauthorized(apperror.CodeInvalidRefreshToken, "Invalid refresh token")
	}
	rawId, ok := claims["user_id"].(float64)
	if !ok {
		return 0, apperror.Unauthorized(apperror.CodeInvalidRefreshToken, "Invalid refresh token")
	}
	return uint(rawId), nil
}
