package services

import (
	"context"
	"errors"

	"procurement-system/internal/dto"
	"procurement-system/internal/repositories"
	apperrors "procurement-system/pkg/errors"
	"procurement-system/pkg/service"
	"procurement-system/pkg/utils"

	"go.uber.org/zap"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (dto.TokenPairDTO, error)
	Refresh(ctx context.Context, refreshToken string) (dto.TokenPairDTO, error)
	Profile(ctx context.Context, userID uint64) (dto.ProfileDTO, error)
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (dto.TokenPairDTO, error) {
	user, err := s.userRepo.FindByLogin(ctx, payload.Login)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return dto.TokenPairDTO{}, apperrors.ErrInvalidCredentials
		}
		return dto.TokenPairDTO{}, err
	}

	if !utils.CheckPasswordHash(payload.Password, user.PasswordHash) {
		s.logger.Warn("failed login attempt", zap.String("login", payload.Login))
		return dto.TokenPairDTO{}, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(user.ID)
	if err != nil {
		return dto.TokenPairDTO{}, err
	}
	return dto.TokenPairDTO{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (dto.TokenPairDTO, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return dto.TokenPairDTO{}, err
	}
	if !claims.IsRefreshToken {
		return dto.TokenPairDTO{}, apperrors.ErrTokenIsNotRefresh
	}

	// Re-check the user still exists before minting a fresh pair.
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return dto.TokenPairDTO{}, apperrors.ErrUnauthorized
		}
		return dto.TokenPairDTO{}, err
	}

	accessToken, newRefreshToken, err := s.jwtService.GenerateTokens(user.ID)
	if err != nil {
		return dto.TokenPairDTO{}, err
	}
	return dto.TokenPairDTO{AccessToken: accessToken, RefreshToken: newRefreshToken}, nil
}

func (s *AuthService) Profile(ctx context.Context, userID uint64) (dto.ProfileDTO, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return dto.ProfileDTO{}, err
	}
	allowed, err := s.userRepo.GetAllowedStatuses(ctx, userID)
	if err != nil {
		return dto.ProfileDTO{}, err
	}
	return dto.ProfileDTO{
		ID:              user.ID,
		Login:           user.Login,
		Fio:             user.Fio,
		Phone:           user.Phone,
		IsPrimaryAdmin:  user.IsPrimaryAdmin,
		AllowedStatuses: allowed,
	}, nil
}
