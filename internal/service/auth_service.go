// FILE: internal/service/auth_service.go
package service

import (
	"context"
	"errors"
	"time"

	"learnloop-be/internal/dto"
	"learnloop-be/internal/entity"
	"learnloop-be/internal/pkg/apperror"
	"learnloop-be/internal/pkg/logger"
	"learnloop-be/internal/pkg/serverutils"
	"learnloop-be/internal/repository/contract"
	"learnloop-be/internal/repository/specification"
	"learnloop-be/internal/repository/unitofwork"
	"learnloop-be/pkg/cache"

	"github.com/google/uuid"
)

type IAuthService interface {
	GoogleLogin(ctx context.Context, req *dto.GoogleLoginRequest) (*dto.AuthResponse, error)
	GoogleLoginURL(state string) string
	GoogleCallback(ctx context.Context, code string) (*dto.AuthResponse, error)
	GetCurrentUser(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	oauth      IOAuthService
	cache      *cache.SafeStore
	jwtSecret  string
	jwtTTL     time.Duration
	logger     logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	oauth IOAuthService,
	store *cache.SafeStore,
	jwtSecret string,
	jwtTTL time.Duration,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		oauth:      oauth,
		cache:      store,
		jwtSecret:  jwtSecret,
		jwtTTL:     jwtTTL,
		logger:     log,
	}
}

func toUserResponse(u *entity.User) dto.UserResponse {
	categories := u.Categories
	if categories == nil {
		categories = []string{}
	}
	return dto.UserResponse{
		Id:         u.Id,
		Name:       u.Name,
		Email:      u.Email,
		Avatar:     u.Avatar,
		Categories: categories,
		DailyGoal:  u.DailyGoal,
		CreatedAt:  u.CreatedAt,
	}
}

func (s *authService) GoogleLogin(ctx context.Context, req *dto.GoogleLoginRequest) (*dto.AuthResponse, error) {
	var (
		profile *GoogleProfile
		err     error
	)
	switch {
	case req.AccessToken != "":
		profile, err = s.oauth.ProfileFromAccessToken(ctx, req.AccessToken)
	case req.Code != "":
		profile, err = s.oauth.ProfileFromCode(ctx, req.Code)
	default:
		return nil, apperror.BadRequest("No valid authentication data provided")
	}
	if err != nil {
		return nil, err
	}
	return s.login(ctx, profile)
}

func (s *authService) GoogleLoginURL(state string) string {
	return s.oauth.GetLoginURL(state)
}

func (s *authService) GoogleCallback(ctx context.Context, code string) (*dto.AuthResponse, error) {
	if code == "" {
		return nil, apperror.BadRequest("Missing code")
	}
	profile, err := s.oauth.ProfileFromCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.login(ctx, profile)
}

// login upserts the user behind a verified Google profile and issues a session token.
func (s *authService) login(ctx context.Context, profile *GoogleProfile) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: profile.Email})
	if err != nil {
		return nil, err
	}

	if user == nil {
		user = &entity.User{
			Id:         uuid.New(),
			Name:       profile.Name,
			Email:      profile.Email,
			Avatar:     profile.Picture,
			Categories: []string{},
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
		err = uow.UserRepository().Create(ctx, user)
		if errors.Is(err, contract.ErrDuplicateKey) {
			// a concurrent first login created the row
			user, err = uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: profile.Email})
		}
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, apperror.Internal("Failed to create user", nil)
		}
		s.logger.Info("AUTH", "New user registered", map[string]interface{}{"user_id": user.Id})
	} else if user.Avatar != profile.Picture || (profile.Name != "" && user.Name != profile.Name) {
		user.Avatar = profile.Picture
		if profile.Name != "" {
			user.Name = profile.Name
		}
		if err := uow.UserRepository().Update(ctx, user); err != nil {
			return nil, err
		}
	}

	token, err := serverutils.GenerateToken(s.jwtSecret, user.Id, s.jwtTTL)
	if err != nil {
		return nil, apperror.Internal("Failed to sign token", err)
	}

	res := toUserResponse(user)
	s.cache.Set(ctx, cache.UserKey(user.Id), res, cache.UserTTL)

	return &dto.AuthResponse{
		Token: token,
		User:  res,
	}, nil
}

func (s *authService) GetCurrentUser(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	var cached dto.UserResponse
	if s.cache.Get(ctx, cache.UserKey(userId), &cached) {
		return &cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	res := toUserResponse(user)
	s.cache.Set(ctx, cache.UserKey(userId), res, cache.UserTTL)
	return &res, nil
}
