// FILE: internal/service/user_service.go
package service

import (
	"context"
	"strings"

	"learnloop-be/internal/dto"
	"learnloop-be/internal/entity"
	"learnloop-be/internal/pkg/apperror"
	"learnloop-be/internal/pkg/logger"
	"learnloop-be/internal/repository/specification"
	"learnloop-be/internal/repository/unitofwork"
	"learnloop-be/pkg/cache"

	"github.com/google/uuid"
)

type IUserService interface {
	AddCategory(ctx context.Context, userId uuid.UUID, req *dto.AddCategoryRequest) ([]string, error)
	GetCategories(ctx context.Context, userId uuid.UUID) ([]string, error)
	UpdateCategory(ctx context.Context, userId uuid.UUID, req *dto.UpdateCategoryRequest) ([]string, error)
	DeleteCategory(ctx context.Context, userId uuid.UUID, req *dto.DeleteCategoryRequest) (*dto.DeleteCategoryResponse, error)
	GetDailyGoal(ctx context.Context, userId uuid.UUID) (*dto.DailyGoalResponse, error)
	SetDailyGoal(ctx context.Context, userId uuid.UUID, req *dto.DailyGoalRequest) (*dto.DailyGoalResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *cache.SafeStore
	logger     logger.ILogger
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, store *cache.SafeStore, log logger.ILogger) IUserService {
	return &userService{
		uowFactory: uowFactory,
		cache:      store,
		logger:     log,
	}
}

// lockUser loads the user row for update inside the unit's transaction.
func lockUser(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.User, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId}, specification.ForUpdate{})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}

func (s *userService) AddCategory(ctx context.Context, userId uuid.UUID, req *dto.AddCategoryRequest) ([]string, error) {
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return nil, apperror.BadRequest("Category name is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := lockUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	if user.HasCategory(category) {
		return nil, apperror.BadRequest("Category already exists")
	}

	user.Categories = append(user.Categories, category)
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.cache.Delete(ctx, cache.UserKey(userId))
	s.cache.Set(ctx, cache.CategoriesKey(userId), user.Categories, cache.CategoriesTTL)
	return user.Categories, nil
}

func (s *userService) GetCategories(ctx context.Context, userId uuid.UUID) ([]string, error) {
	var cached []string
	if s.cache.Get(ctx, cache.CategoriesKey(userId), &cached) {
		return cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	categories := user.Categories
	if categories == nil {
		categories = []string{}
	}
	s.cache.Set(ctx, cache.CategoriesKey(userId), categories, cache.CategoriesTTL)
	return categories, nil
}

func (s *userService) UpdateCategory(ctx context.Context, userId uuid.UUID, req *dto.UpdateCategoryRequest) ([]string, error) {
	oldCategory := strings.TrimSpace(req.OldCategory)
	newCategory := strings.TrimSpace(req.NewCategory)
	if oldCategory == "" || newCategory == "" {
		return nil, apperror.BadRequest("Both old and new category names are required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := lockUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	if !user.HasCategory(oldCategory) {
		return nil, apperror.BadRequest("Category does not exist")
	}
	if oldCategory == newCategory {
		return user.Categories, nil
	}
	if user.HasCategory(newCategory) {
		return nil, apperror.BadRequest("New category name already exists")
	}

	for i, c := range user.Categories {
		if c == oldCategory {
			user.Categories[i] = newCategory
		}
	}
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	affected, err := uow.PlaylistRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByCategory{Category: oldCategory},
	)
	if err != nil {
		return nil, err
	}
	if _, err := uow.PlaylistRepository().RenameCategory(ctx, userId, oldCategory, newCategory); err != nil {
		return nil, err
	}
	staleKeys, err := playlistCacheKeys(ctx, uow, affected)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.cache.Delete(ctx, append(staleKeys,
		cache.UserKey(userId),
		cache.CategoriesKey(userId),
		cache.PlaylistsKey(userId),
	)...)
	return user.Categories, nil
}

func (s *userService) DeleteCategory(ctx context.Context, userId uuid.UUID, req *dto.DeleteCategoryRequest) (*dto.DeleteCategoryResponse, error) {
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return nil, apperror.BadRequest("Category name is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := lockUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	if !user.HasCategory(category) {
		return nil, apperror.BadRequest("Category does not exist")
	}

	playlists, err := uow.PlaylistRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByCategory{Category: category},
	)
	if err != nil {
		return nil, err
	}
	if len(playlists) > 0 && !req.DeleteAssociatedPlaylists {
		return nil, apperror.BadRequest("This category has associated playlists. Set deleteAssociatedPlaylists=true to delete them along with the category.").
			WithDetails(map[string]interface{}{
				"hasPlaylists": true,
				"count":        len(playlists),
			})
	}

	staleKeys, err := playlistCacheKeys(ctx, uow, playlists)
	if err != nil {
		return nil, err
	}
	for _, p := range playlists {
		if err := deletePlaylistCascade(ctx, uow, p); err != nil {
			return nil, err
		}
	}

	remaining := make([]string, 0, len(user.Categories))
	for _, c := range user.Categories {
		if c != category {
			remaining = append(remaining, c)
		}
	}
	user.Categories = remaining
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.cache.Delete(ctx, append(staleKeys,
		cache.UserKey(userId),
		cache.PlaylistsKey(userId),
		cache.BadgesKey(userId),
	)...)
	s.cache.Set(ctx, cache.CategoriesKey(userId), user.Categories, cache.CategoriesTTL)

	return &dto.DeleteCategoryResponse{
		Categories:            user.Categories,
		DeletedPlaylistsCount: len(playlists),
	}, nil
}

func (s *userService) GetDailyGoal(ctx context.Context, userId uuid.UUID) (*dto.DailyGoalResponse, error) {
	var cached string
	if s.cache.Get(ctx, cache.DailyGoalKey(userId), &cached) {
		return &dto.DailyGoalResponse{DailyGoal: cached}, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	s.cache.Set(ctx, cache.DailyGoalKey(userId), user.DailyGoal, cache.DailyGoalTTL)
	return &dto.DailyGoalResponse{DailyGoal: user.DailyGoal}, nil
}

func (s *userService) SetDailyGoal(ctx context.Context, userId uuid.UUID, req *dto.DailyGoalRequest) (*dto.DailyGoalResponse, error) {
	if req.DailyGoal == nil {
		return nil, apperror.BadRequest("Daily goal is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := lockUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	user.DailyGoal = *req.DailyGoal
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.cache.Delete(ctx, cache.UserKey(userId))
	s.cache.Set(ctx, cache.DailyGoalKey(userId), user.DailyGoal, cache.DailyGoalTTL)
	return &dto.DailyGoalResponse{DailyGoal: user.DailyGoal}, nil
}
