package unitofwork

import (
	"context"

	"learnloop-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	PlaylistRepository() contract.PlaylistRepository
	VideoRepository() contract.VideoRepository
	BadgeRepository() contract.BadgeRepository
	UserActivityRepository() contract.UserActivityRepository
}
