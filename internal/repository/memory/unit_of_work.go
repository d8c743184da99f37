package memory

import (
	"context"
	"fmt"

	"learnloop-be/internal/repository/contract"
	"learnloop-be/internal/repository/unitofwork"
)

type RepositoryFactory struct {
	store *Store
}

func NewRepositoryFactory(store *Store) unitofwork.RepositoryFactory {
	return &RepositoryFactory{store: store}
}

func (f *RepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

type UnitOfWork struct {
	store    *Store
	inTx     bool
	snapshot tables
}

// run executes fn against the live tables, taking the store lock unless the
// unit already holds it through an open transaction.
func (u *UnitOfWork) run(fn func(t *tables) error) error {
	if !u.inTx {
		u.store.mu.Lock()
		defer u.store.mu.Unlock()
	}
	return fn(&u.store.data)
}

func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.inTx {
		return fmt.Errorf("transaction already started")
	}
	u.store.mu.Lock()
	u.snapshot = u.store.data.clone()
	u.inTx = true
	return nil
}

func (u *UnitOfWork) Commit() error {
	if !u.inTx {
		return fmt.Errorf("no transaction to commit")
	}
	u.inTx = false
	u.snapshot = tables{}
	u.store.mu.Unlock()
	return nil
}

func (u *UnitOfWork) Rollback() error {
	if !u.inTx {
		return fmt.Errorf("no transaction to rollback")
	}
	u.store.data = u.snapshot
	u.inTx = false
	u.snapshot = tables{}
	u.store.mu.Unlock()
	return nil
}

func (u *UnitOfWork) UserRepository() contract.UserRepository {
	return &userRepository{uow: u}
}

func (u *UnitOfWork) PlaylistRepository() contract.PlaylistRepository {
	return &playlistRepository{uow: u}
}

func (u *UnitOfWork) VideoRepository() contract.VideoRepository {
	return &videoRepository{uow: u}
}

func (u *UnitOfWork) BadgeRepository() contract.BadgeRepository {
	return &badgeRepository{uow: u}
}

func (u *UnitOfWork) UserActivityRepository() contract.UserActivityRepository {
	return &userActivityRepository{uow: u}
}
