package memory

import (
	"context"
	"fmt"
	"time"

	"learnloop-be/internal/entity"
	"learnloop-be/internal/repository/contract"
	"learnloop-be/internal/repository/specification"

	"github.com/google/uuid"
)

func stamp(id *uuid.UUID, createdAt, updatedAt *time.Time) {
	now := time.Now()
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	if createdAt != nil && createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt != nil {
		*updatedAt = now
	}
}

type userRepository struct {
	uow *UnitOfWork
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.uow.run(func(t *tables) error {
		for _, existing := range t.users {
			if existing.Email == user.Email {
				return contract.ErrDuplicateKey
			}
		}
		stamp(&user.Id, &user.CreatedAt, &user.UpdatedAt)
		if user.Categories == nil {
			user.Categories = []string{}
		}
		t.users[user.Id] = cloneUser(*user)
		return nil
	})
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return r.uow.run(func(t *tables) error {
		for id, existing := range t.users {
			if id != user.Id && existing.Email == user.Email {
				return contract.ErrDuplicateKey
			}
		}
		stamp(&user.Id, &user.CreatedAt, &user.UpdatedAt)
		t.users[user.Id] = cloneUser(*user)
		return nil
	})
}

func (r *userRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var found *entity.User
	err := r.uow.run(func(t *tables) error {
		items := make([]*entity.User, 0, len(t.users))
		for _, u := range t.users {
			c := cloneUser(u)
			items = append(items, &c)
		}
		if res := selectRecords(items, userRecord, specs); len(res) > 0 {
			found = res[0]
		}
		return nil
	})
	return found, err
}

type playlistRepository struct {
	uow *UnitOfWork
}

func playlistConflict(t *tables, p *entity.Playlist) bool {
	if p.YtPlaylistId == "" {
		return false
	}
	for id, existing := range t.playlists {
		if id != p.Id && existing.UserId == p.UserId && existing.YtPlaylistId == p.YtPlaylistId {
			return true
		}
	}
	return false
}

func (r *playlistRepository) Create(ctx context.Context, playlist *entity.Playlist) error {
	return r.uow.run(func(t *tables) error {
		if playlistConflict(t, playlist) {
			return contract.ErrDuplicateKey
		}
		stamp(&playlist.Id, &playlist.CreatedAt, &playlist.UpdatedAt)
		t.playlists[playlist.Id] = *playlist
		return nil
	})
}

func (r *playlistRepository) Update(ctx context.Context, playlist *entity.Playlist) error {
	return r.uow.run(func(t *tables) error {
		if playlistConflict(t, playlist) {
			return contract.ErrDuplicateKey
		}
		stamp(&playlist.Id, &playlist.CreatedAt, &playlist.UpdatedAt)
		t.playlists[playlist.Id] = *playlist
		return nil
	})
}

func (r *playlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.uow.run(func(t *tables) error {
		delete(t.playlists, id)
		return nil
	})
}

func (r *playlistRepository) RenameCategory(ctx context.Context, userId uuid.UUID, from, to string) (int64, error) {
	var n int64
	err := r.uow.run(func(t *tables) error {
		for id, p := range t.playlists {
			if p.UserId == userId && p.Category == from {
				p.Category = to
				p.UpdatedAt = time.Now()
				t.playlists[id] = p
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *playlistRepository) all(t *tables, specs []specification.Specification) []*entity.Playlist {
	items := make([]*entity.Playlist, 0, len(t.playlists))
	for _, p := range t.playlists {
		c := p
		items = append(items, &c)
	}
	return selectRecords(items, playlistRecord, specs)
}

func (r *playlistRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Playlist, error) {
	var found *entity.Playlist
	err := r.uow.run(func(t *tables) error {
		if res := r.all(t, specs); len(res) > 0 {
			found = res[0]
		}
		return nil
	})
	return found, err
}

func (r *playlistRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Playlist, error) {
	var res []*entity.Playlist
	err := r.uow.run(func(t *tables) error {
		res = r.all(t, specs)
		return nil
	})
	return res, err
}

func (r *playlistRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	res, err := r.FindAll(ctx, specs...)
	return int64(len(res)), err
}

type videoRepository struct {
	uow *UnitOfWork
}

func (r *videoRepository) Create(ctx context.Context, video *entity.Video) error {
	return r.uow.run(func(t *tables) error {
		stamp(&video.Id, &video.CreatedAt, &video.UpdatedAt)
		if video.Status == "" {
			video.Status = entity.VideoStatusToWatch
		}
		t.videos[video.Id] = cloneVideo(*video)
		return nil
	})
}

func (r *videoRepository) CreateBatch(ctx context.Context, videos []*entity.Video) error {
	for _, v := range videos {
		if err := r.Create(ctx, v); err != nil {
			return err
		}
	}
	return nil
}

func (r *videoRepository) Update(ctx context.Context, video *entity.Video) error {
	return r.uow.run(func(t *tables) error {
		if _, ok := t.videos[video.Id]; !ok {
			return fmt.Errorf("video %s not found", video.Id)
		}
		stamp(&video.Id, &video.CreatedAt, &video.UpdatedAt)
		t.videos[video.Id] = cloneVideo(*video)
		return nil
	})
}

func (r *videoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.uow.run(func(t *tables) error {
		delete(t.videos, id)
		return nil
	})
}

func (r *videoRepository) DeleteByPlaylistID(ctx context.Context, playlistId uuid.UUID) (int64, error) {
	var n int64
	err := r.uow.run(func(t *tables) error {
		for id, v := range t.videos {
			if v.PlaylistId == playlistId {
				delete(t.videos, id)
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *videoRepository) ResetProgress(ctx context.Context, playlistId uuid.UUID) (int64, error) {
	var n int64
	err := r.uow.run(func(t *tables) error {
		for id, v := range t.videos {
			if v.PlaylistId == playlistId {
				v.Status = entity.VideoStatusToWatch
				v.TimeSpent = 0
				v.UpdatedAt = time.Now()
				t.videos[id] = v
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *videoRepository) all(t *tables, specs []specification.Specification) []*entity.Video {
	items := make([]*entity.Video, 0, len(t.videos))
	for _, v := range t.videos {
		c := cloneVideo(v)
		items = append(items, &c)
	}
	return selectRecords(items, videoRecord, specs)
}

func (r *videoRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Video, error) {
	var found *entity.Video
	err := r.uow.run(func(t *tables) error {
		if res := r.all(t, specs); len(res) > 0 {
			found = res[0]
		}
		return nil
	})
	return found, err
}

func (r *videoRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Video, error) {
	var res []*entity.Video
	err := r.uow.run(func(t *tables) error {
		res = r.all(t, specs)
		return nil
	})
	return res, err
}

func (r *videoRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	res, err := r.FindAll(ctx, specs...)
	return int64(len(res)), err
}

type badgeRepository struct {
	uow *UnitOfWork
}

func (r *badgeRepository) CreateIfAbsent(ctx context.Context, badge *entity.Badge) (bool, error) {
	created := false
	err := r.uow.run(func(t *tables) error {
		for _, existing := range t.badges {
			if existing.UserId == badge.UserId && existing.Title == badge.Title {
				return nil
			}
		}
		if badge.Id == uuid.Nil {
			badge.Id = uuid.New()
		}
		if badge.DateEarned.IsZero() {
			badge.DateEarned = time.Now()
		}
		t.badges[badge.Id] = *badge
		created = true
		return nil
	})
	return created, err
}

func (r *badgeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.uow.run(func(t *tables) error {
		delete(t.badges, id)
		return nil
	})
}

func (r *badgeRepository) DeleteAll(ctx context.Context, specs ...specification.Specification) (int64, error) {
	if len(specs) == 0 {
		return 0, fmt.Errorf("delete without conditions")
	}
	var n int64
	err := r.uow.run(func(t *tables) error {
		for _, b := range r.all(t, specs) {
			delete(t.badges, b.Id)
			n++
		}
		return nil
	})
	return n, err
}

func (r *badgeRepository) all(t *tables, specs []specification.Specification) []*entity.Badge {
	items := make([]*entity.Badge, 0, len(t.badges))
	for _, b := range t.badges {
		c := b
		items = append(items, &c)
	}
	return selectRecords(items, badgeRecord, specs)
}

func (r *badgeRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Badge, error) {
	var found *entity.Badge
	err := r.uow.run(func(t *tables) error {
		if res := r.all(t, specs); len(res) > 0 {
			found = res[0]
		}
		return nil
	})
	return found, err
}

func (r *badgeRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Badge, error) {
	var res []*entity.Badge
	err := r.uow.run(func(t *tables) error {
		res = r.all(t, specs)
		return nil
	})
	return res, err
}

func (r *badgeRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	res, err := r.FindAll(ctx, specs...)
	return int64(len(res)), err
}

type userActivityRepository struct {
	uow *UnitOfWork
}

func (r *userActivityRepository) Increment(ctx context.Context, userId uuid.UUID, day time.Time) error {
	key := activityKey{userId: userId, day: day.UTC().Truncate(24 * time.Hour)}
	return r.uow.run(func(t *tables) error {
		a, ok := t.activities[key]
		if !ok {
			a = entity.UserActivity{Id: uuid.New(), UserId: userId, Day: key.day}
		}
		a.Events++
		a.UpdatedAt = time.Now()
		t.activities[key] = a
		return nil
	})
}

func (r *userActivityRepository) FindSince(ctx context.Context, userId uuid.UUID, since time.Time) ([]*entity.UserActivity, error) {
	since = since.UTC().Truncate(24 * time.Hour)
	var res []*entity.UserActivity
	err := r.uow.run(func(t *tables) error {
		for k, a := range t.activities {
			if k.userId == userId && !k.day.Before(since) {
				c := a
				res = append(res, &c)
			}
		}
		return nil
	})
	sortActivitiesDesc(res)
	return res, err
}
