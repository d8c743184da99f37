package service

import (
	"context"
	"fmt"

	"learnloop-be/internal/entity"
	"learnloop-be/internal/repository/specification"
	"learnloop-be/internal/repository/unitofwork"
)

// settleCompletion recomputes playlist.Completed from its videos and persists
// the flag when it changed. A playlist that has just become complete earns its
// completion badge; badge is nil when the user already held it.
func settleCompletion(ctx context.Context, uow unitofwork.UnitOfWork, playlist *entity.Playlist) (changed bool, badge *entity.Badge, err error) {
	total, err := uow.VideoRepository().Count(ctx, specification.ByPlaylistID{PlaylistID: playlist.Id})
	if err != nil {
		return false, nil, err
	}
	done, err := uow.VideoRepository().Count(ctx,
		specification.ByPlaylistID{PlaylistID: playlist.Id},
		specification.ByStatus{Status: string(entity.VideoStatusCompleted)},
	)
	if err != nil {
		return false, nil, err
	}

	completed := total > 0 && done == total
	if completed == playlist.Completed {
		return false, nil, nil
	}

	playlist.Completed = completed
	if err := uow.PlaylistRepository().Update(ctx, playlist); err != nil {
		return false, nil, err
	}
	if !completed {
		return true, nil, nil
	}

	candidate := completionBadge(playlist)
	created, err := uow.BadgeRepository().CreateIfAbsent(ctx, candidate)
	if err != nil {
		return false, nil, fmt.Errorf("award completion badge: %w", err)
	}
	if !created {
		return true, nil, nil
	}
	return true, candidate, nil
}
