package service

import (
	"context"
	"errors"

	"learnloop-be/internal/dto"
	"learnloop-be/internal/pkg/apperror"
	"learnloop-be/pkg/youtube"

	"github.com/google/uuid"
)

// YouTubeClient is the part of the YouTube Data API the services rely on.
type YouTubeClient interface {
	GetPlaylist(ctx context.Context, playlistId string) (*youtube.Playlist, error)
	ListPlaylistVideos(ctx context.Context, playlistId string) ([]youtube.Video, error)
	GetVideo(ctx context.Context, videoId string) (*youtube.Video, error)
}

// NotificationDelivery pushes real-time updates, typically through the websocket hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification dto.Notification)
}

func youtubeError(err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, youtube.ErrNotFound):
		return apperror.NotFound(notFoundMsg)
	case errors.Is(err, youtube.ErrQuotaExceeded):
		return apperror.TooManyRequests("YouTube API quota exceeded. Please try again later.", err)
	default:
		return apperror.Unavailable("YouTube API request failed", err)
	}
}
