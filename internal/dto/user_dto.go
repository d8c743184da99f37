// FILE: internal/dto/user_dto.go
package dto

type AddCategoryRequest struct {
	Category string `json:"category" validate:"required,max=100"`
}

type UpdateCategoryRequest struct {
	OldCategory string `json:"oldCategory" validate:"required"`
	NewCategory string `json:"newCategory" validate:"required,max=100"`
}

type DeleteCategoryRequest struct {
	Category                  string
	DeleteAssociatedPlaylists bool
}

type DeleteCategoryResponse struct {
	Categories            []string `json:"categories"`
	DeletedPlaylistsCount int      `json:"deletedPlaylistsCount"`
}

// CategoryInUseDetails is attached to the 400 returned when a category still has playlists.
type CategoryInUseDetails struct {
	HasPlaylists bool  `json:"hasPlaylists"`
	Count        int64 `json:"count"`
}

type DailyGoalRequest struct {
	DailyGoal *string `json:"dailyGoal" validate:"required"`
}

type DailyGoalResponse struct {
	DailyGoal string `json:"dailyGoal"`
}
