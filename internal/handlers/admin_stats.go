package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/taskboard/internal/models"
)

//go:generate mockgen -source=admin_stats.go -destination=mock_admin_stats.go -package=handlers

// StatsProvider reports board statistics.
type StatsProvider interface {
	Stats(ctx context.Context, actor *models.User) (*models.Stats, error)
}

// NewAdminStatsHandler returns an HTTP handler with user and task counts.
// @Summary Board statistics
// @Tags admin
// @Produce json
// @Success 200 {object} models.Stats "Statistics"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /admin/stats [get]
func NewAdminStatsHandler(svc StatsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := currentUser(w, r)
		if !ok {
			return
		}

		stats, err := svc.Stats(r.Context(), actor)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, stats)
	}
}
