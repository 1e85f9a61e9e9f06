package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jlahtela/ridgeline/internal/errors"
	"github.com/jlahtela/ridgeline/internal/training"
)

type dashboardTemplateData struct {
	BaseTemplateData
	Today          time.Time
	Recommendation training.Recommendation
	CheckedIn      bool
	CheckIn        training.DailyCheckIn
	RestAdvisory   string
}

// today returns the current calendar day at midnight UTC. All engine date
// comparisons happen on the calendar-day key.
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (app *application) dashboardGET(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	day := today()

	recommendation, err := app.trainingService.DailyRecommendation(ctx, day)
	if err != nil {
		app.serverError(w, r, fmt.Errorf("daily recommendation: %w", err))
		return
	}

	data := dashboardTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		Today:            day,
		Recommendation:   recommendation,
		CheckedIn:        false,
		CheckIn:          training.DailyCheckIn{}, //nolint:exhaustruct // filled below when present.
		RestAdvisory:     "",
	}

	checkIn, err := app.trainingService.CheckInForDate(ctx, day)
	switch {
	case err == nil:
		data.CheckedIn = true
		data.CheckIn = checkIn
	case errors.Is(err, training.ErrNotFound):
		// No check-in yet today; the recommendation already carries the warning note.
	default:
		app.serverError(w, r, fmt.Errorf("check-in for date: %w", err))
		return
	}

	advisory, err := app.trainingService.RestAdvisory(ctx)
	if err != nil {
		app.serverError(w, r, fmt.Errorf("rest advisory: %w", err))
		return
	}
	data.RestAdvisory = advisory

	app.render(w, r, http.StatusOK, "dashboard", data)
}
