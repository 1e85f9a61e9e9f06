package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jlahtela/ridgeline/internal/training"
)

type statusTemplateData struct {
	BaseTemplateData
	WeekStart  time.Time
	Status     training.WeeklyStatus
	Dimensions []training.DimensionContext
}

func (app *application) statusGET(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	weekStart := weekStartOf(today())
	if value := r.URL.Query().Get("week"); value != "" {
		parsed, err := time.Parse(time.DateOnly, value)
		if err != nil {
			http.Error(w, "invalid week parameter", http.StatusBadRequest)
			return
		}
		weekStart = weekStartOf(parsed)
	}

	status, err := app.trainingService.WeeklyReport(ctx, weekStart)
	if err != nil {
		app.serverError(w, r, fmt.Errorf("weekly report: %w", err))
		return
	}
	dimensions, err := app.trainingService.StimulusOverview(ctx, weekStart)
	if err != nil {
		app.serverError(w, r, fmt.Errorf("stimulus overview: %w", err))
		return
	}

	data := statusTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		WeekStart:        weekStart,
		Status:           status,
		Dimensions:       dimensions,
	}

	app.render(w, r, http.StatusOK, "status", data)
}
