package main

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jlahtela/ridgeline/internal/errors"
	"github.com/jlahtela/ridgeline/internal/training"
)

type objectiveView struct {
	training.ActivatedObjective
	WeeksRemaining int
	Phase          training.ObjectivePhase
}

type objectivesTemplateData struct {
	BaseTemplateData
	Active   []objectiveView
	Archived []training.ArchivedObjective
}

func (app *application) objectivesGET(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	active, err := app.trainingService.Objectives(ctx)
	if err != nil {
		app.serverError(w, r, fmt.Errorf("objectives: %w", err))
		return
	}
	archived, err := app.trainingService.ArchivedObjectives(ctx)
	if err != nil {
		app.serverError(w, r, fmt.Errorf("archived objectives: %w", err))
		return
	}

	day := today()
	views := make([]objectiveView, len(active))
	for i, objective := range active {
		views[i] = objectiveView{
			ActivatedObjective: objective,
			WeeksRemaining:     objective.WeeksRemaining(day),
			Phase:              objective.Phase(day),
		}
	}

	data := objectivesTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		Active:           views,
		Archived:         archived,
	}

	app.render(w, r, http.StatusOK, "objectives", data)
}

func (app *application) objectiveActivatePOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}

	name := r.Form.Get("name")
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	targetDate, err := time.Parse(time.DateOnly, r.Form.Get("target_date"))
	if err != nil {
		http.Error(w, "invalid target date", http.StatusBadRequest)
		return
	}

	planWeekCount := formInt(r, "plan_weeks", 0)
	planWeeks := make([]training.PlanWeek, planWeekCount)
	for i := range planWeeks {
		planWeeks[i] = training.PlanWeek{Number: i + 1, Focus: "", Completed: false}
	}

	objective := training.ActivatedObjective{ //nolint:exhaustruct // id and activation time set by the service.
		LibraryID:      r.Form.Get("library_id"),
		Name:           name,
		TargetDate:     targetDate,
		PriorityWeight: formInt(r, "priority_weight", 5),
		PlanWeeks:      planWeeks,
	}

	if err = app.trainingService.ActivateObjective(r.Context(), objective); err != nil {
		app.serverError(w, r, fmt.Errorf("activate objective: %w", err))
		return
	}

	app.flash(r, fmt.Sprintf("Objective %q activated.", name))
	redirect(w, r, "/objectives")
}

func (app *application) objectiveDeactivatePOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}
	id := r.PathValue("id")

	err := app.trainingService.DeactivateObjective(r.Context(), id, r.Form.Get("readiness_tier"))
	switch {
	case errors.Is(err, training.ErrNotFound):
		app.notFound(w, r)
		return
	case err != nil:
		app.serverError(w, r, fmt.Errorf("deactivate objective: %w", err))
		return
	}

	app.flash(r, "Objective archived.")
	redirect(w, r, "/objectives")
}

func (app *application) objectiveCompleteWeekPOST(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	weekNumber, err := strconv.Atoi(r.PathValue("week"))
	if err != nil || weekNumber < 1 {
		http.Error(w, "invalid week number", http.StatusBadRequest)
		return
	}

	err = app.trainingService.CompletePlanWeek(r.Context(), id, weekNumber)
	switch {
	case errors.Is(err, training.ErrNotFound):
		app.notFound(w, r)
		return
	case err != nil:
		app.serverError(w, r, fmt.Errorf("complete plan week: %w", err))
		return
	}

	app.flash(r, fmt.Sprintf("Week %d marked complete.", weekNumber))
	redirect(w, r, "/objectives")
}
