package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jlahtela/ridgeline/internal/training"
)

type configTemplateData struct {
	BaseTemplateData
	Active           *training.TrainingConfig
	History          []training.TrainingConfig
	Draft            string
	ValidationErrors []string
}

func (app *application) configGET(w http.ResponseWriter, r *http.Request) {
	data, err := app.configTemplateData(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.render(w, r, http.StatusOK, "config", data)
}

func (app *application) configTemplateData(r *http.Request) (configTemplateData, error) {
	ctx := r.Context()
	active, err := app.trainingService.ActiveConfig(ctx)
	if err != nil {
		return configTemplateData{}, fmt.Errorf("active config: %w", err)
	}
	history, err := app.trainingService.ConfigHistory(ctx)
	if err != nil {
		return configTemplateData{}, fmt.Errorf("config history: %w", err)
	}
	return configTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		Active:           active,
		History:          history,
		Draft:            "",
		ValidationErrors: nil,
	}, nil
}

func validPriority(p training.Priority) bool {
	switch p {
	case training.PriorityMaintain, training.PriorityBuild, training.PriorityPeak, training.PriorityDeload:
		return true
	}
	return false
}

// validateConfig checks a pasted config. Acceptance is all-or-nothing: any
// returned message rejects the whole config.
func validateConfig(config training.TrainingConfig) []string {
	var problems []string
	for _, priority := range []struct {
		name  string
		value training.Priority
	}{
		{name: "cardioPriority", value: config.CardioPriority},
		{name: "strengthPriority", value: config.StrengthPriority},
		{name: "climbingPriority", value: config.ClimbingPriority},
	} {
		if !validPriority(priority.value) {
			problems = append(problems, fmt.Sprintf(
				"%s %q must be one of maintain, build, peak, deload", priority.name, priority.value))
		}
	}
	for category, emphasis := range config.Emphases {
		switch emphasis {
		case training.EmphasisLow, training.EmphasisMedium, training.EmphasisHigh:
		default:
			problems = append(problems, fmt.Sprintf(
				"emphasis for %s must be low, medium, or high, got %q", category, emphasis))
		}
	}
	switch config.Proximity {
	case training.ProximityNormal, training.ProximityApproaching,
		training.ProximityTaper, training.ProximityPeakWeek:
	default:
		problems = append(problems, fmt.Sprintf(
			"proximity %q must be one of normal, approaching, taper, peak-week", config.Proximity))
	}
	if config.MaxCardioDays < 0 || config.MaxStrengthDays < 0 {
		problems = append(problems, "frequency caps must not be negative")
	}
	return problems
}

func (app *application) configPOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}
	draft := r.Form.Get("config_json")

	rerender := func(problems []string) {
		data, err := app.configTemplateData(r)
		if err != nil {
			app.serverError(w, r, err)
			return
		}
		data.Draft = draft
		data.ValidationErrors = problems
		app.render(w, r, http.StatusUnprocessableEntity, "config", data)
	}

	var config training.TrainingConfig
	decoder := json.NewDecoder(strings.NewReader(draft))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&config); err != nil {
		rerender([]string{fmt.Sprintf("not a valid config document: %v", err)})
		return
	}
	if problems := validateConfig(config); len(problems) > 0 {
		rerender(problems)
		return
	}

	if err := app.trainingService.ApplyConfig(r.Context(), config); err != nil {
		app.serverError(w, r, fmt.Errorf("apply config: %w", err))
		return
	}

	app.flash(r, "Training config applied.")
	redirect(w, r, "/config")
}
