package main

import (
	"fmt"
	"net/http"

	"github.com/jlahtela/ridgeline/internal/training"
)

type zonesTemplateData struct {
	BaseTemplateData
	Zones            training.ZoneThresholds
	Preferences      training.Preferences
	ValidationErrors []string
}

func (app *application) zonesTemplateData(r *http.Request) (zonesTemplateData, error) {
	ctx := r.Context()
	zones, err := app.trainingService.Zones(ctx)
	if err != nil {
		return zonesTemplateData{}, fmt.Errorf("zones: %w", err)
	}
	prefs, err := app.trainingService.GetPreferences(ctx)
	if err != nil {
		return zonesTemplateData{}, fmt.Errorf("get preferences: %w", err)
	}
	return zonesTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		Zones:            zones,
		Preferences:      prefs,
		ValidationErrors: nil,
	}, nil
}

func (app *application) zonesGET(w http.ResponseWriter, r *http.Request) {
	data, err := app.zonesTemplateData(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.render(w, r, http.StatusOK, "zones", data)
}

func (app *application) zonesMethodPOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}

	method := r.Form.Get("method")
	if method != "age" && method != "maf" {
		http.Error(w, "method must be age or maf", http.StatusBadRequest)
		return
	}
	age := formInt(r, "age", 0)
	if age < 10 || age > 100 {
		http.Error(w, "age must be between 10 and 100", http.StatusBadRequest)
		return
	}

	if err := app.trainingService.SetZoneMethod(r.Context(), method, age); err != nil {
		app.serverError(w, r, fmt.Errorf("set zone method: %w", err))
		return
	}

	app.flash(r, "Zone settings saved.")
	redirect(w, r, "/zones")
}

func (app *application) zonesUnitPOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}

	unit := r.Form.Get("weight_unit")
	if unit != "lbs" && unit != "kg" {
		http.Error(w, "weight unit must be lbs or kg", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	prefs, err := app.trainingService.GetPreferences(ctx)
	if err != nil {
		app.serverError(w, r, fmt.Errorf("get preferences: %w", err))
		return
	}
	prefs.WeightUnit = unit
	if err = app.trainingService.SavePreferences(ctx, prefs); err != nil {
		app.serverError(w, r, fmt.Errorf("save preferences: %w", err))
		return
	}

	app.flash(r, "Weight unit saved.")
	redirect(w, r, "/zones")
}

func (app *application) zonesCustomPOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}

	var ceilings [4]int
	for i := range ceilings {
		ceilings[i] = formInt(r, fmt.Sprintf("zone%d_high", i+1), 0)
	}

	validationErrs, err := app.trainingService.SetCustomZones(r.Context(), ceilings)
	if err != nil {
		app.serverError(w, r, fmt.Errorf("set custom zones: %w", err))
		return
	}
	if len(validationErrs) > 0 {
		data, dataErr := app.zonesTemplateData(r)
		if dataErr != nil {
			app.serverError(w, r, dataErr)
			return
		}
		data.ValidationErrors = validationErrs
		app.render(w, r, http.StatusUnprocessableEntity, "zones", data)
		return
	}

	app.flash(r, "Custom zones saved.")
	redirect(w, r, "/zones")
}
