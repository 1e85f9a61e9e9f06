package main

import (
	"fmt"
	"net/http"

	"github.com/jlahtela/ridgeline/internal/errors"
	"github.com/jlahtela/ridgeline/internal/training"
)

type checkInTemplateData struct {
	BaseTemplateData
	CheckIn    training.DailyCheckIn
	Editing    bool
	Qualities  []training.SleepQuality
	FlagOption []training.ContextFlag
	Baseline   training.PersonalBaseline
}

func (app *application) checkInGET(w http.ResponseWriter, r *http.Request) {
	data := checkInTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		CheckIn: training.DailyCheckIn{ //nolint:exhaustruct // form defaults.
			Date: today(),
		},
		Editing: false,
		Qualities: []training.SleepQuality{
			training.SleepGreat, training.SleepGood, training.SleepFair,
			training.SleepLow, training.SleepPoor,
		},
		FlagOption: []training.ContextFlag{
			training.FlagStress, training.FlagTravel, training.FlagIllness, training.FlagAltitude,
		},
		Baseline: training.PersonalBaseline{}, //nolint:exhaustruct // loaded below.
	}

	baseline, err := app.trainingService.Baseline(r.Context())
	if err != nil {
		app.serverError(w, r, fmt.Errorf("baseline: %w", err))
		return
	}
	data.Baseline = baseline

	existing, err := app.trainingService.CheckInForDate(r.Context(), data.CheckIn.Date)
	switch {
	case err == nil:
		data.CheckIn = existing
		data.Editing = true
	case errors.Is(err, training.ErrNotFound):
	default:
		app.serverError(w, r, fmt.Errorf("check-in for date: %w", err))
		return
	}

	app.render(w, r, http.StatusOK, "checkin", data)
}

// clampRating forces the three 1-5 self-ratings into range.
func clampRating(value int) int {
	return min(5, max(1, value)) //nolint:mnd // 1-5 rating scale.
}

func parseCheckInForm(r *http.Request) (training.DailyCheckIn, error) {
	date, err := parseDateField(r.Form.Get("date"))
	if err != nil {
		return training.DailyCheckIn{}, fmt.Errorf("parse date: %w", err)
	}

	var flags []training.ContextFlag
	for _, flag := range []training.ContextFlag{
		training.FlagStress, training.FlagTravel, training.FlagIllness, training.FlagAltitude,
	} {
		if r.Form.Get("flag_"+string(flag)) != "" {
			flags = append(flags, flag)
		}
	}

	var hours float64
	if h := formFloat(r, "sleep_hours"); h != nil {
		hours = *h
	}

	return training.DailyCheckIn{
		Date: date,
		Sleep: training.SleepInfo{ //nolint:exhaustruct // bedtime/wake are optional.
			Quality: training.SleepQuality(r.Form.Get("sleep_quality")),
			Hours:   hours,
		},
		Recovery: training.RecoveryMetrics{ //nolint:exhaustruct // HR range is optional.
			HRV:       formFloat(r, "hrv"),
			RestingHR: formFloat(r, "resting_hr"),
		},
		Feel: training.SubjectiveFeel{
			Legs:       clampRating(formInt(r, "legs", 3)),
			Energy:     clampRating(formInt(r, "energy", 3)),
			Motivation: clampRating(formInt(r, "motivation", 3)),
		},
		Flags:          flags,
		Notes:          r.Form.Get("notes"),
		Classification: nil,
	}, nil
}

func (app *application) checkInPOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}

	checkIn, err := parseCheckInForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	assessment, err := app.trainingService.SaveCheckIn(r.Context(), checkIn)
	if err != nil {
		app.serverError(w, r, fmt.Errorf("save check-in: %w", err))
		return
	}

	app.flash(r, fmt.Sprintf("Check-in saved. Recovery: %s.", assessment.Tier))
	redirect(w, r, "/")
}

// baselinePOST stores manual HRV/RHR fallbacks used until enough check-ins
// establish the rolling baseline. Empty fields clear the fallback.
func (app *application) baselinePOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}

	hrv := formFloat(r, "manual_hrv")
	restingHR := formFloat(r, "manual_resting_hr")
	if err := app.trainingService.SetManualBaseline(r.Context(), hrv, restingHR); err != nil {
		app.serverError(w, r, fmt.Errorf("set manual baseline: %w", err))
		return
	}

	app.flash(r, "Baseline fallbacks saved.")
	redirect(w, r, "/checkin")
}

func (app *application) checkInReclassifyPOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}
	date, err := parseDateField(r.Form.Get("date"))
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	assessment, err := app.trainingService.ReclassifyCheckIn(r.Context(), date)
	switch {
	case errors.Is(err, training.ErrNotFound):
		app.notFound(w, r)
		return
	case err != nil:
		app.serverError(w, r, fmt.Errorf("reclassify check-in: %w", err))
		return
	}

	app.flash(r, fmt.Sprintf("Check-in re-classified. Recovery: %s.", assessment.Tier))
	redirect(w, r, "/checkin")
}
