package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jlahtela/ridgeline/internal/errors"
	"github.com/jlahtela/ridgeline/internal/ptr"
	"github.com/jlahtela/ridgeline/internal/training"
)

type activityLogTemplateData struct {
	BaseTemplateData
	WeekStart   time.Time
	Sessions    training.WorkoutLog
	Exercises   []training.ExerciseInfo
	Disciplines []training.Discipline
}

// weekStartOf returns the Monday of the week containing the given day.
func weekStartOf(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7 //nolint:mnd // Monday-based week.
	return day.AddDate(0, 0, -offset)
}

func (app *application) activityLogGET(w http.ResponseWriter, r *http.Request) {
	weekStart := weekStartOf(today())
	sessions, err := app.trainingService.SessionsForWeek(r.Context(), weekStart)
	if err != nil {
		app.serverError(w, r, fmt.Errorf("sessions for week: %w", err))
		return
	}

	data := activityLogTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		WeekStart:        weekStart,
		Sessions:         sessions,
		Exercises:        training.ExerciseLibrary(),
		Disciplines: []training.Discipline{
			training.DisciplineBouldering, training.DisciplineSport, training.DisciplineTrad,
			training.DisciplineTopRope, training.DisciplineAlpine,
		},
	}

	app.render(w, r, http.StatusOK, "log", data)
}

func loadFlash(summary training.LoadSummary) string {
	if summary.Dominant == nil {
		return fmt.Sprintf("Session logged: %s load.", summary.Level)
	}
	return fmt.Sprintf("Session logged: %s load, mostly %s.", summary.Level, *summary.Dominant)
}

func (app *application) logCardioPOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}
	date, err := parseDateField(r.Form.Get("date"))
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	var elevationGain float64
	if gain := formFloat(r, "elevation_gain_ft"); gain != nil {
		elevationGain = *gain
	}
	var avgHR, maxHR *int
	if hr := formInt(r, "avg_hr", 0); hr > 0 {
		avgHR = ptr.Ref(hr)
	}
	if hr := formInt(r, "max_hr", 0); hr > 0 {
		maxHR = ptr.Ref(hr)
	}

	session := training.CardioSession{ //nolint:exhaustruct // device-file fields absent on manual entry.
		Date:            date,
		ActivityType:    r.Form.Get("activity_type"),
		DurationSeconds: formInt(r, "duration_minutes", 0) * 60, //nolint:mnd // minutes in the form.
		ElevationGainFt: elevationGain,
		AvgHR:           avgHR,
		MaxHR:           maxHR,
		PackWeightLbs:   formFloat(r, "pack_weight_lbs"),
		WeightsUsed:     r.Form.Get("weights_used") != "",
		Notes:           r.Form.Get("notes"),
	}

	summary, err := app.trainingService.LogCardio(r.Context(), session)
	if err != nil {
		app.serverError(w, r, fmt.Errorf("log cardio: %w", err))
		return
	}
	app.flash(r, loadFlash(summary))
	redirect(w, r, "/log")
}

func (app *application) logStrengthPOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}
	date, err := parseDateField(r.Form.Get("date"))
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	setCount := formInt(r, "sets", 3)
	reps := formInt(r, "reps", 8)
	var weight float64
	if value := formFloat(r, "weight"); value != nil {
		weight = *value
	}
	unit := r.Form.Get("unit")
	if unit == "" {
		unit = "lbs"
	}

	sets := make([]training.StrengthSet, setCount)
	for i := range sets {
		sets[i] = training.StrengthSet{SetNumber: i + 1, Reps: reps, Weight: weight, Unit: unit}
	}

	session := training.StrengthSession{ //nolint:exhaustruct // template id is optional.
		Date: date,
		Exercises: []training.StrengthExercise{
			{ExerciseID: r.Form.Get("exercise_id"), Sets: sets},
		},
		Notes: r.Form.Get("notes"),
	}

	summary, err := app.trainingService.LogStrength(r.Context(), session)
	if err != nil {
		app.serverError(w, r, fmt.Errorf("log strength: %w", err))
		return
	}
	app.flash(r, loadFlash(summary))
	redirect(w, r, "/log")
}

// parseClimbs parses the climbs textarea: one climb per line, grade followed
// by "send" or "attempt" (defaulting to send).
func parseClimbs(value string) []training.Climb {
	var climbs []training.Climb
	for line := range strings.Lines(value) {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		climb := training.Climb{Grade: fields[0], Result: training.ResultSend}
		if len(fields) > 1 && strings.EqualFold(fields[1], string(training.ResultAttempt)) {
			climb.Result = training.ResultAttempt
		}
		climbs = append(climbs, climb)
	}
	return climbs
}

func (app *application) logClimbingPOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}
	date, err := parseDateField(r.Form.Get("date"))
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	session := training.ClimbingSession{ //nolint:exhaustruct // id assigned by the service.
		Date:       date,
		Discipline: training.Discipline(r.Form.Get("discipline")),
		Climbs:     parseClimbs(r.Form.Get("climbs")),
		Notes:      r.Form.Get("notes"),
	}

	summary, err := app.trainingService.LogClimbing(r.Context(), session)
	if err != nil {
		app.serverError(w, r, fmt.Errorf("log climbing: %w", err))
		return
	}
	app.flash(r, loadFlash(summary))
	redirect(w, r, "/log")
}

// parseIntList parses a comma-separated list of positive ints, skipping
// blanks and garbage.
func parseIntList(value string) []int {
	var values []int
	for _, field := range strings.Split(value, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil || n <= 0 {
			continue
		}
		values = append(values, n)
	}
	return values
}

func (app *application) logConditioningPOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}
	date, err := parseDateField(r.Form.Get("date"))
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	session := training.ConditioningSession{ //nolint:exhaustruct // id assigned by the service.
		Date:  date,
		Notes: r.Form.Get("notes"),
	}
	for _, reps := range parseIntList(r.Form.Get("pullup_reps")) {
		session.PullupSets = append(session.PullupSets, training.PullupSet{Reps: reps})
	}
	for _, seconds := range parseIntList(r.Form.Get("deadhang_seconds")) {
		session.DeadhangSets = append(session.DeadhangSets, training.DeadhangSet{DurationSeconds: seconds})
	}
	if rounds := formInt(r, "hangboard_rounds", 0); rounds > 0 {
		session.HangboardSets = append(session.HangboardSets, training.HangboardSet{
			Rounds: rounds,
			EdgeMM: formInt(r, "edge_mm", 0),
		})
	}

	summary, err := app.trainingService.LogConditioning(r.Context(), session)
	if err != nil {
		app.serverError(w, r, fmt.Errorf("log conditioning: %w", err))
		return
	}
	app.flash(r, loadFlash(summary))
	redirect(w, r, "/log")
}

func (app *application) deleteSessionPOST(w http.ResponseWriter, r *http.Request) {
	sessionType := training.SessionType(r.PathValue("type"))
	id := r.PathValue("id")

	err := app.trainingService.DeleteSession(r.Context(), sessionType, id)
	switch {
	case errors.Is(err, training.ErrNotFound):
		app.notFound(w, r)
		return
	case err != nil:
		app.serverError(w, r, fmt.Errorf("delete session: %w", err))
		return
	}

	app.flash(r, "Session deleted.")
	redirect(w, r, "/log")
}
