package training_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/jlahtela/ridgeline/internal/errors"
	"github.com/jlahtela/ridgeline/internal/sqlite"
	"github.com/jlahtela/ridgeline/internal/training"
)

func newTestService(t *testing.T) (*training.Service, context.Context) {
	t.Helper()
	ctx := t.Context()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:       slog.LevelDebug,
		AddSource:   false,
		ReplaceAttr: nil,
	}))
	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return training.NewService(db, logger), ctx
}

func TestService_SaveCheckIn_PreservesSnapshotOnEdit(t *testing.T) {
	svc, ctx := newTestService(t)

	checkIn := checkInWith(nil)
	first, err := svc.SaveCheckIn(ctx, checkIn)
	if err != nil {
		t.Fatalf("SaveCheckIn: %v", err)
	}
	if first.Tier != training.TierFull {
		t.Fatalf("tier = %v, want full", first.Tier)
	}

	// Edit the same day with inputs that would classify rest: the snapshot
	// must survive.
	edited := checkIn
	edited.Sleep.Quality = training.SleepPoor
	second, err := svc.SaveCheckIn(ctx, edited)
	if err != nil {
		t.Fatalf("SaveCheckIn (edit): %v", err)
	}
	if second.Tier != training.TierFull {
		t.Errorf("edited tier = %v, want the preserved full snapshot", second.Tier)
	}

	stored, err := svc.CheckInForDate(ctx, checkIn.Date)
	if err != nil {
		t.Fatalf("CheckInForDate: %v", err)
	}
	if stored.Sleep.Quality != training.SleepPoor {
		t.Error("edited fields were not saved")
	}
	if stored.Classification == nil || stored.Classification.Tier != training.TierFull {
		t.Errorf("stored classification = %+v, want preserved full", stored.Classification)
	}

	// An explicit reclassify is the only way the snapshot changes.
	reclassified, err := svc.ReclassifyCheckIn(ctx, checkIn.Date)
	if err != nil {
		t.Fatalf("ReclassifyCheckIn: %v", err)
	}
	if reclassified.Tier != training.TierRest {
		t.Errorf("reclassified tier = %v, want rest for poor sleep", reclassified.Tier)
	}
}

func TestService_ReclassifyMissingCheckIn(t *testing.T) {
	svc, ctx := newTestService(t)

	if _, err := svc.ReclassifyCheckIn(ctx, date("2026-01-01")); !errors.Is(err, training.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestService_LogAndDeleteSessions(t *testing.T) {
	svc, ctx := newTestService(t)

	summary, err := svc.LogClimbing(ctx, training.ClimbingSession{
		Date:       date("2026-08-24"),
		Discipline: training.DisciplineBouldering,
		Climbs: []training.Climb{
			{Grade: "V4", Result: training.ResultSend},
			{Grade: "V5", Result: training.ResultSend},
		},
	})
	if err != nil {
		t.Fatalf("LogClimbing: %v", err)
	}
	if summary.Dominant == nil || *summary.Dominant != training.ForearmsGrip {
		t.Errorf("dominant = %v, want forearms/grip", summary.Dominant)
	}

	week, err := svc.SessionsForWeek(ctx, date("2026-08-24"))
	if err != nil {
		t.Fatalf("SessionsForWeek: %v", err)
	}
	if len(week.Climbing) != 1 {
		t.Fatalf("climbing sessions = %d, want 1", len(week.Climbing))
	}
	id := week.Climbing[0].ID
	if id == "" {
		t.Fatal("expected a generated session id")
	}

	if err = svc.DeleteSession(ctx, training.SessionClimbing, id); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if err = svc.DeleteSession(ctx, training.SessionClimbing, id); !errors.Is(err, training.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}

	week, err = svc.SessionsForWeek(ctx, date("2026-08-24"))
	if err != nil {
		t.Fatalf("SessionsForWeek after delete: %v", err)
	}
	if len(week.Climbing) != 0 {
		t.Errorf("climbing sessions = %d, want 0 after delete", len(week.Climbing))
	}
}

func TestService_StrengthProgressionFeedsWeeklyReport(t *testing.T) {
	svc, ctx := newTestService(t)

	sessions := []training.StrengthSession{
		{Date: date("2026-08-20"), Exercises: []training.StrengthExercise{
			{ExerciseID: "bench-press", Sets: makeSets(1, 8, 100)},
		}},
		{Date: date("2026-08-23"), Exercises: []training.StrengthExercise{
			{ExerciseID: "bench-press", Sets: makeSets(1, 8, 105)},
		}},
	}
	for _, session := range sessions {
		if _, err := svc.LogStrength(ctx, session); err != nil {
			t.Fatalf("LogStrength: %v", err)
		}
	}

	status, err := svc.WeeklyReport(ctx, date("2026-08-24"))
	if err != nil {
		t.Fatalf("WeeklyReport: %v", err)
	}
	if len(status.OverloadReady) != 1 || status.OverloadReady[0] != "bench-press" {
		t.Errorf("overload ready = %v, want [bench-press]", status.OverloadReady)
	}
}

func TestService_DailyRecommendationUsesSnapshot(t *testing.T) {
	svc, ctx := newTestService(t)
	today := date("2026-08-26")

	// Without a check-in the recommendation warns and assumes moderate.
	rec, err := svc.DailyRecommendation(ctx, today)
	if err != nil {
		t.Fatalf("DailyRecommendation: %v", err)
	}
	if rec.RecoveryNote == "" {
		t.Error("expected a no-check-in recovery note")
	}

	if _, err = svc.SaveCheckIn(ctx, checkInWith(func(c *training.DailyCheckIn) {
		c.Date = today
		c.Sleep.Quality = training.SleepPoor
	})); err != nil {
		t.Fatalf("SaveCheckIn: %v", err)
	}

	rec, err = svc.DailyRecommendation(ctx, today)
	if err != nil {
		t.Fatalf("DailyRecommendation: %v", err)
	}
	if rec.Title != "Rest Day" {
		t.Errorf("title = %q, want Rest Day from the poor-sleep snapshot", rec.Title)
	}
}

func TestService_ConfigLifecycle(t *testing.T) {
	svc, ctx := newTestService(t)

	active, err := svc.ActiveConfig(ctx)
	if err != nil {
		t.Fatalf("ActiveConfig: %v", err)
	}
	if active != nil {
		t.Fatalf("active config = %+v, want none before the first apply", active)
	}

	first := training.DefaultConfig()
	first.Emphases[training.CategoryPull] = training.EmphasisHigh
	if err = svc.ApplyConfig(ctx, first); err != nil {
		t.Fatalf("ApplyConfig: %v", err)
	}

	second := training.DefaultConfig()
	second.Proximity = training.ProximityTaper
	if err = svc.ApplyConfig(ctx, second); err != nil {
		t.Fatalf("ApplyConfig (second): %v", err)
	}

	active, err = svc.ActiveConfig(ctx)
	if err != nil {
		t.Fatalf("ActiveConfig: %v", err)
	}
	if active == nil || active.Proximity != training.ProximityTaper {
		t.Errorf("active config = %+v, want the second config", active)
	}

	history, err := svc.ConfigHistory(ctx)
	if err != nil {
		t.Fatalf("ConfigHistory: %v", err)
	}
	if len(history) != 1 || history[0].Emphases[training.CategoryPull] != training.EmphasisHigh {
		t.Errorf("history = %+v, want the superseded first config", history)
	}
}

func TestService_ObjectiveLifecycle(t *testing.T) {
	svc, ctx := newTestService(t)

	objective := training.ActivatedObjective{
		Name:           "Rainier",
		LibraryID:      "rainier-dc",
		TargetDate:     date("2026-11-01"),
		PriorityWeight: 8,
		PlanWeeks: []training.PlanWeek{
			{Number: 1, Focus: "base"},
			{Number: 2, Focus: "base"},
		},
	}
	if err := svc.ActivateObjective(ctx, objective); err != nil {
		t.Fatalf("ActivateObjective: %v", err)
	}

	objectives, err := svc.Objectives(ctx)
	if err != nil {
		t.Fatalf("Objectives: %v", err)
	}
	if len(objectives) != 1 {
		t.Fatalf("objectives = %d, want 1", len(objectives))
	}
	id := objectives[0].ID

	if err = svc.CompletePlanWeek(ctx, id, 1); err != nil {
		t.Fatalf("CompletePlanWeek: %v", err)
	}
	if err = svc.CompletePlanWeek(ctx, id, 99); !errors.Is(err, training.ErrNotFound) {
		t.Errorf("missing week err = %v, want ErrNotFound", err)
	}

	// Deactivation is one-way: the objective leaves the active list and
	// shows up archived.
	if err = svc.DeactivateObjective(ctx, id, "ready"); err != nil {
		t.Fatalf("DeactivateObjective: %v", err)
	}
	objectives, err = svc.Objectives(ctx)
	if err != nil {
		t.Fatalf("Objectives after deactivate: %v", err)
	}
	if len(objectives) != 0 {
		t.Errorf("objectives = %d, want 0 after deactivation", len(objectives))
	}
	archived, err := svc.ArchivedObjectives(ctx)
	if err != nil {
		t.Fatalf("ArchivedObjectives: %v", err)
	}
	if len(archived) != 1 || archived[0].ReadinessTier != "ready" {
		t.Fatalf("archived = %+v, want the deactivated objective", archived)
	}
	if archived[0].TrainingSummary != "1 of 2 plan weeks completed" {
		t.Errorf("summary = %q, want completed-week summary", archived[0].TrainingSummary)
	}
}

func TestService_Zones(t *testing.T) {
	svc, ctx := newTestService(t)

	// Default: age formula over the default age.
	zones, err := svc.Zones(ctx)
	if err != nil {
		t.Fatalf("Zones: %v", err)
	}
	if zones[4].High != 180 {
		t.Errorf("default zone 5 high = %d, want 180 for age 40", zones[4].High)
	}

	if err = svc.SetZoneMethod(ctx, "maf", 35); err != nil {
		t.Fatalf("SetZoneMethod: %v", err)
	}
	zones, err = svc.Zones(ctx)
	if err != nil {
		t.Fatalf("Zones after MAF: %v", err)
	}
	if zones[1].High != 145 {
		t.Errorf("MAF zone 2 high = %d, want 145 for age 35", zones[1].High)
	}

	// Invalid custom zones change nothing.
	validationErrs, err := svc.SetCustomZones(ctx, [4]int{60, 60, 150, 170})
	if err != nil {
		t.Fatalf("SetCustomZones: %v", err)
	}
	if len(validationErrs) == 0 {
		t.Fatal("expected validation errors for overlapping zones")
	}
	zones, err = svc.Zones(ctx)
	if err != nil {
		t.Fatalf("Zones after invalid custom: %v", err)
	}
	if zones[1].High != 145 {
		t.Error("invalid custom zones must not replace the stored method")
	}

	validationErrs, err = svc.SetCustomZones(ctx, [4]int{110, 130, 150, 170})
	if err != nil {
		t.Fatalf("SetCustomZones (valid): %v", err)
	}
	if len(validationErrs) != 0 {
		t.Fatalf("unexpected validation errors: %v", validationErrs)
	}
	zones, err = svc.Zones(ctx)
	if err != nil {
		t.Fatalf("Zones after custom: %v", err)
	}
	if zones[3].High != 170 || zones[4].High != 220 {
		t.Errorf("custom zones = %+v, want ceilings applied", zones)
	}
}

func TestService_BaselineEstablishment(t *testing.T) {
	svc, ctx := newTestService(t)
	today := date("2026-08-26")

	for i := range 14 {
		if _, err := svc.SaveCheckIn(ctx, checkInWith(func(c *training.DailyCheckIn) {
			c.Date = today.AddDate(0, 0, -13+i)
		})); err != nil {
			t.Fatalf("SaveCheckIn %d: %v", i, err)
		}
	}

	baseline, err := svc.Baseline(ctx)
	if err != nil {
		t.Fatalf("Baseline: %v", err)
	}
	if !baseline.Established {
		t.Fatal("expected an established baseline after 14 check-ins")
	}
	if baseline.HRV == nil || *baseline.HRV != 65 {
		t.Errorf("baseline HRV = %v, want 65", baseline.HRV)
	}
}
