package training_test

import (
	"testing"

	"github.com/jlahtela/ridgeline/internal/training"
)

func TestBuildWeeklyStatus_VolumeLights(t *testing.T) {
	t.Parallel()

	weekStart := date("2026-08-24")
	weekEnd := date("2026-08-30")
	targets := &training.WeeklyTargets{
		Strength: &training.DomainTarget{Direction: "maintain", Sessions: 4},
	}
	config := training.DefaultConfig()
	config.WeeklyTargets = targets

	strengthSessions := func(count int) []training.StrengthSession {
		sessions := make([]training.StrengthSession, count)
		for i := range sessions {
			sessions[i] = training.StrengthSession{
				ID:   string(rune('a' + i)),
				Date: weekStart.AddDate(0, 0, i),
				Exercises: []training.StrengthExercise{
					{ExerciseID: "bench-press", Sets: makeSets(3, 8, 100)},
				},
			}
		}
		return sessions
	}

	tests := []struct {
		name  string
		count int
		want  training.TrafficLight
	}{
		{name: "meeting the target is green", count: 4, want: training.LightGreen},
		{name: "three quarters of target is yellow", count: 3, want: training.LightYellow},
		{name: "half the target is yellow", count: 2, want: training.LightYellow},
		{name: "a quarter of target is red", count: 1, want: training.LightRed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			log := training.WorkoutLog{Strength: strengthSessions(tt.count)}
			status := training.BuildWeeklyStatus(log, training.ProgressionHistory{},
				&config, nil, weekStart, weekEnd)
			if status.StrengthSessions.Light != tt.want {
				t.Errorf("strength light = %v (ratio %v), want %v",
					status.StrengthSessions.Light, status.StrengthSessions.Ratio, tt.want)
			}
		})
	}

	t.Run("zero target counts as met", func(t *testing.T) {
		t.Parallel()
		status := training.BuildWeeklyStatus(training.WorkoutLog{}, training.ProgressionHistory{},
			nil, nil, weekStart, weekEnd)
		if status.StrengthSessions.Light != training.LightGreen {
			t.Errorf("light = %v, want green when no target is set", status.StrengthSessions.Light)
		}
		if status.CardioMinutes.Light != training.LightGreen {
			t.Errorf("cardio light = %v, want green when no target is set", status.CardioMinutes.Light)
		}
	})
}

func TestBuildWeeklyStatus_Conditioning(t *testing.T) {
	t.Parallel()

	weekStart := date("2026-08-24")
	weekEnd := date("2026-08-30")
	config := training.DefaultConfig()
	config.WeeklyTargets = &training.WeeklyTargets{
		Conditioning: &training.DomainTarget{Direction: "maintain", Sessions: 2},
	}

	log := training.WorkoutLog{
		Conditioning: []training.ConditioningSession{
			{ID: "c1", Date: date("2026-08-24"), PullupSets: []training.PullupSet{{Reps: 10}}},
		},
	}
	status := training.BuildWeeklyStatus(log, training.ProgressionHistory{},
		&config, nil, weekStart, weekEnd)
	if status.ConditioningOnTrack {
		t.Error("1 of 2 sessions must not be on track; there is no partial credit")
	}

	log.Conditioning = append(log.Conditioning, training.ConditioningSession{
		ID: "c2", Date: date("2026-08-26"), DeadhangSets: []training.DeadhangSet{{DurationSeconds: 30}},
	})
	status = training.BuildWeeklyStatus(log, training.ProgressionHistory{},
		&config, nil, weekStart, weekEnd)
	if !status.ConditioningOnTrack {
		t.Error("2 of 2 sessions should be on track")
	}
}

func TestBuildWeeklyStatus_ObjectiveTimelines(t *testing.T) {
	t.Parallel()

	weekStart := date("2026-08-24")
	weekEnd := date("2026-08-30")

	planWeeks := func(completed int) []training.PlanWeek {
		weeks := make([]training.PlanWeek, 6)
		for i := range weeks {
			weeks[i] = training.PlanWeek{Number: i + 1, Completed: i < completed}
		}
		return weeks
	}

	tests := []struct {
		name      string
		activated string
		completed int
		want      training.TimelineStatus
	}{
		{name: "keeping pace is on track", activated: "2026-08-02", completed: 4, want: training.TimelineOnTrack},
		{name: "one week behind is behind", activated: "2026-08-02", completed: 3, want: training.TimelineBehind},
		{name: "far behind is still behind", activated: "2026-08-02", completed: 0, want: training.TimelineBehind},
		// The rule never produces "ahead": extra completed weeks stay on-track.
		{name: "ahead of schedule reports on track", activated: "2026-08-02", completed: 6, want: training.TimelineOnTrack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			objectives := []training.ActivatedObjective{{
				ID:          "o1",
				Name:        "Rainier",
				TargetDate:  date("2026-11-01"),
				ActivatedAt: date(tt.activated),
				PlanWeeks:   planWeeks(tt.completed),
			}}
			status := training.BuildWeeklyStatus(training.WorkoutLog{}, training.ProgressionHistory{},
				nil, objectives, weekStart, weekEnd)
			if len(status.Objectives) != 1 {
				t.Fatalf("objectives = %d, want 1", len(status.Objectives))
			}
			if got := status.Objectives[0].Status; got != tt.want {
				t.Errorf("timeline = %v (expected %d completed %d), want %v",
					got, status.Objectives[0].ExpectedWeeks, status.Objectives[0].CompletedWeeks, tt.want)
			}
		})
	}
}

func TestBuildWeeklyStatus_ProgressionFlags(t *testing.T) {
	t.Parallel()

	weekStart := date("2026-08-24")
	weekEnd := date("2026-08-30")

	history := training.ProgressionHistory{
		Exercises: map[string][]training.ExercisePoint{
			"bench-press": {
				{Date: date("2026-08-20"), Sets: makeSets(1, 8, 100)},
				{Date: date("2026-08-23"), Sets: makeSets(1, 8, 105)},
			},
			"back-squat": {
				{Date: date("2026-08-20"), Sets: makeSets(1, 5, 185)},
				{Date: date("2026-08-23"), Sets: makeSets(1, 5, 185)},
			},
		},
		Climbing: map[training.Discipline][]training.GradePoint{
			training.DisciplineBouldering: {
				{Date: date("2026-08-05"), HighestSend: "V5"},
				{Date: date("2026-08-15"), HighestSend: "V5"},
				{Date: date("2026-08-22"), HighestSend: "V5"},
			},
		},
	}

	status := training.BuildWeeklyStatus(training.WorkoutLog{}, history, nil, nil, weekStart, weekEnd)

	if len(status.OverloadReady) != 1 || status.OverloadReady[0] != "bench-press" {
		t.Errorf("overload ready = %v, want [bench-press]", status.OverloadReady)
	}
	if len(status.PlateauDisciplines) != 1 || status.PlateauDisciplines[0] != training.DisciplineBouldering {
		t.Errorf("plateaus = %v, want [bouldering]", status.PlateauDisciplines)
	}
}
