package training_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jlahtela/ridgeline/internal/training"
)

func TestUpdateStrengthProgression(t *testing.T) {
	t.Parallel()

	var history training.ProgressionHistory
	session := training.StrengthSession{
		ID:   "s1",
		Date: date("2026-08-20"),
		Exercises: []training.StrengthExercise{
			{ExerciseID: "bench-press", Sets: makeSets(3, 8, 100)},
			{ExerciseID: "deadlift", Sets: makeSets(4, 5, 225)},
		},
	}
	training.UpdateStrengthProgression(&history, session)

	if len(history.Exercises["bench-press"]) != 1 || len(history.Exercises["deadlift"]) != 1 {
		t.Fatalf("expected one point per exercise, got %+v", history.Exercises)
	}

	// A second session appends without touching the first point.
	later := session
	later.Date = date("2026-08-23")
	training.UpdateStrengthProgression(&history, later)
	points := history.Exercises["bench-press"]
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if !points[0].Date.Equal(date("2026-08-20")) {
		t.Error("existing point was reordered")
	}
}

func TestUpdateClimbingProgression(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		discipline training.Discipline
		climbs     []training.Climb
		wantPoint  bool
		wantGrade  string
	}{
		{
			name:       "highest send wins over harder attempt",
			discipline: training.DisciplineBouldering,
			climbs: []training.Climb{
				{Grade: "V4", Result: training.ResultSend},
				{Grade: "V6", Result: training.ResultAttempt},
				{Grade: "V5", Result: training.ResultSend},
			},
			wantPoint: true,
			wantGrade: "V5",
		},
		{
			name:       "YDS ordinal ordering for rope grades",
			discipline: training.DisciplineSport,
			climbs: []training.Climb{
				{Grade: "5.10d", Result: training.ResultSend},
				{Grade: "5.11a", Result: training.ResultSend},
				{Grade: "5.9", Result: training.ResultSend},
			},
			wantPoint: true,
			wantGrade: "5.11a",
		},
		{
			name:       "zero sends contributes no point",
			discipline: training.DisciplineBouldering,
			climbs: []training.Climb{
				{Grade: "V7", Result: training.ResultAttempt},
			},
			wantPoint: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var history training.ProgressionHistory
			training.UpdateClimbingProgression(&history, training.ClimbingSession{
				ID:         "c1",
				Date:       date("2026-08-20"),
				Discipline: tt.discipline,
				Climbs:     tt.climbs,
			})
			points := history.Climbing[tt.discipline]
			if !tt.wantPoint {
				if len(points) != 0 {
					t.Fatalf("expected no point, got %+v", points)
				}
				return
			}
			if len(points) != 1 {
				t.Fatalf("expected one point, got %+v", points)
			}
			if points[0].HighestSend != tt.wantGrade {
				t.Errorf("highest send = %s, want %s", points[0].HighestSend, tt.wantGrade)
			}
		})
	}
}

func TestProgressiveOverloadReady(t *testing.T) {
	t.Parallel()

	point := func(day string, sets ...training.StrengthSet) training.ExercisePoint {
		return training.ExercisePoint{Date: date(day), Sets: sets}
	}
	set := func(reps int, weight float64) training.StrengthSet {
		return training.StrengthSet{SetNumber: 1, Reps: reps, Weight: weight, Unit: "lbs"}
	}

	tests := []struct {
		name   string
		points []training.ExercisePoint
		want   bool
	}{
		{
			name: "first comparable improvement with exactly two sessions",
			points: []training.ExercisePoint{
				point("2026-08-01", set(8, 100)),
				point("2026-08-04", set(8, 105)),
			},
			want: true,
		},
		{
			name: "more reps at equal weight beats the set",
			points: []training.ExercisePoint{
				point("2026-08-01", set(8, 100)),
				point("2026-08-04", set(9, 100)),
			},
			want: true,
		},
		{
			name: "equal reps at equal weight is not a beat",
			points: []training.ExercisePoint{
				point("2026-08-01", set(8, 100)),
				point("2026-08-04", set(8, 100)),
			},
			want: false,
		},
		{
			name: "one regressed set suppresses the flag",
			points: []training.ExercisePoint{
				point("2026-08-01", set(8, 100), set(8, 100)),
				point("2026-08-04", set(8, 105), set(8, 95)),
			},
			want: false,
		},
		{
			name: "three sessions require two consecutive improvements",
			points: []training.ExercisePoint{
				point("2026-08-01", set(8, 100)),
				point("2026-08-04", set(8, 100)),
				point("2026-08-07", set(8, 105)),
			},
			want: false,
		},
		{
			name: "two consecutive improvements fire",
			points: []training.ExercisePoint{
				point("2026-08-01", set(8, 100)),
				point("2026-08-04", set(8, 105)),
				point("2026-08-07", set(8, 110)),
			},
			want: true,
		},
		{
			name:   "single session never fires",
			points: []training.ExercisePoint{point("2026-08-01", set(8, 100))},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := training.ProgressiveOverloadReady(tt.points); got != tt.want {
				t.Errorf("ProgressiveOverloadReady() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClimbingPlateaued(t *testing.T) {
	t.Parallel()

	today := date("2026-08-26")
	grade := func(day, send string) training.GradePoint {
		return training.GradePoint{Date: date(day), HighestSend: send}
	}

	tests := []struct {
		name   string
		points []training.GradePoint
		want   bool
	}{
		{
			name: "flat four weeks flags a plateau",
			points: []training.GradePoint{
				grade("2026-08-05", "V5"),
				grade("2026-08-15", "V5"),
				grade("2026-08-22", "V5"),
			},
			want: true,
		},
		{
			name: "grade change in the four-week window clears it",
			points: []training.GradePoint{
				grade("2026-08-05", "V5"),
				grade("2026-08-22", "V6"),
			},
			want: false,
		},
		{
			name: "too few sends in the six-week gate",
			points: []training.GradePoint{
				grade("2026-08-22", "V5"),
			},
			want: false,
		},
		{
			name: "gate met but only one recent send",
			points: []training.GradePoint{
				grade("2026-07-16", "V5"),
				grade("2026-08-22", "V5"),
			},
			want: false,
		},
		{
			name: "flat sends older than four weeks do not flag",
			points: []training.GradePoint{
				grade("2026-07-16", "V5"),
				grade("2026-07-20", "V5"),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := training.ClimbingPlateaued(tt.points, today); got != tt.want {
				t.Errorf("ClimbingPlateaued() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgressionHistoryRoundTrip(t *testing.T) {
	t.Parallel()

	var history training.ProgressionHistory
	training.UpdateStrengthProgression(&history, training.StrengthSession{
		ID:   "s1",
		Date: date("2026-08-20"),
		Exercises: []training.StrengthExercise{
			{ExerciseID: "back-squat", Sets: makeSets(4, 5, 185)},
		},
	})

	want := training.ProgressionHistory{
		Exercises: map[string][]training.ExercisePoint{
			"back-squat": {{Date: date("2026-08-20"), Sets: makeSets(4, 5, 185)}},
		},
	}
	if diff := cmp.Diff(want, history); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
}
