package training

import (
	"sort"
	"time"
)

// Volume traffic-light thresholds.
const (
	volumeGreenRatio  = 0.85
	volumeYellowRatio = 0.5
)

// TrafficLight is the volume status color.
type TrafficLight string

const (
	LightGreen  TrafficLight = "green"
	LightYellow TrafficLight = "yellow"
	LightRed    TrafficLight = "red"
)

// VolumeStatus compares actual volume against a target. A zero target counts
// as fully met to avoid dividing by zero.
type VolumeStatus struct {
	Actual float64      `json:"actual"`
	Target float64      `json:"target"`
	Ratio  float64      `json:"ratio"`
	Light  TrafficLight `json:"light"`
}

func newVolumeStatus(actual, target float64) VolumeStatus {
	ratio := 1.0
	if target > 0 {
		ratio = actual / target
	}
	light := LightRed
	switch {
	case ratio >= volumeGreenRatio:
		light = LightGreen
	case ratio >= volumeYellowRatio:
		light = LightYellow
	}
	return VolumeStatus{Actual: actual, Target: target, Ratio: ratio, Light: light}
}

// TimelineStatus is an objective's schedule comparison. The rule only ever
// produces on-track or behind; "ahead" exists for display completeness but no
// rule emits it.
type TimelineStatus string

const (
	TimelineOnTrack TimelineStatus = "on-track"
	TimelineAhead   TimelineStatus = "ahead"
	TimelineBehind  TimelineStatus = "behind"
)

// ObjectiveTimeline is one objective's weekly-plan schedule status.
type ObjectiveTimeline struct {
	ObjectiveID    string         `json:"objectiveId"`
	Name           string         `json:"name"`
	ExpectedWeeks  int            `json:"expectedWeeks"`
	CompletedWeeks int            `json:"completedWeeks"`
	Status         TimelineStatus `json:"status"`
}

// objectiveTimeline compares completed plan weeks against elapsed weeks since
// activation.
func objectiveTimeline(obj ActivatedObjective, today time.Time) ObjectiveTimeline {
	elapsed := int(today.Sub(obj.ActivatedAt).Hours() / 24 / daysPerWeek)
	if elapsed < 0 {
		elapsed = 0
	}
	completed := 0
	for _, week := range obj.PlanWeeks {
		if week.Completed {
			completed++
		}
	}
	status := TimelineBehind
	if completed-elapsed >= 0 {
		status = TimelineOnTrack
	}
	return ObjectiveTimeline{
		ObjectiveID:    obj.ID,
		Name:           obj.Name,
		ExpectedWeeks:  elapsed,
		CompletedWeeks: completed,
		Status:         status,
	}
}

// WeeklyStatus is the read-only weekly snapshot for the status page.
type WeeklyStatus struct {
	WeekStart time.Time `json:"weekStart"`
	WeekEnd   time.Time `json:"weekEnd"`

	CardioMinutes    VolumeStatus `json:"cardioMinutes"`
	StrengthSessions VolumeStatus `json:"strengthSessions"`
	ClimbingSessions VolumeStatus `json:"climbingSessions"`

	ConditioningOnTrack  bool `json:"conditioningOnTrack"`
	ConditioningSessions int  `json:"conditioningSessions"`

	OverloadReady      []string            `json:"overloadReady,omitempty"`
	PlateauDisciplines []Discipline        `json:"plateauDisciplines,omitempty"`
	Objectives         []ObjectiveTimeline `json:"objectives,omitempty"`
}

// weeklyTargetsOrZero resolves the config's optional target blocks.
func weeklyTargetsOrZero(config *TrainingConfig) WeeklyTargets {
	if config == nil || config.WeeklyTargets == nil {
		return WeeklyTargets{} //nolint:exhaustruct // all targets absent.
	}
	return *config.WeeklyTargets
}

// BuildWeeklyStatus combines volume counts, progression and plateau flags,
// and objective timelines into one snapshot for [weekStart, weekEnd].
func BuildWeeklyStatus(
	log WorkoutLog,
	history ProgressionHistory,
	config *TrainingConfig,
	objectives []ActivatedObjective,
	weekStart, weekEnd time.Time,
) WeeklyStatus {
	targets := weeklyTargetsOrZero(config)

	cardioMinutes := 0.0
	for _, s := range log.Cardio {
		if inWindow(s.Date, weekStart, weekEnd) {
			cardioMinutes += float64(s.DurationSeconds) / 60 //nolint:mnd // seconds to minutes.
		}
	}
	strengthCount := 0
	for _, s := range log.Strength {
		if inWindow(s.Date, weekStart, weekEnd) {
			strengthCount++
		}
	}
	climbingCount := 0
	for _, s := range log.Climbing {
		if inWindow(s.Date, weekStart, weekEnd) {
			climbingCount++
		}
	}
	conditioningCount := 0
	for _, s := range log.Conditioning {
		if inWindow(s.Date, weekStart, weekEnd) {
			conditioningCount++
		}
	}

	cardioTarget, strengthTarget, climbingTarget, conditioningTarget := 0, 0, 0, 0
	if targets.Cardio != nil {
		cardioTarget = targets.Cardio.Sessions * 60 //nolint:mnd // sessions approximated at an hour.
	}
	if targets.Strength != nil {
		strengthTarget = targets.Strength.Sessions
	}
	if targets.Climbing != nil {
		climbingTarget = targets.Climbing.Sessions
	}
	if targets.Conditioning != nil {
		conditioningTarget = targets.Conditioning.Sessions
	}

	var overloadReady []string
	for id, points := range history.Exercises {
		if ProgressiveOverloadReady(points) {
			overloadReady = append(overloadReady, id)
		}
	}
	sort.Strings(overloadReady)
	var plateaued []Discipline
	for discipline, points := range history.Climbing {
		if ClimbingPlateaued(points, weekEnd) {
			plateaued = append(plateaued, discipline)
		}
	}
	sort.Slice(plateaued, func(i, j int) bool { return plateaued[i] < plateaued[j] })

	var timelines []ObjectiveTimeline
	for _, obj := range objectives {
		timelines = append(timelines, objectiveTimeline(obj, weekEnd))
	}

	return WeeklyStatus{
		WeekStart:            weekStart,
		WeekEnd:              weekEnd,
		CardioMinutes:        newVolumeStatus(cardioMinutes, float64(cardioTarget)),
		StrengthSessions:     newVolumeStatus(float64(strengthCount), float64(strengthTarget)),
		ClimbingSessions:     newVolumeStatus(float64(climbingCount), float64(climbingTarget)),
		ConditioningOnTrack:  conditioningCount >= conditioningTarget,
		ConditioningSessions: conditioningCount,
		OverloadReady:        overloadReady,
		PlateauDisciplines:   plateaued,
		Objectives:           timelines,
	}
}
