package training

import (
	"fmt"
	"math"
	"time"
)

// Set adjustment factors.
const (
	moderateSetFactor = 0.8
	taperSetFactor    = 0.6
	maxNamedEmphases  = 2
)

// ExercisePrescription is one concrete exercise on a training-day card.
type ExercisePrescription struct {
	ExerciseID string `json:"exerciseId"`
	Name       string `json:"name"`
	Sets       int    `json:"sets"`
	Reps       string `json:"reps"`
	Note       string `json:"note,omitempty"`
}

// Recommendation is the daily card shown on the dashboard.
type Recommendation struct {
	Title         string                 `json:"title"`
	Summary       string                 `json:"summary"`
	Exercises     []ExercisePrescription `json:"exercises,omitempty"`
	RecoveryNote  string                 `json:"recoveryNote,omitempty"`
	Modified      bool                   `json:"modified"`
	ConfigNote    string                 `json:"configNote,omitempty"`
	ProximityNote string                 `json:"proximityNote,omitempty"`
	Why           string                 `json:"why,omitempty"`
}

// RecommendationInput carries everything the builder needs. Config and
// Assessment are optional: a nil config falls back to the built-in default,
// a nil assessment to moderate recovery with a no-check-in warning.
type RecommendationInput struct {
	Config     *TrainingConfig
	Assessment *Assessment
	Log        WorkoutLog
	Objectives []ActivatedObjective
	Today      time.Time
	PlanWeek   *PlanWeek
}

// DefaultConfig is the built-in directive used when no config is active.
func DefaultConfig() TrainingConfig {
	return TrainingConfig{ //nolint:exhaustruct // optional blocks stay empty.
		FatigueState:     "low",
		CardioPriority:   PriorityBuild,
		StrengthPriority: PriorityBuild,
		ClimbingPriority: PriorityBuild,
		Emphases: map[MuscleCategory]Emphasis{
			CategoryPosterior: EmphasisMedium,
			CategoryQuads:     EmphasisMedium,
			CategoryPush:      EmphasisMedium,
			CategoryPull:      EmphasisMedium,
			CategoryCore:      EmphasisMedium,
		},
		Proximity: ProximityNormal,
	}
}

// BuildRecommendation produces the single daily recommendation reconciling
// recovery state, the active training config, mandatory-rest constraints,
// and objective proximity. It always answers; missing inputs resolve to
// fallbacks with explanatory notes, never errors.
func BuildRecommendation(in RecommendationInput) Recommendation {
	config := DefaultConfig()
	usedDefault := true
	if in.Config != nil {
		config = *in.Config
		usedDefault = false
	}

	tier := TierModerate
	noCheckIn := in.Assessment == nil
	if in.Assessment != nil {
		tier = in.Assessment.Tier
	}

	resting := MandatoryRestDimensions(in.Log, in.Today)

	var rec Recommendation
	switch {
	case tier == TierRest || config.Proximity == ProximityPeakWeek:
		rec = restDayCard(tier, config.Proximity)
	case tier == TierFatigued:
		rec = activeRecoveryCard()
	default:
		rec = trainingDayCard(config, tier, resting)
	}

	if noCheckIn {
		rec.RecoveryNote = "No check-in today. Assuming moderate recovery; " +
			"complete a check-in for an accurate recommendation."
	}

	applyProximity(&rec, config.Proximity, tier)

	// The why and config notes always win over branch defaults.
	rec.Why = whyNote(in, config, usedDefault, tier)
	if tier != TierRest {
		rec.ConfigNote = configNote(config)
	} else {
		rec.ConfigNote = ""
	}

	return rec
}

func restDayCard(tier RecoveryTier, proximity Proximity) Recommendation {
	if proximity == ProximityPeakWeek && tier != TierRest {
		return Recommendation{ //nolint:exhaustruct // notes filled by caller.
			Title:        "Rest Day",
			Summary:      "Rest and easy movement only",
			RecoveryNote: "Peak week: stay fresh. A short walk or gentle mobility is plenty.",
		}
	}
	return Recommendation{ //nolint:exhaustruct // notes filled by caller.
		Title:        "Rest Day",
		Summary:      "Full rest",
		RecoveryNote: "Your body is asking for a day off. Take it.",
	}
}

func activeRecoveryCard() Recommendation {
	return Recommendation{ //nolint:exhaustruct // notes filled by caller.
		Title:        "Active Recovery",
		Summary:      "20-45 min easy movement, Zone 1 only",
		RecoveryNote: "Fatigued: keep the heart rate in Zone 1. " +
			"No strength, climbing, or conditioning today.",
	}
}

// selectArchetype picks the workout shape by fixed priority order, skipping
// archetypes blocked by mandatory rest.
func selectArchetype(config TrainingConfig, resting []Dimension) Archetype {
	isResting := func(dim Dimension) bool {
		for _, d := range resting {
			if d == dim {
				return true
			}
		}
		return false
	}
	switch {
	case config.Emphasis(CategoryPosterior) == EmphasisHigh && !isResting(PosteriorChain):
		return ArchetypePosterior
	case config.Emphasis(CategoryPull) == EmphasisHigh && !isResting(ForearmsGrip):
		return ArchetypePull
	case config.Emphasis(CategoryPush) == EmphasisHigh:
		return ArchetypePush
	case config.Emphasis(CategoryCore) == EmphasisHigh:
		return ArchetypeCore
	case config.Emphasis(CategoryQuads) == EmphasisHigh && !isResting(PosteriorChain):
		return ArchetypeQuad
	default:
		return ArchetypeFullBody
	}
}

// excludedExercises collects the ids blocked by the resting dimensions.
func excludedExercises(resting []Dimension) map[string]bool {
	excluded := make(map[string]bool)
	for _, dim := range resting {
		for _, id := range mandatoryRestExclusions[dim] {
			excluded[id] = true
		}
	}
	return excluded
}

func trainingDayCard(config TrainingConfig, tier RecoveryTier, resting []Dimension) Recommendation {
	archetype := selectArchetype(config, resting)
	excluded := excludedExercises(resting)
	moderateMode := tier == TierModerate

	var exercises []ExercisePrescription
	for _, id := range archetypeExercises[archetype] {
		if excluded[id] {
			continue
		}
		info := LookupExercise(id)
		sets := info.DefaultSets
		note := ""
		if moderateMode {
			sets = max(1, int(math.Round(float64(sets)*moderateSetFactor)))
			note = "Reduced volume for moderate recovery"
		}
		switch config.Emphasis(info.Primary) {
		case EmphasisHigh:
			if !moderateMode {
				sets++
			}
		case EmphasisLow:
			sets = max(1, sets-1)
		case EmphasisMedium:
		}
		exercises = append(exercises, ExercisePrescription{
			ExerciseID: id,
			Name:       info.Name,
			Sets:       sets,
			Reps:       info.DefaultReps,
			Note:       note,
		})
	}

	recoveryNote := "Fully recovered: train as planned."
	if moderateMode {
		recoveryNote = "Moderate recovery: volume trimmed, keep quality high."
	}

	return Recommendation{ //nolint:exhaustruct // notes filled by caller.
		Title:        string(archetype),
		Summary:      fmt.Sprintf("%d exercises, %s recovery", len(exercises), tier),
		Exercises:    exercises,
		RecoveryNote: recoveryNote,
		Modified:     moderateMode,
	}
}

// applyProximity applies the objective-proximity modifier after the main
// branch. Taper scales set counts by 0.6; approaching only informs.
func applyProximity(rec *Recommendation, proximity Proximity, tier RecoveryTier) {
	switch proximity {
	case ProximityTaper:
		if tier == TierRest {
			return
		}
		for i := range rec.Exercises {
			rec.Exercises[i].Sets = max(1, int(math.Round(float64(rec.Exercises[i].Sets)*taperSetFactor)))
			rec.Exercises[i].Note = "Taper"
		}
		rec.Modified = true
		rec.ProximityNote = "Taper: volume cut to stay sharp for the objective."
	case ProximityApproaching:
		rec.ProximityNote = "Objective approaching: prioritize specificity and recovery."
	case ProximityNormal, ProximityPeakWeek:
	}
}

// nearestObjective returns the active objective with the closest target date.
func nearestObjective(objectives []ActivatedObjective) *ActivatedObjective {
	var nearest *ActivatedObjective
	for i := range objectives {
		if nearest == nil || objectives[i].TargetDate.Before(nearest.TargetDate) {
			nearest = &objectives[i]
		}
	}
	return nearest
}

// whyNote explains the recommendation, preferring the most specific signal:
// HRV/RHR deltas, then flag interactions, then the nearest objective, then a
// generic recovery statement.
func whyNote(in RecommendationInput, config TrainingConfig, usedDefault bool, tier RecoveryTier) string {
	if a := in.Assessment; a != nil {
		if a.HRVDropPercent != nil && *a.HRVDropPercent > 0 {
			return fmt.Sprintf("HRV is %.0f%% below your baseline, so today leans %s.",
				*a.HRVDropPercent, tier)
		}
		if a.RHRDiff != nil && *a.RHRDiff > 0 {
			return fmt.Sprintf("Resting HR is %.0f bpm over baseline, so today leans %s.",
				*a.RHRDiff, tier)
		}
		if len(a.FlagMessages) > 0 {
			return a.FlagMessages[0]
		}
	}
	if obj := nearestObjective(in.Objectives); obj != nil {
		weeks := obj.WeeksRemaining(in.Today)
		return fmt.Sprintf("%s is %d weeks out (%s phase).", obj.Name, weeks, obj.Phase(in.Today))
	}
	if usedDefault {
		return fmt.Sprintf("Recovery is %s and no training block is active, so this is the standard plan.", tier)
	}
	return fmt.Sprintf("Recovery is %s; following your current training block.", tier)
}

// configNote names how the active config shaped the card. Callers suppress
// it on rest days.
func configNote(config TrainingConfig) string {
	var high []string
	for _, cat := range []MuscleCategory{
		CategoryPosterior, CategoryQuads, CategoryPush, CategoryPull, CategoryCore,
	} {
		if config.Emphasis(cat) == EmphasisHigh {
			high = append(high, string(cat))
		}
	}
	if len(high) > 0 {
		if len(high) > maxNamedEmphases {
			high = high[:maxNamedEmphases]
		}
		if len(high) == 1 {
			return fmt.Sprintf("This week emphasizes %s.", high[0])
		}
		return fmt.Sprintf("This week emphasizes %s and %s.", high[0], high[1])
	}
	if config.CardioPriority != PriorityBuild {
		return fmt.Sprintf("Cardio priority is %s this block.", config.CardioPriority)
	}
	return "Using medium emphasis defaults across all muscle groups."
}
