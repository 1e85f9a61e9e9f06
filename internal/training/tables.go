package training

// Static reference data: the exercise library with per-set stimulus weights
// and default set/rep schemes, the cardio activity mapping rules, the
// climbing and conditioning stimulus units, and the workout archetypes. All
// of it is immutable and embedded; none of it belongs in the database.

import "sort"

// ExerciseInfo is one exercise library entry.
type ExerciseInfo struct {
	ID                  string
	Name                string
	Primary             MuscleCategory
	DefaultSets         int
	DefaultReps         string
	PerSetStimulus      StimulusMap
	DescriptionMarkdown string
}

// exerciseLibrary is keyed by exercise id. Stored sessions referencing an id
// missing here render the raw id instead of failing.
var exerciseLibrary = map[string]ExerciseInfo{
	"deadlift": {
		ID:          "deadlift",
		Name:        "Deadlift",
		Primary:     CategoryPosterior,
		DefaultSets: 4,
		DefaultReps: "5",
		PerSetStimulus: StimulusMap{
			PosteriorChain: 0.5, Core: 0.15, ForearmsGrip: 0.25,
		},
		DescriptionMarkdown: "Conventional barbell deadlift. Hinge at the hips, " +
			"brace hard, and keep the bar against your legs.",
	},
	"single-leg-rdl": {
		ID:          "single-leg-rdl",
		Name:        "Single-leg Romanian deadlift",
		Primary:     CategoryPosterior,
		DefaultSets: 3,
		DefaultReps: "8",
		PerSetStimulus: StimulusMap{
			PosteriorChain: 0.4, Core: 0.2,
		},
		DescriptionMarkdown: "Single-leg hip hinge with a dumbbell or kettlebell. " +
			"Builds the hamstring and glute control that pays off on uneven descents.",
	},
	"hip-thrust": {
		ID:          "hip-thrust",
		Name:        "Hip thrust",
		Primary:     CategoryPosterior,
		DefaultSets: 3,
		DefaultReps: "10",
		PerSetStimulus: StimulusMap{
			PosteriorChain: 0.45,
		},
	},
	"kettlebell-swing": {
		ID:          "kettlebell-swing",
		Name:        "Kettlebell swing",
		Primary:     CategoryPosterior,
		DefaultSets: 3,
		DefaultReps: "15",
		PerSetStimulus: StimulusMap{
			PosteriorChain: 0.35, ForearmsGrip: 0.1,
		},
	},
	"back-squat": {
		ID:          "back-squat",
		Name:        "Back squat",
		Primary:     CategoryQuads,
		DefaultSets: 4,
		DefaultReps: "5",
		PerSetStimulus: StimulusMap{
			QuadDominant: 0.5, PosteriorChain: 0.2, Core: 0.1,
		},
		DescriptionMarkdown: "High-bar barbell back squat to at least parallel.",
	},
	"split-squat": {
		ID:          "split-squat",
		Name:        "Bulgarian split squat",
		Primary:     CategoryQuads,
		DefaultSets: 3,
		DefaultReps: "8",
		PerSetStimulus: StimulusMap{
			QuadDominant: 0.45, PosteriorChain: 0.1,
		},
	},
	"step-up": {
		ID:          "step-up",
		Name:        "Weighted step-up",
		Primary:     CategoryQuads,
		DefaultSets: 3,
		DefaultReps: "8",
		PerSetStimulus: StimulusMap{
			QuadDominant: 0.4, LoadedCarry: 0.1,
		},
		DescriptionMarkdown: "Step-ups onto a knee-height box, loaded with a pack " +
			"or dumbbells. The closest gym movement to steep uphill travel.",
	},
	"bench-press": {
		ID:          "bench-press",
		Name:        "Bench press",
		Primary:     CategoryPush,
		DefaultSets: 4,
		DefaultReps: "6",
		PerSetStimulus: StimulusMap{
			Push: 0.5,
		},
	},
	"overhead-press": {
		ID:          "overhead-press",
		Name:        "Overhead press",
		Primary:     CategoryPush,
		DefaultSets: 3,
		DefaultReps: "6",
		PerSetStimulus: StimulusMap{
			Push: 0.45, Core: 0.1,
		},
	},
	"push-up": {
		ID:          "push-up",
		Name:        "Push-up",
		Primary:     CategoryPush,
		DefaultSets: 3,
		DefaultReps: "12",
		PerSetStimulus: StimulusMap{
			Push: 0.3, Core: 0.1,
		},
	},
	"pull-up": {
		ID:          "pull-up",
		Name:        "Pull-up",
		Primary:     CategoryPull,
		DefaultSets: 4,
		DefaultReps: "6",
		PerSetStimulus: StimulusMap{
			Pull: 0.45, ForearmsGrip: 0.2,
		},
	},
	"lat-pulldown": {
		ID:          "lat-pulldown",
		Name:        "Lat pulldown",
		Primary:     CategoryPull,
		DefaultSets: 3,
		DefaultReps: "10",
		PerSetStimulus: StimulusMap{
			Pull: 0.4, ForearmsGrip: 0.15,
		},
	},
	"bent-over-row": {
		ID:          "bent-over-row",
		Name:        "Bent-over row",
		Primary:     CategoryPull,
		DefaultSets: 4,
		DefaultReps: "8",
		PerSetStimulus: StimulusMap{
			Pull: 0.4, PosteriorChain: 0.15, ForearmsGrip: 0.1,
		},
	},
	"hanging-leg-lifts": {
		ID:          "hanging-leg-lifts",
		Name:        "Hanging leg lifts",
		Primary:     CategoryCore,
		DefaultSets: 3,
		DefaultReps: "10",
		PerSetStimulus: StimulusMap{
			Core: 0.4, ForearmsGrip: 0.2,
		},
	},
	"plank": {
		ID:          "plank",
		Name:        "Plank",
		Primary:     CategoryCore,
		DefaultSets: 3,
		DefaultReps: "60s",
		PerSetStimulus: StimulusMap{
			Core: 0.3,
		},
	},
	"ab-rollout": {
		ID:          "ab-rollout",
		Name:        "Ab wheel rollout",
		Primary:     CategoryCore,
		DefaultSets: 3,
		DefaultReps: "8",
		PerSetStimulus: StimulusMap{
			Core: 0.45,
		},
	},
	"farmers-carry": {
		ID:          "farmers-carry",
		Name:        "Farmer's carry",
		Primary:     CategoryCore,
		DefaultSets: 3,
		DefaultReps: "40m",
		PerSetStimulus: StimulusMap{
			LoadedCarry: 0.5, ForearmsGrip: 0.3, Core: 0.15,
		},
		DescriptionMarkdown: "Heavy carries over distance. Grip, trunk, and the " +
			"ability to move under load when already tired.",
	},
}

// LookupExercise returns the library entry for an id. Missing ids degrade to
// a minimal entry rendering the raw id so that historical sessions outliving
// a library change still display.
func LookupExercise(id string) ExerciseInfo {
	if info, ok := exerciseLibrary[id]; ok {
		return info
	}
	return ExerciseInfo{
		ID:          id,
		Name:        id,
		Primary:     CategoryCore,
		DefaultSets: 3,
		DefaultReps: "8",
	}
}

// ExerciseLibrary returns all library entries sorted by name.
func ExerciseLibrary() []ExerciseInfo {
	exercises := make([]ExerciseInfo, 0, len(exerciseLibrary))
	for _, info := range exerciseLibrary {
		exercises = append(exercises, info)
	}
	sort.Slice(exercises, func(i, j int) bool { return exercises[i].Name < exercises[j].Name })
	return exercises
}

// Cardio mapping rule thresholds.
const (
	// steepElevFtPerHour splits hilly from flat cardio sessions.
	steepElevFtPerHour = 500.0
)

// cardioRule maps a cardio session onto a per-hour stimulus unit vector.
// Conditional fields are tri-state: nil means the condition does not apply.
type cardioRule struct {
	activityType string
	steep        *bool // elevation gain per hour >= 500 ft
	withPack     *bool
	withWeights  *bool
	perHour      StimulusMap
}

// cardioRules is scanned in order; the first rule whose conditions all hold
// wins. Activity-type-only fallback rules sit below the conditional rules.
var cardioRules = []cardioRule{
	{
		activityType: "Hike",
		steep:        yes,
		withPack:     yes,
		perHour: StimulusMap{
			PosteriorChain: 0.6, QuadDominant: 0.5, LoadedCarry: 0.8, Core: 0.2,
		},
	},
	{
		activityType: "Hike",
		steep:        yes,
		withPack:     no,
		perHour: StimulusMap{
			PosteriorChain: 0.5, QuadDominant: 0.5, Core: 0.1,
		},
	},
	{
		activityType: "Hike",
		steep:        no,
		withPack:     yes,
		perHour: StimulusMap{
			PosteriorChain: 0.3, QuadDominant: 0.25, LoadedCarry: 0.6, Core: 0.15,
		},
	},
	{
		activityType: "Hike",
		steep:        no,
		withPack:     no,
		perHour: StimulusMap{
			PosteriorChain: 0.25, QuadDominant: 0.25,
		},
	},
	{
		activityType: "Run",
		steep:        yes,
		perHour: StimulusMap{
			PosteriorChain: 0.5, QuadDominant: 0.45,
		},
	},
	{
		activityType: "Walk",
		withWeights:  yes,
		perHour: StimulusMap{
			LoadedCarry: 0.5, ForearmsGrip: 0.2, Core: 0.1,
		},
	},
	// Fallbacks by activity type alone.
	{activityType: "Hike", perHour: StimulusMap{PosteriorChain: 0.25, QuadDominant: 0.25}},
	{activityType: "Run", perHour: StimulusMap{PosteriorChain: 0.35, QuadDominant: 0.3}},
	{activityType: "Ride", perHour: StimulusMap{QuadDominant: 0.4}},
	{activityType: "Ski", perHour: StimulusMap{QuadDominant: 0.45, PosteriorChain: 0.3, Core: 0.15}},
	{activityType: "Walk", perHour: StimulusMap{PosteriorChain: 0.1, QuadDominant: 0.1}},
}

var (
	yes = boolPtr(true)
	no  = boolPtr(false)
)

func boolPtr(b bool) *bool { return &b }

// Per-climb and per-set conditioning stimulus units.
var (
	// climbUnit is the single all-disciplines vector, scaled by climb count.
	climbUnit = StimulusMap{Pull: 0.3, Core: 0.15, ForearmsGrip: 0.4}

	pullupSetUnit   = StimulusMap{Pull: 0.3, ForearmsGrip: 0.2}
	deadhangSetUnit = StimulusMap{ForearmsGrip: 0.4}
	// hangboardRoundUnit is scaled by the set's round count.
	hangboardRoundUnit = StimulusMap{ForearmsGrip: 0.25}
)

// Archetype is one of the selectable training-day workout shapes.
type Archetype string

const (
	ArchetypePosterior Archetype = "Posterior chain day"
	ArchetypePull      Archetype = "Pull day"
	ArchetypePush      Archetype = "Push day"
	ArchetypeCore      Archetype = "Core day"
	ArchetypeQuad      Archetype = "Quad day"
	ArchetypeFullBody  Archetype = "Full body day"
)

// archetypeExercises lists each archetype's fixed exercise ids in
// prescription order.
var archetypeExercises = map[Archetype][]string{
	ArchetypePosterior: {"deadlift", "single-leg-rdl", "hip-thrust", "kettlebell-swing"},
	ArchetypePull:      {"pull-up", "lat-pulldown", "bent-over-row", "hanging-leg-lifts"},
	ArchetypePush:      {"bench-press", "overhead-press", "push-up", "plank"},
	ArchetypeCore:      {"hanging-leg-lifts", "ab-rollout", "plank", "farmers-carry"},
	ArchetypeQuad:      {"back-squat", "split-squat", "step-up", "single-leg-rdl"},
	ArchetypeFullBody:  {"back-squat", "deadlift", "bench-press", "lat-pulldown", "plank"},
}

// mandatoryRestExclusions maps a resting dimension to the exercise ids that
// would stress it and must be skipped on training days.
var mandatoryRestExclusions = map[Dimension][]string{
	ForearmsGrip:   {"deadlift", "lat-pulldown", "hanging-leg-lifts"},
	PosteriorChain: {"deadlift", "single-leg-rdl"},
}
