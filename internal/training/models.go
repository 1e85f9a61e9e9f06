// Package training implements the recommendation, recovery, and stimulus
// decision engine for the dashboard: heart-rate zones, cross-domain stimulus
// accumulation, strength/climbing progression tracking, recovery
// classification, the daily recommendation builder, and the weekly status
// aggregator.
//
// The engine is a pure-function layer: every component takes the collections
// it needs (workout log, check-ins, baseline, config, objectives) as explicit
// parameters and never touches storage. Service wires the engine to the
// SQLite-backed repositories.
package training

import "time"

const dateFormat = time.DateOnly

// dateKey returns the calendar-day key used for all date-range comparisons.
func dateKey(t time.Time) string {
	return t.Format(dateFormat)
}

// Dimension indexes the fixed muscle/energy-system stimulus vector.
type Dimension int

const (
	PosteriorChain Dimension = iota
	QuadDominant
	Push
	Pull
	Core
	LoadedCarry
	ForearmsGrip

	NumDimensions = 7
)

func (d Dimension) String() string {
	switch d {
	case PosteriorChain:
		return "Posterior chain"
	case QuadDominant:
		return "Quad dominant"
	case Push:
		return "Push"
	case Pull:
		return "Pull"
	case Core:
		return "Core"
	case LoadedCarry:
		return "Loaded carry"
	case ForearmsGrip:
		return "Forearms & grip"
	}
	return "Unknown"
}

// StimulusMap is the 7-dimension stimulus vector. It accumulates additively
// and is always derived from sessions, never stored as a source of truth.
type StimulusMap [NumDimensions]float64

// Add returns the element-wise sum of two stimulus maps.
func (m StimulusMap) Add(other StimulusMap) StimulusMap {
	var sum StimulusMap
	for i := range m {
		sum[i] = m[i] + other[i]
	}
	return sum
}

// Scale returns the map with every dimension multiplied by factor.
func (m StimulusMap) Scale(factor float64) StimulusMap {
	var scaled StimulusMap
	for i := range m {
		scaled[i] = m[i] * factor
	}
	return scaled
}

// StimulusLevel is the traffic-light classification of one dimension's
// accumulated stimulus.
type StimulusLevel string

const (
	StimulusLow    StimulusLevel = "low"
	StimulusMedium StimulusLevel = "medium"
	StimulusHigh   StimulusLevel = "high"
)

// ZoneRange is one heart-rate zone's bpm boundaries.
type ZoneRange struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// ZoneThresholds holds the five zone boundaries, z1 at index 0. Boundaries
// are monotonic and non-overlapping: each zone's high equals the next zone's
// low.
type ZoneThresholds [5]ZoneRange

// TrainingLoad is the per-session load score computed by the file decoder.
type TrainingLoad struct {
	Score          int    `json:"score"`
	Classification string `json:"classification"`
}

// CardioSession is one completed cardio activity. Heart-rate fields are nil
// when the device file carried no HR stream.
type CardioSession struct {
	ID              string        `json:"id"`
	Date            time.Time     `json:"date"`
	ActivityType    string        `json:"activityType"`
	DurationSeconds int           `json:"durationSeconds"`
	DistanceMeters  float64       `json:"distanceMeters"`
	ElevationGainFt float64       `json:"elevationGainFt"`
	AvgHR           *int          `json:"avgHR,omitempty"`
	MaxHR           *int          `json:"maxHR,omitempty"`
	ZoneMinutes     *[5]float64   `json:"zoneMinutes,omitempty"`
	TrainingLoad    *TrainingLoad `json:"trainingLoad,omitempty"`

	// User annotations.
	PackWeightLbs   *float64 `json:"packWeightLbs,omitempty"`
	Terrain         string   `json:"terrain,omitempty"`
	WeightsUsed     bool     `json:"weightsUsed,omitempty"`
	PerceivedEffort *int     `json:"perceivedEffort,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

// StrengthSet is a single ordered set. SetNumber is 1-indexed.
type StrengthSet struct {
	SetNumber int     `json:"setNumber"`
	Reps      int     `json:"reps"`
	Weight    float64 `json:"weight"`
	Unit      string  `json:"unit"`
}

// StrengthExercise groups the sets performed for one exercise in a session.
type StrengthExercise struct {
	ExerciseID string        `json:"exerciseId"`
	Sets       []StrengthSet `json:"sets"`
}

// StrengthSession is one logged strength workout.
type StrengthSession struct {
	ID         string             `json:"id"`
	Date       time.Time          `json:"date"`
	TemplateID string             `json:"templateId,omitempty"`
	Exercises  []StrengthExercise `json:"exercises"`
	Notes      string             `json:"notes,omitempty"`
}

// Discipline is a climbing discipline.
type Discipline string

const (
	DisciplineBouldering Discipline = "bouldering"
	DisciplineSport      Discipline = "sport"
	DisciplineTrad       Discipline = "trad"
	DisciplineTopRope    Discipline = "top_rope"
	DisciplineAlpine     Discipline = "alpine"
)

// ClimbResult distinguishes a send from an attempt.
type ClimbResult string

const (
	ResultSend    ClimbResult = "send"
	ResultAttempt ClimbResult = "attempt"
)

// Climb is one route or problem within a climbing session.
type Climb struct {
	Grade  string      `json:"grade"`
	Result ClimbResult `json:"result"`
}

// ClimbingSession is one logged climbing session.
type ClimbingSession struct {
	ID         string     `json:"id"`
	Date       time.Time  `json:"date"`
	Discipline Discipline `json:"discipline"`
	Climbs     []Climb    `json:"climbs"`
	Notes      string     `json:"notes,omitempty"`
}

// PullupSet is one set of pull-ups.
type PullupSet struct {
	Reps int `json:"reps"`
}

// DeadhangSet is one timed deadhang.
type DeadhangSet struct {
	DurationSeconds int `json:"durationSeconds"`
}

// HangboardSet is one hangboard repeater block.
type HangboardSet struct {
	Rounds int `json:"rounds"`
	EdgeMM int `json:"edgeMm,omitempty"`
}

// ConditioningSession is one logged grip/conditioning session.
type ConditioningSession struct {
	ID            string         `json:"id"`
	Date          time.Time      `json:"date"`
	PullupSets    []PullupSet    `json:"pullupSets,omitempty"`
	DeadhangSets  []DeadhangSet  `json:"deadhangSets,omitempty"`
	HangboardSets []HangboardSet `json:"hangboardSets,omitempty"`
	Notes         string         `json:"notes,omitempty"`
}

// WorkoutLog holds all logged sessions grouped by type.
type WorkoutLog struct {
	Cardio       []CardioSession       `json:"cardio"`
	Strength     []StrengthSession     `json:"strength"`
	Climbing     []ClimbingSession     `json:"climbing"`
	Conditioning []ConditioningSession `json:"conditioning"`
}

// SleepQuality is the subjective sleep rating from the daily check-in.
type SleepQuality string

const (
	SleepGreat SleepQuality = "great"
	SleepGood  SleepQuality = "good"
	SleepFair  SleepQuality = "fair"
	SleepLow   SleepQuality = "low"
	SleepPoor  SleepQuality = "poor"
)

// SleepInfo is the sleep block of a check-in.
type SleepInfo struct {
	Quality SleepQuality `json:"quality"`
	Hours   float64      `json:"hours"`
	Bedtime string       `json:"bedtime,omitempty"`
	Wake    string       `json:"wake,omitempty"`
}

// RecoveryMetrics carries the morning physiological measurements. All fields
// are nil when the user did not measure.
type RecoveryMetrics struct {
	HRV         *float64 `json:"hrv,omitempty"`
	RestingHR   *float64 `json:"restingHR,omitempty"`
	HRRangeLow  *float64 `json:"hrRangeLow,omitempty"`
	HRRangeHigh *float64 `json:"hrRangeHigh,omitempty"`
}

// SubjectiveFeel holds the three 1-5 self-ratings.
type SubjectiveFeel struct {
	Legs       int `json:"legs"`
	Energy     int `json:"energy"`
	Motivation int `json:"motivation"`
}

// ContextFlag marks an external circumstance affecting recovery.
type ContextFlag string

const (
	FlagStress   ContextFlag = "stress"
	FlagTravel   ContextFlag = "travel"
	FlagIllness  ContextFlag = "illness"
	FlagAltitude ContextFlag = "altitude"
)

// DailyCheckIn is the morning check-in. At most one exists per calendar day.
//
// Classification is a snapshot taken at save time: later edits to the other
// fields preserve it, and only an explicit re-classify action replaces it.
type DailyCheckIn struct {
	Date           time.Time       `json:"date"`
	Sleep          SleepInfo       `json:"sleep"`
	Recovery       RecoveryMetrics `json:"recovery"`
	Feel           SubjectiveFeel  `json:"feel"`
	Flags          []ContextFlag   `json:"flags,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	Classification *Assessment     `json:"classification,omitempty"`
}

// HasFlag reports whether the check-in carries the given context flag.
func (c DailyCheckIn) HasFlag(flag ContextFlag) bool {
	for _, f := range c.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// PersonalBaseline holds the rolling 30-day HRV/RHR averages with manual
// fallbacks. The rolling components stay nil until enough check-ins exist.
type PersonalBaseline struct {
	HRV             *float64 `json:"hrv,omitempty"`
	RestingHR       *float64 `json:"restingHR,omitempty"`
	ManualHRV       *float64 `json:"manualHRV,omitempty"`
	ManualRestingHR *float64 `json:"manualRestingHR,omitempty"`
	Established     bool     `json:"established"`
}

// RecoveryTier is the four-step readiness classification. Higher is worse.
type RecoveryTier int

const (
	TierFull RecoveryTier = iota
	TierModerate
	TierFatigued
	TierRest
)

func (t RecoveryTier) String() string {
	switch t {
	case TierFull:
		return "full"
	case TierModerate:
		return "moderate"
	case TierFatigued:
		return "fatigued"
	case TierRest:
		return "rest"
	}
	return "unknown"
}

// Assessment is the full recovery classification for one day, including the
// per-signal sub-scores for explanation.
type Assessment struct {
	Tier RecoveryTier `json:"tier"`

	SleepTier      RecoveryTier  `json:"sleepTier"`
	HRVTier        *RecoveryTier `json:"hrvTier,omitempty"`
	RHRTier        *RecoveryTier `json:"rhrTier,omitempty"`
	SubjectiveTier *RecoveryTier `json:"subjectiveTier,omitempty"`

	// Display values. HRVDropPercent is the percent drop from baseline,
	// RHRDiff the bpm difference; both rounded, nil without a baseline.
	HRVDropPercent *float64 `json:"hrvDropPercent,omitempty"`
	RHRDiff        *float64 `json:"rhrDiff,omitempty"`

	// FlagMessages lists the applied flag overrides in application order.
	FlagMessages []string `json:"flagMessages,omitempty"`
}

// Priority is the per-domain training priority in a config.
type Priority string

const (
	PriorityMaintain Priority = "maintain"
	PriorityBuild    Priority = "build"
	PriorityPeak     Priority = "peak"
	PriorityDeload   Priority = "deload"
)

// Emphasis is the low/medium/high weighting of one muscle-group category.
type Emphasis string

const (
	EmphasisLow    Emphasis = "low"
	EmphasisMedium Emphasis = "medium"
	EmphasisHigh   Emphasis = "high"
)

// MuscleCategory names the five emphasis categories of a training config.
type MuscleCategory string

const (
	CategoryPosterior MuscleCategory = "posterior_chain"
	CategoryQuads     MuscleCategory = "quad_dominant"
	CategoryPush      MuscleCategory = "push"
	CategoryPull      MuscleCategory = "pull"
	CategoryCore      MuscleCategory = "core"
)

// Proximity flags how close the nearest objective is.
type Proximity string

const (
	ProximityNormal      Proximity = "normal"
	ProximityApproaching Proximity = "approaching"
	ProximityTaper       Proximity = "taper"
	ProximityPeakWeek    Proximity = "peak-week"
)

// DomainTarget is the optional weekly target sub-block for one domain.
type DomainTarget struct {
	Direction string `json:"direction"`
	Sessions  int    `json:"sessions"`
	Focus     string `json:"focus,omitempty"`
	Note      string `json:"note,omitempty"`
}

// WeeklyTargets groups the optional per-domain targets of a config.
type WeeklyTargets struct {
	Cardio       *DomainTarget `json:"cardio,omitempty"`
	Strength     *DomainTarget `json:"strength,omitempty"`
	Climbing     *DomainTarget `json:"climbing,omitempty"`
	Conditioning *DomainTarget `json:"conditioning,omitempty"`
}

// TrainingConfig is the structured weekly directive shaping recommendations.
// Exactly one is active at a time; superseded configs move to history.
type TrainingConfig struct {
	FatigueState     string                      `json:"fatigueState"`
	CardioPriority   Priority                    `json:"cardioPriority"`
	StrengthPriority Priority                    `json:"strengthPriority"`
	ClimbingPriority Priority                    `json:"climbingPriority"`
	Emphases         map[MuscleCategory]Emphasis `json:"emphases"`
	MaxCardioDays    int                         `json:"maxCardioDays,omitempty"`
	MaxStrengthDays  int                         `json:"maxStrengthDays,omitempty"`
	Proximity        Proximity                   `json:"proximity"`
	WeeklyTargets    *WeeklyTargets              `json:"weeklyTargets,omitempty"`
	OverrideReason   string                      `json:"overrideReason,omitempty"`
	AppliedAt        time.Time                   `json:"appliedAt,omitempty"`
}

// Emphasis returns the emphasis for a category, defaulting to medium.
func (c TrainingConfig) Emphasis(cat MuscleCategory) Emphasis {
	if e, ok := c.Emphases[cat]; ok {
		return e
	}
	return EmphasisMedium
}

// ObjectivePhase is the training phase derived from weeks remaining to the
// objective's target date.
type ObjectivePhase string

const (
	PhaseBase     ObjectivePhase = "Base"
	PhaseBuild    ObjectivePhase = "Build"
	PhasePeak     ObjectivePhase = "Peak"
	PhaseTaper    ObjectivePhase = "Taper"
	PhaseRaceWeek ObjectivePhase = "Race Week"
)

// PlanWeek is one week of an objective's training plan.
type PlanWeek struct {
	Number    int    `json:"number"`
	Focus     string `json:"focus,omitempty"`
	Completed bool   `json:"completed"`
}

// AssessmentResult records one benchmark assessment taken for an objective.
type AssessmentResult struct {
	BenchmarkID string    `json:"benchmarkId"`
	Date        time.Time `json:"date"`
	Value       string    `json:"value"`
	Passed      bool      `json:"passed"`
}

// ActivatedObjective is a long-term goal currently in training.
type ActivatedObjective struct {
	ID             string             `json:"id"`
	LibraryID      string             `json:"libraryId"`
	Name           string             `json:"name"`
	TargetDate     time.Time          `json:"targetDate"`
	PriorityWeight int                `json:"priorityWeight"`
	ActivatedAt    time.Time          `json:"activatedAt"`
	Assessments    []AssessmentResult `json:"assessments,omitempty"`
	PlanWeeks      []PlanWeek         `json:"planWeeks,omitempty"`
}

// WeeksRemaining returns whole weeks from the given day to the target date,
// negative once the target has passed.
func (o ActivatedObjective) WeeksRemaining(today time.Time) int {
	days := int(o.TargetDate.Sub(today).Hours() / 24)
	if days < 0 {
		return -((-days) / 7)
	}
	return days / 7
}

// Phase derives the training phase from weeks remaining.
func (o ActivatedObjective) Phase(today time.Time) ObjectivePhase {
	weeks := o.WeeksRemaining(today)
	switch {
	case weeks >= 12:
		return PhaseBase
	case weeks >= 8:
		return PhaseBuild
	case weeks >= 4:
		return PhasePeak
	case weeks >= 1:
		return PhaseTaper
	default:
		return PhaseRaceWeek
	}
}

// ArchivedObjective is the terminal form of a deactivated objective. The
// transition is one-way.
type ArchivedObjective struct {
	ID              string    `json:"id"`
	LibraryID       string    `json:"libraryId"`
	Name            string    `json:"name"`
	TargetDate      time.Time `json:"targetDate"`
	ActivatedAt     time.Time `json:"activatedAt"`
	ArchivedAt      time.Time `json:"archivedAt"`
	ReadinessTier   string    `json:"readinessTier,omitempty"`
	TrainingSummary string    `json:"trainingSummary,omitempty"`
}

// ExercisePoint is one strength progression data point.
type ExercisePoint struct {
	Date time.Time     `json:"date"`
	Sets []StrengthSet `json:"sets"`
}

// GradePoint is one climbing progression data point.
type GradePoint struct {
	Date        time.Time `json:"date"`
	HighestSend string    `json:"highestSend"`
}

// ProgressionHistory holds the append-only per-exercise and per-discipline
// progression series.
type ProgressionHistory struct {
	Exercises map[string][]ExercisePoint  `json:"exercises,omitempty"`
	Climbing  map[Discipline][]GradePoint `json:"climbing,omitempty"`
}

// Preferences holds the user's display and zone settings.
type Preferences struct {
	Age         int             `json:"age,omitempty"`
	ZoneMethod  string          `json:"zoneMethod,omitempty"`
	CustomZones *ZoneThresholds `json:"customZones,omitempty"`
	WeightUnit  string          `json:"weightUnit,omitempty"`
}
