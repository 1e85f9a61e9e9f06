package training

import (
	"fmt"
	"math"
	"time"
)

// Stimulus level thresholds. Fixed constants, not configurable.
const (
	stimulusLowMax    = 1.5
	stimulusMediumMax = 3.5

	// mandatoryRestDays is the consecutive-high-day streak that forces a
	// dimension into recovery.
	mandatoryRestDays = 3

	// contributionCutoff hides negligible session contributions from the
	// per-dimension breakdown.
	contributionCutoff = 0.05

	secondsPerHour = 3600.0
)

// ClassifyStimulus maps an accumulated dimension value onto the traffic-light
// level. The step function is exact: 1.5 is still low, 3.5 still medium.
func ClassifyStimulus(value float64) StimulusLevel {
	switch {
	case value <= stimulusLowMax:
		return StimulusLow
	case value <= stimulusMediumMax:
		return StimulusMedium
	default:
		return StimulusHigh
	}
}

// CardioStimulus maps a cardio session onto the stimulus vector: the first
// matching activity rule's per-hour unit scaled by session duration. Unknown
// activity types contribute nothing.
func CardioStimulus(s CardioSession) StimulusMap {
	hours := float64(s.DurationSeconds) / secondsPerHour
	steep := false
	if hours > 0 {
		steep = s.ElevationGainFt/hours >= steepElevFtPerHour
	}
	hasPack := s.PackWeightLbs != nil && *s.PackWeightLbs > 0

	for _, rule := range cardioRules {
		if rule.activityType != s.ActivityType {
			continue
		}
		if rule.steep != nil && *rule.steep != steep {
			continue
		}
		if rule.withPack != nil && *rule.withPack != hasPack {
			continue
		}
		if rule.withWeights != nil && *rule.withWeights != s.WeightsUsed {
			continue
		}
		return rule.perHour.Scale(hours)
	}
	return StimulusMap{}
}

// StrengthStimulus sums each exercise's per-set stimulus weights multiplied
// by its set count.
func StrengthStimulus(s StrengthSession) StimulusMap {
	var total StimulusMap
	for _, ex := range s.Exercises {
		info := LookupExercise(ex.ExerciseID)
		total = total.Add(info.PerSetStimulus.Scale(float64(len(ex.Sets))))
	}
	return total
}

// ClimbingStimulus scales the all-disciplines unit vector by the number of
// climbs in the session. Every climb counts, sent or attempted.
func ClimbingStimulus(s ClimbingSession) StimulusMap {
	return climbUnit.Scale(float64(len(s.Climbs)))
}

// ConditioningStimulus sums the fixed per-set units; hangboard sets scale by
// their round count.
func ConditioningStimulus(s ConditioningSession) StimulusMap {
	total := pullupSetUnit.Scale(float64(len(s.PullupSets)))
	total = total.Add(deadhangSetUnit.Scale(float64(len(s.DeadhangSets))))
	for _, set := range s.HangboardSets {
		total = total.Add(hangboardRoundUnit.Scale(float64(set.Rounds)))
	}
	return total
}

// inWindow reports whether date falls within [start, end] inclusive, compared
// on calendar-day keys.
func inWindow(date, start, end time.Time) bool {
	k := dateKey(date)
	return k >= dateKey(start) && k <= dateKey(end)
}

// AccumulateStimulus sums the stimulus vectors of every session within
// [start, end] inclusive.
func AccumulateStimulus(log WorkoutLog, start, end time.Time) StimulusMap {
	var total StimulusMap
	for _, s := range log.Cardio {
		if inWindow(s.Date, start, end) {
			total = total.Add(CardioStimulus(s))
		}
	}
	for _, s := range log.Strength {
		if inWindow(s.Date, start, end) {
			total = total.Add(StrengthStimulus(s))
		}
	}
	for _, s := range log.Climbing {
		if inWindow(s.Date, start, end) {
			total = total.Add(ClimbingStimulus(s))
		}
	}
	for _, s := range log.Conditioning {
		if inWindow(s.Date, start, end) {
			total = total.Add(ConditioningStimulus(s))
		}
	}
	return total
}

// MandatoryRestDimensions returns the dimensions that registered "high" on
// each of the three most recent calendar days (today and the two prior),
// judged per day in isolation. A single non-high day breaks the streak.
func MandatoryRestDimensions(log WorkoutLog, today time.Time) []Dimension {
	var dayTotals [mandatoryRestDays]StimulusMap
	for i := range mandatoryRestDays {
		day := today.AddDate(0, 0, -i)
		dayTotals[i] = AccumulateStimulus(log, day, day)
	}

	var resting []Dimension
	for d := range NumDimensions {
		dim := Dimension(d)
		allHigh := true
		for i := range mandatoryRestDays {
			if ClassifyStimulus(dayTotals[i][dim]) != StimulusHigh {
				allHigh = false
				break
			}
		}
		if allHigh {
			resting = append(resting, dim)
		}
	}
	return resting
}

// StimulusContribution is one session's share of a dimension's weekly total.
type StimulusContribution struct {
	Label  string
	Date   time.Time
	Amount float64
}

// DimensionContext is the human-readable breakdown of one dimension over a
// window.
type DimensionContext struct {
	Dimension     Dimension
	Total         float64
	Level         StimulusLevel
	Contributions []StimulusContribution
	Implication   string
}

// BuildDimensionContext explains one dimension's accumulated stimulus:
// contributing sessions rounded to one decimal (negligible ones filtered
// out) plus a canned implication for the resulting level.
func BuildDimensionContext(log WorkoutLog, start, end time.Time, dim Dimension) DimensionContext {
	var (
		total         float64
		contributions []StimulusContribution
	)
	add := func(label string, date time.Time, m StimulusMap) {
		total += m[dim]
		if m[dim] > contributionCutoff {
			contributions = append(contributions, StimulusContribution{
				Label:  label,
				Date:   date,
				Amount: math.Round(m[dim]*10) / 10, //nolint:mnd // one decimal.
			})
		}
	}
	for _, s := range log.Cardio {
		if inWindow(s.Date, start, end) {
			add(s.ActivityType, s.Date, CardioStimulus(s))
		}
	}
	for _, s := range log.Strength {
		if inWindow(s.Date, start, end) {
			add("Strength", s.Date, StrengthStimulus(s))
		}
	}
	for _, s := range log.Climbing {
		if inWindow(s.Date, start, end) {
			add(fmt.Sprintf("Climbing (%s)", s.Discipline), s.Date, ClimbingStimulus(s))
		}
	}
	for _, s := range log.Conditioning {
		if inWindow(s.Date, start, end) {
			add("Conditioning", s.Date, ConditioningStimulus(s))
		}
	}

	level := ClassifyStimulus(total)
	return DimensionContext{
		Dimension:     dim,
		Total:         total,
		Level:         level,
		Contributions: contributions,
		Implication:   implicationFor(dim, level),
	}
}

// implicationFor returns the canned guidance string for a dimension at a
// level. Forearms/grip, posterior chain, and pull get targeted hints; the
// rest share generic text.
func implicationFor(dim Dimension, level StimulusLevel) string {
	switch dim {
	case ForearmsGrip:
		switch level {
		case StimulusLow:
			return "Grip is fresh. Hangboard or a hard bouldering session would land well."
		case StimulusMedium:
			return "Grip has been working. Another climbing day is fine, but skip max hangs."
		case StimulusHigh:
			return "Forearms are cooked. Avoid climbing, hangs, and heavy pulls until this clears."
		}
	case PosteriorChain:
		switch level {
		case StimulusLow:
			return "Posterior chain is fresh. Good day for deadlifts or a steep hike."
		case StimulusMedium:
			return "Hamstrings and glutes are carrying load. Keep hinging volume moderate."
		case StimulusHigh:
			return "Posterior chain needs a break. No heavy hinges or big vert today."
		}
	case Pull:
		switch level {
		case StimulusLow:
			return "Pulling muscles are fresh."
		case StimulusMedium:
			return "Pulling volume is adding up. One more quality session fits this week."
		case StimulusHigh:
			return "Back and lats are saturated. Let the pull volume recover."
		}
	case QuadDominant, Push, Core, LoadedCarry:
	}
	switch level {
	case StimulusLow:
		return "Plenty of headroom this week."
	case StimulusMedium:
		return "Moderate accumulated load. Train normally but watch recovery."
	case StimulusHigh:
		return "High accumulated load. Favor rest or easy movement for this area."
	}
	return ""
}

// LoadSummary classifies a single session right after import.
type LoadSummary struct {
	Level    StimulusLevel
	Dominant *Dimension
}

// SummarizeSessionLoad classifies a session by its single highest-stimulus
// dimension. An all-zero vector is a low-load session with no dominant group.
func SummarizeSessionLoad(m StimulusMap) LoadSummary {
	maxDim := Dimension(0)
	maxVal := 0.0
	for d := range NumDimensions {
		if m[Dimension(d)] > maxVal {
			maxVal = m[Dimension(d)]
			maxDim = Dimension(d)
		}
	}
	if maxVal == 0 {
		return LoadSummary{Level: StimulusLow, Dominant: nil}
	}
	return LoadSummary{Level: ClassifyStimulus(maxVal), Dominant: &maxDim}
}
