package training

import (
	"math"
	"sort"
	"time"
)

// Recovery classification thresholds.
const (
	// baselineMinCheckIns is how many total check-ins must exist before any
	// baseline is established.
	baselineMinCheckIns = 14
	// baselineWindowDays is the trailing window for the rolling averages.
	baselineWindowDays = 30

	hrvModerateDropPct = 10.0
	hrvFatiguedDropPct = 20.0
	rhrModerateDiffBpm = 4.0

	restRunStrong = 3
	restRunSoft   = 2
)

// ComputeBaseline recomputes the rolling HRV/RHR baseline from check-in
// history. Manual fallback values on prior are carried through unchanged.
//
// No baseline is established before 14 total check-ins. Once established,
// each rolling component averages the trailing 30 days' positive readings;
// a component with no qualifying readings stays nil even when the other
// drives the established flag.
func ComputeBaseline(checkIns []DailyCheckIn, today time.Time, prior PersonalBaseline) PersonalBaseline {
	baseline := PersonalBaseline{
		ManualHRV:       prior.ManualHRV,
		ManualRestingHR: prior.ManualRestingHR,
		Established:     false,
	}
	if len(checkIns) < baselineMinCheckIns {
		return baseline
	}
	baseline.Established = true

	windowStart := today.AddDate(0, 0, -baselineWindowDays)
	var hrvs, rhrs []float64
	for _, c := range checkIns {
		if !inWindow(c.Date, windowStart, today) {
			continue
		}
		if c.Recovery.HRV != nil && *c.Recovery.HRV > 0 {
			hrvs = append(hrvs, *c.Recovery.HRV)
		}
		if c.Recovery.RestingHR != nil && *c.Recovery.RestingHR > 0 {
			rhrs = append(rhrs, *c.Recovery.RestingHR)
		}
	}
	if avg, ok := mean(hrvs); ok {
		baseline.HRV = &avg
	}
	if avg, ok := mean(rhrs); ok {
		baseline.RestingHR = &avg
	}
	return baseline
}

func mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}

// sleepTier maps sleep quality onto a tier.
func sleepTier(quality SleepQuality) RecoveryTier {
	switch quality {
	case SleepGreat, SleepGood:
		return TierFull
	case SleepFair:
		return TierModerate
	case SleepLow:
		return TierFatigued
	case SleepPoor:
		return TierRest
	}
	return TierModerate
}

// hrvBaseline picks the rolling average with manual fallback.
func hrvBaseline(b PersonalBaseline) *float64 {
	if b.HRV != nil {
		return b.HRV
	}
	return b.ManualHRV
}

func rhrBaseline(b PersonalBaseline) *float64 {
	if b.RestingHR != nil {
		return b.RestingHR
	}
	return b.ManualRestingHR
}

// Classify combines sleep quality, HRV/RHR deviation from baseline,
// subjective feel, and context flags into a recovery assessment.
//
// The combination rule is most-conservative-wins over the objective signals;
// the subjective override can only worsen the result; flags post-process the
// tier in a fixed order (illness, altitude, travel).
func Classify(checkIn DailyCheckIn, baseline PersonalBaseline) Assessment {
	assessment := Assessment{ //nolint:exhaustruct // optional signals filled below.
		SleepTier: sleepTier(checkIn.Sleep.Quality),
	}
	tier := assessment.SleepTier

	// HRV percent drop from baseline. Skipped without both values.
	if b := hrvBaseline(baseline); b != nil && checkIn.Recovery.HRV != nil && *b > 0 {
		drop := (*b - *checkIn.Recovery.HRV) / *b * 100
		var hrvTier RecoveryTier
		switch {
		case drop <= 0:
			hrvTier = TierFull
		case drop <= hrvModerateDropPct:
			hrvTier = TierModerate
		case drop <= hrvFatiguedDropPct:
			hrvTier = TierFatigued
		default:
			hrvTier = TierRest
		}
		rounded := math.Round(drop)
		assessment.HRVTier = &hrvTier
		assessment.HRVDropPercent = &rounded
		tier = max(tier, hrvTier)
	}

	// Resting HR rise over baseline. This signal never reaches rest alone.
	if b := rhrBaseline(baseline); b != nil && checkIn.Recovery.RestingHR != nil {
		diff := *checkIn.Recovery.RestingHR - *b
		var rhrTier RecoveryTier
		switch {
		case diff <= 0:
			rhrTier = TierFull
		case diff <= rhrModerateDiffBpm:
			rhrTier = TierModerate
		default:
			rhrTier = TierFatigued
		}
		rounded := math.Round(diff)
		assessment.RHRTier = &rhrTier
		assessment.RHRDiff = &rounded
		tier = max(tier, rhrTier)
	}

	// Subjective override only ever worsens the combined result.
	if subjective, ok := subjectiveOverride(checkIn.Feel); ok {
		assessment.SubjectiveTier = &subjective
		if subjective > tier {
			tier = subjective
		}
	}

	tier = applyFlags(checkIn, tier, &assessment)
	assessment.Tier = tier
	return assessment
}

func subjectiveOverride(feel SubjectiveFeel) (RecoveryTier, bool) {
	if feel.Legs <= 1 && feel.Energy <= 1 {
		return TierRest, true
	}
	if feel.Legs <= 2 || feel.Energy <= 2 {
		return TierFatigued, true
	}
	return TierFull, false
}

// applyFlags post-processes the tier with the context flags in order. Each
// applied flag records an explanatory message.
func applyFlags(checkIn DailyCheckIn, tier RecoveryTier, assessment *Assessment) RecoveryTier {
	if checkIn.HasFlag(FlagIllness) {
		tier = TierRest
		assessment.FlagMessages = append(assessment.FlagMessages,
			"Illness reported: full rest regardless of other signals.")
	}
	if checkIn.HasFlag(FlagAltitude) && tier != TierRest {
		tier++
		assessment.FlagMessages = append(assessment.FlagMessages,
			"At altitude: recovery downgraded one step.")
	}
	if checkIn.HasFlag(FlagTravel) && tier == TierFatigued {
		tier = TierRest
		assessment.FlagMessages = append(assessment.FlagMessages,
			"Travel on top of fatigue: take the day off.")
	}
	return tier
}

// ConsecutiveRestAdvisory scans check-ins newest-first counting the run of
// consecutive rest classifications, recomputed against the given baseline.
// Three or more yields a strong advisory, exactly two a softer one.
func ConsecutiveRestAdvisory(checkIns []DailyCheckIn, baseline PersonalBaseline) string {
	sorted := make([]DailyCheckIn, len(checkIns))
	copy(sorted, checkIns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return dateKey(sorted[i].Date) > dateKey(sorted[j].Date)
	})

	run := 0
	for _, c := range sorted {
		if Classify(c, baseline).Tier != TierRest {
			break
		}
		run++
	}
	switch {
	case run >= restRunStrong:
		return "Multiple rest days in a row. Something is off: check sleep, stress, and illness before resuming training."
	case run == restRunSoft:
		return "Two rest classifications in a row. Keep tomorrow easy and watch your baseline."
	default:
		return ""
	}
}
