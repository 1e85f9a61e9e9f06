package training

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Plateau detection windows.
const (
	plateauGateWeeks = 6
	plateauFlatWeeks = 4
	daysPerWeek      = 7
)

// ydsOrder fixes the ordinal ranking of YDS grades used by all rope
// disciplines.
var ydsOrder = []string{
	"5.5", "5.6", "5.7", "5.8", "5.9",
	"5.10a", "5.10b", "5.10c", "5.10d",
	"5.11a", "5.11b", "5.11c", "5.11d",
	"5.12a", "5.12b", "5.12c", "5.12d",
	"5.13a", "5.13b", "5.13c", "5.13d",
	"5.14a", "5.14b", "5.14c", "5.14d",
	"5.15a", "5.15b", "5.15c", "5.15d",
}

// gradeRank returns a comparable rank for a grade within a discipline, or -1
// for grades it cannot place. Bouldering V-grades compare numerically; rope
// grades use the fixed YDS ordinal table.
func gradeRank(discipline Discipline, grade string) int {
	if discipline == DisciplineBouldering {
		raw, ok := strings.CutPrefix(grade, "V")
		if !ok {
			return -1
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return -1
		}
		return n
	}
	for i, g := range ydsOrder {
		if g == grade {
			return i
		}
	}
	return -1
}

// highestSend returns the hardest sent grade in a session, ignoring
// attempts. ok is false when the session has no sends.
func highestSend(discipline Discipline, climbs []Climb) (string, bool) {
	best := ""
	bestRank := -1
	for _, climb := range climbs {
		if climb.Result != ResultSend {
			continue
		}
		if rank := gradeRank(discipline, climb.Grade); rank > bestRank {
			best = climb.Grade
			bestRank = rank
		}
	}
	return best, bestRank >= 0
}

// UpdateStrengthProgression appends one data point per exercise performed in
// the session. Existing points are never reordered or removed.
func UpdateStrengthProgression(history *ProgressionHistory, s StrengthSession) {
	if history.Exercises == nil {
		history.Exercises = make(map[string][]ExercisePoint)
	}
	for _, ex := range s.Exercises {
		history.Exercises[ex.ExerciseID] = append(history.Exercises[ex.ExerciseID], ExercisePoint{
			Date: s.Date,
			Sets: ex.Sets,
		})
	}
}

// UpdateClimbingProgression appends the session's highest sent grade to the
// discipline's series. Sessions with zero sends contribute no point.
func UpdateClimbingProgression(history *ProgressionHistory, s ClimbingSession) {
	grade, ok := highestSend(s.Discipline, s.Climbs)
	if !ok {
		return
	}
	if history.Climbing == nil {
		history.Climbing = make(map[Discipline][]GradePoint)
	}
	history.Climbing[s.Discipline] = append(history.Climbing[s.Discipline], GradePoint{
		Date:        s.Date,
		HighestSend: grade,
	})
}

// beatsAllSets reports whether the later session beat every compared set of
// the earlier one. Sets pair up by index over the shorter session; a set is
// beaten by any weight increase, or by more reps at equal weight. One
// regressed set anywhere fails the whole comparison.
func beatsAllSets(later, earlier []StrengthSet) bool {
	compared := min(len(later), len(earlier))
	if compared == 0 {
		return false
	}
	for i := range compared {
		l, e := later[i], earlier[i]
		if l.Weight < e.Weight {
			return false
		}
		beaten := l.Weight > e.Weight || (l.Weight == e.Weight && l.Reps > e.Reps)
		if !beaten {
			return false
		}
	}
	return true
}

// ProgressiveOverloadReady reports whether an exercise's series shows
// overload readiness: the most recent session beat the one before it, and
// either those are the only two sessions or the prior session also beat its
// predecessor. Two consecutive improvements, or the very first one.
func ProgressiveOverloadReady(points []ExercisePoint) bool {
	if len(points) < 2 {
		return false
	}
	sorted := make([]ExercisePoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return dateKey(sorted[i].Date) < dateKey(sorted[j].Date)
	})

	n := len(sorted)
	if !beatsAllSets(sorted[n-1].Sets, sorted[n-2].Sets) {
		return false
	}
	if n == 2 {
		return true
	}
	return beatsAllSets(sorted[n-2].Sets, sorted[n-3].Sets)
}

// ClimbingPlateaued reports whether a discipline's send series is flat.
//
// The 6-week lookback only gates the check: with fewer than two sends in
// that window nothing is decided. The flag itself comes from the last 4
// weeks, firing when two or more sends there share the identical highest
// grade.
func ClimbingPlateaued(points []GradePoint, today time.Time) bool {
	gateStart := today.AddDate(0, 0, -plateauGateWeeks*daysPerWeek)
	gateCount := 0
	for _, p := range points {
		if inWindow(p.Date, gateStart, today) {
			gateCount++
		}
	}
	if gateCount < 2 {
		return false
	}

	flatStart := today.AddDate(0, 0, -plateauFlatWeeks*daysPerWeek)
	var recent []GradePoint
	for _, p := range points {
		if inWindow(p.Date, flatStart, today) {
			recent = append(recent, p)
		}
	}
	if len(recent) < 2 {
		return false
	}
	for _, p := range recent[1:] {
		if p.HighestSend != recent[0].HighestSend {
			return false
		}
	}
	return true
}
