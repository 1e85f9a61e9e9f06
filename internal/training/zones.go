package training

import (
	"fmt"
	"math"
)

// Zone boundary constants.
const (
	maxHRBase       = 220
	mafBase         = 180
	mafLowOffset    = 20
	mafHighOffset   = 10
	customZoneFloor = 50
)

// ComputeZonesFromAge derives five heart-rate zones from the classic 220-age
// formula with boundaries at 50/60/70/80/90% of max HR.
func ComputeZonesFromAge(age int) ZoneThresholds {
	maxHR := maxHRBase - age
	pct := func(p float64) int {
		return int(math.Round(float64(maxHR) * p))
	}
	return ZoneThresholds{
		{Low: pct(0.50), High: pct(0.60)},
		{Low: pct(0.60), High: pct(0.70)},
		{Low: pct(0.70), High: pct(0.80)},
		{Low: pct(0.80), High: pct(0.90)},
		{Low: pct(0.90), High: maxHR},
	}
}

// ComputeZonesFromMAF derives zones from the Maffetone aerobic ceiling
// (180-age). Zone 2 tops out at the ceiling; zone 5 extends to 220.
func ComputeZonesFromMAF(age int) ZoneThresholds {
	maf := mafBase - age
	return ZoneThresholds{
		{Low: 0, High: maf - mafLowOffset},
		{Low: maf - mafLowOffset, High: maf},
		{Low: maf, High: maf + mafHighOffset},
		{Low: maf + mafHighOffset, High: maf + mafLowOffset},
		{Low: maf + mafLowOffset, High: maxHRBase},
	}
}

// ZoneForHR classifies a heart-rate sample into zone 1-5: the first zone
// whose high boundary covers the sample. Samples above zone 5's high still
// return 5.
func ZoneForHR(hr int, thresholds ZoneThresholds) int {
	for i, zone := range thresholds {
		if hr <= zone.High {
			return i + 1
		}
	}
	return 5 //nolint:mnd // above zone 5's ceiling is still zone 5.
}

// CustomZones builds zone thresholds from four user-entered ceilings; zone 5
// is implicitly [ceiling4, 220]. Ceilings must be strictly increasing and
// within [50, 220]. Violations are reported as validation errors and never
// silently corrected.
func CustomZones(ceilings [4]int) (ZoneThresholds, []string) {
	var errs []string
	for i, c := range ceilings {
		if c < customZoneFloor || c > maxHRBase {
			errs = append(errs, fmt.Sprintf("zone %d ceiling %d must be between %d and %d",
				i+1, c, customZoneFloor, maxHRBase))
		}
	}
	for i := 1; i < len(ceilings); i++ {
		if ceilings[i] <= ceilings[i-1] {
			errs = append(errs, "zones must not overlap")
			break
		}
	}
	if len(errs) > 0 {
		return ZoneThresholds{}, errs
	}
	return ZoneThresholds{
		{Low: 0, High: ceilings[0]},
		{Low: ceilings[0], High: ceilings[1]},
		{Low: ceilings[1], High: ceilings[2]},
		{Low: ceilings[2], High: ceilings[3]},
		{Low: ceilings[3], High: maxHRBase},
	}, nil
}
