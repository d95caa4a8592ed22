package geo

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// ElevationSampleSpacingMeters is the target spacing used by ResampleProfile
// to resample elevation along a geometry.
const ElevationSampleSpacingMeters = 50.0

// ResampleProfile walks geometry (length >= 2) whose vertices carry parallel
// elevationMeters samples (nodeElev, same length as geometry; NaN where a
// vertex's elevation is unknown) and returns elevation samples at
// approximately ElevationSampleSpacingMeters spacing, linearly interpolated
// along the cumulative-length parameterization. The last sample is taken at
// the geometry's end.
//
// Returns nil if no vertex carries elevation.
func ResampleProfile(geometry []Coordinate, nodeElev []float64) []float64 {
	if len(geometry) < 2 || len(geometry) != len(nodeElev) {
		return nil
	}

	anyKnown := false
	for _, e := range nodeElev {
		if !math.IsNaN(e) {
			anyKnown = true
			break
		}
	}
	if !anyKnown {
		return nil
	}

	cum := make([]float64, len(geometry))
	for i := 1; i < len(geometry); i++ {
		cum[i] = cum[i-1] + Haversine(geometry[i-1], geometry[i])
	}
	total := cum[len(cum)-1]
	if total <= 0 {
		return []float64{firstKnown(nodeElev)}
	}

	// Fill gaps in nodeElev by linear interpolation against cum distance so
	// the resample below never needs to special-case missing samples.
	filled := interpolateGaps(cum, nodeElev)

	n := int(total/ElevationSampleSpacingMeters) + 1
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		d := float64(i) * ElevationSampleSpacingMeters
		if d > total || i == n-1 {
			d = total
		}
		out = append(out, sampleAt(cum, filled, d))
	}
	return out
}

func firstKnown(v []float64) float64 {
	for _, e := range v {
		if !math.IsNaN(e) {
			return e
		}
	}
	return 0
}

func interpolateGaps(cum, elev []float64) []float64 {
	out := make([]float64, len(elev))
	copy(out, elev)

	n := len(out)
	i := 0
	for i < n {
		if !math.IsNaN(out[i]) {
			i++
			continue
		}
		// Find the known sample before i (or none) and after i.
		prev := -1
		for k := i - 1; k >= 0; k-- {
			if !math.IsNaN(out[k]) {
				prev = k
				break
			}
		}
		next := -1
		for k := i + 1; k < n; k++ {
			if !math.IsNaN(out[k]) {
				next = k
				break
			}
		}
		switch {
		case prev == -1 && next == -1:
			out[i] = 0
		case prev == -1:
			out[i] = out[next]
		case next == -1:
			out[i] = out[prev]
		default:
			t := (cum[i] - cum[prev]) / (cum[next] - cum[prev])
			out[i] = out[prev] + t*(out[next]-out[prev])
		}
		i++
	}
	return out
}

func sampleAt(cum, elev []float64, d float64) float64 {
	if d <= cum[0] {
		return elev[0]
	}
	if d >= cum[len(cum)-1] {
		return elev[len(elev)-1]
	}
	for i := 1; i < len(cum); i++ {
		if d <= cum[i] {
			span := cum[i] - cum[i-1]
			if span == 0 {
				return elev[i]
			}
			t := (d - cum[i-1]) / span
			return elev[i-1] + t*(elev[i]-elev[i-1])
		}
	}
	return elev[len(elev)-1]
}

// GradeStats holds the length-weighted grade statistics used by the
// attribute aggregator's hilliness index.
type GradeStats struct {
	AverageAbsGrade float64 // length-weighted mean of |grade|
	MaxGrade        float64
	StdDevFactor    float64 // normalized [0,1] spread, feeds the hilliness index
}

// ComputeGradeStats summarizes per-edge grade samples (signed, fraction not
// percent) weighted by edge length, using gonum/stat for the mean and
// population standard deviation.
func ComputeGradeStats(grades, weights []float64) GradeStats {
	if len(grades) == 0 {
		return GradeStats{}
	}

	absGrades := make([]float64, len(grades))
	maxGrade := 0.0
	for i, g := range grades {
		a := math.Abs(g)
		absGrades[i] = a
		if a > maxGrade {
			maxGrade = a
		}
	}

	mean := stat.Mean(absGrades, weights)
	sd := stat.StdDev(absGrades, weights)

	// Normalize: a grade stddev of 10% (0.10) or more is treated as maximally
	// "rolling", capping the contribution at 1.0.
	stdFactor := sd / 0.10
	if stdFactor > 1 {
		stdFactor = 1
	}

	return GradeStats{
		AverageAbsGrade: mean,
		MaxGrade:        maxGrade,
		StdDevFactor:    stdFactor,
	}
}

// HillinessIndex combines undulation density and grade variability into a
// single 0-1 composite:
//
//	0.7 * min(1, undulationPerKm/100) + 0.3 * gradeStdDevFactor
func HillinessIndex(totalGainMeters, totalLossMeters, lengthMeters float64, stdDevFactor float64) float64 {
	if lengthMeters <= 0 {
		return 0
	}
	undulation := (totalGainMeters + totalLossMeters) / 2
	perKm := undulation / (lengthMeters / 1000)
	term1 := perKm / 100
	if term1 > 1 {
		term1 = 1
	}
	return 0.7*term1 + 0.3*stdDevFactor
}
