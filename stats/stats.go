package stats

import (
	"math"
	"sort"

	"github.com/chewxy/math32"

	"github.com/dronecore/skyb/internal/bincrc"
	"github.com/dronecore/skyb/poly"
	"github.com/dronecore/skyb/trajectory"
)

// Stats is the aggregate result of a single pass over a trajectory's
// segments.
type Stats struct {
	DurationMsec           uint32
	BoundingBox            bincrc.BoundingBox
	StartEndDistanceMm     float32
	ProposedTakeoffTimeSec float32
	ProposedLandingTimeSec float32
}

// Calculate iterates traj's segments once, accumulating duration and
// bounding box, and proposing takeoff/landing command times from the
// configured min-ascent threshold and takeoff kinematics.
func Calculate(traj *trajectory.Trajectory, cfg Config) Stats {
	box := bincrc.EmptyBoundingBox()
	box = box.Expand(traj.Start.X, traj.Start.Y, traj.Start.Z)
	for _, seg := range traj.Segments {
		// Extrema works on [0, 1]; map the segment's [0, DurationSec]
		// onto it first.
		curve, err := seg.Curve.Stretch(1 / seg.DurationSec)
		if err != nil {
			continue
		}
		if min, max, err := curve.X.Extrema(); err == nil {
			box.X = box.X.Expand(min).Expand(max)
		}
		if min, max, err := curve.Y.Extrema(); err == nil {
			box.Y = box.Y.Expand(min).Expand(max)
		}
		if min, max, err := curve.Z.Extrema(); err == nil {
			box.Z = box.Z.Expand(min).Expand(max)
		}
	}

	threshold := traj.Start.Z + cfg.MinAscentMm
	adjustment := travelTimeForDistance(cfg.MinAscentMm, cfg.TakeoffSpeedMmPerS, cfg.TakeoffAccelerationMmPerS2)

	takeoff := float32(math.Inf(1))
	if t, ok := earliestZCrossing(traj, threshold); ok {
		takeoff = t - adjustment
	}
	landing := float32(math.Inf(1))
	if t, ok := latestZCrossing(traj, threshold); ok {
		landing = t + adjustment
	}

	end := traj.EndPoint()
	dx := end.X - traj.Start.X
	dy := end.Y - traj.Start.Y
	distance := math32.Sqrt(dx*dx + dy*dy)

	return Stats{
		DurationMsec:           uint32(traj.TotalDurationSec*1000 + 0.5),
		BoundingBox:            box,
		StartEndDistanceMm:     distance,
		ProposedTakeoffTimeSec: takeoff,
		ProposedLandingTimeSec: landing,
	}
}

// ProposeTakeoffTimeSec returns the earliest time at which the
// trajectory's z crosses altitudeMm, minus the time needed to reach
// that altitude at a constant speedMmPerS. Returns +Inf if either
// input is non-positive or the altitude is never reached.
func ProposeTakeoffTimeSec(traj *trajectory.Trajectory, altitudeMm, speedMmPerS float32) float32 {
	if altitudeMm <= 0 || speedMmPerS <= 0 {
		return float32(math.Inf(1))
	}
	t, ok := earliestZCrossing(traj, altitudeMm)
	if !ok {
		return float32(math.Inf(1))
	}
	return t - altitudeMm/speedMmPerS
}

// ProposeLandingTimeSec is ProposeTakeoffTimeSec's symmetric
// counterpart, searching from the end of the trajectory.
func ProposeLandingTimeSec(traj *trajectory.Trajectory, altitudeMm, speedMmPerS float32) float32 {
	if altitudeMm <= 0 || speedMmPerS <= 0 {
		return float32(math.Inf(1))
	}
	t, ok := latestZCrossing(traj, altitudeMm)
	if !ok {
		return float32(math.Inf(1))
	}
	return t + altitudeMm/speedMmPerS
}

// travelTimeForDistance returns the time to cover distance under a
// trapezoidal velocity profile: accelerate at acceleration up to
// speed, then cruise.
func travelTimeForDistance(distance, speed, acceleration float32) float32 {
	if distance <= 0 {
		return 0
	}
	if acceleration <= 0 {
		if speed <= 0 {
			return 0
		}
		return distance / speed
	}
	accelDistance := speed * speed / (2 * acceleration)
	if distance <= accelDistance {
		return math32.Sqrt(2 * distance / acceleration)
	}
	return speed/acceleration + (distance-accelDistance)/speed
}

// zCrossings returns, sorted ascending, the in-range times at which
// seg's z-polynomial equals threshold.
func zCrossings(seg trajectory.Segment, threshold float32) []float32 {
	coeffs := seg.Curve.Z.Coeffs()
	if len(coeffs) == 0 {
		coeffs = []float32{0}
	}
	coeffs[0] -= threshold
	shifted, err := poly.FromCoeffs(coeffs)
	if err != nil {
		return nil
	}
	roots, err := shifted.Roots()
	if err != nil {
		return nil
	}
	var valid []float32
	for _, r := range roots {
		if r >= 0 && r <= seg.DurationSec {
			valid = append(valid, r)
		}
	}
	sort.Slice(valid, func(i, j int) bool { return valid[i] < valid[j] })
	return valid
}

func earliestZCrossing(traj *trajectory.Trajectory, threshold float32) (float32, bool) {
	t := float32(0)
	for _, seg := range traj.Segments {
		if roots := zCrossings(seg, threshold); len(roots) > 0 {
			return t + roots[0], true
		}
		t += seg.DurationSec
	}
	return 0, false
}

func latestZCrossing(traj *trajectory.Trajectory, threshold float32) (float32, bool) {
	starts := make([]float32, len(traj.Segments))
	t := float32(0)
	for i, seg := range traj.Segments {
		starts[i] = t
		t += seg.DurationSec
	}
	for i := len(traj.Segments) - 1; i >= 0; i-- {
		if roots := zCrossings(traj.Segments[i], threshold); len(roots) > 0 {
			return starts[i] + roots[len(roots)-1], true
		}
	}
	return 0, false
}
