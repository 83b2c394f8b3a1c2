package stats

import (
	"math"
	"testing"

	"github.com/dronecore/skyb/trajectory"
)

// buildAscendingTrajectory encodes a single linear segment that climbs
// at 1000 mm/s (1 m/s) for durationSec seconds, starting at the origin.
func buildAscendingTrajectory(t *testing.T, durationSec float32) *trajectory.Trajectory {
	durationMsec := uint16(durationSec * 1000)
	scale := uint8(10)
	deltaMm := float32(1000) * durationSec
	deltaRaw := int16(deltaMm / float32(scale))

	header := byte(1) << 4 // z linear, others constant
	body := []byte{scale, 0, 0, 0, 0, 0, 0, 0, 0, 0} // scale, flags, start x/y/z/yaw all zero
	body = append(body, header)
	body = append(body, byte(durationMsec), byte(durationMsec>>8))
	body = append(body, byte(deltaRaw), byte(uint16(deltaRaw)>>8))

	traj, err := trajectory.Decode(body)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return traj
}

func TestProposeTakeoffTimeSecMatchesFixtureScenario(t *testing.T) {
	traj := buildAscendingTrajectory(t, 10)

	cases := []struct {
		speed float32
		want  float32
	}{
		{2000, 1.0},
		{500, -2.0},
		{4000, 1.5},
	}
	for _, c := range cases {
		got := ProposeTakeoffTimeSec(traj, 2000, c.speed)
		if math.Abs(float64(got-c.want)) > 0.05 {
			t.Errorf("ProposeTakeoffTimeSec(2000, %v) = %v, want ~%v", c.speed, got, c.want)
		}
	}

	unreachable := ProposeTakeoffTimeSec(traj, 200000, 2000)
	if !math.IsInf(float64(unreachable), 1) {
		t.Errorf("ProposeTakeoffTimeSec(200000, ...) = %v, want +Inf", unreachable)
	}
}

func TestProposeTakeoffTimeSecNonPositiveInputsYieldInf(t *testing.T) {
	traj := buildAscendingTrajectory(t, 10)
	if v := ProposeTakeoffTimeSec(traj, 0, 1000); !math.IsInf(float64(v), 1) {
		t.Errorf("altitude=0 => %v, want +Inf", v)
	}
	if v := ProposeTakeoffTimeSec(traj, 2000, 0); !math.IsInf(float64(v), 1) {
		t.Errorf("speed=0 => %v, want +Inf", v)
	}
}

func TestCalculateAccumulatesDurationAndDistance(t *testing.T) {
	traj := buildAscendingTrajectory(t, 10)
	cfg := DefaultConfig()
	s := Calculate(traj, cfg)
	if s.DurationMsec != 10000 {
		t.Errorf("DurationMsec = %d, want 10000", s.DurationMsec)
	}
	if s.StartEndDistanceMm != 0 {
		t.Errorf("StartEndDistanceMm = %v, want 0 (pure vertical climb)", s.StartEndDistanceMm)
	}
}

func TestTravelTimeForDistanceBelowAndAboveCruiseTransition(t *testing.T) {
	// Short distance: never reaches cruise speed.
	short := travelTimeForDistance(1, 1000, 1000)
	if short <= 0 {
		t.Errorf("travelTimeForDistance(short) = %v, want > 0", short)
	}
	// Long distance: should include a cruise phase, so time scales
	// roughly linearly with distance for large distances.
	long1 := travelTimeForDistance(10000, 1000, 1000)
	long2 := travelTimeForDistance(20000, 1000, 1000)
	if long2-long1 <= 0 {
		t.Errorf("travel time did not increase with distance: %v -> %v", long1, long2)
	}
}
