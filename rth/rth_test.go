package rth

import (
	"testing"

	"github.com/dronecore/skyb/poly"
	"github.com/dronecore/skyb/trajectory"
)

func almostEqual(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-3
}

func TestSynthesizeMove3DGoesDirectlyToTarget(t *testing.T) {
	e := Entry{
		Action:      ActionMove3D,
		StartPoint:  poly.Point4{X: 0, Y: 0, Z: 1000},
		Target:      poly.Point4{X: 5000, Y: 0, Z: 1000},
		DurationSec: 5,
	}
	traj, err := Synthesize(e)
	if err != nil {
		t.Fatal(err)
	}
	if len(traj.Segments) != 1 {
		t.Fatalf("len(Segments) = %d, want 1", len(traj.Segments))
	}
	end := traj.EndPoint()
	if !almostEqual(end.X, 5000) || !almostEqual(end.Z, 1000) {
		t.Fatalf("EndPoint = %+v, want X=5000 Z=1000", end)
	}
}

func TestSynthesizeLandDropsToZeroAltitude(t *testing.T) {
	e := Entry{
		Action:      ActionLand,
		StartPoint:  poly.Point4{X: 100, Y: 200, Z: 3000},
		Target:      poly.Point4{X: 100, Y: 200},
		DurationSec: 4,
	}
	traj, err := Synthesize(e)
	if err != nil {
		t.Fatal(err)
	}
	end := traj.EndPoint()
	if end.Z != 0 {
		t.Errorf("landed Z = %v, want 0", end.Z)
	}
	if !almostEqual(end.X, 100) || !almostEqual(end.Y, 200) {
		t.Errorf("landed XY = %+v, want (100,200)", end)
	}
}

func TestSynthesizeHorizontalMoveHoldsAltitude(t *testing.T) {
	e := Entry{
		Action:      ActionHorizontalMove,
		StartPoint:  poly.Point4{X: 0, Y: 0, Z: 2000},
		Target:      poly.Point4{X: 1000, Y: 1000, Z: 9999},
		DurationSec: 3,
	}
	traj, err := Synthesize(e)
	if err != nil {
		t.Fatal(err)
	}
	end := traj.EndPoint()
	if !almostEqual(end.Z, 2000) {
		t.Errorf("horizontal move Z = %v, want unchanged 2000", end.Z)
	}
	if !almostEqual(end.X, 1000) || !almostEqual(end.Y, 1000) {
		t.Errorf("horizontal move XY = %+v, want (1000,1000)", end)
	}
}

func TestSynthesizePreDelayHoldsStartPoint(t *testing.T) {
	start := poly.Point4{X: 10, Y: 20, Z: 30}
	e := Entry{
		Action:      ActionMove3D,
		StartPoint:  start,
		Target:      poly.Point4{X: 500, Y: 500, Z: 500},
		PreDelaySec: 2,
		DurationSec: 5,
	}
	traj, err := Synthesize(e)
	if err != nil {
		t.Fatal(err)
	}
	if len(traj.Segments) != 2 {
		t.Fatalf("len(Segments) = %d, want 2 (hold + move)", len(traj.Segments))
	}
	player := trajectory.NewPlayer(traj)
	pos := player.GetPositionAt(1)
	if !almostEqual(pos.X, start.X) || !almostEqual(pos.Z, start.Z) {
		t.Errorf("position during pre-delay = %+v, want start point %+v", pos, start)
	}
}

func TestSynthesizePreNeckClimbsBeforeMove(t *testing.T) {
	e := Entry{
		Action:             ActionHorizontalMove,
		StartPoint:         poly.Point4{X: 0, Y: 0, Z: 0},
		Target:             poly.Point4{X: 1000, Y: 0},
		PreNeck:            true,
		PreNeckDurationSec: 2,
		TargetAltitudeMm:   3000,
		DurationSec:        4,
	}
	traj, err := Synthesize(e)
	if err != nil {
		t.Fatal(err)
	}
	if len(traj.Segments) != 2 {
		t.Fatalf("len(Segments) = %d, want 2 (neck + move)", len(traj.Segments))
	}
	neck := traj.Segments[0]
	if !almostEqual(neck.EndPoint.Z, 3000) {
		t.Errorf("neck end Z = %v, want 3000", neck.EndPoint.Z)
	}
	if !almostEqual(neck.EndPoint.X, 0) {
		t.Errorf("neck end X = %v, want unchanged 0", neck.EndPoint.X)
	}
	move := traj.Segments[1]
	if !almostEqual(move.EndPoint.Z, 3000) {
		t.Errorf("move holds neck altitude, got Z = %v, want 3000", move.EndPoint.Z)
	}
}

func TestSynthesizePostDelayHoldsFinalPoint(t *testing.T) {
	e := Entry{
		Action:       ActionMove3D,
		StartPoint:   poly.Point4{X: 0, Y: 0, Z: 0},
		Target:       poly.Point4{X: 1000, Y: 0, Z: 1000},
		DurationSec:  2,
		PostDelaySec: 3,
	}
	traj, err := Synthesize(e)
	if err != nil {
		t.Fatal(err)
	}
	if len(traj.Segments) != 2 {
		t.Fatalf("len(Segments) = %d, want 2 (move + hold)", len(traj.Segments))
	}
	player := trajectory.NewPlayer(traj)
	pos := player.GetPositionAt(4) // 2s into the post-delay hold
	if !almostEqual(pos.X, 1000) || !almostEqual(pos.Z, 1000) {
		t.Errorf("position during post-delay = %+v, want target (1000,0,1000)", pos)
	}
}

func TestSynthesizeZeroDurationStagesAreOmitted(t *testing.T) {
	e := Entry{
		Action:      ActionMove3D,
		StartPoint:  poly.Point4{},
		Target:      poly.Point4{X: 1, Y: 1, Z: 1},
		DurationSec: 1,
	}
	traj, err := Synthesize(e)
	if err != nil {
		t.Fatal(err)
	}
	if len(traj.Segments) != 1 {
		t.Fatalf("len(Segments) = %d, want 1 (no pre-delay, no neck, no post-delay)", len(traj.Segments))
	}
}
