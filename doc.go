// Package skyb reads a pre-compiled drone-show program from its
// block-structured binary container and exposes trajectory, light,
// yaw, and event playback plus aggregate trajectory statistics,
// mirroring the teacher's single-entry-point decode facade
// (webp.Decode) adapted to a multi-stream container.
//
//	show, err := skyb.Open(data)
//	if err != nil {
//		...
//	}
//	pos := show.Trajectory().GetPositionAt(12.5)
//	col := show.Light().GetColorAt(12500)
package skyb
