package engine

// clamp01 limits v to [0,1]
func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// PositionAt maps playback progress onto the path. The boolean is false when
// there is nothing to draw. A path whose segments are all degenerate pins the
// skater to its first point.
func PositionAt(progress float64, points []Point, plan Plan) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	if len(points) == 1 || plan.TotalLength == 0 || len(plan.Segments) == 0 {
		return points[0], true
	}

	remaining := clamp01(progress) * plan.TotalLength
	for _, seg := range plan.Segments {
		if remaining <= seg.Length {
			return seg.From.Lerp(seg.To, remaining/seg.Length), true
		}
		remaining -= seg.Length
	}

	// Floating point overrun past the last segment
	return plan.Segments[len(plan.Segments)-1].To, true
}

// DistanceAt returns how far along the path the skater is at progress.
func DistanceAt(progress float64, plan Plan) float64 {
	return clamp01(progress) * plan.TotalLength
}
