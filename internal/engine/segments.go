package engine

// Segment joins two adjacent path points.
type Segment struct {
	From   Point
	To     Point
	Length float64
}

// Plan is the segment chain for a path and its total length.
type Plan struct {
	Segments    []Segment
	TotalLength float64
}

// PlanSegments connects adjacent points. Zero-length segments, where two
// consecutive points coincide, are left out of the chain.
func PlanSegments(points []Point) Plan {
	plan := Plan{Segments: []Segment{}}
	if len(points) < 2 {
		return plan
	}
	for i := 1; i < len(points); i++ {
		from, to := points[i-1], points[i]
		length := from.Distance(to)
		if length == 0 {
			continue
		}
		plan.Segments = append(plan.Segments, Segment{From: from, To: to, Length: length})
		plan.TotalLength += length
	}
	return plan
}
