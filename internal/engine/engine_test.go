package engine

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/julianstephens/skateday/internal/models"
)

const tolerance = 1e-9

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func scenarioHabits() []models.Habit {
	return []models.Habit{
		{ID: 3, Name: "Code", TimeLabel: "16:30", TimeMins: 990, Y: 70, Completed: false},
		{ID: 2, Name: "Read", TimeLabel: "10:15", TimeMins: 615, Y: 55, Completed: true},
		{ID: 1, Name: "Walk", TimeLabel: "08:00", TimeMins: 480, Y: 30, Completed: true},
	}
}

// randomHabits returns n habits with arbitrary times, offsets and completion.
func randomHabits(r *rand.Rand, n int) []models.Habit {
	habits := make([]models.Habit, n)
	for i := range habits {
		habits[i] = models.Habit{
			ID:        i + 1,
			Name:      "h",
			TimeMins:  r.IntN(1440),
			Y:         float64(20 + r.IntN(61)),
			Completed: r.IntN(2) == 0,
		}
	}
	return habits
}

// ---------------------------------------------------------------------------
// Path
// ---------------------------------------------------------------------------

func TestBuildPath_Scenario(t *testing.T) {
	c := qt.New(t)

	points := BuildPath(scenarioHabits())
	c.Assert(points, qt.HasLen, 2)
	c.Assert(near(points[0].X, 33.333333333, 1e-6), qt.IsTrue, qt.Commentf("x0 = %v", points[0].X))
	c.Assert(points[0].Y, qt.Equals, 30.0)
	c.Assert(near(points[1].X, 42.708333333, 1e-6), qt.IsTrue, qt.Commentf("x1 = %v", points[1].X))
	c.Assert(points[1].Y, qt.Equals, 55.0)
}

func TestBuildPath_DoesNotMutateInput(t *testing.T) {
	c := qt.New(t)

	habits := scenarioHabits()
	before := make([]models.Habit, len(habits))
	copy(before, habits)

	_ = BuildPath(habits)
	c.Assert(habits, qt.DeepEquals, before)
}

func TestBuildPath_StableOnTies(t *testing.T) {
	c := qt.New(t)

	habits := []models.Habit{
		{ID: 1, TimeMins: 600, Y: 10, Completed: true},
		{ID: 2, TimeMins: 600, Y: 90, Completed: true},
		{ID: 3, TimeMins: 300, Y: 50, Completed: true},
	}
	points := BuildPath(habits)
	c.Assert(points, qt.HasLen, 3)
	c.Assert(points[0].Y, qt.Equals, 50.0)
	c.Assert(points[1].Y, qt.Equals, 10.0)
	c.Assert(points[2].Y, qt.Equals, 90.0)
}

func TestBuildPath_Properties(t *testing.T) {
	c := qt.New(t)
	r := rand.New(rand.NewPCG(1, 2))

	for n := 0; n < 200; n++ {
		habits := randomHabits(r, r.IntN(12))
		points := BuildPath(habits)

		completed := 0
		for _, h := range habits {
			if h.Completed {
				completed++
			}
		}
		c.Assert(points, qt.HasLen, completed)
		for i := 1; i < len(points); i++ {
			c.Assert(points[i-1].X <= points[i].X, qt.IsTrue)
		}
	}
}

func TestBuildPath_Empty(t *testing.T) {
	c := qt.New(t)
	c.Assert(BuildPath(nil), qt.HasLen, 0)
	c.Assert(BuildPath([]models.Habit{{ID: 1, TimeMins: 10}}), qt.HasLen, 0)
}

// ---------------------------------------------------------------------------
// Segments
// ---------------------------------------------------------------------------

func TestPlanSegments_ShortPaths(t *testing.T) {
	c := qt.New(t)

	for _, points := range [][]Point{nil, {}, {{X: 4, Y: 5}}} {
		plan := PlanSegments(points)
		c.Assert(plan.Segments, qt.HasLen, 0)
		c.Assert(plan.TotalLength, qt.Equals, 0.0)
	}
}

func TestPlanSegments_Scenario(t *testing.T) {
	c := qt.New(t)

	plan := PlanSegments(BuildPath(scenarioHabits()))
	c.Assert(plan.Segments, qt.HasLen, 1)
	c.Assert(near(plan.TotalLength, 26.70, 0.01), qt.IsTrue, qt.Commentf("length = %v", plan.TotalLength))
	c.Assert(plan.Segments[0].Length, qt.Equals, plan.TotalLength)
}

func TestPlanSegments_DropsZeroLength(t *testing.T) {
	c := qt.New(t)

	points := []Point{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 3, Y: 4}, {X: 3, Y: 4}}
	plan := PlanSegments(points)
	c.Assert(plan.Segments, qt.HasLen, 1)
	c.Assert(plan.TotalLength, qt.Equals, 5.0)
}

func TestPlanSegments_SumMatchesTotal(t *testing.T) {
	c := qt.New(t)
	r := rand.New(rand.NewPCG(7, 11))

	for n := 0; n < 200; n++ {
		points := make([]Point, 2+r.IntN(10))
		for i := range points {
			points[i] = Point{X: r.Float64() * 100, Y: r.Float64() * 100}
		}
		plan := PlanSegments(points)

		sum := 0.0
		for _, seg := range plan.Segments {
			c.Assert(seg.Length > 0, qt.IsTrue)
			sum += seg.Length
		}
		c.Assert(near(sum, plan.TotalLength, tolerance), qt.IsTrue)
	}
}

// ---------------------------------------------------------------------------
// Position
// ---------------------------------------------------------------------------

func TestPositionAt_NoPoints(t *testing.T) {
	c := qt.New(t)

	_, ok := PositionAt(0.5, nil, PlanSegments(nil))
	c.Assert(ok, qt.IsFalse)
}

func TestPositionAt_SinglePoint(t *testing.T) {
	c := qt.New(t)

	points := BuildPath([]models.Habit{{ID: 1, TimeMins: 720, Y: 42, Completed: true}})
	plan := PlanSegments(points)
	for _, progress := range []float64{0, 0.25, 0.5, 1} {
		got, ok := PositionAt(progress, points, plan)
		c.Assert(ok, qt.IsTrue)
		c.Assert(got, qt.Equals, Point{X: 50, Y: 42})
	}
}

func TestPositionAt_CoincidentPoints(t *testing.T) {
	c := qt.New(t)

	points := []Point{{X: 10, Y: 10}, {X: 10, Y: 10}}
	got, ok := PositionAt(0.7, points, PlanSegments(points))
	c.Assert(ok, qt.IsTrue)
	c.Assert(got, qt.Equals, points[0])
}

func TestPositionAt_Scenario(t *testing.T) {
	c := qt.New(t)

	points := BuildPath(scenarioHabits())
	plan := PlanSegments(points)

	mid, ok := PositionAt(0.5, points, plan)
	c.Assert(ok, qt.IsTrue)
	c.Assert(near(mid.X, 38.02, 0.01), qt.IsTrue, qt.Commentf("x = %v", mid.X))
	c.Assert(near(mid.Y, 42.5, tolerance), qt.IsTrue, qt.Commentf("y = %v", mid.Y))
}

func TestPositionAt_Boundaries(t *testing.T) {
	c := qt.New(t)

	points := []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 40, Y: 50}}
	plan := PlanSegments(points)

	start, _ := PositionAt(0, points, plan)
	c.Assert(start, qt.Equals, points[0])

	end, _ := PositionAt(1, points, plan)
	c.Assert(near(end.X, 40, tolerance) && near(end.Y, 50, tolerance), qt.IsTrue, qt.Commentf("end = %v", end))

	// Out of range progress is clamped
	before, _ := PositionAt(-1, points, plan)
	c.Assert(before, qt.Equals, points[0])
	after, _ := PositionAt(2, points, plan)
	c.Assert(near(after.X, 40, tolerance) && near(after.Y, 50, tolerance), qt.IsTrue)
}

func TestPositionAt_CrossesSegments(t *testing.T) {
	c := qt.New(t)

	// Two segments of length 10 each
	points := []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	plan := PlanSegments(points)

	got, _ := PositionAt(0.75, points, plan)
	c.Assert(near(got.X, 10, tolerance), qt.IsTrue)
	c.Assert(near(got.Y, 5, tolerance), qt.IsTrue)
}

func TestPositionAt_Idempotent(t *testing.T) {
	c := qt.New(t)

	points := BuildPath(scenarioHabits())
	plan := PlanSegments(points)
	for _, progress := range []float64{0, 0.1, 0.33, 0.9, 1} {
		a, _ := PositionAt(progress, points, plan)
		b, _ := PositionAt(progress, points, plan)
		c.Assert(a, qt.Equals, b)
	}
}

func TestDistanceAt_Monotonic(t *testing.T) {
	c := qt.New(t)

	plan := PlanSegments([]Point{{X: 0, Y: 0}, {X: 30, Y: 40}, {X: 60, Y: 0}})
	prev := -1.0
	for i := 0; i <= 100; i++ {
		d := DistanceAt(float64(i)/100, plan)
		c.Assert(d >= prev, qt.IsTrue)
		prev = d
	}
	c.Assert(prev, qt.Equals, plan.TotalLength)
}

// ---------------------------------------------------------------------------
// Playback
// ---------------------------------------------------------------------------

var twoPoints = []Point{{X: 0, Y: 0}, {X: 10, Y: 10}}

func TestPlayback_RequiresTwoPoints(t *testing.T) {
	c := qt.New(t)
	pb := NewPlayback(0)
	now := time.Now()

	c.Assert(pb.CanPlay(nil), qt.IsFalse)
	_, ok := pb.Play(nil, now)
	c.Assert(ok, qt.IsFalse)
	_, ok = pb.Play(twoPoints[:1], now)
	c.Assert(ok, qt.IsFalse)
	c.Assert(pb.Phase(), qt.Equals, Idle)
	c.Assert(pb.Progress(), qt.Equals, 0.0)
}

func TestPlayback_DefaultDuration(t *testing.T) {
	c := qt.New(t)
	c.Assert(NewPlayback(0).Duration(), qt.Equals, 4*time.Second)
	c.Assert(NewPlayback(-time.Second).Duration(), qt.Equals, 4*time.Second)
	c.Assert(NewPlayback(time.Second).Duration(), qt.Equals, time.Second)
}

func TestPlayback_RunsToCompletion(t *testing.T) {
	c := qt.New(t)
	pb := NewPlayback(4 * time.Second)
	start := time.Date(2025, 11, 14, 12, 0, 0, 0, time.UTC)

	tok, ok := pb.Play(twoPoints, start)
	c.Assert(ok, qt.IsTrue)
	c.Assert(pb.Phase(), qt.Equals, Running)
	c.Assert(pb.CanPlay(twoPoints), qt.IsFalse)

	c.Assert(pb.Advance(tok, start.Add(time.Second)), qt.IsTrue)
	c.Assert(pb.Progress(), qt.Equals, 0.25)

	c.Assert(pb.Advance(tok, start.Add(2*time.Second)), qt.IsTrue)
	c.Assert(pb.Progress(), qt.Equals, 0.5)

	c.Assert(pb.Advance(tok, start.Add(5*time.Second)), qt.IsFalse)
	c.Assert(pb.Progress(), qt.Equals, 1.0)
	c.Assert(pb.Phase(), qt.Equals, Finished)

	// Frames arriving after the run has finished change nothing
	c.Assert(pb.Advance(tok, start.Add(6*time.Second)), qt.IsFalse)
	c.Assert(pb.Progress(), qt.Equals, 1.0)
}

func TestPlayback_ProgressNeverDecreases(t *testing.T) {
	c := qt.New(t)
	pb := NewPlayback(4 * time.Second)
	start := time.Date(2025, 11, 14, 12, 0, 0, 0, time.UTC)

	tok, _ := pb.Play(twoPoints, start)
	pb.Advance(tok, start.Add(2*time.Second))
	c.Assert(pb.Progress(), qt.Equals, 0.5)

	// Clock stepped backwards
	pb.Advance(tok, start.Add(time.Second))
	c.Assert(pb.Progress(), qt.Equals, 0.5)
}

func TestPlayback_Replay(t *testing.T) {
	c := qt.New(t)
	pb := NewPlayback(time.Second)
	start := time.Date(2025, 11, 14, 12, 0, 0, 0, time.UTC)

	c.Assert(pb.CanReplay(twoPoints), qt.IsFalse)

	tok, _ := pb.Play(twoPoints, start)
	_, ok := pb.Replay(twoPoints, start)
	c.Assert(ok, qt.IsFalse)

	pb.Advance(tok, start.Add(time.Second))
	c.Assert(pb.CanReplay(twoPoints), qt.IsTrue)

	again, ok := pb.Replay(twoPoints, start.Add(2*time.Second))
	c.Assert(ok, qt.IsTrue)
	c.Assert(again, qt.Not(qt.Equals), tok)
	c.Assert(pb.Phase(), qt.Equals, Running)
	c.Assert(pb.Progress(), qt.Equals, 0.0)

	// The superseded run's frames are ignored
	c.Assert(pb.Advance(tok, start.Add(10*time.Second)), qt.IsFalse)
	c.Assert(pb.Progress(), qt.Equals, 0.0)
}

func TestPlayback_ResetCancelsPendingFrames(t *testing.T) {
	c := qt.New(t)
	pb := NewPlayback(4 * time.Second)
	start := time.Date(2025, 11, 14, 12, 0, 0, 0, time.UTC)

	tok, _ := pb.Play(twoPoints, start)
	pb.Advance(tok, start.Add(time.Second))

	pb.Reset()
	c.Assert(pb.Phase(), qt.Equals, Idle)
	c.Assert(pb.Progress(), qt.Equals, 0.0)

	c.Assert(pb.Advance(tok, start.Add(2*time.Second)), qt.IsFalse)
	c.Assert(pb.Progress(), qt.Equals, 0.0)
	c.Assert(pb.Phase(), qt.Equals, Idle)
}

func TestPlayback_ResetAfterFinish(t *testing.T) {
	c := qt.New(t)
	pb := NewPlayback(time.Second)
	start := time.Now()

	tok, _ := pb.Play(twoPoints, start)
	pb.Advance(tok, start.Add(time.Second))
	c.Assert(pb.Phase(), qt.Equals, Finished)

	pb.Reset()
	c.Assert(pb.Phase(), qt.Equals, Idle)
	c.Assert(pb.CanReplay(twoPoints), qt.IsFalse)
	c.Assert(pb.CanPlay(twoPoints), qt.IsTrue)
}

func TestPhase_String(t *testing.T) {
	c := qt.New(t)
	c.Assert(Idle.String(), qt.Equals, "idle")
	c.Assert(Running.String(), qt.Equals, "running")
	c.Assert(Finished.String(), qt.Equals, "finished")
	c.Assert(Phase(9).String(), qt.Equals, "unknown")
}
