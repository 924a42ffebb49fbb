// Package envelope implements the automation envelope attached to a track: a
// piecewise-linear function of time defined by an unordered point collection.
// All operations are pure; mutators return a fresh slice and leave the input
// untouched. Persisting the returned collection back onto the owning track is
// the caller's job.
package envelope

import (
	"sort"

	"github.com/google/uuid"

	"cuebank/internal/models"
)

const (
	// NeutralValue is the flat line an empty envelope evaluates to.
	NeutralValue = 100.0

	// MinValue and MaxValue bound the value domain on mutation.
	MinValue = 0.0
	MaxValue = 100.0
)

// ValueAt evaluates the envelope at time t. An empty envelope is a flat
// neutral line. Before the first point the first value holds; past the last
// point the last value holds; between points the value is linearly
// interpolated.
func ValueAt(points []models.AutomationPoint, t float64) float64 {
	if len(points) == 0 {
		return NeutralValue
	}
	sorted := sortedByTime(points)

	first := sorted[0]
	if t <= first.Time {
		return first.Value
	}
	last := sorted[len(sorted)-1]
	if t >= last.Time {
		return last.Value
	}

	for i := 1; i < len(sorted); i++ {
		p1, p2 := sorted[i-1], sorted[i]
		if t > p2.Time {
			continue
		}
		span := p2.Time - p1.Time
		if span <= 0 {
			return p2.Value
		}
		return p1.Value + (t-p1.Time)/span*(p2.Value-p1.Value)
	}
	return last.Value
}

// InsertPoint appends a new point at time t with value v, clamping t to
// [0, duration] and v to the value domain. It returns the new collection and
// the inserted point.
func InsertPoint(points []models.AutomationPoint, t, v, duration float64) ([]models.AutomationPoint, models.AutomationPoint) {
	point := models.AutomationPoint{
		ID:    uuid.NewString(),
		Time:  clamp(t, 0, maxTime(duration)),
		Value: clamp(v, MinValue, MaxValue),
	}
	out := append(copyPoints(points), point)
	return out, point
}

// InsertPointAtTime inserts a point at time t whose value is sampled from the
// current curve, so the envelope's shape is unchanged at t.
func InsertPointAtTime(points []models.AutomationPoint, t, duration float64) ([]models.AutomationPoint, models.AutomationPoint) {
	return InsertPoint(points, t, ValueAt(points, t), duration)
}

// MovePoint replaces the time and value of the point with the given id, each
// clamped to its domain. An unknown id returns the input unchanged.
func MovePoint(points []models.AutomationPoint, id string, newTime, newValue, duration float64) []models.AutomationPoint {
	idx := indexOf(points, id)
	if idx < 0 {
		return points
	}
	out := copyPoints(points)
	out[idx].Time = clamp(newTime, 0, maxTime(duration))
	out[idx].Value = clamp(newValue, MinValue, MaxValue)
	return out
}

// DeletePoint removes the point with the given id; no-op if absent.
func DeletePoint(points []models.AutomationPoint, id string) []models.AutomationPoint {
	idx := indexOf(points, id)
	if idx < 0 {
		return points
	}
	out := copyPoints(points)
	return append(out[:idx], out[idx+1:]...)
}

func sortedByTime(points []models.AutomationPoint) []models.AutomationPoint {
	out := copyPoints(points)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

func copyPoints(points []models.AutomationPoint) []models.AutomationPoint {
	return append([]models.AutomationPoint(nil), points...)
}

func indexOf(points []models.AutomationPoint, id string) int {
	for i := range points {
		if points[i].ID == id {
			return i
		}
	}
	return -1
}

func maxTime(duration float64) float64 {
	if duration < 0 {
		return 0
	}
	return duration
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
