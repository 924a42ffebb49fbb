package envelope

import (
	"math"
	"testing"

	"cuebank/internal/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestValueAtEmptyIsNeutral(t *testing.T) {
	if got := ValueAt(nil, 3); !almostEqual(got, NeutralValue) {
		t.Fatalf("expected neutral %v, got %v", NeutralValue, got)
	}
}

func TestValueAtInterpolationAndClamping(t *testing.T) {
	points := []models.AutomationPoint{
		{ID: "b", Time: 6, Value: 40},
		{ID: "a", Time: 2, Value: 80},
	}

	cases := []struct {
		name string
		t    float64
		want float64
	}{
		{"midpoint", 4, 60},
		{"clamp left", 0, 80},
		{"clamp right", 10, 40},
		{"on first point", 2, 80},
		{"on last point", 6, 40},
		{"quarter", 3, 70},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValueAt(points, tc.t); !almostEqual(got, tc.want) {
				t.Fatalf("ValueAt(%v) = %v, want %v", tc.t, got, tc.want)
			}
		})
	}
}

func TestValueAtCoincidentTimes(t *testing.T) {
	points := []models.AutomationPoint{
		{ID: "a", Time: 2, Value: 10},
		{ID: "b", Time: 2, Value: 90},
		{ID: "c", Time: 4, Value: 50},
	}
	// No division by zero; a defined value comes back.
	got := ValueAt(points, 2)
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("expected finite value, got %v", got)
	}
}

func TestInsertPointClampsDomains(t *testing.T) {
	points, p := InsertPoint(nil, -5, 130, 30)
	if p.Time != 0 {
		t.Fatalf("expected time clamped to 0, got %v", p.Time)
	}
	if p.Value != MaxValue {
		t.Fatalf("expected value clamped to %v, got %v", MaxValue, p.Value)
	}
	if p.ID == "" {
		t.Fatal("expected generated id")
	}
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}

	_, p2 := InsertPoint(points, 99, 50, 30)
	if p2.Time != 30 {
		t.Fatalf("expected time clamped to duration, got %v", p2.Time)
	}
}

func TestInsertPointAtTimeSamplesCurve(t *testing.T) {
	points := []models.AutomationPoint{
		{ID: "a", Time: 2, Value: 80},
		{ID: "b", Time: 6, Value: 40},
	}
	out, p := InsertPointAtTime(points, 4, 10)
	if !almostEqual(p.Value, 60) {
		t.Fatalf("expected sampled value 60, got %v", p.Value)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 points, got %d", len(out))
	}
	// Shape unchanged at the insertion time.
	if got := ValueAt(out, 4); !almostEqual(got, 60) {
		t.Fatalf("curve changed at insertion time: %v", got)
	}
	if len(points) != 2 {
		t.Fatal("input collection was mutated")
	}
}

func TestMovePoint(t *testing.T) {
	points := []models.AutomationPoint{{ID: "a", Time: 2, Value: 80}}

	out := MovePoint(points, "a", 5, 20, 10)
	if out[0].Time != 5 || out[0].Value != 20 {
		t.Fatalf("unexpected point after move: %+v", out[0])
	}
	if points[0].Time != 2 || points[0].Value != 80 {
		t.Fatal("input collection was mutated")
	}

	same := MovePoint(points, "missing", 5, 20, 10)
	if len(same) != 1 || same[0].Time != 2 {
		t.Fatalf("unknown id must be a no-op, got %+v", same)
	}
}

func TestDeletePoint(t *testing.T) {
	points := []models.AutomationPoint{
		{ID: "a", Time: 2, Value: 80},
		{ID: "b", Time: 6, Value: 40},
	}

	out := DeletePoint(points, "a")
	if len(out) != 1 || out[0].ID != "b" {
		t.Fatalf("unexpected points after delete: %+v", out)
	}
	if len(points) != 2 {
		t.Fatal("input collection was mutated")
	}

	same := DeletePoint(points, "missing")
	if len(same) != 2 {
		t.Fatalf("delete of unknown id must be a no-op, got %+v", same)
	}
}
