package conquest

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDist_345(t *testing.T) {
	if d := Dist(Vec2{X: 0, Y: 0}, Vec2{X: 3, Y: 4}); !approx(d, 5) {
		t.Fatalf("expected 5, got %.6f", d)
	}
}

func TestDist_Symmetric(t *testing.T) {
	a, b := Vec2{X: -7, Y: 2}, Vec2{X: 11, Y: -5}
	if !approx(Dist(a, b), Dist(b, a)) {
		t.Fatalf("distance should be symmetric: %.6f vs %.6f", Dist(a, b), Dist(b, a))
	}
}

func TestBearing_Axes(t *testing.T) {
	o := Vec2{}
	cases := []struct {
		to   Vec2
		want float64
	}{
		{Vec2{X: 1}, 0},
		{Vec2{Y: 1}, math.Pi / 2},
		{Vec2{X: -1}, math.Pi},
		{Vec2{Y: -1}, -math.Pi / 2},
	}
	for _, c := range cases {
		if got := Bearing(o, c.to); !approx(got, c.want) {
			t.Errorf("bearing to %+v: expected %.4f, got %.4f", c.to, c.want, got)
		}
	}
}

func TestNormalizeAngle_FoldsNegative(t *testing.T) {
	if got := normalizeAngle(-math.Pi / 2); !approx(got, 3*math.Pi/2) {
		t.Fatalf("expected 3π/2, got %.4f", got)
	}
	if got := normalizeAngle(5 * math.Pi); !approx(got, math.Pi) {
		t.Fatalf("expected π, got %.4f", got)
	}
}
