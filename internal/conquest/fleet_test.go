package conquest

import (
	"math"
	"testing"
)

func TestFleetTick_MovesTowardTarget(t *testing.T) {
	r, a, _, _ := newDuel()
	target := NewPlanet(1, Vec2{X: 100, Y: 0}, 10, 5, DefaultPlanetRules)
	f := &Fleet{Owner: a.ID, Size: 1, Pos: Vec2{}, Target: target, Velocity: 2}

	if f.Tick(r) {
		t.Fatal("fleet 100px away should not arrive on the first tick")
	}
	if !approx(f.Pos.X, 2) || !approx(f.Pos.Y, 0) {
		t.Fatalf("expected (2,0), got (%.4f,%.4f)", f.Pos.X, f.Pos.Y)
	}
}

func TestFleetTick_ConstantSpeedDiagonal(t *testing.T) {
	r, a, _, _ := newDuel()
	target := NewPlanet(1, Vec2{X: 300, Y: 400}, 10, 5, DefaultPlanetRules)
	f := &Fleet{Owner: a.ID, Size: 1, Pos: Vec2{}, Target: target, Velocity: 5}
	f.Tick(r)
	if !approx(f.Pos.X, 3) || !approx(f.Pos.Y, 4) {
		t.Fatalf("expected (3,4), got (%.4f,%.4f)", f.Pos.X, f.Pos.Y)
	}
	if !approx(f.DistanceToTarget(), 495) {
		t.Fatalf("expected 495 remaining, got %.4f", f.DistanceToTarget())
	}
}

func TestFleetTick_ArrivesInsideRadius(t *testing.T) {
	r, a, _, _ := newDuel()
	target := NewPlanet(1, Vec2{X: 50, Y: 0}, 10, 5, DefaultPlanetRules)
	f := &Fleet{Owner: a.ID, Size: 3, Pos: Vec2{}, Target: target, Velocity: 5}

	arrivedAt := -1
	for i := 1; i <= 20; i++ {
		if f.Tick(r) {
			arrivedAt = i
			break
		}
	}
	// Eight moves bring it to x≈40, d≈10; the arrival check fires on the next tick.
	if arrivedAt < 9 || arrivedAt > 10 {
		t.Fatalf("expected arrival on tick 9 or 10, got %d", arrivedAt)
	}
	if !f.Arrived() {
		t.Fatal("Arrived should be set")
	}
	if !target.Owner().Is(a.ID) || target.Garrison() != 0 {
		t.Fatalf("neutral target should fall to a with garrison 0 (capacity 0), got %s %.2f",
			target.Owner(), target.Garrison())
	}
}

func TestFleetTick_NoMovementOnArrivalTick(t *testing.T) {
	r, a, _, _ := newDuel()
	target := NewPlanet(1, Vec2{X: 50, Y: 0}, 10, 5, DefaultPlanetRules)
	start := Vec2{X: 45, Y: 0}
	f := &Fleet{Owner: a.ID, Size: 1, Pos: start, Target: target, Velocity: 5}
	if !f.Tick(r) {
		t.Fatal("fleet inside radius should arrive")
	}
	if f.Pos != start {
		t.Fatalf("arriving fleet moved to %+v", f.Pos)
	}
}

func TestFleetTick_ZeroDistanceGuard(t *testing.T) {
	r, a, _, _ := newDuel()
	// Radius 0 makes d == 0 the only way to arrive.
	target := NewPlanet(1, Vec2{X: 10, Y: 10}, 0, 0, DefaultPlanetRules)
	f := &Fleet{Owner: a.ID, Size: 1, Pos: Vec2{X: 10, Y: 10}, Target: target, Velocity: 1}
	if !f.Tick(r) {
		t.Fatal("fleet at the target centre should arrive")
	}
	if math.IsNaN(f.Pos.X) || math.IsNaN(f.Pos.Y) {
		t.Fatalf("position became NaN: %+v", f.Pos)
	}
}

func TestFleetTick_NoOvershoot(t *testing.T) {
	r, a, _, _ := newDuel()
	target := NewPlanet(1, Vec2{X: 3, Y: 0}, 0, 0, DefaultPlanetRules)
	f := &Fleet{Owner: a.ID, Size: 1, Pos: Vec2{}, Target: target, Velocity: 10}
	f.Tick(r)
	if f.Pos != target.Pos {
		t.Fatalf("fast fleet should stop at the centre, got %+v", f.Pos)
	}
	if !f.Tick(r) {
		t.Fatal("fleet at the centre should arrive on the next tick")
	}
}

func TestFleetTick_ArrivalIsIdempotent(t *testing.T) {
	r, a, _, _ := newDuel()
	target := NewPlanet(1, Vec2{X: 0, Y: 0}, 30, 10, DefaultPlanetRules)
	r.Transfer(target, OwnedBy(a.ID))
	target.SetGarrison(2)
	f := &Fleet{Owner: a.ID, Size: 4, Pos: Vec2{X: 5}, Target: target, Velocity: 1}

	if !f.Tick(r) {
		t.Fatal("expected arrival")
	}
	for i := 0; i < 5; i++ {
		if f.Tick(r) {
			t.Fatal("Tick reported a second arrival")
		}
	}
	if target.Garrison() != 6 {
		t.Fatalf("reinforcement should apply once: expected 6, got %.2f", target.Garrison())
	}
	res, ok := f.Result()
	if !ok || res.Kind != InvasionReinforced || res.Garrison != 6 {
		t.Fatalf("unexpected result %+v ok=%v", res, ok)
	}
}

func TestFleet_ReinforcementConservesStrength(t *testing.T) {
	r, a, _, _ := newDuel()
	src := NewPlanet(0, Vec2{X: 0, Y: 0}, 40, 10, DefaultPlanetRules)   // capacity 25
	dst := NewPlanet(1, Vec2{X: 200, Y: 0}, 50, 10, DefaultPlanetRules) // capacity 35
	r.Transfer(src, OwnedBy(a.ID))
	r.Transfer(dst, OwnedBy(a.ID))
	src.SetGarrison(20)
	dst.SetGarrison(5)

	f := src.DispatchFleet(dst, 0.5)
	f.Velocity = 10
	for i := 0; i < 100 && !f.Arrived(); i++ {
		f.Tick(r)
	}
	if !f.Arrived() {
		t.Fatal("fleet never arrived")
	}
	if dst.Garrison() != 15 || src.Garrison() != 10 {
		t.Fatalf("expected src 10 dst 15, got src %.2f dst %.2f", src.Garrison(), dst.Garrison())
	}
}
