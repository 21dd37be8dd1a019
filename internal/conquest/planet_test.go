package conquest

import (
	"math"
	"testing"
)

// newDuel returns a roster with two players and a neutral planet of
// radius 30, size 10 (capacity 15).
func newDuel() (*Roster, *Player, *Player, *Planet) {
	r := NewRoster()
	a := r.Add("a", ColorRed, 100, nil)
	b := r.Add("b", ColorGreen, 100, nil)
	p := NewPlanet(0, Vec2{X: 100, Y: 100}, 30, 10, DefaultPlanetRules)
	return r, a, b, p
}

// checkMembership verifies planet ∈ player.planets ⇔ planet.owner == player.
func checkMembership(t *testing.T, r *Roster, planets ...*Planet) {
	t.Helper()
	for _, pl := range r.Players() {
		owned := map[PlanetID]bool{}
		for _, id := range pl.planets {
			if owned[id] {
				t.Errorf("player %s lists planet %d twice", pl.Name, id)
			}
			owned[id] = true
		}
		for _, p := range planets {
			if owned[p.ID] != p.Owner().Is(pl.ID) {
				t.Errorf("player %s membership for planet %d = %v, but owner is %s",
					pl.Name, p.ID, owned[p.ID], p.Owner())
			}
		}
	}
}

func TestPlanet_Capacity(t *testing.T) {
	_, _, _, p := newDuel()
	if c := p.Capacity(); c != 15 {
		t.Fatalf("expected capacity 15, got %.2f", c)
	}
}

func TestPlanet_SetGarrisonClamps(t *testing.T) {
	_, _, _, p := newDuel()
	p.SetGarrison(20)
	if p.Garrison() != 15 {
		t.Fatalf("expected clamp to 15, got %.2f", p.Garrison())
	}
	p.SetGarrison(-3)
	if p.Garrison() != 0 {
		t.Fatalf("expected clamp to 0, got %.2f", p.Garrison())
	}
}

func TestPlanet_Collides(t *testing.T) {
	_, _, _, p := newDuel()
	if !p.Collides(Vec2{X: 100, Y: 100}, 0, 0) {
		t.Fatal("centre should hit")
	}
	if !p.Collides(Vec2{X: 129, Y: 100}, 0, 0) {
		t.Fatal("point inside radius should hit")
	}
	if p.Collides(Vec2{X: 130, Y: 100}, 0, 0) {
		t.Fatal("point exactly on the edge should not hit (strict less-than)")
	}
	if !p.Collides(Vec2{X: 131, Y: 100}, 0, 2) {
		t.Fatal("buffer should widen the hit area")
	}
	// Two circles: 30 + 20 + 2 = 52.
	if !p.Collides(Vec2{X: 151, Y: 100}, 20, 2) {
		t.Fatal("circles 51px apart with buffer 2 should collide")
	}
	if p.Collides(Vec2{X: 152, Y: 100}, 20, 2) {
		t.Fatal("circles 52px apart with buffer 2 should not collide")
	}
}

func TestPlanet_DispatchFleetDeductsGarrison(t *testing.T) {
	r, a, _, p := newDuel()
	target := NewPlanet(1, Vec2{X: 300, Y: 100}, 20, 5, DefaultPlanetRules)
	r.Transfer(p, OwnedBy(a.ID))
	p.SetGarrison(12)

	f := p.DispatchFleet(target, 0.25)
	if f == nil {
		t.Fatal("owned planet should dispatch")
	}
	if f.Size != 3 || p.Garrison() != 9 {
		t.Fatalf("expected fleet 3 and garrison 9, got fleet %.2f garrison %.2f", f.Size, p.Garrison())
	}
	if f.Owner != a.ID || f.Target != target || f.Pos != p.Pos || f.Source != p.ID {
		t.Fatalf("fleet fields wrong: %+v", f)
	}
	if f.Velocity != DefaultPlanetRules.FleetSpeed {
		t.Fatalf("expected velocity %.2f, got %.2f", DefaultPlanetRules.FleetSpeed, f.Velocity)
	}
}

func TestPlanet_DispatchFleetClampsPercent(t *testing.T) {
	r, a, _, p := newDuel()
	target := NewPlanet(1, Vec2{X: 300, Y: 100}, 20, 5, DefaultPlanetRules)
	r.Transfer(p, OwnedBy(a.ID))
	p.SetGarrison(10)
	f := p.DispatchFleet(target, 1.5)
	if f.Size != 10 || p.Garrison() != 0 {
		t.Fatalf("percent above 1 should send everything, got fleet %.2f garrison %.2f", f.Size, p.Garrison())
	}
}

func TestPlanet_NeutralCannotDispatch(t *testing.T) {
	_, _, _, p := newDuel()
	target := NewPlanet(1, Vec2{X: 300, Y: 100}, 20, 5, DefaultPlanetRules)
	if f := p.DispatchFleet(target, 1); f != nil {
		t.Fatalf("neutral planet dispatched %+v", f)
	}
}

func TestPlanet_GarrisonFractionFromDistance(t *testing.T) {
	_, _, _, p := newDuel()
	cases := []struct {
		at   Vec2
		want float64
	}{
		{Vec2{X: 100, Y: 100}, 1.0 / 30}, // floored to 1px
		{Vec2{X: 115, Y: 100}, 0.5},
		{Vec2{X: 130, Y: 100}, 1},
		{Vec2{X: 400, Y: 100}, 1}, // beyond the radius caps at 1
	}
	for _, c := range cases {
		if got := p.GarrisonFractionFromDistance(c.at); !approx(got, c.want) {
			t.Errorf("fraction at %+v: expected %.4f, got %.4f", c.at, c.want, got)
		}
	}
}

func TestPlanet_GarrisonFractionFromBearing(t *testing.T) {
	_, _, _, p := newDuel()
	if got := p.GarrisonFractionFromBearing(Vec2{X: 110, Y: 100}); !approx(got, 0) {
		t.Fatalf("east should be 0, got %.4f", got)
	}
	if got := p.GarrisonFractionFromBearing(Vec2{X: 100, Y: 110}); !approx(got, 0.25) {
		t.Fatalf("south (screen) should be 0.25, got %.4f", got)
	}
	if got := p.GarrisonFractionFromBearing(Vec2{X: 100, Y: 90}); !approx(got, 0.75) {
		t.Fatalf("north (screen) should be 0.75, got %.4f", got)
	}
}

// --- Invasion ---

func TestInvasion_NeutralCapturedOutright(t *testing.T) {
	r, a, _, p := newDuel()
	res := p.ResolveInvasion(&Fleet{Owner: a.ID, Size: 5, Target: p}, r)
	if res.Kind != InvasionCaptured || !p.Owner().Is(a.ID) {
		t.Fatalf("expected capture by a, got %s owner %s", res.Kind, p.Owner())
	}
	if p.Garrison() != 5 {
		t.Fatalf("expected garrison 5, got %.2f", p.Garrison())
	}
	if !res.Previous.IsNeutral() {
		t.Fatalf("previous owner should be neutral, got %s", res.Previous)
	}
	checkMembership(t, r, p)
}

func TestInvasion_NeutralCaptureClamped(t *testing.T) {
	r, a, _, p := newDuel()
	p.ResolveInvasion(&Fleet{Owner: a.ID, Size: 40, Target: p}, r)
	if p.Garrison() != 15 {
		t.Fatalf("expected garrison clamped to 15, got %.2f", p.Garrison())
	}
}

func TestInvasion_Reinforce(t *testing.T) {
	r, a, _, p := newDuel()
	r.Transfer(p, OwnedBy(a.ID))
	p.SetGarrison(4)
	res := p.ResolveInvasion(&Fleet{Owner: a.ID, Size: 6, Target: p}, r)
	if res.Kind != InvasionReinforced || p.Garrison() != 10 {
		t.Fatalf("expected reinforce to 10, got %s %.2f", res.Kind, p.Garrison())
	}
}

func TestInvasion_HostileDefended(t *testing.T) {
	r, a, b, p := newDuel()
	r.Transfer(p, OwnedBy(a.ID))
	p.SetGarrison(20) // clamps to 15
	res := p.ResolveInvasion(&Fleet{Owner: b.ID, Size: 10, Target: p}, r)
	if res.Kind != InvasionDefended {
		t.Fatalf("expected defend, got %s", res.Kind)
	}
	if !p.Owner().Is(a.ID) || p.Garrison() != 5 {
		t.Fatalf("expected a to hold with 5, got %s %.2f", p.Owner(), p.Garrison())
	}
	checkMembership(t, r, p)
}

func TestInvasion_HostileCaptureKeepsOverflow(t *testing.T) {
	r, a, b, p := newDuel()
	r.Transfer(p, OwnedBy(a.ID))
	p.SetGarrison(5)
	res := p.ResolveInvasion(&Fleet{Owner: b.ID, Size: 8, Target: p}, r)
	if res.Kind != InvasionCaptured || !p.Owner().Is(b.ID) {
		t.Fatalf("expected capture by b, got %s owner %s", res.Kind, p.Owner())
	}
	if p.Garrison() != 3 {
		t.Fatalf("expected garrison 3, got %.2f", p.Garrison())
	}
	if !res.Previous.Is(a.ID) {
		t.Fatalf("previous owner should be a, got %s", res.Previous)
	}
	if a.PlanetCount() != 0 || b.PlanetCount() != 1 {
		t.Fatalf("expected a=0 b=1 planets, got a=%d b=%d", a.PlanetCount(), b.PlanetCount())
	}
	checkMembership(t, r, p)
}

func TestInvasion_TieGoesToAttacker(t *testing.T) {
	r, a, b, p := newDuel()
	r.Transfer(p, OwnedBy(a.ID))
	p.SetGarrison(7)
	res := p.ResolveInvasion(&Fleet{Owner: b.ID, Size: 7, Target: p}, r)
	if res.Kind != InvasionCaptured || !p.Owner().Is(b.ID) {
		t.Fatalf("equal strength should capture, got %s owner %s", res.Kind, p.Owner())
	}
	if p.Garrison() != 0 {
		t.Fatalf("expected garrison 0, got %.2f", p.Garrison())
	}
	checkMembership(t, r, p)
}

// --- Regeneration ---

func TestPlanetTick_RegeneratesOwned(t *testing.T) {
	r, a, _, p := newDuel()
	r.Transfer(p, OwnedBy(a.ID))
	p.Tick()
	if !approx(p.Garrison(), 0.01) {
		t.Fatalf("expected 10/1000 = 0.01, got %.6f", p.Garrison())
	}
}

func TestPlanetTick_NeutralNeverRegenerates(t *testing.T) {
	_, _, _, p := newDuel()
	for i := 0; i < 1000; i++ {
		p.Tick()
	}
	if p.Garrison() != 0 {
		t.Fatalf("neutral planet regenerated to %.4f", p.Garrison())
	}
}

func TestPlanetTick_StopsAtCapacity(t *testing.T) {
	r, a, _, p := newDuel()
	r.Transfer(p, OwnedBy(a.ID))
	p.SetGarrison(14.995)
	p.Tick()
	if p.Garrison() != 15 {
		t.Fatalf("expected clamp to 15, got %.6f", p.Garrison())
	}
	p.Tick()
	if p.Garrison() != 15 {
		t.Fatalf("garrison should stay at capacity, got %.6f", p.Garrison())
	}
}

func TestPlanet_CapacityNeverNegative(t *testing.T) {
	p := NewPlanet(0, Vec2{}, 12, 6, DefaultPlanetRules)
	if c := p.Capacity(); c != 1 {
		t.Fatalf("expected 12-6-5 = 1, got %.2f", c)
	}
	tiny := NewPlanet(1, Vec2{}, 8, 5, DefaultPlanetRules)
	if c := tiny.Capacity(); c != 0 || math.Signbit(c) {
		t.Fatalf("expected capacity 0, got %.2f", c)
	}
}

func TestInvasionKind_String(t *testing.T) {
	if InvasionCaptured.String() != "capture" || InvasionReinforced.String() != "reinforce" ||
		InvasionDefended.String() != "defend" {
		t.Fatal("invasion kind names changed; event log keys depend on them")
	}
}
