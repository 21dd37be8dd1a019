package conquest

// Fleet is strength in transit between two planets. Owner, Size, Source and
// Target are fixed at launch; Pos moves every tick until arrival.
type Fleet struct {
	ID       FleetID
	Owner    PlayerID
	Size     float64
	Pos      Vec2
	Source   PlanetID
	Target   *Planet
	Velocity float64 // pixels per tick

	arrived bool
	result  InvasionResult
}

// Arrived reports whether the fleet has reached its target. Terminal.
func (f *Fleet) Arrived() bool {
	return f.arrived
}

// Result returns the invasion outcome once arrived.
func (f *Fleet) Result() (InvasionResult, bool) {
	return f.result, f.arrived
}

// Tick moves the fleet one step toward its target, or resolves the invasion
// if it is already inside the target's radius. It returns true on the tick
// the fleet arrives. Calling Tick after arrival does nothing.
func (f *Fleet) Tick(roster *Roster) bool {
	if f.arrived || f.Target == nil {
		return false
	}
	d := Dist(f.Pos, f.Target.Pos)
	// d == 0 must be checked before dividing by it below.
	if d == 0 || d <= f.Target.Radius {
		f.result = f.Target.ResolveInvasion(f, roster)
		f.arrived = true
		return true
	}
	step := f.Velocity
	if step >= d {
		f.Pos = f.Target.Pos
		return false
	}
	f.Pos = f.Pos.Add(f.Target.Pos.Sub(f.Pos).Scale(step / d))
	return false
}

// DistanceToTarget returns the straight-line distance to the target centre.
func (f *Fleet) DistanceToTarget() float64 {
	if f.Target == nil {
		return 0
	}
	return Dist(f.Pos, f.Target.Pos)
}
