package conquest

import (
	"fmt"
	"image/color"
	"strings"
)

// Standing is one player's share of the galaxy at a point in time.
type Standing struct {
	Player   PlayerID
	Name     string
	Color    color.RGBA
	Human    bool
	Dead     bool
	Planets  int
	Garrison float64 // sum over owned planets
	Fleets   int
	InFlight float64 // sum of fleet sizes in flight
}

// Strength is garrison plus strength in flight.
func (s Standing) Strength() float64 {
	return s.Garrison + s.InFlight
}

// Standings returns every player's standing in seating order.
func (w *World) Standings() []Standing {
	out := make([]Standing, 0, w.roster.Len())
	for _, p := range w.roster.Players() {
		st := Standing{
			Player:  p.ID,
			Name:    p.Name,
			Color:   p.Color,
			Human:   p.ID == w.human,
			Dead:    p.Dead(),
			Planets: p.PlanetCount(),
		}
		for _, id := range p.planets {
			if pl := w.Planet(id); pl != nil {
				st.Garrison += pl.Garrison()
			}
		}
		for _, f := range w.fleets {
			if f.Owner == p.ID && !f.Arrived() {
				st.Fleets++
				st.InFlight += f.Size
			}
		}
		out = append(out, st)
	}
	return out
}

// MatchReport summarises a finished or interrupted match.
type MatchReport struct {
	Seed       int64
	Preset     string
	Tick       int
	Outcome    Outcome
	Leader     string // most planets among living players, strength breaks ties
	Dispatches int
	Captures   int
	Defences   int
	Eliminated []string // in elimination order
	Standings  []Standing
}

// Report builds a MatchReport from the current state and event log.
func (w *World) Report() MatchReport {
	r := MatchReport{
		Seed:       w.cfg.Seed,
		Preset:     w.cfg.Preset,
		Tick:       w.tick,
		Outcome:    w.outcome,
		Dispatches: w.log.CountCategory("fleet", "dispatch"),
		Captures:   w.log.CountCategory("invasion", InvasionCaptured.String()),
		Defences:   w.log.CountCategory("invasion", InvasionDefended.String()),
		Standings:  w.Standings(),
	}
	for _, e := range w.log.Filter("player", "eliminated") {
		r.Eliminated = append(r.Eliminated, e.Player)
	}
	r.Leader = leader(r.Standings)
	return r
}

func leader(standings []Standing) string {
	best := -1
	for i, s := range standings {
		if s.Dead {
			continue
		}
		if best < 0 ||
			s.Planets > standings[best].Planets ||
			(s.Planets == standings[best].Planets && s.Strength() > standings[best].Strength()) {
			best = i
		}
	}
	if best < 0 {
		return "--"
	}
	return standings[best].Name
}

// FormatStandings renders a fixed-width standings table.
func FormatStandings(tick int, standings []Standing) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Standings at T=%04d ---\n", tick)
	for _, s := range standings {
		status := "alive"
		if s.Dead {
			status = "dead"
		}
		seat := "ai"
		if s.Human {
			seat = "human"
		}
		fmt.Fprintf(&sb, "%-8s %-5s %-5s planets=%-3d garrison=%7.1f fleets=%-3d in_flight=%7.1f\n",
			s.Name, seat, status, s.Planets, s.Garrison, s.Fleets, s.InFlight)
	}
	return sb.String()
}

// Format renders the report as plain text.
func (r MatchReport) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "preset=%s seed=%d tick=%d outcome=%s leader=%s\n",
		r.Preset, r.Seed, r.Tick, r.Outcome, r.Leader)
	fmt.Fprintf(&sb, "dispatches=%d captures=%d defences=%d\n", r.Dispatches, r.Captures, r.Defences)
	if len(r.Eliminated) > 0 {
		fmt.Fprintf(&sb, "eliminated: %s\n", strings.Join(r.Eliminated, " → "))
	}
	sb.WriteString(FormatStandings(r.Tick, r.Standings))
	return sb.String()
}
