package conquest

import "image/color"

// Roster owns every player in a world and is the only place planet
// ownership changes, so Player.planets always mirrors Planet.owner.
type Roster struct {
	players map[PlayerID]*Player
	order   []PlayerID
	nextID  PlayerID
}

// NewRoster returns an empty roster.
func NewRoster() *Roster {
	return &Roster{
		players: make(map[PlayerID]*Player),
		nextID:  1,
	}
}

// Add registers a new player and returns it.
func (r *Roster) Add(name string, c color.RGBA, reaction int, s Strategy) *Player {
	p := &Player{
		ID:       r.nextID,
		Name:     name,
		Color:    c,
		Reaction: reaction,
		Strategy: s,
	}
	r.nextID++
	r.players[p.ID] = p
	r.order = append(r.order, p.ID)
	return p
}

// Get returns the player with the given ID, or nil.
func (r *Roster) Get(id PlayerID) *Player {
	return r.players[id]
}

// Players returns all players in registration order.
func (r *Roster) Players() []*Player {
	out := make([]*Player, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.players[id])
	}
	return out
}

// Len returns the number of registered players.
func (r *Roster) Len() int {
	return len(r.order)
}

// Transfer hands planet p to a new owner, removing it from the previous
// owner's set and adding it to the new owner's set.
func (r *Roster) Transfer(p *Planet, to Owner) {
	if p.owner == to {
		return
	}
	if from, ok := p.owner.Player(); ok {
		if prev := r.players[from]; prev != nil {
			prev.removePlanet(p.ID)
		}
	}
	p.owner = to
	if id, ok := to.Player(); ok {
		if next := r.players[id]; next != nil {
			next.addPlanet(p.ID)
		}
	}
}

// Color returns the display colour for an owner; neutral is white.
func (r *Roster) Color(o Owner) color.RGBA {
	if id, ok := o.Player(); ok {
		if p := r.players[id]; p != nil {
			return p.Color
		}
	}
	return ColorNeutral
}

// Name returns a log label for an owner.
func (r *Roster) Name(o Owner) string {
	if id, ok := o.Player(); ok {
		if p := r.players[id]; p != nil {
			return p.Name
		}
	}
	return "neutral"
}
