package conquest

import "fmt"

// PlayerID identifies a player within one World. IDs start at 1.
type PlayerID int

// PlanetID is a planet's index in placement order.
type PlanetID int

// FleetID identifies a fleet for the lifetime of a World.
type FleetID int

// Owner is either Neutral or Owned by a specific player.
// The zero value is Neutral.
type Owner struct {
	id    PlayerID
	owned bool
}

// Neutral is the unowned state.
func Neutral() Owner {
	return Owner{}
}

// OwnedBy returns an Owner for the given player.
func OwnedBy(id PlayerID) Owner {
	return Owner{id: id, owned: true}
}

// IsNeutral reports whether no player owns this.
func (o Owner) IsNeutral() bool {
	return !o.owned
}

// Player returns the owning player and true, or (0, false) when neutral.
func (o Owner) Player() (PlayerID, bool) {
	return o.id, o.owned
}

// Is reports whether the owner is the given player.
func (o Owner) Is(id PlayerID) bool {
	return o.owned && o.id == id
}

func (o Owner) String() string {
	if !o.owned {
		return "neutral"
	}
	return fmt.Sprintf("P%d", o.id)
}
