package conquest

// InputKind enumerates the discrete events the world understands.
type InputKind int

const (
	InputQuit InputKind = iota
	InputPointerDown
	InputPointerMove
	InputPointerUp
)

func (k InputKind) String() string {
	switch k {
	case InputQuit:
		return "quit"
	case InputPointerDown:
		return "pointer_down"
	case InputPointerMove:
		return "pointer_move"
	case InputPointerUp:
		return "pointer_up"
	default:
		return "unknown"
	}
}

// InputEvent is one event from the window or a scripted source.
type InputEvent struct {
	Kind InputKind
	Pos  Vec2
}

// Quit halts the loop immediately.
func Quit() InputEvent { return InputEvent{Kind: InputQuit} }

// PointerDown starts a send from the planet under pos.
func PointerDown(pos Vec2) InputEvent { return InputEvent{Kind: InputPointerDown, Pos: pos} }

// PointerMove updates the pending send fraction while dragging.
func PointerMove(pos Vec2) InputEvent { return InputEvent{Kind: InputPointerMove, Pos: pos} }

// PointerUp completes a send to the planet under pos.
func PointerUp(pos Vec2) InputEvent { return InputEvent{Kind: InputPointerUp, Pos: pos} }

// InputSource yields the events that arrived since the last poll.
type InputSource interface {
	Poll() []InputEvent
}

// ScriptedInput replays events keyed by the tick after which they arrive.
type ScriptedInput struct {
	World  *World
	Events map[int][]InputEvent
}

// Poll implements InputSource.
func (s *ScriptedInput) Poll() []InputEvent {
	if s == nil || s.World == nil {
		return nil
	}
	return s.Events[s.World.Tick()]
}

type noInput struct{}

func (noInput) Poll() []InputEvent { return nil }
