package event

type GameAction int

const (
	ActionUnknown GameAction = iota
	ActionMoveLeft
	ActionMoveRight
	ActionRotate
	ActionHardDrop
	ActionStart
)

func (a GameAction) String() string {
	switch a {
	case ActionMoveLeft:
		return "Move Left"
	case ActionMoveRight:
		return "Move Right"
	case ActionRotate:
		return "Rotate"
	case ActionHardDrop:
		return "Hard Drop"
	case ActionStart:
		return "Start"
	default:
		return "Unknown"
	}
}
