package system

import "github.com/younwookim/kinebody/internal/domain/entity"

// Intent represents an action that an entity wants to perform
type Intent interface {
	isIntent()
}

// MoveIntent represents a horizontal movement intention
type MoveIntent struct {
	EntityID  entity.EntityID
	Direction int // -1 for left, 1 for right
}

func (MoveIntent) isIntent() {}

// JumpIntent represents a jump intention
type JumpIntent struct {
	EntityID entity.EntityID
}

func (JumpIntent) isIntent() {}

// ClimbIntent represents a ladder climbing intention
type ClimbIntent struct {
	EntityID  entity.EntityID
	Direction int // -1 for up, 1 for down, 0 to hold
}

func (ClimbIntent) isIntent() {}

// IntentsFor translates an input state into intents for one entity
func IntentsFor(id entity.EntityID, input InputState) []Intent {
	var intents []Intent

	switch {
	case input.Left && !input.Right:
		intents = append(intents, MoveIntent{EntityID: id, Direction: -1})
	case input.Right && !input.Left:
		intents = append(intents, MoveIntent{EntityID: id, Direction: 1})
	}

	climb := 0
	if input.Up {
		climb--
	}
	if input.Down {
		climb++
	}
	intents = append(intents, ClimbIntent{EntityID: id, Direction: climb})

	if input.JumpPressed {
		intents = append(intents, JumpIntent{EntityID: id})
	}
	return intents
}
