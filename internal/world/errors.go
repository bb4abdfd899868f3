package world

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-sandbox/internal/physics"
)

var (
	// ErrDuplicateRegistration is returned when a body is registered twice.
	ErrDuplicateRegistration = errors.New("world: duplicate registration")
	// ErrUnknownBody is returned when a body has no registered entity.
	ErrUnknownBody = errors.New("world: unknown body")
	// ErrLocked is returned when bodies are added while physics is advancing.
	ErrLocked = errors.New("world: physics is advancing")
	// ErrCellOccupied is returned when placing a block on a taken cell.
	ErrCellOccupied = errors.New("world: cell occupied")
	// ErrOutOfBounds is returned for grid positions outside the world.
	ErrOutOfBounds = errors.New("world: position out of bounds")
	// ErrOutOfReach is returned when a player acts beyond their reach.
	ErrOutOfReach = errors.New("world: target out of reach")
	// ErrNotCarried is returned when a player uses an item they do not hold.
	ErrNotCarried = errors.New("world: item not carried")
	// ErrNotPlaceable is returned when placing an item that is not a block.
	ErrNotPlaceable = errors.New("world: item cannot be placed")
	// ErrNotUsable is returned when using an item that has no effect.
	ErrNotUsable = errors.New("world: item has no use")
)

// InvariantError reports a desync between physics and the registry. The
// world panics with it; it is never returned or retried.
type InvariantError struct {
	Op   string
	Body physics.BodyID
	Err  error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("world: invariant violated: %s body %d: %v", e.Op, e.Body, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}
