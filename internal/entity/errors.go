package entity

import "errors"

var (
	// ErrUnknownBlock is returned by NewBlock for an unrecognised id.
	ErrUnknownBlock = errors.New("entity: unknown block")
	// ErrUnknownItem is returned by NewItem for an unrecognised id.
	ErrUnknownItem = errors.New("entity: unknown item")
)
