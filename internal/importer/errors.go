package importer

import "errors"

var (
	// ErrInvalidAxis indicates an up-axis string outside the six valid
	// choices.
	ErrInvalidAxis = errors.New("invalid up axis")

	// ErrOpenFile indicates the mesh file could not be opened.
	ErrOpenFile = errors.New("cannot open mesh file")
)
