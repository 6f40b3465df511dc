package canvas

import "errors"

// Error kinds. Validation errors (bounds, color, parameter) signal a
// programming error in the caller and are never recovered internally;
// drawing and font errors wrap the failing primitive.
var (
	ErrOutOfBounds  = errors.New("canvas: tile coordinates out of bounds")
	ErrInvalidColor = errors.New("canvas: invalid color")
	ErrInvalidParam = errors.New("canvas: invalid parameter")
	ErrInvalidSize  = errors.New("canvas: invalid canvas size")
	ErrFont         = errors.New("canvas: font error")
	ErrDrawing      = errors.New("canvas: drawing error")
)
