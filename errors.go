package gridref

import "errors"

// Error kinds returned by constructors and conversions. Returned errors wrap
// one of these, so callers test with errors.Is.
var (
	// ErrInvalidParameters reports malformed or out of range constructor
	// input, such as a latitude outside +/-90 degrees or a 100km square
	// letter of 'I'.
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrOutOfRange reports a national grid easting or northing outside the
	// grid's defined rectangle.
	ErrOutOfRange = errors.New("out of range")

	// ErrNotDefinedOnGrid reports a position or reference that falls outside
	// the UTM/MGRS zone system.
	ErrNotDefinedOnGrid = errors.New("not defined on grid")
)
