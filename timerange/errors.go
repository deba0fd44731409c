package timerange

import "errors"

// ErrAmbiguousLocalTime signals that a local wall-clock value could not be
// resolved to a single absolute instant in the reporting zone
var ErrAmbiguousLocalTime = errors.New("local time is not resolvable in the reporting zone")
