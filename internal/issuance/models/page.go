package models

import (
	dErrors "mintgate/pkg/domain-errors"
)

// PageBounds resolves an offset/limit window over a collection of n items.
// An offset at or beyond n is OutOfRange; a limit that overshoots the end is
// clamped rather than rejected.
func PageBounds(offset, limit, n int) (start, end int, err error) {
	if offset < 0 || limit < 0 {
		return 0, 0, dErrors.New(dErrors.CodeInvalidArgument, "offset and limit must be non-negative")
	}
	if offset >= n {
		return 0, 0, dErrors.New(dErrors.CodeOutOfRange, "offset is beyond the end of the collection")
	}
	end = n
	if limit < n-offset {
		end = offset + limit
	}
	return offset, end, nil
}
