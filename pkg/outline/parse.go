package outline

import (
	"context"
	"errors"
	"fmt"
)

// ErrInternal marks a failure inside the scanner itself. Malformed markup
// never produces it.
var ErrInternal = errors.New("internal outline error")

// Parse builds the element forest for a document. It accepts any input and
// never fails; the same text always yields the same forest.
func Parse(text string) Forest {
	return newScanner(text).run()
}

// parse is swapped in tests to exercise panic recovery.
var parse = Parse

// ParseContext is the guarded entry point used by editors and commands.
// It honors cancellation on entry only. A panic during scanning is
// recovered and reported as an error wrapping ErrInternal, together with an
// empty forest, so callers can show a notification and carry on.
func ParseContext(ctx context.Context, text string) (forest Forest, err error) {
	if err := ctx.Err(); err != nil {
		return Forest{}, err
	}

	defer func() {
		if r := recover(); r != nil {
			forest = Forest{}
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	return parse(text), nil
}
