package parser

import (
	"errors"
	"fmt"
)

// ErrUnparseableSource is matched by every UnparseableSourceError
var ErrUnparseableSource = errors.New("unparseable ruby source")

// UnparseableSourceError reports a file whose syntax tree is too broken to
// identify method definitions in
type UnparseableSourceError struct {
	File string
	Line int // first line with a syntax error, 0 if unknown
}

func (e *UnparseableSourceError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("cannot identify methods in %s: syntax error near line %d", e.File, e.Line)
	}
	return fmt.Sprintf("cannot identify methods in %s", e.File)
}

// Is lets errors.Is match ErrUnparseableSource
func (e *UnparseableSourceError) Is(target error) bool {
	return target == ErrUnparseableSource
}
