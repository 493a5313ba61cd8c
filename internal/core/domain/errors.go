package domain

import (
	"errors"
	"fmt"
)

var (
	ErrStructuring = errors.New("query structuring failure")
	ErrSearch      = errors.New("knowledge base search failure")
	ErrJudgment    = errors.New("judgment failure")
	ErrGeneration  = errors.New("answer generation failure")
	ErrTemporary   = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
