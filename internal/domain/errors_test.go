package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/waabox/buildboard/internal/domain"
)

func TestErrNotFound_CanBeDetectedWithErrorsIs(t *testing.T) {
	wrapped := fmt.Errorf("publisher API error: %w", domain.ErrNotFound)
	if !errors.Is(wrapped, domain.ErrNotFound) {
		t.Error("expected errors.Is to detect ErrNotFound in wrapped error")
	}
}
