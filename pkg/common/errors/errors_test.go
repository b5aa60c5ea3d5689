package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsDisposed(t *testing.T) {
	wrapped := fmt.Errorf("register %q: %w", "task", ErrDisposed)

	if !IsDisposed(wrapped) {
		t.Error("wrapped ErrDisposed should be recognized")
	}
	if IsDisposed(errors.New("other")) {
		t.Error("unrelated error should not be recognized")
	}
	if IsDisposed(nil) {
		t.Error("nil should not be recognized")
	}
}
