package db

import (
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	testcases := []struct {
		err  error
		kind Kind
	}{
		{ErrEmptyName, KindValidation},
		{fmt.Errorf("create %q: %w", "x", ErrInvalidName), KindValidation},
		{fmt.Errorf("add: %w", ErrDisallowedExtension), KindValidation},
		{fmt.Errorf("create: %w", ErrThemeExists), KindConflict},
		{ErrDocumentExists, KindConflict},
		{fmt.Errorf("open: %w", ErrDocumentNotFound), KindMissing},
		{ErrNoThemeSelected, KindMissing},
		{fmt.Errorf("disk on fire"), KindInternal},
	}

	for _, tc := range testcases {
		if actual := KindOf(tc.err); actual != tc.kind {
			t.Errorf("KindOf(%v) = %s, expected %s", tc.err, actual, tc.kind)
		}
	}
}
