package sheet

import (
	"errors"

	"github.com/wethinkt/go-swatchsheet/internal/i18n"
)

// Alert returns the user-facing message for an error that aborted a
// generation, and false for any other error.
func Alert(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrNoDocument):
		return i18n.T("alert.noDocument", "Please open a document and select an object."), true
	case errors.Is(err, ErrEmptySelection):
		return i18n.T("alert.emptySelection", "Please select at least one object."), true
	case errors.Is(err, ErrNoColors):
		return i18n.T("alert.noColors", "No colors found in the selected object."), true
	}
	return "", false
}
