package validation

import (
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"
)

// KeyID validates that a string is a lowercase hyphenated UUID, the
// canonical key identifier form.
var KeyID = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_key_id_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	parsed, err := uuid.Parse(s)
	if err != nil || parsed.String() != s {
		return validation.NewError("validation_key_id", "must be a lowercase hyphenated UUID")
	}
	return nil
})
