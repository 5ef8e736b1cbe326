package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewReferenceCode returns a short booking reference like "CB-9F3A27C1".
func NewReferenceCode() string {
	return "CB-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
