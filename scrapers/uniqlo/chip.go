package uniqlo

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedChipIdentifier is returned when a chip id is not of the form "<group>-<ordinal>"
var ErrMalformedChipIdentifier = errors.New("malformed chip identifier")

// ChipIdentifier is the parsed DOM id of a size or color chip
type ChipIdentifier struct {
	Group   string
	Ordinal string
}

// ParseChipIdentifier splits a chip id on "-". The first segment is the group
// and the second the ordinal; anything after the second segment is ignored.
func ParseChipIdentifier(raw string) (ChipIdentifier, error) {
	parts := strings.Split(raw, "-")
	if len(parts) < 2 {
		return ChipIdentifier{}, fmt.Errorf("%w: %q has no separator", ErrMalformedChipIdentifier, raw)
	}
	if parts[1] == "" {
		return ChipIdentifier{}, fmt.Errorf("%w: %q has an empty ordinal", ErrMalformedChipIdentifier, raw)
	}
	return ChipIdentifier{Group: parts[0], Ordinal: parts[1]}, nil
}
