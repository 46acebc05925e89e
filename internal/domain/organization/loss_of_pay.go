package organization

import "strings"

const lossOfPayMarker = "loss of pay"

// IsLossOfPayName reports whether a leave type name flags the type as
// unlimited/unpaid. Case-insensitive substring match.
func IsLossOfPayName(name string) bool {
	return strings.Contains(strings.ToLower(name), lossOfPayMarker)
}
