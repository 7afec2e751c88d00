package operation

import "strings"

// ID identifies an operation in a Registry. It is an open token: callers may
// define their own identifiers next to the built-in ones.
type ID string

// Built-in operation identifiers, registered by NewRegistry.
const (
	ViewBalance ID = "VIEW_BALANCE"
	Credit      ID = "CREDIT"
	Debit       ID = "DEBIT"
)

// Identifiers of the extension operations shipped with this package. They are
// only registered when a caller opts in.
const (
	Interest ID = "INTEREST"
	Fees     ID = "FEES"
	Transfer ID = "TRANSFER"
	History  ID = "HISTORY"
)

// String returns the identifier token.
func (id ID) String() string { return string(id) }

// NormalizeID turns free-form input such as "view-balance" or " credit " into
// an ID token ("VIEW_BALANCE", "CREDIT").
func NormalizeID(s string) ID {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return '_'
		}
		return r
	}, s)
	return ID(s)
}
