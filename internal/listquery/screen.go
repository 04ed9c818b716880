package listquery

import "errors"

// Screen names a list screen of the admin console.
type Screen string

const (
	Vouchers        Screen = "vouchers"
	Transactions    Screen = "transactions"
	Logs            Screen = "logs"
	CommunityPoints Screen = "community-points"
	CPDistributions Screen = "cp-distributions"
	Members         Screen = "members"
	Merchants       Screen = "merchants"
	Notifications   Screen = "notifications"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

var ErrUnknownScreen = errors.New("unknown_screen")

// Spec describes how a screen talks to the backend.
type Spec struct {
	// Path is the backend endpoint, relative to the API base URL.
	Path string
	// Collection is the key the backend nests the paginator under, if any.
	Collection string
	PerPage    int
	Filters    []string
}

var specs = map[Screen]Spec{
	Vouchers: {
		Path:       "/admin/vouchers",
		Collection: "vouchers",
		PerPage:    DefaultPerPage,
		Filters:    []string{"member_id", "payment_method", "voucher_type"},
	},
	Transactions: {
		Path:       "/admin/transactions",
		Collection: "transactions",
		PerPage:    DefaultPerPage,
		Filters:    []string{"member_id", "merchant_id", "date_from", "date_to"},
	},
	Logs: {
		Path:       "/admin/logs",
		Collection: "logs",
		PerPage:    20,
		Filters:    []string{"type", "date_from", "date_to"},
	},
	CommunityPoints: {
		Path:       "/admin/cp",
		Collection: "community_points",
		PerPage:    DefaultPerPage,
		Filters:    []string{"member_id"},
	},
	CPDistributions: {
		Path:       "/admin/cp/distributions",
		Collection: "distributions",
		PerPage:    DefaultPerPage,
		Filters:    []string{"member_id", "date_from", "date_to"},
	},
	Members: {
		Path:       "/admin/members",
		Collection: "members",
		PerPage:    DefaultPerPage,
	},
	Merchants: {
		Path:       "/admin/merchants",
		Collection: "merchants",
		PerPage:    DefaultPerPage,
	},
	Notifications: {
		Path:       "/admin/notifications",
		Collection: "notifications",
		PerPage:    20,
		Filters:    []string{"type"},
	},
}

// Lookup returns the spec of a screen.
func Lookup(s Screen) (Spec, bool) {
	spec, ok := specs[s]
	return spec, ok
}

// Screens lists every known screen in a stable order.
func Screens() []Screen {
	return []Screen{Vouchers, Transactions, Logs, CommunityPoints, CPDistributions, Members, Merchants, Notifications}
}

func (s Spec) allows(key string) bool {
	for _, f := range s.Filters {
		if f == key {
			return true
		}
	}
	return false
}
