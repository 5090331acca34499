package models

// DefaultIcon is used for unknown icon names and for uncategorized rows.
const DefaultIcon = "Wallet"

var knownIcons = map[string]struct{}{
	"Wallet":      {},
	"Home":        {},
	"ShoppingBag": {},
	"Utensils":    {},
	"Car":         {},
	"Wifi":        {},
	"Gift":        {},
	"Briefcase":   {},
	"CreditCard":  {},
	"Coffee":      {},
}

func IsKnownIcon(name string) bool {
	_, ok := knownIcons[name]
	return ok
}

// ResolveIcon maps a stored icon name onto the icon set the client renders.
func ResolveIcon(name string) string {
	if IsKnownIcon(name) {
		return name
	}
	return DefaultIcon
}
