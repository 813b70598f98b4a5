package models

// Plan is a catalog entry for a paid membership tier
type Plan struct {
	Name           string   `json:"name"`
	Price          int      `json:"price"`
	DurationMonths int      `json:"durationMonths"`
	Features       []string `json:"features"`
	Popular        bool     `json:"popular"`
}

// Plans is the in-code plan catalog. Approval copies Features from here at
// approval time, so edits between purchase and approval take effect.
var Plans = []Plan{
	{
		Name:           "Silver",
		Price:          1000,
		DurationMonths: 6,
		Features:       []string{"View unlimited profiles", "Send 50 interests", "Basic chat access", "Standard customer support"},
	},
	{
		Name:           "Gold",
		Price:          1500,
		DurationMonths: 12,
		Features:       []string{"All Silver features", "Send unlimited interests", "Priority customer support", "Profile boost for better visibility", "View matching horoscopes"},
		Popular:        true,
	},
}

// LookupPlan finds a catalog entry by name
func LookupPlan(name string) (Plan, bool) {
	for _, p := range Plans {
		if p.Name == name {
			return p, true
		}
	}
	return Plan{}, false
}
