package tunesum

import "strings"

type Tier int

const (
	Gold Tier = iota
	Silver
	Bronze
)

var Tiers = []Tier{Gold, Silver, Bronze}

func (t Tier) String() string {
	switch t {
	case Gold:
		return "gold"
	case Silver:
		return "silver"
	case Bronze:
		return "bronze"
	}
	return "unknown"
}

// TierOf classifies a result file by its name.
func TierOf(name string) (Tier, bool) {
	name = strings.ToLower(name)
	switch {
	case strings.Contains(name, "gold"):
		return Gold, true
	case strings.Contains(name, "slvr"):
		return Silver, true
	case strings.Contains(name, "bron"):
		return Bronze, true
	}
	return 0, false
}
