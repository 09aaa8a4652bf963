package nanoaod

import "strconv"

// Generator-level flavor of a reconstructed electron.
const (
	FlavUnmatched  = 0
	FlavPrompt     = 1
	FlavLight      = 3
	FlavCharm      = 4
	FlavBottom     = 5
	FlavTau        = 15
	FlavConversion = 22
)

// Flavors lists the known flavor codes in increasing order.
var Flavors = []int{
	FlavUnmatched, FlavPrompt, FlavLight, FlavCharm,
	FlavBottom, FlavTau, FlavConversion,
}

// FlavorName returns the suffix used in histogram names, e.g. "Flav5".
func FlavorName(code int) string {
	return "Flav" + strconv.Itoa(code)
}

func FlavorDescription(code int) string {
	switch code {
	case FlavUnmatched:
		return "unmatched"
	case FlavPrompt:
		return "prompt"
	case FlavLight:
		return "light or unknown"
	case FlavCharm:
		return "from c"
	case FlavBottom:
		return "from b"
	case FlavTau:
		return "from tau"
	case FlavConversion:
		return "photon conversion"
	}
	return "unknown"
}
