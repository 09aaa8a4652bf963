package nanoplot

var labels = map[string]string{
	"nElectrons":  "n_e",
	"pt":          "p_T [GeV]",
	"eta":         "η",
	"phi":         "φ",
	"mass":        "m [GeV]",
	"genPartIdx":  "Gen Part Idx",
	"genPartFlav": "Gen Part Flav",
	"dxy":         "d_xy",
	"dxyErr":      "d_xy err",
	"dxySig":      "d_xy sig",
	"EMID":        "EmbeddedID",
	"dz":          "d_z",
	"dzErr":       "d_z err",
	"dzSig":       "d_z sig",
	"ISO":         "ISO",
	"CONV":        "Conveto",
	"IP":          "d_IP",
	"IPErr":       "d_IP err",
	"IPSig1":      "d_IP sig1",
	"IPSig2":      "d_IP sig2",
	"IPSigDiff":   "d_IP sig1 - sig2",
	"Flav":        "Flav",
}

// Label returns the axis label of a variable.
func Label(variable string) (string, bool) {
	label, ok := labels[variable]
	return label, ok
}
