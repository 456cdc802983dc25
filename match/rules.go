package match

import "github.com/kimeguida/ProCare/model"

// compatible[a] lists the ref labels a fit point labelled a may pair with.
var compatible = [model.NumLabels][model.NumLabels]bool{
	model.CA:  labelSet(model.CA, model.CZ),
	model.CZ:  labelSet(model.CZ, model.CA),
	model.N:   labelSet(model.N, model.NZ, model.OG),
	model.NZ:  labelSet(model.NZ, model.N, model.OG),
	model.O:   labelSet(model.O, model.OD1, model.OG),
	model.OD1: labelSet(model.OD1, model.O, model.OG),
	model.OG:  labelSet(model.OG, model.N, model.O, model.NZ, model.OD1),
	model.DU:  labelSet(model.DU),
}

func labelSet(labels ...model.Label) [model.NumLabels]bool {
	var s [model.NumLabels]bool
	for _, l := range labels {
		s[l] = true
	}
	return s
}

// Compatible reports whether a fit point labelled fit may correspond to a
// ref point labelled ref under RulesCompatible. The relation is reflexive and
// symmetric; DU pairs only with itself.
func Compatible(fit, ref model.Label) bool {
	if !fit.Valid() || !ref.Valid() {
		return false
	}
	return compatible[fit][ref]
}
