package dialog

import (
	"strings"

	"github.com/maratech/voxguide/internal/match"
)

// SectionOption is one voice-selectable action inside a section.
type SectionOption struct {
	Name     string
	Keywords []string
	Action   string
}

// Feature is a navigable site section. Keyword lists mix languages on
// purpose: recognizers frequently return English words inside a French
// session and vice versa.
type Feature struct {
	Name     string
	Target   string
	Keywords []string
	Options  []SectionOption
}

// Section option actions.
const (
	ActionViewBalance = "view_balance"
	ActionTransfer    = "transfer"
	ActionHistory     = "history"
	ActionBack        = "back"
)

// Features returns the navigable sections and their voice options.
func Features() []Feature {
	return []Feature{
		{
			Name:     "Banking",
			Target:   "#banking",
			Keywords: []string{"banking", "banque", "compte", "bank", "bancaire", "banques"},
			Options: []SectionOption{
				{Name: "Voir le solde", Keywords: []string{"solde", "balance", "argent", "combien"}, Action: ActionViewBalance},
				{Name: "Faire une transaction", Keywords: []string{"transaction", "envoyer", "transferer", "transfert", "payer"}, Action: ActionTransfer},
				{Name: "Historique des transactions", Keywords: []string{"historique", "history", "liste", "transactions"}, Action: ActionHistory},
				{Name: "Retour", Keywords: []string{"retour", "back", "menu", "revenir"}, Action: ActionBack},
			},
		},
		{
			Name:     "Shopping",
			Target:   "#shopping",
			Keywords: []string{"shopping", "shop", "acheter", "courses", "magasin"},
		},
	}
}

// FeatureNames joins feature names for the spoken menu.
func FeatureNames(features []Feature) string {
	names := make([]string, len(features))
	for i, f := range features {
		names[i] = f.Name
	}
	return strings.Join(names, ", ")
}

// OptionNames joins option names for the spoken section menu.
func OptionNames(opts []SectionOption) string {
	names := make([]string, len(opts))
	for i, o := range opts {
		names[i] = o.Name
	}
	return strings.Join(names, ", ")
}

// MatchFeature picks the feature whose longest keyword appears in the
// transcript.
func MatchFeature(heard string, features []Feature) (Feature, bool) {
	cands := make([]match.Candidate, len(features))
	for i, f := range features {
		cands[i] = match.Candidate{Name: f.Name, Keywords: f.Keywords}
	}
	best, ok := match.Best(heard, cands)
	if !ok {
		return Feature{}, false
	}
	for _, f := range features {
		if f.Name == best.Name {
			return f, true
		}
	}
	return Feature{}, false
}

// MatchOption picks the section option whose longest keyword appears in
// the transcript.
func MatchOption(heard string, opts []SectionOption) (SectionOption, bool) {
	cands := make([]match.Candidate, len(opts))
	for i, o := range opts {
		cands[i] = match.Candidate{Name: o.Name, Keywords: o.Keywords}
	}
	best, ok := match.Best(heard, cands)
	if !ok {
		return SectionOption{}, false
	}
	for _, o := range opts {
		if o.Name == best.Name {
			return o, true
		}
	}
	return SectionOption{}, false
}
