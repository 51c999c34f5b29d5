package format

import (
	"regexp"
	"sort"
)

// Expansion is an ordered find/replace pass over the rendered route
// text. Order is a correctness requirement, not a style choice: state
// codes expand before bounded directions, which expand before bare
// directions, so "SB" is never clipped by the bare "S" rule.
//
// Known ambiguity carried over from the source data: "IN" the state
// code collides with "IN" the preposition, and a lone "N" next to a
// city name may be a street prefix rather than a direction. The rules
// use word-boundary matching and check the state table first, which is
// the established heuristic; no further disambiguation is attempted.

type rule struct {
	re   *regexp.Regexp
	repl string
}

var stateNames = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"FL": "Florida", "GA": "Georgia", "HI": "Hawaii", "ID": "Idaho",
	"IL": "Illinois", "IN": "Indiana", "IA": "Iowa", "KS": "Kansas",
	"KY": "Kentucky", "LA": "Louisiana", "ME": "Maine", "MD": "Maryland",
	"MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi",
	"MO": "Missouri", "MT": "Montana", "NE": "Nebraska", "NV": "Nevada",
	"NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico", "NY": "New York",
	"NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio", "OK": "Oklahoma",
	"OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island", "SC": "South Carolina",
	"SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah",
	"VT": "Vermont", "VA": "Virginia", "WA": "Washington", "WV": "West Virginia",
	"WI": "Wisconsin", "WY": "Wyoming",
}

var boundedDirections = [][2]string{
	{"NB", "Northbound"},
	{"SB", "Southbound"},
	{"EB", "Eastbound"},
	{"WB", "Westbound"},
}

var bareDirections = [][2]string{
	{"N", "North"},
	{"S", "South"},
	{"E", "East"},
	{"W", "West"},
}

var expansionRules = buildRules()

func buildRules() []rule {
	var rules []rule

	// deterministic order within the state pass
	codes := make([]string, 0, len(stateNames))
	for code := range stateNames {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		rules = append(rules, rule{
			re:   regexp.MustCompile(`\b` + code + `\b`),
			repl: stateNames[code],
		})
	}
	for _, d := range boundedDirections {
		rules = append(rules, rule{re: regexp.MustCompile(`\b` + d[0] + `\b`), repl: d[1]})
	}
	for _, d := range bareDirections {
		rules = append(rules, rule{re: regexp.MustCompile(`\b` + d[0] + `\b`), repl: d[1]})
	}
	return rules
}

// Expand replaces known abbreviations with their full names. Matching
// is case-sensitive and word-boundary-safe, and the output contains no
// residual abbreviation tokens, which also makes Expand idempotent.
func Expand(s string) string {
	for _, r := range expansionRules {
		s = r.re.ReplaceAllString(s, r.repl)
	}
	return s
}
