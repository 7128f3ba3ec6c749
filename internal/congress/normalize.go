package congress

import (
	"strings"

	"github.com/leveneer/congress-member-data/internal/errors"
)

// Canonical chamber labels used for filtering and export.
const (
	ChamberHouse  = "House"
	ChamberSenate = "Senate"
)

// CurrentChamber extracts the chamber of a member's most recent term,
// normalizing "House of Representatives" to "House". Members with no
// terms yield "".
func CurrentChamber(m Member) string {
	if len(m.Terms) == 0 {
		return ""
	}
	chamber := m.Terms[len(m.Terms)-1].Chamber
	if chamber == "House of Representatives" {
		return ChamberHouse
	}
	return chamber
}

// NormalizeChamber maps user input to a canonical chamber label. It
// accepts full names and single-letter abbreviations in any case; ""
// passes through as "no filter". Anything else is a usage error.
func NormalizeChamber(input string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "":
		return "", nil
	case "house", "h":
		return ChamberHouse, nil
	case "senate", "s":
		return ChamberSenate, nil
	}
	return "", errors.UsageErrorf("invalid chamber specification: %s. Use 'House'/'Senate' or 'H'/'S'", input)
}
