package congress

import (
	"fmt"
	"strings"
)

// Stats summarizes a filtered member set.
type Stats struct {
	Total        int
	Former       int
	Redistricted int
}

// ComputeStats derives summary statistics in a single traversal.
//
// A member of the sitting Congress counts as former when the upstream
// currentMember flag is explicitly false. For historical Congresses the
// flag is useless, so a member counts as former when any of their terms
// for the queried Congress ended short of the full two years. A member
// counts as redistricted when their terms for the queried Congress
// reference more than one distinct district value; an explicit null
// district is a value of its own, distinct from any numbered district.
func ComputeStats(members []Member, congress int, isCurrent bool) Stats {
	s := Stats{Total: len(members)}

	for _, m := range members {
		if isCurrent {
			if m.CurrentMember != nil && !*m.CurrentMember {
				s.Former++
			}
		} else {
			for _, t := range m.Terms {
				if int(t.Congress) == congress && int(t.EndYear) != int(t.StartYear)+2 {
					s.Former++
					break
				}
			}
		}

		districts := make(map[NullableString]struct{})
		for _, t := range m.Terms {
			if int(t.Congress) == congress && t.District.Present {
				districts[t.District] = struct{}{}
			}
		}
		if len(districts) > 1 {
			s.Redistricted++
		}
	}

	return s
}

// Distribution renders the non-total counts for display, e.g.
// "including 3 former, 1 redistricted". Empty when both are zero.
func (s Stats) Distribution() string {
	var parts []string
	if s.Former > 0 {
		parts = append(parts, fmt.Sprintf("%d former", s.Former))
	}
	if s.Redistricted > 0 {
		parts = append(parts, fmt.Sprintf("%d redistricted", s.Redistricted))
	}
	if len(parts) == 0 {
		return ""
	}
	return "including " + strings.Join(parts, ", ")
}
