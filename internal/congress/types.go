// Package congress talks to the Congress.gov member endpoint and
// normalizes its variably-shaped responses into canonical records.
package congress

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Member is one legislator's record for a queried Congress. Records are
// independent and immutable once fetched.
type Member struct {
	BioguideID string     `json:"bioguideId"`
	Name       string     `json:"name"`
	Party      string     `json:"party"`
	State      string     `json:"state"`
	District   FlexString `json:"district"`
	URL        string     `json:"url"`

	// CurrentMember is nil when the upstream omits the flag, which is
	// treated as "still serving".
	CurrentMember *bool `json:"currentMember"`

	Terms TermList `json:"terms"`
}

// Term is one historical chamber term. The upstream emits congress and
// year fields as either JSON numbers or numeric strings; district may be
// absent entirely, null, a number, or a string.
type Term struct {
	Chamber   string         `json:"chamber"`
	Congress  FlexInt        `json:"congress"`
	StartYear FlexInt        `json:"startYear"`
	EndYear   FlexInt        `json:"endYear"`
	District  NullableString `json:"district"`
}

// TermList is the canonical container for a member's terms. The upstream
// schema is inconsistent: the value of "terms" may be a bare array, an
// {"item": [...]} envelope, or an {"item": {...}} envelope holding a
// single term object. All tolerance for those shapes lives here, so the
// rest of the code iterates a plain slice.
type TermList []Term

func (t *TermList) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*t = nil
		return nil
	}

	switch raw[0] {
	case '[':
		var items []Term
		if err := json.Unmarshal(raw, &items); err != nil {
			return err
		}
		*t = items
		return nil
	case '{':
		var envelope struct {
			Item json.RawMessage `json:"item"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return err
		}
		item := bytes.TrimSpace(envelope.Item)
		if len(item) == 0 || bytes.Equal(item, []byte("null")) {
			*t = nil
			return nil
		}
		if item[0] == '{' {
			// single-term records arrive as a bare object
			var single Term
			if err := json.Unmarshal(item, &single); err != nil {
				return err
			}
			*t = TermList{single}
			return nil
		}
		var items []Term
		if err := json.Unmarshal(item, &items); err != nil {
			return err
		}
		*t = items
		return nil
	default:
		*t = nil
		return nil
	}
}

// FlexInt decodes a JSON number or a numeric string. Anything else,
// including null and non-numeric strings, decodes to zero rather than
// failing the whole record.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*f = 0
		return nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexInt(n)
		return nil
	}

	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(n)
	return nil
}

// FlexString decodes a JSON string or number into a string. Null,
// objects, and arrays decode to "", which downstream code treats as
// missing. The pagination continuation marker relies on this: a
// malformed nested-object marker becomes "" and the fetch loop stops.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 {
		*f = ""
		return nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			*f = ""
			return nil
		}
		*f = FlexString(s)
	case '{', '[', 'n', 't', 'f':
		*f = ""
	default:
		var num json.Number
		if err := json.Unmarshal(raw, &num); err != nil {
			*f = ""
			return nil
		}
		*f = FlexString(num.String())
	}
	return nil
}

// NullableString decodes an optional scalar field while recording
// whether the key was present and whether it was null. encoding/json
// never invokes an unmarshaler for an absent key, so the zero value
// means "absent"; an explicit null decodes as present-and-null, which
// keeps a null district distinct from both a missing one and a numbered
// one. A pointer field cannot do this: the decoder nils the pointer on
// null without ever calling the unmarshaler.
type NullableString struct {
	Present bool
	Null    bool
	Value   FlexString
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Present = true
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		n.Null = true
		n.Value = ""
		return nil
	}
	return n.Value.UnmarshalJSON(raw)
}

// memberPage is one page of the member listing.
type memberPage struct {
	Members    []Member   `json:"members"`
	Pagination pagination `json:"pagination"`
}

type pagination struct {
	Count int        `json:"count"`
	Next  FlexString `json:"next"`
}
