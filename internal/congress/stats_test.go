package congress

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func district(s string) NullableString {
	return NullableString{Present: true, Value: FlexString(s)}
}

func nullDistrict() NullableString {
	return NullableString{Present: true, Null: true}
}

func TestComputeStatsCurrentCongress(t *testing.T) {
	members := []Member{
		{BioguideID: "A", CurrentMember: boolPtr(true)},
		{BioguideID: "B", CurrentMember: boolPtr(false)},
		{BioguideID: "C"}, // flag absent means still serving
	}

	stats := ComputeStats(members, 118, true)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Former)
	assert.Equal(t, 0, stats.Redistricted)
}

func TestComputeStatsHistoricalCongress(t *testing.T) {
	members := []Member{
		{
			// served the full two years
			BioguideID: "FULL",
			Terms:      TermList{{Congress: 110, StartYear: 2007, EndYear: 2009}},
		},
		{
			// left one year in
			BioguideID: "SHORT",
			Terms:      TermList{{Congress: 110, StartYear: 2007, EndYear: 2008}},
		},
		{
			// missing end year counts as an incomplete term
			BioguideID: "OPEN",
			Terms:      TermList{{Congress: 110, StartYear: 2007}},
		},
		{
			// short term in a different Congress is ignored
			BioguideID: "OTHER",
			Terms: TermList{
				{Congress: 109, StartYear: 2005, EndYear: 2006},
				{Congress: 110, StartYear: 2007, EndYear: 2009},
			},
		},
	}

	stats := ComputeStats(members, 110, false)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Former)
}

func TestComputeStatsRedistricted(t *testing.T) {
	members := []Member{
		{
			// two districts within the queried Congress
			BioguideID: "MOVED",
			Terms: TermList{
				{Congress: 110, StartYear: 2007, EndYear: 2009, District: district("3")},
				{Congress: 110, StartYear: 2007, EndYear: 2009, District: district("5")},
			},
		},
		{
			// same district twice
			BioguideID: "STAYED",
			Terms: TermList{
				{Congress: 110, District: district("3")},
				{Congress: 110, District: district("3")},
			},
		},
		{
			// district change in another Congress does not count
			BioguideID: "EARLIER",
			Terms: TermList{
				{Congress: 109, District: district("1")},
				{Congress: 109, District: district("2")},
				{Congress: 110, StartYear: 2007, EndYear: 2009, District: district("2")},
			},
		},
		{
			// a null district is a distinct value, not a missing one
			BioguideID: "NULLED",
			Terms: TermList{
				{Congress: 110, District: district("5")},
				{Congress: 110, District: nullDistrict()},
			},
		},
		{
			// an absent district contributes nothing
			BioguideID: "ABSENT",
			Terms: TermList{
				{Congress: 110, District: district("7")},
				{Congress: 110},
			},
		},
		{
			// senators carry no district at all
			BioguideID: "SEN",
			Terms:      TermList{{Congress: 110, StartYear: 2007, EndYear: 2009}},
		},
	}

	stats := ComputeStats(members, 110, false)
	assert.Equal(t, 2, stats.Redistricted)
}

func TestComputeStatsRedistrictedFromPayload(t *testing.T) {
	// The null district must survive decoding as a present value.
	payload := `{
		"bioguideId": "R000001",
		"terms": {"item": [
			{"congress": 110, "district": 5},
			{"congress": 110, "district": null}
		]}
	}`

	var m Member
	require.NoError(t, json.Unmarshal([]byte(payload), &m))

	stats := ComputeStats([]Member{m}, 110, false)
	assert.Equal(t, 1, stats.Redistricted)
}

func TestStatsDistribution(t *testing.T) {
	assert.Equal(t, "", Stats{Total: 10}.Distribution())
	assert.Equal(t, "including 2 former", Stats{Total: 10, Former: 2}.Distribution())
	assert.Equal(t, "including 1 redistricted", Stats{Total: 10, Redistricted: 1}.Distribution())
	assert.Equal(t, "including 3 former, 1 redistricted",
		Stats{Total: 10, Former: 3, Redistricted: 1}.Distribution())
}
