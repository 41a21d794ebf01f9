package ai

import (
	"testing"

	"github.com/nichenav/nichenav-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validNicheJSON = `{
	"overallSearchVolume": 45000,
	"overallCompetition": "medium",
	"monetizationPotential": 82,
	"microNiches": [
		{
			"name": "Van Life Solar Setups",
			"description": "Solar power systems for camper vans",
			"searchVolume": 12000,
			"competition": "low",
			"monetizationScore": 78,
			"validationScore": 85,
			"examples": ["12V fridge wiring guide", "200W panel review"]
		}
	]
}`

func TestParseNicheAnalysis_Valid(t *testing.T) {
	payload, err := ParseNicheAnalysis(validNicheJSON)
	require.NoError(t, err)

	assert.Equal(t, 45000, payload.OverallSearchVolume)
	assert.Equal(t, models.CompetitionMedium, payload.OverallCompetition)
	assert.Equal(t, 82, payload.MonetizationPotential)
	require.Len(t, payload.MicroNiches, 1)

	n := payload.MicroNiches[0]
	assert.Equal(t, "Van Life Solar Setups", n.Name)
	assert.Equal(t, 12000, n.SearchVolume)
	assert.Equal(t, models.CompetitionLow, n.Competition)
	assert.Equal(t, 78, n.MonetizationScore)
	assert.Equal(t, 85, n.ValidationScore)
	assert.Len(t, n.Examples, 2)
}

func TestParseNicheAnalysis_MalformedJSON(t *testing.T) {
	_, err := ParseNicheAnalysis(`{"overallSearchVolume": 45000,`)
	assert.ErrorIs(t, err, ErrMalformedJSON)
}

func TestParseNicheAnalysis_EmptyMicroNiches(t *testing.T) {
	_, err := ParseNicheAnalysis(`{"overallSearchVolume": 45000, "microNiches": []}`)
	assert.ErrorIs(t, err, ErrIncompleteResponse)
}

func TestParseNicheAnalysis_MissingRequiredFields(t *testing.T) {
	cases := map[string]string{
		"no name":        `{"microNiches": [{"description": "d", "searchVolume": 1000, "examples": ["x"]}]}`,
		"no description": `{"microNiches": [{"name": "n", "searchVolume": 1000, "examples": ["x"]}]}`,
		"zero volume":    `{"microNiches": [{"name": "n", "description": "d", "searchVolume": 0, "examples": ["x"]}]}`,
		"no examples":    `{"microNiches": [{"name": "n", "description": "d", "searchVolume": 1000, "examples": []}]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseNicheAnalysis(raw)
			assert.ErrorIs(t, err, ErrIncompleteResponse)
		})
	}
}

func TestParseNicheAnalysis_ReboundsOutOfRangeVolume(t *testing.T) {
	raw := `{"microNiches": [
		{"name": "tiny", "description": "d", "searchVolume": 3, "examples": ["x"]},
		{"name": "huge", "description": "d", "searchVolume": 4000000, "examples": ["x"]},
		{"name": "edge", "description": "d", "searchVolume": 100000, "examples": ["x"]}
	]}`
	payload, err := ParseNicheAnalysis(raw)
	require.NoError(t, err)

	// Out-of-range volumes land on the rebound bounds, in-range pass through
	assert.Equal(t, 500, payload.MicroNiches[0].SearchVolume)
	assert.Equal(t, 50000, payload.MicroNiches[1].SearchVolume)
	assert.Equal(t, 100000, payload.MicroNiches[2].SearchVolume)
}

func TestParseNicheAnalysis_DefaultsMissingScores(t *testing.T) {
	raw := `{"microNiches": [{"name": "n", "description": "d", "searchVolume": 1000, "examples": ["x"]}]}`
	payload, err := ParseNicheAnalysis(raw)
	require.NoError(t, err)

	n := payload.MicroNiches[0]
	assert.Equal(t, 70, n.MonetizationScore)
	assert.Equal(t, 75, n.ValidationScore)
	assert.Equal(t, models.CompetitionMedium, n.Competition)
}

func TestParseNicheAnalysis_ClampsScores(t *testing.T) {
	raw := `{
		"monetizationPotential": 250,
		"microNiches": [{"name": "n", "description": "d", "searchVolume": 1000,
			"monetizationScore": -5, "validationScore": 300, "examples": ["x"]}]
	}`
	payload, err := ParseNicheAnalysis(raw)
	require.NoError(t, err)

	assert.Equal(t, 100, payload.MonetizationPotential)
	assert.Equal(t, 1, payload.MicroNiches[0].MonetizationScore)
	assert.Equal(t, 100, payload.MicroNiches[0].ValidationScore)
}

func TestParseNicheAnalysis_NormalizesCompetition(t *testing.T) {
	raw := `{"overallCompetition": "EXTREME", "microNiches": [
		{"name": "n", "description": "d", "searchVolume": 1000, "competition": "Very High", "examples": ["x"]}
	]}`
	payload, err := ParseNicheAnalysis(raw)
	require.NoError(t, err)

	assert.Equal(t, models.CompetitionMedium, payload.OverallCompetition)
	assert.Equal(t, models.CompetitionMedium, payload.MicroNiches[0].Competition)
}

const validReportJSON = `{
	"profitabilityScore": 88,
	"audienceSize": 250000,
	"competitors": [
		{"name": "VanDweller Pro", "website": "https://example.com", "followers": 80000,
		 "engagement": 4.2, "strengths": ["deep catalog"], "weaknesses": ["no video"]}
	],
	"contentGaps": ["beginner wiring diagrams"],
	"monetizationStrategies": ["affiliate kits"],
	"riskFactors": ["seasonal demand"],
	"timeToMarket": "2-3 months",
	"successRoadmap": {
		"phase1": {"timeline": "Month 1", "budget": "$500", "objectives": ["launch site"], "keyActions": ["buy domain"]}
	}
}`

func TestParseValidationReport_Valid(t *testing.T) {
	payload, err := ParseValidationReport(validReportJSON)
	require.NoError(t, err)

	assert.Equal(t, 88, payload.ProfitabilityScore)
	assert.Equal(t, 250000, payload.AudienceSize)
	require.Len(t, payload.Competitors, 1)
	assert.Equal(t, "VanDweller Pro", payload.Competitors[0].Name)
	assert.Equal(t, 4.2, payload.Competitors[0].Engagement)
	assert.Equal(t, "2-3 months", payload.TimeToMarket)
	require.NotNil(t, payload.Roadmap)
	require.NotNil(t, payload.Roadmap.Phase1)
	assert.Equal(t, "Month 1", payload.Roadmap.Phase1.Timeline)
	assert.Nil(t, payload.Roadmap.Phase2)
}

func TestParseValidationReport_MalformedJSON(t *testing.T) {
	_, err := ParseValidationReport(`not json at all`)
	assert.ErrorIs(t, err, ErrMalformedJSON)
}

func TestParseValidationReport_IncompleteSections(t *testing.T) {
	cases := map[string]string{
		"no competitors": `{"contentGaps": ["g"], "monetizationStrategies": ["m"]}`,
		"no gaps":        `{"competitors": [{"name": "c"}], "monetizationStrategies": ["m"]}`,
		"no strategies":  `{"competitors": [{"name": "c"}], "contentGaps": ["g"]}`,
		"unnamed competitor": `{"competitors": [{"followers": 10}],
			"contentGaps": ["g"], "monetizationStrategies": ["m"]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseValidationReport(raw)
			assert.ErrorIs(t, err, ErrIncompleteResponse)
		})
	}
}

func TestParseValidationReport_ClampsAndRepairs(t *testing.T) {
	raw := `{
		"profitabilityScore": 1000,
		"audienceSize": -50,
		"competitors": [{"name": "c", "followers": -10, "engagement": 99.9}],
		"contentGaps": ["g"],
		"monetizationStrategies": ["m"]
	}`
	payload, err := ParseValidationReport(raw)
	require.NoError(t, err)

	assert.Equal(t, 100, payload.ProfitabilityScore)
	assert.Equal(t, 0, payload.AudienceSize)
	assert.Equal(t, 0, payload.Competitors[0].Followers)
	assert.Equal(t, 15.0, payload.Competitors[0].Engagement)
	assert.Nil(t, payload.Roadmap)
}

func TestParseValidationReport_EmptyRoadmapBecomesNil(t *testing.T) {
	raw := `{
		"competitors": [{"name": "c"}],
		"contentGaps": ["g"],
		"monetizationStrategies": ["m"],
		"successRoadmap": {}
	}`
	payload, err := ParseValidationReport(raw)
	require.NoError(t, err)
	assert.Nil(t, payload.Roadmap)
}
