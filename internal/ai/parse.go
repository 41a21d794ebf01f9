package ai

import (
	"encoding/json"

	"github.com/nichenav/nichenav-api/internal/models"
)

// Documented clamping bounds. The model is asked for values in these ranges
// but responses are untrusted; out-of-range numbers are silently repaired,
// never rejected.
const (
	searchVolumeMin = 100
	searchVolumeMax = 100000
	// Out-of-range volumes are re-bounded into the sweet spot the prompt
	// asks for rather than pinned to the hard limits.
	searchVolumeReboundMin = 500
	searchVolumeReboundMax = 50000

	scoreMin = 1
	scoreMax = 100

	engagementMin = 1.0
	engagementMax = 15.0

	defaultMonetizationScore = 70
	defaultValidationScore   = 75
)

// NichePayload is the validated, range-coerced result of a topic analysis
// response. Trends are not populated here; the caller attaches synthetic
// series per micro-niche.
type NichePayload struct {
	OverallSearchVolume   int
	OverallCompetition    string
	MonetizationPotential int
	MicroNiches           []models.MicroNiche
}

// ReportPayload is the validated result of a validation-report response.
type ReportPayload struct {
	ProfitabilityScore     int
	AudienceSize           int
	Competitors            []models.Competitor
	ContentGaps            []string
	MonetizationStrategies []string
	RiskFactors            []string
	TimeToMarket           string
	Roadmap                *models.Roadmap
}

// Wire shapes mirror the JSON schema requested in the prompt. Optional
// numerics are pointers so a missing field can be told apart from zero.
type rawMicroNiche struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	SearchVolume      int      `json:"searchVolume"`
	Competition       string   `json:"competition"`
	MonetizationScore *int     `json:"monetizationScore"`
	ValidationScore   *int     `json:"validationScore"`
	Examples          []string `json:"examples"`
}

type rawNicheAnalysis struct {
	OverallSearchVolume   int             `json:"overallSearchVolume"`
	OverallCompetition    string          `json:"overallCompetition"`
	MonetizationPotential int             `json:"monetizationPotential"`
	MicroNiches           []rawMicroNiche `json:"microNiches"`
}

type rawCompetitor struct {
	Name        string   `json:"name"`
	Website     string   `json:"website"`
	SocialMedia string   `json:"socialMedia"`
	Followers   int      `json:"followers"`
	Engagement  float64  `json:"engagement"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
}

type rawReport struct {
	ProfitabilityScore     int             `json:"profitabilityScore"`
	AudienceSize           int             `json:"audienceSize"`
	Competitors            []rawCompetitor `json:"competitors"`
	ContentGaps            []string        `json:"contentGaps"`
	MonetizationStrategies []string        `json:"monetizationStrategies"`
	RiskFactors            []string        `json:"riskFactors"`
	TimeToMarket           string          `json:"timeToMarket"`
	SuccessRoadmap         *models.Roadmap `json:"successRoadmap"`
}

// ParseNicheAnalysis decodes a sanitized candidate JSON string and coerces
// it into a range-valid payload. It fails only on unparseable JSON
// (ErrMalformedJSON) or structurally incomplete data
// (ErrIncompleteResponse); out-of-range numbers are clamped, missing
// optional fields receive documented defaults.
func ParseNicheAnalysis(raw string) (*NichePayload, error) {
	var data rawNicheAnalysis
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, ErrMalformedJSON
	}

	if len(data.MicroNiches) == 0 {
		return nil, ErrIncompleteResponse
	}

	out := &NichePayload{
		OverallSearchVolume:   data.OverallSearchVolume,
		OverallCompetition:    normalizeCompetition(data.OverallCompetition),
		MonetizationPotential: clampInt(data.MonetizationPotential, scoreMin, scoreMax),
		MicroNiches:           make([]models.MicroNiche, 0, len(data.MicroNiches)),
	}

	for _, n := range data.MicroNiches {
		if n.Name == "" || n.Description == "" || n.SearchVolume <= 0 || len(n.Examples) == 0 {
			return nil, ErrIncompleteResponse
		}

		volume := n.SearchVolume
		if volume < searchVolumeMin || volume > searchVolumeMax {
			volume = clampInt(volume, searchVolumeReboundMin, searchVolumeReboundMax)
		}

		monetization := defaultMonetizationScore
		if n.MonetizationScore != nil {
			monetization = clampInt(*n.MonetizationScore, scoreMin, scoreMax)
		}

		validation := defaultValidationScore
		if n.ValidationScore != nil {
			validation = clampInt(*n.ValidationScore, scoreMin, scoreMax)
		}

		out.MicroNiches = append(out.MicroNiches, models.MicroNiche{
			Name:              n.Name,
			Description:       n.Description,
			SearchVolume:      volume,
			Competition:       normalizeCompetition(n.Competition),
			MonetizationScore: monetization,
			ValidationScore:   validation,
			Examples:          n.Examples,
		})
	}

	return out, nil
}

// ParseValidationReport decodes and coerces a validation-report response.
func ParseValidationReport(raw string) (*ReportPayload, error) {
	var data rawReport
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, ErrMalformedJSON
	}

	if len(data.Competitors) == 0 || len(data.ContentGaps) == 0 || len(data.MonetizationStrategies) == 0 {
		return nil, ErrIncompleteResponse
	}

	competitors := make([]models.Competitor, 0, len(data.Competitors))
	for _, c := range data.Competitors {
		if c.Name == "" {
			return nil, ErrIncompleteResponse
		}
		followers := c.Followers
		if followers < 0 {
			followers = 0
		}
		competitors = append(competitors, models.Competitor{
			Name:        c.Name,
			Website:     c.Website,
			SocialMedia: c.SocialMedia,
			Followers:   followers,
			Engagement:  clampFloat(c.Engagement, engagementMin, engagementMax),
			Strengths:   c.Strengths,
			Weaknesses:  c.Weaknesses,
		})
	}

	audience := data.AudienceSize
	if audience < 0 {
		audience = 0
	}

	roadmap := data.SuccessRoadmap
	if roadmap.IsEmpty() {
		roadmap = nil
	}

	return &ReportPayload{
		ProfitabilityScore:     clampInt(data.ProfitabilityScore, scoreMin, scoreMax),
		AudienceSize:           audience,
		Competitors:            competitors,
		ContentGaps:            data.ContentGaps,
		MonetizationStrategies: data.MonetizationStrategies,
		RiskFactors:            data.RiskFactors,
		TimeToMarket:           data.TimeToMarket,
		Roadmap:                roadmap,
	}, nil
}

func normalizeCompetition(v string) string {
	switch v {
	case models.CompetitionLow, models.CompetitionMedium, models.CompetitionHigh:
		return v
	default:
		return models.CompetitionMedium
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
