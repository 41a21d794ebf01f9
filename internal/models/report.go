package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Competitor is one entry of a report's competitor analysis
type Competitor struct {
	Name        string   `json:"name"`
	Website     string   `json:"website,omitempty"`
	SocialMedia string   `json:"socialMedia,omitempty"`
	Followers   int      `json:"followers"`
	Engagement  float64  `json:"engagement"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
}

// CompetitorList is stored as a JSONB column
type CompetitorList []Competitor

func (l CompetitorList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *CompetitorList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// StringList is stored as a JSONB column
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// RoadmapPhase is one phase of the optional success roadmap
type RoadmapPhase struct {
	Timeline   string   `json:"timeline"`
	Budget     string   `json:"budget"`
	Objectives []string `json:"objectives"`
	KeyActions []string `json:"keyActions"`
}

// Roadmap is the optional structured 3-phase launch plan
type Roadmap struct {
	Phase1 *RoadmapPhase `json:"phase1,omitempty"`
	Phase2 *RoadmapPhase `json:"phase2,omitempty"`
	Phase3 *RoadmapPhase `json:"phase3,omitempty"`
}

func (r Roadmap) Value() (driver.Value, error) {
	return json.Marshal(r)
}

func (r *Roadmap) Scan(value interface{}) error {
	return scanJSON(value, r)
}

// IsEmpty returns true when no phase is populated
func (r *Roadmap) IsEmpty() bool {
	return r == nil || (r.Phase1 == nil && r.Phase2 == nil && r.Phase3 == nil)
}

// Phases returns the populated phases in order with display labels
func (r *Roadmap) Phases() []struct {
	Label string
	Phase *RoadmapPhase
} {
	if r == nil {
		return nil
	}
	all := []struct {
		Label string
		Phase *RoadmapPhase
	}{
		{"Phase 1", r.Phase1},
		{"Phase 2", r.Phase2},
		{"Phase 3", r.Phase3},
	}
	var out []struct {
		Label string
		Phase *RoadmapPhase
	}
	for _, p := range all {
		if p.Phase != nil {
			out = append(out, p)
		}
	}
	return out
}

// ValidationReport assesses the business viability of one micro-niche.
// Created once per "generate report" action; immutable after creation.
// NicheID is a weak back-reference only, never enforced relationally.
type ValidationReport struct {
	ID                     string         `gorm:"primaryKey;type:uuid" json:"id"`
	NicheID                string         `gorm:"index" json:"niche_id"`
	MicroNicheName         string         `json:"micro_niche_name"`
	UserID                 uint           `gorm:"not null;index" json:"user_id"`
	ProfitabilityScore     int            `json:"profitability_score"`
	AudienceSize           int            `json:"audience_size"`
	Competitors            CompetitorList `gorm:"type:jsonb;not null" json:"competitors"`
	ContentGaps            StringList     `gorm:"type:jsonb;not null" json:"content_gaps"`
	MonetizationStrategies StringList     `gorm:"type:jsonb;not null" json:"monetization_strategies"`
	RiskFactors            StringList     `gorm:"type:jsonb;not null" json:"risk_factors"`
	TimeToMarket           string         `json:"time_to_market"`
	Roadmap                *Roadmap       `gorm:"type:jsonb" json:"roadmap,omitempty"`
	GeneratedAt            time.Time      `gorm:"index" json:"generated_at"`

	// Associations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for ValidationReport
func (ValidationReport) TableName() string {
	return "validation_reports"
}

// BeforeCreate assigns the generated identifier
func (r *ValidationReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.GeneratedAt.IsZero() {
		r.GeneratedAt = time.Now()
	}
	return nil
}

// ShortID returns the last 6 characters of the id, used in filenames and titles
func (r *ValidationReport) ShortID() string {
	if len(r.ID) <= 6 {
		return r.ID
	}
	return r.ID[len(r.ID)-6:]
}

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return errors.New("unsupported jsonb source type")
		}
		bytes = []byte(s)
	}
	return json.Unmarshal(bytes, dest)
}
