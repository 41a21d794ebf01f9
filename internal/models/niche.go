package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Competition level constants
const (
	CompetitionLow    = "low"
	CompetitionMedium = "medium"
	CompetitionHigh   = "high"
)

// TrendPoint is one sample in a synthetic search-trend time series
type TrendPoint struct {
	Date         string  `json:"date"`
	SearchVolume int     `json:"searchVolume"`
	Engagement   float64 `json:"engagement"`
	Mentions     int     `json:"mentions"`
}

// MicroNiche is a narrowly-scoped market segment inside a broader topic
type MicroNiche struct {
	Name              string       `json:"name"`
	Description       string       `json:"description"`
	SearchVolume      int          `json:"searchVolume"`
	Competition       string       `json:"competition"`
	MonetizationScore int          `json:"monetizationScore"`
	ValidationScore   int          `json:"validationScore"`
	Examples          []string     `json:"examples"`
	Trends            []TrendPoint `json:"trends"`
}

// MicroNicheList is stored as a JSONB column
type MicroNicheList []MicroNiche

// Value implements driver.Valuer for JSONB storage
func (l MicroNicheList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB retrieval
func (l *MicroNicheList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// NicheAnalysis is one AI-generated market analysis for a topic.
// Records are created once and never mutated afterwards.
type NicheAnalysis struct {
	ID                    string         `gorm:"primaryKey;type:uuid" json:"id"`
	Topic                 string         `gorm:"not null" json:"topic"`
	UserID                uint           `gorm:"not null;index" json:"user_id"`
	SearchVolume          int            `json:"search_volume"`
	Competition           string         `json:"competition"`
	MonetizationPotential int            `json:"monetization_potential"`
	MicroNiches           MicroNicheList `gorm:"type:jsonb;not null" json:"micro_niches"`
	CreatedAt             time.Time      `gorm:"index" json:"created_at"`

	// Associations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for NicheAnalysis
func (NicheAnalysis) TableName() string {
	return "niche_analyses"
}

// BeforeCreate assigns the generated identifier
func (n *NicheAnalysis) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// FindMicroNiche returns the embedded micro-niche with the given name, or nil
func (n *NicheAnalysis) FindMicroNiche(name string) *MicroNiche {
	for i := range n.MicroNiches {
		if n.MicroNiches[i].Name == name {
			return &n.MicroNiches[i]
		}
	}
	return nil
}
