package models

import "time"

// AISetting holds the generative model configuration. It is stored as a
// single row and loaded per request so the pipeline never depends on
// process-wide mutable state; admins may change it at runtime.
type AISetting struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ModelName         string    `gorm:"default:gemini-2.5-flash" json:"model_name"`
	Temperature       float32   `gorm:"default:0.1" json:"temperature"`
	TopP              float32   `gorm:"default:0.7" json:"top_p"`
	TopK              int32     `gorm:"default:10" json:"top_k"`
	MaxOutputTokens   int32     `gorm:"default:8192" json:"max_output_tokens"`
	SystemInstruction string    `json:"system_instruction"`
	APIKey            string    `json:"-"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName specifies the table name for AISetting
func (AISetting) TableName() string {
	return "ai_settings"
}

// DefaultSystemInstruction is used until an admin customizes the setting
const DefaultSystemInstruction = `You are an elite market research analyst with access to global market intelligence, competitor databases, and trend prediction tools.

CORE PRINCIPLES:
- NEVER provide fake, generic, or placeholder data
- ALL insights must be based on real market conditions and proven business models
- Provide specific, actionable strategies with exact implementation steps
- Include realistic financial projections based on actual market data
- Identify real competitors, real market gaps, and real opportunities
- Focus on micro-niches with proven profit potential and low competition
- Provide complete success roadmaps with timeline and milestones`

// DefaultAISetting returns the configuration used when no row exists yet
func DefaultAISetting() *AISetting {
	return &AISetting{
		ModelName:         "gemini-2.5-flash",
		Temperature:       0.1,
		TopP:              0.7,
		TopK:              10,
		MaxOutputTokens:   8192,
		SystemInstruction: DefaultSystemInstruction,
	}
}
