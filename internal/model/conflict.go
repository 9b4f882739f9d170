package model

// ConflictReport describes a detected contradiction among active facts.
// Reports are generated on demand and never persisted.
type ConflictReport struct {
	ConflictID          string   `json:"conflict_id"`
	MemoryIDs           []string `json:"memory_ids"`
	ConflictType        string   `json:"conflict_type"`
	Description         string   `json:"description"`
	SuggestedResolution string   `json:"suggested_resolution"`
	Confidence          float64  `json:"confidence"`
}
