package types

import "github.com/okian/launchboard/internal/domain/model"

// CorrelationView is the scatter chart's data for one site and payload window.
type CorrelationView struct {
	Site     string         `json:"site"`
	Title    string         `json:"title"`
	Min      float64        `json:"min"`
	Max      float64        `json:"max"`
	Launches []model.Launch `json:"launches"`
}
