package entity

import "fmt"

const (
	// TypeExercise marks calendar events that carry a downloadable
	// training session. Everything else (notes, fitness tests, orthostatic
	// tests) is calendar metadata and cannot be exported.
	TypeExercise = "EXERCISE"

	millisPerHour   = 3600000
	millisPerMinute = 60000
	millisPerSecond = 1000
)

// Session represents one calendar event returned by the training service.
// Most fields are optional on the wire: non-exercise events legitimately
// omit duration, calories and distance.
type Session struct {
	Type       string  `json:"type"`
	Timestamp  uint64  `json:"timestamp"`
	URL        string  `json:"url"`
	ListItemID uint64  `json:"listItemId"` // Opaque id used to request the export payload
	Datetime   string  `json:"datetime"`   // Session start, RFC3339 with service-local offset
	Duration   uint64  `json:"duration"`   // Milliseconds
	Calories   uint32  `json:"calories"`
	Distance   float64 `json:"distance"` // Meters
}

// IsExercise reports whether the event is a real training session
// with an export payload behind it.
func (s *Session) IsExercise() bool {
	return s.Type == TypeExercise
}

// DurationHMS renders the session duration as hh:mm:ss.
func (s *Session) DurationHMS() string {
	hours := s.Duration / millisPerHour
	minutes := s.Duration % millisPerHour / millisPerMinute
	seconds := s.Duration % millisPerHour % millisPerMinute / millisPerSecond

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// DistanceKm returns the session distance in kilometers.
func (s *Session) DistanceKm() float64 {
	return s.Distance / 1000.0
}
