package models

// AutomationPoint is one time/value sample of a track's automation envelope.
// Points are stored unordered; consumers sort by time. Value is 0-100 by
// convention; the envelope mutators clamp, the store does not validate.
type AutomationPoint struct {
	ID    string  `json:"id" yaml:"id"`
	Time  float64 `json:"time" yaml:"time"`
	Value float64 `json:"value" yaml:"value"`
}

// Marker is a point-in-time annotation on a track. Markers are not ordered
// persistently; callers sort by time at read time.
type Marker struct {
	ID              string  `json:"id" yaml:"id"`
	Time            float64 `json:"time" yaml:"time"`
	Name            string  `json:"name,omitempty" yaml:"name,omitempty"`
	IsPlaybackStart bool    `json:"is_playback_start,omitempty" yaml:"is_playback_start,omitempty"`
	IsLoopEnd       bool    `json:"is_loop_end,omitempty" yaml:"is_loop_end,omitempty"`
}
