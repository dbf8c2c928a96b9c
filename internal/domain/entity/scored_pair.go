package entity

// ScoredPair is a Pair plus everything the spike pipeline derives from it.
type ScoredPair struct {
	Pair

	MarketCapUSD   float64     `json:"marketCapUsd"`
	SpikeScore     int         `json:"spikeScore"`
	PairAgeHours   float64     `json:"pairAgeHours"`
	VolumeVelocity float64     `json:"volumeVelocity"`
	IsSpiking      bool        `json:"isSpiking"`
	IsHeatingUp    bool        `json:"isHeatingUp"`
	IsDevSold      bool        `json:"isDevSold"`
	IsAI           bool        `json:"isAI"`
	IsPump         bool        `json:"isPump"`
	SafetyLabel    SafetyLabel `json:"safetyLabel"`
	SafetyEmoji    string      `json:"safetyEmoji"`
}

// SpikeFeed is the result of one pipeline run. Error is set only when the pair
// source itself failed, in which case Pairs is empty.
type SpikeFeed struct {
	Pairs     []ScoredPair `json:"pairs"`
	Timestamp int64        `json:"timestamp"`
	Error     string       `json:"error,omitempty"`
}

// Failed reports whether the feed carries an upstream error.
func (f SpikeFeed) Failed() bool { return f.Error != "" }
