package common

// Datapoint holds the per-period statistics returned by the metrics source.
// A statistic the source did not report is nil.
type Datapoint struct {
	Average *float64
	Minimum *float64
	Maximum *float64
}

// AggregatedMetrics is the reduced statistic set for one reporting window
type AggregatedMetrics struct {
	Average float64 `json:"average"`
	Maximum float64 `json:"maximum"`
	Minimum float64 `json:"minimum"`
}

// MachineInstance identifies a single compute instance
type MachineInstance struct {
	InstanceID string `json:"instanceId"`
}

// InstanceReport ties an aggregated result to its instance and reporting window
type InstanceReport struct {
	InstanceID  string            `json:"instanceId"`
	WindowStart int64             `json:"windowStart"`
	WindowEnd   int64             `json:"windowEnd"`
	Metrics     AggregatedMetrics `json:"metrics"`
}

// StoredReport is an InstanceReport as persisted, with its recording timestamp
type StoredReport struct {
	InstanceReport
	RecordedAt int64 `json:"recordedAt"`
}
