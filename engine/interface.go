package engine

import (
	"context"
	"time"

	"github.com/dragosrosca/usage-reporting/common"
	"github.com/dragosrosca/usage-reporting/timerange"
)

// InstanceLister defines the interface for enumerating the monitored compute instances
type InstanceLister interface {
	// ListAll walks all pages of the instances API and returns every instance record
	ListAll(ctx context.Context) ([]common.MachineInstance, error)

	IsInterfaceNil() bool
}

// Pipeline defines the interface for generating one instance's aggregated report
type Pipeline interface {
	// Run computes the reporting window covering now, fetches the window's
	// datapoints for the given instance and reduces them into one statistic set
	Run(ctx context.Context, now time.Time, instanceID string) (timerange.TimeRange, common.AggregatedMetrics, error)

	IsInterfaceNil() bool
}

// Storage defines the interface for persisting generated reports
type Storage interface {
	// SaveReport upserts the report for its instance and window
	SaveReport(ctx context.Context, report common.InstanceReport, recordedAt int64) error

	IsInterfaceNil() bool
}
