package testsCommon

import (
	"context"
	"time"

	"github.com/dragosrosca/usage-reporting/common"
	"github.com/dragosrosca/usage-reporting/timerange"
)

// PipelineStub -
type PipelineStub struct {
	RunHandler func(ctx context.Context, now time.Time, instanceID string) (timerange.TimeRange, common.AggregatedMetrics, error)
}

// Run -
func (stub *PipelineStub) Run(ctx context.Context, now time.Time, instanceID string) (timerange.TimeRange, common.AggregatedMetrics, error) {
	if stub.RunHandler != nil {
		return stub.RunHandler(ctx, now, instanceID)
	}

	return timerange.TimeRange{}, common.AggregatedMetrics{}, nil
}

// IsInterfaceNil -
func (stub *PipelineStub) IsInterfaceNil() bool {
	return stub == nil
}
