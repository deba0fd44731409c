package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dragosrosca/usage-reporting/aggregation"
	"github.com/dragosrosca/usage-reporting/common"
	"github.com/dragosrosca/usage-reporting/timerange"
	"github.com/multiversx/mx-chain-core-go/core/check"
)

// boundTimeLayout is the textual pattern both window bounds are formatted with
// when passed to the metrics source
const boundTimeLayout = "2006-01-02T15:04:05Z"

type reportPipeline struct {
	source MetricsSource
}

// NewReportPipeline creates a new pipeline instance
func NewReportPipeline(source MetricsSource) (*reportPipeline, error) {
	if check.IfNil(source) {
		return nil, errors.New("nil metrics source")
	}

	return &reportPipeline{
		source: source,
	}, nil
}

// Run computes the reporting window covering now, fetches the window's
// datapoints for the given instance and reduces them into one statistic set.
// The run is stateless; a failed stage returns immediately with its context.
func (p *reportPipeline) Run(ctx context.Context, now time.Time, instanceID string) (timerange.TimeRange, common.AggregatedMetrics, error) {
	window, err := timerange.Compute(now)
	if err != nil {
		return timerange.TimeRange{}, common.AggregatedMetrics{}, fmt.Errorf("failed to compute reporting window: %w", err)
	}

	startTime := window.Start.UTC().Format(boundTimeLayout)
	endTime := window.End.UTC().Format(boundTimeLayout)
	datapoints, err := p.source.FetchDatapoints(ctx, instanceID, startTime, endTime)
	if err != nil {
		return timerange.TimeRange{}, common.AggregatedMetrics{}, fmt.Errorf("failed to fetch datapoints: %w", err)
	}

	result, err := aggregation.Aggregate(datapoints)
	if err != nil {
		return timerange.TimeRange{}, common.AggregatedMetrics{}, fmt.Errorf("failed to aggregate datapoints: %w", err)
	}

	return window, result, nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (p *reportPipeline) IsInterfaceNil() bool {
	return p == nil
}
