package pipeline

import (
	"context"

	"github.com/dragosrosca/usage-reporting/common"
)

// MetricsSource defines the external statistics provider the pipeline fetches from.
// Both time bounds are ISO-8601 UTC strings.
type MetricsSource interface {
	FetchDatapoints(ctx context.Context, instanceID string, startTime string, endTime string) ([]common.Datapoint, error)

	IsInterfaceNil() bool
}
