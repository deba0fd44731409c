package testsCommon

import (
	"context"

	"github.com/dragosrosca/usage-reporting/common"
)

// MetricsSourceStub -
type MetricsSourceStub struct {
	FetchDatapointsHandler func(ctx context.Context, instanceID string, startTime string, endTime string) ([]common.Datapoint, error)
}

// FetchDatapoints -
func (stub *MetricsSourceStub) FetchDatapoints(ctx context.Context, instanceID string, startTime string, endTime string) ([]common.Datapoint, error) {
	if stub.FetchDatapointsHandler != nil {
		return stub.FetchDatapointsHandler(ctx, instanceID, startTime, endTime)
	}

	return make([]common.Datapoint, 0), nil
}

// IsInterfaceNil -
func (stub *MetricsSourceStub) IsInterfaceNil() bool {
	return stub == nil
}
