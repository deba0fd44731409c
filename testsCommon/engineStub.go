package testsCommon

import (
	"context"

	"github.com/dragosrosca/usage-reporting/common"
)

// EngineStub -
type EngineStub struct {
	ProcessHandler         func(ctx context.Context)
	GenerateReportsHandler func(ctx context.Context) ([]common.InstanceReport, error)
}

// Process -
func (stub *EngineStub) Process(ctx context.Context) {
	if stub.ProcessHandler != nil {
		stub.ProcessHandler(ctx)
	}
}

// GenerateReports -
func (stub *EngineStub) GenerateReports(ctx context.Context) ([]common.InstanceReport, error) {
	if stub.GenerateReportsHandler != nil {
		return stub.GenerateReportsHandler(ctx)
	}

	return make([]common.InstanceReport, 0), nil
}

// IsInterfaceNil -
func (stub *EngineStub) IsInterfaceNil() bool {
	return stub == nil
}
