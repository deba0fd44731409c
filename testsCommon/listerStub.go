package testsCommon

import (
	"context"

	"github.com/dragosrosca/usage-reporting/common"
)

// InstanceListerStub -
type InstanceListerStub struct {
	ListAllHandler func(ctx context.Context) ([]common.MachineInstance, error)
}

// ListAll -
func (stub *InstanceListerStub) ListAll(ctx context.Context) ([]common.MachineInstance, error) {
	if stub.ListAllHandler != nil {
		return stub.ListAllHandler(ctx)
	}

	return make([]common.MachineInstance, 0), nil
}

// IsInterfaceNil -
func (stub *InstanceListerStub) IsInterfaceNil() bool {
	return stub == nil
}
