package testsCommon

import (
	"context"

	"github.com/dragosrosca/usage-reporting/common"
)

// StorageStub -
type StorageStub struct {
	SaveReportHandler       func(ctx context.Context, report common.InstanceReport, recordedAt int64) error
	GetLatestReportsHandler func(ctx context.Context) ([]common.StoredReport, error)
	GetReportHistoryHandler func(ctx context.Context, instanceID string) ([]common.StoredReport, error)
	CloseHandler            func() error
}

// SaveReport -
func (stub *StorageStub) SaveReport(ctx context.Context, report common.InstanceReport, recordedAt int64) error {
	if stub.SaveReportHandler != nil {
		return stub.SaveReportHandler(ctx, report, recordedAt)
	}

	return nil
}

// GetLatestReports -
func (stub *StorageStub) GetLatestReports(ctx context.Context) ([]common.StoredReport, error) {
	if stub.GetLatestReportsHandler != nil {
		return stub.GetLatestReportsHandler(ctx)
	}

	return make([]common.StoredReport, 0), nil
}

// GetReportHistory -
func (stub *StorageStub) GetReportHistory(ctx context.Context, instanceID string) ([]common.StoredReport, error) {
	if stub.GetReportHistoryHandler != nil {
		return stub.GetReportHistoryHandler(ctx, instanceID)
	}

	return make([]common.StoredReport, 0), nil
}

// Close -
func (stub *StorageStub) Close() error {
	if stub.CloseHandler != nil {
		return stub.CloseHandler()
	}

	return nil
}

// IsInterfaceNil -
func (stub *StorageStub) IsInterfaceNil() bool {
	return stub == nil
}
