package api

import (
	"context"

	"github.com/dragosrosca/usage-reporting/common"
)

// Storage defines the interface for querying persisted reports
type Storage interface {
	// GetLatestReports returns the most recent report for every known instance
	GetLatestReports(ctx context.Context) ([]common.StoredReport, error)

	// GetReportHistory returns all retained reports for a specific instance
	GetReportHistory(ctx context.Context, instanceID string) ([]common.StoredReport, error)

	// Close shuts down the database connection
	Close() error

	IsInterfaceNil() bool
}

// Engine defines the interface for running a reporting cycle on demand
type Engine interface {
	// GenerateReports runs one full cycle and returns the generated reports
	GenerateReports(ctx context.Context) ([]common.InstanceReport, error)

	IsInterfaceNil() bool
}
