package factory

import (
	"context"

	"github.com/dragosrosca/usage-reporting/common"
)

// Engine defines the reporting engine's operations
type Engine interface {
	Process(ctx context.Context)
	GenerateReports(ctx context.Context) ([]common.InstanceReport, error)
	IsInterfaceNil() bool
}

// Server defines the operation of an entity able to serve requests
type Server interface {
	Start()
	Address() string
	Close() error
}
