package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dragosrosca/usage-reporting/common"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("engine")

// reportEngine orchestrates instance enumeration, per-instance pipelines and persistence
type reportEngine struct {
	lister   InstanceLister
	pipeline Pipeline
	storage  Storage
}

// NewReportEngine creates a new engine instance
func NewReportEngine(lister InstanceLister, pipeline Pipeline, storage Storage) (*reportEngine, error) {
	if check.IfNil(lister) {
		return nil, errors.New("nil instance lister")
	}
	if check.IfNil(pipeline) {
		return nil, errors.New("nil pipeline")
	}
	if check.IfNil(storage) {
		return nil, errors.New("nil storage")
	}

	return &reportEngine{
		lister:   lister,
		pipeline: pipeline,
		storage:  storage,
	}, nil
}

// GenerateReports enumerates the instances and runs one pipeline per instance
// fully in parallel; each run owns its own accumulators so no locking is needed
// beyond collecting the results. A failed instance is logged and skipped; an
// enumeration failure fails the whole cycle.
func (e *reportEngine) GenerateReports(ctx context.Context) ([]common.InstanceReport, error) {
	machineInstances, err := e.lister.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate instances: %w", err)
	}

	log.Debug("starting reporting cycle", "instances", len(machineInstances))

	now := time.Now()
	reports := make([]common.InstanceReport, 0, len(machineInstances))
	var mu sync.Mutex
	var wg sync.WaitGroup

	wg.Add(len(machineInstances))
	for _, machineInstance := range machineInstances {
		go func(instance common.MachineInstance) {
			defer wg.Done()

			window, result, errRun := e.pipeline.Run(ctx, now, instance.InstanceID)
			if errRun != nil {
				log.Warn("failed to generate report", "instance", instance.InstanceID, "error", errRun)
				return
			}

			report := common.InstanceReport{
				InstanceID:  instance.InstanceID,
				WindowStart: window.Start.Unix(),
				WindowEnd:   window.End.Unix(),
				Metrics:     result,
			}

			errSave := e.storage.SaveReport(ctx, report, time.Now().Unix())
			if errSave != nil {
				log.Warn("failed to persist report", "instance", instance.InstanceID, "error", errSave)
				return
			}

			mu.Lock()
			reports = append(reports, report)
			mu.Unlock()
		}(machineInstance)
	}
	wg.Wait()

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].InstanceID < reports[j].InstanceID
	})

	return reports, nil
}

// Process runs a full reporting cycle and logs the outcome
func (e *reportEngine) Process(ctx context.Context) {
	reports, err := e.GenerateReports(ctx)
	if err != nil {
		log.Warn("reporting cycle failed", "error", err)
		return
	}

	log.Debug("reporting cycle finished", "reports", len(reports))
}

// IsInterfaceNil returns true if the value under the interface is nil
func (e *reportEngine) IsInterfaceNil() bool {
	return e == nil
}
