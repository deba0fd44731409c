package factory

import (
	"context"
	"sync"
	"time"

	"github.com/dragosrosca/usage-reporting/api"
	"github.com/dragosrosca/usage-reporting/common"
	"github.com/dragosrosca/usage-reporting/config"
	"github.com/dragosrosca/usage-reporting/engine"
	"github.com/dragosrosca/usage-reporting/instances"
	"github.com/dragosrosca/usage-reporting/metrics"
	"github.com/dragosrosca/usage-reporting/pipeline"
	"github.com/dragosrosca/usage-reporting/storage"
)

type componentsHandler struct {
	source         pipeline.MetricsSource
	lister         engine.InstanceLister
	engine         Engine
	store          api.Storage
	server         Server
	mutCancel      sync.Mutex
	cancel         func()
	reportInterval time.Duration
}

// NewComponentsHandler creates a new components handler
func NewComponentsHandler(
	serviceKeyApi string,
	cfg config.Config,
) (*componentsHandler, error) {
	source := metrics.NewHTTPSource(cfg.MetricsSource)
	lister := instances.NewHTTPLister(cfg.Instances)

	pipe, err := pipeline.NewReportPipeline(source)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(cfg.Report.DBPath, cfg.Report.RetentionSeconds)
	if err != nil {
		return nil, err
	}

	eng, err := engine.NewReportEngine(lister, pipe, store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	serverArgs := api.ArgsWebServer{
		ServiceKeyApi:  serviceKeyApi,
		ListenAddress:  cfg.ListenAddress,
		Storage:        store,
		Engine:         eng,
		GeneralHandler: api.CORSMiddleware,
	}

	server, err := api.NewServer(serverArgs)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &componentsHandler{
		source:         source,
		lister:         lister,
		engine:         eng,
		store:          store,
		server:         server,
		reportInterval: time.Duration(cfg.Report.IntervalInSeconds) * time.Second,
	}, nil
}

// GetEngine returns the engine component
func (ch *componentsHandler) GetEngine() Engine {
	return ch.engine
}

// GetStore returns the storage component
func (ch *componentsHandler) GetStore() api.Storage {
	return ch.store
}

// GetServer returns the server component
func (ch *componentsHandler) GetServer() Server {
	return ch.server
}

// Start starts the inner components
func (ch *componentsHandler) Start() {
	ch.mutCancel.Lock()
	defer ch.mutCancel.Unlock()

	if ch.cancel != nil {
		return
	}

	ch.server.Start()

	var ctx context.Context
	ctx, ch.cancel = context.WithCancel(context.Background())

	common.CronJobStarter(ctx, ch.engine.Process, ch.reportInterval)
}

// Close closes the inner components
func (ch *componentsHandler) Close() {
	ch.mutCancel.Lock()
	defer ch.mutCancel.Unlock()

	if ch.cancel == nil {
		return
	}

	ch.cancel()
	ch.cancel = nil

	_ = ch.server.Close()
}
