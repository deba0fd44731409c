package metrics

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/dragosrosca/usage-reporting/common"
	"github.com/dragosrosca/usage-reporting/config"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/tidwall/gjson"
)

const (
	defaultMetricName = "CPUUtilization"
	defaultNamespace  = "AWS/EC2"
	// the three statistics requested for every period
	requestedStatistics = "Average,Minimum,Maximum"
)

var log = logger.GetOrCreate("metrics")

type httpSource struct {
	baseURL         string
	metricName      string
	namespace       string
	periodInSeconds uint32
	client          *http.Client
}

// NewHTTPSource creates a statistics client for the configured metrics API
func NewHTTPSource(cfg config.MetricsSourceConfig) *httpSource {
	metricName := cfg.MetricName
	if metricName == "" {
		metricName = defaultMetricName
	}
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = defaultNamespace
	}

	return &httpSource{
		baseURL:         cfg.BaseURL,
		metricName:      metricName,
		namespace:       namespace,
		periodInSeconds: cfg.PeriodInSeconds,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutInSeconds) * time.Second,
		},
	}
}

// FetchDatapoints requests the per-period statistics for one instance over
// [startTime, endTime], both formatted as ISO-8601 UTC strings
func (s *httpSource) FetchDatapoints(ctx context.Context, instanceID string, startTime string, endTime string) ([]common.Datapoint, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/statistics", nil)
	if err != nil {
		return nil, err
	}

	query := req.URL.Query()
	query.Set("namespace", s.namespace)
	query.Set("metricName", s.metricName)
	query.Set("instanceId", instanceID)
	query.Set("startTime", startTime)
	query.Set("endTime", endTime)
	query.Set("period", strconv.FormatUint(uint64(s.periodInSeconds), 10))
	query.Set("statistics", requestedStatistics)
	req.URL.RawQuery = query.Encode()

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errStatusNotOK(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	datapoints := parseDatapoints(body)
	log.Debug("fetched datapoints", "instance", instanceID, "count", len(datapoints))

	return datapoints, nil
}

func parseDatapoints(body []byte) []common.Datapoint {
	raw := gjson.GetBytes(body, "datapoints").Array()

	datapoints := make([]common.Datapoint, 0, len(raw))
	for _, entry := range raw {
		datapoint := common.Datapoint{}
		if value := entry.Get("average"); value.Exists() {
			average := value.Float()
			datapoint.Average = &average
		}
		if value := entry.Get("minimum"); value.Exists() {
			minimum := value.Float()
			datapoint.Minimum = &minimum
		}
		if value := entry.Get("maximum"); value.Exists() {
			maximum := value.Float()
			datapoint.Maximum = &maximum
		}

		datapoints = append(datapoints, datapoint)
	}

	return datapoints
}

// IsInterfaceNil returns true if the value under the interface is nil
func (s *httpSource) IsInterfaceNil() bool {
	return s == nil
}
