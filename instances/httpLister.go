package instances

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

const defaultPageSize = 20

var log = logger.GetOrCreate("instances")

type httpLister struct {
	baseURL  string
	pageSize int
	client   *http.Client
}

// NewHTTPLister creates an enumeration client for the configured instances API
func NewHTTPLister(cfg config.InstancesConfig) *httpLister {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	return &httpLister{
		baseURL:  cfg.BaseURL,
		pageSize: pageSize,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutInSeconds) * time.Second,
		},
	}
}

// ListAll walks all pages of the instances API and returns every instance record
func (l *httpLister) ListAll(ctx context.Context) ([]common.MachineInstance, error) {
	var all []common.MachineInstance
	nextToken := ""
	for {
		page, token, err := l.fetchPage(ctx, nextToken)
		if err != nil {
			return nil, err
		}

		all = append(all, page...)
		if token == "" {
			log.Debug("finished enumerating instances", "count", len(all))
			return all, nil
		}

		nextToken = token
	}
}

func (l *httpLister) fetchPage(ctx context.Context, nextToken string) ([]common.MachineInstance, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"/instances", nil)
	if err != nil {
		return nil, "", err
	}

	query := req.URL.Query()
	query.Set("maxResults", strconv.Itoa(l.pageSize))
	if nextToken != "" {
		query.Set("nextToken", nextToken)
	}
	req.URL.RawQuery = query.Encode()

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", errStatusNotOK(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	var page []common.MachineInstance
	for _, entry := range gjson.GetBytes(body, "instances").Array() {
		id := entry.Get("instanceId")
		if !id.Exists() || id.String() == "" {
			// a record without an identifier is a hard error, not a skip
			return nil, "", errMissingInstanceID
		}

		page = append(page, common.MachineInstance{InstanceID: id.String()})
	}

	return page, gjson.GetBytes(body, "nextToken").String(), nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (l *httpLister) IsInterfaceNil() bool {
	return l == nil
}
