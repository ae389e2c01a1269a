package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/coldchain/dispatch-optimizer/internal/metrics"
	"github.com/coldchain/dispatch-optimizer/pkg/logger"
)

// HTTPOracle calls the warehouse inventory service:
//
//	GET {baseURL}/api/v1/facilities/{facilityID}/inventory?sku={sku}
//	Authorization: Bearer {token}
//
// Any non-200 response or network error is non-fatal: it is logged and
// treated as an empty result.
type HTTPOracle struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *logger.Logger
}

// NewHTTPOracle builds an oracle bound to an immutable base URL and bearer
// token, both read once at startup.
func NewHTTPOracle(baseURL, token string, httpClient *http.Client, log *logger.Logger) *HTTPOracle {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = logger.NewNoop()
	}
	return &HTTPOracle{baseURL: baseURL, token: token, httpClient: httpClient, log: log}
}

// Lookup implements Oracle.
func (o *HTTPOracle) Lookup(ctx context.Context, facilityID, sku string) ([]AssetAvailability, error) {
	endpoint := fmt.Sprintf("%s/api/v1/facilities/%s/inventory?sku=%s",
		o.baseURL, url.PathEscape(facilityID), url.QueryEscape(sku))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		metrics.WarehouseLookupErrorsTotal.Inc()
		o.log.Warn("warehouse lookup request build failed", "facilityID", facilityID, "sku", sku, "error", err)
		return nil, nil
	}
	if o.token != "" {
		req.Header.Set("Authorization", "Bearer "+o.token)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		metrics.WarehouseLookupErrorsTotal.Inc()
		o.log.Warn("warehouse lookup failed", "facilityID", facilityID, "sku", sku, "error", err)
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.WarehouseLookupErrorsTotal.Inc()
		body, _ := io.ReadAll(resp.Body)
		o.log.Warn("warehouse lookup non-200", "facilityID", facilityID, "sku", sku, "status", resp.StatusCode, "body", string(body))
		return nil, nil
	}

	var assets []AssetAvailability
	if err := json.NewDecoder(resp.Body).Decode(&assets); err != nil {
		metrics.WarehouseLookupErrorsTotal.Inc()
		o.log.Warn("warehouse lookup decode failed", "facilityID", facilityID, "sku", sku, "error", err)
		return nil, nil
	}

	return assets, nil
}
