package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avelkar/supplysight/pkg/application/services/orchestration"
	"github.com/avelkar/supplysight/pkg/infrastructure/config"
	infratesting "github.com/avelkar/supplysight/pkg/infrastructure/testing"
)

func testServer(t *testing.T, cfg config.ServerConfig) *Server {
	t.Helper()

	dataset, err := infratesting.BuildDemoDataset()
	if err != nil {
		t.Fatalf("Failed to build demo dataset: %v", err)
	}
	pipeline, err := orchestration.NewAnalyticsPipeline(orchestration.DefaultConfig(), orchestration.Repositories{
		Items:     dataset.Items,
		Sales:     dataset.Sales,
		Inventory: dataset.Inventory,
		Suppliers: dataset.Suppliers,
	}, nil, nil)
	if err != nil {
		t.Fatalf("Failed to build pipeline: %v", err)
	}
	result, err := pipeline.Run(context.Background())
	if err != nil {
		t.Fatalf("Failed to run pipeline: %v", err)
	}

	return New(cfg, result, nil)
}

func defaultServerConfig() config.ServerConfig {
	return config.ServerConfig{
		Addr:            ":0",
		RateLimit:       1000,
		RateBurst:       1000,
		ShutdownTimeout: 1,
	}
}

func get(t *testing.T, server *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, path, nil)
	server.Handler().ServeHTTP(recorder, request)
	return recorder
}

func TestHandleSummary(t *testing.T) {
	server := testServer(t, defaultServerConfig())

	response := get(t, server, "/api/summary")
	if response.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", response.Code)
	}

	var payload struct {
		RunID     string `json:"run_id"`
		Forecasts int    `json:"forecasts"`
		Policies  int    `json:"policies"`
	}
	if err := json.Unmarshal(response.Body.Bytes(), &payload); err != nil {
		t.Fatalf("Failed to decode summary: %v", err)
	}
	if payload.RunID == "" {
		t.Error("Expected a run ID in summary")
	}
	if payload.Forecasts != 10 {
		t.Errorf("Expected 10 forecasts in summary, got %d", payload.Forecasts)
	}
	if payload.Policies != 10 {
		t.Errorf("Expected 10 policies in summary, got %d", payload.Policies)
	}
}

func TestHandleForecastBySKU(t *testing.T) {
	server := testServer(t, defaultServerConfig())

	response := get(t, server, "/api/forecasts/WIDGET-A")
	if response.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", response.Code)
	}

	var forecasts []struct {
		SKU      string `json:"sku"`
		Location string `json:"location"`
		Method   string `json:"method"`
	}
	if err := json.Unmarshal(response.Body.Bytes(), &forecasts); err != nil {
		t.Fatalf("Failed to decode forecasts: %v", err)
	}
	if len(forecasts) != 2 {
		t.Fatalf("Expected forecasts at 2 locations, got %d", len(forecasts))
	}
	for _, fc := range forecasts {
		if fc.SKU != "WIDGET-A" {
			t.Errorf("Expected sku WIDGET-A, got %s", fc.SKU)
		}
		if fc.Method == "" {
			t.Error("Expected a method name")
		}
	}
}

func TestHandleForecastBySKU_NotFound(t *testing.T) {
	server := testServer(t, defaultServerConfig())

	response := get(t, server, "/api/forecasts/NO-SUCH-SKU")
	if response.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", response.Code)
	}
}

func TestHandleABC(t *testing.T) {
	server := testServer(t, defaultServerConfig())

	response := get(t, server, "/api/abc")
	if response.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", response.Code)
	}

	var payload struct {
		Entries []struct {
			SKU   string `json:"sku"`
			Class string `json:"class"`
		} `json:"entries"`
	}
	if err := json.Unmarshal(response.Body.Bytes(), &payload); err != nil {
		t.Fatalf("Failed to decode abc: %v", err)
	}
	if len(payload.Entries) != 5 {
		t.Fatalf("Expected 5 abc entries, got %d", len(payload.Entries))
	}
	if payload.Entries[0].Class != "A" {
		t.Errorf("Expected top entry class A, got %q", payload.Entries[0].Class)
	}
}

func TestHandleRiskEndpoints(t *testing.T) {
	server := testServer(t, defaultServerConfig())

	for _, path := range []string{"/api/risk/suppliers", "/api/risk/stockouts", "/api/policies", "/api/forecasts"} {
		response := get(t, server, path)
		if response.Code != http.StatusOK {
			t.Errorf("%s: expected status 200, got %d", path, response.Code)
		}
		if contentType := response.Header().Get("Content-Type"); contentType != "application/json" {
			t.Errorf("%s: expected JSON content type, got %q", path, contentType)
		}
	}
}

func TestHandleHealth(t *testing.T) {
	server := testServer(t, defaultServerConfig())

	response := get(t, server, "/healthz")
	if response.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", response.Code)
	}
	if !strings.Contains(response.Body.String(), `"status":"ok"`) {
		t.Errorf("Expected ok status body, got %s", response.Body.String())
	}
}

func TestHandleDashboard(t *testing.T) {
	server := testServer(t, defaultServerConfig())

	response := get(t, server, "/")
	if response.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", response.Code)
	}
	body := response.Body.String()
	if !strings.Contains(body, "<svg") {
		t.Error("Expected sparkline SVG in dashboard")
	}
	if !strings.Contains(body, "WIDGET-A") {
		t.Error("Expected WIDGET-A in dashboard")
	}
}

func TestHandleMetrics(t *testing.T) {
	server := testServer(t, defaultServerConfig())

	response := get(t, server, "/metrics")
	if response.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", response.Code)
	}
	if !strings.Contains(response.Body.String(), "supplysight_") {
		t.Error("Expected supplysight metrics in exposition")
	}
}

func TestRateLimit(t *testing.T) {
	cfg := defaultServerConfig()
	cfg.RateLimit = 1
	cfg.RateBurst = 2
	server := testServer(t, cfg)

	statuses := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		statuses = append(statuses, get(t, server, "/healthz").Code)
	}

	limited := 0
	for _, status := range statuses {
		if status == http.StatusTooManyRequests {
			limited++
		}
	}
	if limited == 0 {
		t.Errorf("Expected at least one rate limited request, got statuses %v", statuses)
	}
}

func TestUnknownRoute(t *testing.T) {
	server := testServer(t, defaultServerConfig())

	response := get(t, server, "/api/unknown")
	if response.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", response.Code)
	}
}
