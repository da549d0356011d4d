package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Afeez1131/invoice-parsers/config"
	"github.com/Afeez1131/invoice-parsers/internal/infrastructure/ratelimit"
	"github.com/Afeez1131/invoice-parsers/internal/usecase"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	// Set Gin to test mode once for all tests
	gin.SetMode(gin.TestMode)

	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:8081", "http://localhost:*"},
		},
		Limits: config.LimitsConfig{
			MaxBodyMB:     5,
			MaxTextChars:  10000,
			MaxBatchItems: 100,
			MaxBatchChars: 50000,
		},
		RateLimit: config.RateLimitConfig{
			PerClientPerMinute: 1000,
		},
	}
}

// setupTestRouter creates a test router with a real parser service
func setupTestRouter() *gin.Engine {
	cfg := testConfig()

	parser := usecase.NewParserService(usecase.ParserConfig{})
	handler := NewHandler(parser, cfg.Limits)
	limiter := ratelimit.NewMemoryRegistry(cfg.RateLimit.PerClientPerMinute, 0)

	return SetupRouter(cfg, handler, limiter)
}

func postParse(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest("POST", "/parse", strings.NewReader(body))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestParseEndpoint_SingleString(t *testing.T) {
	router := setupTestRouter()

	w := postParse(t, router, `{"data": "Sugar – Rs. 6,000 (50 kg)"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d, body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var response ParseResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if !response.Success {
		t.Error("Success = false, want true")
	}
	if response.ItemsProcessed != 1 {
		t.Errorf("ItemsProcessed = %d, want 1", response.ItemsProcessed)
	}
	if response.ItemsExtracted != 1 {
		t.Errorf("ItemsExtracted = %d, want 1", response.ItemsExtracted)
	}
	if response.Version != "1.0.0" {
		t.Errorf("Version = %s, want 1.0.0", response.Version)
	}
	if response.Timestamp == "" {
		t.Error("Timestamp is empty")
	}

	if len(response.Results) != 1 {
		t.Fatalf("Results length = %d, want 1", len(response.Results))
	}
	item := response.Results[0]
	if item.ProductName == nil || *item.ProductName != "Sugar" {
		t.Errorf("ProductName = %v, want Sugar", item.ProductName)
	}
	if item.TotalPrice == nil || *item.TotalPrice != 6000 {
		t.Errorf("TotalPrice = %v, want 6000", item.TotalPrice)
	}
	if item.Errors == nil || len(item.Errors) != 0 {
		t.Errorf("Errors = %v, want empty array", item.Errors)
	}
}

func TestParseEndpoint_ArrayInput(t *testing.T) {
	router := setupTestRouter()

	w := postParse(t, router, `{"data": ["Sugar – Rs. 6,000 (50 kg)", "Wheat Flour (10kg @ 950)", "not a product line!!!"]}`)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var response ParseResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.ItemsProcessed != 3 {
		t.Errorf("ItemsProcessed = %d, want 3", response.ItemsProcessed)
	}
	if response.ItemsExtracted != 2 {
		t.Errorf("ItemsExtracted = %d, want 2", response.ItemsExtracted)
	}
}

func TestParseEndpoint_EmptyString(t *testing.T) {
	router := setupTestRouter()

	w := postParse(t, router, `{"data": ""}`)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var response ParseResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.ItemsExtracted != 0 {
		t.Errorf("ItemsExtracted = %d, want 0", response.ItemsExtracted)
	}
	if response.Results == nil {
		t.Error("Results is null, want empty array")
	}
}

func TestParseEndpoint_RawTextTruncation(t *testing.T) {
	router := setupTestRouter()

	// A valid item line padded with a long product name
	longProduct := strings.Repeat("Very Long Product Name ", 10)
	w := postParse(t, router, `{"data": "`+longProduct+` – Rs. 6,000 (50 kg)"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var response ParseResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response.Results) != 1 {
		t.Fatalf("Results length = %d, want 1", len(response.Results))
	}
	if got := len([]rune(response.Results[0].RawText)); got > 100 {
		t.Errorf("RawText length = %d runes, want <= 100", got)
	}
}

func TestParseEndpoint_Validation(t *testing.T) {
	router := setupTestRouter()

	t.Run("rejects malformed JSON", func(t *testing.T) {
		w := postParse(t, router, `{"data": `)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("rejects missing data field", func(t *testing.T) {
		w := postParse(t, router, `{}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("rejects non-string data", func(t *testing.T) {
		w := postParse(t, router, `{"data": 42}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("rejects array with non-string elements", func(t *testing.T) {
		w := postParse(t, router, `{"data": ["Sugar 50kg", 42]}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("rejects oversized single string", func(t *testing.T) {
		long := strings.Repeat("a", 10001)
		w := postParse(t, router, `{"data": "`+long+`"}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("rejects batch with too many items", func(t *testing.T) {
		items := make([]string, 101)
		for i := range items {
			items[i] = `"Sugar 50kg"`
		}
		w := postParse(t, router, `{"data": [`+strings.Join(items, ",")+`]}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("rejects batch with oversized combined length", func(t *testing.T) {
		chunk := strings.Repeat("a", 1000)
		items := make([]string, 51)
		for i := range items {
			items[i] = `"` + chunk + `"`
		}
		w := postParse(t, router, `{"data": [`+strings.Join(items, ",")+`]}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("error responses carry the standard envelope", func(t *testing.T) {
		w := postParse(t, router, `{"data": 42}`)

		var response ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal error response: %v", err)
		}
		if response.Error == "" {
			t.Error("Error message is empty")
		}
		if response.Timestamp == "" {
			t.Error("Timestamp is empty")
		}
	})
}

func TestHealthCheckEndpoint(t *testing.T) {
	router := setupTestRouter()

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", response["status"])
	}
	if response["service"] != "invoice-parser" {
		t.Errorf("service = %v, want invoice-parser", response["service"])
	}
	if response["timestamp"] == nil {
		t.Error("timestamp missing")
	}
}

func TestRootEndpoint(t *testing.T) {
	router := setupTestRouter()

	req, _ := http.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response["name"] != "Invoice Parser API" {
		t.Errorf("name = %v, want Invoice Parser API", response["name"])
	}
	if response["version"] != "1.0.0" {
		t.Errorf("version = %v, want 1.0.0", response["version"])
	}
}

func TestRateLimiting(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.PerClientPerMinute = 3

	parser := usecase.NewParserService(usecase.ParserConfig{})
	handler := NewHandler(parser, cfg.Limits)
	limiter := ratelimit.NewMemoryRegistry(cfg.RateLimit.PerClientPerMinute, 0)
	router := SetupRouter(cfg, handler, limiter)

	// The bucket allows a full minute's quota up front
	for i := 0; i < 3; i++ {
		w := postParse(t, router, `{"data": "Sugar 50kg"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: Status = %d, want %d", i+1, w.Code, http.StatusOK)
		}
	}

	w := postParse(t, router, `{"data": "Sugar 50kg"}`)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusTooManyRequests)
	}
}

func TestRequestIDHeader(t *testing.T) {
	router := setupTestRouter()

	t.Run("generates an ID when absent", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Header().Get("X-Request-ID") == "" {
			t.Error("X-Request-ID header missing")
		}
	})

	t.Run("echoes a provided ID", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/health", nil)
		req.Header.Set("X-Request-ID", "test-request-id")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get("X-Request-ID"); got != "test-request-id" {
			t.Errorf("X-Request-ID = %q, want test-request-id", got)
		}
	})
}

func TestCORSPreflight(t *testing.T) {
	router := setupTestRouter()

	req, _ := http.NewRequest("OPTIONS", "/parse", nil)
	req.Header.Set("Origin", "http://localhost:8081")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:8081" {
		t.Errorf("Access-Control-Allow-Origin = %q, want http://localhost:8081", got)
	}
}
