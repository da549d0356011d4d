package http

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/Afeez1131/invoice-parsers/config"
	"github.com/Afeez1131/invoice-parsers/internal/domain"
)

const (
	serviceName    = "invoice-parser"
	serviceVersion = "1.0.0"

	// Raw text is truncated in responses for frontend display
	maxRawTextRunes = 100
)

// InvoiceParser is the engine surface the delivery layer depends on
type InvoiceParser interface {
	Parse(text string) []domain.ParsedItem
}

// ParseData accepts either a single string or an array of strings
type ParseData struct {
	Single  string
	Batch   []string
	IsBatch bool
}

// UnmarshalJSON decodes the string-or-array union form of the data field
func (d *ParseData) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		d.Single = single
		return nil
	}

	var batch []string
	if err := json.Unmarshal(data, &batch); err == nil {
		d.Batch = batch
		d.IsBatch = true
		return nil
	}

	return fmt.Errorf("data must be a string or an array of strings")
}

// ParseRequest is the request body for POST /parse
type ParseRequest struct {
	Data *ParseData `json:"data"`
}

// ParsedItemResponse is the response projection of one extracted item
type ParsedItemResponse struct {
	ProductName *string  `json:"product_name"`
	Quantity    *float64 `json:"quantity"`
	Unit        string   `json:"unit"`
	UnitPrice   *float64 `json:"unit_price"`
	TotalPrice  *float64 `json:"total_price"`
	Confidence  float64  `json:"confidence"`
	RawText     string   `json:"raw_text"`
	Errors      []string `json:"errors"`
}

// ParseResponse is the response body for POST /parse
type ParseResponse struct {
	Success        bool                 `json:"success"`
	Results        []ParsedItemResponse `json:"results"`
	ItemsProcessed int                  `json:"items_processed"`
	ItemsExtracted int                  `json:"items_extracted"`
	Timestamp      string               `json:"timestamp"`
	Version        string               `json:"version"`
}

// ErrorResponse is the error envelope for all non-2xx responses
type ErrorResponse struct {
	Error     string `json:"error"`
	Detail    string `json:"detail,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	parser InvoiceParser
	limits config.LimitsConfig
}

// NewHandler creates a new HTTP handler
func NewHandler(parser InvoiceParser, limits config.LimitsConfig) *Handler {
	return &Handler{
		parser: parser,
		limits: limits,
	}
}

// ParseInvoice handles POST /parse: extracts line items from unstructured
// invoice text. Accepts a single string or an array of strings.
func (h *Handler) ParseInvoice(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.Data == nil {
		abortWithError(c, http.StatusBadRequest, domain.ErrInvalidRequest.Error(), "data field is required")
		return
	}

	if err := h.validateParseData(req.Data); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	results := []ParsedItemResponse{}
	itemsProcessed := 1

	if req.Data.IsBatch {
		itemsProcessed = len(req.Data.Batch)
		for _, text := range req.Data.Batch {
			for _, item := range h.parser.Parse(text) {
				results = append(results, toItemResponse(item))
			}
		}
	} else {
		for _, item := range h.parser.Parse(req.Data.Single) {
			results = append(results, toItemResponse(item))
		}
	}

	c.JSON(http.StatusOK, ParseResponse{
		Success:        true,
		Results:        results,
		ItemsProcessed: itemsProcessed,
		ItemsExtracted: len(results),
		Timestamp:      time.Now().Format(time.RFC3339),
		Version:        serviceVersion,
	})
}

// validateParseData enforces the request payload limits
func (h *Handler) validateParseData(data *ParseData) error {
	if !data.IsBatch {
		if utf8.RuneCountInString(data.Single) > h.limits.MaxTextChars {
			return fmt.Errorf("%w: text exceeds %d characters", domain.ErrInvalidRequest, h.limits.MaxTextChars)
		}
		return nil
	}

	if len(data.Batch) > h.limits.MaxBatchItems {
		return fmt.Errorf("%w: array exceeds %d items", domain.ErrInvalidRequest, h.limits.MaxBatchItems)
	}

	total := 0
	for _, text := range data.Batch {
		total += utf8.RuneCountInString(text)
	}
	if total > h.limits.MaxBatchChars {
		return fmt.Errorf("%w: combined text exceeds %d characters", domain.ErrInvalidRequest, h.limits.MaxBatchChars)
	}

	return nil
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   serviceName,
	})
}

// Root returns static service metadata
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "Invoice Parser API",
		"version": serviceVersion,
		"endpoints": gin.H{
			"/parse":  "POST - Parse invoice text",
			"/health": "GET - Health check",
		},
	})
}

// toItemResponse builds the wire projection of an item: confidence rounded
// to two decimals, raw text truncated for display.
func toItemResponse(item domain.ParsedItem) ParsedItemResponse {
	return ParsedItemResponse{
		ProductName: item.ProductName,
		Quantity:    item.Quantity,
		Unit:        item.Unit,
		UnitPrice:   item.UnitPrice,
		TotalPrice:  item.TotalPrice,
		Confidence:  math.Round(item.Confidence*100) / 100,
		RawText:     truncateRunes(item.RawText, maxRawTextRunes),
		Errors:      item.Errors,
	}
}

// truncateRunes shortens s to at most n runes
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// abortWithError writes the standard error envelope and stops the chain
func abortWithError(c *gin.Context, status int, message, detail string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     message,
		Detail:    detail,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
