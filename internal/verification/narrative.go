package verification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

//go:generate mockgen -source=narrative.go -destination=mocks/narrative.go -package=mocks NarrativeVerifier

// NarrativeRequest is the wire contract of the narrative verification
// service: product text plus the profile's rules serialized as JSON.
type NarrativeRequest struct {
	ProductName        string `json:"productName"`
	ProductInformation string `json:"productInformation"`
	CompliancePathName string `json:"compliancePathName"`
	ComplianceRules    string `json:"complianceRules"`
}

// NarrativeResult is the service's verdict plus a human-readable summary.
type NarrativeResult struct {
	IsCompliant       bool   `json:"isCompliant"`
	ComplianceSummary string `json:"complianceSummary"`
}

// NarrativeVerifier is the external text-generation collaborator. Errors
// (including timeouts) are normal outcomes handled per product by the
// orchestrator, never fatal to a run.
type NarrativeVerifier interface {
	Verify(ctx context.Context, req NarrativeRequest) (NarrativeResult, error)
}

// HTTPNarrativeVerifier talks to the narrative service over HTTP with a
// bounded timeout.
type HTTPNarrativeVerifier struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPNarrativeVerifier(baseURL, apiKey string, timeout time.Duration) *HTTPNarrativeVerifier {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPNarrativeVerifier{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (v *HTTPNarrativeVerifier) Verify(ctx context.Context, req NarrativeRequest) (NarrativeResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return NarrativeResult{}, fmt.Errorf("marshal narrative request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+"/v1/verify", bytes.NewReader(body))
	if err != nil {
		return NarrativeResult{}, fmt.Errorf("build narrative request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if v.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+v.apiKey)
	}

	resp, err := v.httpClient.Do(httpReq)
	if err != nil {
		return NarrativeResult{}, fmt.Errorf("call narrative service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Read a little of the body for the log line, then discard.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return NarrativeResult{}, fmt.Errorf("narrative service returned %d: %s", resp.StatusCode, snippet)
	}

	var result NarrativeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return NarrativeResult{}, fmt.Errorf("decode narrative response: %w", err)
	}
	return result, nil
}
