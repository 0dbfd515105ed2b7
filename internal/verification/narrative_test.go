package verification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPNarrativeVerifier_Success(t *testing.T) {
	var seen NarrativeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/verify", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&seen))

		json.NewEncoder(w).Encode(NarrativeResult{
			IsCompliant:       true,
			ComplianceSummary: "product satisfies the electronics compliance path",
		})
	}))
	defer srv.Close()

	v := NewHTTPNarrativeVerifier(srv.URL, "test-key", 5*time.Second)
	result, err := v.Verify(context.Background(), NarrativeRequest{
		ProductName:        "Solar Charger",
		ProductInformation: "Materials: Recycled Aluminium",
		CompliancePathName: "electronics path",
		ComplianceRules:    `{"minSustainabilityScore":60}`,
	})

	require.NoError(t, err)
	assert.True(t, result.IsCompliant)
	assert.Contains(t, result.ComplianceSummary, "compliance path")
	assert.Equal(t, "Solar Charger", seen.ProductName)
	assert.Equal(t, `{"minSustainabilityScore":60}`, seen.ComplianceRules)
}

func TestHTTPNarrativeVerifier_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	v := NewHTTPNarrativeVerifier(srv.URL, "", 5*time.Second)
	_, err := v.Verify(context.Background(), NarrativeRequest{ProductName: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestHTTPNarrativeVerifier_TimeoutIsError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	v := NewHTTPNarrativeVerifier(srv.URL, "", 50*time.Millisecond)
	_, err := v.Verify(context.Background(), NarrativeRequest{ProductName: "x"})

	assert.Error(t, err)
}

func TestHTTPNarrativeVerifier_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	v := NewHTTPNarrativeVerifier(srv.URL, "", 5*time.Second)
	_, err := v.Verify(context.Background(), NarrativeRequest{ProductName: "x"})

	assert.Error(t, err)
}
