package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"reims-http-service/config"
	"reims-http-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitDecision_EmptyEndpointIsLocalOnly(t *testing.T) {
	client := NewDecisionClient(&config.Config{})

	err := client.SubmitDecision(context.Background(), &models.Decision{
		AlertID: 1, UserID: 2, Action: models.DecisionActionApprove,
	})
	assert.NoError(t, err)
}

func TestSubmitDecision_ForwardsRequestBody(t *testing.T) {
	var received DecisionSubmitRequest
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(DecisionSubmitResponse{Success: true})
	}))
	defer server.Close()

	client := NewDecisionClient(&config.Config{
		DecisionEndpointURL: server.URL,
		DecisionAPIKey:      "secret-key",
	})

	err := client.SubmitDecision(context.Background(), &models.Decision{
		AlertID: 7,
		UserID:  42,
		Action:  models.DecisionActionReject,
		Notes:   "数值有误",
		Reason:  models.RejectReasonDataIncorrect,
	})

	require.NoError(t, err)
	assert.Equal(t, uint(7), received.AlertID)
	assert.Equal(t, uint(42), received.UserID)
	assert.Equal(t, models.DecisionActionReject, received.Action)
	assert.Equal(t, "数值有误", received.Notes)
	assert.Equal(t, models.RejectReasonDataIncorrect, received.Reason)
	assert.Equal(t, "Bearer secret-key", authHeader)
}

func TestSubmitDecision_UpstreamErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewDecisionClient(&config.Config{DecisionEndpointURL: server.URL})

	err := client.SubmitDecision(context.Background(), &models.Decision{AlertID: 1, UserID: 2})

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, server.URL, ue.Endpoint)
}

func TestSubmitDecision_RetriesTransientServerErrors(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(DecisionSubmitResponse{Success: true})
	}))
	defer server.Close()

	client := NewDecisionClient(&config.Config{DecisionEndpointURL: server.URL})

	err := client.SubmitDecision(context.Background(), &models.Decision{AlertID: 1, UserID: 2})

	assert.NoError(t, err)
	assert.Equal(t, int32(3), hits.Load())
}
