package winnerledger

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bridgetunes/draw-console-backend/internal/models"
	"github.com/bridgetunes/draw-console-backend/pkg/remote"
)

func TestFindByDraw(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[{"id":"w1","drawId":"draw-1","msisdn":"08031234567","prizeCategory":"JACKPOT","prizeAmount":1000000,"claimStatus":"PENDING"}]`))
	}))
	t.Cleanup(server.Close)
	client := NewClient(server.URL, "", time.Second)

	winners, err := client.FindByDraw(context.Background(), "draw-1")
	require.NoError(t, err)
	assert.Equal(t, "/draw-1/winners", gotPath)
	require.Len(t, winners, 1)
	assert.Equal(t, "w1", winners[0].ID)
	assert.Equal(t, models.CategoryJackpot, winners[0].PrizeCategory)
}

func TestFindByDrawEmptyBodyYieldsEmptySlice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Some ledger builds answer null rather than [] for a winnerless draw
		w.Write([]byte(`null`))
	}))
	t.Cleanup(server.Close)
	client := NewClient(server.URL, "", time.Second)

	winners, err := client.FindByDraw(context.Background(), "draw-1")
	require.NoError(t, err)
	require.NotNil(t, winners)
	assert.Empty(t, winners)
}

func TestUpdateStatus(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"id":"w1","drawId":"draw-1","claimStatus":"PAID"}`))
	}))
	t.Cleanup(server.Close)
	client := NewClient(server.URL, "", time.Second)

	winner, err := client.UpdateStatus(context.Background(), "w1", models.ClaimStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, models.ClaimStatusPaid, winner.ClaimStatus)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/winners/w1/status", gotPath)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	assert.Equal(t, map[string]string{"status": "PAID"}, payload)
}

func TestUpdateStatusRejectsUnknownStatusWithoutNetworkIO(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	t.Cleanup(server.Close)
	client := NewClient(server.URL, "", time.Second)

	_, err := client.UpdateStatus(context.Background(), "w1", models.ClaimStatus("REFUNDED"))
	require.Error(t, err)
	assert.Equal(t, remote.KindInvalidTransition, remote.KindOf(err))
	assert.Zero(t, requests)
}

func TestUpdateStatusUnprocessableEntity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"status transition rejected"}`))
	}))
	t.Cleanup(server.Close)
	client := NewClient(server.URL, "", time.Second)

	_, err := client.UpdateStatus(context.Background(), "w1", models.ClaimStatusFailed)
	require.Error(t, err)
	assert.Equal(t, remote.KindInvalidTransition, remote.KindOf(err))
}

func TestFindByDrawNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)
	client := NewClient(server.URL, "", time.Second)

	_, err := client.FindByDraw(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, remote.IsNotFound(err))
	assert.Equal(t, "winnerledger.FindByDraw", remote.OpOf(err))
}
