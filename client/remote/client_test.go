package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vwin2537-arch/FireCheckPointReport/models"
)

func TestSubmitReportFillsParentFolder(t *testing.T) {
	var got models.SubmitRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/reports", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(models.SubmitResult{Success: true, Message: "ok"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "folder-123", 5*time.Second)
	result, err := client.SubmitReport(context.Background(), models.SubmitRequest{
		Date:      "2024-01-10",
		PointName: "จุดเฝ้าระวังที่ 03",
		Shift:     models.ShiftMorning,
		Images:    []string{"data:image/jpeg;base64,aGVsbG8="},
	})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "folder-123", got.ParentFolderID)
	assert.Equal(t, "จุดเฝ้าระวังที่ 03", got.PointName)
}

func TestSubmitReportNon2xxIsSoftFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 5*time.Second)
	result, err := client.SubmitReport(context.Background(), models.SubmitRequest{PointName: "x"})

	// The server answered; failure is carried in the result, not an error.
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, ConnectionErrorMessage, result.Message)
}

func TestSubmitReportTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient(server.URL, "", time.Second)
	_, err := client.SubmitReport(context.Background(), models.SubmitRequest{PointName: "x"})
	assert.Error(t, err)
}

func TestFetchStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/reports/status", r.URL.Path)
		assert.Equal(t, "2024-01-10", r.URL.Query().Get("date"))
		// Cache-busting nonce is always present.
		assert.NotEmpty(t, r.URL.Query().Get("t"))

		json.NewEncoder(w).Encode([]models.SubmissionRecord{
			{PointName: "จุดเฝ้าระวังที่ 01", Shift: models.ShiftMorning},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 5*time.Second)
	records, err := client.FetchStatus(context.Background(), "2024-01-10")

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "จุดเฝ้าระวังที่ 01", records[0].PointName)
	assert.Equal(t, models.ShiftMorning, records[0].Shift)
}

func TestFetchStatusNonOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 5*time.Second)
	_, err := client.FetchStatus(context.Background(), "2024-01-10")
	assert.Error(t, err)
}

func TestFetchStatusNonArrayPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"oops"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 5*time.Second)
	_, err := client.FetchStatus(context.Background(), "2024-01-10")
	assert.Error(t, err)
}
