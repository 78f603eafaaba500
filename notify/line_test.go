package notify

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

	"github.com/vwin2537-arch/FireCheckPointReport/models"
)

func TestPushSendsBearerTokenAndGroup(t *testing.T) {
	var gotAuth string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewLineClient("channel-token", "C1234567890")
	client.pushURL = server.URL

	err := client.Push(context.Background(), map[string]interface{}{"type": "text", "text": "สวัสดี"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer channel-token", gotAuth)

	var payload pushPayload
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	assert.Equal(t, "C1234567890", payload.To)
	assert.Len(t, payload.Messages, 1)
}

func TestPushRejectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewLineClient("bad-token", "C1")
	client.pushURL = server.URL

	err := client.Push(context.Background(), map[string]interface{}{"type": "text", "text": "x"})
	assert.Error(t, err)
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, "#10b981", statusColor(100))
	assert.Equal(t, "#f59e0b", statusColor(75))
	assert.Equal(t, "#f59e0b", statusColor(51))
	assert.Equal(t, "#ef4444", statusColor(50))
	assert.Equal(t, "#ef4444", statusColor(0))
}

func TestBuildShiftMessageListsMissingPoints(t *testing.T) {
	summary := ShiftSummary{
		Shift:         models.ShiftMorning,
		Date:          "2024-01-10",
		Submitted:     18,
		Missing:       2,
		MissingPoints: []string{"จุดเฝ้าระวังที่ 07", "จุดเฝ้าระวังที่ 12"},
		Percent:       90,
	}

	msg := BuildShiftMessage(summary, "10 มกราคม 2567")

	assert.Equal(t, "flex", msg["type"])
	assert.Contains(t, msg["altText"], string(models.ShiftMorning))

	body, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.Contains(t, string(body), "จุดเฝ้าระวังที่ 07")
	assert.Contains(t, string(body), "จุดเฝ้าระวังที่ 12")
	assert.Contains(t, string(body), "ยังไม่ส่ง 2 จุด")
	assert.Contains(t, string(body), "#f59e0b")
}

func TestBuildAllCompleteMessage(t *testing.T) {
	msg := BuildAllCompleteMessage(string(models.ShiftEvening), "10 มกราคม 2567")

	body, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.Contains(t, string(body), "ครบทุกจุดแล้ว")
	assert.Contains(t, string(body), string(models.ShiftEvening))
}

func TestBuildDailySummaryMessage(t *testing.T) {
	day := SummarizeDay(models.DefaultWatchPoints(2), []models.SubmissionRecord{
		rec("จุดเฝ้าระวังที่ 01", models.ShiftMorning),
		rec("จุดเฝ้าระวังที่ 02", models.ShiftMorning),
	}, "2024-01-10")

	msg := BuildDailySummaryMessage(day, "10 มกราคม 2567")

	body, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.Contains(t, string(body), "สรุปรายวัน")
	assert.Contains(t, string(body), "รวม 2/6 รายการ (33%)")
}

func TestFormatThaiDate(t *testing.T) {
	d := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "10 มกราคม 2567", FormatThaiDate(d))

	d = time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "1 ธันวาคม 2568", FormatThaiDate(d))
}
