package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const linePushURL = "https://api.line.me/v2/bot/message/push"

// LineClient pushes messages to a LINE group via the Messaging API.
type LineClient struct {
	channelToken string
	groupID      string
	httpClient   *http.Client
	pushURL      string
}

// NewLineClient creates a client for the given channel credentials.
func NewLineClient(channelToken, groupID string) *LineClient {
	return &LineClient{
		channelToken: channelToken,
		groupID:      groupID,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		pushURL:      linePushURL,
	}
}

type pushPayload struct {
	To       string        `json:"to"`
	Messages []interface{} `json:"messages"`
}

// Push sends one message object to the configured group.
func (c *LineClient) Push(ctx context.Context, message interface{}) error {
	body, err := json.Marshal(pushPayload{
		To:       c.groupID,
		Messages: []interface{}{message},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.pushURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.channelToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to push LINE message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("LINE push rejected: status %d", resp.StatusCode)
	}
	return nil
}

// statusColor picks the accent color used across the flex messages.
func statusColor(percent int) string {
	switch {
	case percent == 100:
		return "#10b981"
	case percent > 50:
		return "#f59e0b"
	default:
		return "#ef4444"
	}
}

func flexText(text, size, color, weight string) map[string]interface{} {
	msg := map[string]interface{}{"type": "text", "text": text, "wrap": true}
	if size != "" {
		msg["size"] = size
	}
	if color != "" {
		msg["color"] = color
	}
	if weight != "" {
		msg["weight"] = weight
	}
	return msg
}

func flexBubble(altText string, contents []interface{}) map[string]interface{} {
	return map[string]interface{}{
		"type":    "flex",
		"altText": altText,
		"contents": map[string]interface{}{
			"type": "bubble",
			"size": "giga",
			"body": map[string]interface{}{
				"type":     "box",
				"layout":   "vertical",
				"contents": contents,
			},
		},
	}
}

// BuildShiftMessage renders the per-shift reminder: submitted count plus
// the list of points that have not reported yet.
func BuildShiftMessage(s ShiftSummary, thaiDate string) map[string]interface{} {
	contents := []interface{}{
		flexText("🔥 รายงานสรุปไฟป่า", "sm", "#1db446", "bold"),
		flexText(fmt.Sprintf("สรุปผล %s", s.Shift), "xl", "", "bold"),
		flexText(thaiDate, "xs", "#aaaaaa", ""),
		map[string]interface{}{"type": "separator", "margin": "xxl"},
		flexText(fmt.Sprintf("ส่งแล้ว %d จุด (%d%%)", s.Submitted, s.Percent), "md", statusColor(s.Percent), "bold"),
	}

	if len(s.MissingPoints) > 0 {
		contents = append(contents, flexText(fmt.Sprintf("⚠️ ยังไม่ส่ง %d จุด:", s.Missing), "sm", "#ef4444", "bold"))
		for _, name := range s.MissingPoints {
			contents = append(contents, flexText("• "+name, "sm", "#555555", ""))
		}
	}

	return flexBubble(fmt.Sprintf("สรุปสถานะ %s", s.Shift), contents)
}

// BuildAllCompleteMessage renders the congratulation sent when every
// point has reported for the shift.
func BuildAllCompleteMessage(shift, thaiDate string) map[string]interface{} {
	contents := []interface{}{
		flexText("🎉 ครบทุกจุดแล้ว!", "xl", "#10b981", "bold"),
		flexText(fmt.Sprintf("%s ทุกจุดส่งรายงานครบถ้วน", shift), "md", "", ""),
		flexText(thaiDate, "xs", "#aaaaaa", ""),
	}
	return flexBubble(fmt.Sprintf("ครบทุกจุด %s", shift), contents)
}

// BuildDailySummaryMessage renders the evening wrap-up across all three
// shifts with the overall completion percent.
func BuildDailySummaryMessage(day DaySummary, thaiDate string) map[string]interface{} {
	contents := []interface{}{
		flexText("🔥 สรุปรายวัน", "sm", "#1db446", "bold"),
		flexText("รายงานเฝ้าระวังไฟป่า", "xl", "", "bold"),
		flexText(thaiDate, "xs", "#aaaaaa", ""),
		map[string]interface{}{"type": "separator", "margin": "xxl"},
	}

	for _, s := range day.Shifts {
		contents = append(contents, flexText(
			fmt.Sprintf("%s: %d จุด (%d%%)", s.Shift, s.Submitted, s.Percent),
			"sm", statusColor(s.Percent), "",
		))
	}

	contents = append(contents, flexText(
		fmt.Sprintf("รวม %d/%d รายการ (%d%%)", day.TotalSubmitted, day.TotalExpected, day.OverallPercent),
		"md", statusColor(day.OverallPercent), "bold",
	))

	return flexBubble("สรุปรายวัน", contents)
}

// FormatThaiDate renders a date in the Thai Buddhist calendar style used
// in the group messages.
func FormatThaiDate(t time.Time) string {
	months := []string{
		"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
		"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม",
	}
	return fmt.Sprintf("%d %s %d", t.Day(), months[int(t.Month())-1], t.Year()+543)
}
