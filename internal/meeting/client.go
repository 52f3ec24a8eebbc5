package meeting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client exchanges interview details for a meeting room code issued by the
// external provider. The provider's internals are opaque to us.
type Client interface {
	CreateRoom(ctx context.Context, title string, scheduledAt time.Time) (string, error)
}

type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type createRoomRequest struct {
	Title       string    `json:"title"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

type createRoomResponse struct {
	RoomCode string `json:"room_code"`
}

// CreateRoom requests a room token for a scheduled interview
func (c *HTTPClient) CreateRoom(ctx context.Context, title string, scheduledAt time.Time) (string, error) {
	url := fmt.Sprintf("%s/v1/rooms", c.baseURL)

	payload := createRoomRequest{
		Title:       title,
		ScheduledAt: scheduledAt,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		url,
		bytes.NewReader(body),
	)
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf(
			"meeting provider error: status=%d body=%s",
			resp.StatusCode,
			string(b),
		)
	}

	var result createRoomResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	if result.RoomCode == "" {
		return "", fmt.Errorf("meeting provider returned empty room code")
	}

	return result.RoomCode, nil
}
