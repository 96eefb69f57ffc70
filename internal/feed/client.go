package feed

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

//go:generate mockgen -destination=../mocks/mock_fetcher.go -package=mocks github.com/FJR5209/Dashboard-backend/internal/feed Fetcher

// Sample is one parsed feed entry. field1 carries temperature, field2
// humidity, matching the channel layout the sensors write.
type Sample struct {
	EntryID     int64     `json:"entry_id"`
	CreatedAt   time.Time `json:"created_at"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
}

// Fetcher pulls the most recent samples from the external telemetry feed.
type Fetcher interface {
	FetchLatest(ctx context.Context) ([]Sample, error)
}

type feedsResponse struct {
	Feeds []feedEntry `json:"feeds"`
}

type feedEntry struct {
	CreatedAt time.Time `json:"created_at"`
	EntryID   int64     `json:"entry_id"`
	Field1    string    `json:"field1"`
	Field2    string    `json:"field2"`
}

// Client reads a ThingSpeak channel over HTTP.
type Client struct {
	http      *resty.Client
	channelID string
	apiKey    string
}

func NewClient(baseURL, channelID, apiKey string, timeout time.Duration) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &Client{
		http:      httpClient,
		channelID: channelID,
		apiKey:    apiKey,
	}
}

// FetchLatest requests the channel's two most recent entries and parses
// their fields. Entries with unparsable fields are skipped rather than
// failing the whole fetch: the feed occasionally emits empty fields while
// a sensor reboots.
func (c *Client) FetchLatest(ctx context.Context) ([]Sample, error) {
	var page feedsResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("api_key", c.apiKey).
		SetQueryParam("results", "2").
		SetResult(&page).
		Get(fmt.Sprintf("/channels/%s/feeds.json", c.channelID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode())
	}

	samples := make([]Sample, 0, len(page.Feeds))
	for _, entry := range page.Feeds {
		temperature, err := strconv.ParseFloat(entry.Field1, 64)
		if err != nil {
			continue
		}
		humidity, err := strconv.ParseFloat(entry.Field2, 64)
		if err != nil {
			continue
		}
		samples = append(samples, Sample{
			EntryID:     entry.EntryID,
			CreatedAt:   entry.CreatedAt,
			Temperature: temperature,
			Humidity:    humidity,
		})
	}

	return samples, nil
}
