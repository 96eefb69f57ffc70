package poller_test

import (
	"context"
	"sync"
	"testing"
	"time"

	alertservice "github.com/FJR5209/Dashboard-backend/internal/alerting/service"
	authdomain "github.com/FJR5209/Dashboard-backend/internal/auth/domain"
	"github.com/FJR5209/Dashboard-backend/internal/feed"
	"github.com/FJR5209/Dashboard-backend/internal/mocks"
	"github.com/FJR5209/Dashboard-backend/internal/poller"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pollerDeps struct {
	poller    *poller.Poller
	fetcher   *mocks.MockFetcher
	users     *mocks.MockUserRepository
	alertRepo *mocks.MockAlertRepository
	mailer    *mocks.MockMailer
	highWater *poller.RedisHighWaterStore
}

func newTestPoller(t *testing.T) pollerDeps {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockFetcher := mocks.NewMockFetcher(ctrl)
	mockUsers := mocks.NewMockUserRepository(ctrl)
	mockAlertRepo := mocks.NewMockAlertRepository(ctrl)
	mockMailer := mocks.NewMockMailer(ctrl)

	alerts := alertservice.NewAlertService(mockAlertRepo, mockMailer,
		alertservice.PolicyAnyExceeds, time.Second, 8, zap.NewNop())
	alerts.Start()
	t.Cleanup(alerts.Stop)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	highWater := poller.NewRedisHighWaterStore(client)

	p := poller.New(mockFetcher, mockUsers, alerts, highWater,
		time.Minute, time.Second, zap.NewNop())

	return pollerDeps{
		poller:    p,
		fetcher:   mockFetcher,
		users:     mockUsers,
		alertRepo: mockAlertRepo,
		mailer:    mockMailer,
		highWater: highWater,
	}
}

func sampleAt(entryID int64, temp, humidity float64) feed.Sample {
	return feed.Sample{
		EntryID:     entryID,
		CreatedAt:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Temperature: temp,
		Humidity:    humidity,
	}
}

func TestRunTick(t *testing.T) {
	t.Run("breach sweeps every user and advances the mark", func(t *testing.T) {
		deps := newTestPoller(t)

		deps.fetcher.EXPECT().FetchLatest(gomock.Any()).
			Return([]feed.Sample{sampleAt(41, 25, 55), sampleAt(42, 32, 50)}, nil)
		deps.users.EXPECT().List(gomock.Any()).Return([]authdomain.User{
			{ID: "user-1", Email: "one@example.com", TempLimit: 30, HumidityLimit: 70},
			{ID: "user-2", Email: "two@example.com", TempLimit: 40, HumidityLimit: 70},
		}, nil)

		// Only user-1's ceiling is below the observed 32°C.
		deps.alertRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		sent := make(chan struct{})
		deps.mailer.EXPECT().Send(gomock.Any(), "one@example.com", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _, _ string) error {
				close(sent)
				return nil
			})

		ran := deps.poller.RunTick(context.Background())
		assert.True(t, ran)

		select {
		case <-sent:
		case <-time.After(2 * time.Second):
			t.Fatal("email was never sent")
		}

		mark, err := deps.highWater.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(42), mark)
	})

	t.Run("already-processed entry is skipped", func(t *testing.T) {
		deps := newTestPoller(t)
		require.NoError(t, deps.highWater.Set(context.Background(), 42))

		deps.fetcher.EXPECT().FetchLatest(gomock.Any()).
			Return([]feed.Sample{sampleAt(42, 32, 50)}, nil)

		ran := deps.poller.RunTick(context.Background())
		assert.True(t, ran)
	})

	t.Run("empty feed does nothing", func(t *testing.T) {
		deps := newTestPoller(t)

		deps.fetcher.EXPECT().FetchLatest(gomock.Any()).Return(nil, nil)

		ran := deps.poller.RunTick(context.Background())
		assert.True(t, ran)

		mark, err := deps.highWater.Get(context.Background())
		require.NoError(t, err)
		assert.Zero(t, mark)
	})

	t.Run("every breaching user gets an alert", func(t *testing.T) {
		deps := newTestPoller(t)

		deps.fetcher.EXPECT().FetchLatest(gomock.Any()).
			Return([]feed.Sample{sampleAt(42, 32, 50)}, nil)
		deps.users.EXPECT().List(gomock.Any()).Return([]authdomain.User{
			{ID: "user-1", Email: "one@example.com", TempLimit: 30, HumidityLimit: 70},
			{ID: "user-2", Email: "two@example.com", TempLimit: 30, HumidityLimit: 70},
		}, nil)

		deps.alertRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).Times(2)
		var wg sync.WaitGroup
		wg.Add(2)
		deps.mailer.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _, _ string) error {
				wg.Done()
				return nil
			}).Times(2)

		ran := deps.poller.RunTick(context.Background())
		assert.True(t, ran)

		done := make(chan struct{})
		go func() { wg.Wait(); close(done) }()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("not all emails were sent")
		}
	})

	t.Run("concurrent tick is skipped", func(t *testing.T) {
		deps := newTestPoller(t)

		started := make(chan struct{})
		release := make(chan struct{})
		deps.fetcher.EXPECT().FetchLatest(gomock.Any()).
			DoAndReturn(func(context.Context) ([]feed.Sample, error) {
				close(started)
				<-release
				return nil, nil
			})

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, deps.poller.RunTick(context.Background()))
		}()

		<-started
		assert.False(t, deps.poller.RunTick(context.Background()), "second tick must be skipped")

		close(release)
		wg.Wait()
	})
}
