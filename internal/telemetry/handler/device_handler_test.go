package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/FJR5209/Dashboard-backend/internal/mocks"
	"github.com/FJR5209/Dashboard-backend/internal/telemetry/domain"
	"github.com/FJR5209/Dashboard-backend/internal/telemetry/handler"
	"github.com/FJR5209/Dashboard-backend/internal/telemetry/service"
	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newDeviceApp(t *testing.T) (*fiber.App, *mocks.MockDeviceRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := mocks.NewMockDeviceRepository(ctrl)
	deviceService := service.NewDeviceService(mockRepo)
	deviceHandler := handler.NewDeviceHandler(deviceService, zap.NewNop())

	app := fiber.New()
	handler.RegisterRoutes(app, deviceHandler)
	return app, mockRepo
}

func TestIngestRoute(t *testing.T) {
	t.Run("new device gets 201", func(t *testing.T) {
		app, mockRepo := newDeviceApp(t)
		mockRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(true, nil)

		body, _ := json.Marshal(map[string]any{
			"deviceId":    "sensor-01",
			"temperature": 25.5,
			"humidity":    60,
		})
		req := httptest.NewRequest("POST", "/dados", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var out map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&out)
		assert.Equal(t, "device registered", out["message"])
	})

	t.Run("repeat reading gets 200", func(t *testing.T) {
		app, mockRepo := newDeviceApp(t)
		mockRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(false, nil)

		body, _ := json.Marshal(map[string]any{
			"deviceId":    "sensor-01",
			"temperature": 26.1,
			"humidity":    58,
		})
		req := httptest.NewRequest("POST", "/dados", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var out map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&out)
		assert.Equal(t, "device data updated", out["message"])
	})

	t.Run("missing reading fields gets 400", func(t *testing.T) {
		app, _ := newDeviceApp(t)

		body, _ := json.Marshal(map[string]any{"deviceId": "sensor-01"})
		req := httptest.NewRequest("POST", "/dados", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("distinct devices stay distinct records", func(t *testing.T) {
		app, mockRepo := newDeviceApp(t)

		seen := map[string]bool{}
		mockRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, d *domain.Device) (bool, error) {
				created := !seen[d.DeviceID]
				seen[d.DeviceID] = true
				return created, nil
			}).Times(2)

		for _, id := range []string{"sensor-01", "sensor-02"} {
			body, _ := json.Marshal(map[string]any{
				"deviceId":    id,
				"temperature": 25.5,
				"humidity":    60,
			})
			req := httptest.NewRequest("POST", "/dados", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req)
			assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
		}
		require.Len(t, seen, 2)
	})
}

func TestGetDataRoute(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		app, mockRepo := newDeviceApp(t)
		mockRepo.EXPECT().GetByDeviceID(gomock.Any(), "sensor-01").
			Return(&domain.Device{DeviceID: "sensor-01", Temperature: 25.5, Humidity: 60}, nil)

		req := httptest.NewRequest("GET", "/dados/sensor-01", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("unknown device gets 404", func(t *testing.T) {
		app, mockRepo := newDeviceApp(t)
		mockRepo.EXPECT().GetByDeviceID(gomock.Any(), "missing").Return(nil, nil)

		req := httptest.NewRequest("GET", "/dados/missing", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestLatestRoute(t *testing.T) {
	app, mockRepo := newDeviceApp(t)
	mockRepo.EXPECT().GetByDeviceID(gomock.Any(), "sensor-01").
		Return(&domain.Device{DeviceID: "sensor-01", Temperature: 25.5, Humidity: 60}, nil)

	req := httptest.NewRequest("GET", "/api/devices/sensor-01/latest", nil)
	resp, _ := app.Test(req)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestDeleteDataRoute(t *testing.T) {
	t.Run("deletes stored data", func(t *testing.T) {
		app, mockRepo := newDeviceApp(t)
		mockRepo.EXPECT().DeleteByDeviceID(gomock.Any(), "sensor-01").Return(int64(1), nil)

		req := httptest.NewRequest("DELETE", "/dados/sensor-01", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var out map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&out)
		assert.Equal(t, float64(1), out["deletedCount"])
	})

	t.Run("unknown device gets 404", func(t *testing.T) {
		app, mockRepo := newDeviceApp(t)
		mockRepo.EXPECT().DeleteByDeviceID(gomock.Any(), "missing").Return(int64(0), nil)

		req := httptest.NewRequest("DELETE", "/dados/missing", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestListDevicesRoute(t *testing.T) {
	app, mockRepo := newDeviceApp(t)
	mockRepo.EXPECT().List(gomock.Any()).Return([]domain.Device{
		{DeviceID: "sensor-01"},
		{DeviceID: "sensor-02"},
	}, nil)

	req := httptest.NewRequest("GET", "/dispositivos", nil)
	resp, _ := app.Test(req)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out []map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	assert.Len(t, out, 2)
}
