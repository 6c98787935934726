package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/captian10/adhan-engine/internal/alarm"
	"github.com/captian10/adhan-engine/internal/auth"
	"github.com/captian10/adhan-engine/internal/db"
	"github.com/captian10/adhan-engine/internal/delivery"
	"github.com/captian10/adhan-engine/internal/location"
	"github.com/captian10/adhan-engine/internal/model"
	"github.com/captian10/adhan-engine/internal/prayer"
	"github.com/captian10/adhan-engine/internal/scheduler"
)

const testSecret = "test-secret"

type staticResolver struct {
	loc model.ResolvedLocation
	err error
}

func (s staticResolver) Resolve(ctx context.Context, forceFresh bool) (model.ResolvedLocation, error) {
	return s.loc, s.err
}

type fixture struct {
	router     *gin.Engine
	dispatcher *alarm.MockDispatcher
	store      db.Store
	token      string
}

func newFixture(t *testing.T, resolver scheduler.LocationResolver) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := db.NewMemStore()
	dispatcher := alarm.NewMockDispatcher()
	engine := scheduler.New(store, prayer.NewEgyptianCalculator(), resolver, dispatcher)
	session := delivery.NewSession(&delivery.DirAssets{Dir: t.TempDir()}, delivery.NewExecPlayer(""), delivery.NewMemGuard(), nil)

	router := gin.New()
	group := router.Group("/api/engine")
	group.Use(auth.JWTMiddleware(testSecret))
	RegisterEngineRoutes(group, NewEngineController(engine, session, store))

	token, err := auth.GenerateToken("device-1", testSecret)
	require.NoError(t, err)

	return &fixture{router: router, dispatcher: dispatcher, store: store, token: token}
}

func cairoFixture(t *testing.T) *fixture {
	return newFixture(t, staticResolver{loc: model.ResolvedLocation{
		Coords: model.Coordinates{Lat: 30.0444, Lng: 31.2357},
		Name:   "Cairo",
	}})
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+f.token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	f := cairoFixture(t)

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/engine/status", nil)
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/engine/status", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/api/engine/status", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestStatusDefaults(t *testing.T) {
	f := cairoFixture(t)

	w := f.do(t, http.MethodGet, "/api/engine/status", "")
	require.Equal(t, http.StatusOK, w.Code)

	var status StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.True(t, status.AdhanEnabled)
	assert.Equal(t, db.DefaultAdhanSoundID, status.AdhanSound)
	assert.False(t, status.Salat.Enabled)
	assert.Equal(t, db.DefaultSalatIntervalMin, status.Salat.IntervalMinutes)
	assert.Equal(t, model.LocationAuto, status.Location.Mode)
}

func TestRefreshEndpoint(t *testing.T) {
	f := cairoFixture(t)

	t.Run("empty body uses defaults", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/engine/refresh", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var result model.RefreshResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, scheduler.DefaultDaysAhead, result.ScheduledRangeDays)
		assert.Equal(t, "Cairo", result.LocationName)
		assert.Positive(t, result.ScheduledCount)
		require.NotNil(t, result.NextPrayer)
		assert.Len(t, result.TodayPrayers, 5)

		ledger, err := f.store.AlarmIDs()
		require.NoError(t, err)
		assert.Len(t, ledger, result.ScheduledCount)
		assert.ElementsMatch(t, ledger, f.dispatcher.ScheduledIDs())
	})

	t.Run("days ahead is clamped", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/engine/refresh", `{"days_ahead": 99}`)
		require.Equal(t, http.StatusOK, w.Code)

		var result model.RefreshResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, scheduler.MaxDaysAhead, result.ScheduledRangeDays)
	})
}

func TestRefreshLocationFailures(t *testing.T) {
	t.Run("permission denied maps to 403", func(t *testing.T) {
		f := newFixture(t, staticResolver{err: location.ErrPermissionDenied})
		w := f.do(t, http.MethodPost, "/api/engine/refresh", "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("no fix maps to 503", func(t *testing.T) {
		f := newFixture(t, staticResolver{err: location.ErrNoFix})
		w := f.do(t, http.MethodPost, "/api/engine/refresh", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestDisabledFeaturesConflict(t *testing.T) {
	f := cairoFixture(t)

	w := f.do(t, http.MethodPut, "/api/engine/adhan/enabled", `{"enabled": false}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusConflict, f.do(t, http.MethodPost, "/api/engine/adhan/test", "").Code)
	assert.Equal(t, http.StatusConflict, f.do(t, http.MethodPut, "/api/engine/adhan/sound", `{"sound_id": "azan_egypt"}`).Code)

	// salat is off by default
	assert.Equal(t, http.StatusConflict, f.do(t, http.MethodPut, "/api/engine/salat/sound", `{"sound_id": "azan_egypt"}`).Code)
	assert.Equal(t, http.StatusConflict, f.do(t, http.MethodPost, "/api/engine/salat/test", "").Code)
}

func TestToggleRequiresExplicitValue(t *testing.T) {
	f := cairoFixture(t)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPut, "/api/engine/adhan/enabled", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPut, "/api/engine/salat/enabled", `{}`).Code)
}

func TestSalatLifecycle(t *testing.T) {
	f := cairoFixture(t)

	w := f.do(t, http.MethodPut, "/api/engine/salat/enabled", `{"enabled": true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, f.dispatcher.ScheduledIDs(), alarm.SalatSlotID)

	t.Run("interval is clamped in the response", func(t *testing.T) {
		w := f.do(t, http.MethodPut, "/api/engine/salat/interval", `{"minutes": 9999}`)
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]int
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, scheduler.MaxSalatIntervalMinutes, body["minutes"])
		assert.Equal(t, scheduler.MaxSalatIntervalMinutes, f.dispatcher.Scheduled[alarm.SalatSlotID].IntervalMinutes)
	})

	t.Run("disabling cancels the slot", func(t *testing.T) {
		w := f.do(t, http.MethodPut, "/api/engine/salat/enabled", `{"enabled": false}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, f.dispatcher.ScheduledIDs(), alarm.SalatSlotID)
	})
}

func TestStopWithNothingPlaying(t *testing.T) {
	f := cairoFixture(t)

	w := f.do(t, http.MethodPost, "/api/engine/stop", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp StopResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Stopped)
}

func TestLocationEndpoints(t *testing.T) {
	f := cairoFixture(t)

	t.Run("manual requires coordinates", func(t *testing.T) {
		w := f.do(t, http.MethodPut, "/api/engine/location", `{"mode": "manual", "name": "Cairo"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown mode is rejected", func(t *testing.T) {
		w := f.do(t, http.MethodPut, "/api/engine/location", `{"mode": "gps"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("manual pin round trips", func(t *testing.T) {
		w := f.do(t, http.MethodPut, "/api/engine/location", `{"mode": "manual", "lat": 30.0444, "lng": 31.2357, "name": "القاهرة"}`)
		require.Equal(t, http.StatusOK, w.Code)

		w = f.do(t, http.MethodGet, "/api/engine/location", "")
		require.Equal(t, http.StatusOK, w.Code)

		var pref model.LocationPreference
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pref))
		assert.Equal(t, model.LocationManual, pref.Mode)
		require.NotNil(t, pref.Lat)
		assert.InDelta(t, 30.0444, *pref.Lat, 1e-9)
		assert.Equal(t, "القاهرة", pref.Name)
	})

	t.Run("city catalog", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/api/engine/location/cities", "")
		require.Equal(t, http.StatusOK, w.Code)

		var cities []location.City
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cities))
		assert.NotEmpty(t, cities)
	})
}

func TestSoundsCatalog(t *testing.T) {
	f := cairoFixture(t)

	w := f.do(t, http.MethodGet, "/api/engine/sounds", "")
	require.Equal(t, http.StatusOK, w.Code)

	var sounds []delivery.Sound
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sounds))
	require.NotEmpty(t, sounds)
	ids := make([]string, 0, len(sounds))
	for _, s := range sounds {
		ids = append(ids, s.ID)
	}
	assert.Contains(t, ids, delivery.LastResortSoundID)
}
