package location

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/captian10/adhan-engine/internal/db"
	"github.com/captian10/adhan-engine/internal/model"
)

type trackingPositioner struct {
	lastKnown *model.Coordinates
	current   *model.Coordinates

	lastKnownCalls int
	currentCalls   int
}

func (p *trackingPositioner) LastKnown(ctx context.Context) (*model.Coordinates, error) {
	p.lastKnownCalls++
	return p.lastKnown, nil
}

func (p *trackingPositioner) Current(ctx context.Context) (*model.Coordinates, error) {
	p.currentCalls++
	if p.current == nil {
		return nil, ErrNoFix
	}
	return p.current, nil
}

type fakeGeocoder struct {
	name  string
	err   error
	calls int
}

func (g *fakeGeocoder) ReverseName(ctx context.Context, coords model.Coordinates) (string, error) {
	g.calls++
	return g.name, g.err
}

func ptr(f float64) *float64 { return &f }

func TestResolveManualNeverTouchesPositioner(t *testing.T) {
	store := db.NewMemStore()
	require.NoError(t, store.SetLocationPreference(model.LocationPreference{
		Mode: model.LocationManual,
		Lat:  ptr(30.0444),
		Lng:  ptr(31.2357),
		Name: "القاهرة",
	}))
	pos := &trackingPositioner{}
	geo := &fakeGeocoder{name: "should not be called"}
	r := NewResolver(store, pos, geo)

	loc, err := r.Resolve(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, model.Coordinates{Lat: 30.0444, Lng: 31.2357}, loc.Coords)
	assert.Equal(t, "القاهرة", loc.Name)
	assert.Zero(t, pos.lastKnownCalls)
	assert.Zero(t, pos.currentCalls)
	assert.Zero(t, geo.calls)
}

func TestResolveManualWithoutNameGetsPinnedLabel(t *testing.T) {
	store := db.NewMemStore()
	require.NoError(t, store.SetLocationPreference(model.LocationPreference{
		Mode: model.LocationManual,
		Lat:  ptr(31.2001),
		Lng:  ptr(29.9187),
	}))
	r := NewResolver(store, &trackingPositioner{}, &fakeGeocoder{})

	loc, err := r.Resolve(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, PinnedPlaceName, loc.Name)
}

func TestResolveAutoPrefersLastKnown(t *testing.T) {
	cached := &model.Coordinates{Lat: 30.0, Lng: 31.0}
	fresh := &model.Coordinates{Lat: 30.1, Lng: 31.1}
	pos := &trackingPositioner{lastKnown: cached, current: fresh}
	r := NewResolver(db.NewMemStore(), pos, &fakeGeocoder{name: "Cairo"})

	loc, err := r.Resolve(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, *cached, loc.Coords)
	assert.Zero(t, pos.currentCalls)
}

func TestResolveForceFreshSkipsLastKnown(t *testing.T) {
	cached := &model.Coordinates{Lat: 30.0, Lng: 31.0}
	fresh := &model.Coordinates{Lat: 30.1, Lng: 31.1}
	pos := &trackingPositioner{lastKnown: cached, current: fresh}
	r := NewResolver(db.NewMemStore(), pos, &fakeGeocoder{name: "Cairo"})

	loc, err := r.Resolve(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, *fresh, loc.Coords)
	assert.Zero(t, pos.lastKnownCalls)
	assert.Equal(t, 1, pos.currentCalls)
}

func TestResolveAutoFallsThroughToCurrent(t *testing.T) {
	fresh := &model.Coordinates{Lat: 30.1, Lng: 31.1}
	pos := &trackingPositioner{current: fresh}
	r := NewResolver(db.NewMemStore(), pos, &fakeGeocoder{name: "Cairo"})

	loc, err := r.Resolve(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, *fresh, loc.Coords)
	assert.Equal(t, 1, pos.lastKnownCalls)
	assert.Equal(t, 1, pos.currentCalls)
}

func TestResolvePermissionDeniedIsFatal(t *testing.T) {
	r := NewResolver(db.NewMemStore(), DeniedPositioner{}, &fakeGeocoder{})

	_, err := r.Resolve(context.Background(), false)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestResolveNoFixIsFatal(t *testing.T) {
	r := NewResolver(db.NewMemStore(), &StaticPositioner{}, &fakeGeocoder{})

	_, err := r.Resolve(context.Background(), false)
	assert.ErrorIs(t, err, ErrNoFix)
}

func TestPlaceNameCaching(t *testing.T) {
	coords := &model.Coordinates{Lat: 30.0444, Lng: 31.2357}

	t.Run("geocoded name is persisted", func(t *testing.T) {
		store := db.NewMemStore()
		geo := &fakeGeocoder{name: "Cairo"}
		r := NewResolver(store, &trackingPositioner{lastKnown: coords}, geo)

		loc, err := r.Resolve(context.Background(), false)
		require.NoError(t, err)
		assert.Equal(t, "Cairo", loc.Name)

		name, err := store.CachedPlaceName()
		require.NoError(t, err)
		assert.Equal(t, "Cairo", name)
	})

	t.Run("cached name skips the geocoder", func(t *testing.T) {
		store := db.NewMemStore()
		require.NoError(t, store.SetCachedPlaceName("Cairo"))
		geo := &fakeGeocoder{name: "Giza"}
		r := NewResolver(store, &trackingPositioner{lastKnown: coords}, geo)

		loc, err := r.Resolve(context.Background(), false)
		require.NoError(t, err)
		assert.Equal(t, "Cairo", loc.Name)
		assert.Zero(t, geo.calls)
	})

	t.Run("forceFresh re-geocodes past the cached name", func(t *testing.T) {
		store := db.NewMemStore()
		require.NoError(t, store.SetCachedPlaceName("Cairo"))
		geo := &fakeGeocoder{name: "Giza"}
		r := NewResolver(store, &trackingPositioner{current: coords}, geo)

		loc, err := r.Resolve(context.Background(), true)
		require.NoError(t, err)
		assert.Equal(t, "Giza", loc.Name)

		name, err := store.CachedPlaceName()
		require.NoError(t, err)
		assert.Equal(t, "Giza", name)
	})

	t.Run("geocode failure falls back to cached name", func(t *testing.T) {
		store := db.NewMemStore()
		require.NoError(t, store.SetCachedPlaceName("Cairo"))
		geo := &fakeGeocoder{err: errors.New("timeout")}
		r := NewResolver(store, &trackingPositioner{current: coords}, geo)

		loc, err := r.Resolve(context.Background(), true)
		require.NoError(t, err, "name lookup failures never abort resolution")
		assert.Equal(t, "Cairo", loc.Name)
	})

	t.Run("geocode failure with no cache uses the placeholder", func(t *testing.T) {
		store := db.NewMemStore()
		geo := &fakeGeocoder{err: errors.New("timeout")}
		r := NewResolver(store, &trackingPositioner{lastKnown: coords}, geo)

		loc, err := r.Resolve(context.Background(), false)
		require.NoError(t, err)
		assert.Equal(t, FallbackPlaceName, loc.Name)
	})
}

func TestEgyptCitiesCatalog(t *testing.T) {
	require.NotEmpty(t, EgyptCities)
	seen := make(map[string]bool)
	for _, c := range EgyptCities {
		assert.False(t, seen[c.NameEn], "duplicate city %q", c.NameEn)
		seen[c.NameEn] = true
		assert.NotEmpty(t, c.Name)
		assert.InDelta(t, 27, c.Lat, 7, "latitude within Egypt for %s", c.NameEn)
		assert.InDelta(t, 31, c.Lng, 7, "longitude within Egypt for %s", c.NameEn)
	}
	assert.True(t, seen["Cairo"], "the capital is in the catalog")
}
