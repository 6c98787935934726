// Package location turns the persisted location preference into coordinates
// plus a human-readable place name, caching what it can.
package location

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/captian10/adhan-engine/internal/db"
	"github.com/captian10/adhan-engine/internal/model"
	"github.com/captian10/adhan-engine/internal/redis"
)

var (
	// ErrPermissionDenied aborts the whole scheduling pipeline.
	ErrPermissionDenied = errors.New("location permission denied")
	// ErrNoFix means positioning produced no usable coordinates.
	ErrNoFix = errors.New("no position fix available")
)

const (
	// FallbackPlaceName is used when no name was ever resolved.
	FallbackPlaceName = "Current location"
	// PinnedPlaceName labels a manual preference saved without a name.
	PinnedPlaceName = "Pinned location"

	geocodeCacheTTL = 24 * time.Hour
)

// Positioner is the device positioning boundary. LastKnown returns nil with
// no error when no cached fix exists.
type Positioner interface {
	LastKnown(ctx context.Context) (*model.Coordinates, error)
	Current(ctx context.Context) (*model.Coordinates, error)
}

// Geocoder resolves a place name for coordinates.
type Geocoder interface {
	ReverseName(ctx context.Context, coords model.Coordinates) (string, error)
}

type Resolver struct {
	store db.Store
	pos   Positioner
	geo   Geocoder
}

func NewResolver(store db.Store, pos Positioner, geo Geocoder) *Resolver {
	return &Resolver{store: store, pos: pos, geo: geo}
}

// Resolve produces the coordinates and display name to plan against.
// Manual preferences are returned as pinned, without touching positioning
// hardware. In auto mode a last-known fix is preferred unless forceFresh is
// set. Reverse-geocode failures are non-fatal; permission denial is.
func (r *Resolver) Resolve(ctx context.Context, forceFresh bool) (model.ResolvedLocation, error) {
	pref, err := r.store.LocationPreference()
	if err != nil {
		return model.ResolvedLocation{}, err
	}

	if pref.Mode == model.LocationManual {
		if pref.Lat == nil || pref.Lng == nil {
			return model.ResolvedLocation{}, fmt.Errorf("manual location preference has no coordinates")
		}
		name := pref.Name
		if name == "" {
			name = PinnedPlaceName
		}
		return model.ResolvedLocation{
			Coords: model.Coordinates{Lat: *pref.Lat, Lng: *pref.Lng},
			Name:   name,
		}, nil
	}

	coords, err := r.fix(ctx, forceFresh)
	if err != nil {
		return model.ResolvedLocation{}, err
	}

	name := r.placeName(ctx, *coords, forceFresh)
	return model.ResolvedLocation{Coords: *coords, Name: name}, nil
}

func (r *Resolver) fix(ctx context.Context, forceFresh bool) (*model.Coordinates, error) {
	if !forceFresh {
		coords, err := r.pos.LastKnown(ctx)
		if err != nil {
			return nil, err
		}
		if coords != nil {
			return coords, nil
		}
	}
	return r.pos.Current(ctx)
}

// placeName reverse-geocodes only when no cached name exists or a fresh fix
// was forced; any lookup failure falls back to the cached name, then the
// generic placeholder.
func (r *Resolver) placeName(ctx context.Context, coords model.Coordinates, forceFresh bool) string {
	cached, err := r.store.CachedPlaceName()
	if err != nil {
		log.Error().Err(err).Msg("failed to read cached place name")
	}
	if cached != "" && !forceFresh {
		return cached
	}

	key := geocodeCacheKey(coords)
	if name, ok := redis.Get(ctx, key); ok && name != "" {
		r.rememberName(name)
		return name
	}

	name, err := r.geo.ReverseName(ctx, coords)
	if err != nil || name == "" {
		log.Warn().Err(err).
			Float64("lat", coords.Lat).
			Float64("lng", coords.Lng).
			Msg("reverse geocode failed, using cached name")
		if cached != "" {
			return cached
		}
		return FallbackPlaceName
	}

	redis.Set(ctx, key, name, geocodeCacheTTL)
	r.rememberName(name)
	return name
}

func (r *Resolver) rememberName(name string) {
	if err := r.store.SetCachedPlaceName(name); err != nil {
		log.Error().Err(err).Msg("failed to persist place name")
	}
}

func geocodeCacheKey(coords model.Coordinates) string {
	return fmt.Sprintf("geocode:%.3f,%.3f", coords.Lat, coords.Lng)
}
