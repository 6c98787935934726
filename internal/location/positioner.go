package location

import (
	"context"

	"github.com/captian10/adhan-engine/internal/model"
)

// StaticPositioner serves a fixed device position, typically configured from
// the environment. A nil Coords means the host never granted a position:
// LastKnown stays empty and Current fails with ErrNoFix.
type StaticPositioner struct {
	Coords *model.Coordinates
}

var _ Positioner = (*StaticPositioner)(nil)

func (s *StaticPositioner) LastKnown(ctx context.Context) (*model.Coordinates, error) {
	return s.Coords, nil
}

func (s *StaticPositioner) Current(ctx context.Context) (*model.Coordinates, error) {
	if s.Coords == nil {
		return nil, ErrNoFix
	}
	return s.Coords, nil
}

// DeniedPositioner models a host that refused the location permission.
type DeniedPositioner struct{}

var _ Positioner = (*DeniedPositioner)(nil)

func (DeniedPositioner) LastKnown(ctx context.Context) (*model.Coordinates, error) {
	return nil, ErrPermissionDenied
}

func (DeniedPositioner) Current(ctx context.Context) (*model.Coordinates, error) {
	return nil, ErrPermissionDenied
}
