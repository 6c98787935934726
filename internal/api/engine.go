package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/captian10/adhan-engine/internal/db"
	"github.com/captian10/adhan-engine/internal/delivery"
	"github.com/captian10/adhan-engine/internal/location"
	"github.com/captian10/adhan-engine/internal/model"
	"github.com/captian10/adhan-engine/internal/scheduler"
)

type EngineController struct {
	engine  *scheduler.Engine
	session *delivery.Session
	store   db.Store
}

func NewEngineController(engine *scheduler.Engine, session *delivery.Session, store db.Store) *EngineController {
	return &EngineController{engine: engine, session: session, store: store}
}

// RegisterEngineRoutes mounts the engine surface under the given group.
func RegisterEngineRoutes(r gin.IRoutes, ctl *EngineController) {
	r.POST("/refresh", ResolveEndpoint(ctl.refresh))
	r.GET("/status", ResolveEndpoint(ctl.status))
	r.POST("/stop", ResolveEndpoint(ctl.stop))

	r.PUT("/adhan/enabled", ResolveEndpoint(ctl.setAdhanEnabled))
	r.PUT("/adhan/sound", ResolveEndpoint(ctl.setAdhanSound))
	r.POST("/adhan/test", ResolveEndpoint(ctl.testAdhan))

	r.PUT("/salat/enabled", ResolveEndpoint(ctl.setSalatEnabled))
	r.PUT("/salat/interval", ResolveEndpoint(ctl.setSalatInterval))
	r.PUT("/salat/sound", ResolveEndpoint(ctl.setSalatSound))
	r.POST("/salat/refresh", ResolveEndpoint(ctl.refreshSalat))
	r.POST("/salat/test", ResolveEndpoint(ctl.testSalat))

	r.GET("/sounds", ResolveEndpoint(ctl.listSounds))
	r.GET("/location", ResolveEndpoint(ctl.getLocation))
	r.PUT("/location", ResolveEndpoint(ctl.setLocation))
	r.GET("/location/cities", ResolveEndpoint(ctl.listCities))
}

// engineError maps engine failures onto the API error taxonomy.
func engineError(err error) *APIError {
	switch {
	case errors.Is(err, scheduler.ErrAdhanDisabled), errors.Is(err, scheduler.ErrSalatDisabled):
		return &APIError{Code: http.StatusConflict, Message: err.Error()}
	case errors.Is(err, location.ErrPermissionDenied):
		return &APIError{Code: http.StatusForbidden, Message: err.Error()}
	case errors.Is(err, location.ErrNoFix):
		return &APIError{Code: http.StatusServiceUnavailable, Message: err.Error()}
	default:
		return &APIError{Code: http.StatusInternalServerError, Message: err.Error()}
	}
}

func (e *EngineController) refresh(ctx *gin.Context) (any, *APIError) {
	var request RefreshRequest
	if err := ctx.ShouldBindJSON(&request); err != nil && ctx.Request.ContentLength > 0 {
		return nil, &APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if request.DaysAhead == 0 {
		request.DaysAhead = scheduler.DefaultDaysAhead
	}

	result, err := e.engine.Refresh(ctx.Request.Context(), request.DaysAhead, request.ForceLocation)
	if err != nil {
		return nil, engineError(err)
	}
	return result, nil
}

func (e *EngineController) status(ctx *gin.Context) (any, *APIError) {
	adhanEnabled, err := e.engine.AdhanEnabled()
	if err != nil {
		return nil, engineError(err)
	}
	adhanSound, err := e.engine.AdhanSound()
	if err != nil {
		return nil, engineError(err)
	}
	salat, err := e.engine.SalatConfig()
	if err != nil {
		return nil, engineError(err)
	}
	pref, err := e.store.LocationPreference()
	if err != nil {
		return nil, engineError(err)
	}
	return StatusResponse{
		AdhanEnabled: adhanEnabled,
		AdhanSound:   adhanSound,
		Salat:        salat,
		Location:     pref,
	}, nil
}

func (e *EngineController) stop(ctx *gin.Context) (any, *APIError) {
	return StopResponse{Stopped: e.session.Stop()}, nil
}

func (e *EngineController) setAdhanEnabled(ctx *gin.Context) (any, *APIError) {
	var request ToggleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := e.engine.SetAdhanEnabled(*request.Enabled); err != nil {
		return nil, engineError(err)
	}
	return gin.H{"enabled": *request.Enabled}, nil
}

func (e *EngineController) setAdhanSound(ctx *gin.Context) (any, *APIError) {
	var request SoundRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := e.engine.SetAdhanSound(request.SoundID); err != nil {
		return nil, engineError(err)
	}
	return gin.H{"sound_id": request.SoundID}, nil
}

func (e *EngineController) testAdhan(ctx *gin.Context) (any, *APIError) {
	var request TestAlarmRequest
	if err := ctx.ShouldBindJSON(&request); err != nil && ctx.Request.ContentLength > 0 {
		return nil, &APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if request.Seconds <= 0 {
		request.Seconds = 5
	}
	id, err := e.engine.ScheduleTestAdhan(request.Seconds)
	if err != nil {
		return nil, engineError(err)
	}
	return TestAlarmResponse{ID: id}, nil
}

func (e *EngineController) setSalatEnabled(ctx *gin.Context) (any, *APIError) {
	var request ToggleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := e.engine.SetSalatEnabled(ctx.Request.Context(), *request.Enabled); err != nil {
		return nil, engineError(err)
	}
	return gin.H{"enabled": *request.Enabled}, nil
}

func (e *EngineController) setSalatInterval(ctx *gin.Context) (any, *APIError) {
	var request IntervalRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := e.engine.SetSalatInterval(ctx.Request.Context(), request.Minutes); err != nil {
		return nil, engineError(err)
	}
	minutes, err := e.engine.SalatInterval()
	if err != nil {
		return nil, engineError(err)
	}
	return gin.H{"minutes": minutes}, nil
}

func (e *EngineController) setSalatSound(ctx *gin.Context) (any, *APIError) {
	var request SoundRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := e.engine.SetSalatSound(request.SoundID); err != nil {
		return nil, engineError(err)
	}
	return gin.H{"sound_id": request.SoundID}, nil
}

func (e *EngineController) refreshSalat(ctx *gin.Context) (any, *APIError) {
	if err := e.engine.RefreshSalat(ctx.Request.Context()); err != nil {
		return nil, engineError(err)
	}
	return gin.H{"refreshed": true}, nil
}

func (e *EngineController) testSalat(ctx *gin.Context) (any, *APIError) {
	var request TestAlarmRequest
	if err := ctx.ShouldBindJSON(&request); err != nil && ctx.Request.ContentLength > 0 {
		return nil, &APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if request.Seconds <= 0 {
		request.Seconds = 5
	}
	id, err := e.engine.ScheduleTestSalat(request.Seconds)
	if err != nil {
		return nil, engineError(err)
	}
	return TestAlarmResponse{ID: id}, nil
}

func (e *EngineController) listSounds(ctx *gin.Context) (any, *APIError) {
	return delivery.Catalog, nil
}

func (e *EngineController) getLocation(ctx *gin.Context) (any, *APIError) {
	pref, err := e.store.LocationPreference()
	if err != nil {
		return nil, engineError(err)
	}
	return pref, nil
}

func (e *EngineController) setLocation(ctx *gin.Context) (any, *APIError) {
	var request LocationRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if request.Mode != model.LocationAuto && request.Mode != model.LocationManual {
		return nil, &APIError{Code: http.StatusBadRequest, Message: "mode must be auto or manual"}
	}
	if request.Mode == model.LocationManual && (request.Lat == nil || request.Lng == nil) {
		return nil, &APIError{Code: http.StatusBadRequest, Message: "manual mode requires lat and lng"}
	}
	pref := model.LocationPreference{
		Mode: request.Mode,
		Lat:  request.Lat,
		Lng:  request.Lng,
		Name: request.Name,
	}
	if err := e.store.SetLocationPreference(pref); err != nil {
		return nil, engineError(err)
	}
	return pref, nil
}

func (e *EngineController) listCities(ctx *gin.Context) (any, *APIError) {
	return location.EgyptCities, nil
}
