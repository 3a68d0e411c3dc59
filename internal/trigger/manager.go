package trigger

import (
	"errors"
	"fmt"

	"github.com/julianstephens/doorcheck/internal/constants"
	"github.com/julianstephens/doorcheck/internal/geofence"
	"github.com/julianstephens/doorcheck/internal/models"
	"github.com/julianstephens/doorcheck/internal/storage"
)

// Manager reconciles the OS-facing registrations (background task, geofence
// region) with the persisted trigger settings.
type Manager struct {
	store     storage.Provider
	registrar Registrar
	geo       geofence.Service
}

func NewManager(store storage.Provider, registrar Registrar, geo geofence.Service) *Manager {
	return &Manager{store: store, registrar: registrar, geo: geo}
}

// Sync brings registrations in line with settings: the background departure
// check follows Enabled, the geofence region follows GeofenceEnabled plus a
// configured home coordinate. Safe to call repeatedly.
func (m *Manager) Sync() error {
	settings, err := storage.LoadTriggerSettings(m.store)
	if err != nil {
		return err
	}

	if settings.Enabled {
		err = m.registrar.Register(constants.DepartureTaskName, TaskOptions{
			MinInterval:     constants.MinBackgroundInterval,
			StartOnBoot:     true,
			StopOnTerminate: false,
		})
		if err != nil {
			return fmt.Errorf("failed to register departure check: %w", err)
		}
	} else {
		if err := m.registrar.Unregister(constants.DepartureTaskName); err != nil {
			return fmt.Errorf("failed to unregister departure check: %w", err)
		}
	}

	return m.syncGeofence(settings)
}

func (m *Manager) syncGeofence(settings models.TriggerSettings) error {
	if settings.Enabled && settings.GeofenceEnabled && settings.GeofenceConfigured() {
		region := geofence.Region{
			Latitude:     *settings.HomeLatitude,
			Longitude:    *settings.HomeLongitude,
			RadiusMeters: settings.HomeRadiusMeters,
		}
		if err := m.geo.Start(region); err != nil {
			return fmt.Errorf("failed to start geofence monitoring: %w", err)
		}
		return nil
	}

	if err := m.geo.Stop(); err != nil {
		return fmt.Errorf("failed to stop geofence monitoring: %w", err)
	}
	return nil
}

// Disable tears everything down. Both teardowns run regardless of the
// other's outcome so a failing geofence stop cannot leave the background
// task registered.
func (m *Manager) Disable() error {
	regErr := m.registrar.Unregister(constants.DepartureTaskName)
	if regErr != nil {
		regErr = fmt.Errorf("failed to unregister departure check: %w", regErr)
	}
	geoErr := m.geo.Stop()
	if geoErr != nil {
		geoErr = fmt.Errorf("failed to stop geofence monitoring: %w", geoErr)
	}
	return errors.Join(regErr, geoErr)
}
