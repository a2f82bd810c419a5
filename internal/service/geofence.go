package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shenikar/safezone_tracking/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=geofence.go -destination=mocks/geofence_mock.go -package=mocks

// GeofenceRepository определяет контракт для работы с бд и кэшем геозон
type GeofenceRepository interface {
	Create(ctx context.Context, g *models.Geofence) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Geofence, error)
	Update(ctx context.Context, g *models.Geofence) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByGroup(ctx context.Context, groupID uuid.UUID, page, pageSize int) ([]*models.Geofence, error)
	ListActiveByGroup(ctx context.Context, groupID uuid.UUID) ([]*models.Geofence, error)

	GetGeofenceFromCache(ctx context.Context, id uuid.UUID) (*models.Geofence, error)
	SetGeofenceCache(ctx context.Context, g *models.Geofence) error
	InvalidateGeofenceCache(ctx context.Context, id uuid.UUID) error
	GetActiveFromCache(ctx context.Context, groupID uuid.UUID) ([]*models.Geofence, bool, error)
	SetActiveCache(ctx context.Context, groupID uuid.UUID, geofences []*models.Geofence) error
	InvalidateActiveCache(ctx context.Context, groupID uuid.UUID) error
}

// GeofenceService определяет контракт бизнес-логики управления геозонами
type GeofenceService interface {
	CreateGeofence(ctx context.Context, g *models.Geofence) error
	GetGeofence(ctx context.Context, id uuid.UUID) (*models.Geofence, error)
	UpdateGeofence(ctx context.Context, g *models.Geofence) error
	DeactivateGeofence(ctx context.Context, id uuid.UUID) error
	ListGeofences(ctx context.Context, groupID uuid.UUID, page, pageSize int) ([]*models.Geofence, error)
	ActiveGeofences(ctx context.Context, groupID uuid.UUID) ([]*models.Geofence, error)
}

type geofenceService struct {
	repo   GeofenceRepository
	logger *logrus.Logger
}

func NewGeofenceService(repo GeofenceRepository, logger *logrus.Logger) GeofenceService {
	return &geofenceService{
		repo:   repo,
		logger: logger,
	}
}

// CreateGeofence создает активную геозону
func (s *geofenceService) CreateGeofence(ctx context.Context, g *models.Geofence) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "geofence",
		"method":   "CreateGeofence",
		"group_id": g.GroupID,
		"name":     g.Name,
	})
	log.Info("Attempting to create a new geofence")

	if err := g.Validate(); err != nil {
		log.WithError(err).Warn("Rejected geofence with invalid geometry")
		return fmt.Errorf("service: %w", err)
	}

	g.Active = true
	if err := s.repo.Create(ctx, g); err != nil {
		log.WithError(err).Error("Failed to create geofence in repository")
		return fmt.Errorf("service: could not create geofence: %w", err)
	}
	s.invalidateActive(ctx, log, g.GroupID)

	log.WithField("geofence_id", g.ID).Info("Geofence created successfully")
	return nil
}

// GetGeofence получает геозону по ID, сначала из кэша
func (s *geofenceService) GetGeofence(ctx context.Context, id uuid.UUID) (*models.Geofence, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "geofence",
		"method":      "GetGeofence",
		"geofence_id": id,
	})

	cached, err := s.repo.GetGeofenceFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read geofence from cache")
	}
	if cached != nil {
		log.Debug("Geofence served from cache")
		return cached, nil
	}

	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to get geofence in repository")
		return nil, fmt.Errorf("service: could not get geofence: %w", err)
	}
	if err := s.repo.SetGeofenceCache(ctx, g); err != nil {
		log.WithError(err).Warn("Failed to cache geofence")
	}
	return g, nil
}

// UpdateGeofence обновляет существующую геозону
func (s *geofenceService) UpdateGeofence(ctx context.Context, g *models.Geofence) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "geofence",
		"method":      "UpdateGeofence",
		"geofence_id": g.ID,
	})
	log.Info("Attempting to update geofence")

	if err := g.Validate(); err != nil {
		log.WithError(err).Warn("Rejected geofence with invalid geometry")
		return fmt.Errorf("service: %w", err)
	}

	existing, err := s.repo.GetByID(ctx, g.ID)
	if err != nil {
		log.WithError(err).Warn("Attempted to update a non-existent geofence")
		return fmt.Errorf("service: geofence with id %s not found for update: %w", g.ID, err)
	}

	// группа и признак активности при обновлении не меняются
	g.GroupID = existing.GroupID
	g.Active = existing.Active
	if err := s.repo.Update(ctx, g); err != nil {
		log.WithError(err).Error("Failed to update geofence in repository")
		return fmt.Errorf("service: could not update geofence: %w", err)
	}
	s.invalidate(ctx, log, g.ID, existing.GroupID)

	log.Info("Geofence updated successfully")
	return nil
}

// DeactivateGeofence деактивирует геозону
func (s *geofenceService) DeactivateGeofence(ctx context.Context, id uuid.UUID) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "geofence",
		"method":      "DeactivateGeofence",
		"geofence_id": id,
	})
	log.Info("Attempting to deactivate geofence")

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Attempted to deactivate a non-existent geofence")
		return fmt.Errorf("service: geofence with id %s not found for deactivate: %w", id, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.WithError(err).Error("Failed to deactivate geofence in repository")
		return fmt.Errorf("service: could not deactivate geofence: %w", err)
	}
	s.invalidate(ctx, log, id, existing.GroupID)

	log.Info("Geofence deactivated successfully")
	return nil
}

// ListGeofences возвращает геозоны группы с пагинацией
func (s *geofenceService) ListGeofences(ctx context.Context, groupID uuid.UUID, page, pageSize int) ([]*models.Geofence, error) {
	if page < 1 {
		page = 1
	}

	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":   "geofence",
		"method":    "ListGeofences",
		"group_id":  groupID,
		"page":      page,
		"page_size": pageSize,
	})

	geofences, err := s.repo.ListByGroup(ctx, groupID, page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list geofences from repository")
		return nil, fmt.Errorf("service: could not list geofences: %w", err)
	}

	log.WithField("count", len(geofences)).Debug("Geofences listed successfully")
	return geofences, nil
}

// ActiveGeofences возвращает активные геозоны группы для вычислителя; вызывается на каждую точку
func (s *geofenceService) ActiveGeofences(ctx context.Context, groupID uuid.UUID) ([]*models.Geofence, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "geofence",
		"method":   "ActiveGeofences",
		"group_id": groupID,
	})

	cached, found, err := s.repo.GetActiveFromCache(ctx, groupID)
	if err != nil {
		log.WithError(err).Warn("Failed to read active geofences from cache")
	}
	if found {
		return cached, nil
	}

	geofences, err := s.repo.ListActiveByGroup(ctx, groupID)
	if err != nil {
		log.WithError(err).Error("Failed to list active geofences from repository")
		return nil, fmt.Errorf("service: could not list active geofences: %w", err)
	}
	if err := s.repo.SetActiveCache(ctx, groupID, geofences); err != nil {
		log.WithError(err).Warn("Failed to cache active geofences")
	}
	return geofences, nil
}

func (s *geofenceService) invalidate(ctx context.Context, log *logrus.Entry, id, groupID uuid.UUID) {
	if err := s.repo.InvalidateGeofenceCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate geofence cache")
	}
	s.invalidateActive(ctx, log, groupID)
}

func (s *geofenceService) invalidateActive(ctx context.Context, log *logrus.Entry, groupID uuid.UUID) {
	if err := s.repo.InvalidateActiveCache(ctx, groupID); err != nil {
		log.WithError(err).Warn("Failed to invalidate active geofences cache")
	}
}
