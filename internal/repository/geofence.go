package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/safezone_tracking/internal/models"
	"github.com/shenikar/safezone_tracking/internal/service"
)

const geofenceColumns = `
	id,
	group_id,
	name,
	boundary_type,
	center_lat,
	center_lng,
	radius_meters,
	polygon_coordinates,
	danger_zones,
	notification_settings,
	active,
	created_at,
	updated_at`

type GeofenceRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewGeofenceRepository(db *pgxpool.Pool, redisClient *redis.Client, cacheTTL time.Duration) service.GeofenceRepository {
	return &GeofenceRepository{
		db:          db,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

// geofenceRow - геозона в том виде, в котором она лежит в таблице
type geofenceRow struct {
	models.Geofence
	centerLat, centerLng *float64
	radius               *float64
	polygon, zones       []byte
	settings             []byte
}

func (r *geofenceRow) dest() []any {
	return []any{
		&r.ID,
		&r.GroupID,
		&r.Name,
		&r.BoundaryType,
		&r.centerLat,
		&r.centerLng,
		&r.radius,
		&r.polygon,
		&r.zones,
		&r.settings,
		&r.Active,
		&r.CreatedAt,
		&r.UpdatedAt,
	}
}

// model собирает доменную модель. Поврежденные JSON-поля не роняют чтение:
// такая геозона либо получает настройки по умолчанию, либо отбрасывается вычислителем.
func (r *geofenceRow) model() *models.Geofence {
	g := r.Geofence
	if r.centerLat != nil && r.centerLng != nil {
		g.Center = &models.LatLng{Lat: *r.centerLat, Lng: *r.centerLng}
	}
	if r.radius != nil {
		g.RadiusMeters = *r.radius
	}
	if len(r.polygon) > 0 {
		_ = json.Unmarshal(r.polygon, &g.PolygonCoordinates)
	}
	if len(r.zones) > 0 {
		_ = json.Unmarshal(r.zones, &g.DangerZones)
	}
	g.NotificationSettings = models.DecodeNotificationSettings(r.settings)
	return &g
}

func geofenceArgs(g *models.Geofence) ([]any, error) {
	var centerLat, centerLng, radius *float64
	if g.Center != nil {
		centerLat, centerLng = &g.Center.Lat, &g.Center.Lng
	}
	if g.BoundaryType == models.BoundaryCircle {
		radius = &g.RadiusMeters
	}

	var polygon, settings []byte
	var err error
	if len(g.PolygonCoordinates) > 0 {
		if polygon, err = json.Marshal(g.PolygonCoordinates); err != nil {
			return nil, fmt.Errorf("failed to marshal polygon: %w", err)
		}
	}
	zones := g.DangerZones
	if zones == nil {
		zones = []models.DangerZone{}
	}
	zonesJSON, err := json.Marshal(zones)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal danger zones: %w", err)
	}
	if g.NotificationSettings != nil {
		if settings, err = json.Marshal(g.NotificationSettings); err != nil {
			return nil, fmt.Errorf("failed to marshal notification settings: %w", err)
		}
	}
	return []any{g.GroupID, g.Name, g.BoundaryType, centerLat, centerLng, radius, polygon, zonesJSON, settings, g.Active}, nil
}

// Create создает новую геозону в бд
func (r *GeofenceRepository) Create(ctx context.Context, g *models.Geofence) error {
	args, err := geofenceArgs(g)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO geofences (group_id, name, boundary_type, center_lat, center_lng, radius_meters,
			polygon_coordinates, danger_zones, notification_settings, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at;
	`
	if err := r.db.QueryRow(ctx, query, args...).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create geofence: %w", err)
	}
	return nil
}

// GetByID возвращает геозону по её UUID
func (r *GeofenceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Geofence, error) {
	query := `SELECT` + geofenceColumns + ` FROM geofences WHERE id = $1;`
	var row geofenceRow
	if err := r.db.QueryRow(ctx, query, id).Scan(row.dest()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("geofence with id %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get geofence by id: %w", err)
	}
	return row.model(), nil
}

func (r *GeofenceRepository) Update(ctx context.Context, g *models.Geofence) error {
	args, err := geofenceArgs(g)
	if err != nil {
		return err
	}
	query := `
		UPDATE geofences SET
			group_id = $1,
			name = $2,
			boundary_type = $3,
			center_lat = $4,
			center_lng = $5,
			radius_meters = $6,
			polygon_coordinates = $7,
			danger_zones = $8,
			notification_settings = $9,
			active = $10,
			updated_at = NOW()
		WHERE id = $11;
	`
	cmdTag, err := r.db.Exec(ctx, query, append(args, g.ID)...)
	if err != nil {
		return fmt.Errorf("failed to update geofence: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("geofence with id %s for update: %w", g.ID, models.ErrNotFound)
	}
	return nil
}

// Delete(деактивация) выключает геозону, история оповещений на неё сохраняется
func (r *GeofenceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE geofences SET active = FALSE, updated_at = NOW() WHERE id = $1;`
	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate geofence: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("geofence with id %s for deactivate: %w", id, models.ErrNotFound)
	}
	return nil
}

// ListByGroup возвращает геозоны группы с пагинацией
func (r *GeofenceRepository) ListByGroup(ctx context.Context, groupID uuid.UUID, page, pageSize int) ([]*models.Geofence, error) {
	offset := (page - 1) * pageSize
	query := `SELECT` + geofenceColumns + `
		FROM geofences
		WHERE group_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;`
	return r.query(ctx, query, groupID, pageSize, offset)
}

// ListActiveByGroup возвращает активные геозоны группы в порядке создания
func (r *GeofenceRepository) ListActiveByGroup(ctx context.Context, groupID uuid.UUID) ([]*models.Geofence, error) {
	query := `SELECT` + geofenceColumns + `
		FROM geofences
		WHERE group_id = $1 AND active
		ORDER BY created_at, id;`
	return r.query(ctx, query, groupID)
}

func (r *GeofenceRepository) query(ctx context.Context, query string, args ...any) ([]*models.Geofence, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list geofences: %w", err)
	}
	defer rows.Close()

	geofences := make([]*models.Geofence, 0)
	for rows.Next() {
		var row geofenceRow
		if err := rows.Scan(row.dest()...); err != nil {
			return nil, fmt.Errorf("failed to scan geofence row: %w", err)
		}
		geofences = append(geofences, row.model())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return geofences, nil
}

func geofenceCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("geofence:%s", id)
}

func activeGeofencesCacheKey(groupID uuid.UUID) string {
	return fmt.Sprintf("geofences:active:%s", groupID)
}

// GetGeofenceFromCache пытается получить геозону из Redis, nil при промахе
func (r *GeofenceRepository) GetGeofenceFromCache(ctx context.Context, id uuid.UUID) (*models.Geofence, error) {
	val, err := r.redisClient.Get(ctx, geofenceCacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get geofence from cache: %w", err)
	}

	g := &models.Geofence{}
	if err := json.Unmarshal(val, g); err != nil {
		return nil, fmt.Errorf("failed to unmarshal geofence from cache: %w", err)
	}
	return g, nil
}

// SetGeofenceCache сохраняет геозону в Redis
func (r *GeofenceRepository) SetGeofenceCache(ctx context.Context, g *models.Geofence) error {
	val, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to marshal geofence for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, geofenceCacheKey(g.ID), val, r.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set geofence in cache: %w", err)
	}
	return nil
}

// InvalidateGeofenceCache удаляет геозону из Redis кэша
func (r *GeofenceRepository) InvalidateGeofenceCache(ctx context.Context, id uuid.UUID) error {
	if err := r.redisClient.Del(ctx, geofenceCacheKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate geofence cache: %w", err)
	}
	return nil
}

// GetActiveFromCache возвращает закэшированный список активных геозон группы
func (r *GeofenceRepository) GetActiveFromCache(ctx context.Context, groupID uuid.UUID) ([]*models.Geofence, bool, error) {
	val, err := r.redisClient.Get(ctx, activeGeofencesCacheKey(groupID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get active geofences from cache: %w", err)
	}

	var geofences []*models.Geofence
	if err := json.Unmarshal(val, &geofences); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal active geofences from cache: %w", err)
	}
	return geofences, true, nil
}

func (r *GeofenceRepository) SetActiveCache(ctx context.Context, groupID uuid.UUID, geofences []*models.Geofence) error {
	val, err := json.Marshal(geofences)
	if err != nil {
		return fmt.Errorf("failed to marshal active geofences for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, activeGeofencesCacheKey(groupID), val, r.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set active geofences in cache: %w", err)
	}
	return nil
}

func (r *GeofenceRepository) InvalidateActiveCache(ctx context.Context, groupID uuid.UUID) error {
	if err := r.redisClient.Del(ctx, activeGeofencesCacheKey(groupID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate active geofences cache: %w", err)
	}
	return nil
}
