package geofence

import (
	"github.com/shenikar/safezone_tracking/internal/geo"
	"github.com/shenikar/safezone_tracking/internal/models"
)

// Evaluate проверяет показание против всех активных геозон группы.
// Кандидат возвращается для каждой активной геозоны с пригодной геометрией,
// в порядке входного списка; фильтрация по настройкам уведомлений - дело диспетчера.
// При пересечении опасных зон побеждает первая по списку.
func Evaluate(sample models.LocationSample, geofences []*models.Geofence) []models.ViolationCandidate {
	candidates := make([]models.ViolationCandidate, 0, len(geofences))
	for _, g := range geofences {
		if g == nil || !g.Active || g.Validate() != nil {
			continue
		}

		candidate := models.ViolationCandidate{
			GeofenceID: g.ID,
			IsOutside:  isOutside(sample, g),
		}
		if zone, ok := matchDangerZone(sample, g.DangerZones); ok {
			candidate.InDangerZone = true
			candidate.DangerZoneType = zone.Label()
		}
		candidates = append(candidates, candidate)
	}
	return candidates
}

func isOutside(sample models.LocationSample, g *models.Geofence) bool {
	if g.BoundaryType == models.BoundaryCircle {
		// строгое неравенство: точка ровно на радиусе не нарушение
		return geo.DistanceMeters(sample.Latitude, sample.Longitude, g.Center.Lat, g.Center.Lng) > g.RadiusMeters
	}
	return !geo.PointInPolygon([2]float64{sample.Longitude, sample.Latitude}, g.PolygonCoordinates)
}

func matchDangerZone(sample models.LocationSample, zones []models.DangerZone) (models.DangerZone, bool) {
	point := [2]float64{sample.Longitude, sample.Latitude}
	for _, zone := range zones {
		if geo.PointInPolygon(point, zone.Coordinates) {
			return zone, true
		}
	}
	return models.DangerZone{}, false
}
