package geo

import "math"

const earthRadiusMeters = 6371000

// DistanceMeters возвращает расстояние по большому кругу (haversine) между двумя точками WGS84
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// PointInCircle - точка на самой окружности считается внутри
func PointInCircle(lat, lng, centerLat, centerLng, radiusMeters float64) bool {
	return DistanceMeters(lat, lng, centerLat, centerLng) <= radiusMeters
}

// PointInPolygon проверяет попадание точки [lng, lat] в полигон методом трассировки луча.
// Результат для точек на ребре не определен, но детерминирован. Полигон может быть
// как замкнутым, так и нет; меньше 3 вершин - всегда false.
func PointInPolygon(point [2]float64, polygon [][2]float64) bool {
	n := len(polygon)
	if n < 3 {
		return false
	}

	x, y := point[0], point[1]
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := polygon[i][0], polygon[i][1]
		xj, yj := polygon[j][0], polygon[j][1]
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
