package dto

import "github.com/Wonderlux-Labs/glitchcube-sub002/internal/domain"

type CoordinateResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type AddressResponse struct {
	Clock   string `json:"clock"`
	Ring    string `json:"ring"`
	Display string `json:"display"`
}

type LandmarkResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

type ReportResponse struct {
	Coordinate        CoordinateResponse `json:"coordinate"`
	Address           AddressResponse    `json:"address"`
	InsidePerimeter   bool               `json:"inside_perimeter"`
	OutOfArea         bool               `json:"out_of_area,omitempty"`
	NearestLandmark   *LandmarkResponse  `json:"nearest_landmark,omitempty"`
	DistanceToNearest float64            `json:"distance_to_nearest_miles,omitempty"`
	LandmarksInRadius []LandmarkResponse `json:"landmarks_in_radius"`
}

type LandmarksResponse struct {
	Count     int                `json:"count"`
	Landmarks []LandmarkResponse `json:"landmarks"`
}

func FromLandmark(lm domain.Landmark) LandmarkResponse {
	return LandmarkResponse{
		ID:       lm.ID,
		Name:     lm.Name,
		Category: lm.Category,
		Lat:      lm.Location.Lat,
		Lon:      lm.Location.Lon,
	}
}

func FromAddress(a domain.BrcAddress) AddressResponse {
	return AddressResponse{
		Clock:   string(a.Clock),
		Ring:    string(a.Ring),
		Display: a.String(),
	}
}

func FromReport(r domain.ProximityReport) ReportResponse {
	resp := ReportResponse{
		Coordinate:        CoordinateResponse{Lat: r.Coordinate.Lat, Lon: r.Coordinate.Lon},
		Address:           FromAddress(r.Address),
		InsidePerimeter:   r.InsidePerimeter,
		OutOfArea:         r.OutOfArea,
		DistanceToNearest: r.DistanceToNearest,
		LandmarksInRadius: make([]LandmarkResponse, 0, len(r.LandmarksInRadius)),
	}
	if r.NearestLandmark != nil {
		lm := FromLandmark(*r.NearestLandmark)
		resp.NearestLandmark = &lm
	}
	for _, lm := range r.LandmarksInRadius {
		resp.LandmarksInRadius = append(resp.LandmarksInRadius, FromLandmark(lm))
	}
	return resp
}
