package model

import "time"

// Restaurant is a mappable kebab place. The collection is global — any
// authenticated session can create one from a map click, and every session
// sees the full list. Restaurants are not scoped to an account.
type Restaurant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	CreatedAt time.Time `json:"createdAt"`
}

// Marker is the shape the map-rendering widget consumes: an id, a
// [lat, lng] coordinate pair and a display label. The core never computes
// geometry itself — it only feeds markers to the widget.
type Marker struct {
	ID         string     `json:"id"`
	Coordinate [2]float64 `json:"coordinate"`
	Label      string     `json:"label"`
}

// Marker converts the restaurant to its widget representation.
func (r Restaurant) Marker() Marker {
	return Marker{
		ID:         r.ID,
		Coordinate: [2]float64{r.Lat, r.Lng},
		Label:      r.Name,
	}
}
