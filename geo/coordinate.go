package geo

import "github.com/paulmach/orb"

// Coordinate is a WGS84 geographic point in decimal degrees.
//
// Equality is an exact float compare, per the data model: two Coordinates
// produced from the same source data (e.g. shared OSM node) are expected to
// compare equal bit-for-bit.
type Coordinate struct {
	Lat float64
	Lng float64
}

// Equal reports exact bit-for-bit equality between two Coordinates.
func (c Coordinate) Equal(o Coordinate) bool {
	return c.Lat == o.Lat && c.Lng == o.Lng
}

// Point converts c to an orb.Point ([lng, lat] order, orb's convention) for
// interop with paulmach/orb and paulmach/osm at the ingest boundary.
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Lng, c.Lat}
}

// FromPoint builds a Coordinate from an orb.Point.
func FromPoint(p orb.Point) Coordinate {
	return Coordinate{Lat: p.Lat(), Lng: p.Lon()}
}
