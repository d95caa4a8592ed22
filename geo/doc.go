// Package geo provides the coordinate primitives and geometric helpers shared
// by the graph, corridor, and search packages: WGS84 coordinates, haversine
// distance, bearing computation, Douglas-Peucker polyline simplification, and
// elevation-profile resampling.
//
// Everything here is pure and allocation-light. The only third-party
// dependencies are gonum.org/v1/gonum/stat for the small amount of
// descriptive statistics the elevation helpers need (grade standard
// deviation, hilliness index) and github.com/paulmach/orb for converting
// coordinates to and from orb.Point.
package geo
