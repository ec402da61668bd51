package services

import (
	"github.com/Aliaga23/SIG-Backend/internal/core/domain/model/kernel"
)

// Waypoint pairs an entity's identifier with its destination coordinates.
// Point may be nil when the entity's coordinates are missing or unparsable.
type Waypoint struct {
	Key   kernel.UUID
	Point *kernel.GeoPoint
}

// HasValidPoint reports whether the waypoint can participate in distance
// comparisons.
func (w Waypoint) HasValidPoint() bool {
	return w.Point != nil && w.Point.Validate() == nil
}

// Sequencer is a domain service producing a visiting order over waypoints
// using the nearest-neighbor heuristic: repeatedly pick the closest
// remaining destination and advance to it.
//
// Business rules:
//   - Ties break by encounter order: under strict less-than comparison the
//     first waypoint in the original enumeration wins
//   - Waypoints without valid coordinates go to the tail of the output, in
//     their original relative order, after every routable waypoint
//   - The output is a permutation of the input
//
// This is a greedy heuristic, not a shortest-Hamiltonian-path solution. It
// serves both initial route construction and re-optimization of the
// remaining stops after each completed delivery.
type Sequencer struct{}

// NewSequencer creates a new Sequencer instance.
func NewSequencer() Sequencer {
	return Sequencer{}
}

// Sequence orders the waypoints by repeated nearest-neighbor selection from
// the given start point. The start point must be a constructed GeoPoint.
func (s Sequencer) Sequence(start kernel.GeoPoint, waypoints []Waypoint) ([]Waypoint, error) {
	if err := start.Validate(); err != nil {
		return nil, err
	}

	routable := make([]Waypoint, 0, len(waypoints))
	tail := make([]Waypoint, 0)
	for _, wp := range waypoints {
		if wp.HasValidPoint() {
			routable = append(routable, wp)
		} else {
			tail = append(tail, wp)
		}
	}

	sequenced := make([]Waypoint, 0, len(waypoints))
	current := start

	for len(routable) > 0 {
		bestIdx := -1
		bestDistance := 0.0

		for i, wp := range routable {
			distance, err := current.DistanceKm(*wp.Point)
			if err != nil {
				return nil, err
			}

			if bestIdx == -1 || distance < bestDistance {
				bestIdx = i
				bestDistance = distance
			}
		}

		next := routable[bestIdx]
		sequenced = append(sequenced, next)
		current = *next.Point
		routable = append(routable[:bestIdx], routable[bestIdx+1:]...)
	}

	return append(sequenced, tail...), nil
}
