package entity

import "github.com/younwookim/kinebody/internal/domain/vec"

// Collider is a tile collision candidate reported by a Prober
type Collider struct {
	Tile Tile
	Axis vec.Axis
}

// Prober looks up the tiles a moving hitbox would touch.
// Results are in probe order; callers must not assume nearest-first.
type Prober interface {
	Query(center, size, velocity vec.Vector2) []Collider
}

// Probe queries p, treating a missing world as unconstrained movement
func Probe(p Prober, center, size, velocity vec.Vector2) []Collider {
	if p == nil {
		return nil
	}
	return p.Query(center, size, velocity)
}

type colliderKey struct {
	x, y int
	axis vec.Axis
}

// Query implements Prober over the tile grid.
// The hitbox is swept along X then along Y independently; every non-empty tile the swept
// rectangle overlaps is reported on that axis. Ladders under the unmoved hitbox are reported
// on the Y axis so climbing works while standing still on one axis.
func (s *Stage) Query(center, size, velocity vec.Vector2) []Collider {
	if s == nil {
		return nil
	}

	var out []Collider
	seen := make(map[colliderKey]struct{})
	add := func(t Tile, axis vec.Axis) {
		key := colliderKey{t.X, t.Y, axis}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, Collider{Tile: t, Axis: axis})
	}

	if velocity.X != 0 {
		s.EachTile(center.Add(vec.New(velocity.X, 0)), size, func(t Tile) {
			if t.Type != TileEmpty {
				add(t, vec.AxisX)
			}
		})
	}
	if velocity.Y != 0 {
		s.EachTile(center.Add(vec.New(0, velocity.Y)), size, func(t Tile) {
			if t.Type != TileEmpty {
				add(t, vec.AxisY)
			}
		})
	}
	s.EachTile(center, size, func(t Tile) {
		if t.Type == TileLadder {
			add(t, vec.AxisY)
		}
	})

	return out
}
