// Package space provides the 2D proximity index the model uses to
// answer radius queries over agent positions, plus uniform sampling
// helpers for placement and movement.
package space

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/quadtree"
)

// Index answers radius queries against a snapshot of points. Rebuild
// replaces the snapshot wholesale; Within never observes a point added
// or moved after the last Rebuild.
type Index interface {
	Rebuild(points []orb.Pointer)
	Within(center orb.Point, radius float64) []orb.Pointer
}

// New returns the index backend for the given name. Unknown names fall
// back to the quadtree.
func New(backend string) Index {
	if backend == "linear" {
		return NewLinearIndex()
	}
	return NewQuadIndex()
}

// QuadIndex backs radius queries with a point quadtree. The tree bound
// is recomputed from the snapshot on every rebuild, so points are free
// to wander outside any initial region.
type QuadIndex struct {
	tree *quadtree.Quadtree
}

func NewQuadIndex() *QuadIndex { return &QuadIndex{} }

func (x *QuadIndex) Rebuild(points []orb.Pointer) {
	tree := quadtree.New(pointsBound(points))
	for _, p := range points {
		// The bound encloses every snapshot point, Add cannot fail.
		_ = tree.Add(p)
	}
	x.tree = tree
}

// Within returns every snapshot point with distance <= radius from
// center. A negative radius matches nothing. Calling Within before the
// first Rebuild is a programming error and panics.
func (x *QuadIndex) Within(center orb.Point, radius float64) []orb.Pointer {
	if x.tree == nil {
		panic("space: index queried before first rebuild")
	}
	if radius < 0 {
		return nil
	}
	box := orb.Bound{
		Min: orb.Point{center[0] - radius, center[1] - radius},
		Max: orb.Point{center[0] + radius, center[1] + radius},
	}
	hits := x.tree.InBound(nil, box)

	out := hits[:0]
	for _, h := range hits {
		if planar.Distance(h.Point(), center) <= radius {
			out = append(out, h)
		}
	}
	return out
}

// LinearIndex is the brute-force reference backend: a plain distance
// scan over the snapshot. Useful for tiny populations and as ground
// truth in tests.
type LinearIndex struct {
	points []orb.Pointer
	built  bool
}

func NewLinearIndex() *LinearIndex { return &LinearIndex{} }

func (x *LinearIndex) Rebuild(points []orb.Pointer) {
	x.points = append(x.points[:0], points...)
	x.built = true
}

func (x *LinearIndex) Within(center orb.Point, radius float64) []orb.Pointer {
	if !x.built {
		panic("space: index queried before first rebuild")
	}
	if radius < 0 {
		return nil
	}
	var out []orb.Pointer
	for _, p := range x.points {
		if planar.Distance(p.Point(), center) <= radius {
			out = append(out, p)
		}
	}
	return out
}

func pointsBound(points []orb.Pointer) orb.Bound {
	if len(points) == 0 {
		return orb.Bound{Min: orb.Point{-1, -1}, Max: orb.Point{1, 1}}
	}
	b := orb.Bound{Min: points[0].Point(), Max: points[0].Point()}
	for _, p := range points[1:] {
		b = b.Extend(p.Point())
	}
	// Degenerate bounds (all points identical or collinear) break the
	// quadtree's splitting, pad them out.
	return b.Pad(1)
}
