package wkt

import "iter"

// Handler receives nodes from Traverse.
type Handler interface {
	Handle(n Node)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(n Node)

// Handle calls f(n).
func (f HandlerFunc) Handle(n Node) { f(n) }

// Traverse visits every node reachable from n in post-order: each non-nil
// child in field order, then n itself. A nil n is not visited.
func Traverse(n Node, h Handler) {
	walk(n, func(n Node) bool {
		h.Handle(n)
		return true
	})
}

// All returns an iterator over the nodes reachable from n in the same
// order as Traverse.
func All(n Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		walk(n, yield)
	}
}

// Children returns the direct non-nil children of n in field order.
func Children(n Node) []Node {
	var out []Node
	eachChild(n, func(c Node) bool {
		out = append(out, c)
		return true
	})
	return out
}

func walk(n Node, visit func(Node) bool) bool {
	if IsNil(n) {
		return true
	}
	if !eachChild(n, func(c Node) bool { return walk(c, visit) }) {
		return false
	}
	return visit(n)
}

// eachChild calls fn for each non-nil child of n until fn returns false.
func eachChild(n Node, fn func(Node) bool) bool {
	switch n := n.(type) {
	case *Unit:
		return child(fn, n.Authority)
	case *Ellipsoid:
		return child(fn, n.Authority)
	case *PrimeMeridian:
		return child(fn, n.Authority)
	case *Datum:
		return child(fn, n.Ellipsoid) && child(fn, n.ToWgs84) && child(fn, n.Authority)
	case *Projection:
		return child(fn, n.Authority)
	case *GeographicCS:
		return child(fn, n.Datum) && child(fn, n.PrimeMeridian) && child(fn, n.Unit) &&
			children(fn, n.Axes) && child(fn, n.Authority)
	case *GeocentricCS:
		return child(fn, n.Datum) && child(fn, n.PrimeMeridian) && child(fn, n.Unit) &&
			children(fn, n.Axes) && child(fn, n.Authority)
	case *ProjectedCS:
		return child(fn, n.GeographicCS) && child(fn, n.Projection) &&
			children(fn, n.Parameters) && child(fn, n.Unit) && children(fn, n.Axes) &&
			child(fn, n.Extension) && child(fn, n.Authority)
	case *ParamMT:
		return children(fn, n.Parameters)
	case *FittedCS:
		return child(fn, n.ToBase) && child(fn, n.Base) && child(fn, n.Authority)
	}
	return true
}

func child[T Node](fn func(Node) bool, c T) bool {
	if IsNil(c) {
		return true
	}
	return fn(c)
}

func children[T Node](fn func(Node) bool, cs []T) bool {
	for _, c := range cs {
		if !child(fn, c) {
			return false
		}
	}
	return true
}

// IsNil reports whether n is nil or a typed nil pointer.
func IsNil(n Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *Authority:
		return n == nil
	case *Axis:
		return n == nil
	case *Unit:
		return n == nil
	case *Ellipsoid:
		return n == nil
	case *PrimeMeridian:
		return n == nil
	case *ToWgs84:
		return n == nil
	case *Datum:
		return n == nil
	case *Projection:
		return n == nil
	case *Parameter:
		return n == nil
	case *Extension:
		return n == nil
	case *GeographicCS:
		return n == nil
	case *GeocentricCS:
		return n == nil
	case *ProjectedCS:
		return n == nil
	case *ParamMT:
		return n == nil
	case *FittedCS:
		return n == nil
	}
	return false
}
