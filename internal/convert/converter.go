package convert

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golangsnmp/gocrs/crs"
	"github.com/golangsnmp/gocrs/internal/types"
	"github.com/golangsnmp/gocrs/wkt"
)

var (
	// ErrForeignNode is returned by FindOrCreate for a node that is not
	// part of the tree the Converter was created for.
	ErrForeignNode = errors.New("node is not part of the converted tree")
	// ErrNotCoordinateSystem is returned by Convert when the root is not
	// one of the four coordinate system kinds.
	ErrNotCoordinateSystem = errors.New("not a coordinate system")
)

// Converter resolves the nodes of one tree into domain objects. Each node
// is resolved at most once; later requests return the same object.
//
// A Converter belongs to a single conversion and must not be shared
// between goroutines.
type Converter struct {
	assembler
	index map[wkt.Node]int
	nodes []wkt.Node
	slots []any
	// roles is the unit role implied by each node's parent.
	roles []wkt.UnitKind
	// context links a node to a sibling that qualifies it: the angular
	// unit of a PRIMEM's GEOGCS, or -1.
	context []int
	// params holds the parameters declared alongside each PROJECTION.
	params map[int][]*wkt.Parameter
	// recast holds units built for a parent whose role differs from the
	// role recorded for the unit's slot.
	recast  map[unitUse]any
	created int
	types.Logger
}

// New traverses root and prepares a Converter for it.
// Pass nil for logger to disable logging.
func New(root wkt.Node, factory crs.Factory, logger *slog.Logger) *Converter {
	c := &Converter{
		assembler: assembler{factory: factory},
		index:     make(map[wkt.Node]int),
		params:    make(map[int][]*wkt.Parameter),
		recast:    make(map[unitUse]any),
		Logger:    types.Logger{L: logger},
	}
	wkt.Traverse(root, wkt.HandlerFunc(c.visit))
	c.Log(slog.LevelDebug, "conversion table built", slog.Int("nodes", len(c.nodes)))
	return c
}

// Convert resolves root into a coordinate system.
func Convert(root wkt.Node, factory crs.Factory, logger *slog.Logger) (crs.CoordinateSystem, error) {
	if _, ok := root.(wkt.CoordinateSystem); !ok || wkt.IsNil(root) {
		return nil, fmt.Errorf("%T: %w", root, ErrNotCoordinateSystem)
	}
	c := New(root, factory, logger)
	obj, err := c.FindOrCreate(root)
	if err != nil {
		return nil, err
	}
	cs, ok := obj.(crs.CoordinateSystem)
	if !ok {
		return nil, fmt.Errorf("%T: %w", obj, ErrNotCoordinateSystem)
	}
	c.Log(slog.LevelDebug, "conversion complete",
		slog.String("name", cs.CSInfo().Name),
		slog.Int("objects", c.created))
	return cs, nil
}

// Len returns the number of distinct nodes in the table.
func (c *Converter) Len() int {
	return len(c.nodes)
}

// visit indexes n after its children. A node reachable from several
// parents gets a single entry; each parent still annotates it.
func (c *Converter) visit(n wkt.Node) {
	if _, seen := c.index[n]; seen {
		return
	}
	idx := len(c.nodes)
	c.index[n] = idx
	c.nodes = append(c.nodes, n)
	c.slots = append(c.slots, nil)
	c.roles = append(c.roles, wkt.UnitGeneric)
	c.context = append(c.context, -1)

	// Children are already indexed, so the parent can annotate them.
	switch n := n.(type) {
	case *wkt.GeographicCS:
		c.setRole(n.Unit, wkt.UnitAngular)
		if n.PrimeMeridian != nil && n.Unit != nil && c.context[c.index[n.PrimeMeridian]] < 0 {
			c.context[c.index[n.PrimeMeridian]] = c.index[n.Unit]
		}
	case *wkt.GeocentricCS:
		c.setRole(n.Unit, wkt.UnitLinear)
	case *wkt.ProjectedCS:
		c.setRole(n.Unit, wkt.UnitLinear)
		if n.Projection != nil {
			if _, ok := c.params[c.index[n.Projection]]; !ok {
				c.params[c.index[n.Projection]] = n.Parameters
			}
		}
	}
	if c.TraceEnabled() {
		c.Trace("indexed node", slog.Int("index", idx), slog.String("keyword", n.Keyword()))
	}
}

// setRole records the role implied by the first parent of u. Later
// parents that disagree resolve u through unitAs.
func (c *Converter) setRole(u *wkt.Unit, role wkt.UnitKind) {
	if u == nil {
		return
	}
	if idx := c.index[u]; c.roles[idx] == wkt.UnitGeneric {
		c.roles[idx] = role
	}
}

type unitUse struct {
	index int
	role  wkt.UnitKind
}

// unitAs resolves u in the given role. A unit whose slot holds another
// role is built once more for this role and memoized separately.
func unitAs[T any](c *Converter, u *wkt.Unit, role wkt.UnitKind) (T, error) {
	var zero T
	if u == nil {
		return zero, nil
	}
	idx, ok := c.index[u]
	if !ok || c.roles[idx] == role {
		return resolve[T](c, u)
	}
	key := unitUse{index: idx, role: role}
	obj, ok := c.recast[key]
	if !ok {
		in, err := c.infoOf(u.Name, u.Authority)
		if err == nil {
			obj, err = c.unit(in, u.Factor, u.Kind, role)
		}
		if err != nil {
			return zero, fmt.Errorf("%s %q: %w", u.Keyword(), u.Name, err)
		}
		c.recast[key] = obj
		c.created++
	}
	v, ok := obj.(T)
	if !ok {
		return zero, fmt.Errorf("%s at offset %d: resolved to %T, want %T", u.Keyword(), u.Offset(), obj, zero)
	}
	return v, nil
}

// FindOrCreate returns the domain object for n, creating it on first
// use. A nil n yields nil. The result type depends on the node:
//
//	*wkt.Authority     crs.Info (authority and code only)
//	*wkt.Axis          crs.AxisInfo
//	*wkt.Unit          *crs.LinearUnit, *crs.AngularUnit or *crs.Unit
//	*wkt.Ellipsoid     *crs.Ellipsoid
//	*wkt.PrimeMeridian *crs.PrimeMeridian
//	*wkt.ToWgs84       *crs.Wgs84Parameters
//	*wkt.Datum         *crs.HorizontalDatum
//	*wkt.Projection    *crs.Projection
//	*wkt.Parameter     crs.ProjectionParameter
//	*wkt.Extension     string
//	*wkt.ParamMT       *crs.AffineTransform
//
// and the matching crs coordinate system for the four system nodes.
func (c *Converter) FindOrCreate(n wkt.Node) (any, error) {
	if wkt.IsNil(n) {
		return nil, nil
	}
	idx, ok := c.index[n]
	if !ok {
		return nil, fmt.Errorf("%s at offset %d: %w", n.Keyword(), n.Offset(), ErrForeignNode)
	}
	if obj := c.slots[idx]; obj != nil {
		return obj, nil
	}
	obj, err := c.create(idx, n)
	if err != nil {
		return nil, err
	}
	c.slots[idx] = obj
	c.created++
	if c.TraceEnabled() {
		c.Trace("created object", slog.Int("index", idx), slog.String("type", fmt.Sprintf("%T", obj)))
	}
	return obj, nil
}
