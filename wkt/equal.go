package wkt

// Equal reports whether a and b describe the same thing. Keywords,
// delimiters, offsets and the written form of authority codes are
// ignored; slices are compared in order. Nil and typed-nil nodes are
// equal to each other.
func Equal(a, b Node) bool {
	if IsNil(a) || IsNil(b) {
		return IsNil(a) && IsNil(b)
	}
	switch a := a.(type) {
	case *Authority:
		b, ok := b.(*Authority)
		return ok && equalAuthority(a, b)
	case *Axis:
		b, ok := b.(*Axis)
		return ok && equalAxis(a, b)
	case *Unit:
		b, ok := b.(*Unit)
		return ok && equalUnit(a, b)
	case *Ellipsoid:
		b, ok := b.(*Ellipsoid)
		return ok && equalEllipsoid(a, b)
	case *PrimeMeridian:
		b, ok := b.(*PrimeMeridian)
		return ok && equalPrimeMeridian(a, b)
	case *ToWgs84:
		b, ok := b.(*ToWgs84)
		return ok && equalToWgs84(a, b)
	case *Datum:
		b, ok := b.(*Datum)
		return ok && equalDatum(a, b)
	case *Projection:
		b, ok := b.(*Projection)
		return ok && equalProjection(a, b)
	case *Parameter:
		b, ok := b.(*Parameter)
		return ok && equalParameter(a, b)
	case *Extension:
		b, ok := b.(*Extension)
		return ok && equalExtension(a, b)
	case *GeographicCS:
		b, ok := b.(*GeographicCS)
		return ok && equalGeographic(a, b)
	case *GeocentricCS:
		b, ok := b.(*GeocentricCS)
		return ok && equalGeocentric(a, b)
	case *ProjectedCS:
		b, ok := b.(*ProjectedCS)
		return ok && equalProjected(a, b)
	case *ParamMT:
		b, ok := b.(*ParamMT)
		return ok && equalParamMT(a, b)
	case *FittedCS:
		b, ok := b.(*FittedCS)
		return ok && equalFitted(a, b)
	}
	return false
}

// nilPair reports whether at least one of a and b is nil, and if so
// whether both are.
func nilPair[T any](a, b *T) (done, equal bool) {
	if a == nil || b == nil {
		return true, a == nil && b == nil
	}
	return false, false
}

func equalAuthority(a, b *Authority) bool {
	if done, eq := nilPair(a, b); done {
		return eq
	}
	return a.Name == b.Name && a.Code == b.Code
}

func equalAxis(a, b *Axis) bool {
	if done, eq := nilPair(a, b); done {
		return eq
	}
	return a.Name == b.Name && a.Direction == b.Direction
}

func equalUnit(a, b *Unit) bool {
	if done, eq := nilPair(a, b); done {
		return eq
	}
	return a.Name == b.Name && a.Factor == b.Factor && a.Kind == b.Kind &&
		equalAuthority(a.Authority, b.Authority)
}

func equalEllipsoid(a, b *Ellipsoid) bool {
	if done, eq := nilPair(a, b); done {
		return eq
	}
	return a.Name == b.Name && a.SemiMajorAxis == b.SemiMajorAxis &&
		a.InverseFlattening == b.InverseFlattening &&
		equalAuthority(a.Authority, b.Authority)
}

func equalPrimeMeridian(a, b *PrimeMeridian) bool {
	if done, eq := nilPair(a, b); done {
		return eq
	}
	return a.Name == b.Name && a.Longitude == b.Longitude &&
		equalAuthority(a.Authority, b.Authority)
}

func equalToWgs84(a, b *ToWgs84) bool {
	if done, eq := nilPair(a, b); done {
		return eq
	}
	return a.Values() == b.Values() && a.Description == b.Description
}

func equalDatum(a, b *Datum) bool {
	if done, eq := nilPair(a, b); done {
		return eq
	}
	return a.Name == b.Name && equalEllipsoid(a.Ellipsoid, b.Ellipsoid) &&
		equalToWgs84(a.ToWgs84, b.ToWgs84) && equalAuthority(a.Authority, b.Authority)
}

func equalProjection(a, b *Projection) bool {
	if done, eq := nilPair(a, b); done {
		return eq
	}
	return a.Name == b.Name && equalAuthority(a.Authority, b.Authority)
}

func equalParameter(a, b *Parameter) bool {
	if done, eq := nilPair(a, b); done {
		return eq
	}
	return a.Name == b.Name && a.Value == b.Value
}

func equalExtension(a, b *Extension) bool {
	if done, eq := nilPair(a, b); done {
		return eq
	}
	return a.Name == b.Name && a.Value == b.Value
}

func equalSlice[T any](a, b []*T, eq func(a, b *T) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !eq(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalGeographic(a, b *GeographicCS) bool {
	if done, eq := nilPair(a, b); done {
		return eq
	}
	return a.Name == b.Name && equalDatum(a.Datum, b.Datum) &&
		equalPrimeMeridian(a.PrimeMeridian, b.PrimeMeridian) &&
		equalUnit(a.Unit, b.Unit) && equalSlice(a.Axes, b.Axes, equalAxis) &&
		equalAuthority(a.Authority, b.Authority)
}

func equalGeocentric(a, b *GeocentricCS) bool {
	if done, eq := nilPair(a, b); done {
		return eq
	}
	return a.Name == b.Name && equalDatum(a.Datum, b.Datum) &&
		equalPrimeMeridian(a.PrimeMeridian, b.PrimeMeridian) &&
		equalUnit(a.Unit, b.Unit) && equalSlice(a.Axes, b.Axes, equalAxis) &&
		equalAuthority(a.Authority, b.Authority)
}

func equalProjected(a, b *ProjectedCS) bool {
	if done, eq := nilPair(a, b); done {
		return eq
	}
	return a.Name == b.Name && equalGeographic(a.GeographicCS, b.GeographicCS) &&
		equalProjection(a.Projection, b.Projection) &&
		equalSlice(a.Parameters, b.Parameters, equalParameter) &&
		equalUnit(a.Unit, b.Unit) && equalSlice(a.Axes, b.Axes, equalAxis) &&
		equalExtension(a.Extension, b.Extension) &&
		equalAuthority(a.Authority, b.Authority)
}

func equalParamMT(a, b *ParamMT) bool {
	if done, eq := nilPair(a, b); done {
		return eq
	}
	return a.Name == b.Name && equalSlice(a.Parameters, b.Parameters, equalParameter)
}

func equalFitted(a, b *FittedCS) bool {
	if done, eq := nilPair(a, b); done {
		return eq
	}
	return a.Name == b.Name && equalParamMT(a.ToBase, b.ToBase) &&
		equalProjected(a.Base, b.Base) && equalAuthority(a.Authority, b.Authority)
}
