package parser

import (
	"log/slog"

	"github.com/golangsnmp/gocrs/internal/lexer"
	"github.com/golangsnmp/gocrs/wkt"
)

// element wraps a production body: it opens one of keywords, runs body,
// closes the element and returns the built value. Failure anywhere
// restores the position.
func (p *Parser[N]) element(keywords []string, body func(f *Frame) (func() N, bool)) (N, bool) {
	return p.attempt(func() (N, bool) {
		var zero N
		f, ok := p.open(keywords...)
		if !ok {
			return zero, false
		}
		build, ok := body(&f)
		if !ok || !p.close(&f) {
			return zero, false
		}
		n := build()
		if p.TraceEnabled() {
			p.Trace("built element", slog.String("keyword", f.Keyword), slog.Int("offset", f.Offset))
		}
		return n, true
	})
}

var (
	kwAuthority     = []string{"AUTHORITY"}
	kwAxis          = []string{"AXIS"}
	kwToWgs84       = []string{"TOWGS84"}
	kwUnit          = []string{"UNIT"}
	kwEllipsoid     = []string{"SPHEROID", "ELLIPSOID"}
	kwPrimeMeridian = []string{"PRIMEM"}
	kwDatum         = []string{"DATUM"}
	kwProjection    = []string{"PROJECTION"}
	kwParameter     = []string{"PARAMETER"}
	kwExtension     = []string{"EXTENSION"}
	kwGeographic    = []string{"GEOGCS"}
	kwGeocentric    = []string{"GEOCCS", "GEOCS"}
	kwProjected     = []string{"PROJCS"}
	kwParamMT       = []string{"PARAM_MT"}
	kwFitted        = []string{"FITTED_CS"}
)

// authority parses AUTHORITY["name", code].
func (p *Parser[N]) authority() (N, bool) {
	return p.element(kwAuthority, func(f *Frame) (func() N, bool) {
		name, ok := p.quotedName()
		if !ok || !p.comma() {
			return nil, false
		}
		code, text, ok := p.authorityCode()
		if !ok {
			return nil, false
		}
		return func() N { return p.build.Authority(*f, name, code, text) }, true
	})
}

// axis parses AXIS["name", DIRECTION].
func (p *Parser[N]) axis() (N, bool) {
	return p.element(kwAxis, func(f *Frame) (func() N, bool) {
		name, ok := p.quotedName()
		if !ok || !p.comma() {
			return nil, false
		}
		tok := p.peek()
		dir, ok := wkt.AxisOther, false
		if tok.Kind == lexer.TokIdent {
			dir, ok = wkt.ParseAxisDirection(p.text(tok))
		}
		if !ok {
			p.fail(wkt.AxisDirectionNames()...)
			return nil, false
		}
		p.advance()
		return func() N { return p.build.Axis(*f, name, dir) }, true
	})
}

// toWgs84 parses TOWGS84[dx, dy, dz, ex, ey, ez, ppm (, "description")?].
func (p *Parser[N]) toWgs84() (N, bool) {
	return p.element(kwToWgs84, func(f *Frame) (func() N, bool) {
		var values [7]float64
		v, ok := p.number()
		if !ok {
			return nil, false
		}
		values[0] = v
		for i := 1; i < len(values); i++ {
			if values[i], ok = p.commaNumber(); !ok {
				return nil, false
			}
		}
		var description string
		if p.check(lexer.TokComma) {
			p.advance()
			if description, ok = p.quotedName(); !ok {
				return nil, false
			}
		} else {
			p.fail(lexer.TokComma.String())
		}
		return func() N { return p.build.ToWgs84(*f, values, description) }, true
	})
}

// unit parses UNIT["name", factor (, AUTHORITY)?].
func (p *Parser[N]) unit() (N, bool) {
	return p.element(kwUnit, func(f *Frame) (func() N, bool) {
		name, ok := p.quotedName()
		if !ok {
			return nil, false
		}
		factor, ok := p.commaNumber()
		if !ok {
			return nil, false
		}
		auth, _ := p.optional(p.authority)
		return func() N { return p.build.Unit(*f, name, factor, auth) }, true
	})
}

// ellipsoid parses SPHEROID or ELLIPSOID["name", a, 1/f (, AUTHORITY)?].
func (p *Parser[N]) ellipsoid() (N, bool) {
	return p.element(kwEllipsoid, func(f *Frame) (func() N, bool) {
		name, ok := p.quotedName()
		if !ok {
			return nil, false
		}
		a, ok := p.commaNumber()
		if !ok {
			return nil, false
		}
		invf, ok := p.commaNumber()
		if !ok {
			return nil, false
		}
		auth, _ := p.optional(p.authority)
		return func() N { return p.build.Ellipsoid(*f, name, a, invf, auth) }, true
	})
}

// primeMeridian parses PRIMEM["name", longitude (, AUTHORITY)?].
func (p *Parser[N]) primeMeridian() (N, bool) {
	return p.element(kwPrimeMeridian, func(f *Frame) (func() N, bool) {
		name, ok := p.quotedName()
		if !ok {
			return nil, false
		}
		lon, ok := p.commaNumber()
		if !ok {
			return nil, false
		}
		auth, _ := p.optional(p.authority)
		return func() N { return p.build.PrimeMeridian(*f, name, lon, auth) }, true
	})
}

// datum parses DATUM["name", SPHEROID (, TOWGS84)? (, AUTHORITY)?].
// TOWGS84 is tried before AUTHORITY.
func (p *Parser[N]) datum() (N, bool) {
	return p.element(kwDatum, func(f *Frame) (func() N, bool) {
		name, ok := p.quotedName()
		if !ok {
			return nil, false
		}
		ellipsoid, ok := p.next(p.ellipsoid)
		if !ok {
			return nil, false
		}
		shift, _ := p.optional(p.toWgs84)
		auth, _ := p.optional(p.authority)
		return func() N { return p.build.Datum(*f, name, ellipsoid, shift, auth) }, true
	})
}

// projection parses PROJECTION["name" (, AUTHORITY)?].
func (p *Parser[N]) projection() (N, bool) {
	return p.element(kwProjection, func(f *Frame) (func() N, bool) {
		name, ok := p.quotedName()
		if !ok {
			return nil, false
		}
		auth, _ := p.optional(p.authority)
		return func() N { return p.build.Projection(*f, name, auth) }, true
	})
}

// parameter parses PARAMETER["name", value].
func (p *Parser[N]) parameter() (N, bool) {
	return p.element(kwParameter, func(f *Frame) (func() N, bool) {
		name, ok := p.quotedName()
		if !ok {
			return nil, false
		}
		value, ok := p.commaNumber()
		if !ok {
			return nil, false
		}
		return func() N { return p.build.Parameter(*f, name, value) }, true
	})
}

// extension parses EXTENSION["name", "value"].
func (p *Parser[N]) extension() (N, bool) {
	return p.element(kwExtension, func(f *Frame) (func() N, bool) {
		name, ok := p.quotedName()
		if !ok || !p.comma() {
			return nil, false
		}
		value, ok := p.quotedName()
		if !ok {
			return nil, false
		}
		return func() N { return p.build.Extension(*f, name, value) }, true
	})
}

// geographicCS parses
// GEOGCS["name", DATUM, PRIMEM (, UNIT)? (, AXIS)* (, AUTHORITY)?].
func (p *Parser[N]) geographicCS() (N, bool) {
	return p.element(kwGeographic, func(f *Frame) (func() N, bool) {
		name, ok := p.quotedName()
		if !ok {
			return nil, false
		}
		datum, ok := p.next(p.datum)
		if !ok {
			return nil, false
		}
		pm, ok := p.next(p.primeMeridian)
		if !ok {
			return nil, false
		}
		unit, _ := p.optional(p.unit)
		axes := p.many(p.axis)
		auth, _ := p.optional(p.authority)
		return func() N { return p.build.GeographicCS(*f, name, datum, pm, unit, axes, auth) }, true
	})
}

// geocentricCS parses
// GEOCCS["name", DATUM, PRIMEM, UNIT (, AXIS)* (, AUTHORITY)?].
// The legacy keyword GEOCS is accepted.
func (p *Parser[N]) geocentricCS() (N, bool) {
	return p.element(kwGeocentric, func(f *Frame) (func() N, bool) {
		name, ok := p.quotedName()
		if !ok {
			return nil, false
		}
		datum, ok := p.next(p.datum)
		if !ok {
			return nil, false
		}
		pm, ok := p.next(p.primeMeridian)
		if !ok {
			return nil, false
		}
		unit, ok := p.next(p.unit)
		if !ok {
			return nil, false
		}
		axes := p.many(p.axis)
		auth, _ := p.optional(p.authority)
		return func() N { return p.build.GeocentricCS(*f, name, datum, pm, unit, axes, auth) }, true
	})
}

// projectedCS parses
// PROJCS["name", GEOGCS, PROJECTION (, PARAMETER)* (, UNIT)? (, AXIS)*
// (, EXTENSION)? (, AUTHORITY)?].
// UNIT may also appear between GEOGCS and PROJECTION, in which case it
// may not be repeated after the parameters.
func (p *Parser[N]) projectedCS() (N, bool) {
	return p.element(kwProjected, func(f *Frame) (func() N, bool) {
		name, ok := p.quotedName()
		if !ok {
			return nil, false
		}
		geog, ok := p.next(p.geographicCS)
		if !ok {
			return nil, false
		}
		unit, unitFirst := p.optional(p.unit)
		proj, ok := p.next(p.projection)
		if !ok {
			return nil, false
		}
		params := p.many(p.parameter)
		if !unitFirst {
			unit, _ = p.optional(p.unit)
		}
		axes := p.many(p.axis)
		ext, _ := p.optional(p.extension)
		auth, _ := p.optional(p.authority)
		return func() N {
			return p.build.ProjectedCS(*f, name, geog, proj, params, unit, axes, ext, auth)
		}, true
	})
}

// paramMT parses PARAM_MT["name" (, PARAMETER)*].
func (p *Parser[N]) paramMT() (N, bool) {
	return p.element(kwParamMT, func(f *Frame) (func() N, bool) {
		name, ok := p.quotedName()
		if !ok {
			return nil, false
		}
		params := p.many(p.parameter)
		return func() N { return p.build.ParamMT(*f, name, params) }, true
	})
}

// fittedCS parses FITTED_CS["name", PARAM_MT, PROJCS (, AUTHORITY)?].
func (p *Parser[N]) fittedCS() (N, bool) {
	return p.element(kwFitted, func(f *Frame) (func() N, bool) {
		name, ok := p.quotedName()
		if !ok {
			return nil, false
		}
		toBase, ok := p.next(p.paramMT)
		if !ok {
			return nil, false
		}
		base, ok := p.next(p.projectedCS)
		if !ok {
			return nil, false
		}
		auth, _ := p.optional(p.authority)
		return func() N { return p.build.FittedCS(*f, name, toBase, base, auth) }, true
	})
}
