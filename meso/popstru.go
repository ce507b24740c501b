// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meso

import (
	"github.com/emer/emergent/emer"
	"github.com/emer/emergent/params"
	"github.com/emer/emergent/relpos"
	"github.com/emer/etable/etensor"
	"github.com/goki/gi/giv"
	"github.com/goki/mat32"
)

// meso.PopulationStru manages the structural elements of a population, which
// are common to any population type in either engine.  A population is a
// layer in emergent terms: the mesoscopic engine keeps no per-unit state, but
// the layer shape still gives each nominal unit a place in the netview.
type PopulationStru struct {
	MesoPop  MesoLayer      `copy:"-" json:"-" xml:"-" view:"-" desc:"we need a pointer to ourselves as a MesoLayer (which subsumes emer.Layer), which can always be used to extract the true underlying type of object when population is embedded in other structs -- function receivers do not have this ability so this is necessary."`
	Network  emer.Network   `copy:"-" json:"-" xml:"-" view:"-" desc:"our parent network, in case we need to use it to find other layers etc -- set when added by network"`
	Nm       string         `desc:"Name of the population -- this must be unique within the network, which has a map for quick lookup and populations are typically accessed directly by name"`
	Cls      string         `desc:"Class is for applying parameter styles, can be space separated multple tags"`
	Off      bool           `desc:"inactivate this population -- allows for easy experimentation"`
	Shp      etensor.Shape  `desc:"shape of the population -- 2D for basic populations and 4D for populations with sub-pools -- order is outer-to-inner (row major) so Y then X for 2D.  The mesoscopic engine only uses the total N but the shape organizes the netview."`
	Typ      emer.LayerType `desc:"type of population -- Hidden is a standard dynamic population, Input is clamped to an externally applied rate -- matches against .Class parameter styles (e.g., .Hidden etc)"`
	Thr      int            `desc:"the thread number (go routine) to use in updating this population. The user is responsible for allocating populations to threads, trying to maintain an even distribution across populations and establishing good break-points."`
	Rel      relpos.Rel     `view:"inline" desc:"Spatial relationship to other population, determines positioning"`
	Ps       mat32.Vec3     `desc:"position of lower-left-hand corner of population in 3D space, computed from Rel.  Populations are in X-Y width - height planes, stacked vertically in Z axis."`
	Idx      int            `desc:"a 0..n-1 index of the position of the population within list of populations in the network."`
	RepIxs   []int          `view:"-" desc:"indexes of representative units in the population, for computationally expensive stats or displays"`
	RepShp   etensor.Shape  `view:"-" desc:"shape of representative units in the population -- same set of units as RepIxs"`
	RcvPaths emer.Prjns     `desc:"list of receiving pathways into this population from other populations"`
	SndPaths emer.Prjns     `desc:"list of sending pathways from this population to other populations"`
}

// emer.Layer interface methods

// InitName MUST be called to initialize the population's pointer to itself as
// an emer.Layer which enables the proper interface methods to be called.
// Also sets the name, and the parent network that this population belongs to
// (which can be used to get other populations in the network).
func (ps *PopulationStru) InitName(pop emer.Layer, name string, net emer.Network) {
	ps.MesoPop = pop.(MesoLayer)
	ps.Nm = name
	ps.Network = net
}

func (ps *PopulationStru) Name() string               { return ps.Nm }
func (ps *PopulationStru) SetName(nm string)          { ps.Nm = nm }
func (ps *PopulationStru) Label() string              { return ps.Nm }
func (ps *PopulationStru) Class() string              { return ps.Typ.String() + " " + ps.Cls }
func (ps *PopulationStru) SetClass(cls string)        { ps.Cls = cls }
func (ps *PopulationStru) TypeName() string           { return "Layer" } // type category, for params..
func (ps *PopulationStru) Type() emer.LayerType       { return ps.Typ }
func (ps *PopulationStru) SetType(typ emer.LayerType) { ps.Typ = typ }
func (ps *PopulationStru) IsOff() bool                { return ps.Off }
func (ps *PopulationStru) SetOff(off bool)            { ps.Off = off }
func (ps *PopulationStru) Shape() *etensor.Shape      { return &ps.Shp }
func (ps *PopulationStru) Is2D() bool                 { return ps.Shp.NumDims() == 2 }
func (ps *PopulationStru) Is4D() bool                 { return ps.Shp.NumDims() == 4 }
func (ps *PopulationStru) Thread() int                { return ps.Thr }
func (ps *PopulationStru) SetThread(thr int)          { ps.Thr = thr }
func (ps *PopulationStru) RelPos() relpos.Rel         { return ps.Rel }
func (ps *PopulationStru) Pos() mat32.Vec3            { return ps.Ps }
func (ps *PopulationStru) SetPos(pos mat32.Vec3)      { ps.Ps = pos }
func (ps *PopulationStru) Index() int                 { return ps.Idx }
func (ps *PopulationStru) SetIndex(idx int)           { ps.Idx = idx }
func (ps *PopulationStru) RepIdxs() []int             { return ps.RepIxs }
func (ps *PopulationStru) NRecvPrjns() int            { return len(ps.RcvPaths) }
func (ps *PopulationStru) RecvPrjn(idx int) emer.Prjn { return ps.RcvPaths[idx] }
func (ps *PopulationStru) NSendPrjns() int            { return len(ps.SndPaths) }
func (ps *PopulationStru) SendPrjn(idx int) emer.Prjn { return ps.SndPaths[idx] }
func (ps *PopulationStru) RecvPrjns() *emer.Prjns     { return &ps.RcvPaths }
func (ps *PopulationStru) SendPrjns() *emer.Prjns     { return &ps.SndPaths }

func (ps *PopulationStru) SendNameTry(sender string) (emer.Prjn, error) {
	return emer.SendNameTry(ps.MesoPop, sender)
}
func (ps *PopulationStru) SendNameTypeTry(sender, typ string) (emer.Prjn, error) {
	return emer.SendNameTypeTry(ps.MesoPop, sender, typ)
}
func (ps *PopulationStru) RecvNameTry(receiver string) (emer.Prjn, error) {
	return emer.RecvNameTry(ps.MesoPop, receiver)
}
func (ps *PopulationStru) RecvNameTypeTry(receiver, typ string) (emer.Prjn, error) {
	return emer.RecvNameTypeTry(ps.MesoPop, receiver, typ)
}

// Idx4DFrom2D returns the 4D index from 2D coordinates within which inner
// dims are snapped to the outer pool geometry.  false if out of range.
func (ps *PopulationStru) Idx4DFrom2D(x, y int) ([]int, bool) {
	lshp := ps.Shape()
	nux := lshp.Dim(3)
	nuy := lshp.Dim(2)
	ux := x % nux
	uy := y % nuy
	px := x / nux
	py := y / nuy
	idx := []int{py, px, uy, ux}
	if !lshp.IdxIsValid(idx) {
		return nil, false
	}
	return idx, true
}

func (ps *PopulationStru) SetRelPos(rel relpos.Rel) {
	ps.Rel = rel
}

func (ps *PopulationStru) Size() mat32.Vec2 {
	if ps.Rel.Scale == 0 {
		ps.Rel.Defaults()
	}
	var sz mat32.Vec2
	switch {
	case ps.Is2D():
		sz = mat32.Vec2{float32(ps.Shp.Dim(1)), float32(ps.Shp.Dim(0))} // Z = 0 extra
	case ps.Is4D():
		// note: pool spacing is handled internally in display and does not affect overall size
		sz = mat32.Vec2{float32(ps.Shp.Dim(1) * ps.Shp.Dim(3)), float32(ps.Shp.Dim(0) * ps.Shp.Dim(2))}
	default:
		sz = mat32.Vec2{2, 2}
	}
	return sz.MulScalar(ps.Rel.Scale)
}

// SetShape sets the population shape and also uses default dim names
func (ps *PopulationStru) SetShape(shape []int) {
	var dnms []string
	if len(shape) == 2 {
		dnms = emer.LayerDimNames2D
	} else if len(shape) == 4 {
		dnms = emer.LayerDimNames4D
	}
	ps.Shp.SetShape(shape, nil, dnms) // row major default
}

// SetRepIdxs sets the RepIdxs to given set of indexes, with shape as a
// 1D list of that length
func (ps *PopulationStru) SetRepIdxs(idxs []int) {
	ps.RepIxs = idxs
	ps.RepShp.SetShape([]int{len(idxs)}, nil, nil)
}

// SetRepIdxsShape sets the RepIdxs, and RepShape and as list of dimension sizes
func (ps *PopulationStru) SetRepIdxsShape(idxs, shape []int) {
	ps.RepIxs = idxs
	var dnms []string
	if len(shape) == 2 {
		dnms = emer.LayerDimNames2D
	} else if len(shape) == 4 {
		dnms = emer.LayerDimNames4D
	}
	ps.RepShp.SetShape(shape, nil, dnms) // row major default
}

// RepShape returns the shape to use for representative units
func (ps *PopulationStru) RepShape() *etensor.Shape {
	sz := len(ps.RepIxs)
	if sz == 0 {
		return &ps.Shp
	}
	if ps.RepShp.Len() < sz {
		ps.RepShp.SetShape([]int{sz}, nil, nil) // set to 1D
	}
	return &ps.RepShp
}

// NPools returns the number of unit sub-pools according to the shape parameters.
// Currently supported for a 4D shape, where the unit pools are the first 2 Y,X dims
// and then the units within the pools are the 2nd 2 Y,X dims.
func (ps *PopulationStru) NPools() int {
	if ps.Shp.NumDims() != 4 {
		return 0
	}
	return ps.Shp.Dim(0) * ps.Shp.Dim(1)
}

// RecipToSendPrjn finds the reciprocal pathway relative to the given sending
// pathway found within the SndPaths of this population.  This is then a recv
// pathway within this population:
//
//	S=A -> R=B recip: R=A <- S=B -- ly = A -- we are the sender of srj and recv of rpj.
//
// returns false if not found.
func (ps *PopulationStru) RecipToSendPrjn(spj emer.Prjn) (emer.Prjn, bool) {
	for _, rpj := range ps.RcvPaths {
		if rpj.SendLay() == spj.RecvLay() {
			return rpj, true
		}
	}
	return nil, false
}

// Config configures the basic parameters of the population
func (ps *PopulationStru) Config(shape []int, typ emer.LayerType) {
	ps.SetShape(shape)
	ps.Typ = typ
}

// ApplyParams applies given parameter style Sheet to this population and its
// recv pathways.  Calls UpdateParams on anything set to ensure derived
// parameters are all updated.
// If setMsg is true, then a message is printed to confirm each parameter that is set.
// it always prints a message if a parameter fails to be set.
// returns true if any params were set, and error if there were any errors.
func (ps *PopulationStru) ApplyParams(pars *params.Sheet, setMsg bool) (bool, error) {
	applied := false
	var rerr error
	app, err := pars.Apply(ps.MesoPop, setMsg) // essential to go through MesoPop
	if app {
		ps.MesoPop.UpdateParams()
		applied = true
	}
	if err != nil {
		rerr = err
	}
	for _, pj := range ps.RcvPaths {
		app, err = pj.ApplyParams(pars, setMsg)
		if app {
			applied = true
		}
		if err != nil {
			rerr = err
		}
	}
	return applied, rerr
}

// NonDefaultParams returns a listing of all parameters in the Population that
// are not at their default values -- useful for setting param styles etc.
func (ps *PopulationStru) NonDefaultParams() string {
	nds := giv.StructNonDefFieldsStr(ps.MesoPop, ps.Nm)
	for _, pj := range ps.RcvPaths {
		pnd := pj.NonDefaultParams()
		nds += pnd
	}
	return nds
}
