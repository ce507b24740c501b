// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meso

import (
	"errors"
	"log"

	"github.com/emer/emergent/emer"
	"github.com/emer/emergent/params"
	"github.com/emer/emergent/prjn"
	"github.com/emer/etable/etensor"
	"github.com/emer/etable/minmax"
	"github.com/goki/gi/giv"
)

// PathwayStru contains the basic structural information for specifying a
// pathway of synaptic connections between two populations, and the
// connection-level indexes when a pattern is elaborated per-neuron.
// The exact same struct object is added to the Recv and Send populations.
// The mesoscopic engine uses only the endpoint and pattern info; the
// per-neuron index lists are built by the microscopic engine, which owns
// individual synapses.
type PathwayStru struct {
	MesoPrj     MesoPath        `copy:"-" json:"-" xml:"-" view:"-" desc:"we need a pointer to ourselves as a MesoPath (which subsumes emer.Prjn), which can always be used to extract the true underlying type of object when pathway is embedded in other structs -- function receivers do not have this ability so this is necessary."`
	Off         bool            `desc:"inactivate this pathway -- allows for easy experimentation"`
	Cls         string          `desc:"Class is for applying parameter styles, can be space separated multple tags"`
	Notes       string          `desc:"can record notes about this pathway here"`
	Send        emer.Layer      `desc:"sending population for this pathway"`
	Recv        emer.Layer      `desc:"receiving population for this pathway -- the emer.Layer interface can be converted to the specific Population type you are using, e.g., rpop := pj.Recv.(*meso.Population)"`
	Pat         prjn.Pattern    `desc:"pattern of connectivity -- the mesoscopic engine uses only its overall connection density, via the pathway coupling weight"`
	Typ         emer.PrjnType   `desc:"type of pathway -- Forward, Back, Lateral, or Inhib -- Inhib pathways use the inhibitory synaptic time constant on the receiver"`
	RConN       []int32         `view:"-" desc:"number of recv connections for each neuron in the receiving population, as a flat list"`
	RConNAvgMax minmax.AvgMax32 `inactive:"+" view:"inline" desc:"average and maximum number of recv connections in the receiving population"`
	RConIdxSt   []int32         `view:"-" desc:"starting index into ConIdx list for each neuron in receiving population -- just a list incremented by ConN"`
	RConIdx     []int32         `view:"-" desc:"index of other neuron on sending side of pathway, ordered by the receiving population's order of units as the outer loop (each start is in ConIdxSt), and then by the sending population's units within that"`
	RSynIdx     []int32         `view:"-" desc:"index of synaptic state values for each recv unit x connection, for the receiver pathway which does not own the synapses, and instead indexes into sender-ordered list"`
	SConN       []int32         `view:"-" desc:"number of sending connections for each neuron in the sending population, as a flat list"`
	SConNAvgMax minmax.AvgMax32 `inactive:"+" view:"inline" desc:"average and maximum number of sending connections in the sending population"`
	SConIdxSt   []int32         `view:"-" desc:"starting index into ConIdx list for each neuron in sending population -- just a list incremented by ConN"`
	SConIdx     []int32         `view:"-" desc:"index of other neuron on receiving side of pathway, ordered by the sending population's order of units as the outer loop (each start is in ConIdxSt), and then by the sending population's units within that"`
}

// emer.Prjn interface

// Init MUST be called to initialize the pathway's pointer to itself as an
// emer.Prjn which enables the proper interface methods to be called.
func (ps *PathwayStru) Init(prjn emer.Prjn) {
	ps.MesoPrj = prjn.(MesoPath)
}

func (ps *PathwayStru) TypeName() string { return "Prjn" } // always, for params..
func (ps *PathwayStru) Class() string    { return ps.MesoPrj.PrjnTypeName() + " " + ps.Cls }
func (ps *PathwayStru) Name() string {
	return ps.Send.Name() + "To" + ps.Recv.Name()
}
func (ps *PathwayStru) SetClass(cls string)         { ps.Cls = cls }
func (ps *PathwayStru) Label() string               { return ps.Name() }
func (ps *PathwayStru) RecvLay() emer.Layer         { return ps.Recv }
func (ps *PathwayStru) SendLay() emer.Layer         { return ps.Send }
func (ps *PathwayStru) Pattern() prjn.Pattern       { return ps.Pat }
func (ps *PathwayStru) SetPattern(pat prjn.Pattern) { ps.Pat = pat }
func (ps *PathwayStru) Type() emer.PrjnType         { return ps.Typ }
func (ps *PathwayStru) SetType(typ emer.PrjnType)   { ps.Typ = typ }
func (ps *PathwayStru) PrjnTypeName() string        { return ps.Typ.String() }

func (ps *PathwayStru) IsOff() bool {
	return ps.Off || ps.Recv.IsOff() || ps.Send.IsOff()
}
func (ps *PathwayStru) SetOff(off bool) { ps.Off = off }

// Connect sets the connectivity between two populations and the pattern to
// use in interconnecting them
func (ps *PathwayStru) Connect(slay, rlay emer.Layer, pat prjn.Pattern, typ emer.PrjnType) {
	ps.Send = slay
	ps.Recv = rlay
	ps.Pat = pat
	ps.Typ = typ
}

// Validate tests for non-nil settings for the pathway -- returns error
// message or nil if no problems (and logs them if logmsg = true)
func (ps *PathwayStru) Validate(logmsg bool) error {
	emsg := ""
	if ps.Pat == nil {
		emsg += "Pat is nil; "
	}
	if ps.Recv == nil {
		emsg += "Recv is nil; "
	}
	if ps.Send == nil {
		emsg += "Send is nil; "
	}
	if emsg != "" {
		err := errors.New(emsg)
		if logmsg {
			log.Println(emsg)
		}
		return err
	}
	return nil
}

// BuildStru constructs the full per-neuron connectivity among the
// populations as specified in this pathway, for engines that keep
// individual synapses.  Calls Validate and returns false if invalid.
// Pat.Connect is called to get the pattern of the connection.
// Then the connection indexes are configured according to that pattern.
func (ps *PathwayStru) BuildStru() error {
	if ps.Off {
		return nil
	}
	err := ps.Validate(true)
	if err != nil {
		return err
	}
	ssh := ps.Send.Shape()
	rsh := ps.Recv.Shape()
	sendn, recvn, cons := ps.Pat.Connect(ssh, rsh, ps.Recv == ps.Send)
	slen := ssh.Len()
	rlen := rsh.Len()
	tcons := ps.SetNIdxSt(&ps.SConN, &ps.SConNAvgMax, &ps.SConIdxSt, sendn)
	tconr := ps.SetNIdxSt(&ps.RConN, &ps.RConNAvgMax, &ps.RConIdxSt, recvn)
	if tconr != tcons {
		log.Printf("%v programmer error: total recv cons %v != total send cons %v\n", ps.String(), tconr, tcons)
	}
	ps.RConIdx = make([]int32, tconr)
	ps.RSynIdx = make([]int32, tconr)
	ps.SConIdx = make([]int32, tcons)

	sconN := make([]int32, slen) // temporary mem needed to tracks cur n of sending cons

	cbits := cons.Values
	for ri := 0; ri < rlen; ri++ {
		rbi := ri * slen     // recv bit index
		rtcn := ps.RConN[ri] // number of cons
		rst := ps.RConIdxSt[ri]
		rci := int32(0)
		for si := 0; si < slen; si++ {
			if !cbits.Index(rbi + si) { // no connection
				continue
			}
			sst := ps.SConIdxSt[si]
			if rci >= rtcn {
				log.Printf("%v programmer error: recv target total con number: %v exceeded at recv idx: %v, send idx: %v\n", ps.String(), rtcn, ri, si)
				break
			}
			ps.RConIdx[rst+rci] = int32(si)

			sci := sconN[si]
			stcn := ps.SConN[si]
			if sci >= stcn {
				log.Printf("%v programmer error: send target total con number: %v exceeded at recv idx: %v, send idx: %v\n", ps.String(), stcn, ri, si)
				break
			}
			ps.SConIdx[sst+sci] = int32(ri)
			ps.RSynIdx[rst+rci] = sst + sci
			(sconN[si])++
			rci++
		}
	}
	return nil
}

// SetNIdxSt sets the *ConN and *ConIdxSt values given n tensor from Pat.
// Returns total number of connections for this direction.
func (ps *PathwayStru) SetNIdxSt(n *[]int32, avgmax *minmax.AvgMax32, idxst *[]int32, tn *etensor.Int32) int32 {
	ln := tn.Len()
	tnv := tn.Values
	*n = make([]int32, ln)
	*idxst = make([]int32, ln)
	idx := int32(0)
	avgmax.Init()
	for i := 0; i < ln; i++ {
		nv := tnv[i]
		(*n)[i] = nv
		(*idxst)[i] = idx
		idx += nv
		avgmax.UpdateVal(float32(nv), i)
	}
	avgmax.CalcAvg()
	return idx
}

// String satisfies fmt.Stringer for prjn
func (ps *PathwayStru) String() string {
	str := ""
	if ps.Recv == nil {
		str += "recv=nil; "
	} else {
		str += ps.Recv.Name() + " <- "
	}
	if ps.Send == nil {
		str += "send=nil"
	} else {
		str += ps.Send.Name()
	}
	if ps.Pat == nil {
		str += " Pat=nil"
	} else {
		str += " Pat=" + ps.Pat.Name()
	}
	return str
}

// ApplyParams applies given parameter style Sheet to this pathway.
// Calls UpdateParams if anything set to ensure derived parameters are all updated.
// If setMsg is true, then a message is printed to confirm each parameter that is set.
// it always prints a message if a parameter fails to be set.
// returns true if any params were set, and error if there were any errors.
func (ps *PathwayStru) ApplyParams(pars *params.Sheet, setMsg bool) (bool, error) {
	app, err := pars.Apply(ps.MesoPrj, setMsg) // essential to go through MesoPrj
	if app {
		ps.MesoPrj.UpdateParams()
	}
	return app, err
}

// NonDefaultParams returns a listing of all parameters in the Pathway that
// are not at their default values -- useful for setting param styles etc.
func (ps *PathwayStru) NonDefaultParams() string {
	pth := ps.Recv.Name() + "." + ps.Name() // redundant but clearer..
	nds := giv.StructNonDefFieldsStr(ps.MesoPrj, pth)
	return nds
}
