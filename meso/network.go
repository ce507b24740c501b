// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meso

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/c2h5oh/datasize"
	"github.com/emer/emergent/emer"
	"github.com/emer/emergent/prjn"
	"github.com/goki/ki/ki"
	"github.com/goki/ki/kit"
	"github.com/goki/mat32"
)

// meso.Network simulates a network of neuronal populations at the
// mesoscopic level: each population carries a handful of aggregate state
// variables (free membrane potential, adaptation, synaptic currents, a
// refractory ledger) instead of per-neuron state, and the number of spikes
// per time step is drawn from the population hazard.  See micro.Network
// for the per-neuron version of the same model, used for cross-validation.
type Network struct {
	NetworkStru
}

var KiT_Network = kit.Types.AddType(&Network{}, NetworkProps)

// NewNetwork returns a new meso Network
func NewNetwork(name string) *Network {
	net := &Network{}
	net.InitName(net, name)
	return net
}

func (nt *Network) AsMeso() *Network {
	return nt
}

// NewLayer returns new population of proper type
func (nt *Network) NewLayer() emer.Layer {
	return &Population{}
}

// NewPrjn returns new pathway of proper type
func (nt *Network) NewPrjn() emer.Prjn {
	return &Pathway{}
}

// Defaults sets all the default parameters for all populations and pathways
func (nt *Network) Defaults() {
	for li, ly := range nt.Layers {
		ly.Defaults()
		ly.SetIndex(li)
	}
}

// UpdateParams updates all the derived parameters if any have changed, for all
// populations and pathways
func (nt *Network) UpdateParams() {
	for _, ly := range nt.Layers {
		ly.UpdateParams()
	}
}

// UnitVarNames returns a list of variable names available on the units in this network.
// For a mesoscopic network these are population-level quantities broadcast to
// every display unit.  The order of this list determines NetView variable display order.
// This is typically a global list so do not modify!
func (nt *Network) UnitVarNames() []string {
	return PopVarNames
}

// UnitVarProps returns properties for variables
func (nt *Network) UnitVarProps() map[string]string {
	return PopVarProps
}

// SynVarNames returns the names of all the variables on the synapses in this network.
// The order of this list determines NetView variable display order.
// This is typically a global list so do not modify!
func (nt *Network) SynVarNames() []string {
	return SynVars
}

// SynVarProps returns properties for variables
func (nt *Network) SynVarProps() map[string]string {
	return SynVarProps
}

//////////////////////////////////////////////////////////////////////////////////////
//  Primary population-level computation methods

// AddPopulation adds a new population of n neurons with given name and type
// to the network.  The display shape is the most square 2D factorization of
// n, falling back to a single row when n is prime.
func (nt *Network) AddPopulation(name string, n int, typ emer.LayerType) *Population {
	rows := int(mat32.Sqrt(float32(n)))
	for rows > 1 && n%rows != 0 {
		rows--
	}
	return nt.AddLayer2D(name, rows, n/rows, typ).(MesoLayer).AsMeso()
}

// ConnectPops connects two populations with the given coupling weight
// (pA of post-synaptic current per spike, negative = inhibitory) and
// transmission delay (msec), using a full pattern.  The pattern is only
// consulted by the microscopic engine, which instantiates individual
// connections from it -- the mesoscopic pathway is a single aggregate
// coupling either way.  Note that Defaults resets pathway parameters, so
// call this after network Defaults (or set Wt, Delay via params sheets).
func (nt *Network) ConnectPops(send, recv emer.Layer, wt, delay float32) *Pathway {
	typ := emer.Forward
	switch {
	case send == recv:
		typ = emer.Lateral
	case wt < 0:
		typ = emer.Inhib
	}
	pj := nt.ConnectLayers(send, recv, prjn.NewFull(), typ).(MesoPath).AsMeso()
	pj.Defaults()
	pj.Wt = wt
	pj.Delay = delay
	return pj
}

// BuildCtx builds the network structure and then allocates all time-step
// dependent state (refractory ledgers, spike delay buffers) according to the
// given context.  Must be called again after any change to Dt, pathway
// delays, or refractory periods.
func (nt *Network) BuildCtx(ctx *Context) error {
	err := nt.Build()
	if err != nil {
		return err
	}
	emsg := ""
	for _, ly := range nt.Layers {
		if ly.IsOff() {
			continue
		}
		err := ly.(MesoLayer).BuildCtx(ctx)
		if err != nil {
			emsg += err.Error() + "\n"
		}
	}
	if emsg != "" {
		return errors.New(emsg)
	}
	return nil
}

// InitWts initializes the coupling weights and all dynamic state -- must be
// called after BuildCtx and before the first Cycle
func (nt *Network) InitWts() {
	for _, ly := range nt.Layers {
		if ly.IsOff() {
			continue
		}
		ly.(MesoLayer).InitWts()
	}
}

// InitActs fully initializes the dynamic state, leaving weights intact
func (nt *Network) InitActs() {
	for _, ly := range nt.Layers {
		if ly.IsOff() {
			continue
		}
		ly.(MesoLayer).InitActs()
	}
}

// InitExt initializes external drive state -- call prior to applying
// external rates to input populations
func (nt *Network) InitExt() {
	for _, ly := range nt.Layers {
		if ly.IsOff() {
			continue
		}
		ly.(MesoLayer).InitExt()
	}
}

// UpdateExtFlags updates the external drive flags based on current population
// Type field -- call this if the Type has changed since the last ApplyExt
// method call
func (nt *Network) UpdateExtFlags() {
	for _, ly := range nt.Layers {
		if ly.IsOff() {
			continue
		}
		ly.(MesoLayer).UpdateExtFlags()
	}
}

// Cycle runs one time step (ctx.Dt msec) of population updating:
// * Synaptic current decay and delivery of delayed spikes
// * Free membrane potential and adaptation integration
// * Spike count draw from the population hazard, refractory ledger shift
// * Queueing of the new spikes into outgoing delay buffers
// * Observer sampling
// Advancing the context clock is up to the caller, so that multiple
// networks can share one context.
func (nt *Network) Cycle(ctx *Context) {
	nt.EmerNet.(MesoNetwork).CycleImpl(ctx) // always use interface here to allow derived types
}

// CycleImpl handles the entire update for one time step of population activity
func (nt *Network) CycleImpl(ctx *Context) {
	nt.IFmSpikes(ctx)
	nt.StateFmI(ctx)
	nt.SpikesFmState(ctx)
	nt.SendSpikes(ctx)
	nt.CyclePost(ctx)
}

// IFmSpikes decays the synaptic currents and integrates spikes arriving this
// time step into them, for all populations
func (nt *Network) IFmSpikes(ctx *Context) {
	nt.ThrPopFun(func(pop MesoLayer) { pop.IFmSpikes(ctx) }, "IFmSpikes")
}

// StateFmI advances the free membrane potential from the total input current,
// for all populations
func (nt *Network) StateFmI(ctx *Context) {
	nt.ThrPopFun(func(pop MesoLayer) { pop.StateFmI(ctx) }, "StateFmI")
}

// SpikesFmState draws the population spike counts from the hazard, updates
// adaptation, and shifts the refractory ledgers, for all populations
func (nt *Network) SpikesFmState(ctx *Context) {
	nt.ThrPopFun(func(pop MesoLayer) { pop.SpikesFmState(ctx) }, "SpikesFmState")
}

// SendSpikes queues this step's spike counts into the outgoing pathway delay
// buffers, for all populations
func (nt *Network) SendSpikes(ctx *Context) {
	nt.ThrPopFun(func(pop MesoLayer) { pop.SendSpikes(ctx) }, "SendSpikes")
}

// CyclePost is called at the end of the cycle and lets observers sample the
// completed population state
func (nt *Network) CyclePost(ctx *Context) {
	nt.ThrPopFun(func(pop MesoLayer) { pop.CyclePost(ctx) }, "CyclePost")
}

//////////////////////////////////////////////////////////////////////////////////////
//  Lesion methods

// LayersSetOff sets the Off flag for all populations to given setting
func (nt *Network) LayersSetOff(off bool) {
	for _, ly := range nt.Layers {
		ly.SetOff(off)
	}
}

// UnLesionNeurons unlesions neurons in all populations in the network
func (nt *Network) UnLesionNeurons() {
	for _, ly := range nt.Layers {
		// keep all sync'd
		ly.(MesoLayer).AsMeso().UnLesionNeurons()
	}
}

// SizeReport returns a string reporting the size of each population and
// pathway in the network, and total memory footprint.  The entire point of
// the mesoscopic model is that this does not scale with the number of
// neurons -- only with the refractory and delay horizons.
func (nt *Network) SizeReport() string {
	var b strings.Builder
	npop := 0
	popMem := 0
	nbuf := 0
	bufMem := 0
	for _, ly := range nt.Layers {
		pop := ly.(MesoLayer).AsMeso()
		pmem := int(unsafe.Sizeof(Population{})) + 4*len(pop.Refrac.Bins)
		npop++
		popMem += pmem
		fmt.Fprintf(&b, "%14s:\t N: %d\t RefBins: %d\t Mem: %v \t Sends To:\n", pop.Nm, pop.N(), len(pop.Refrac.Bins), (datasize.ByteSize)(pmem).HumanReadable())
		for _, spj := range pop.SndPaths {
			pj := spj.(MesoPath).AsMeso()
			bmem := int(unsafe.Sizeof(Pathway{})) + 4*len(pj.SpikeBuf)
			nbuf += len(pj.SpikeBuf)
			bufMem += bmem
			fmt.Fprintf(&b, "\t%14s:\t DelaySteps: %d\t Mem: %v\n", pj.Recv.Name(), len(pj.SpikeBuf), (datasize.ByteSize)(bmem).HumanReadable())
		}
	}
	fmt.Fprintf(&b, "\n\n%14s:\t Pops: %d\t PopMem: %v \t DelaySlots: %d \t BufMem: %v\n",
		nt.Nm, npop, (datasize.ByteSize)(popMem).HumanReadable(), nbuf, (datasize.ByteSize)(bufMem).HumanReadable())
	return b.String()
}

var NetworkProps = ki.Props{
	"ToolBar": ki.PropSlice{
		{"SaveWtsJSON", ki.Props{
			"label": "Save Wts...",
			"icon":  "file-save",
			"desc":  "Save json-formatted weights",
			"Args": ki.PropSlice{
				{"Weights File Name", ki.Props{
					"default-field": "WtsFile",
					"ext":           ".wts,.wts.gz",
				}},
			},
		}},
		{"OpenWtsJSON", ki.Props{
			"label": "Open Wts...",
			"icon":  "file-open",
			"desc":  "Open json-formatted weights",
			"Args": ki.PropSlice{
				{"Weights File Name", ki.Props{
					"default-field": "WtsFile",
					"ext":           ".wts,.wts.gz",
				}},
			},
		}},
		{"sep-file", ki.BlankProp{}},
		{"Build", ki.Props{
			"icon": "update",
			"desc": "build the network's populations and pathways according to current params",
		}},
	},
}
