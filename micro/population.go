// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package micro

import (
	"github.com/emer/meso/meso"
	"github.com/goki/ki/kit"
	"github.com/goki/mat32"
)

// micro.Population simulates every GIF neuron in the population
// individually: each neuron integrates its own membrane potential, spikes
// as a Bernoulli draw from the escape-noise hazard of its own state, resets
// to VReset, and is held refractory for TRef.  Parameters and the
// population-level outputs (Act, ActAvg, Spikes, Avail) are shared with the
// embedded mesoscopic population, so observers and logs see both engines
// identically.
type Population struct {
	meso.Population
	Neurons []Neuron `desc:"slice of neuron state for this population -- flat list of len = Shape.Len(). You must iterate over index and use pointer to modify values."`
}

var KiT_Population = kit.Types.AddType(&Population{}, meso.PopulationProps)

// AsMicro returns this population as a micro.Population
func (pop *Population) AsMicro() *Population {
	return pop
}

// Build constructs the population state, the per-neuron connectivity of the
// receiving pathways, and the neuron slice.
func (pop *Population) Build() error {
	if err := pop.Population.Build(); err != nil {
		return err
	}
	pop.Neurons = make([]Neuron, pop.N())
	return nil
}

// InitActs initializes the dynamic state of every neuron: membrane
// potential at the resting potential, adaptation, currents, and refractory
// clocks at zero.  Parameters and lesions are not changed.
func (pop *Population) InitActs() {
	pop.Population.InitActs()
	vm := pop.GIF.Mem.EL
	for ni := range pop.Neurons {
		nrn := &pop.Neurons[ni]
		nrn.Spike = 0
		nrn.V = vm
		nrn.ISynEx = 0
		nrn.ISynIn = 0
		nrn.SfaF = 0
		nrn.SfaS = 0
		nrn.Sfa = 0
		nrn.RefrT = 0
	}
}

//////////////////////////////////////////////////////////////////////////////////////
//  Cycle methods

// IFmSpikes decays every neuron's synaptic current accumulators, delivers
// the spike currents arriving this step from the receiving pathways, and
// evaluates the stimulus current.  The population ISyn is the mean
// per-neuron synaptic current, directly comparable to the mesoscopic value.
func (pop *Population) IFmSpikes(ctx *meso.Context) {
	pop.IStim = pop.GIF.Mem.IE + pop.Stim.Current(ctx.Time)
	decEx := pop.GIF.Syn.Decay(ctx.Dt, true)
	decIn := pop.GIF.Syn.Decay(ctx.Dt, false)
	for ni := range pop.Neurons {
		nrn := &pop.Neurons[ni]
		nrn.ISynEx *= decEx
		nrn.ISynIn *= decIn
	}
	for _, p := range pop.RcvPaths {
		if p.IsOff() {
			continue
		}
		p.(MicroPath).RecvISyn()
	}
	isyn := float32(0)
	for ni := range pop.Neurons {
		nrn := &pop.Neurons[ni]
		isyn += nrn.ISynEx + nrn.ISynIn
	}
	if n := pop.N(); n > 0 {
		pop.ISyn = isyn / float32(n)
	}
}

// StateFmI integrates each free neuron's membrane potential from its total
// input current, using the exact exponential update over one time step.
// Refractory neurons hold at VReset, and clamped populations hold at rest.
func (pop *Population) StateFmI(ctx *meso.Context) {
	if pop.Clamped {
		return
	}
	live := pop.N() - pop.NLesion
	for ni := 0; ni < live; ni++ {
		nrn := &pop.Neurons[ni]
		if nrn.RefrT > 0 {
			continue
		}
		nrn.V = pop.GIF.Mem.VmFmI(nrn.V, pop.IStim+nrn.ISynEx+nrn.ISynIn, ctx.Dt)
	}
}

// SpikesFmState draws this step's spikes neuron by neuron.  Each free
// neuron spikes with probability 1 - exp(-rate*dt) from the hazard of its
// own potential above its own adapted threshold (or from the applied rate
// if clamped), then resets to VReset and starts its refractory clock.
// Adaptation decays every step and jumps by the full Q on the neuron's own
// spike.  The population Rate and FreeV outputs are means over the free
// neurons and ThetaF / ThetaS are means over all live ones, so both engines
// report the same quantities.
func (pop *Population) SpikesFmState(ctx *meso.Context) {
	n := pop.N()
	live := n - pop.NLesion
	var pext float32
	if pop.Clamped {
		pext = pop.GIF.Hazard.SpikeProb(pop.Ext, ctx.Dt)
	}
	avail := 0
	cnt := 0
	rsum := float32(0)
	vsum := float32(0)
	tfsum := float32(0)
	tssum := float32(0)
	for ni := 0; ni < live; ni++ {
		nrn := &pop.Neurons[ni]
		nrn.Spike = 0
		if nrn.RefrT > 0 {
			// refractory: cannot spike this step, clock and adaptation advance
			nrn.RefrT -= ctx.Dt
			if nrn.RefrT < 0 {
				nrn.RefrT = 0
			}
			nrn.SfaF = pop.GIF.Sfa.Fast.Decay(nrn.SfaF, ctx.Dt)
			nrn.SfaS = pop.GIF.Sfa.Slow.Decay(nrn.SfaS, ctx.Dt)
			nrn.Sfa = nrn.SfaF + nrn.SfaS
			tfsum += nrn.SfaF
			tssum += nrn.SfaS
			continue
		}
		avail++
		vsum += nrn.V
		var p float32
		if pop.Clamped {
			p = pext
		} else {
			r := pop.GIF.HazardRate(nrn.V, nrn.SfaF+nrn.SfaS)
			rsum += r
			p = pop.GIF.Hazard.SpikeProb(r, ctx.Dt)
		}
		spiked := p > 0 && ctx.Rand.Float32() < p
		nrn.SfaF = pop.GIF.Sfa.Fast.Decay(nrn.SfaF, ctx.Dt)
		nrn.SfaS = pop.GIF.Sfa.Slow.Decay(nrn.SfaS, ctx.Dt)
		if spiked {
			nrn.Spike = 1
			nrn.V = pop.GIF.Mem.VReset
			nrn.RefrT = pop.GIF.Mem.TRef
			nrn.SfaF = pop.GIF.Sfa.Fast.Inc(nrn.SfaF, 1)
			nrn.SfaS = pop.GIF.Sfa.Slow.Inc(nrn.SfaS, 1)
			cnt++
		}
		nrn.Sfa = nrn.SfaF + nrn.SfaS
		tfsum += nrn.SfaF
		tssum += nrn.SfaS
	}
	pop.Avail = avail
	pop.Spikes = cnt
	switch {
	case pop.Clamped:
		pop.Rate = pop.Ext
	case avail > 0:
		pop.Rate = rsum / float32(avail)
	default:
		pop.Rate = 0
	}
	if avail > 0 {
		pop.FreeV = vsum / float32(avail)
	}
	if live > 0 {
		pop.ThetaF = tfsum / float32(live)
		pop.ThetaS = tssum / float32(live)
	}
	pop.Act = 1000 * float32(cnt) / (float32(n) * ctx.Dt)
	pop.GIF.Avg.AvgFmAct(&pop.ActAvg, pop.Act, ctx.Dt)
}

// SendSpikes queues each spiking neuron's output into the delay rings of
// the sending pathways, for delivery to its receivers after each pathway's
// delay.
func (pop *Population) SendSpikes(ctx *meso.Context) {
	if pop.Spikes == 0 {
		return
	}
	live := pop.N() - pop.NLesion
	for ni := 0; ni < live; ni++ {
		nrn := &pop.Neurons[ni]
		if nrn.Spike == 0 {
			continue
		}
		for _, sp := range pop.SndPaths {
			if sp.IsOff() {
				continue
			}
			sp.(MicroPath).SendSpike(ni)
		}
	}
}

//////////////////////////////////////////////////////////////////////////////////////
//  Lesion

// LesionNeurons lesions given proportion (0-1) of neurons in the
// population, permanently excluding them from spiking, and returns the
// number lesioned.  All refractory clocks restart free, matching the
// mesoscopic ledger reset.
func (pop *Population) LesionNeurons(prop float32) int {
	nl := pop.Population.LesionNeurons(prop)
	for ni := range pop.Neurons {
		nrn := &pop.Neurons[ni]
		nrn.Spike = 0
		nrn.RefrT = 0
	}
	return nl
}

//////////////////////////////////////////////////////////////////////////////////////
//  Unit variables

// UnitVarNames returns a list of variable names available on the units in
// this population: the population-level variables, then the per-neuron ones.
func (pop *Population) UnitVarNames() []string {
	return NeuronVarsAll
}

// UnitVarProps returns properties for variables
func (pop *Population) UnitVarProps() map[string]string {
	return NeuronVarProps
}

// UnitVarIdx returns the index of given variable within the unit,
// according to UnitVarNames() list (using a map to lookup index),
// or -1 and error message if not found.
func (pop *Population) UnitVarIdx(varNm string) (int, error) {
	vidx, err := pop.Population.UnitVarIdx(varNm)
	if err == nil {
		return vidx, err
	}
	vidx, err = NeuronVarIdxByName(varNm)
	if err != nil {
		return -1, err
	}
	nn := pop.Population.UnitVarNum()
	return nn + vidx, nil
}

// UnitVarNum returns the number of unit-level variables for this
// population.  This is needed for extending indexes in derived types.
func (pop *Population) UnitVarNum() int {
	return pop.Population.UnitVarNum() + len(NeuronVars)
}

// UnitVal1D returns value of given variable index on given unit, using
// 1-dimensional index.  Population-level variables are broadcast to every
// unit; per-neuron variables return the unit's own value.  Returns NaN on
// invalid index.
func (pop *Population) UnitVal1D(varIdx int, idx int) float32 {
	if varIdx < 0 {
		return mat32.NaN()
	}
	nn := pop.Population.UnitVarNum()
	if varIdx < nn {
		return pop.Population.UnitVal1D(varIdx, idx)
	}
	if idx < 0 || idx >= len(pop.Neurons) {
		return mat32.NaN()
	}
	varIdx -= nn
	if varIdx >= len(NeuronVars) {
		return mat32.NaN()
	}
	nrn := &pop.Neurons[idx]
	return nrn.VarByIndex(varIdx)
}

// VarRange returns the min / max values for given variable, scanning every
// neuron for the per-neuron variables.
func (pop *Population) VarRange(varNm string) (min, max float32, err error) {
	vidx := 0
	vidx, err = pop.MesoPop.UnitVarIdx(varNm)
	if err != nil {
		return
	}
	nn := len(pop.Neurons)
	if nn == 0 {
		return 0, 0, nil
	}
	v0 := pop.MesoPop.UnitVal1D(vidx, 0)
	min, max = v0, v0
	for i := 1; i < nn; i++ {
		vl := pop.MesoPop.UnitVal1D(vidx, i)
		if vl < min {
			min = vl
		}
		if vl > max {
			max = vl
		}
	}
	return
}
