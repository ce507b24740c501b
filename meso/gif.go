// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meso

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"
	"github.com/emer/meso/hazard"
	"github.com/emer/meso/psc"
	"github.com/emer/meso/sfa"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

///////////////////////////////////////////////////////////////////////
//  gif.go contains the GIF neuron params and functions for meso

// meso.MemParams are the passive membrane, threshold, and refractory
// parameters for a population of GIF neurons.  Units follow the standard
// convention: msec, mV, pA, pF, so that resistance R = TauM / CM is in GOhm
// and R * I is in mV.
type MemParams struct {
	TauM   float32 `def:"20" min:"0.001" desc:"membrane time constant (msec)"`
	CM     float32 `def:"250" min:"0.001" desc:"membrane capacitance (pF)"`
	EL     float32 `def:"0" desc:"leak reversal (resting) potential (mV) -- the membrane relaxes to EL + R * I"`
	VTStar float32 `def:"15" desc:"baseline firing threshold (mV) -- the effective threshold is VTStar plus the adaptation theta"`
	VReset float32 `def:"0" desc:"membrane potential immediately after a spike (mV) -- used by the microscopic engine only, as the mesoscopic free potential does not reset"`
	TRef   float32 `def:"4" min:"0" desc:"absolute refractory period (msec) -- 0 disables refractory gating entirely"`
	IE     float32 `def:"0" desc:"constant external input current (pA), added to any stimulus generator current"`
	R      float32 `inactive:"+" desc:"membrane resistance (GOhm) = TauM / CM -- computed in Update"`
}

func (mp *MemParams) Defaults() {
	mp.TauM = 20
	mp.CM = 250
	mp.EL = 0
	mp.VTStar = 15
	mp.VReset = 0
	mp.TRef = 4
	mp.IE = 0
	mp.Update()
}

// Update must be called after any changes to parameters
func (mp *MemParams) Update() {
	mp.R = mp.TauM / mp.CM
}

// SteadyV returns the steady-state membrane potential (mV) for a constant
// total input current i (pA): EL + R * i.
func (mp *MemParams) SteadyV(i float32) float32 {
	return mp.EL + mp.R*i
}

// VmFmI integrates the membrane potential over one time step of dt msec
// under constant total input current i (pA), using the exact exponential
// solution of the membrane equation: vm relaxes toward SteadyV(i) with
// time constant TauM.
func (mp *MemParams) VmFmI(vm, i, dt float32) float32 {
	vinf := mp.SteadyV(i)
	return vinf + (vm-vinf)*math32.Exp(-dt/mp.TauM)
}

// Validate checks the membrane parameters, returning an error describing
// the first problem found.
func (mp *MemParams) Validate() error {
	if mp.TauM <= 0 {
		return fmt.Errorf("TauM must be > 0, is: %g", mp.TauM)
	}
	if mp.CM <= 0 {
		return fmt.Errorf("CM must be > 0, is: %g", mp.CM)
	}
	if mp.TRef < 0 {
		return fmt.Errorf("TRef must be >= 0, is: %g", mp.TRef)
	}
	return nil
}

///////////////////////////////////////////////////////////////////////
//  SampleParams

// meso.SampleParams determine how the population spike count is drawn from
// the aggregate hazard each step.  The default is a binomial draw over the
// available (non-refractory) neurons with per-neuron probability
// 1 - exp(-rate*dt), which is exact for the escape-noise process at any
// rate.  The Poisson option approximates it with mean rate*dt*available,
// which is cheaper but heavier-tailed at high rates; a Poisson draw is
// clipped at available, so it can never exceed the sampling bound.
type SampleParams struct {
	Poisson bool `def:"false" desc:"use a Poisson draw with mean rate*dt*available, clipped at available, instead of the default binomial over available neurons"`
}

func (sp *SampleParams) Defaults() {
	sp.Poisson = false
}

func (sp *SampleParams) Update() {
}

// CountFmRate returns the number of neurons spiking in the current step,
// given the per-neuron hazard rate (Hz), the number of non-refractory
// neurons available to spike, and the step size dt (msec), drawing from rnd.
// The returned count is always in [0, avail].
func (sp *SampleParams) CountFmRate(rate float32, avail int, dt float32, rnd *rand.Rand) int {
	if avail <= 0 || rate <= 0 {
		return 0
	}
	if sp.Poisson {
		lam := float64(rate) * 0.001 * float64(dt) * float64(avail)
		cnt := int(distuv.Poisson{Lambda: lam, Src: rnd}.Rand())
		if cnt > avail { // Poisson is unbounded -- clip at avail
			cnt = avail
		}
		return cnt
	}
	p := 1 - math.Exp(-float64(rate)*0.001*float64(dt))
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return avail
	}
	return int(distuv.Binomial{N: float64(avail), P: p, Src: rnd}.Rand())
}

///////////////////////////////////////////////////////////////////////
//  AvgParams

// meso.AvgParams govern the running average of population activity,
// integrated over time for a smoother readout than the raw per-step value.
type AvgParams struct {
	Tau float32 `def:"100" min:"1" desc:"time constant (msec) for integrating the running-average activity"`
}

func (ap *AvgParams) Defaults() {
	ap.Tau = 100
}

func (ap *AvgParams) Update() {
}

// AvgFmAct updates the running average avg from the current activity act,
// over one time step of dt msec.
func (ap *AvgParams) AvgFmAct(avg *float32, act, dt float32) {
	fr := dt / ap.Tau
	if fr > 1 {
		fr = 1
	}
	*avg += fr * (act - *avg)
}

///////////////////////////////////////////////////////////////////////
//  GIFParams

// meso.GIFParams contains all the generalized integrate-and-fire neuron
// parameters for a population, shared by the mesoscopic and microscopic
// engines.  This is included in meso.Population to drive the computation.
type GIFParams struct {
	Mem    MemParams     `view:"inline" desc:"passive membrane, threshold, and refractory parameters"`
	Hazard hazard.Params `view:"inline" desc:"escape-noise hazard function mapping distance-to-threshold into an instantaneous firing rate"`
	Sfa    sfa.Params    `view:"no-inline" desc:"spike-frequency adaptation: spike-triggered threshold increments at fast and slow time scales"`
	Syn    psc.Params    `view:"inline" desc:"exponential post-synaptic current time constants for inputs received by this population"`
	Sample SampleParams  `view:"inline" desc:"how the population spike count is drawn from the aggregate hazard"`
	Avg    AvgParams     `view:"inline" desc:"running average of population activity"`
}

func (gp *GIFParams) Defaults() {
	gp.Mem.Defaults()
	gp.Hazard.Defaults()
	gp.Sfa.Defaults()
	gp.Syn.Defaults()
	gp.Sample.Defaults()
	gp.Avg.Defaults()
	gp.Update()
}

// Update must be called after any changes to parameters
func (gp *GIFParams) Update() {
	gp.Mem.Update()
	gp.Hazard.Update()
	gp.Sfa.Update()
	gp.Syn.Update()
	gp.Sample.Update()
	gp.Avg.Update()
}

// HazardRate returns the escape-noise firing rate (Hz) for the given
// membrane potential and total adaptation theta (mV): the hazard is driven
// by the distance of vm above the effective threshold VTStar + theta.
func (gp *GIFParams) HazardRate(vm, theta float32) float32 {
	return gp.Hazard.Rate(vm - (gp.Mem.VTStar + theta))
}

// Validate checks all parameters for validity at construction time,
// returning an error describing the first problem found.  The simulation
// must not start if this fails.
func (gp *GIFParams) Validate() error {
	if err := gp.Mem.Validate(); err != nil {
		return err
	}
	if gp.Hazard.DeltaV <= 0 {
		return fmt.Errorf("Hazard.DeltaV must be > 0, is: %g", gp.Hazard.DeltaV)
	}
	if gp.Hazard.Lambda0 < 0 {
		return fmt.Errorf("Hazard.Lambda0 must be >= 0, is: %g", gp.Hazard.Lambda0)
	}
	if gp.Sfa.Fast.On && gp.Sfa.Fast.Tau <= 0 {
		return fmt.Errorf("Sfa.Fast.Tau must be > 0, is: %g", gp.Sfa.Fast.Tau)
	}
	if gp.Sfa.Slow.On && gp.Sfa.Slow.Tau <= 0 {
		return fmt.Errorf("Sfa.Slow.Tau must be > 0, is: %g", gp.Sfa.Slow.Tau)
	}
	if gp.Syn.TauEx <= 0 || gp.Syn.TauIn <= 0 {
		return fmt.Errorf("Syn time constants must be > 0, are: %g, %g", gp.Syn.TauEx, gp.Syn.TauIn)
	}
	return nil
}
