// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package sfa implements spike-frequency adaptation for GIF neurons as a set of
exponentially-decaying threshold traces (theta).

Each spike raises the effective firing threshold by Q mV per trace, and the
contribution decays back toward zero with time constant Tau.  Multiple traces
with different time constants capture adaptation operating over multiple
timescales (e.g. a fast ~100 msec component and a slow ~1 sec component).

The traces themselves are state owned by the population (mesoscopic: one
trace value per component per population, incremented by the per-neuron
normalized spike count) or by each neuron (microscopic: incremented by 1 per
own spike) -- this package holds only the parameters and the update math, so
both engines share identical adaptation dynamics.
*/
package sfa

import "github.com/chewxy/math32"

// Trace is one exponential adaptation component: each spike adds Q mV to the
// effective threshold, decaying with time constant Tau.
type Trace struct {
	On  bool    `desc:"include this adaptation component"`
	Tau float32 `viewif:"On" min:"1" desc:"decay time constant in msec -- theta relaxes toward zero as exp(-dt/Tau) per step"`
	Q   float32 `viewif:"On" min:"0" desc:"threshold increment in mV added per spike (per-neuron normalized for the population-level trace)"`
}

func (tr *Trace) Defaults() {
	tr.Tau = 100
	tr.Q = 10
	tr.Update()
}

func (tr *Trace) Update() {
}

// Decay returns theta decayed over one timestep of dt msec: theta * exp(-dt/Tau).
func (tr *Trace) Decay(theta, dt float32) float32 {
	if !tr.On {
		return 0
	}
	return theta * math32.Exp(-dt/tr.Tau)
}

// Inc returns theta incremented for spiking: theta + Q * nrm, where nrm is
// the per-neuron normalized spike count (spikes / N for a population trace,
// 1 for a neuron's own spike).
func (tr *Trace) Inc(theta, nrm float32) float32 {
	if !tr.On {
		return 0
	}
	return theta + tr.Q*nrm
}

// Params are the spike-frequency adaptation parameters: a fast and a slow
// exponential threshold trace.  Components that are not On contribute
// nothing and their trace stays at zero.
type Params struct {
	Fast Trace `view:"inline" desc:"faster adaptation component (~100 msec timescale)"`
	Slow Trace `view:"inline" desc:"slower adaptation component (~1 sec timescale)"`
}

func (ap *Params) Defaults() {
	ap.Fast.Defaults()
	ap.Slow.Defaults()
	ap.Slow.Tau = 1000
	ap.Slow.Q = 1
	ap.Update()
}

func (ap *Params) Update() {
	ap.Fast.Update()
	ap.Slow.Update()
}

// On returns true if any adaptation component is enabled.
func (ap *Params) On() bool {
	return ap.Fast.On || ap.Slow.On
}
