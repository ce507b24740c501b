// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package psc provides exponential post-synaptic current kinetics for GIF
neuron models (the psc_exp synapse type).

A spike arriving on a connection adds the connection weight (in pA) to a
current accumulator, which then decays exponentially with the synaptic time
constant of the receiving population -- TauEx for excitatory (positive
weight) input and TauIn for inhibitory (negative weight) input.  The
accumulator state lives on pathways (mesoscopic: one per pathway) or neurons
(microscopic: one excitatory + one inhibitory per neuron); this package holds
the shared parameters and update math.
*/
package psc

import "github.com/chewxy/math32"

// Params are the exponential post-synaptic current parameters of a
// receiving population.
type Params struct {
	TauEx float32 `def:"3" min:"0.001" desc:"decay time constant in msec for excitatory (positive weight) synaptic current"`
	TauIn float32 `def:"6" min:"0.001" desc:"decay time constant in msec for inhibitory (negative weight) synaptic current"`
}

func (sp *Params) Defaults() {
	sp.TauEx = 3
	sp.TauIn = 6
	sp.Update()
}

func (sp *Params) Update() {
}

// Decay returns the per-step decay factor exp(-dt/tau) for the excitatory
// (exc = true) or inhibitory synaptic current, for timestep dt msec.
func (sp *Params) Decay(dt float32, exc bool) float32 {
	if exc {
		return math32.Exp(-dt / sp.TauEx)
	}
	return math32.Exp(-dt / sp.TauIn)
}

// Tau returns the time constant selected by the sign of the given weight:
// TauEx for w >= 0, TauIn otherwise.
func (sp *Params) Tau(w float32) float32 {
	if w >= 0 {
		return sp.TauEx
	}
	return sp.TauIn
}

// GFmTau returns the conversion factor C_m / tau_syn (pF / msec = nS * 1000)
// that turns a connection strength expressed in mV into a current step in pA,
// as used when translating voltage-scale coupling parameters into psc_exp
// weights.
func GFmTau(cm, tau float32) float32 {
	return cm / tau
}
