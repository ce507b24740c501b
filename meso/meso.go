// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package meso implements the mesoscopic GIF engine: networks of populations of
generalized integrate-and-fire neurons where each population is a single unit,
and the number of neurons spiking per time step is sampled in closed form from
the escape-noise hazard of the population state.

A population carries a free membrane potential integrating synaptic and
stimulus currents, fast and slow adaptation traces incremented by its own
spiking, and a refractory ledger tracking how many neurons are still within
the absolute refractory period of a recent spike.  Each cycle, the hazard of
the free potential above the adapted threshold gives a spike probability, the
spike count is drawn binomially (or Poisson) over the available neurons, and
the count is queued into sending pathways for delayed delivery.  No per-neuron
state exists anywhere, so the cost per cycle is independent of the population
size N.

Networks, populations, and pathways satisfy the emergent emer.Network,
emer.Layer, and emer.Prjn interfaces, parameters apply through params.Sets,
and the Recorder logs population state into etable.Tables.  The companion
micro package implements the identical model per neuron for validation.
*/
package meso

import (
	"github.com/emer/emergent/emer"
)

// MesoLayer defines the essential algorithmic API for GIF population
// engines, at the layer (population) level.  The base implementation here
// is the mesoscopic rate engine; the micro package provides the per-neuron
// version behind the same interface, so networks of either kind are cycled
// identically.
type MesoLayer interface {
	emer.Layer

	// AsMeso returns this layer as a meso.Population -- all derived layers
	// embed the base Population, so this gives access to all the base
	// state and parameters without requiring interface accessors for
	// everything.
	AsMeso() *Population

	// BuildCtx allocates the time-step dependent state (refractory ledger,
	// pathway delay queues) from the context, after Build has constructed
	// the structural state.  Returns an error for invalid configuration.
	BuildCtx(ctx *Context) error

	// InitActs initializes the dynamic state: membrane potential,
	// adaptation traces, synaptic currents, refractory ledger, counters.
	InitActs()

	// IFmSpikes integrates the synaptic input currents from spike counts
	// delivered by receiving pathways this step, plus the stimulus current.
	IFmSpikes(ctx *Context)

	// StateFmI integrates the membrane state from the input currents.
	StateFmI(ctx *Context)

	// SpikesFmState samples this step's spike count from the hazard of
	// the integrated state, updates adaptation and the refractory ledger,
	// and computes the emitted rate and activity.
	SpikesFmState(ctx *Context)

	// SendSpikes queues this step's spike output into the sending
	// pathways' delay lines for future delivery.
	SendSpikes(ctx *Context)

	// CyclePost is called after all other cycle phases, and delivers the
	// population state to any attached observers.
	CyclePost(ctx *Context)

	// State returns a value snapshot of the population state -- observers
	// consume this and cannot perturb the engine through it.
	State(ctx *Context) PopState
}

// MesoPath defines the structural API for pathways between populations.
// Per-step synaptic stepping and spike sending are engine-specific and are
// handled by each engine's own concrete pathway type.
type MesoPath interface {
	emer.Prjn

	// AsMeso returns this pathway as a meso.Pathway
	AsMeso() *Pathway

	// BuildCtx allocates the delay queue from the context time step,
	// after Build.  Returns an error if the delay is invalid (< dt).
	BuildCtx(ctx *Context) error

	// InitWts initializes the weight state of the pathway
	InitWts()

	// InitSyn zeroes the synaptic current accumulator and delay queue
	InitSyn()
}

// MesoNetwork defines the essential algorithmic API at the network level.
type MesoNetwork interface {
	emer.Network

	// AsMeso returns this network as a meso.Network
	AsMeso() *Network

	// CycleImpl runs one full cycle of updating, in barrier-synchronized
	// phases across all populations.
	CycleImpl(ctx *Context)
}
