// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package micro implements the microscopic GIF engine: the same generalized
integrate-and-fire populations as the meso package, but simulated per neuron
and per synapse instead of at the population level.

Every neuron carries its own membrane potential, adaptation traces, and
refractory clock, spikes as a Bernoulli draw from the escape-noise hazard of
its own state, and delivers spikes through individual synapses with
per-connection weights.  Parameters and update math are shared with meso
(hazard, sfa, psc, stim packages), so a microscopic population is the exact
per-neuron elaboration of a mesoscopic one: running both on the same
configuration and comparing population activity is the standard validation
of the mesoscopic approximation.

State and cost per step scale with the number of neurons and synapses, so
this engine is for validation and small networks, not large ones.
*/
package micro

import (
	"github.com/emer/meso/meso"
)

// MicroLayer is the layer-level API of the microscopic engine: the meso
// cycle interface plus access to the concrete micro.Population.
type MicroLayer interface {
	meso.MesoLayer

	// AsMicro returns this layer as a micro.Population
	AsMicro() *Population
}

// MicroPath is the pathway-level API of the microscopic engine.
type MicroPath interface {
	meso.MesoPath

	// AsMicro returns this pathway as a micro.Pathway
	AsMicro() *Pathway

	// RecvISyn delivers the spike currents arriving this step into the
	// receiving neurons' synaptic accumulators, and advances the delay ring.
	RecvISyn()

	// SendSpike queues a spike from sending neuron index si into the delay
	// ring, adding each synapse's weight for delivery after Delay.
	SendSpike(si int)
}
