// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package hazard provides the exponential escape-noise hazard function used by
generalized integrate-and-fire (GIF) neuron models.

Instead of firing deterministically when the membrane potential crosses a
fixed threshold, an escape-noise neuron fires stochastically with an
instantaneous rate (hazard) that grows exponentially with the distance of the
membrane potential above the (adapting) threshold:

	rho(h) = Lambda0 * exp(h / DeltaV)

where h = V - (VTStar + theta) is the potential above threshold in mV.
DeltaV controls the softness of the threshold: small DeltaV approaches a hard
threshold, large DeltaV produces graded, noisy firing well below threshold.

The exponent is clamped at MaxExp so the hazard saturates instead of
overflowing float32 range for extreme inputs.
*/
package hazard

import "github.com/chewxy/math32"

// Params are the exponential escape-noise hazard function parameters.
// Rate returns the instantaneous firing rate (hazard) in spikes / sec for a
// given potential above threshold, and SpikeProb converts a rate into the
// probability of at least one spike within a timestep.
type Params struct {
	Lambda0 float32 `def:"10" min:"0" desc:"baseline escape rate at threshold (h = 0), in spikes / sec -- the hazard equals Lambda0 when the membrane potential sits exactly at the effective threshold"`
	DeltaV  float32 `def:"2.5" min:"0.001" desc:"threshold softness (noise amplitude) in mV -- e-fold change in hazard per DeltaV mV of potential above threshold -- smaller is closer to a deterministic hard threshold"`
	MaxExp  float32 `def:"20" view:"-" json:"-" xml:"-" desc:"upper bound on the exponent h / DeltaV -- the hazard saturates at Lambda0 * exp(MaxExp) rather than overflowing for extreme depolarizations"`
}

func (hp *Params) Update() {
}

func (hp *Params) Defaults() {
	hp.Lambda0 = 10
	hp.DeltaV = 2.5
	hp.MaxExp = 20
	hp.Update()
}

// Rate returns the instantaneous hazard rho(h) = Lambda0 * exp(h / DeltaV)
// in spikes / sec, for potential above effective threshold h in mV.
// The exponent is clamped at MaxExp -- saturation, not an error.
func (hp *Params) Rate(h float32) float32 {
	ex := h / hp.DeltaV
	if ex > hp.MaxExp {
		ex = hp.MaxExp
	}
	return hp.Lambda0 * math32.Exp(ex)
}

// SpikeProb returns the probability 1 - exp(-rate * dt) that a neuron with
// given hazard rate (spikes / sec) emits at least one spike within a
// timestep of dt msec.
func (hp *Params) SpikeProb(rate, dt float32) float32 {
	return 1.0 - math32.Exp(-rate*dt*0.001)
}
