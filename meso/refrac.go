// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meso

import (
	"github.com/chewxy/math32"
)

// meso.RefracBuf is the refractory ledger for a population: a circular
// buffer of recent per-step spike counts covering the absolute refractory
// period.  The sum over the buffer is the number of currently refractory
// neurons, which are excluded from spiking.  Neurons that spiked K steps
// ago, where K is the buffer length, drop out of the ledger and become
// available again, so each spike silences its neuron for exactly K steps.
type RefracBuf struct {
	Bins    []int32 `view:"-" desc:"circular buffer of spike counts, one bin per time step over the refractory period"`
	Off     int     `view:"-" desc:"index of the oldest bin, which is retired and overwritten on the next Shift"`
	NRefrac int     `inactive:"+" desc:"current number of refractory neurons = sum over Bins -- maintained incrementally"`
}

// Config sizes the ledger to cover a refractory period of tref msec at
// dt msec per step: ceil(tref/dt) bins.  tref = 0 yields zero bins, in
// which case no neuron is ever counted refractory.
func (rb *RefracBuf) Config(tref, dt float32) {
	nbins := 0
	if tref > 0 {
		nbins = int(math32.Ceil(tref / dt))
	}
	rb.Bins = make([]int32, nbins)
	rb.Init()
}

// Init zeroes the ledger without changing its size
func (rb *RefracBuf) Init() {
	for i := range rb.Bins {
		rb.Bins[i] = 0
	}
	rb.Off = 0
	rb.NRefrac = 0
}

// Refrac returns the number of currently refractory neurons
func (rb *RefracBuf) Refrac() int {
	return rb.NRefrac
}

// Shift advances the ledger by one step: the oldest bin is retired (those
// neurons become available again) and the new spike count takes its place.
func (rb *RefracBuf) Shift(spikes int) {
	if len(rb.Bins) == 0 {
		return
	}
	rb.NRefrac -= int(rb.Bins[rb.Off])
	rb.Bins[rb.Off] = int32(spikes)
	rb.NRefrac += spikes
	rb.Off++
	if rb.Off >= len(rb.Bins) {
		rb.Off = 0
	}
}
