// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meso

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// meso.Context contains the timing state, integration step size, and random
// number source for running a simulation.  Every stochastic draw in the
// network goes through the Rand source here, so a run is exactly
// reproducible from RandSeed -- there is no global state.
type Context struct {
	Time     float32    `desc:"accumulated amount of simulation time the network has been running, in msec"`
	Cycle    int        `desc:"cycle counter: number of iterations of network updating on the current run -- zeroed by Reset"`
	CycleTot int        `desc:"total cycle count -- increments continuously from whenever it was last reset"`
	Dt       float32    `def:"0.5" min:"0.001" desc:"integration time step, in msec -- every population and pathway advances by this amount per cycle"`
	RandSeed int64      `desc:"random seed for the Rand source -- runs with the same seed and parameters produce identical spike counts"`
	Rand     *rand.Rand `view:"-" desc:"random number source used for all sampling in the network -- local to this context so that concurrent simulations do not interact"`
}

// NewContext returns a new Context with default parameters, seeded with seed.
func NewContext(seed int64) *Context {
	ct := &Context{}
	ct.Defaults()
	ct.Seed(seed)
	return ct
}

// Defaults sets default parameter values
func (ct *Context) Defaults() {
	ct.Dt = 0.5
}

// Seed sets the random seed and resets the Rand source to it
func (ct *Context) Seed(seed int64) {
	ct.RandSeed = seed
	ct.Rand = rand.New(rand.NewSource(uint64(seed)))
}

// Reset resets the counters back to zero and restores the Rand source to
// its seeded state, so the next run reproduces the last one exactly.
func (ct *Context) Reset() {
	ct.Time = 0
	ct.Cycle = 0
	ct.CycleTot = 0
	if ct.Dt == 0 {
		ct.Defaults()
	}
	ct.Seed(ct.RandSeed)
}

// CycleInc increments at the cycle level, advancing Time by Dt
func (ct *Context) CycleInc() {
	ct.Cycle++
	ct.CycleTot++
	ct.Time += ct.Dt
}

// DtSec returns the integration time step in seconds, for computing
// per-step spike probabilities from rates in Hz.
func (ct *Context) DtSec() float32 {
	return 0.001 * ct.Dt
}

// Validate checks that the context can drive a network, returning an error
// describing any problem.
func (ct *Context) Validate() error {
	if ct.Dt <= 0 {
		return fmt.Errorf("meso.Context: Dt must be > 0, is: %g", ct.Dt)
	}
	if ct.Rand == nil {
		return fmt.Errorf("meso.Context: Rand is nil -- use NewContext or call Seed")
	}
	return nil
}
