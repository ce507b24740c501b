// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package stim provides piecewise-constant step current generators for
driving populations with a time-varying external input current.

A Step holds a list of onset times and matching amplitudes: the current
at time t is the amplitude of the most recent onset at or before t,
and 0 before the first onset.  This supports the standard protocol of
a baseline drive with transient steps on top.
*/
package stim

import (
	"fmt"
)

// Step is a piecewise-constant step current: at time t the current is
// the amplitude of the last onset at or before t, 0 before the first.
type Step struct {

	// onset times (msec) for each amplitude step, in increasing order
	Times []float32 `desc:"onset times (msec) for each amplitude step, in increasing order"`

	// current amplitudes (pA), one per onset time, held until the next onset
	Amps []float32 `desc:"current amplitudes (pA), one per onset time, held until the next onset"`
}

func (st *Step) Defaults() {
}

func (st *Step) Update() {
}

// AddStep appends an onset time (msec) and amplitude (pA).
// Times must be added in increasing order.
func (st *Step) AddStep(time, amp float32) {
	st.Times = append(st.Times, time)
	st.Amps = append(st.Amps, amp)
}

// Current returns the current (pA) at the given time (msec): the
// amplitude of the last onset at or before time, 0 before the first onset.
func (st *Step) Current(time float32) float32 {
	cur := float32(0)
	for i, t := range st.Times {
		if t > time {
			break
		}
		cur = st.Amps[i]
	}
	return cur
}

// Validate checks that times and amplitudes match up and times are
// strictly increasing, returning an error describing any problem.
func (st *Step) Validate() error {
	if len(st.Times) != len(st.Amps) {
		return fmt.Errorf("stim.Step: %d onset times but %d amplitudes", len(st.Times), len(st.Amps))
	}
	for i := 1; i < len(st.Times); i++ {
		if st.Times[i] <= st.Times[i-1] {
			return fmt.Errorf("stim.Step: onset times must be strictly increasing: time %g at index %d follows %g", st.Times[i], i, st.Times[i-1])
		}
	}
	return nil
}
