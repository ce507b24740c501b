// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meso

import (
	"testing"
)

func TestRefracConfig(t *testing.T) {
	tests := []struct {
		tref  float32
		dt    float32
		nbins int
	}{
		{4, 0.5, 8},
		{4, 1, 4},
		{1, 0.4, 3}, // ceil(2.5)
		{0.2, 0.5, 1},
		{0, 0.5, 0},
	}
	rb := RefracBuf{}
	for _, ts := range tests {
		rb.Config(ts.tref, ts.dt)
		if len(rb.Bins) != ts.nbins {
			t.Errorf("Config(%v, %v): %v bins, cor: %v\n", ts.tref, ts.dt, len(rb.Bins), ts.nbins)
		}
		if rb.Refrac() != 0 {
			t.Errorf("freshly configured ledger must have 0 refractory\n")
		}
	}
}

func TestRefracShift(t *testing.T) {
	rb := RefracBuf{}
	rb.Config(1, 0.5) // 2 bins: each spike count occupies the ledger for 2 shifts
	shifts := []int{5, 3, 2, 0, 0, 0}
	cors := []int{5, 8, 5, 2, 0, 0}
	for i, sp := range shifts {
		rb.Shift(sp)
		if rb.Refrac() != cors[i] {
			t.Errorf("shift %v (count %v): refrac %v, cor: %v\n", i, sp, rb.Refrac(), cors[i])
		}
	}
}

func TestRefracOccupancy(t *testing.T) {
	rb := RefracBuf{}
	rb.Config(4, 0.5)
	n := 100
	for i := 0; i < 200; i++ {
		avail := n - rb.Refrac()
		if avail < 0 {
			t.Errorf("step %v: available went negative: %v\n", i, avail)
		}
		rb.Shift(avail / 2)
		if rb.Refrac() > n {
			t.Errorf("step %v: refractory count %v exceeds population size %v\n", i, rb.Refrac(), n)
		}
	}
	// with no further spikes, ledger must fully drain in 8 shifts
	for i := 0; i < 8; i++ {
		rb.Shift(0)
	}
	if rb.Refrac() != 0 {
		t.Errorf("drained ledger must have 0 refractory, got: %v\n", rb.Refrac())
	}
}

func TestRefracZeroTRef(t *testing.T) {
	rb := RefracBuf{}
	rb.Config(0, 0.5)
	for i := 0; i < 10; i++ {
		rb.Shift(100)
		if rb.Refrac() != 0 {
			t.Errorf("zero refractory period must never gate, got: %v\n", rb.Refrac())
		}
	}
}
