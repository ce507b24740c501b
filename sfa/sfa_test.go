// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sfa

import (
	"testing"

	"github.com/chewxy/math32"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-4)

func TestTraceDecay(t *testing.T) {
	tr := Trace{}
	tr.Defaults()
	tr.On = true
	tr.Tau = 100

	theta := float32(10)
	dt := float32(0.5)
	for i := 0; i < 200; i++ {
		nw := tr.Decay(theta, dt)
		if nw < 0 {
			t.Errorf("trace went negative: step: %v, theta: %v\n", i, nw)
		}
		if nw >= theta {
			t.Errorf("trace decay not monotone: step: %v, theta: %v, prev: %v\n", i, nw, theta)
		}
		theta = nw
	}
	// 200 steps of 0.5 msec = 1 Tau: should be near 10 / e
	cor := float32(10) / math32.E
	if math32.Abs(theta-cor) > difTol*10 {
		t.Errorf("trace after one Tau: %v, cor: %v\n", theta, cor)
	}
}

func TestTraceInc(t *testing.T) {
	tr := Trace{On: true, Tau: 100, Q: 10}

	theta := tr.Inc(0, 1) // one spike, per-neuron
	if theta != 10 {
		t.Errorf("Inc per-neuron: %v, cor: 10\n", theta)
	}
	theta = tr.Inc(0, 0.25) // 250 spikes in a population of 1000
	if theta != 2.5 {
		t.Errorf("Inc normalized: %v, cor: 2.5\n", theta)
	}

	off := Trace{On: false, Tau: 100, Q: 10}
	if off.Inc(5, 1) != 0 || off.Decay(5, 0.5) != 0 {
		t.Errorf("Off trace must stay at zero\n")
	}
}

func TestParams(t *testing.T) {
	ap := Params{}
	ap.Defaults()
	if ap.On() {
		t.Errorf("default params should be off\n")
	}
	ap.Fast.On = true
	if !ap.On() {
		t.Errorf("On() should be true with fast component enabled\n")
	}
	if ap.Fast.Tau != 100 || ap.Fast.Q != 10 || ap.Slow.Tau != 1000 || ap.Slow.Q != 1 {
		t.Errorf("default time constants wrong: %+v\n", ap)
	}
}
