// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package psc

import (
	"testing"

	"github.com/chewxy/math32"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-6)

func TestDecay(t *testing.T) {
	sp := Params{}
	sp.Defaults()

	dex := sp.Decay(0.5, true) // exp(-0.5/3)
	if math32.Abs(dex-0.846482) > difTol {
		t.Errorf("excitatory decay: %v, cor: 0.846482\n", dex)
	}
	din := sp.Decay(0.5, false) // exp(-0.5/6)
	if math32.Abs(din-0.9200444) > difTol {
		t.Errorf("inhibitory decay: %v, cor: 0.9200444\n", din)
	}
	if dex >= din {
		t.Errorf("excitatory current must decay faster than inhibitory: %v vs %v\n", dex, din)
	}
}

func TestAccum(t *testing.T) {
	sp := Params{}
	sp.Defaults()

	// one spike of weight 10 pA then free decay: i(n) = 10 * exp(-n*dt/TauEx)
	dt := float32(0.5)
	i := float32(0)
	i = i*sp.Decay(dt, true) + 10
	for n := 1; n <= 12; n++ {
		i = i * sp.Decay(dt, true)
		cor := 10 * math32.Exp(-float32(n)*dt/sp.TauEx)
		if math32.Abs(i-cor) > difTol*10 {
			t.Errorf("accumulator step %v: %v, cor: %v\n", n, i, cor)
		}
	}
}

func TestTauSelect(t *testing.T) {
	sp := Params{}
	sp.Defaults()
	if sp.Tau(1.5) != sp.TauEx || sp.Tau(0) != sp.TauEx {
		t.Errorf("positive / zero weight must select TauEx\n")
	}
	if sp.Tau(-1.5) != sp.TauIn {
		t.Errorf("negative weight must select TauIn\n")
	}
}

func TestGFmTau(t *testing.T) {
	g := GFmTau(250, 3)
	if math32.Abs(g-83.333336) > difTol*100 {
		t.Errorf("GFmTau(250, 3): %v, cor: 83.333336\n", g)
	}
}
