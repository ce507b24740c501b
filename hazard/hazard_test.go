// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hazard

import (
	"testing"

	"github.com/chewxy/math32"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-3)

func TestRate(t *testing.T) {
	hp := Params{}
	hp.Defaults()

	tsth := []float32{-5, -2.5, 0, 1, 2.5, 5}
	cory := []float32{1.3533528, 3.6787944, 10, 14.918247, 27.182818, 73.890561}

	for i := range tsth {
		y := hp.Rate(tsth[i])
		dif := math32.Abs(y - cory[i])
		if dif > difTol {
			t.Errorf("Rate err: idx: %v, h: %v, y: %v, cor y: %v, dif: %v\n", i, tsth[i], y, cory[i], dif)
		}
	}
}

func TestRateMonotone(t *testing.T) {
	hp := Params{}
	hp.Defaults()

	prev := hp.Rate(-20)
	for h := float32(-19); h <= 20; h++ {
		y := hp.Rate(h)
		if y <= prev {
			t.Errorf("Rate not monotone increasing: h: %v, y: %v, prev: %v\n", h, y, prev)
		}
		prev = y
	}
}

func TestRateClamp(t *testing.T) {
	hp := Params{}
	hp.Defaults()

	sat := hp.Rate(hp.MaxExp * hp.DeltaV)
	for _, h := range []float32{100, 1000, 1e6} {
		y := hp.Rate(h)
		if y != sat {
			t.Errorf("Rate clamp err: h: %v, y: %v, saturation: %v\n", h, y, sat)
		}
	}
	if hp.Rate(hp.MaxExp*hp.DeltaV-1) >= sat {
		t.Errorf("Rate below clamp bound should be below saturation value\n")
	}
}

func TestSpikeProb(t *testing.T) {
	hp := Params{}
	hp.Defaults()

	p := hp.SpikeProb(1000, 0.5) // 1 - exp(-0.5)
	if math32.Abs(p-0.39346934) > difTol {
		t.Errorf("SpikeProb err: p: %v, cor p: 0.39346934\n", p)
	}
	if hp.SpikeProb(0, 0.5) != 0 {
		t.Errorf("SpikeProb at zero rate should be 0\n")
	}
	for _, rate := range []float32{0.1, 10, 1e3, 1e6, 1e9} {
		p := hp.SpikeProb(rate, 0.5)
		if p < 0 || p > 1 {
			t.Errorf("SpikeProb out of bounds: rate: %v, p: %v\n", rate, p)
		}
	}
}
