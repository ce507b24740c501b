// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meso

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/emer/emergent/emer"
)

// newTestPair makes a saturating clamped sender coupled to a silent
// receiver, so spike counts and synaptic currents are fully deterministic
func newTestPair(t *testing.T, wt, delay float32) (*Network, *Population, *Population, *Pathway, *Context) {
	net := NewNetwork("TestNet")
	snd := net.AddPopulation("Send", 100, emer.Input)
	rcv := net.AddPopulation("Recv", 100, emer.Hidden)
	net.Defaults()
	pj := net.ConnectPops(snd, rcv, wt, delay)
	snd.GIF.Mem.TRef = 0
	rcv.GIF.Hazard.Lambda0 = 0
	ctx := NewContext(11)
	if err := net.BuildCtx(ctx); err != nil {
		t.Fatalf("BuildCtx err: %v\n", err)
	}
	net.InitWts()
	net.InitExt()
	snd.ApplyExtVal(1e9)
	return net, snd, rcv, pj, ctx
}

func TestDelaySteps(t *testing.T) {
	ctx := NewContext(1)
	pj := &Pathway{}
	pj.Defaults()
	tests := []struct {
		delay float32
		steps int
	}{
		{0.5, 1},
		{1, 2},
		{2.3, 5},
		{10, 20},
	}
	for _, ts := range tests {
		pj.Delay = ts.delay
		if st := pj.DelaySteps(ctx); st != ts.steps {
			t.Errorf("DelaySteps(%v) err: %v, cor: %v\n", ts.delay, st, ts.steps)
		}
	}
}

func TestDelayedDelivery(t *testing.T) {
	net, snd, rcv, _, ctx := newTestPair(t, 0.1, 1)
	// delay 1 ms at dt 0.5 is 2 steps: spikes emitted on cycle 0 arrive
	// at the start of cycle 2, contributing their full weight
	cors := []float32{0, 0, 10, 18.464817} // 10*exp(-1/6) + 10
	for i, cor := range cors {
		net.Cycle(ctx)
		if snd.Spikes != snd.N() {
			t.Fatalf("cycle %v: sender must spike everyone, got: %v\n", i, snd.Spikes)
		}
		if math32.Abs(rcv.ISyn-cor) > difTol {
			t.Errorf("cycle %v: ISyn err: %v, cor: %v\n", i, rcv.ISyn, cor)
		}
		ctx.CycleInc()
	}
}

func TestInhibKinetics(t *testing.T) {
	// negative coupling decays with the slower inhibitory time constant
	net, _, rcv, pj, ctx := newTestPair(t, -0.1, 1)
	if pj.Type() != emer.Inhib {
		t.Errorf("negative coupling should get Inhib type, got: %v\n", pj.Type())
	}
	cors := []float32{0, 0, -10, -19.200444} // -10*exp(-1/12) - 10
	for i, cor := range cors {
		net.Cycle(ctx)
		if math32.Abs(rcv.ISyn-cor) > difTol {
			t.Errorf("cycle %v: ISyn err: %v, cor: %v\n", i, rcv.ISyn, cor)
		}
		ctx.CycleInc()
	}
}

func TestSilentSender(t *testing.T) {
	net, snd, rcv, _, ctx := newTestPair(t, 0.1, 1)
	snd.ApplyExtVal(0) // no spikes at all
	for i := 0; i < 50; i++ {
		net.Cycle(ctx)
		if snd.Spikes != 0 {
			t.Fatalf("cycle %v: silent sender spiked: %v\n", i, snd.Spikes)
		}
		if rcv.ISyn != 0 {
			t.Fatalf("cycle %v: receiver got current from silence: %v\n", i, rcv.ISyn)
		}
		ctx.CycleInc()
	}
}

func TestPSCDecayAfterBurst(t *testing.T) {
	net, snd, rcv, _, ctx := newTestPair(t, 0.1, 1)
	cycleNet(net, ctx, 4) // two arrivals in: ISyn = 18.464817
	snd.ApplyExtVal(0)    // stop the input
	// two more deliveries still in flight, then pure decay
	cycleNet(net, ctx, 2)
	start := rcv.ISyn
	if start <= 18 {
		t.Fatalf("in-flight spikes must still deliver, ISyn: %v\n", start)
	}
	dk := math32.Exp(-ctx.Dt / rcv.GIF.Syn.TauEx)
	for i := 0; i < 20; i++ {
		prev := rcv.ISyn
		net.Cycle(ctx)
		if math32.Abs(rcv.ISyn-prev*dk) > difTol {
			t.Errorf("cycle %v: decay err: %v, cor: %v\n", i, rcv.ISyn, prev*dk)
		}
		ctx.CycleInc()
	}
}

func TestSynVals(t *testing.T) {
	_, _, _, pj, _ := newTestPair(t, 0.25, 1)
	if pj.Syn1DNum() != 1 {
		t.Errorf("aggregate pathway must have 1 synapse, got: %v\n", pj.Syn1DNum())
	}
	if v := pj.SynVal("Wt", 3, 7); v != 0.25 {
		t.Errorf("SynVal err: %v, cor: 0.25\n", v)
	}
	if !math32.IsNaN(pj.SynVal("Bogus", 0, 0)) {
		t.Errorf("invalid var name must give NaN\n")
	}
	if pj.SynIdx(3, 7) != 0 {
		t.Errorf("in-range SynIdx must be 0\n")
	}
	if pj.SynIdx(100, 0) != -1 || pj.SynIdx(0, -1) != -1 {
		t.Errorf("out of range SynIdx must be -1\n")
	}
	if err := pj.SetSynVal("Wt", 0, 0, 0.5); err != nil {
		t.Fatalf("SetSynVal err: %v\n", err)
	}
	if pj.Wt != 0.5 {
		t.Errorf("SetSynVal did not set Wt: %v\n", pj.Wt)
	}
	var vals []float32
	if err := pj.SynVals(&vals, "Wt"); err != nil {
		t.Fatalf("SynVals err: %v\n", err)
	}
	if len(vals) != 1 || vals[0] != 0.5 {
		t.Errorf("SynVals err: %v, cor: [0.5]\n", vals)
	}
}
