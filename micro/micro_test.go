// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package micro

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/emer/emergent/emer"
	"github.com/emer/meso/meso"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-3)

// newMicroPop makes a network with one unconnected population of n neurons,
// built and initialized with default params
func newMicroPop(t *testing.T, n int, typ emer.LayerType) (*Network, *Population, *meso.Context) {
	net := NewNetwork("TestNet")
	pop := net.AddPopulation("Pop", n, typ)
	net.Defaults()
	ctx := meso.NewContext(7)
	if err := net.BuildCtx(ctx); err != nil {
		t.Fatalf("BuildCtx err: %v\n", err)
	}
	net.InitWts()
	return net, pop, ctx
}

func cycleNet(net *Network, ctx *meso.Context, ncyc int) {
	for i := 0; i < ncyc; i++ {
		net.Cycle(ctx)
		ctx.CycleInc()
	}
}

func TestNeuronVarAccess(t *testing.T) {
	// index access must match the field layout exactly
	nrn := Neuron{Spike: 1, V: 2, ISynEx: 3, ISynIn: 4, SfaF: 5, SfaS: 6, Sfa: 7, RefrT: 8}
	for i, nm := range NeuronVars {
		if v := nrn.VarByIndex(i); v != float32(i+1) {
			t.Errorf("VarByIndex %v (%v) err: %v, cor: %v\n", i, nm, v, i+1)
		}
		v, err := nrn.VarByName(nm)
		if err != nil {
			t.Fatalf("VarByName %v err: %v\n", nm, err)
		}
		if v != float32(i+1) {
			t.Errorf("VarByName %v err: %v, cor: %v\n", nm, v, i+1)
		}
	}
	if _, err := nrn.VarByName("Bogus"); err == nil {
		t.Errorf("invalid var name must give error\n")
	}

	sy := Synapse{Wt: 3.5}
	if v, _ := sy.VarByName("Wt"); v != 3.5 {
		t.Errorf("Synapse VarByName err: %v, cor: 3.5\n", v)
	}
	if err := sy.SetVarByName("Wt", 1.25); err != nil {
		t.Fatalf("SetVarByName err: %v\n", err)
	}
	if sy.Wt != 1.25 {
		t.Errorf("SetVarByName did not set Wt: %v\n", sy.Wt)
	}
	if _, err := sy.VarByName("Bogus"); err == nil {
		t.Errorf("invalid synapse var name must give error\n")
	}
}

func TestMicroBuild(t *testing.T) {
	net, pop, _ := newMicroPop(t, 30, emer.Hidden)
	if len(pop.Neurons) != 30 {
		t.Errorf("Neurons len err: %v, cor: 30\n", len(pop.Neurons))
	}
	for ni := range pop.Neurons {
		nrn := &pop.Neurons[ni]
		if nrn.V != pop.GIF.Mem.EL || nrn.RefrT != 0 || nrn.Sfa != 0 {
			t.Errorf("neuron %v not at rest after init: V %v, RefrT %v, Sfa %v\n", ni, nrn.V, nrn.RefrT, nrn.Sfa)
		}
	}
	// factories must produce micro types
	if _, ok := net.NewLayer().(*Population); !ok {
		t.Errorf("NewLayer must make a micro Population\n")
	}
	if _, ok := net.NewPrjn().(*Pathway); !ok {
		t.Errorf("NewPrjn must make a micro Pathway\n")
	}
}

func TestMicroPotentialIntegration(t *testing.T) {
	net, pop, ctx := newMicroPop(t, 4, emer.Hidden)
	pop.GIF.Hazard.Lambda0 = 0 // no spikes: pure integration
	pop.GIF.Mem.IE = 300       // steady state 24 mV

	cycleNet(net, ctx, 1)
	for ni := range pop.Neurons {
		if math32.Abs(pop.Neurons[ni].V-0.5925626) > difTol {
			t.Errorf("neuron %v V after 1 cycle err: %v, cor: 0.5925626\n", ni, pop.Neurons[ni].V)
		}
	}
	if math32.Abs(pop.FreeV-0.5925626) > difTol {
		t.Errorf("FreeV after 1 cycle err: %v, cor: 0.5925626\n", pop.FreeV)
	}
	cycleNet(net, ctx, 39) // t = 20 ms = one TauM
	if math32.Abs(pop.Neurons[0].V-15.170893) > 10*difTol {
		t.Errorf("V after TauM err: %v, cor: 15.170893\n", pop.Neurons[0].V)
	}
	cycleNet(net, ctx, 600)
	if math32.Abs(pop.Neurons[0].V-24) > 10*difTol {
		t.Errorf("V steady state err: %v, cor: 24\n", pop.Neurons[0].V)
	}
}

func TestMicroRefractoryTiming(t *testing.T) {
	// resting potential far above threshold saturates the hazard, and
	// resetting back to the same value makes the whole cycle deterministic:
	// a spike, then exactly TRef / Dt = 8 silent cycles, then the next spike
	net, pop, ctx := newMicroPop(t, 1, emer.Hidden)
	pop.GIF.Mem.EL = 70
	pop.GIF.Mem.VReset = 70
	net.InitWts()

	nrn := &pop.Neurons[0]
	for i := 0; i < 27; i++ {
		net.Cycle(ctx)
		free := i%9 == 0
		if free {
			if pop.Spikes != 1 || nrn.Spike != 1 {
				t.Fatalf("cycle %v: free neuron must spike, got: %v\n", i, nrn.Spike)
			}
			if pop.Act != 2000 {
				t.Errorf("cycle %v: Act err: %v, cor: 2000\n", i, pop.Act)
			}
			if pop.Avail != 1 {
				t.Errorf("cycle %v: Avail err: %v, cor: 1\n", i, pop.Avail)
			}
			if nrn.RefrT != pop.GIF.Mem.TRef {
				t.Errorf("cycle %v: spike must arm the refractory clock: %v\n", i, nrn.RefrT)
			}
		} else {
			if pop.Spikes != 0 || nrn.Spike != 0 {
				t.Fatalf("cycle %v: refractory neuron spiked\n", i)
			}
			if pop.Avail != 0 {
				t.Errorf("cycle %v: Avail err: %v, cor: 0\n", i, pop.Avail)
			}
			cor := pop.GIF.Mem.TRef - ctx.Dt*float32(i%9)
			if math32.Abs(nrn.RefrT-cor) > difTol {
				t.Errorf("cycle %v: RefrT err: %v, cor: %v\n", i, nrn.RefrT, cor)
			}
		}
		ctx.CycleInc()
	}
}

func TestMicroRefractoryHold(t *testing.T) {
	// with the default reset to 0, the potential must hold exactly at the
	// reset value for the full refractory period, then resume integrating
	net, pop, ctx := newMicroPop(t, 1, emer.Hidden)
	pop.GIF.Mem.EL = 70
	net.InitWts()

	nrn := &pop.Neurons[0]
	net.Cycle(ctx)
	if nrn.Spike != 1 || nrn.V != pop.GIF.Mem.VReset {
		t.Fatalf("first cycle must spike and reset: Spike %v, V %v\n", nrn.Spike, nrn.V)
	}
	ctx.CycleInc()
	for i := 1; i <= 8; i++ {
		net.Cycle(ctx)
		if nrn.Spike != 0 || nrn.V != pop.GIF.Mem.VReset {
			t.Fatalf("cycle %v: refractory potential moved: Spike %v, V %v\n", i, nrn.Spike, nrn.V)
		}
		ctx.CycleInc()
	}
	// first free step integrates from the reset value toward EL = 70
	pop.IFmSpikes(ctx)
	pop.StateFmI(ctx)
	if math32.Abs(nrn.V-1.7283062) > difTol {
		t.Errorf("first free step V err: %v, cor: 1.7283062\n", nrn.V)
	}
}

func TestMicroAdaptationOwnSpike(t *testing.T) {
	net, pop, ctx := newMicroPop(t, 1, emer.Hidden)
	pop.GIF.Sfa.Fast.On = true
	pop.GIF.Sfa.Slow.On = true
	pop.GIF.Mem.EL = 70
	pop.GIF.Mem.VReset = 70
	pop.GIF.Mem.TRef = 0 // spikes every cycle while the hazard saturates
	if err := net.BuildCtx(ctx); err != nil {
		t.Fatalf("BuildCtx err: %v\n", err)
	}
	net.InitWts()

	// with the neuron spiking every step, the traces follow
	// theta' = theta * exp(-dt/tau) + Q exactly, same as a fully
	// synchronized mesoscopic population
	corF := []float32{10, 19.950125, 29.85065}
	corS := []float32{1, 1.9995001, 2.9985004}
	nrn := &pop.Neurons[0]
	for i := 0; i < 3; i++ {
		net.Cycle(ctx)
		if pop.Spikes != 1 {
			t.Fatalf("cycle %v: saturated neuron must spike, got: %v\n", i, pop.Spikes)
		}
		if math32.Abs(nrn.SfaF-corF[i]) > difTol {
			t.Errorf("cycle %v: SfaF err: %v, cor: %v\n", i, nrn.SfaF, corF[i])
		}
		if math32.Abs(nrn.SfaS-corS[i]) > difTol {
			t.Errorf("cycle %v: SfaS err: %v, cor: %v\n", i, nrn.SfaS, corS[i])
		}
		if nrn.Sfa != nrn.SfaF+nrn.SfaS {
			t.Errorf("cycle %v: Sfa must sum the traces: %v\n", i, nrn.Sfa)
		}
		// population aggregates mirror the single neuron
		if math32.Abs(pop.ThetaF-nrn.SfaF) > difTol || math32.Abs(pop.ThetaS-nrn.SfaS) > difTol {
			t.Errorf("cycle %v: ThetaF/S err: %v, %v, cor: %v, %v\n", i, pop.ThetaF, pop.ThetaS, nrn.SfaF, nrn.SfaS)
		}
		ctx.CycleInc()
	}
	vidx, err := pop.UnitVarIdx("Sfa")
	if err != nil {
		t.Fatalf("UnitVarIdx err: %v\n", err)
	}
	if v := pop.UnitVal1D(vidx, 0); v != nrn.Sfa {
		t.Errorf("Sfa var err: %v, cor: %v\n", v, nrn.Sfa)
	}
}

func TestMicroClamped(t *testing.T) {
	net, pop, ctx := newMicroPop(t, 25, emer.Input)
	pop.GIF.Mem.TRef = 0
	if err := net.BuildCtx(ctx); err != nil {
		t.Fatalf("BuildCtx err: %v\n", err)
	}
	net.InitWts()
	net.InitExt()
	if !pop.Clamped {
		t.Errorf("Input type population must be clamped after InitExt\n")
	}
	pop.ApplyExtVal(1e9) // saturating: every neuron spikes every step

	for i := 0; i < 5; i++ {
		net.Cycle(ctx)
		if pop.Spikes != 25 || pop.Act != 2000 {
			t.Fatalf("cycle %v: saturating clamp err: Spikes %v, Act %v\n", i, pop.Spikes, pop.Act)
		}
		if pop.Rate != 1e9 {
			t.Errorf("cycle %v: clamped Rate err: %v, cor: 1e9\n", i, pop.Rate)
		}
		ctx.CycleInc()
	}
	pop.ApplyExtVal(0)
	for i := 0; i < 5; i++ {
		net.Cycle(ctx)
		if pop.Spikes != 0 || pop.Act != 0 || pop.Rate != 0 {
			t.Fatalf("cycle %v: zero clamp err: Spikes %v, Act %v, Rate %v\n", i, pop.Spikes, pop.Act, pop.Rate)
		}
		ctx.CycleInc()
	}

	// a non-input population ignores the applied rate
	net2, pop2, ctx2 := newMicroPop(t, 10, emer.Hidden)
	pop2.GIF.Hazard.Lambda0 = 0
	net2.InitExt()
	pop2.ApplyExtVal(200)
	if pop2.Clamped {
		t.Errorf("Hidden type population must not be clamped\n")
	}
	cycleNet(net2, ctx2, 50)
	if pop2.Rate != 0 || pop2.ActAvg != 0 {
		t.Errorf("hidden population must use the hazard, not Ext: Rate: %v, ActAvg: %v\n", pop2.Rate, pop2.ActAvg)
	}
}

func TestMicroLesion(t *testing.T) {
	net, pop, ctx := newMicroPop(t, 100, emer.Input)
	pop.GIF.Mem.TRef = 0
	if err := net.BuildCtx(ctx); err != nil {
		t.Fatalf("BuildCtx err: %v\n", err)
	}
	net.InitWts()
	net.InitExt()

	nl := pop.LesionNeurons(0.25)
	if nl != 25 || pop.NLesion != 25 {
		t.Errorf("LesionNeurons err: %v, cor: 25\n", nl)
	}
	pop.InitActs()
	if pop.Avail != 75 {
		t.Errorf("lesioned avail err: %v, cor: 75\n", pop.Avail)
	}
	pop.ApplyExtVal(1e9)
	cycleNet(net, ctx, 3)
	if pop.Spikes != 75 {
		t.Errorf("lesioned saturated spikes err: %v, cor: 75\n", pop.Spikes)
	}
	if pop.Act != 1500 { // still normalized by full N
		t.Errorf("lesioned Act err: %v, cor: 1500\n", pop.Act)
	}
	// the lesioned neurons are the tail of the list and must stay silent
	for ni := 75; ni < 100; ni++ {
		if pop.Neurons[ni].Spike != 0 {
			t.Errorf("lesioned neuron %v spiked\n", ni)
		}
	}
	for ni := 0; ni < 75; ni++ {
		if pop.Neurons[ni].Spike != 1 {
			t.Errorf("live neuron %v must spike under saturating clamp\n", ni)
		}
	}

	pop.UnLesionNeurons()
	pop.InitActs()
	cycleNet(net, ctx, 1)
	if pop.Spikes != 100 {
		t.Errorf("unlesioned saturated spikes err: %v, cor: 100\n", pop.Spikes)
	}

	if pop.LesionNeurons(25) != 0 { // proportion, not percent
		t.Errorf("LesionNeurons must reject proportion > 1\n")
	}

	// lesioning mid-run clears the refractory clocks so the survivors
	// restart cleanly
	pop.GIF.Mem.TRef = 4
	if err := net.BuildCtx(ctx); err != nil {
		t.Fatalf("BuildCtx err: %v\n", err)
	}
	net.InitWts()
	net.InitExt()
	pop.ApplyExtVal(1e9)
	cycleNet(net, ctx, 2)
	pop.LesionNeurons(0.9)
	for ni := range pop.Neurons {
		if pop.Neurons[ni].RefrT != 0 {
			t.Errorf("lesion must clear refractory clocks, neuron %v holds: %v\n", ni, pop.Neurons[ni].RefrT)
		}
	}
	cycleNet(net, ctx, 20)
}

func TestMicroUnitVars(t *testing.T) {
	net, pop, _ := newMicroPop(t, 10, emer.Hidden)
	nn := len(meso.PopVarNames)
	if len(NeuronVarsAll) != nn+len(NeuronVars) {
		t.Errorf("NeuronVarsAll len err: %v, cor: %v\n", len(NeuronVarsAll), nn+len(NeuronVars))
	}
	if pop.UnitVarNum() != nn+len(NeuronVars) {
		t.Errorf("UnitVarNum err: %v, cor: %v\n", pop.UnitVarNum(), nn+len(NeuronVars))
	}
	if net.UnitVarNames()[nn] != "Spike" {
		t.Errorf("first neuron var must follow the population vars, got: %v\n", net.UnitVarNames()[nn])
	}

	// population-level vars broadcast, per-neuron vars index the neuron
	aidx, err := pop.UnitVarIdx("Act")
	if err != nil || aidx >= nn {
		t.Fatalf("Act must resolve to a population var: %v, %v\n", aidx, err)
	}
	vidx, err := pop.UnitVarIdx("V")
	if err != nil {
		t.Fatalf("UnitVarIdx V err: %v\n", err)
	}
	if vidx != nn+1 {
		t.Errorf("V index err: %v, cor: %v\n", vidx, nn+1)
	}
	for ni := range pop.Neurons {
		pop.Neurons[ni].V = float32(ni)
	}
	if v := pop.UnitVal1D(vidx, 7); v != 7 {
		t.Errorf("UnitVal1D V err: %v, cor: 7\n", v)
	}
	if v := pop.UnitVal1D(aidx, 7); v != pop.Act {
		t.Errorf("UnitVal1D Act must broadcast: %v, cor: %v\n", v, pop.Act)
	}
	if !math32.IsNaN(pop.UnitVal1D(vidx, 10)) || !math32.IsNaN(pop.UnitVal1D(-1, 0)) {
		t.Errorf("out of range access must give NaN\n")
	}
	if !math32.IsNaN(pop.UnitVal1D(pop.UnitVarNum(), 0)) {
		t.Errorf("past-the-end var index must give NaN\n")
	}
	if _, err := pop.UnitVarIdx("Bogus"); err == nil {
		t.Errorf("invalid var name must give error\n")
	}

	var vals []float32
	if err := pop.UnitVals(&vals, "V"); err != nil {
		t.Fatalf("UnitVals err: %v\n", err)
	}
	if len(vals) != 10 {
		t.Errorf("UnitVals len err: %v, cor: 10\n", len(vals))
	}
	for i := range vals {
		if vals[i] != float32(i) {
			t.Errorf("UnitVals idx %v err: %v, cor: %v\n", i, vals[i], i)
		}
	}

	mn, mx, err := pop.VarRange("V")
	if err != nil {
		t.Fatalf("VarRange err: %v\n", err)
	}
	if mn != 0 || mx != 9 {
		t.Errorf("VarRange err: %v, %v, cor: 0, 9\n", mn, mx)
	}
	mn, mx, err = pop.VarRange("Act")
	if err != nil {
		t.Fatalf("VarRange err: %v\n", err)
	}
	if mn != mx || mn != pop.Act {
		t.Errorf("population VarRange err: %v, %v, cor both: %v\n", mn, mx, pop.Act)
	}

	sr := net.SizeReport()
	if len(sr) == 0 {
		t.Errorf("SizeReport must report\n")
	}
}
