// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meso

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/emer/emergent/emer"
)

func TestRecorderInterval(t *testing.T) {
	net, pop, ctx := newTestPop(t, 100, emer.Input)
	pop.GIF.Mem.TRef = 0
	if err := net.BuildCtx(ctx); err != nil {
		t.Fatalf("BuildCtx err: %v\n", err)
	}
	net.InitWts()
	net.InitExt()
	pop.ApplyExtVal(1e9) // deterministic: Act is 2000 Hz every cycle

	rec := NewRecorder(1)
	pop.AddObserver(rec)
	cycleNet(net, ctx, 20)

	// interval 1 ms at dt 0.5 records every 2nd cycle, starting at 0
	if rec.Table.Rows != 10 {
		t.Errorf("rows err: %v, cor: 10\n", rec.Table.Rows)
	}
	for ri := 0; ri < rec.Table.Rows; ri++ {
		if cyc := int(rec.Table.CellFloat("Cycle", ri)); cyc != 2*ri {
			t.Errorf("row %v: cycle err: %v, cor: %v\n", ri, cyc, 2*ri)
		}
		if nm := rec.Table.CellString("Pop", ri); nm != "Pop" {
			t.Errorf("row %v: pop name err: %v\n", ri, nm)
		}
		if act := rec.Table.CellFloat("Act", ri); act != 2000 {
			t.Errorf("row %v: act err: %v, cor: 2000\n", ri, act)
		}
	}

	avg := rec.AvgAct("Pop", 0, 10)
	if math32.Abs(float32(avg)-2000) > difTol {
		t.Errorf("AvgAct err: %v, cor: 2000\n", avg)
	}
	if rec.AvgAct("Bogus", 0, 10) != 0 {
		t.Errorf("AvgAct of unknown pop must be 0\n")
	}

	rec.Reset()
	if rec.Table.Rows != 0 {
		t.Errorf("Reset must clear rows, got: %v\n", rec.Table.Rows)
	}
	cycleNet(net, ctx, 2)
	if rec.Table.Rows != 1 {
		t.Errorf("first cycle after Reset must record, rows: %v\n", rec.Table.Rows)
	}
}

func TestRecorderEveryCycle(t *testing.T) {
	net, pop, ctx := newTestPop(t, 100, emer.Hidden)
	rec := NewRecorder(0)
	pop.AddObserver(rec)
	cycleNet(net, ctx, 17)
	if rec.Table.Rows != 17 {
		t.Errorf("rows err: %v, cor: 17\n", rec.Table.Rows)
	}
}

func TestRecorderSharedAcrossPops(t *testing.T) {
	net, epop, ipop, ctx := newEINet(t, 9)
	rec := NewRecorder(1)
	epop.AddObserver(rec)
	ipop.AddObserver(rec)
	cycleNet(net, ctx, 20)

	// both populations record the same gated cycles
	if rec.Table.Rows != 20 {
		t.Errorf("rows err: %v, cor: 20\n", rec.Table.Rows)
	}
	eix := rec.PopRows("Exc")
	iix := rec.PopRows("Inh")
	if len(eix.Idxs) != 10 || len(iix.Idxs) != 10 {
		t.Errorf("per-pop rows err: %v, %v, cor: 10 each\n", len(eix.Idxs), len(iix.Idxs))
	}
	for i := range eix.Idxs {
		ec := rec.Table.CellFloat("Cycle", eix.Idxs[i])
		ic := rec.Table.CellFloat("Cycle", iix.Idxs[i])
		if ec != ic {
			t.Errorf("pops recorded different cycles: %v vs %v\n", ec, ic)
		}
	}
}

func TestRecorderState(t *testing.T) {
	net, pop, ctx := newTestPop(t, 100, emer.Hidden)
	pop.GIF.Mem.IE = 300
	rec := NewRecorder(0)
	pop.AddObserver(rec)
	cycleNet(net, ctx, 50)

	// the last recorded row must match the population's current state
	row := rec.Table.Rows - 1
	if v := float32(rec.Table.CellFloat("FreeV", row)); math32.Abs(v-pop.FreeV) > difTol {
		t.Errorf("FreeV err: %v, cor: %v\n", v, pop.FreeV)
	}
	if v := int(rec.Table.CellFloat("Spikes", row)); v != pop.Spikes {
		t.Errorf("Spikes err: %v, cor: %v\n", v, pop.Spikes)
	}
	if v := int(rec.Table.CellFloat("Avail", row)); v != pop.Avail {
		t.Errorf("Avail err: %v, cor: %v\n", v, pop.Avail)
	}
}
