// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meso

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestContextCycle(t *testing.T) {
	ctx := NewContext(1)
	if ctx.Dt != 0.5 {
		t.Errorf("default Dt err: %v, cor: 0.5\n", ctx.Dt)
	}
	for i := 0; i < 10; i++ {
		if ctx.Cycle != i {
			t.Errorf("Cycle err: %v, cor: %v\n", ctx.Cycle, i)
		}
		if math32.Abs(ctx.Time-float32(i)*ctx.Dt) > difTol {
			t.Errorf("Time err: %v, cor: %v\n", ctx.Time, float32(i)*ctx.Dt)
		}
		ctx.CycleInc()
	}
	if ctx.CycleTot != 10 {
		t.Errorf("CycleTot err: %v, cor: 10\n", ctx.CycleTot)
	}
	ctx.Reset()
	if ctx.Cycle != 0 || ctx.Time != 0 {
		t.Errorf("Reset err: Cycle: %v, Time: %v\n", ctx.Cycle, ctx.Time)
	}
}

func TestContextSeed(t *testing.T) {
	ca := NewContext(99)
	cb := NewContext(99)
	for i := 0; i < 100; i++ {
		va := ca.Rand.Float64()
		vb := cb.Rand.Float64()
		if va != vb {
			t.Errorf("same seed must give same sequence: idx: %v, %v vs %v\n", i, va, vb)
		}
	}
	cc := NewContext(100)
	same := true
	for i := 0; i < 100; i++ {
		if ca.Rand.Float64() != cc.Rand.Float64() {
			same = false
		}
	}
	if same {
		t.Errorf("different seeds must give different sequences\n")
	}
}

func TestContextValidate(t *testing.T) {
	ctx := NewContext(1)
	if err := ctx.Validate(); err != nil {
		t.Errorf("default context must validate, got: %v\n", err)
	}
	ctx.Dt = 0
	if err := ctx.Validate(); err == nil {
		t.Errorf("Dt = 0 must fail validation\n")
	}
	ctx.Dt = -0.5
	if err := ctx.Validate(); err == nil {
		t.Errorf("negative Dt must fail validation\n")
	}
}
