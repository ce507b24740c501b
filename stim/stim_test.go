// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stim

import (
	"testing"
)

func TestCurrent(t *testing.T) {
	st := Step{}
	st.Defaults()
	st.AddStep(0, 300)
	st.AddStep(1500, 500)
	st.AddStep(2000, 300)
	if err := st.Validate(); err != nil {
		t.Error(err)
	}

	tests := []struct {
		time float32
		cur  float32
	}{
		{-1, 0},
		{0, 300},
		{100, 300},
		{1499.5, 300},
		{1500, 500},
		{1999.5, 500},
		{2000, 300},
		{5000, 300},
	}
	for _, ts := range tests {
		cur := st.Current(ts.time)
		if cur != ts.cur {
			t.Errorf("Current(%v): %v, cor: %v\n", ts.time, cur, ts.cur)
		}
	}
}

func TestEmpty(t *testing.T) {
	st := Step{}
	st.Defaults()
	if err := st.Validate(); err != nil {
		t.Error(err)
	}
	if cur := st.Current(100); cur != 0 {
		t.Errorf("empty generator must return 0, got: %v\n", cur)
	}
}

func TestValidate(t *testing.T) {
	st := Step{Times: []float32{0, 100}, Amps: []float32{300}}
	if err := st.Validate(); err == nil {
		t.Errorf("mismatched times / amps must fail validation\n")
	}
	st = Step{Times: []float32{0, 100, 100}, Amps: []float32{1, 2, 3}}
	if err := st.Validate(); err == nil {
		t.Errorf("non-increasing times must fail validation\n")
	}
}
