// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package micro

import (
	"fmt"
	"unsafe"

	"github.com/emer/meso/meso"
)

var (
	// NeuronVars are the per-neuron state variables of the microscopic
	// engine.  The population-level ThetaF / ThetaS / Theta variables report
	// the means of the per-neuron SfaF / SfaS / Sfa traces.
	NeuronVars = []string{"Spike", "V", "ISynEx", "ISynIn", "SfaF", "SfaS", "Sfa", "RefrT"}

	// NeuronVarsAll is the full list of unit variables served by a
	// microscopic population: the population-level variables first
	// (broadcast to every unit), then the per-neuron variables.
	NeuronVarsAll []string

	NeuronVarsMap map[string]int

	NeuronVarProps = map[string]string{
		"Spike":  `max:"1"`,
		"V":      `min:"-5" max:"25"`,
		"ISynEx": `auto-scale:"+"`,
		"ISynIn": `auto-scale:"+"`,
		"SfaF":   `auto-scale:"+"`,
		"SfaS":   `auto-scale:"+"`,
		"Sfa":    `auto-scale:"+"`,
		"RefrT":  `auto-scale:"+"`,
	}
)

func init() {
	ln := len(meso.PopVarNames)
	NeuronVarsAll = make([]string, len(NeuronVars)+ln)
	copy(NeuronVarsAll, meso.PopVarNames)
	copy(NeuronVarsAll[ln:], NeuronVars)

	NeuronVarsMap = make(map[string]int, len(NeuronVars))
	for i, v := range NeuronVars {
		NeuronVarsMap[v] = i
	}
	for k, v := range meso.PopVarProps {
		NeuronVarProps[k] = v
	}
}

// micro.Neuron holds the state for one GIF neuron in the microscopic engine.
// All fields must be float32 and must match the NeuronVars list exactly, as
// variable access goes by field index.
type Neuron struct {
	Spike  float32 `desc:"whether the neuron spiked this cycle (0 or 1)"`
	V      float32 `desc:"membrane potential (mV) -- holds at VReset while refractory"`
	ISynEx float32 `desc:"excitatory synaptic current (pA), decaying with Syn.TauEx"`
	ISynIn float32 `desc:"inhibitory synaptic current (pA), decaying with Syn.TauIn"`
	SfaF   float32 `desc:"fast adaptation trace (mV), incremented by Sfa.Fast.Q per own spike"`
	SfaS   float32 `desc:"slow adaptation trace (mV), incremented by Sfa.Slow.Q per own spike"`
	Sfa    float32 `desc:"total adaptation (mV) = SfaF + SfaS, added to the firing threshold"`
	RefrT  float32 `desc:"remaining absolute refractory time (msec) -- the neuron cannot spike and holds at VReset while > 0"`
}

func (nrn *Neuron) VarNames() []string {
	return NeuronVars
}

// NeuronVarIdxByName returns the index of the variable in the Neuron, or error
func NeuronVarIdxByName(varNm string) (int, error) {
	i, ok := NeuronVarsMap[varNm]
	if !ok {
		return -1, fmt.Errorf("Neuron VarByName: variable name: %v not valid", varNm)
	}
	return i, nil
}

// VarByIndex returns variable using index (0 = first variable in NeuronVars list)
func (nrn *Neuron) VarByIndex(idx int) float32 {
	fv := (*float32)(unsafe.Pointer(uintptr(unsafe.Pointer(nrn)) + uintptr(4*idx)))
	return *fv
}

// VarByName returns variable by name, or error
func (nrn *Neuron) VarByName(varNm string) (float32, error) {
	i, err := NeuronVarIdxByName(varNm)
	if err != nil {
		return 0, err
	}
	return nrn.VarByIndex(i), nil
}
