// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meso

import (
	"fmt"
	"io"
	"strconv"

	"github.com/emer/emergent/emer"
	"github.com/emer/emergent/weights"
	"github.com/goki/ki/indent"
	"github.com/goki/ki/ki"
	"github.com/goki/ki/kit"
	"github.com/goki/mat32"
)

// meso.Pathway couples two populations through one aggregate synapse: each
// spike in the sending population adds the coupling weight Wt (pA) to the
// pathway's synaptic current after the transmission delay, and the current
// decays with the receiving population's synaptic time constant.  Wt
// should be the per-connection current step scaled by the connection
// probability of the pattern, so that the expected drive matches the
// per-neuron elaboration of the same pattern.  The sign of Wt selects the
// excitatory or inhibitory time constant of the receiver.
type Pathway struct {
	PathwayStru
	Wt       float32 `desc:"aggregate coupling weight (pA): current added to the receiving population per sending spike -- per-connection current step times connection probability -- negative for inhibitory coupling"`
	Delay    float32 `def:"1" min:"0" desc:"transmission delay (msec) from a spike in the sender to its current arriving at the receiver -- must be at least one time step"`
	ISyn     float32 `inactive:"+" desc:"synaptic current (pA) carried by this pathway into the receiving population"`
	SpikeBuf []int32 `view:"-" desc:"delay line of sent spike counts in transit, one slot per time step of Delay"`
	BufIdx   int     `view:"-" desc:"index of the slot that arrives on the next step"`
}

var KiT_Pathway = kit.Types.AddType(&Pathway{}, PathwayProps)

var PathwayProps = ki.Props{
	"EnumType:Typ": emer.KiT_PrjnType,
}

// AsMeso returns this pathway as a meso.Pathway -- so that the MesoPath
// interface does not need to include accessors to all the basic state
func (pj *Pathway) AsMeso() *Pathway {
	return pj
}

func (pj *Pathway) Defaults() {
	pj.Wt = 0
	pj.Delay = 1
}

func (pj *Pathway) UpdateParams() {
}

// DelaySteps returns the number of time steps the delay line covers for
// the given context: Delay / Dt rounded to the nearest step, minimum 1.
func (pj *Pathway) DelaySteps(ctx *Context) int {
	steps := int(mat32.Round(pj.Delay / ctx.Dt))
	if steps < 1 {
		steps = 1
	}
	return steps
}

// Build validates the pathway settings.  The mesoscopic engine keeps no
// per-synapse state, so there are no connection index lists to build here.
func (pj *Pathway) Build() error {
	if pj.Off {
		return nil
	}
	return pj.Validate(true)
}

// BuildCtx allocates the delay line from the context time step.
// A delay shorter than one time step cannot be represented and is a
// configuration error, not something to silently round up.
func (pj *Pathway) BuildCtx(ctx *Context) error {
	if pj.Delay < ctx.Dt {
		return fmt.Errorf("%v: Delay %g ms is less than the time step %g ms -- the delay must cover at least one step", pj.String(), pj.Delay, ctx.Dt)
	}
	pj.SpikeBuf = make([]int32, pj.DelaySteps(ctx))
	pj.BufIdx = 0
	return nil
}

// InitSyn zeroes the synaptic current and the delay line
func (pj *Pathway) InitSyn() {
	pj.ISyn = 0
	for i := range pj.SpikeBuf {
		pj.SpikeBuf[i] = 0
	}
	pj.BufIdx = 0
}

// InitWts initializes the weight state.  The coupling weight is a
// parameter here, not a sample, so this just resets the synaptic current
// and delay line.
func (pj *Pathway) InitWts() {
	pj.InitSyn()
}

// StepSyn advances the synaptic current by one time step: the current
// decays with the receiver's time constant for this pathway's sign, and
// the spike count arriving now (sent Delay ago) adds its full weighted
// current.  Called by the receiving population at the start of each cycle.
func (pj *Pathway) StepSyn(ctx *Context) {
	rpop := pj.Recv.(MesoLayer).AsMeso()
	pj.ISyn *= rpop.GIF.Syn.Decay(ctx.Dt, pj.Wt >= 0)
	if len(pj.SpikeBuf) == 0 {
		return
	}
	cnt := pj.SpikeBuf[pj.BufIdx]
	if cnt > 0 {
		pj.ISyn += float32(cnt) * pj.Wt
		pj.SpikeBuf[pj.BufIdx] = 0
	}
	pj.BufIdx++
	if pj.BufIdx >= len(pj.SpikeBuf) {
		pj.BufIdx = 0
	}
}

// SendCount queues the given spike count from the sending population into
// the delay line, to arrive after the full delay.  Called after StepSyn
// within a cycle, so the last slot before the read index is exactly Delay
// steps out.
func (pj *Pathway) SendCount(cnt int) {
	if len(pj.SpikeBuf) == 0 {
		return
	}
	idx := pj.BufIdx + len(pj.SpikeBuf) - 1
	if idx >= len(pj.SpikeBuf) {
		idx -= len(pj.SpikeBuf)
	}
	pj.SpikeBuf[idx] += int32(cnt)
}

// AllParams returns a listing of all parameters in the Pathway
func (pj *Pathway) AllParams() string {
	str := "///////////////////////////////////////////////////\nPrjn: " + pj.Name() + "\n" +
		fmt.Sprintf("Wt: %g\nDelay: %g\n", pj.Wt, pj.Delay)
	return str
}

//////////////////////////////////////////////////////////////////////////////////////
//  Synapse variables

var (
	// SynVars are the synapse variables available on pathways
	SynVars = []string{"Wt"}

	SynVarProps = map[string]string{
		"Wt": `auto-scale:"+"`,
	}
)

// SynVarNames returns the names of all the variables on the synapse
func (pj *Pathway) SynVarNames() []string {
	return SynVars
}

// SynVarProps returns properties for variables
func (pj *Pathway) SynVarProps() map[string]string {
	return SynVarProps
}

// SynVarNum returns the number of synapse-level variables
func (pj *Pathway) SynVarNum() int {
	return len(SynVars)
}

// Syn1DNum returns the number of synapses for this prjn as a 1D array --
// the mesoscopic pathway is one aggregate synapse
func (pj *Pathway) Syn1DNum() int {
	return 1
}

// SynVarIdx returns the index of given variable within the synapse,
// according to *this prjn's* SynVarNames() list (using a map to lookup
// index), or -1 and error message if not found.
func (pj *Pathway) SynVarIdx(varNm string) (int, error) {
	if varNm == "Wt" {
		return 0, nil
	}
	return -1, fmt.Errorf("meso.SynVarIdx: variable name: %v not valid", varNm)
}

// SynIdx returns the index of the synapse between given send, recv unit
// indexes (1D, flat indexes).  All connected pairs share the one aggregate
// synapse here, so any in-range pair maps to index 0.
// Returns -1 if out of range.
func (pj *Pathway) SynIdx(sidx, ridx int) int {
	if sidx < 0 || sidx >= pj.Send.Shape().Len() {
		return -1
	}
	if ridx < 0 || ridx >= pj.Recv.Shape().Len() {
		return -1
	}
	return 0
}

// SynVal1D returns value of given variable index (from SynVarIdx) on given
// SynIdx.  Returns NaN on invalid index.  This is the core synapse var
// access method used by other methods, so it is the only one that needs to
// be updated for derived prjn types.
func (pj *Pathway) SynVal1D(varIdx int, synIdx int) float32 {
	if varIdx != 0 || synIdx != 0 {
		return mat32.NaN()
	}
	return pj.Wt
}

// SynVals sets values of given variable name for each synapse, using the
// natural ordering of the synapses, into given float32 slice (only resized
// if not big enough).  Returns error on invalid var name.
func (pj *Pathway) SynVals(vals *[]float32, varNm string) error {
	vidx, err := pj.MesoPrj.SynVarIdx(varNm)
	if err != nil {
		return err
	}
	ns := pj.MesoPrj.Syn1DNum()
	if *vals == nil || cap(*vals) < ns {
		*vals = make([]float32, ns)
	} else if len(*vals) < ns {
		*vals = (*vals)[0:ns]
	}
	for i := 0; i < ns; i++ {
		(*vals)[i] = pj.MesoPrj.SynVal1D(vidx, i)
	}
	return nil
}

// SynVal returns value of given variable name on the synapse between given
// send, recv unit indexes (1D, flat indexes).  Returns NaN for access errors.
func (pj *Pathway) SynVal(varNm string, sidx, ridx int) float32 {
	vidx, err := pj.MesoPrj.SynVarIdx(varNm)
	if err != nil {
		return mat32.NaN()
	}
	synIdx := pj.MesoPrj.SynIdx(sidx, ridx)
	return pj.MesoPrj.SynVal1D(vidx, synIdx)
}

// SetSynVal sets value of given variable name on the synapse between given
// send, recv unit indexes (1D, flat indexes).  On the aggregate pathway,
// setting Wt sets the pathway coupling weight.
// Returns error for access errors.
func (pj *Pathway) SetSynVal(varNm string, sidx, ridx int, val float32) error {
	_, err := pj.MesoPrj.SynVarIdx(varNm)
	if err != nil {
		return err
	}
	synIdx := pj.MesoPrj.SynIdx(sidx, ridx)
	if synIdx < 0 {
		return fmt.Errorf("meso.SetSynVal: unit indexes %v, %v out of range in prjn %v", sidx, ridx, pj.Name())
	}
	pj.Wt = val
	return nil
}

//////////////////////////////////////////////////////////////////////////////////////
//  Weights I/O

// WriteWtsJSON writes the weights from this pathway in a JSON text format.
// The aggregate coupling is saved as MetaData rather than per-receiver
// lists.
func (pj *Pathway) WriteWtsJSON(w io.Writer, depth int) {
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("{\n"))
	depth++
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"From\": %q,\n", pj.Send.Name())))
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"MetaData\": {\n")))
	depth++
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"Wt\": \"%g\",\n", pj.Wt)))
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"Delay\": \"%g\"\n", pj.Delay)))
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("},\n"))
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("\"Rs\": null\n"))
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("}")) // note: leave unterminated as outer loop needs to add , or just \n depending
}

// ReadWtsJSON reads the weights from this pathway in a JSON text format.
// This is for a set of weights that were saved *for one prjn only* and is
// not used for the network-level ReadWtsJSON, which reads into a separate
// structure -- see SetWts method.
func (pj *Pathway) ReadWtsJSON(r io.Reader) error {
	pw, err := weights.PrjnReadJSON(r)
	if err != nil {
		return err // note: already logged
	}
	return pj.SetWts(pw)
}

// SetWts sets the weights for this pathway from weights.Prjn decoded
// values.  A changed Delay takes effect at the next BuildCtx.
func (pj *Pathway) SetWts(pw *weights.Prjn) error {
	if pw.MetaData == nil {
		return nil
	}
	if wt, ok := pw.MetaData["Wt"]; ok {
		pv, _ := strconv.ParseFloat(wt, 32)
		pj.Wt = float32(pv)
	}
	if dl, ok := pw.MetaData["Delay"]; ok {
		pv, _ := strconv.ParseFloat(dl, 32)
		pj.Delay = float32(pv)
	}
	return nil
}
