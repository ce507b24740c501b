// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package micro

import (
	"fmt"
	"io"
	"strconv"

	"github.com/emer/emergent/weights"
	"github.com/emer/meso/meso"
	"github.com/goki/ki/indent"
	"github.com/goki/ki/kit"
	"github.com/goki/mat32"
	"golang.org/x/exp/rand"
)

// WtInitParams are initial synaptic weight parameters: weights are drawn
// uniformly from Mean +/- Var.  The default Var of 0 gives every synapse
// exactly Mean, which is the configuration that corresponds one-to-one to a
// mesoscopic pathway.
type WtInitParams struct {
	Mean float32 `desc:"mean initial weight (pA) -- post-synaptic current step per spike on each connection"`
	Var  float32 `def:"0" min:"0" desc:"half-range of uniform variation around Mean (pA) -- 0 makes all weights exactly Mean"`
}

func (wp *WtInitParams) Defaults() {
	wp.Mean = 0
	wp.Var = 0
}

func (wp *WtInitParams) Update() {
}

// Gen returns one initial weight drawn from rnd.  With Var = 0 (or no
// source) the weight is exactly Mean.
func (wp *WtInitParams) Gen(rnd *rand.Rand) float32 {
	if wp.Var <= 0 || rnd == nil {
		return wp.Mean
	}
	return wp.Mean + wp.Var*(2*rnd.Float32()-1)
}

// micro.Pathway connects two populations with individual synapses, one per
// connection in the pattern, with per-synapse weights.  Spikes from each
// sending neuron are queued per receiving neuron in a delay ring and
// delivered into the receivers' synaptic current accumulators after the
// transmission delay.  Positive weights deliver into the excitatory
// accumulator and negative into the inhibitory one, each with its own decay
// time constant on the receiver.
type Pathway struct {
	meso.Pathway
	WtInit WtInitParams `view:"inline" desc:"initial synaptic weight distribution"`
	Syns   []Synapse    `desc:"synaptic state values, ordered by the sending neurons which own them -- one-to-one with SConIdx array"`

	GBufEx []float32  `view:"-" desc:"delay ring of excitatory current in transit: DSteps slots of one value per receiving neuron"`
	GBufIn []float32  `view:"-" desc:"delay ring of inhibitory current in transit, same layout as GBufEx"`
	GIdx   int        `view:"-" desc:"ring slot that is delivered on the next step"`
	DSteps int        `view:"-" desc:"number of ring slots = Delay / Dt, from BuildCtx"`
	Rnd    *rand.Rand `copy:"-" json:"-" xml:"-" view:"-" desc:"random source for weight initialization, from the build context"`
}

var KiT_Pathway = kit.Types.AddType(&Pathway{}, meso.PathwayProps)

// AsMicro returns this pathway as a micro.Pathway
func (pj *Pathway) AsMicro() *Pathway {
	return pj
}

func (pj *Pathway) Defaults() {
	pj.Pathway.Defaults()
	pj.WtInit.Defaults()
}

// Build constructs the per-neuron connectivity from the pattern and
// allocates one synapse per connection, in sending neuron order.
func (pj *Pathway) Build() error {
	if pj.Off {
		return nil
	}
	if err := pj.BuildStru(); err != nil {
		return err
	}
	pj.Syns = make([]Synapse, len(pj.SConIdx))
	return nil
}

// BuildCtx allocates the delay rings from the context time step: one slot
// per step of Delay, each holding one value per receiving neuron.
func (pj *Pathway) BuildCtx(ctx *meso.Context) error {
	if pj.Delay < ctx.Dt {
		return fmt.Errorf("%v: Delay %g ms is less than the time step %g ms -- the delay must cover at least one step", pj.String(), pj.Delay, ctx.Dt)
	}
	pj.DSteps = pj.DelaySteps(ctx)
	rlen := pj.Recv.Shape().Len()
	pj.GBufEx = make([]float32, pj.DSteps*rlen)
	pj.GBufIn = make([]float32, pj.DSteps*rlen)
	pj.GIdx = 0
	pj.Rnd = ctx.Rand
	return nil
}

// InitSyn zeroes the delay rings
func (pj *Pathway) InitSyn() {
	pj.ISyn = 0
	for i := range pj.GBufEx {
		pj.GBufEx[i] = 0
	}
	for i := range pj.GBufIn {
		pj.GBufIn[i] = 0
	}
	pj.GIdx = 0
}

// InitWts draws the initial weight for every synapse from WtInit and clears
// the delay rings.
func (pj *Pathway) InitWts() {
	for si := range pj.Syns {
		sy := &pj.Syns[si]
		sy.Wt = pj.WtInit.Gen(pj.Rnd)
	}
	pj.InitSyn()
}

// SendSpike queues a spike from sending neuron index si: each of its
// synapses adds its weight into the last ring slot for its receiving
// neuron, to be delivered after the full delay.  Positive weights go to the
// excitatory ring and negative to the inhibitory one.
func (pj *Pathway) SendSpike(si int) {
	if pj.DSteps == 0 {
		return
	}
	wi := pj.GIdx + pj.DSteps - 1
	if wi >= pj.DSteps {
		wi -= pj.DSteps
	}
	bst := wi * pj.Recv.Shape().Len()
	nc := pj.SConN[si]
	st := pj.SConIdxSt[si]
	syns := pj.Syns[st : st+nc]
	scons := pj.SConIdx[st : st+nc]
	for ci := range syns {
		ri := int(scons[ci])
		w := syns[ci].Wt
		if w >= 0 {
			pj.GBufEx[bst+ri] += w
		} else {
			pj.GBufIn[bst+ri] += w
		}
	}
}

// RecvISyn delivers the ring slot arriving this step into the receiving
// neurons' synaptic current accumulators, zeroes it, and advances the ring.
// Called by the receiving population at the start of each cycle, after the
// accumulators have decayed.
func (pj *Pathway) RecvISyn() {
	if pj.DSteps == 0 {
		return
	}
	rpop := pj.Recv.(MicroLayer).AsMicro()
	bst := pj.GIdx * len(rpop.Neurons)
	for ri := range rpop.Neurons {
		rn := &rpop.Neurons[ri]
		rn.ISynEx += pj.GBufEx[bst+ri]
		pj.GBufEx[bst+ri] = 0
		rn.ISynIn += pj.GBufIn[bst+ri]
		pj.GBufIn[bst+ri] = 0
	}
	pj.GIdx++
	if pj.GIdx >= pj.DSteps {
		pj.GIdx = 0
	}
}

// AllParams returns a listing of all parameters in the Pathway
func (pj *Pathway) AllParams() string {
	str := "///////////////////////////////////////////////////\nPrjn: " + pj.Name() + "\n" +
		fmt.Sprintf("WtMean: %g\nWtVar: %g\nDelay: %g\n", pj.WtInit.Mean, pj.WtInit.Var, pj.Delay)
	return str
}

//////////////////////////////////////////////////////////////////////////////////////
//  Synapse variables

// SynVarNames returns the names of all the variables on the synapse
func (pj *Pathway) SynVarNames() []string {
	return SynapseVars
}

// SynVarProps returns properties for variables
func (pj *Pathway) SynVarProps() map[string]string {
	return SynapseVarProps
}

// SynVarNum returns the number of synapse-level variables
func (pj *Pathway) SynVarNum() int {
	return len(SynapseVars)
}

// SynVarIdx returns the index of given variable within the synapse,
// according to *this prjn's* SynVarNames() list (using a map to lookup
// index), or -1 and error message if not found.
func (pj *Pathway) SynVarIdx(varNm string) (int, error) {
	return SynapseVarByName(varNm)
}

// Syn1DNum returns the number of synapses for this prjn as a 1D array --
// the total number of individual connections.
func (pj *Pathway) Syn1DNum() int {
	return len(pj.Syns)
}

// SynIdx returns the index of the synapse between given send, recv unit
// indexes (1D, flat indexes).  Returns -1 if the two units are not connected.
func (pj *Pathway) SynIdx(sidx, ridx int) int {
	if ridx < 0 || ridx >= pj.Recv.Shape().Len() {
		return -1
	}
	if sidx < 0 || sidx >= pj.Send.Shape().Len() {
		return -1
	}
	nc := int(pj.RConN[ridx])
	st := int(pj.RConIdxSt[ridx])
	for ci := 0; ci < nc; ci++ {
		si := int(pj.RConIdx[st+ci])
		if si != sidx {
			continue
		}
		return int(pj.RSynIdx[st+ci])
	}
	return -1
}

// SynVal1D returns value of given variable index (from SynVarIdx) on given
// SynIdx.  Returns NaN on invalid index.  This is the core synapse var
// access method used by other methods, so it is the only one that needs to
// be updated for derived prjn types.
func (pj *Pathway) SynVal1D(varIdx int, synIdx int) float32 {
	if synIdx < 0 || synIdx >= len(pj.Syns) {
		return mat32.NaN()
	}
	if varIdx < 0 || varIdx >= len(SynapseVars) {
		return mat32.NaN()
	}
	sy := &pj.Syns[synIdx]
	return sy.VarByIndex(varIdx)
}

// SetSynVal sets value of given variable name on the synapse between given
// send, recv unit indexes (1D, flat indexes).
// Returns error for access errors.
func (pj *Pathway) SetSynVal(varNm string, sidx, ridx int, val float32) error {
	vidx, err := SynapseVarByName(varNm)
	if err != nil {
		return err
	}
	synIdx := pj.SynIdx(sidx, ridx)
	if synIdx < 0 {
		return fmt.Errorf("micro.SetSynVal: no synapse between send %v, recv %v in prjn %v", sidx, ridx, pj.Name())
	}
	sy := &pj.Syns[synIdx]
	sy.SetVarByIndex(vidx, val)
	return nil
}

//////////////////////////////////////////////////////////////////////////////////////
//  Weights I/O

// WriteWtsJSON writes the weights from this pathway from the receiver-side
// perspective in a JSON text format.  We build in the indentation logic to
// make it much faster and more efficient.
func (pj *Pathway) WriteWtsJSON(w io.Writer, depth int) {
	nr := pj.Recv.Shape().Len()
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("{\n"))
	depth++
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"From\": %q,\n", pj.Send.Name())))
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"MetaData\": {\n")))
	depth++
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"Delay\": \"%g\"\n", pj.Delay)))
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("},\n"))
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"Rs\": [\n")))
	depth++
	for ri := 0; ri < nr; ri++ {
		nc := int(pj.RConN[ri])
		st := int(pj.RConIdxSt[ri])
		w.Write(indent.TabBytes(depth))
		w.Write([]byte("{\n"))
		depth++
		w.Write(indent.TabBytes(depth))
		w.Write([]byte(fmt.Sprintf("\"Ri\": %v,\n", ri)))
		w.Write(indent.TabBytes(depth))
		w.Write([]byte(fmt.Sprintf("\"N\": %v,\n", nc)))
		w.Write(indent.TabBytes(depth))
		w.Write([]byte("\"Si\": [ "))
		for ci := 0; ci < nc; ci++ {
			si := pj.RConIdx[st+ci]
			w.Write([]byte(fmt.Sprintf("%v", si)))
			if ci == nc-1 {
				w.Write([]byte(" "))
			} else {
				w.Write([]byte(", "))
			}
		}
		w.Write([]byte("],\n"))
		w.Write(indent.TabBytes(depth))
		w.Write([]byte("\"Wt\": [ "))
		for ci := 0; ci < nc; ci++ {
			rsi := pj.RSynIdx[st+ci]
			sy := &pj.Syns[rsi]
			w.Write([]byte(strconv.FormatFloat(float64(sy.Wt), 'g', weights.Prec, 32)))
			if ci == nc-1 {
				w.Write([]byte(" "))
			} else {
				w.Write([]byte(", "))
			}
		}
		w.Write([]byte("]\n"))
		depth--
		w.Write(indent.TabBytes(depth))
		if ri == nr-1 {
			w.Write([]byte("}\n"))
		} else {
			w.Write([]byte("},\n"))
		}
	}
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("]\n"))
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

// SetWts sets the weights for this pathway from weights.Prjn decoded values
func (pj *Pathway) SetWts(pw *weights.Prjn) error {
	if pw.MetaData != nil {
		if dl, ok := pw.MetaData["Delay"]; ok {
			pv, _ := strconv.ParseFloat(dl, 32)
			pj.Delay = float32(pv)
		}
	}
	var err error
	for i := range pw.Rs {
		pr := &pw.Rs[i]
		for si := range pr.Si {
			er := pj.SetSynVal("Wt", pr.Si[si], pr.Ri, pr.Wt[si])
			if er != nil {
				err = er
			}
		}
	}
	return err
}
