// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meso

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"

	"github.com/emer/emergent/emer"
	"github.com/emer/emergent/weights"
	"github.com/emer/etable/etensor"
	"github.com/emer/meso/stim"
	"github.com/goki/ki/indent"
	"github.com/goki/ki/ki"
	"github.com/goki/ki/kit"
	"github.com/goki/mat32"
)

// PopVar is an index into the population-level state variables, which are
// served as unit variables for display: the mesoscopic engine keeps no
// per-unit state, so every unit in a population reports the population value.
type PopVar int

const (
	Act PopVar = iota
	ActAvg
	Rate
	Spikes
	Avail
	FreeV
	Theta
	ThetaF
	ThetaS
	ISyn
	IStim
	Ext
	PopVarsN
)

var (
	// PopVarNames is the variable name for each PopVar, in order
	PopVarNames = []string{"Act", "ActAvg", "Rate", "Spikes", "Avail", "FreeV", "Theta", "ThetaF", "ThetaS", "ISyn", "IStim", "Ext"}

	PopVarsMap map[string]int

	PopVarProps = map[string]string{
		"Act":    `auto-scale:"+"`,
		"ActAvg": `auto-scale:"+"`,
		"Rate":   `auto-scale:"+"`,
		"Spikes": `auto-scale:"+"`,
		"Avail":  `auto-scale:"+"`,
		"FreeV":  `min:"-5" max:"25"`,
		"Theta":  `auto-scale:"+"`,
		"ThetaF": `auto-scale:"+"`,
		"ThetaS": `auto-scale:"+"`,
		"ISyn":   `auto-scale:"+"`,
		"IStim":  `auto-scale:"+"`,
		"Ext":    `auto-scale:"+"`,
	}
)

func init() {
	PopVarsMap = make(map[string]int, len(PopVarNames))
	for i, v := range PopVarNames {
		PopVarsMap[v] = i
	}
}

// meso.Population simulates a homogeneous population of N generalized
// integrate-and-fire (GIF) neurons at the mesoscopic level: instead of
// per-neuron potentials and spikes, it tracks the free membrane potential
// shared by all non-refractory neurons, population-level adaptation, and a
// refractory ledger of recent spike counts, and draws the number of
// spiking neurons each step from the escape-noise hazard.  State and cost
// per step are independent of N.
type Population struct {
	PopulationStru
	GIF    GIFParams  `view:"add-fields" desc:"all the GIF neuron parameters for this population, shared by every neuron in it"`
	Stim   stim.Step  `view:"inline" desc:"external stimulus current schedule (pA), added to the constant GIF.Mem.IE"`
	Refrac RefracBuf  `desc:"refractory ledger: circular buffer of recent spike counts covering the absolute refractory period"`
	Obs    []Observer `copy:"-" json:"-" xml:"-" view:"-" desc:"observers notified with a state snapshot at the end of every cycle"`

	FreeV   float32 `inactive:"+" desc:"membrane potential (mV) of the free (non-refractory) neurons -- does not reset on spikes, as spiking neurons leave the free pool for the ledger instead"`
	ThetaF  float32 `inactive:"+" desc:"fast adaptation trace (mV), added to the firing threshold"`
	ThetaS  float32 `inactive:"+" desc:"slow adaptation trace (mV), added to the firing threshold"`
	ISyn    float32 `inactive:"+" desc:"total synaptic input current (pA) this step, summed over receiving pathways"`
	IStim   float32 `inactive:"+" desc:"stimulus current (pA) this step = GIF.Mem.IE + Stim.Current at the current time"`
	Rate    float32 `inactive:"+" desc:"expected per-neuron firing rate (Hz) this step, from the escape-noise hazard of the free potential"`
	Act     float32 `inactive:"+" desc:"realized population activity (Hz) this step = 1000 * Spikes / (N * Dt)"`
	ActAvg  float32 `inactive:"+" desc:"running average of Act, integrated with GIF.Avg.Tau"`
	Spikes  int     `inactive:"+" desc:"number of neurons that spiked this step"`
	Avail   int     `inactive:"+" desc:"number of neurons that were available to spike this step (N minus refractory and lesioned)"`
	NLesion int     `inactive:"+" desc:"number of lesioned neurons, permanently excluded from spiking"`
	Ext     float32 `desc:"externally applied rate (Hz) -- drives the population directly when it is Clamped"`
	Clamped bool    `inactive:"+" desc:"if true, Rate is set from Ext instead of the membrane hazard -- true for Input type populations"`
}

var KiT_Population = kit.Types.AddType(&Population{}, PopulationProps)

// AsMeso returns this population as a meso.Population -- so that the
// MesoLayer interface does not need to include accessors to all the basic
// population state
func (pop *Population) AsMeso() *Population {
	return pop
}

// N returns the number of neurons in the population, from the shape
func (pop *Population) N() int {
	return pop.Shp.Len()
}

func (pop *Population) Defaults() {
	pop.GIF.Defaults()
	pop.Stim.Defaults()
	for _, pj := range pop.RcvPaths {
		pj.Defaults()
	}
}

// UpdateParams updates all params given any changes that might have been
// made to individual values, including those in receiving pathways
func (pop *Population) UpdateParams() {
	pop.GIF.Update()
	pop.Stim.Update()
	for _, pj := range pop.RcvPaths {
		pj.UpdateParams()
	}
}

// AddObserver attaches an observer that is called with a read-only state
// snapshot at the end of every cycle, after all state updating.
func (pop *Population) AddObserver(ob Observer) {
	pop.Obs = append(pop.Obs, ob)
}

// State returns a value snapshot of the population state at the current
// time.  Observers receive this by value and cannot perturb the engine.
func (pop *Population) State(ctx *Context) PopState {
	return PopState{
		Name:   pop.Nm,
		Time:   ctx.Time,
		Cycle:  ctx.Cycle,
		N:      pop.N(),
		FreeV:  pop.FreeV,
		ThetaF: pop.ThetaF,
		ThetaS: pop.ThetaS,
		ISyn:   pop.ISyn,
		IStim:  pop.IStim,
		Rate:   pop.Rate,
		Act:    pop.Act,
		ActAvg: pop.ActAvg,
		Spikes: pop.Spikes,
		Avail:  pop.Avail,
	}
}

// AllParams returns a listing of all parameters in the Population
func (pop *Population) AllParams() string {
	str := "/////////////////////////////////////////////////\nLayer: " + pop.Nm + "\n"
	b, _ := json.MarshalIndent(&pop.GIF, "", " ")
	str += "GIF: {\n " + JsonToParams(b)
	b, _ = json.MarshalIndent(&pop.Stim, "", " ")
	str += "Stim: {\n " + JsonToParams(b)
	for _, pj := range pop.RcvPaths {
		pstr := pj.AllParams()
		str += pstr
	}
	return str
}

//////////////////////////////////////////////////////////////////////////////////////
//  Unit variables

// UnitVarNames returns a list of variable names available on the units in
// this population.
func (pop *Population) UnitVarNames() []string {
	return PopVarNames
}

// UnitVarProps returns properties for variables
func (pop *Population) UnitVarProps() map[string]string {
	return PopVarProps
}

// UnitVarIdx returns the index of given variable within the unit,
// according to UnitVarNames() list (using a map to lookup index),
// or -1 and error message if not found.
func (pop *Population) UnitVarIdx(varNm string) (int, error) {
	vidx, ok := PopVarsMap[varNm]
	if !ok {
		return -1, fmt.Errorf("meso.PopVarByName: variable name: %v not valid", varNm)
	}
	return vidx, nil
}

// UnitVarNum returns the number of unit-level variables for this population.
// This is needed for extending indexes in derived types.
func (pop *Population) UnitVarNum() int {
	return len(PopVarNames)
}

// PopVarByIdx returns the population value for the given variable index.
// Every unit in a mesoscopic population reports the same value.
func (pop *Population) PopVarByIdx(vidx PopVar) float32 {
	switch vidx {
	case Act:
		return pop.Act
	case ActAvg:
		return pop.ActAvg
	case Rate:
		return pop.Rate
	case Spikes:
		return float32(pop.Spikes)
	case Avail:
		return float32(pop.Avail)
	case FreeV:
		return pop.FreeV
	case Theta:
		return pop.ThetaF + pop.ThetaS
	case ThetaF:
		return pop.ThetaF
	case ThetaS:
		return pop.ThetaS
	case ISyn:
		return pop.ISyn
	case IStim:
		return pop.IStim
	case Ext:
		return pop.Ext
	}
	return mat32.NaN()
}

// UnitVal1D returns value of given variable index on given unit, using
// 1-dimensional index.  returns NaN on invalid index.  This is the core
// unit var access method used by other methods, so it is the only one that
// needs to be updated for derived layer types.
func (pop *Population) UnitVal1D(varIdx int, idx int) float32 {
	if idx < 0 || idx >= pop.N() {
		return mat32.NaN()
	}
	if varIdx < 0 || varIdx >= int(PopVarsN) {
		return mat32.NaN()
	}
	return pop.PopVarByIdx(PopVar(varIdx))
}

// UnitVals fills in values of given variable name on unit,
// for each unit in the population, into given float32 slice (only resized
// if not big enough).  Returns error on invalid var name.
func (pop *Population) UnitVals(vals *[]float32, varNm string) error {
	nn := pop.N()
	if *vals == nil || cap(*vals) < nn {
		*vals = make([]float32, nn)
	} else if len(*vals) < nn {
		*vals = (*vals)[0:nn]
	}
	vidx, err := pop.MesoPop.UnitVarIdx(varNm)
	if err != nil {
		nan := mat32.NaN()
		for i := range *vals {
			(*vals)[i] = nan
		}
		return err
	}
	for i := range *vals {
		(*vals)[i] = pop.MesoPop.UnitVal1D(vidx, i)
	}
	return nil
}

// UnitValsTensor returns values of given variable name on unit
// for each unit in the population, as a float32 tensor in same shape as the
// population units.
func (pop *Population) UnitValsTensor(tsr etensor.Tensor, varNm string) error {
	if tsr == nil {
		err := fmt.Errorf("meso.UnitValsTensor: Tensor is nil")
		log.Println(err)
		return err
	}
	tsr.SetShape(pop.Shp.Shp, pop.Shp.Strd, pop.Shp.Nms)
	vidx, err := pop.MesoPop.UnitVarIdx(varNm)
	if err != nil {
		nan := math.NaN()
		for j := 0; j < tsr.Len(); j++ {
			tsr.SetFloat1D(j, nan)
		}
		return err
	}
	for j := 0; j < tsr.Len(); j++ {
		vl := pop.MesoPop.UnitVal1D(vidx, j)
		tsr.SetFloat1D(j, float64(vl))
	}
	return nil
}

// UnitValsRepTensor fills in values of given variable name on unit
// for a smaller subset of representative units in the population, into
// given tensor.  This is used for computationally intensive stats or
// displays that work much better with a smaller number of units.
// The set of representative units are defined by SetRepIdxs -- all units
// are used if no such subset has been defined.
func (pop *Population) UnitValsRepTensor(tsr etensor.Tensor, varNm string) error {
	nu := len(pop.RepIxs)
	if nu == 0 {
		return pop.MesoPop.UnitValsTensor(tsr, varNm)
	}
	if tsr == nil {
		err := fmt.Errorf("meso.UnitValsRepTensor: Tensor is nil")
		log.Println(err)
		return err
	}
	if tsr.Len() != nu {
		rs := pop.RepShape()
		tsr.SetShape(rs.Shp, rs.Strd, rs.Nms)
	}
	vidx, err := pop.MesoPop.UnitVarIdx(varNm)
	if err != nil {
		nan := math.NaN()
		for j := 0; j < nu; j++ {
			tsr.SetFloat1D(j, nan)
		}
		return err
	}
	for i, ui := range pop.RepIxs {
		vl := pop.MesoPop.UnitVal1D(vidx, ui)
		tsr.SetFloat1D(i, float64(vl))
	}
	return nil
}

// UnitVal returns value of given variable name on given unit,
// using shape-based dimensional index
func (pop *Population) UnitVal(varNm string, idx []int) float32 {
	vidx, err := pop.MesoPop.UnitVarIdx(varNm)
	if err != nil {
		return mat32.NaN()
	}
	fidx := pop.Shp.Offset(idx)
	return pop.MesoPop.UnitVal1D(vidx, fidx)
}

// VarRange returns the min / max values for given variable
func (pop *Population) VarRange(varNm string) (min, max float32, err error) {
	vidx := 0
	vidx, err = pop.MesoPop.UnitVarIdx(varNm)
	if err != nil {
		return
	}
	v := pop.MesoPop.UnitVal1D(vidx, 0)
	return v, v, nil
}

//////////////////////////////////////////////////////////////////////////////////////
//  Build

// Build constructs the population state from the shape and parameters,
// including calling Build on the receiving pathways.  Time-step dependent
// state (the refractory ledger, pathway delay queues) is allocated later,
// in BuildCtx, once the context is known.
func (pop *Population) Build() error {
	if pop.Shp.Len() == 0 {
		return fmt.Errorf("Build Population %v: no units specified in Shape", pop.Nm)
	}
	pop.GIF.Update()
	if err := pop.GIF.Validate(); err != nil {
		return fmt.Errorf("Build Population %v: %v", pop.Nm, err)
	}
	if err := pop.Stim.Validate(); err != nil {
		return fmt.Errorf("Build Population %v: %v", pop.Nm, err)
	}
	return pop.BuildPaths()
}

// BuildPaths builds the receiving pathways
func (pop *Population) BuildPaths() error {
	emsg := ""
	for _, pj := range pop.RcvPaths {
		if pj.IsOff() {
			continue
		}
		err := pj.Build()
		if err != nil {
			emsg += err.Error() + "\n"
		}
	}
	if emsg != "" {
		return errors.New(emsg)
	}
	return nil
}

// BuildCtx allocates the time-step dependent state from the context: the
// refractory ledger covering TRef, and the delay queues of the receiving
// pathways.  Build must have been called first.
func (pop *Population) BuildCtx(ctx *Context) error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	pop.Refrac.Config(pop.GIF.Mem.TRef, ctx.Dt)
	emsg := ""
	for _, pj := range pop.RcvPaths {
		if pj.IsOff() {
			continue
		}
		err := pj.(MesoPath).BuildCtx(ctx)
		if err != nil {
			emsg += err.Error() + "\n"
		}
	}
	if emsg != "" {
		return errors.New(emsg)
	}
	return nil
}

//////////////////////////////////////////////////////////////////////////////////////
//  Init methods

// InitWts initializes the weight state of receiving pathways and the
// dynamic state of the population.  Pathway weights here are parameters,
// not samples, so nothing is randomized.
func (pop *Population) InitWts() {
	pop.MesoPop.UpdateParams()
	for _, pj := range pop.RcvPaths {
		if pj.IsOff() {
			continue
		}
		pj.(MesoPath).InitWts()
	}
	pop.MesoPop.InitActs()
}

// InitActs initializes the dynamic state: the free potential starts at the
// resting potential, adaptation and input currents at zero, and the
// refractory ledger empty.  Parameters and lesions are not changed.
func (pop *Population) InitActs() {
	pop.FreeV = pop.GIF.Mem.EL
	pop.ThetaF = 0
	pop.ThetaS = 0
	pop.ISyn = 0
	pop.IStim = 0
	pop.Rate = 0
	pop.Act = 0
	pop.ActAvg = 0
	pop.Spikes = 0
	pop.Avail = pop.N() - pop.NLesion
	pop.Refrac.Init()
	pop.InitSyns()
}

// InitSyns initializes the synaptic current accumulators and delay queues
// of the receiving pathways.  Called by InitActs.
func (pop *Population) InitSyns() {
	for _, pj := range pop.RcvPaths {
		if pj.IsOff() {
			continue
		}
		pj.(MesoPath).InitSyn()
	}
}

// InitExt initializes external input state, clearing any applied rate
func (pop *Population) InitExt() {
	pop.Ext = 0
	pop.Clamped = pop.Typ == emer.Input
}

// ApplyExt applies external input of an applied rate (Hz) to the
// population, from the first value in the given tensor.  Populations of
// the Input type are then clamped to that rate; for other types the value
// is recorded but does not drive activity.
func (pop *Population) ApplyExt(ext etensor.Tensor) {
	if ext.Len() == 0 {
		return
	}
	pop.ApplyExtVal(float32(ext.FloatVal1D(0)))
}

// ApplyExt1DTsr applies external input in the form of a 1D tensor -- the
// first value is the applied rate (Hz)
func (pop *Population) ApplyExt1DTsr(ext etensor.Tensor) {
	if ext.Len() == 0 {
		return
	}
	pop.ApplyExtVal(float32(ext.FloatVal1D(0)))
}

// ApplyExt1D applies external input in the form of a flat 1-dimensional
// slice of floats -- the first value is the applied rate (Hz)
func (pop *Population) ApplyExt1D(ext []float64) {
	if len(ext) == 0 {
		return
	}
	pop.ApplyExtVal(float32(ext[0]))
}

// ApplyExt1D32 applies external input in the form of a flat 1-dimensional
// slice of float32s -- the first value is the applied rate (Hz)
func (pop *Population) ApplyExt1D32(ext []float32) {
	if len(ext) == 0 {
		return
	}
	pop.ApplyExtVal(float32(ext[0]))
}

// ApplyExtVal applies the given rate (Hz) as the external input
func (pop *Population) ApplyExtVal(val float32) {
	pop.Ext = val
	pop.Clamped = pop.Typ == emer.Input
}

// UpdateExtFlags updates the clamped status based on the current Type
// field -- call this if the Type has changed since the last ApplyExt.
func (pop *Population) UpdateExtFlags() {
	pop.Clamped = pop.Typ == emer.Input
}

//////////////////////////////////////////////////////////////////////////////////////
//  Cycle methods

// IFmSpikes computes the total input current for this step: each receiving
// pathway decays its synaptic current and delivers the weighted spike
// counts arriving now, and the stimulus current is evaluated at the
// current time.
func (pop *Population) IFmSpikes(ctx *Context) {
	pop.IStim = pop.GIF.Mem.IE + pop.Stim.Current(ctx.Time)
	isyn := float32(0)
	for _, p := range pop.RcvPaths {
		if p.IsOff() {
			continue
		}
		pj := p.(MesoPath).AsMeso()
		pj.StepSyn(ctx)
		isyn += pj.ISyn
	}
	pop.ISyn = isyn
}

// StateFmI integrates the free membrane potential from the total input
// current, using the exact exponential update over one time step.
// The free potential never resets: spiking neurons leave the free pool via
// the refractory ledger instead.  Clamped populations hold at rest.
func (pop *Population) StateFmI(ctx *Context) {
	if pop.Clamped {
		return
	}
	pop.FreeV = pop.GIF.Mem.VmFmI(pop.FreeV, pop.IStim+pop.ISyn, ctx.Dt)
}

// SpikesFmState draws this step's spike count for the population.
// The escape-noise hazard of the free potential above the adapted
// threshold sets the per-neuron rate, and the count is drawn over the
// neurons not currently held refractory (or the applied rate is used
// directly if clamped).  Adaptation then decays and jumps with the new
// spikes, the ledger advances one step, and the realized activity and its
// running average are updated.
func (pop *Population) SpikesFmState(ctx *Context) {
	n := pop.N()
	avail := n - pop.NLesion - pop.Refrac.Refrac()
	if avail < 0 {
		panic(fmt.Sprintf("meso.Population %v cycle %v: avail %v < 0: refractory ledger holds more neurons than the population", pop.Nm, ctx.Cycle, avail))
	}
	if pop.Clamped {
		pop.Rate = pop.Ext
	} else {
		pop.Rate = pop.GIF.HazardRate(pop.FreeV, pop.ThetaF+pop.ThetaS)
	}
	cnt := pop.GIF.Sample.CountFmRate(pop.Rate, avail, ctx.Dt, ctx.Rand)
	if cnt < 0 || cnt > avail {
		panic(fmt.Sprintf("meso.Population %v cycle %v: spike count %v outside [0, %v]", pop.Nm, ctx.Cycle, cnt, avail))
	}
	pop.Avail = avail
	pop.Spikes = cnt

	// adaptation: theta decays every step and jumps with this step's
	// spikes, normalized per neuron
	nrm := float32(cnt) / float32(n)
	pop.ThetaF = pop.GIF.Sfa.Fast.Decay(pop.ThetaF, ctx.Dt)
	pop.ThetaF = pop.GIF.Sfa.Fast.Inc(pop.ThetaF, nrm)
	pop.ThetaS = pop.GIF.Sfa.Slow.Decay(pop.ThetaS, ctx.Dt)
	pop.ThetaS = pop.GIF.Sfa.Slow.Inc(pop.ThetaS, nrm)

	pop.Refrac.Shift(cnt)
	pop.Act = 1000 * float32(cnt) / (float32(n) * ctx.Dt)
	pop.GIF.Avg.AvgFmAct(&pop.ActAvg, pop.Act, ctx.Dt)
}

// SendSpikes queues this step's spike count into the delay lines of the
// sending pathways, for delivery to receivers after each pathway's delay.
func (pop *Population) SendSpikes(ctx *Context) {
	if pop.Spikes == 0 {
		return
	}
	for _, p := range pop.SndPaths {
		if p.IsOff() {
			continue
		}
		p.(MesoPath).AsMeso().SendCount(pop.Spikes)
	}
}

// CyclePost is called after the standard cycle updating, and delivers the
// state snapshot to any attached observers.
func (pop *Population) CyclePost(ctx *Context) {
	if len(pop.Obs) == 0 {
		return
	}
	st := pop.State(ctx)
	for _, ob := range pop.Obs {
		ob.Sample(ctx, st)
	}
}

//////////////////////////////////////////////////////////////////////////////////////
//  Lesion

// UnLesionNeurons restores all lesioned neurons to the population
func (pop *Population) UnLesionNeurons() {
	pop.NLesion = 0
}

// LesionNeurons lesions given proportion (0-1) of neurons in the
// population, permanently excluding them from spiking, and returns the
// number lesioned.  The refractory ledger does not track which neurons are
// in it, so it restarts empty.  Emits error if prop > 1 as indication that
// percent might have been passed.
func (pop *Population) LesionNeurons(prop float32) int {
	pop.UnLesionNeurons()
	if prop > 1 {
		log.Printf("LesionNeurons got a proportion > 1 -- must be 0-1 as *proportion* (not percent) of neurons to lesion: %v\n", prop)
		return 0
	}
	nl := int(prop * float32(pop.N()))
	pop.NLesion = nl
	pop.Refrac.Init()
	return nl
}

//////////////////////////////////////////////////////////////////////////////////////
//  Weights I/O

// WriteWtsJSON writes the weights from this population from the
// receiver-side perspective in a JSON text format.  We build in the
// indentation logic to make it much faster and more efficient.
func (pop *Population) WriteWtsJSON(w io.Writer, depth int) {
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("{\n"))
	depth++
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"Layer\": %q,\n", pop.Nm)))
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"MetaData\": {\n")))
	depth++
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"ActAvg\": \"%g\"\n", pop.ActAvg)))
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("},\n"))
	w.Write(indent.TabBytes(depth))
	onps := make(emer.Prjns, 0, len(pop.RcvPaths))
	for _, pj := range pop.RcvPaths {
		if !pj.IsOff() {
			onps = append(onps, pj)
		}
	}
	np := len(onps)
	if np == 0 {
		w.Write([]byte(fmt.Sprintf("\"Prjns\": null\n")))
	} else {
		w.Write([]byte(fmt.Sprintf("\"Prjns\": [\n")))
		depth++
		for pi, pj := range onps {
			pj.WriteWtsJSON(w, depth) // this leaves prjn unterminated
			if pi == np-1 {
				w.Write([]byte("\n"))
			} else {
				w.Write([]byte(",\n"))
			}
		}
		depth--
		w.Write(indent.TabBytes(depth))
		w.Write([]byte("]\n"))
	}
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("}")) // note: leave unterminated as outer loop needs to add , or just \n depending
}

// ReadWtsJSON reads the weights from this population from the
// receiver-side perspective in a JSON text format.  This is for a set of
// weights that were saved *for one population only* and is not used for
// the network-level ReadWtsJSON, which reads into a separate structure --
// see SetWts method.
func (pop *Population) ReadWtsJSON(r io.Reader) error {
	lw, err := weights.LayReadJSON(r) // note: already logged
	if err != nil {
		return err
	}
	return pop.SetWts(lw)
}

// SetWts sets the weights for this population from weights.Layer decoded values
func (pop *Population) SetWts(lw *weights.Layer) error {
	if pop.IsOff() {
		return nil
	}
	if lw.MetaData != nil {
		if am, ok := lw.MetaData["ActAvg"]; ok {
			pv, _ := strconv.ParseFloat(am, 32)
			pop.ActAvg = float32(pv)
		}
	}
	var err error
	if len(lw.Prjns) == len(pop.RcvPaths) { // this is essential if multiple prjns from same layer
		for pi := range lw.Prjns {
			pw := &lw.Prjns[pi]
			pj := pop.RcvPaths[pi]
			er := pj.SetWts(pw)
			if er != nil {
				err = er
			}
		}
	} else {
		for pi := range lw.Prjns {
			pw := &lw.Prjns[pi]
			pj, er := pop.SendNameTry(pw.From)
			if er == nil {
				er = pj.SetWts(pw)
				if er != nil {
					err = er
				}
			}
		}
	}
	return err
}

var PopulationProps = ki.Props{
	"ToolBar": ki.PropSlice{
		{"Defaults", ki.Props{
			"icon": "reset",
			"desc": "return all parameters to their defaults",
		}},
		{"InitWts", ki.Props{
			"icon": "update",
			"desc": "initialize the pathway state and re-initialize the dynamic state",
		}},
		{"InitActs", ki.Props{
			"icon": "update",
			"desc": "initialize the dynamic state: potential, adaptation, currents, refractory ledger",
		}},
		{"sep-act", ki.BlankProp{}},
		{"LesionNeurons", ki.Props{
			"icon": "close",
			"desc": "Lesion (exclude from spiking) given proportion of neurons in the population (number must be 0 -- 1 NOT percent!)",
			"Args": ki.PropSlice{
				{"Proportion", ki.Props{
					"desc": "proportion (0 -- 1) of neurons to lesion",
				}},
			},
		}},
		{"UnLesionNeurons", ki.Props{
			"icon": "reset",
			"desc": "Un-Lesion (restore) all neurons in the population",
		}},
	},
}
