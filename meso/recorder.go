// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meso

import (
	"github.com/emer/etable/agg"
	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/goki/mat32"
)

// Observer is notified at the end of every cycle with a snapshot of the
// population state.  Snapshots are passed by value, so an observer can
// never perturb the running engine.  Register observers on a population
// with AddObserver.
type Observer interface {
	// Sample receives the end-of-cycle state of one population
	Sample(ctx *Context, ps PopState)
}

// PopState is a value snapshot of the complete dynamic state of one
// population at the end of a cycle, as handed to observers
type PopState struct {
	Name   string  `desc:"population name"`
	Time   float32 `desc:"simulation time at the start of this cycle (msec)"`
	Cycle  int     `desc:"cycle (time step) index"`
	N      int     `desc:"number of neurons in the population"`
	FreeV  float32 `desc:"free membrane potential (mV)"`
	ThetaF float32 `desc:"fast adaptation component of the threshold (mV)"`
	ThetaS float32 `desc:"slow adaptation component of the threshold (mV)"`
	ISyn   float32 `desc:"synaptic input current (pA)"`
	IStim  float32 `desc:"external stimulation current (pA)"`
	Rate   float32 `desc:"per-neuron hazard rate used for this cycle's draw (Hz)"`
	Act    float32 `desc:"realized population activity this cycle (Hz)"`
	ActAvg float32 `desc:"running average of population activity (Hz)"`
	Spikes int     `desc:"number of neurons that spiked this cycle"`
	Avail  int     `desc:"number of neurons available to spike this cycle (not refractory, not lesioned)"`
}

// Recorder is an Observer that accumulates population snapshots into an
// etable.Table, one row per sampled population per cycle.  One recorder can
// be attached to any number of populations -- the Pop column identifies the
// source of each row.  The resulting table plugs directly into eplot and
// the etable agg / split analysis functions.
type Recorder struct {
	Interval float32       `def:"1" min:"0" desc:"sampling interval (msec): a cycle is recorded when at least this much simulated time has elapsed since the last recorded cycle -- 0 records every cycle"`
	Table    *etable.Table `desc:"record of sampled state, one row per population per sampled cycle"`

	LastT   float32 `view:"-" desc:"time of the last recorded cycle"`
	LastCyc int     `view:"-" desc:"last cycle seen, for detecting the start of a new cycle"`
	Gated   bool    `view:"-" desc:"whether the current cycle passed the interval gate"`
}

// NewRecorder returns a configured recorder with given sampling interval (msec)
func NewRecorder(interval float32) *Recorder {
	rec := &Recorder{Interval: interval}
	rec.Config()
	return rec
}

// Config allocates the record table and resets the sampling state
func (rec *Recorder) Config() {
	dt := &etable.Table{}
	dt.SetMetaData("name", "PopLog")
	dt.SetMetaData("desc", "Record of population state over time")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", "4")
	sch := etable.Schema{
		{"Pop", etensor.STRING, nil, nil},
		{"Time", etensor.FLOAT64, nil, nil},
		{"Cycle", etensor.INT64, nil, nil},
		{"Rate", etensor.FLOAT64, nil, nil},
		{"Act", etensor.FLOAT64, nil, nil},
		{"ActAvg", etensor.FLOAT64, nil, nil},
		{"Spikes", etensor.INT64, nil, nil},
		{"Avail", etensor.INT64, nil, nil},
		{"FreeV", etensor.FLOAT64, nil, nil},
		{"ThetaF", etensor.FLOAT64, nil, nil},
		{"ThetaS", etensor.FLOAT64, nil, nil},
		{"ISyn", etensor.FLOAT64, nil, nil},
		{"IStim", etensor.FLOAT64, nil, nil},
	}
	dt.SetFromSchema(sch, 0)
	rec.Table = dt
	rec.ResetSampling()
}

// ResetSampling resets the interval gate so the next cycle always records --
// does not touch already-recorded rows
func (rec *Recorder) ResetSampling() {
	rec.LastT = -mat32.Infinity
	rec.LastCyc = -1
	rec.Gated = false
}

// Reset discards all recorded rows and resets the sampling state
func (rec *Recorder) Reset() {
	if rec.Table == nil {
		rec.Config()
		return
	}
	rec.Table.SetNumRows(0)
	rec.ResetSampling()
}

// Sample implements the Observer interface.  The interval gate is evaluated
// once per cycle, so when several populations share one recorder they all
// record the same cycles.
func (rec *Recorder) Sample(ctx *Context, ps PopState) {
	if rec.Table == nil {
		rec.Config()
	}
	if ps.Cycle != rec.LastCyc {
		rec.LastCyc = ps.Cycle
		rec.Gated = rec.Interval <= 0 || ps.Time-rec.LastT >= rec.Interval-0.0001
		if rec.Gated {
			rec.LastT = ps.Time
		}
	}
	if !rec.Gated {
		return
	}
	dt := rec.Table
	row := dt.Rows
	dt.SetNumRows(row + 1)
	dt.SetCellString("Pop", row, ps.Name)
	dt.SetCellFloat("Time", row, float64(ps.Time))
	dt.SetCellFloat("Cycle", row, float64(ps.Cycle))
	dt.SetCellFloat("Rate", row, float64(ps.Rate))
	dt.SetCellFloat("Act", row, float64(ps.Act))
	dt.SetCellFloat("ActAvg", row, float64(ps.ActAvg))
	dt.SetCellFloat("Spikes", row, float64(ps.Spikes))
	dt.SetCellFloat("Avail", row, float64(ps.Avail))
	dt.SetCellFloat("FreeV", row, float64(ps.FreeV))
	dt.SetCellFloat("ThetaF", row, float64(ps.ThetaF))
	dt.SetCellFloat("ThetaS", row, float64(ps.ThetaS))
	dt.SetCellFloat("ISyn", row, float64(ps.ISyn))
	dt.SetCellFloat("IStim", row, float64(ps.IStim))
}

// PopRows returns an indexed view of the rows recorded for given population
func (rec *Recorder) PopRows(popNm string) *etable.IdxView {
	ix := etable.NewIdxView(rec.Table)
	ix.Filter(func(et *etable.Table, row int) bool {
		return et.CellString("Pop", row) == popNm
	})
	return ix
}

// AvgAct returns the mean realized activity (Hz) for given population over
// the time window [t0, t1) -- the standard summary statistic for comparing
// runs against each other or against theory
func (rec *Recorder) AvgAct(popNm string, t0, t1 float32) float64 {
	ix := etable.NewIdxView(rec.Table)
	ix.Filter(func(et *etable.Table, row int) bool {
		if et.CellString("Pop", row) != popNm {
			return false
		}
		tm := float32(et.CellFloat("Time", row))
		return tm >= t0 && tm < t1
	})
	if len(ix.Idxs) == 0 {
		return 0
	}
	return agg.Mean(ix, "Act")[0]
}
