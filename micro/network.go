// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package micro

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/c2h5oh/datasize"
	"github.com/emer/emergent/emer"
	"github.com/emer/emergent/prjn"
	"github.com/emer/meso/meso"
	"github.com/goki/ki/kit"
	"github.com/goki/mat32"
)

// micro.Network simulates the same GIF population model as meso.Network at
// the microscopic level: every neuron and synapse is instantiated, and each
// spike is an individual Bernoulli draw.  Cost scales with the number of
// neurons and connections, which is exactly what the mesoscopic engine
// avoids -- run both on the same configuration to validate the mesoscopic
// approximation.
type Network struct {
	meso.Network
}

var KiT_Network = kit.Types.AddType(&Network{}, meso.NetworkProps)

// NewNetwork returns a new micro Network
func NewNetwork(name string) *Network {
	net := &Network{}
	net.InitName(net, name)
	return net
}

func (nt *Network) AsMicro() *Network {
	return nt
}

// NewLayer returns new population of proper type
func (nt *Network) NewLayer() emer.Layer {
	return &Population{}
}

// NewPrjn returns new pathway of proper type
func (nt *Network) NewPrjn() emer.Prjn {
	return &Pathway{}
}

// UnitVarNames returns a list of variable names available on the units in
// this network: the population-level quantities shared with the mesoscopic
// engine, then the per-neuron state.  The order of this list determines
// NetView variable display order.  This is typically a global list so do
// not modify!
func (nt *Network) UnitVarNames() []string {
	return NeuronVarsAll
}

// UnitVarProps returns properties for variables
func (nt *Network) UnitVarProps() map[string]string {
	return NeuronVarProps
}

// SynVarNames returns the names of all the variables on the synapses in
// this network.  The order of this list determines NetView variable display
// order.  This is typically a global list so do not modify!
func (nt *Network) SynVarNames() []string {
	return SynapseVars
}

// SynVarProps returns properties for variables
func (nt *Network) SynVarProps() map[string]string {
	return SynapseVarProps
}

// AddPopulation adds a new population of n neurons with given name and type
// to the network.  The display shape is the most square 2D factorization of
// n, falling back to a single row when n is prime.
func (nt *Network) AddPopulation(name string, n int, typ emer.LayerType) *Population {
	rows := int(mat32.Sqrt(float32(n)))
	for rows > 1 && n%rows != 0 {
		rows--
	}
	return nt.AddLayer2D(name, rows, n/rows, typ).(MicroLayer).AsMicro()
}

// ConnectPops connects two populations with individual synapses following
// the given pattern, each initialized to the given coupling weight (pA of
// post-synaptic current per spike, negative = inhibitory), with the given
// transmission delay (msec).  Unlike the mesoscopic engine, the pattern
// matters here: it determines which neuron pairs are connected.  Note that
// Defaults resets pathway parameters, so call this after network Defaults
// (or set WtInit, Delay via params sheets).
func (nt *Network) ConnectPops(send, recv emer.Layer, wt, delay float32, pat prjn.Pattern) *Pathway {
	typ := emer.Forward
	switch {
	case send == recv:
		typ = emer.Lateral
	case wt < 0:
		typ = emer.Inhib
	}
	pj := nt.ConnectLayers(send, recv, pat, typ).(MicroPath).AsMicro()
	pj.Defaults()
	pj.Wt = wt
	pj.WtInit.Mean = wt
	pj.Delay = delay
	return pj
}

// SizeReport returns a string reporting the size of each population and
// pathway in the network, and total memory footprint.  Unlike the
// mesoscopic engine this scales with neurons and synapses.
func (nt *Network) SizeReport() string {
	var b strings.Builder
	nneur := 0
	neurMem := 0
	nsyn := 0
	synMem := 0
	for _, ly := range nt.Layers {
		pop := ly.(MicroLayer).AsMicro()
		nn := len(pop.Neurons)
		pmem := int(unsafe.Sizeof(Population{})) + nn*int(unsafe.Sizeof(Neuron{}))
		nneur += nn
		neurMem += pmem
		fmt.Fprintf(&b, "%14s:\t Neurons: %d\t Mem: %v \t Sends To:\n", pop.Nm, nn, (datasize.ByteSize)(pmem).HumanReadable())
		for _, spj := range pop.SndPaths {
			pj := spj.(MicroPath).AsMicro()
			smem := int(unsafe.Sizeof(Pathway{})) + len(pj.Syns)*int(unsafe.Sizeof(Synapse{})) + 4*(len(pj.GBufEx)+len(pj.GBufIn))
			nsyn += len(pj.Syns)
			synMem += smem
			fmt.Fprintf(&b, "\t%14s:\t Syns: %d\t DelaySteps: %d\t Mem: %v\n", pj.Recv.Name(), len(pj.Syns), pj.DSteps, (datasize.ByteSize)(smem).HumanReadable())
		}
	}
	fmt.Fprintf(&b, "\n\n%14s:\t Neurons: %d\t NeurMem: %v \t Syns: %d \t SynMem: %v\n",
		nt.Nm, nneur, (datasize.ByteSize)(neurMem).HumanReadable(), nsyn, (datasize.ByteSize)(synMem).HumanReadable())
	return b.String()
}
