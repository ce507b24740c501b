// Copyright (c) 2022, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package meso is the overall repository for simulating networks of generalized
integrate-and-fire (GIF) neurons at the level of whole populations, implemented
in the Go language (golang).

This top-level of the repository has no functional code -- everything is
organized into the following sub-packages:

* meso: the core mesoscopic engine, where each population of N neurons is a
single unit carrying a handful of state variables (free membrane potential,
adaptation traces, a refractory ledger), and the number of neurons spiking per
time step is sampled in closed form from the escape-noise hazard.  The cost per
step is independent of N, so large populations are as cheap as small ones.

* micro: the per-neuron spiking version of the same GIF model, used to
cross-validate the mesoscopic engine -- a micro network with the matching
parameters produces the same population rates (up to finite-size fluctuations),
at a cost that scales with the number of neurons and synapses.

* hazard, sfa, psc, stim: small support packages for the escape-noise hazard
function, spike-frequency adaptation traces, post-synaptic current kinetics,
and step-current stimuli, shared by both engines.

* examples: these compile into runnable programs.  examples/popcompare runs the
same circuit in both engines side by side and is the place to start;
examples/hazardplot plots the hazard function interactively, and examples/bench
measures cycle times headlessly.
*/
package meso
