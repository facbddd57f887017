// Package synth writes one navigation manifest per non-empty documentation
// directory.
//
// Directories are visited breadth-first, one frontier at a time, by a bounded
// pool of workers. Every manifest is on disk before Synthesize returns, so the
// tree builder never observes a partially synthesized tree.
package synth
