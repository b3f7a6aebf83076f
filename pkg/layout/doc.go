// Package layout computes node positions for graphs.
//
// Every algorithm is a struct implementing the Layouter interface, with
// exported fields for its tunables and zero values meaning the documented
// defaults. Algorithms fall into two families: iterative force integrators
// (Spring, ForceAtlas2, ARF) that repeatedly move nodes under attraction
// and repulsion, and the KamadaKawai stress minimizer that fits euclidean
// distances to graph distances with a quasi-Newton solver.
//
// All algorithms are deterministic: random initial placements come from a
// small linear congruential generator seeded through the Seed field, never
// from global state. Output positions are normalized with Rescale to a
// fixed extent around a center point, except where an algorithm documents
// otherwise (ARF reports raw simulation coordinates, and Spring skips
// normalization when nodes are pinned).
package layout
