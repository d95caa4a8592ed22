// Package corridor implements the Corridorize stage: edge compatibility scoring, the chain builder (greedy growth +
// 2-core dead-end pruning), the attribute aggregator, chain-level
// effective-minimum-length classification, corridor assembly with
// connector sanitization, and corridor type classification.
//
// Per-activity corridor scoring lives
// in the activity package, which consumes CorridorAttributes and
// CorridorType produced here; corridor itself stays activity-agnostic.
//
// BuildCorridors is the package's single downstream entry point: it runs the full B->C->D->E->F->G pipeline over a graph.Graph and
// returns a CorridorNetwork plus build Stats.
package corridor
