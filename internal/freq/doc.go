// Package freq implements concurrent duplicate-symbol aggregation: an input
// sequence is partitioned into contiguous chunks, each chunk is counted in
// isolation, the partial counts are merged into a global tally, and the
// symbols whose global count reaches the duplicate threshold are returned
// as a set.
//
// Three strategies implement the Scanner interface: Sequential (the trusted
// single-pass reference), Chunked (local count maps merged single-threaded
// after a join barrier), and Sharded (a lock-sharded global map updated
// concurrently). All strategies must produce identical sets for identical
// inputs; the orchestration layer cross-validates them.
package freq
