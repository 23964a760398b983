// Package regions implements hierarchical region merging over a segmentation.
//
// This package is the core of the proposal pipeline. It turns a dense label
// mask into a table of appearance-described regions, connects neighboring
// regions into a graph, and greedily merges the most similar pair until no
// pairs remain. Every region that survives the process, at any scale, is a
// candidate object proposal.
//
// # Pipeline
//
// The stages run strictly in order:
//
//  1. Extraction: FromMask assigns region ids in raster order of first label
//     occurrence and computes each region's pixel count, bounding box, and
//     color/texture histograms.
//  2. Expansion: ExpandAll pads every bounding box by a fixed border, clipped
//     to the image, and recomputes the box area. The pre-expansion box is
//     retained for reporting.
//  3. Graph: Neighbors connects region pairs whose expanded boxes overlap
//     corner-wise (see below).
//  4. Merging: Merge repeatedly pops the highest-scored pair, writes the
//     merged region under a fresh id, retires the pair's edges, and links the
//     merged region to the union of its parents' surviving neighbors.
//  5. Assembly: Proposals lists every region never consumed by a merge.
//
// # Similarity
//
// A pair's score is the unweighted sum of four terms: color histogram
// intersection, texture histogram intersection, a size term favoring small
// pairs, and a fill term favoring pairs whose union is compact. The histogram
// terms lie in [0, 1]; the size and fill terms are at most 1 but unbounded
// below, so a total score may be negative.
//
// # Neighbor Test
//
// Two regions are neighbors when any corner of one box lies strictly inside
// the other box, tested one way only. The test deliberately misses exact
// edge-sharing, full containment, and cross-shaped overlap; regions that a
// stricter test would connect simply never merge. Keeping the quirk keeps
// merge hierarchies reproducible against the historical behavior of this
// algorithm family.
//
// # Determinism
//
// Region ids are assigned in raster order, merged ids increase monotonically
// from there, and score ties break toward the lexicographically smallest id
// pair, so identical inputs always produce identical hierarchies. Nothing in
// this package depends on clocks, random sources, or map iteration order;
// neighbor id lists collected from the adjacency index are sorted before use.
//
// # Size Accounting
//
// A region's Size is its exact pixel count and merging adds sizes, so the sum
// over any generation of the hierarchy is conserved. BBoxArea always derives
// from the current bounding box; histograms are size-weighted averages of the
// parents and are not renormalized after a merge.
package regions
