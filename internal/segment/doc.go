// Package segment provides graph-based image over-segmentation.
//
// This package implements the Felzenszwalb-Huttenlocher algorithm, which
// partitions an image into regions of roughly uniform color. The output is a
// dense label mask: every pixel carries exactly one integer label, and labels
// are consecutive starting at zero. Downstream stages treat these primitive
// segments as the leaves of a merge hierarchy.
//
// # Algorithm Overview
//
// Segmentation follows the classic pipeline:
//
//  1. Smoothing: Each color channel is blurred with a Gaussian of the given
//     sigma to suppress sensor noise before gradients are measured.
//  2. Graph Construction: Pixels become vertices; each pixel is connected to
//     its 8 neighbors with an edge weighted by the Euclidean color distance.
//  3. Region Merging: Edges are processed in ascending weight order. Two
//     components merge when the edge weight is small compared to the internal
//     variation of both, using the adaptive threshold scale/|C|.
//  4. Small-Component Cleanup: A final pass merges any component smaller than
//     MinSize into its nearest neighbor.
//  5. Relabeling: Component roots are renumbered 0..Count-1 in raster order
//     of first occurrence, so label assignment is deterministic.
//
// Larger Scale values produce fewer, larger segments; MinSize puts a hard
// floor on segment size regardless of Scale.
package segment
