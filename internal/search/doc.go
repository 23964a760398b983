// Package search wires the proposal pipeline end to end.
//
// A Searcher takes a decoded three-channel image through segmentation,
// appearance description, and hierarchical merging, and returns the regions
// that survive merging as candidate object proposals. The zero configuration
// is DefaultOptions, which mirrors the conventional parameter choices for
// this algorithm family (fine segmentation, 10 px box border, 3000 px^2 box
// cap).
//
// The package also extracts recognizer-ready image patches for proposals;
// see ExtractPatches.
package search
