// Package texture computes per-pixel texture descriptors.
//
// Both descriptors emit one value in [0, 1] per pixel per color channel,
// packed into imaging.Planes, so texture histograms can be built exactly like
// color histograms. Two descriptors are available:
//
//   - LBP: the classic 8-neighbor local binary pattern, computed per RGB
//     channel. Captures micro-structure and is invariant to monotonic
//     lighting changes.
//   - Sobel: per-channel gradient magnitude via the Sobel operator (from the
//     bild library). Captures edge strength rather than pattern.
package texture
