// Package imaging provides image loading and float-plane color conversion.
//
// This package implements the input side of the proposal pipeline: decoding
// images from disk, inspecting their metadata and channel structure, and
// decomposing them into flat per-channel float64 planes that the segmentation,
// texture and histogram stages consume. All operations work with standard Go
// image.Image types and use a coordinate system where (0,0) is at the top-left
// corner, X increases rightward, and Y increases downward.
//
// # Supported Formats
//
// Open registers decoders for PNG, JPEG, GIF, BMP and TIFF. Format reporting
// in ImageInfo is by file extension; decoding is by file contents.
//
// # Channel Counting
//
// ChannelCount reports the effective channel count of a decoded image (1 for
// grayscale, 3 for opaque color, 4 for color with transparency or CMYK).
// Go's decoded representation is almost always a four-component buffer, so
// the count is derived from the color model and the alpha actually present
// rather than from the in-memory type alone.
//
// # Planes
//
// A Planes value holds three flat row-major []float64 channels. RGBPlanes
// emits classic 0-255 component values; HSVPlanes converts through go-colorful
// and rescales hue, saturation and value onto the same [0, 255] span so both
// color spaces can share one histogram range.
//
// # Thread Safety
//
// All functions are stateless and safe for concurrent use on different
// images. A Planes value is plain data; callers that mutate one must
// synchronize access themselves.
package imaging
