// Package pipeline orchestrates the per-image conversion chain and the
// batch driver around it.
//
// A conversion is a fixed, strictly sequential chain of stages over one
// whole in-memory image:
//
//  1. Decode, flattening any alpha onto white
//  2. Pre-blur (optional) to smooth preexisting artifacts
//  3. Conversion to CIE LAB (optional)
//  4. Range normalization (optional)
//  5. Interleaved Gradient Noise generation and dithering
//  6. Conversion back to sRGB when LAB was used
//  7. Truncation to 8 bits per channel
//  8. System-palette quantization (optional)
//  9. A second, lighter dither pass at double scale (optional)
//  10. Final Gaussian blur (optional)
//  11. PNG encoding, named by input stem or by MD5 of the pixel data
//
// Stage order is not configurable; optional stages are skipped per Config.
// Dimensions never change between decode and encode.
//
// # Batch Processing
//
// ProcessDirectory converts every supported image in a directory with one
// shared, immutable Config. Files are independent: a decode or write failure
// is reported and counted, and the batch moves on to the next file. Nothing
// is retried and no partial output is kept for a failed file.
//
// # Determinism
//
// With a fixed seed the whole pipeline is deterministic: identical input and
// Config produce identical output bytes. A seed of -1 draws one random
// effective seed per conversion, which is the only nondeterministic point.
package pipeline
