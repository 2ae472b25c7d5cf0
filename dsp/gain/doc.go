// Package gain implements the rack's gain stage: deterministic block
// scaling of audio by a gain parameter and an optional rectified
// control voltage.
//
// The stage carries two interchangeable render paths. The accelerated
// path is a Module loaded from a compact binary descriptor (shipped
// base64-encoded as DefaultPayload) and rendered through algo-vecmath
// block kernels; the fallback path is a plain Go loop producing the
// same samples. Module loading happens out of band so construction
// never blocks on it.
//
// # Usage
//
//	stage, err := gain.NewStage(48000)
//	if err != nil {
//		log.Fatal(err)
//	}
//	stage.RenderBlock(out, in, cv, gainValues)
package gain
