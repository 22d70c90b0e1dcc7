// Package serialization reads and writes convolution weights and images in the
// SafeTensors format used by HuggingFace and PyTorch:
//
//	[8 bytes: header size N (uint64 LE)]
//	[N bytes: JSON header {"name": {"dtype", "shape", "data_offsets"}, "__metadata__": {...}}]
//	[tensor data: raw little-endian bytes]
//
// Tensors are written as F64 in alphabetical order. F64 and F32 tensors can be read;
// F32 values are widened to float64.
//
// Example usage:
//
//	// Save kernel weights
//	err := serialization.WriteSafeTensors("blur.safetensors",
//	    map[string]*tensor.Tensor{serialization.WeightTensor: engine.Weights()},
//	    map[string]string{"padding": "SAME"})
//
//	// Load them back
//	archive, err := serialization.ReadSafeTensors("blur.safetensors")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	weights, err := archive.Tensor(serialization.WeightTensor)
package serialization
