package serialization

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Limits applied while decoding a header.
const (
	MaxHeaderSize    = 100 << 20 // bytes of JSON header
	MaxTensorCount   = 100_000
	MaxTensorNameLen = 4096
)

// TensorMeta locates one tensor inside the data section.
type TensorMeta struct {
	Name   string
	Offset int64 // First byte, relative to the start of the data section
	Size   int64 // Byte length
}

func (m TensorMeta) end() int64 { return m.Offset + m.Size }

// ValidateTensorOffsets checks that every tensor lies inside a data section of dataSize
// bytes and that no two tensors share a byte. Tensors are checked against the bounds in
// the order given; overlap is checked after sorting by offset.
func ValidateTensorOffsets(tensors []TensorMeta, dataSize int64) error {
	if n := len(tensors); n > MaxTensorCount {
		return &ValidationError{
			Type:    "too_many_tensors",
			Details: fmt.Sprintf("header lists %d tensors, limit is %d", n, MaxTensorCount),
		}
	}

	for _, m := range tensors {
		switch {
		case m.Offset < 0 || m.Size < 0:
			return &ValidationError{
				Type:    "negative_offset",
				Tensor:  m.Name,
				Details: fmt.Sprintf("byte range starts at %d with length %d", m.Offset, m.Size),
			}
		case m.end() > dataSize:
			return &ValidationError{
				Type:    "out_of_bounds",
				Tensor:  m.Name,
				Details: fmt.Sprintf("bytes [%d, %d) exceed the %d-byte data section", m.Offset, m.end(), dataSize),
			}
		}
	}

	byOffset := slices.Clone(tensors)
	slices.SortFunc(byOffset, func(a, b TensorMeta) int { return cmp.Compare(a.Offset, b.Offset) })
	for i := 1; i < len(byOffset); i++ {
		prev, cur := byOffset[i-1], byOffset[i]
		if prev.end() > cur.Offset {
			return &ValidationError{
				Type:    "offset_overlap",
				Tensor:  prev.Name,
				Tensor2: cur.Name,
				Details: fmt.Sprintf("bytes [%d, %d) and [%d, %d) intersect",
					prev.Offset, prev.end(), cur.Offset, cur.end()),
			}
		}
	}
	return nil
}

// ValidateTensorName accepts names such as "conv.weight" and rejects empty, oversized
// or path-like names.
func ValidateTensorName(name string) error {
	var reason string
	switch {
	case name == "":
		return &ValidationError{Type: "invalid_name", Details: "tensor name is empty"}
	case len(name) > MaxTensorNameLen:
		return &ValidationError{
			Type:    "name_too_long",
			Tensor:  name[:32] + "...",
			Details: fmt.Sprintf("%d bytes, limit is %d", len(name), MaxTensorNameLen),
		}
	case strings.Contains(name, ".."):
		reason = `contains ".."`
	case strings.ContainsAny(name, "/\\"):
		reason = "contains a path separator"
	case strings.ContainsRune(name, 0):
		reason = "contains a NUL byte"
	default:
		return nil
	}
	return &ValidationError{Type: "invalid_name", Tensor: name, Details: reason}
}
