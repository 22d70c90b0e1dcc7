package serialization

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/born-ml/convolve/internal/tensor"
)

// Well-known tensor names.
const (
	WeightTensor = "conv.weight" // [out, in, k, k] kernel weights
	ImageTensor  = "image"       // [channels, height, width] input image
	OutputTensor = "output"      // [out, out_height, out_width] convolution result
)

// SafeTensors dtype strings.
const (
	DTypeF32 = "F32"
	DTypeF64 = "F64"
)

const metadataKey = "__metadata__"

// tensorHeader represents a tensor in the SafeTensors header.
type tensorHeader struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// Archive is the decoded content of a SafeTensors file.
type Archive struct {
	Metadata map[string]string
	Tensors  map[string]*tensor.Tensor
}

// Names returns the tensor names in alphabetical order.
func (a *Archive) Names() []string {
	names := make([]string, 0, len(a.Tensors))
	for name := range a.Tensors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tensor returns the named tensor or an error wrapping ErrTensorNotFound.
func (a *Archive) Tensor(name string) (*tensor.Tensor, error) {
	t, ok := a.Tensors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrTensorNotFound, name, a.Names())
	}
	return t, nil
}

// WriteSafeTensors writes tensors to a SafeTensors file, replacing any existing file.
func WriteSafeTensors(path string, tensors map[string]*tensor.Tensor, metadata map[string]string) (err error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for saving
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()

	bw := bufio.NewWriter(file)
	if err := Encode(bw, tensors, metadata); err != nil {
		return err
	}
	return bw.Flush()
}

// Encode writes tensors in SafeTensors format to w.
//
// Tensors are written as F64 in alphabetical order by name.
func Encode(w io.Writer, tensors map[string]*tensor.Tensor, metadata map[string]string) error {
	names := make([]string, 0, len(tensors))
	for name, t := range tensors {
		if err := ValidateTensorName(name); err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("tensor %q is nil", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	header := make(map[string]any, len(names)+1)
	if len(metadata) > 0 {
		header[metadataKey] = metadata
	}

	var offset int64
	for _, name := range names {
		t := tensors[name]
		size := int64(t.NumElements() * 8)

		shape := make([]int64, t.Rank())
		for i, dim := range t.Shape() {
			shape[i] = int64(dim)
		}

		header[name] = tensorHeader{
			DType:       DTypeF64,
			Shape:       shape,
			DataOffsets: [2]int64{offset, offset + size},
		}
		offset += size
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	if err := binary.Write(w, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := w.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, name := range names {
		data := tensors[name].Data()
		buf := make([]byte, len(data)*8)
		for i, v := range data {
			binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
		}
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("failed to write tensor %s: %w", name, err)
		}
	}

	return nil
}

// ReadSafeTensors reads every tensor of a SafeTensors file.
func ReadSafeTensors(path string) (*Archive, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close() // Read-only; close error carries no information
	}()

	archive, err := Decode(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return archive, nil
}

// Decode reads a SafeTensors stream. F64 and F32 tensors are supported.
func Decode(r io.Reader) (*Archive, error) {
	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > MaxHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrHeaderTooLarge, headerSize)
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var rawMap map[string]json.RawMessage
	if err := json.Unmarshal(headerBytes, &rawMap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read tensor data: %w", err)
	}

	archive := &Archive{Tensors: make(map[string]*tensor.Tensor)}
	if metadataRaw, ok := rawMap[metadataKey]; ok {
		if err := json.Unmarshal(metadataRaw, &archive.Metadata); err != nil {
			return nil, fmt.Errorf("%w: metadata: %v", ErrInvalidHeader, err)
		}
	}

	headers := make(map[string]tensorHeader, len(rawMap))
	metas := make([]TensorMeta, 0, len(rawMap))
	for name, value := range rawMap {
		if name == metadataKey {
			continue
		}
		if err := ValidateTensorName(name); err != nil {
			return nil, err
		}

		var h tensorHeader
		if err := json.Unmarshal(value, &h); err != nil {
			return nil, fmt.Errorf("%w: tensor %s: %v", ErrInvalidHeader, name, err)
		}
		if err := checkTensorHeader(name, h, int64(len(data))); err != nil {
			return nil, err
		}

		headers[name] = h
		metas = append(metas, TensorMeta{
			Name:   name,
			Offset: h.DataOffsets[0],
			Size:   h.DataOffsets[1] - h.DataOffsets[0],
		})
	}

	if err := ValidateTensorOffsets(metas, int64(len(data))); err != nil {
		return nil, err
	}

	for name, h := range headers {
		t, err := decodeTensor(h, data[h.DataOffsets[0]:h.DataOffsets[1]])
		if err != nil {
			return nil, fmt.Errorf("tensor %s: %w", name, err)
		}
		archive.Tensors[name] = t
	}

	return archive, nil
}

func dtypeSize(dtype string) (int64, error) {
	switch dtype {
	case DTypeF64:
		return 8, nil
	case DTypeF32:
		return 4, nil
	default:
		return 0, fmt.Errorf("%w: %s (want F64 or F32)", ErrUnsupportedDType, dtype)
	}
}

// checkTensorHeader verifies dtype, shape and that the byte range matches the shape.
func checkTensorHeader(name string, h tensorHeader, dataSize int64) error {
	elem, err := dtypeSize(h.DType)
	if err != nil {
		return fmt.Errorf("tensor %s: %w", name, err)
	}
	if len(h.Shape) == 0 {
		return fmt.Errorf("%w: tensor %s: scalar tensors are not supported", ErrInvalidHeader, name)
	}

	want := elem
	for _, dim := range h.Shape {
		if dim <= 0 {
			return fmt.Errorf("%w: tensor %s: invalid shape %v", ErrInvalidHeader, name, h.Shape)
		}
		want *= dim
		if want > dataSize {
			return &ValidationError{
				Type:    "out_of_bounds",
				Tensor:  name,
				Details: fmt.Sprintf("shape %v needs more than %d data bytes", h.Shape, dataSize),
			}
		}
	}

	if got := h.DataOffsets[1] - h.DataOffsets[0]; got != want {
		return &ValidationError{
			Type:    "size_mismatch",
			Tensor:  name,
			Details: fmt.Sprintf("shape %v %s needs %d bytes, data_offsets span %d", h.Shape, h.DType, want, got),
		}
	}
	return nil
}

func decodeTensor(h tensorHeader, raw []byte) (*tensor.Tensor, error) {
	shape := make(tensor.Shape, len(h.Shape))
	for i, dim := range h.Shape {
		shape[i] = int(dim)
	}
	t, err := tensor.New(shape)
	if err != nil {
		return nil, err
	}

	out := t.Data()
	switch h.DType {
	case DTypeF64:
		for i := range out {
			out[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
		}
	case DTypeF32:
		for i := range out {
			out[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:])))
		}
	}
	return t, nil
}
