package tensor

import (
	"testing"
)

// Tensor Tests

func TestNewZeroFilled(t *testing.T) {
	x, err := New(Shape{2, 3, 4})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if x.NumElements() != 24 {
		t.Errorf("NumElements = %d, want 24", x.NumElements())
	}
	for i, v := range x.Data() {
		if v != 0 {
			t.Fatalf("data[%d] = %v, want 0", i, v)
		}
	}
}

func TestNewRejectsInvalidShape(t *testing.T) {
	for _, shape := range []Shape{{}, {0}, {3, 0, 2}, {-1, 4}} {
		if _, err := New(shape); err == nil {
			t.Errorf("New(%v) should fail", []int(shape))
		}
	}
}

func TestTensorStrides(t *testing.T) {
	x, _ := New(Shape{3, 4, 5})
	strides := x.Strides()

	want := []int{20, 5, 1}
	for i := range want {
		if strides[i] != want[i] {
			t.Errorf("stride[%d] = %d, want %d", i, strides[i], want[i])
		}
	}
}

func TestTensorOffsetMatchesRowMajor(t *testing.T) {
	x, _ := New(Shape{3, 4, 5})

	// index = (c*H + h)*W + w
	if got := x.Offset(2, 1, 3); got != (2*4+1)*5+3 {
		t.Errorf("Offset(2,1,3) = %d, want %d", got, (2*4+1)*5+3)
	}
}

func TestTensorSetAt(t *testing.T) {
	x, _ := New(Shape{2, 2})
	x.Set(7.5, 1, 0)

	if x.At(1, 0) != 7.5 {
		t.Errorf("At(1,0) = %v, want 7.5", x.At(1, 0))
	}
	if x.Data()[2] != 7.5 {
		t.Errorf("Data()[2] = %v, want 7.5 (zero-copy)", x.Data()[2])
	}
}

func TestTensorOffsetPanics(t *testing.T) {
	x, _ := New(Shape{2, 2})

	defer func() {
		if recover() == nil {
			t.Error("Offset with out-of-range index should panic")
		}
	}()
	x.Offset(2, 0)
}

func TestTensorCloneIsDeep(t *testing.T) {
	x := Ones(Shape{2, 2})
	y := x.Clone()

	y.Data()[0] = 42
	if x.Data()[0] != 1 {
		t.Error("Clone should not share memory with the original")
	}
	if !x.Shape().Equal(y.Shape()) {
		t.Errorf("Clone shape %v, want %v", y.Shape(), x.Shape())
	}
}

func TestTensorString(t *testing.T) {
	x := Zeros(Shape{3, 32, 32})
	if x.String() != "Tensor(3x32x32)" {
		t.Errorf("String() = %q", x.String())
	}
}
