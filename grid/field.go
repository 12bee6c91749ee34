package grid

import (
	"fmt"
)

// DefaultFieldName names a bare data array wrapped into a field map by
// a grid constructor.
const DefaultFieldName = "data"

// ColorsFieldName marks an RGB field. Colors fields are carried through
// variant conversions without vector rotation.
const ColorsFieldName = "colors"

// Field is one named entry of a grid's field map: a scalar array
// (one component) or a fixed-length vector field (three components,
// interpreted as east/north/up until rotated into a Cartesian frame).
type Field struct {
	Name string
	Data [][]float64
}

func Scalar(name string, data []float64) *Field {
	return &Field{Name: name, Data: [][]float64{data}}
}

func Vector(name string, e, n, u []float64) *Field {
	return &Field{Name: name, Data: [][]float64{e, n, u}}
}

// IsVector reports whether the field carries directional components
// subject to rotation. The "colors" field is exempt.
func (f *Field) IsVector() bool {
	return len(f.Data) == 3 && f.Name != ColorsFieldName
}

func (f *Field) Clone() *Field {
	out := &Field{Name: f.Name, Data: make([][]float64, len(f.Data))}
	for c, comp := range f.Data {
		d := make([]float64, len(comp))
		copy(d, comp)
		out.Data[c] = d
	}
	return out
}

func (f *Field) validate(size int) error {
	if len(f.Data) != 1 && len(f.Data) != 3 {
		return fmt.Errorf("field %q must have 1 or 3 components, got %v", f.Name, len(f.Data))
	}
	for _, comp := range f.Data {
		if len(comp) != size {
			return &ShapeMismatchError{Name: f.Name, Got: len(comp), Want: size}
		}
	}
	return nil
}

// WrapFields turns bare arrays into a field map. A single array gets
// the stable default name; an unnamed tuple of more than one array is
// ambiguous and rejected.
func WrapFields(arrays ...[]float64) ([]*Field, error) {
	if len(arrays) == 0 {
		return nil, nil
	}
	if len(arrays) > 1 {
		return nil, fmt.Errorf("cannot name %v bare data arrays; supply named fields instead", len(arrays))
	}
	return []*Field{Scalar(DefaultFieldName, arrays[0])}, nil
}

// NormalizeAttrs coerces a decoded attribute document into the
// string-to-string attribute map grids carry. Anything other than a
// key-value map with scalar entries is rejected.
func NormalizeAttrs(v interface{}) (map[string]string, error) {
	if v == nil {
		return nil, nil
	}
	switch m := v.(type) {
	case map[string]string:
		return m, nil
	case map[string]interface{}:
		out := make(map[string]string, len(m))
		for k, val := range m {
			out[k] = fmt.Sprintf("%v", val)
		}
		return out, nil
	case map[interface{}]interface{}:
		out := make(map[string]string, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, &InvalidAttributesError{Reason: fmt.Sprintf("non-string key %v", k)}
			}
			out[ks] = fmt.Sprintf("%v", val)
		}
		return out, nil
	default:
		return nil, &InvalidAttributesError{Reason: fmt.Sprintf("expecting a key-value map, got %T", v)}
	}
}
