package conv

import (
	"encoding/json"
	"fmt"
)

// Convert coerces the input into the value pointed to by outPtr using a JSON
// marshal/unmarshal round-trip.  This handles the common map→struct case when
// decoding tool-call arguments without per-field reflection at the call site.
// A nil input leaves outPtr's value untouched.
func Convert(in any, outPtr any) error {
	if outPtr == nil {
		return fmt.Errorf("conv.Convert: outPtr cannot be nil")
	}
	if in == nil {
		return nil
	}
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, outPtr)
}

// ToMap converts an arbitrary value into a map[string]interface{} using the
// same strategy as Convert.
func ToMap(in any) (map[string]interface{}, error) {
	var m map[string]interface{}
	if err := Convert(in, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Pointer returns a pointer to the supplied value.
func Pointer[T any](value T) *T {
	return &value
}

// Dereference returns the pointed-to value or the zero value for nil.
func Dereference[T any](ptr *T) T {
	if ptr == nil {
		var zero T
		return zero
	}
	return *ptr
}
