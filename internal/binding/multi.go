package binding

import "errors"

// Multi appends every line to each of its outputs in order.
type Multi []Output

// Append forwards the line to all outputs even if some of them fail.
func (m Multi) Append(line Line) error {
	var errs []error
	for _, out := range m {
		if out == nil {
			continue
		}
		if err := out.Append(line); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
