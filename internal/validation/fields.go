package validation

import "time"

// Fields holds normalized input: strings are trimmed, integers are int64 and
// dates are UTC midnight time.Time values. Absent optional fields are omitted.
type Fields map[string]any

func (f Fields) Has(name string) bool {
	_, ok := f[name]
	return ok
}

func (f Fields) String(name string) string {
	s, _ := f[name].(string)
	return s
}

func (f Fields) Int64(name string) int64 {
	n, _ := f[name].(int64)
	return n
}

func (f Fields) Date(name string) time.Time {
	d, _ := f[name].(time.Time)
	return d
}

func (f Fields) StringPtr(name string) *string {
	if !f.Has(name) {
		return nil
	}
	s := f.String(name)
	return &s
}

func (f Fields) Int64Ptr(name string) *int64 {
	if !f.Has(name) {
		return nil
	}
	n := f.Int64(name)
	return &n
}

func (f Fields) DatePtr(name string) *time.Time {
	if !f.Has(name) {
		return nil
	}
	d := f.Date(name)
	return &d
}
