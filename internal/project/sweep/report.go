package sweep

import (
	"github.com/tidwall/sjson"
)

// Failure is one file that could not be processed.
type Failure struct {
	Path string
	Err  error
}

// Report summarises a sweep. Paths are in visit order.
type Report struct {
	Root    string
	Policy  Policy
	Visited []string
	Changed []string
	Skipped []string
	Failed  []Failure
}

// OK reports whether no file failed.
func (r *Report) OK() bool {
	return len(r.Failed) == 0
}

// Errors returns the recorded failures as *FileError values.
func (r *Report) Errors() []error {
	errs := make([]error, 0, len(r.Failed))
	for _, f := range r.Failed {
		errs = append(errs, &FileError{Path: f.Path, Err: f.Err})
	}
	return errs
}

// JSON renders the report as a JSON object.
func (r *Report) JSON() (string, error) {
	out := "{}"
	set := func(key string, value any) error {
		var err error
		out, err = sjson.Set(out, key, value)
		return err
	}

	fields := []struct {
		key   string
		value any
	}{
		{"root", r.Root},
		{"policy", r.Policy.String()},
		{"counts.visited", len(r.Visited)},
		{"counts.changed", len(r.Changed)},
		{"counts.skipped", len(r.Skipped)},
		{"counts.failed", len(r.Failed)},
		{"visited", nonNil(r.Visited)},
		{"changed", nonNil(r.Changed)},
		{"skipped", nonNil(r.Skipped)},
		{"failed", []any{}},
	}
	for _, f := range fields {
		if err := set(f.key, f.value); err != nil {
			return "", err
		}
	}
	for _, f := range r.Failed {
		entry := map[string]string{"path": f.Path, "error": f.Err.Error()}
		if err := set("failed.-1", entry); err != nil {
			return "", err
		}
	}
	return out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
