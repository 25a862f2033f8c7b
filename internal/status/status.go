// Package status classifies pipeline, stage, step and test outcomes into
// display tokens. Every function here is total: unknown input falls through
// to a default arm instead of failing.
package status

// Status is a lifecycle state or terminal result reported by the publisher.
// The zero value is Unknown.
type Status int

const (
	Unknown Status = iota
	Queued
	Running
	Finished
	Success
	Passed
	Failure
	Failed
	Unstable
	Aborted
	Skipped
	NotBuilt
)

var names = map[Status]string{
	Unknown:  "UNKNOWN",
	Queued:   "QUEUED",
	Running:  "RUNNING",
	Finished: "FINISHED",
	Success:  "SUCCESS",
	Passed:   "PASSED",
	Failure:  "FAILURE",
	Failed:   "FAILED",
	Unstable: "UNSTABLE",
	Aborted:  "ABORTED",
	Skipped:  "SKIPPED",
	NotBuilt: "NOT_BUILT",
}

var byName = func() map[string]Status {
	m := make(map[string]Status, len(names))
	for s, n := range names {
		m[n] = s
	}
	return m
}()

// Parse maps a wire value to a Status. Matching is exact; anything else,
// including "" and lowercase spellings, is Unknown.
func Parse(s string) Status {
	if v, ok := byName[s]; ok {
		return v
	}
	return Unknown
}

// String returns the wire name, e.g. "RUNNING".
func (s Status) String() string {
	if n, ok := names[s]; ok {
		return n
	}
	return names[Unknown]
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It never fails.
func (s *Status) UnmarshalText(b []byte) error {
	*s = Parse(string(b))
	return nil
}
