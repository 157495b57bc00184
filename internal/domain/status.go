package domain

import (
	"encoding/json"
	"fmt"
)

// Status is the per-company transition recorded by a scan.
type Status string

const (
	StatusNew          Status = "new"
	StatusStillPresent Status = "still-present"
	StatusRemoved      Status = "removed"
)

// ParseStatus validates a persisted status value.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNew, StatusStillPresent, StatusRemoved:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown scan status %q", s)
}

// Detected reports whether the company was present on the page at scan time.
func (s Status) Detected() bool {
	return s == StatusNew || s == StatusStillPresent
}

// Changes maps a company to its status in one scan. A company missing from
// the map was neither detected now nor before.
type Changes map[CompanyID]Status

// Detected reports whether the company was detected by the scan.
func (c Changes) Detected(id CompanyID) bool {
	return c[id].Detected()
}

// AnyDetected reports whether any company is new or still present.
func (c Changes) AnyDetected() bool {
	for _, s := range c {
		if s.Detected() {
			return true
		}
	}
	return false
}

// UnmarshalJSON rejects unknown statuses. Company ids are kept even when no
// longer registered so that history written before a registry change still
// reads back.
func (c *Changes) UnmarshalJSON(b []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decode changes: %w", err)
	}
	out := make(Changes, len(raw))
	for k, v := range raw {
		if k == "" {
			return fmt.Errorf("decode changes: empty company id")
		}
		s, err := ParseStatus(v)
		if err != nil {
			return fmt.Errorf("company %s: %w", k, err)
		}
		out[CompanyID(k)] = s
	}
	*c = out
	return nil
}
