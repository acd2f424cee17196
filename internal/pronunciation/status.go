package pronunciation

import "fmt"

// Status classifies one aligned position.
type Status uint8

const (
	Correct Status = iota
	Mispronounced
	Omitted
	Inserted
)

var statusNames = [...]string{
	Correct:       "correct",
	Mispronounced: "mispronounced",
	Omitted:       "omitted",
	Inserted:      "inserted",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// Present reports whether the expected word was spoken in some form.
func (s Status) Present() bool {
	return s == Correct || s == Mispronounced
}

func (s Status) MarshalText() ([]byte, error) {
	if int(s) >= len(statusNames) {
		return nil, fmt.Errorf("pronunciation: invalid status %d", uint8(s))
	}
	return []byte(statusNames[s]), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	for i, name := range statusNames {
		if name == string(b) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("pronunciation: unknown status %q", b)
}
