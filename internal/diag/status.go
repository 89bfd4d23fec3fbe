package diag

// Status is the outcome of one phase driver run.
type Status uint8

const (
	StatusOK Status = iota
	StatusFail
)

func (s Status) String() string {
	if s == StatusOK {
		return "OK"
	}
	return "FAIL"
}

// OK reports whether the phase finished without a reported failure.
func (s Status) OK() bool { return s == StatusOK }
