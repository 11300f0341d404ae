package domain

// AccessState is the tri-state authorization result of the session gate.
type AccessState int

const (
	AccessUnknown AccessState = iota
	AccessDenied
	AccessGranted
)

func (s AccessState) String() string {
	switch s {
	case AccessGranted:
		return "granted"
	case AccessDenied:
		return "denied"
	default:
		return "unknown"
	}
}
