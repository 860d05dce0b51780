package usecase

// DomainError is a recoverable business failure (bad input, missing
// lead, refused save). Handlers map it to a 4xx without losing the
// caller's in-progress state.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError is a transport or infrastructure failure. The
// underlying message is preserved and bubbled to the UI boundary —
// never swallowed, never retried automatically.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}
