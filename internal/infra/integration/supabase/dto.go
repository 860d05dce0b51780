package supabase

// errorResponse is the PostgREST error envelope.
type errorResponse struct {
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
	Code    string `json:"code"`
}

func (e errorResponse) String() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}
