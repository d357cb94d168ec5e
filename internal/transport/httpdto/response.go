package httpdto

// ErrorResponse is the body of every JSON error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

func NewErrorResponse(err string) ErrorResponse {
	return ErrorResponse{Error: err}
}
