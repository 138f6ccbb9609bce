package welcome

// SubmitInput is the request for POST /test.
type SubmitInput struct {
	Body Payload
}
