package welcome

// SubmitOutput is the response for POST /test.
type SubmitOutput struct {
	Body Response
}
