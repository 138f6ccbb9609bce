package welcome

// DefaultMessage is the constant greeting returned with every submission.
const DefaultMessage = "Welcome to FastAPI application!"

// Payload is the submitted document. Message may be a string, null or absent;
// any other JSON type fails validation. Unknown properties are accepted and
// dropped.
type Payload struct {
	_       struct{} `json:"-" additionalProperties:"true"`
	Message *string  `json:"message" required:"false" nullable:"true" doc:"Optional text to echo back" example:"hello"`
}

// Response combines the greeting, the validated payload and its message.
type Response struct {
	MessageDefault string  `json:"message-default" doc:"Constant welcome message" example:"Welcome to FastAPI application!"`
	Data           Payload `json:"data" doc:"The validated request body"`
	Message        *string `json:"message" nullable:"true" doc:"Copy of data.message" example:"hello"`
}
