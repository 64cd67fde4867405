package response

type APIError struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// ActionResult is the outcome of an admin mutation: either Success or a
// single human readable Error.
type ActionResult struct {
	Success bool   `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}
