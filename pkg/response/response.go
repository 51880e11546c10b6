package response

// Response is the envelope every team-review endpoint returns.
type Response struct {
	Status     string      `json:"status"` // "success" or "error"
	StatusCode int         `json:"status_code"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Code       string      `json:"code,omitempty"` // workflow failure code, e.g. NOT_FOUND
}

func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
	}
}

// ErrorWithCode is Error plus a machine-readable failure code.
func ErrorWithCode(statusCode int, code, err string) Response {
	resp := Error(statusCode, err)
	resp.Code = code
	return resp
}
