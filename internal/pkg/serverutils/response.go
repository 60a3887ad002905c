package serverutils

// ApiResponse is the envelope every endpoint returns.
type ApiResponse[T any] struct {
	Success      bool   `json:"success"`
	Data         T      `json:"data,omitempty"`
	ErrorCode    string `json:"errorCode,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

func SuccessResponse[T any](data T) ApiResponse[T] {
	return ApiResponse[T]{
		Success: true,
		Data:    data,
	}
}

func ErrorResponse(code, message string) ApiResponse[any] {
	return ApiResponse[any]{
		Success:      false,
		ErrorCode:    code,
		ErrorMessage: message,
	}
}
