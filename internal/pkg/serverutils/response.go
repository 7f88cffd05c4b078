package serverutils

type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

type ErrorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`

	// FallbackToLocal mirrors the schema-mismatch contract: clients that keep
	// their own cache may switch to it when this is set.
	FallbackToLocal bool `json:"fallbackToLocal,omitempty"`
}
