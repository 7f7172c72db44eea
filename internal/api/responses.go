package api

type ErrorResponse struct {
	Error  string `json:"error" example:"something went wrong"`
	Detail string `json:"detail,omitempty" example:"gym does not exist within your group"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// Page wraps a paginated listing.
type Page[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}
