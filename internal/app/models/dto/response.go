package dto

// APIResponse is the envelope returned by every endpoint
type APIResponse struct {
	IsSuccess bool          `json:"isSuccess" example:"true"`
	Message   string        `json:"message" example:"Operation completed successfully"`
	Data      interface{}   `json:"data,omitempty"`
	Errors    []ErrorDetail `json:"errors,omitempty"`
}

// NewSuccessResponse creates a success envelope around data
func NewSuccessResponse(data interface{}, message string) APIResponse {
	return APIResponse{
		IsSuccess: true,
		Message:   message,
		Data:      data,
	}
}

// NewFailureResponse creates a failure envelope with error details
func NewFailureResponse(message string, errors ...ErrorDetail) APIResponse {
	return APIResponse{
		IsSuccess: false,
		Message:   message,
		Errors:    errors,
	}
}

// PaginatedData wraps a page of items with paging metadata
type PaginatedData struct {
	Items      interface{} `json:"items"`
	TotalCount int64       `json:"totalCount" example:"42"`
	Page       int         `json:"page" example:"1"`
	PageSize   int         `json:"pageSize" example:"10"`
}

// NewPaginatedData creates paging metadata around a slice of items
func NewPaginatedData(items interface{}, totalCount int64, page, pageSize int) PaginatedData {
	return PaginatedData{
		Items:      items,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
	}
}

// PaginationRequest carries the common paging query parameters
type PaginationRequest struct {
	Page     int `form:"page,default=1" binding:"min=1"`
	PageSize int `form:"pageSize,default=10" binding:"min=1,max=100"`
}
