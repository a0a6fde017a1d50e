/*
Package response Unified API responses

1. HTTP status mapping lives here, not in the domain or application layers
2. Every response carries the request ID for log correlation
3. 5xx responses always say "internal server error"; the real error is only logged

Shape:

	success: { success: true, data: {...}, message: "...", code: 200, request_id: "..." }
	failure: { success: false, error: "ERROR_CODE", message: "...", ids: [...], code: 4xx/5xx, request_id: "..." }
*/
package response

// RequestIDKey is the gin context key holding the request ID.
const RequestIDKey = "request_id"

// Response is the common envelope.
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	IDs       []int64     `json:"ids,omitempty"`
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

// ListResponse is the envelope for collections.
type ListResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data"`
	Total     int         `json:"total"`
	Message   string      `json:"message"`
	Code      int         `json:"code"`
	RequestID string      `json:"request_id,omitempty"`
}
