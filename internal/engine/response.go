package engine

import "QuantSentinel/internal/model"

// Response is the envelope consumed by callers that persist or serve
// reports: {status:"success", data:…} or {status:"error", message:…}.
type Response struct {
	Status  string        `json:"status"`
	Message string        `json:"message,omitempty"`
	Data    *model.Report `json:"data,omitempty"`
}

// NewResponse wraps a ComputeReport result. Terminal engine failures
// carry their human-readable reason; any other error degrades to a
// generic message rather than leaking internals.
func NewResponse(report *model.Report, err error) Response {
	if err == nil {
		return Response{Status: "success", Data: report}
	}
	if kind := Kind(err); kind != "" {
		return Response{Status: "error", Message: err.Error()}
	}
	return Response{Status: "error", Message: "indicator computation failed, please retry later"}
}
