package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

// PaginatedEnvelope matches the page-based listing contract used by the
// materials and activity-log endpoints.
type PaginatedEnvelope struct {
	Data     any   `json:"data"`
	Total    int64 `json:"total"`
	LastPage int   `json:"last_page"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
