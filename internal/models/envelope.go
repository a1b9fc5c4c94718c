package models

// Envelope wraps every successful response body as {"data": ...}.
type Envelope struct {
	Data interface{} `json:"data"`
}

// FeedbackList is the canonical list payload: {"data": {"items": [...]}}.
type FeedbackList struct {
	Items []Feedback `json:"items"`
}

type DeleteResult struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
