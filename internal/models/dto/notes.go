package dto

type SaveNoteRequest struct {
	Content string `json:"content"`
	// UserID is accepted for wire compatibility with older clients but must
	// match the authenticated account when present.
	UserID int64 `json:"user_id,omitempty"`
}
