package request

// CreateSessionRequest is the request body for creating a session
type CreateSessionRequest struct {
	DeviceID    string `json:"device_id"`
	DisplayName string `json:"display_name"`
	DeviceToken string `json:"device_token,omitempty"`
}

// JoinSessionRequest is the request body for joining a session.
// SessionID carries the code as typed by the player; the server
// normalizes case and separators.
type JoinSessionRequest struct {
	DeviceID    string `json:"device_id"`
	DisplayName string `json:"display_name"`
	SessionID   string `json:"session_id"`
	DeviceToken string `json:"device_token,omitempty"`
}
