package models

// ChatMessage is one turn of an assistant conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// PatientContext is the slice of patient state the chat assistant reasons over.
type PatientContext struct {
	Name       string     `json:"name"`
	Condition  string     `json:"condition"`
	RecentLogs []LogEntry `json:"recent_logs"`
}
