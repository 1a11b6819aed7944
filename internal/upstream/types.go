package upstream

import "time"

// Project is the upstream project record. AIAPIKey is write-only: it is sent
// on create/update and never echoed back by the upstream.
type Project struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Category       string    `json:"category,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	AIModel        string    `json:"ai_model,omitempty"`
	AIAPIKey       string    `json:"ai_api_key,omitempty"`
	AIDailyLimit   int       `json:"ai_daily_limit,omitempty"`
	AIMonthlyLimit int       `json:"ai_monthly_limit,omitempty"`
	WelcomeMessage string    `json:"welcome_message,omitempty"`
}

// User is read-only from the console's perspective except for deletion.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is one chat history entry. User-authored entries carry only
// Message; assistant entries carry the originating Message plus Response.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id,omitempty"`
	Message   string    `json:"message"`
	Response  string    `json:"response,omitempty"`
	IsUser    bool      `json:"is_user"`
	Timestamp time.Time `json:"timestamp"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Error   string `json:"error,omitempty"`
}

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type ChatResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

type DashboardStats struct {
	TotalUsers    int `json:"total_users"`
	TotalProjects int `json:"total_projects"`
	TotalMessages int `json:"total_messages"`
}

type RealtimeStats struct {
	ActiveUsers       int     `json:"active_users"`
	MessagesPerMinute int     `json:"messages_per_minute"`
	ServerLoad        float64 `json:"server_load"`
	APICalls          int     `json:"api_calls"`
}

type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service,omitempty"`
	Version   string    `json:"version,omitempty"`
}
