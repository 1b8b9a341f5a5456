package remote

// User is the authenticated account as served by /users/me.
type User struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	// DueDate is an ISO-8601 date string; empty for post-natal accounts.
	DueDate string `json:"due_date"`
}

// Baby is one child profile attached to the account.
type Baby struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth"`
	IsActive    bool   `json:"is_active"`
}

// Reminder is a server-side appointment or vaccine reminder.
type Reminder struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ReminderDate string `json:"reminder_date"`
	Type         string `json:"type"`
	Completed    bool   `json:"completed"`
}

// Tip is the daily guidance message.
type Tip struct {
	Tip string `json:"tip"`
}

// Vaccine is one catalog entry of the immunization program.
type Vaccine struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Emoji         string `json:"emoji"`
	Description   string `json:"description"`
	TotalDoses    int    `json:"total_doses"`
	RecipientType string `json:"recipient_type"`
	Recommended   bool   `json:"recommended"`
}
