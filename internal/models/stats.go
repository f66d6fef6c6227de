package models

// Stats aggregates users by role and tasks by status.
type Stats struct {
	TotalUsers   int `json:"total_users" db:"total_users"`
	AdminUsers   int `json:"admin_users" db:"admin_users"`
	RegularUsers int `json:"regular_users" db:"regular_users"`
	TotalTasks   int `json:"total_tasks" db:"total_tasks"`
	TodoTasks    int `json:"todo_tasks" db:"todo_tasks"`
	DoingTasks   int `json:"doing_tasks" db:"doing_tasks"`
	DoneTasks    int `json:"done_tasks" db:"done_tasks"`
}
