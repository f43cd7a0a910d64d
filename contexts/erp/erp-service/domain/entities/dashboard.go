package entities

import "time"

type DashboardCounts struct {
	Clients   int
	Projects  int
	Documents int
	Budgets   int
}

// StatusCount groups projects by status. StatusID is empty for projects
// without a status; Status is nil when the id no longer resolves.
type StatusCount struct {
	StatusID string
	Status   *ProjectStatus
	Count    int
}

type BudgetStatusCount struct {
	Status BudgetStatus
	Count  int
}

type Dashboard struct {
	GeneratedAt      time.Time
	Counts           DashboardCounts
	ProjectsByStatus []StatusCount
	BudgetsByStatus  []BudgetStatusCount
}

type ProjectColumn struct {
	Status   *ProjectStatus
	Projects []Project
}

type BudgetColumn struct {
	Status  BudgetStatus
	Budgets []Budget
}
