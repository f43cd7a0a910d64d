package entities

// ProjectCounts counts the live documents and budgets that point at a project.
type ProjectCounts struct {
	Documents int
	Budgets   int
}

// ProjectListing is a project row with the client and status it references.
// Client and Status are nil when the reference is unset or does not resolve.
type ProjectListing struct {
	Project
	Client *Client
	Status *ProjectStatus
	Counts ProjectCounts
}

// BudgetListing is a budget row with its project summary; the project carries
// its own client and status.
type BudgetListing struct {
	Budget
	Project *ProjectListing
}
