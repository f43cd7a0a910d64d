// Package erpservice implements the tenant-scoped ERP registry: companies,
// clients, projects, documents, budgets and the two catalogs (project
// statuses and document categories).
//
// Every read and write is bound to the tenant carried by the request
// context. Use cases validate references and uniqueness inside that tenant
// before a single insert. The dashboard and kanban queries are read-only
// projections over the same repositories.
package erpservice
