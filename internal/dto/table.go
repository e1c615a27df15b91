package dto

import "github.com/noah-isme/teaching-scheduler-api/internal/models"

// Table listing sources.
const (
	TableSourceRPC       = "rpc"
	TableSourceAllowlist = "allowlist"
)

// TableList names the tables the inspector can read.
type TableList struct {
	Tables []string `json:"tables"`
	Source string   `json:"source"`
}

// TableRows is a page of raw rows from one table.
type TableRows struct {
	Table   string       `json:"table"`
	Count   int          `json:"count"`
	Limit   int          `json:"limit"`
	Columns []string     `json:"columns"`
	Rows    []models.Row `json:"rows"`
}
