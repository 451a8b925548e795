package reportapimodels

import (
	"time"
)

type ReportFilter struct {
	DateFrom *time.Time `json:"date_from"`
	DateTo   *time.Time `json:"date_to"`
}

type CountRow struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type SummaryView struct {
	Total      int64      `json:"total"`
	ByStatus   []CountRow `json:"by_status"`
	ByCategory []CountRow `json:"by_category"`
	ByStaff    []CountRow `json:"by_staff"`
}
