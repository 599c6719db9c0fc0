package types

import "time"

// StressValue is one option on a stress-type scale.
type StressValue struct {
	StressValueID int    `json:"stress_value_id" db:"StressValueId"`
	Code          string `json:"code" db:"Code"`
	Desc          string `json:"desc" db:"Desc"`
	Tooltip       string `json:"tooltip" db:"Tooltip"`
	DisplayOrder  int    `json:"display_order" db:"DisplayOrder"`
}

// StressScore is an analyst's stress reading for a symbol on a business date.
type StressScore struct {
	StressScoreID      int        `json:"stress_score_id" db:"StressScoreId"`
	StressTypeCode     string     `json:"stress_type_code" db:"StressTypeCode"`
	StressValueCode    string     `json:"stress_value_code" db:"StressValueCode"`
	StressValueTooltip string     `json:"stress_value_tooltip" db:"StressValueTooltip"`
	StressValueID      int        `json:"stress_value_id" db:"StressValueId"`
	Username           string     `json:"username" db:"Username"`
	DisplayName        string     `json:"display_name" db:"DisplayName"`
	Symbol             string     `json:"symbol" db:"Symbol"`
	BusDate            *time.Time `json:"bus_date,omitempty" db:"BusDate"`
}
