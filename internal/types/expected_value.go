package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpectedValueIdeaRecommendation is one entry of the recommendation pick list.
type ExpectedValueIdeaRecommendation struct {
	ExpectedValueIdeaRecommendationID int    `json:"expected_value_idea_recommendation_id" db:"ExpectedValueIdeaRecommendationId"`
	Code                              string `json:"code" db:"Code"`
	Desc                              string `json:"desc" db:"Desc"`
}

// ExpectedValue is an analyst's probability-weighted price target for a
// security.
type ExpectedValue struct {
	ExpectedValueID   int64  `json:"expected_value_id" db:"ExpectedValueId"`
	Symbol            string `json:"symbol" db:"Symbol" validate:"required"`
	FullBloombergCode string `json:"full_bloomberg_code" db:"FullBloombergCode"`
	SecurityDesc      string `json:"security_desc" db:"SecurityDesc"`
	ShortName         string `json:"short_name" db:"ShortName"`
	CINS              string `json:"cins" db:"Cins"`
	CUSIP             string `json:"cusip" db:"Cusip"`
	Username          string `json:"username" db:"Username"`
	DisplayName       string `json:"display_name" db:"DisplayName"`

	MetricTypeCode         string `json:"metric_type_code" db:"MetricTypeCode"`
	PeriodTypeCode         string `json:"period_type_code" db:"PeriodTypeCode"`
	PeriodTypeDesc         string `json:"period_type_desc" db:"PeriodTypeDesc"`
	IdeaRecommendationCode string `json:"idea_recommendation_code" db:"IdeaRecommendationCode"`
	IdeaRecommendationDesc string `json:"idea_recommendation_desc" db:"IdeaRecommendationDesc"`
	OverrideCalc           bool   `json:"override_calc" db:"OverrideCalc"`

	Price    decimal.Decimal `json:"price" db:"Price"`
	Upside   decimal.Decimal `json:"upside" db:"Upside"`
	BusDate  *time.Time      `json:"bus_date,omitempty" db:"BusDate"`
	IsLocked bool            `json:"is_locked" db:"IsLocked"`

	ModifiedBy string     `json:"modified_by,omitempty" db:"ModifiedBy"`
	Timestamp  *time.Time `json:"timestamp,omitempty" db:"ModifiedOn"`
}

// ExpectedValueLatest identifies the most recent expected value per analyst
// and security.
type ExpectedValueLatest struct {
	UserID          int   `json:"user_id" db:"UserId"`
	SecurityID      int   `json:"security_id" db:"SecurityId"`
	ExpectedValueID int64 `json:"expected_value_id" db:"ExpectedValueId"`
}

// ExpectedValueScenario is one bull/base/bear leg of a nested expected value.
type ExpectedValueScenario struct {
	ExpectedValueID         int64  `json:"expected_value_id" db:"ExpectedValueNestedId"`
	ExpectedValueScenarioID int64  `json:"expected_value_scenario_id" db:"ExpectedValueScenarioNestedId"`
	ScenarioNested          string `json:"scenario_nested" db:"EVScenarioTypeCode"`
	Scenario                string `json:"scenario" db:"ScenarioTypeCode" validate:"required"`

	Metric       *decimal.Decimal `json:"metric,omitempty" db:"Metric"`
	Multiple     *decimal.Decimal `json:"multiple,omitempty" db:"Multiple"`
	Probability  *decimal.Decimal `json:"probability,omitempty" db:"Probability"`
	Price        *decimal.Decimal `json:"price,omitempty" db:"Price"`
	Upside       *decimal.Decimal `json:"upside,omitempty" db:"Upside"`
	OverrideCalc bool             `json:"override_calc" db:"OverrideCalc"`
	Notes        string           `json:"notes" db:"Notes"`

	Username               string     `json:"username" db:"Username"`
	BusDate                *time.Time `json:"bus_date,omitempty" db:"BusDate"`
	Timestamp              *time.Time `json:"timestamp,omitempty" db:"ModifiedOn"`
	Symbol                 string     `json:"symbol" db:"Symbol"`
	FullBloombergCode      string     `json:"full_bloomberg_code" db:"FullBloombergCode"`
	ShortName              string     `json:"short_name" db:"ShortName"`
	CINS                   string     `json:"cins" db:"Cins"`
	CUSIP                  string     `json:"cusip" db:"Cusip"`
	SecurityDesc           string     `json:"security_desc" db:"SecurityDesc"`
	MetricTypeCode         string     `json:"metric_type_code" db:"MetricTypeCode"`
	PeriodTypeCode         string     `json:"period_type_code" db:"PeriodTypeCode"`
	IdeaRecommendationCode string     `json:"idea_recommendation_code" db:"IdeaRecommendationCode"`
	IdeaRecommendationDesc string     `json:"idea_recommendation_desc" db:"IdeaRecommendationDesc"`
	CanUpdate              bool       `json:"can_update" db:"CanUpdate"`
}
