package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Records in this file are read from both SQL Server and Postgres. Postgres
// queries quote their column aliases so they match the db tags exactly.

// Factor is a Barra risk factor and the portal group it rolls up to.
type Factor struct {
	FactorGroup      string `json:"factor_group" db:"FactorGroup"`
	BarraFactorGroup string `json:"barra_factor_group" db:"BarraFactorGroup"`
	FactorName       string `json:"factor_name" db:"FactorName"`
	FactorDesc       string `json:"factor_desc" db:"FactorDesc"`
}

// FactorGroup maps a Barra factor group to its portal display group.
type FactorGroup struct {
	FactorGroupDesc  string `json:"factor_group_desc" db:"FactorGroup"`
	BarraFactorGroup string `json:"barra_factor_group" db:"BarraFactorGroup"`
}

// FactorLoading is a security's exposure to one factor on a date.
type FactorLoading struct {
	Symbol     string           `json:"symbol,omitempty" db:"Symbol"`
	BarraID    string           `json:"barra_id" db:"BarraId"`
	BusDate    time.Time        `json:"bus_date" db:"Date"`
	FactorName string           `json:"factor_name" db:"Factor"`
	Loading    *decimal.Decimal `json:"loading,omitempty" db:"Loading"`
}

// FactorReturn is one factor's return for a date, or for an intraday
// timestamp when read from the live feed.
type FactorReturn struct {
	Name      string          `json:"name" db:"Factor"`
	Timestamp time.Time       `json:"timestamp" db:"Date"`
	Return    decimal.Decimal `json:"return" db:"Ret"`
}

// FactorVol is a factor's annualized volatility.
type FactorVol struct {
	Name string          `json:"name" db:"Factor"`
	Vol  decimal.Decimal `json:"vol" db:"Vol"`
}

// RiskReturn is a dated return for a security. Which return fields are set
// depends on the query: specific-return history fills Return, idio returns
// fill SpecificReturn and CumulativeSpecificReturn.
type RiskReturn struct {
	Symbol                   string           `json:"symbol,omitempty" db:"Symbol"`
	BarraID                  string           `json:"barra_id" db:"BarraId"`
	BusDate                  time.Time        `json:"bus_date" db:"Date"`
	Return                   *decimal.Decimal `json:"return,omitempty" db:"Ret"`
	SpecificReturn           *decimal.Decimal `json:"specific_return,omitempty" db:"SpecificReturn"`
	CumulativeSpecificReturn *decimal.Decimal `json:"cumulative_specific_return,omitempty" db:"CumulativeSpecificReturn"`
}

// BarraCache is the nightly Barra snapshot for a security.
type BarraCache struct {
	SourceUpdatedOn *time.Time       `json:"source_updated_on,omitempty" db:"SourceUpdatedOn"`
	Symbol          string           `json:"symbol" db:"Symbol"`
	Cusip           string           `json:"cusip" db:"Cusip"`
	BarraID         string           `json:"barra_id" db:"BarraId"`
	IdioVol         *decimal.Decimal `json:"idio_vol,omitempty" db:"IdioVol"`
	IdioReturn      *decimal.Decimal `json:"idio_return,omitempty" db:"IdioReturn"`
	PredBeta        *decimal.Decimal `json:"pred_beta,omitempty" db:"PredBeta"`
	Res1W           *decimal.Decimal `json:"res_1w,omitempty" db:"RES_1W"`
	Res2W           *decimal.Decimal `json:"res_2w,omitempty" db:"RES_2W"`
	Res3W           *decimal.Decimal `json:"res_3w,omitempty" db:"RES_3W"`
	Res1M           *decimal.Decimal `json:"res_1m,omitempty" db:"RES_1M"`
	Res3M           *decimal.Decimal `json:"res_3m,omitempty" db:"RES_3M"`
	Res6M           *decimal.Decimal `json:"res_6m,omitempty" db:"RES_6M"`
	Res9M           *decimal.Decimal `json:"res_9m,omitempty" db:"RES_9M"`
	Res1Y           *decimal.Decimal `json:"res_1y,omitempty" db:"RES_1Y"`
	ResYTD          *decimal.Decimal `json:"res_ytd,omitempty" db:"RES_YTD"`
}

// BarraMetrics is the latest predicted beta and specific risk for a security.
type BarraMetrics struct {
	BarraID      string          `json:"barra_id" db:"BarraId"`
	BusDate      time.Time       `json:"bus_date" db:"Date"`
	PredBeta     decimal.Decimal `json:"pred_beta" db:"PredBeta"`
	SpecificRisk decimal.Decimal `json:"specific_risk" db:"SpecificRisk"`
}
