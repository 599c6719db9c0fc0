package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is an end-of-day position with its exposures and P&L.
type Position struct {
	BusDate            *time.Time `json:"bus_date,omitempty" db:"BusDate"`
	Desk               string     `json:"desk" db:"Desk"`
	Sector             string     `json:"sector" db:"Sector"`
	PositionBlock      string     `json:"position_block" db:"PositionBlock"`
	Side               string     `json:"side" db:"Side"`
	Symbol             string     `json:"symbol" db:"Symbol"`
	FullBloombergCode  string     `json:"full_bloomberg_code" db:"FullBloombergCode"`
	SecurityDesc       string     `json:"security_desc" db:"SecurityDesc"`
	SecurityType       string     `json:"security_type" db:"SecurityType"`
	IssueCountry       string     `json:"issue_country" db:"IssueCountry"`
	RiskCountry        string     `json:"risk_country" db:"RiskCountry"`
	PricingCurrency    string     `json:"pricing_currency" db:"PricingCurrency"`
	RiskCurrency       string     `json:"risk_currency" db:"RiskCurrency"`
	CUSIP              string     `json:"cusip" db:"CUSIP"`
	PortfolioTimestamp *time.Time `json:"portfolio_timestamp,omitempty" db:"PortfolioTimestamp"`

	PositionSOD      decimal.Decimal `json:"position_sod" db:"PositionSOD"`
	PositionClose    decimal.Decimal `json:"position_close" db:"Position"`
	MarketValue      decimal.Decimal `json:"market_value" db:"MarketValue"`
	MarketValueLocal decimal.Decimal `json:"market_value_local" db:"MarketValueLocal"`
	DTD              decimal.Decimal `json:"dtd" db:"DTD"`
	MTD              decimal.Decimal `json:"mtd" db:"MTD"`
	YTD              decimal.Decimal `json:"ytd" db:"YTD"`

	NetExposureSOD   decimal.Decimal `json:"net_exposure_sod" db:"NetExposureSOD"`
	GrossExposureSOD decimal.Decimal `json:"gross_exposure_sod" db:"GrossExposureSOD"`
	LongExposureSOD  decimal.Decimal `json:"long_exposure_sod" db:"LongExposureSOD"`
	ShortExposureSOD decimal.Decimal `json:"short_exposure_sod" db:"ShortExposureSOD"`
	NetExposure      decimal.Decimal `json:"net_exposure" db:"NetExposure"`
	GrossExposure    decimal.Decimal `json:"gross_exposure" db:"GrossExposure"`
	LongExposure     decimal.Decimal `json:"long_exposure" db:"LongExposure"`
	ShortExposure    decimal.Decimal `json:"short_exposure" db:"ShortExposure"`

	PriceSOD      decimal.Decimal `json:"price_sod" db:"PriceSOD"`
	Price         decimal.Decimal `json:"price" db:"Price"`
	PriceLocal    decimal.Decimal `json:"price_local" db:"PriceLocal"`
	PriceSODLocal decimal.Decimal `json:"price_sod_local" db:"PriceSODLocal"`
	Fx            decimal.Decimal `json:"fx" db:"Fx"`
}

// PositionRiskLimit is a current position alongside its single-name risk
// limit and theoretical size.
type PositionRiskLimit struct {
	BusDate            *time.Time       `json:"bus_date,omitempty" db:"BusDate"`
	Desk               string           `json:"desk" db:"Desk"`
	Side               string           `json:"side" db:"Side"`
	Symbol             string           `json:"symbol" db:"Symbol"`
	UnderlyingSymbol   string           `json:"underlying_symbol" db:"UnderlyingSymbol"`
	PortfolioTimestamp *time.Time       `json:"portfolio_timestamp,omitempty" db:"PortfolioTimestamp"`
	DTD                decimal.Decimal  `json:"dtd" db:"DTD"`
	IdioPnl            decimal.Decimal  `json:"idio_pnl" db:"IdioPnl"`
	IdioVol            decimal.Decimal  `json:"idio_vol" db:"IdioVol"`
	NetExposureSOD     decimal.Decimal  `json:"net_exposure_sod" db:"SEMVSOD"`
	NetExposure        decimal.Decimal  `json:"net_exposure" db:"SEMV"`
	RiskLimit          *decimal.Decimal `json:"risk_limit,omitempty" db:"RiskLimit"`
	TheoNetExposure    decimal.Decimal  `json:"theo_net_exposure" db:"TheoSEMV"`
}

// IntradayPosition is a position snapshot from the order management system.
type IntradayPosition struct {
	BusDate            *time.Time      `json:"bus_date,omitempty" db:"BusinessDate"`
	Desk               string          `json:"desk" db:"Desk"`
	Sector             string          `json:"sector" db:"Sector"`
	PositionBlock      string          `json:"position_block" db:"PositionBlock"`
	Side               string          `json:"side" db:"Side"`
	Symbol             string          `json:"symbol" db:"SecurityCode"`
	SecurityDesc       string          `json:"security_desc" db:"SecurityDesc"`
	PortfolioTimestamp *time.Time      `json:"portfolio_timestamp,omitempty" db:"ArchiveTimeStamp"`
	PositionSOD        decimal.Decimal `json:"position_sod" db:"SODPosition"`
	PositionClose      decimal.Decimal `json:"position_close" db:"TheoreticalPosition"`
	DTD                decimal.Decimal `json:"dtd" db:"DTD"`
	MTD                decimal.Decimal `json:"mtd" db:"MTD"`
	YTD                decimal.Decimal `json:"ytd" db:"YTD"`
	IdioPnl            decimal.Decimal `json:"idio_pnl" db:"IdioPnl"`
	IdioVol            decimal.Decimal `json:"idio_vol" db:"IdioVol"`
	NetExposureSOD     decimal.Decimal `json:"net_exposure_sod" db:"NetExposureSOD"`
	NetExposure        decimal.Decimal `json:"net_exposure" db:"NetExposure"`
	GrossExposure      decimal.Decimal `json:"gross_exposure" db:"GrossExposure"`
	LongExposure       decimal.Decimal `json:"long_exposure" db:"LongExposure"`
	ShortExposure      decimal.Decimal `json:"short_exposure" db:"ShortExposure"`
}

// RiskLimit is a per-desk single-name limit.
type RiskLimit struct {
	Desk   string          `json:"desk" db:"Desk"`
	Symbol string          `json:"symbol" db:"Symbol"`
	Limit  decimal.Decimal `json:"limit" db:"Limit"`
}

// Trade is one execution.
type Trade struct {
	TradeDate         *time.Time      `json:"trade_date,omitempty" db:"TradeDate"`
	TradeTime         *time.Time      `json:"trade_time,omitempty" db:"ExecutionTime"`
	SecurityCode      string          `json:"security_code" db:"SecurityCode"`
	Symbol            string          `json:"symbol" db:"Symbol"`
	FullBloombergCode string          `json:"full_bloomberg_code" db:"FullBloombergCode"`
	ExecutionBroker   string          `json:"execution_broker" db:"ExecutionBroker"`
	Strategy          string          `json:"strategy" db:"Strategy"`
	Desk              string          `json:"desk" db:"Desk"`
	Quantity          decimal.Decimal `json:"quantity" db:"Quantity"`
	ExecutionFxRate   decimal.Decimal `json:"execution_fx_rate" db:"ExecutionFxRate"`
	NetMoney          decimal.Decimal `json:"net_money" db:"NetMoney"`
}

// AlphaReturn is a security's trailing residual returns.
type AlphaReturn struct {
	BarraMostRecentDate *time.Time       `json:"barra_most_recent_date,omitempty" db:"BarraMostRecentDate"`
	Symbol              string           `json:"symbol" db:"Symbol"`
	Cusip               string           `json:"cusip" db:"Cusip"`
	BarraID             string           `json:"barra_id" db:"BarraId"`
	CurrentSEMV         *decimal.Decimal `json:"current_semv,omitempty" db:"CurrentSEMV"`
	IdioVol             *decimal.Decimal `json:"idio_vol,omitempty" db:"IdioVol"`
	Res1W               *decimal.Decimal `json:"res_1w,omitempty" db:"RES_1W"`
	Res1M               *decimal.Decimal `json:"res_1m,omitempty" db:"RES_1M"`
	Res3M               *decimal.Decimal `json:"res_3m,omitempty" db:"RES_3M"`
	Res6M               *decimal.Decimal `json:"res_6m,omitempty" db:"RES_6M"`
	Res1Y               *decimal.Decimal `json:"res_1y,omitempty" db:"RES_1Y"`
}

// CoverageUniverse is a covered symbol with its current and target size.
type CoverageUniverse struct {
	Symbol   string          `json:"symbol" db:"Symbol"`
	BarraID  string          `json:"barra_id" db:"BarraId"`
	Desk     string          `json:"desk" db:"Desk"`
	SEMV     decimal.Decimal `json:"semv" db:"SEMV"`
	TheoSEMV decimal.Decimal `json:"theo_semv" db:"TargetSEMV"`
	DTD      decimal.Decimal `json:"dtd" db:"DTD"`
}

// Holding is a custodian holding from the fund administrator.
type Holding struct {
	BusDate                    *time.Time      `json:"bus_date,omitempty" db:"BusinessDate"`
	SecurityCode               string          `json:"security_code" db:"SecurityCode"`
	FundDescription            string          `json:"fund_description" db:"FundDescription"`
	LegalEntityDescription     string          `json:"legal_entity_description" db:"LegalEntityDescription"`
	LocationAccountDescription string          `json:"location_account_description" db:"LocationAccountDescription"`
	CustodianDescription       string          `json:"custodian_description" db:"CustodianDescription"`
	Side                       string          `json:"side" db:"HoldingDirection"`
	QuantityStart              decimal.Decimal `json:"quantity_start" db:"QuantityStart"`
	QuantityEnd                decimal.Decimal `json:"quantity_end" db:"QuantityEnd"`
	StartPriceBook             decimal.Decimal `json:"start_price_book" db:"StartPriceBook"`
	StartPriceLocal            decimal.Decimal `json:"start_price_local" db:"StartPriceLocal"`
	EndPriceBook               decimal.Decimal `json:"end_price_book" db:"EndPriceBook"`
	EndPriceLocal              decimal.Decimal `json:"end_price_local" db:"EndPriceLocal"`
	StartDirectFxRate          decimal.Decimal `json:"start_direct_fx_rate" db:"StartDirectFxRate"`
	EndDirectFxRate            decimal.Decimal `json:"end_direct_fx_rate" db:"EndDirectFxRate"`
	MktValBookStart            decimal.Decimal `json:"mkt_val_book_start" db:"MktValBookStart"`
	MktValBook                 decimal.Decimal `json:"mkt_val_book" db:"MktValBook"`
	MktValLocalStart           decimal.Decimal `json:"mkt_val_local_start" db:"MktValLocalStart"`
	MktValLocal                decimal.Decimal `json:"mkt_val_local" db:"MktValLocal"`
	DtdPnlTotal                decimal.Decimal `json:"dtd_pnl_total" db:"DtdPnlTotal"`
	MtdPnlTotal                decimal.Decimal `json:"mtd_pnl_total" db:"MtdPnlTotal"`
	YtdPnlTotal                decimal.Decimal `json:"ytd_pnl_total" db:"YtdPnlTotal"`
	NetExposureStart           decimal.Decimal `json:"net_exposure_start" db:"NetExposureStart"`
	NetExposure                decimal.Decimal `json:"net_exposure" db:"NetExposure"`
	GrossExposureStart         decimal.Decimal `json:"gross_exposure_start" db:"GrossExposureStart"`
	GrossExposure              decimal.Decimal `json:"gross_exposure" db:"GrossExposure"`
	LongExposureStart          decimal.Decimal `json:"long_exposure_start" db:"LongExposureStart"`
	LongExposure               decimal.Decimal `json:"long_exposure" db:"LongExposure"`
	ShortExposureStart         decimal.Decimal `json:"short_exposure_start" db:"ShortExposureStart"`
	ShortExposure              decimal.Decimal `json:"short_exposure" db:"ShortExposure"`
}

// BorrowRate is the stock-loan fee and locate coverage for a symbol.
type BorrowRate struct {
	Symbol            string           `json:"symbol" db:"Symbol"`
	BusDate           *time.Time       `json:"bus_date,omitempty" db:"BusDate"`
	Fees              *decimal.Decimal `json:"fees,omitempty" db:"BorrowRate"`
	LocatedPercent    *decimal.Decimal `json:"located_percent,omitempty" db:"LocatedPercent"`
	RequestedQuantity *decimal.Decimal `json:"requested_quantity,omitempty" db:"RequestedQuantity"`
	LocatedQuantity   *decimal.Decimal `json:"located_quantity,omitempty" db:"LocatedQuantity"`
}

// TCA is a daily transaction-cost grade from the broker's report.
type TCA struct {
	Symbol         string           `json:"symbol" db:"bbid"`
	BusDate        time.Time        `json:"bus_date" db:"ts"`
	Grade          string           `json:"grade" db:"grade"`
	Slippage       *decimal.Decimal `json:"slippage,omitempty" db:"slippage"`
	MidSpreadRatio *decimal.Decimal `json:"mid_spread_ratio,omitempty" db:"mid_sprd_ratio"`
	Vol            *decimal.Decimal `json:"vol,omitempty" db:"vol"`
	ADV            *decimal.Decimal `json:"adv,omitempty" db:"adv"`
}
