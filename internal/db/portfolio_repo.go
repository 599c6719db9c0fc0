package db

import (
	"context"
	"strings"
	"time"

	"github.com/golang-sql/civil"

	"holocene/internal/types"
)

// holdingsWindowDays is how far back GetHoldings reaches from its as-of date.
const holdingsWindowDays = 30

const holdingsQuery = `select * from Holocene.Holdings
where BusinessDate between @From and @To`

const borrowRateQuery = `select * from flex.BorrowRateView
where BusDate = (select max(BusDate) from flex.BorrowRateView where upper(Symbol) = @Symbol)
	and Symbol = @Symbol`

// PortfolioRepository reads positions, trades and returns from Holocene and
// custodian holdings from MIK.
type PortfolioRepository struct {
	holocene Executor
	mik      Executor
}

// NewPortfolioRepository creates a repository over the Holocene and MIK executors.
func NewPortfolioRepository(holocene, mik Executor) *PortfolioRepository {
	return &PortfolioRepository{holocene: holocene, mik: mik}
}

// GetPositions returns current positions filtered by symbol and desk.
func (r *PortfolioRepository) GetPositions(ctx context.Context, symbol, desk string) ([]types.Position, error) {
	params := Params{}.
		Add("Symbol", symbol).
		Add("Desk", desk)
	return queryList[types.Position](ctx, r.holocene, "GetPositions", Proc("core.GetPositions"), params)
}

// GetCurrentPositionsWithRiskLimits returns positions joined with their risk limits.
func (r *PortfolioRepository) GetCurrentPositionsWithRiskLimits(ctx context.Context, symbol string, includeOptions bool) ([]types.PositionRiskLimit, error) {
	params := Params{}.
		Add("Symbol", symbol).
		Add("IncludeOptions", includeOptions)
	return queryList[types.PositionRiskLimit](ctx, r.holocene, "GetCurrentPositionsWithRiskLimits",
		Proc("core.GetCurrentPositionsWithRiskLimits"), params)
}

// GetIntradayPositions returns the intraday position snapshot.
func (r *PortfolioRepository) GetIntradayPositions(ctx context.Context) ([]types.IntradayPosition, error) {
	return queryList[types.IntradayPosition](ctx, r.holocene, "GetIntradayPositions", Proc("eze.GetIntradayPositions"), nil)
}

// GetDailyRiskLimits returns every limit, or one symbol's limits.
func (r *PortfolioRepository) GetDailyRiskLimits(ctx context.Context, symbol string) ([]types.RiskLimit, error) {
	params := Params{}.AddIfNotEmpty("Symbol", symbol)
	return queryList[types.RiskLimit](ctx, r.holocene, "GetDailyRiskLimits", Proc("core.GetDailyRiskLimits"), params)
}

// GetTrades returns every trade, or one symbol's trades.
func (r *PortfolioRepository) GetTrades(ctx context.Context, symbol string) ([]types.Trade, error) {
	params := Params{}.AddIfNotEmpty("Symbol", symbol)
	return queryList[types.Trade](ctx, r.holocene, "GetTrades", Proc("core.GetTrades"), params)
}

// GetAlphaReturns returns residual returns for a desk.
func (r *PortfolioRepository) GetAlphaReturns(ctx context.Context, desk string) ([]types.AlphaReturn, error) {
	params := Params{}.Add("Desk", desk)
	return queryList[types.AlphaReturn](ctx, r.holocene, "GetAlphaReturns", Proc("report.GetResidualReturns"), params)
}

// GetCoverageUniverse lists covered symbols. An empty desk means all desks.
func (r *PortfolioRepository) GetCoverageUniverse(ctx context.Context, desk string) ([]types.CoverageUniverse, error) {
	params := Params{}.Add("Desk", desk)
	return queryList[types.CoverageUniverse](ctx, r.holocene, "GetCoverageUniverse",
		Proc("report.GetCoverageUniverse"), params)
}

// GetHoldings returns custodian holdings for the window ending at asOf.
func (r *PortfolioRepository) GetHoldings(ctx context.Context, asOf time.Time) ([]types.Holding, error) {
	to := civil.DateOf(asOf)
	params := Params{}.
		Add("From", to.AddDays(-holdingsWindowDays)).
		Add("To", to)
	return queryList[types.Holding](ctx, r.mik, "GetHoldings", Text(holdingsQuery), params)
}

// GetBorrowRate returns the symbol's borrow rate on its latest business
// date, or the zero value when the symbol has none.
func (r *PortfolioRepository) GetBorrowRate(ctx context.Context, symbol string) (types.BorrowRate, error) {
	params := Params{}.Add("Symbol", strings.ToUpper(strings.TrimSpace(symbol)))
	return queryLast[types.BorrowRate](ctx, r.holocene, "GetBorrowRate", Text(borrowRateQuery), params)
}
