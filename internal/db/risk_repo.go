package db

import (
	"context"
	"time"

	"holocene/internal/types"
)

const (
	factorsQuery = `select b.FactorGroup, b.BarraFactorGroup, a.Factor FactorName, a.FactorDisplayName FactorDesc
from barra.Factor a
	join risk.FactorGroupMap b on (upper(a.FactorGroup) = upper(b.BarraFactorGroup))`

	factorGroupsQuery = `select FactorGroup, BarraFactorGroup from risk.FactorGroupMap`

	barraCacheQuery = `select * from barra.Cache`
)

// QR (Postgres) queries. Aliases are quoted so they match the record db tags
// exactly.
const (
	factorLoadingsSQL = `select a.barraid "BarraId", a.date "Date", a.factor "Factor",
	coalesce(b.loading, a.loading) "Loading"
from public.usmeds_asset_exp_last a
	left join public.usmeds_asset_exp_override b
		on (a.barraid = b.barraid and a.factor = b.factor and a.date between b.start_date and b.end_date)
where a.barraid = $1`

	factorLoadingsOverrideSQL = `select barraid "BarraId", $2::date "Date", factor "Factor", loading "Loading"
from public.usmeds_asset_exp_override
where barraid = $1 and $2::date between start_date and end_date`

	crowdingLoadingsSQL = `select a.symbol "Symbol", '' "BarraId", a.rpt_dt "Date", b.factor "Factor", b.loading "Loading"
from crowding.secinfo a
	join crowding.loadings b on (a.cusip = b.cusip and a.rpt_dt = b.rpt_dt)
where b.factor = 'OWNL'
	and a.symbol = $1
	and a.rpt_dt = (select max(rpt_dt) from crowding.secinfo where symbol = $1)`

	factorLoadingsHistorySQL = `select barraid "BarraId", date "Date", factor "Factor", loading "Loading"
from public.usmeds_asset_exp
where date >= $1 and factor = any($2) and barraid = any($3)`

	factorReturnsHistorySQL = `select factor "Factor", coalesce(dlyreturn, 0) "Ret", date "Date"
from public.usmeds_fac_ret
where date >= $1`

	factorGroupReturnsSQL = `select a.barraid "BarraId", a.date "Date",
	coalesce(sum(coalesce(c.loading, a.loading) * b.dlyreturn), 0) "Ret"
from public.usmeds_asset_exp a
	left join public.usmeds_asset_exp_override c
		on (a.barraid = c.barraid and a.factor = c.factor and a.date between c.start_date and c.end_date)
	join public.usmeds_fac_ret b on (a.factor = b.factor and a.date = b.date)
where a.date >= $1 and a.factor = any($2) and a.barraid = $3
group by a.barraid, a.date
order by a.barraid, a.date`

	factorGroupOverrideReturnsSQL = `select a.barraid "BarraId", b.date "Date",
	coalesce(sum(a.loading * b.dlyreturn), 0) "Ret"
from public.usmeds_asset_exp_override a
	join public.usmeds_fac_ret b on (a.factor = b.factor and b.date between a.start_date and a.end_date)
where b.date >= $1 and a.factor = any($2) and a.barraid = $3
group by a.barraid, b.date
order by a.barraid, b.date`

	specificReturnHistorySQL = `select barraid "BarraId", specific_return / 100 "Ret", date "Date"
from public.usmed_specific_return
where date >= $1 and barraid = any($2)`

	idioReturnsWithOverridesSQL = `select symbol "Symbol", barraid "BarraId", busdate "Date",
	specreturn "SpecificReturn", cumulativespecreturn "CumulativeSpecificReturn"
from public.getspecificreturns_portal($1, $2, $3)`

	factorReturnsSQL = `select ($1::date + ts) "Date", factor "Factor", coalesce(ret, 0) "Ret"
from mkt_data.factor_returns`

	factorVolSQL = `select factor1 "Factor", sqrt(covar) / (100 * sqrt(252)) "Vol"
from public.usmeds_fac_cov_last
where factor1 = factor2`

	barraMetricsSQL = `select barraid "BarraId", date "Date", coalesce(pred_beta, 0) "PredBeta",
	coalesce(specific_risk, 0) / 100 "SpecificRisk"
from public.usmeds_asset_data_last
where barraid = $1`
)

// RiskRepository reads Barra risk data. Reference data and idio returns come
// from Holocene; loadings, factor returns and metrics come from QR.
type RiskRepository struct {
	holocene Executor
	qr       *PGExecutor
	now      func() time.Time
}

// NewRiskRepository creates a repository over the Holocene executor and the QR store.
func NewRiskRepository(holocene Executor, qr *PGExecutor) *RiskRepository {
	return &RiskRepository{holocene: holocene, qr: qr, now: time.Now}
}

// GetBarraID resolves a symbol to its Barra id. The last row wins; an unknown
// symbol yields "".
func (r *RiskRepository) GetBarraID(ctx context.Context, symbol string) (string, error) {
	rows, err := r.holocene.Query(ctx, Proc("risk.GetBarraId"), Params{}.Add("Symbol", symbol))
	if err != nil {
		return "", opError("GetBarraID", err)
	}
	if len(rows) == 0 {
		return "", nil
	}
	return rows[len(rows)-1].String("BarraId"), nil
}

// GetIdioReturns returns a symbol's idiosyncratic returns between start and end.
func (r *RiskRepository) GetIdioReturns(ctx context.Context, symbol string, start, end time.Time) ([]types.RiskReturn, error) {
	params := Params{}.
		Add("Symbol", symbol).
		Add("StartDate", start).
		Add("EndDate", end)
	out, err := queryList[types.RiskReturn](ctx, r.holocene, "GetIdioReturns", Proc("risk.GetIdioReturns"), params)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Symbol = symbol
	}
	return out, nil
}

// GetIdioReturnsWithOverrides returns specific returns since start with overrides applied.
func (r *RiskRepository) GetIdioReturnsWithOverrides(ctx context.Context, symbol, barraID string, start time.Time) ([]types.RiskReturn, error) {
	return pgList[types.RiskReturn](ctx, r.qr, "GetIdioReturnsWithOverrides", idioReturnsWithOverridesSQL,
		symbol, barraID, start)
}

// GetFactors returns the factor catalog.
func (r *RiskRepository) GetFactors(ctx context.Context) ([]types.Factor, error) {
	return queryList[types.Factor](ctx, r.holocene, "GetFactors", Text(factorsQuery), nil)
}

// GetFactorGroups returns the factor group catalog.
func (r *RiskRepository) GetFactorGroups(ctx context.Context) ([]types.FactorGroup, error) {
	return queryList[types.FactorGroup](ctx, r.holocene, "GetFactorGroups", Text(factorGroupsQuery), nil)
}

// GetBarraCache returns the cached symbol to Barra id map.
func (r *RiskRepository) GetBarraCache(ctx context.Context) ([]types.BarraCache, error) {
	return queryList[types.BarraCache](ctx, r.holocene, "GetBarraCache", Text(barraCacheQuery), nil)
}

// GetFactorLoadings returns the latest loadings with overrides applied. A
// security missing from the latest exposure file falls back to the overrides
// in force today.
func (r *RiskRepository) GetFactorLoadings(ctx context.Context, barraID string) ([]types.FactorLoading, error) {
	const op = "GetFactorLoadings"
	out, err := pgList[types.FactorLoading](ctx, r.qr, op, factorLoadingsSQL, barraID)
	if err != nil || len(out) > 0 {
		return out, err
	}
	return pgList[types.FactorLoading](ctx, r.qr, op, factorLoadingsOverrideSQL, barraID, r.today())
}

// GetCrowdingLoadings returns the latest crowding factor loadings for a symbol.
func (r *RiskRepository) GetCrowdingLoadings(ctx context.Context, symbol string) ([]types.FactorLoading, error) {
	return pgList[types.FactorLoading](ctx, r.qr, "GetCrowdingLoadings", crowdingLoadingsSQL, symbol)
}

// GetFactorLoadingsHistory returns loadings since start for the given factors and securities.
func (r *RiskRepository) GetFactorLoadingsHistory(ctx context.Context, factors, barraIDs []string, start time.Time) ([]types.FactorLoading, error) {
	return pgList[types.FactorLoading](ctx, r.qr, "GetFactorLoadingsHistory", factorLoadingsHistorySQL,
		start, factors, barraIDs)
}

// GetFactorReturnsHistory returns daily factor returns since start.
func (r *RiskRepository) GetFactorReturnsHistory(ctx context.Context, start time.Time) ([]types.FactorReturn, error) {
	return pgList[types.FactorReturn](ctx, r.qr, "GetFactorReturnsHistory", factorReturnsHistorySQL, start)
}

// GetFactorGroupReturnsHistory sums loading times factor return per date for
// the given factors. Dates that only exist through overrides are appended
// after the regular history.
func (r *RiskRepository) GetFactorGroupReturnsHistory(ctx context.Context, start time.Time, barraID string, factors []string) ([]types.RiskReturn, error) {
	const op = "GetFactorGroupReturnsHistory"
	out, err := pgList[types.RiskReturn](ctx, r.qr, op, factorGroupReturnsSQL, start, factors, barraID)
	if err != nil {
		return nil, err
	}
	overrides, err := pgList[types.RiskReturn](ctx, r.qr, op, factorGroupOverrideReturnsSQL, start, factors, barraID)
	if err != nil {
		return nil, err
	}
	seen := make(map[time.Time]struct{}, len(out))
	for _, rr := range out {
		seen[rr.BusDate] = struct{}{}
	}
	for _, rr := range overrides {
		if _, ok := seen[rr.BusDate]; !ok {
			out = append(out, rr)
		}
	}
	return out, nil
}

// GetSpecificReturnHistory returns specific returns since start for the given securities.
func (r *RiskRepository) GetSpecificReturnHistory(ctx context.Context, barraIDs []string, start time.Time) ([]types.RiskReturn, error) {
	return pgList[types.RiskReturn](ctx, r.qr, "GetSpecificReturnHistory", specificReturnHistorySQL, start, barraIDs)
}

// GetFactorReturns returns today's intraday factor returns. The feed stores
// a time of day only, so each row is stamped with today's date.
func (r *RiskRepository) GetFactorReturns(ctx context.Context) ([]types.FactorReturn, error) {
	return pgList[types.FactorReturn](ctx, r.qr, "GetFactorReturns", factorReturnsSQL, r.today())
}

// GetFactorVol returns each factor's annualized volatility from the latest
// covariance matrix.
func (r *RiskRepository) GetFactorVol(ctx context.Context) ([]types.FactorVol, error) {
	return pgList[types.FactorVol](ctx, r.qr, "GetFactorVol", factorVolSQL)
}

// GetBarraMetrics returns the latest predicted beta and specific risk, or
// the zero value when the id is unknown.
func (r *RiskRepository) GetBarraMetrics(ctx context.Context, barraID string) (types.BarraMetrics, error) {
	out, err := pgList[types.BarraMetrics](ctx, r.qr, "GetBarraMetrics", barraMetricsSQL, barraID)
	if err != nil || len(out) == 0 {
		return types.BarraMetrics{}, err
	}
	return out[len(out)-1], nil
}

func (r *RiskRepository) today() time.Time {
	y, m, d := r.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
