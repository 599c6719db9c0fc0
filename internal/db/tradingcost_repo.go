package db

import (
	"context"
	"time"

	"holocene/internal/types"
)

const tcaGradeSQL = `select bbid, ts, coalesce(grade, '') grade, slippage, mid_sprd_ratio, vol, adv
from mktdata.ubs_tcost
where bbid = $1 and date(ts) = $2::date`

// TradingCostRepository reads execution cost grades from QRReports.
type TradingCostRepository struct {
	qrReports *PGExecutor
}

// NewTradingCostRepository creates a repository over the QRReports executor.
func NewTradingCostRepository(qrReports *PGExecutor) *TradingCostRepository {
	return &TradingCostRepository{qrReports: qrReports}
}

// GetTCAGrade returns the trading cost grade for symbol on busDate. The last
// row wins; no row yields the zero record.
func (r *TradingCostRepository) GetTCAGrade(ctx context.Context, symbol string, busDate time.Time) (types.TCA, error) {
	day := time.Date(busDate.Year(), busDate.Month(), busDate.Day(), 0, 0, 0, 0, time.UTC)
	out, err := pgList[types.TCA](ctx, r.qrReports, "GetTCAGrade", tcaGradeSQL, symbol, day)
	if err != nil || len(out) == 0 {
		return types.TCA{}, err
	}
	return out[len(out)-1], nil
}
