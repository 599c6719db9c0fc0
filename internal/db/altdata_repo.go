package db

import (
	"context"
	"strings"

	"holocene/internal/types"
)

const (
	dashboardDetailsSQL = `select name, coalesce(url, '') url, coalesce(description, '') description,
	coalesce(datasource, '') datasource, coalesce(underlying_table, '') underlying_table,
	in_production::int in_production, coalesce(frequency, '') frequency,
	coalesce(view_table, '') view_table, coalesce(default_metric, '') default_metric,
	coalesce(default_filter1, '') default_filter1, coalesce(default_filter2, '') default_filter2,
	coalesce(default_filter3, '') default_filter3, coalesce(default_filter4, '') default_filter4
from dashboard.url_info
where in_production = 1
order by datasource, name`

	breakdownViewSQL = `select breakdown_id, asset_id, datasource_id, metric_id,
	coalesce(datasource_provider, '') datasource_provider, coalesce(datasource_name, '') datasource_name,
	coalesce(datasource_desc, '') datasource_desc, asset_name, metric_name,
	coalesce(metric_description, '') metric_description, coalesce(metric_frequency, '') metric_frequency,
	coalesce(metric_lag::text, '') metric_lag
from core_catalog.breakdown_view
where upper(asset_name) = upper($1)`

	filterViewSQL = `select filter_id, filter_detail_id, catalog_detail_id, catalog_id, breakdown_id,
	coalesce(filter_description, '') filter_description, coalesce(catalog_name, '') catalog_name,
	coalesce(catalog_value, '') catalog_value
from core_mapping.filter_view
where breakdown_id = $1`

	periodTypeStatViewSQL = `select breakdown_id, period_type_id, stat_id,
	coalesce(period_type_name, '') period_type_name, coalesce(stat_name, '') stat_name,
	coalesce(stat_desc, '') stat_desc
from core_catalog.period_stat_view
where breakdown_id = $1`

	recordViewSQL = `select datasource_id, asset_id, metric_id, filter_id, period_id, stat_id,
	coalesce(period_type_name, '') period_type_name, period_start, period_end,
	coalesce(stat_name, '') stat_name, coalesce(stat_description, '') stat_description,
	value, coalesce(is_actual::boolean, false) is_actual, upload_datetime,
	coalesce(modified_by, '') modified_by
from core_mapping.record_view
where datasource_id = $1
	and asset_id = $2
	and metric_id = $3
	and stat_id = $4
	and period_type_id = $5`

	statViewSQL = `select stat_id, name, coalesce(description, '') description from core_mapping.stat`

	insertDashQuerySQL = `insert into core_catalog.dash_query (queryname, querydesc, aesthetic, user_id)
values ($1, $2, $3, $4)
returning dash_query_id`

	insertDashViewQuerySQL = `insert into core_catalog.dash_view_query (dash_view_id, dash_query_id, display_order, is_active)
values ($1, $2, $3, $4)
returning dash_view_query_id`

	insertDashQueryCacheSQL = `insert into core_catalog.dash_query_cache (dash_query_id, cache_data)
values ($1, $2)
returning dash_query_cache_id`
)

// AltDataRepository reads the alternative-data catalog and writes saved
// dashboard queries.
type AltDataRepository struct {
	altData *PGExecutor
}

// NewAltDataRepository creates a repository over the AltData executor.
func NewAltDataRepository(altData *PGExecutor) *AltDataRepository {
	return &AltDataRepository{altData: altData}
}

// GetDashboardDetails returns the alt-data dashboard catalog.
func (r *AltDataRepository) GetDashboardDetails(ctx context.Context) ([]types.AltDataDashboardDetail, error) {
	return pgList[types.AltDataDashboardDetail](ctx, r.altData, "GetDashboardDetails", dashboardDetailsSQL)
}

// GetBreakdownView returns the breakdowns published for ticker.
func (r *AltDataRepository) GetBreakdownView(ctx context.Context, ticker string) ([]types.AltDataBreakdown, error) {
	return pgList[types.AltDataBreakdown](ctx, r.altData, "GetBreakdownView", breakdownViewSQL, ticker)
}

// GetFilterView returns the filters of one breakdown.
func (r *AltDataRepository) GetFilterView(ctx context.Context, breakdownID int64) ([]types.AltDataFilter, error) {
	return pgList[types.AltDataFilter](ctx, r.altData, "GetFilterView", filterViewSQL, breakdownID)
}

// GetPeriodTypeStatView returns the period type and stat pairs of one breakdown.
func (r *AltDataRepository) GetPeriodTypeStatView(ctx context.Context, breakdownID int64) ([]types.AltDataPeriodTypeStat, error) {
	return pgList[types.AltDataPeriodTypeStat](ctx, r.altData, "GetPeriodTypeStatView", periodTypeStatViewSQL, breakdownID)
}

// GetRecordView returns one series ordered by period end. A zero FilterID
// matches every filter.
func (r *AltDataRepository) GetRecordView(ctx context.Context, f types.RecordViewFilter) ([]types.AltDataRecord, error) {
	sql, args := recordViewQuery(f)
	return pgList[types.AltDataRecord](ctx, r.altData, "GetRecordView", sql, args...)
}

func recordViewQuery(f types.RecordViewFilter) (string, []any) {
	var b strings.Builder
	b.WriteString(recordViewSQL)
	args := []any{f.DataSourceID, f.AssetID, f.MetricID, f.StatID, f.PeriodTypeID}
	if f.FilterID != 0 {
		args = append(args, f.FilterID)
		b.WriteString("\n\tand filter_id = $6")
	}
	b.WriteString("\norder by period_end")
	return b.String(), args
}

// GetStatView returns the stat catalog.
func (r *AltDataRepository) GetStatView(ctx context.Context) ([]types.AltDataStat, error) {
	return pgList[types.AltDataStat](ctx, r.altData, "GetStatView", statViewSQL)
}

// InsertDashQuery saves a chart query and returns its id. The query text
// itself is not stored in the catalog.
func (r *AltDataRepository) InsertDashQuery(ctx context.Context, q types.AltDataDashQuery) (int64, error) {
	id, err := queryRowScalar[int64](ctx, r.altData, insertDashQuerySQL, q.QueryName, q.QueryDesc, q.Aesthetic, q.UserID)
	if err != nil {
		return 0, opError("InsertDashQuery", err)
	}
	return id, nil
}

// InsertDashViewQuery attaches a saved query to a view and returns the link id.
func (r *AltDataRepository) InsertDashViewQuery(ctx context.Context, dashViewID, dashQueryID int64, displayOrder int, isActive bool) (int64, error) {
	id, err := queryRowScalar[int64](ctx, r.altData, insertDashViewQuerySQL, dashViewID, dashQueryID, displayOrder, isActive)
	if err != nil {
		return 0, opError("InsertDashViewQuery", err)
	}
	return id, nil
}

// InsertDashQueryCache stores a rendered result for a saved query and returns the cache row id.
func (r *AltDataRepository) InsertDashQueryCache(ctx context.Context, dashQueryID int64, cacheData string) (int64, error) {
	id, err := queryRowScalar[int64](ctx, r.altData, insertDashQueryCacheSQL, dashQueryID, cacheData)
	if err != nil {
		return 0, opError("InsertDashQueryCache", err)
	}
	return id, nil
}
