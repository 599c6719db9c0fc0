package db

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"holocene/internal/types"
)

const (
	dashAssetIDQuery = `select asset_id from data.asset where upper(ltrim(rtrim(name))) = @Topic`

	dashQueryByIDQuery = `select * from data.DashQuery (nolock) where DashQueryId = @DashQueryId`

	dashQueriesQuery = `select * from data.DashQuery (nolock) where coalesce(IsActive, 0) = 1`

	dashChartsQuery = `select * from data.DashChart (nolock) where coalesce(IsActive, 0) = 1 order by Title`

	insertDashQueryQuery = `set nocount on;
insert into data.DashQuery (QueryName, QueryDesc, Query, Aesthetic, SpanId, StatId, PeriodTypeId, IsActive, ModifiedBy, DisplayOrder)
values (@QueryName, @QueryDesc, @Query, @Aesthetic, @SpanId, @StatId, @PeriodTypeId, 1, @Username, @DisplayOrder);
select cast(SCOPE_IDENTITY() as bigint)`

	updateDashQueryQuery = `set nocount on;
update data.DashQuery
set Query = @Query, QueryDesc = @QueryDesc, Aesthetic = @Aesthetic,
	SpanId = @SpanId, StatId = @StatId, PeriodTypeId = @PeriodTypeId, ModifiedBy = @Username
where DashQueryId = @DashQueryId;
select @DashQueryId`

	insertDashChartQuery = `set nocount on;
insert into data.DashChart (Title, Aesthetic, IsActive, ModifiedBy)
values (@Title, @Aesthetic, 1, @Username);
select cast(SCOPE_IDENTITY() as bigint)`

	updateDashChartQuery = `set nocount on;
update data.DashChart
set Title = @Title, Aesthetic = @Aesthetic, ModifiedBy = @Username
where DashChartId = @DashChartId;
select @DashChartId`

	insertDashChartQueryLink = `set nocount on;
insert into data.DashChartQuery (DashChartId, DashQueryId, IsActive, ModifiedBy, DisplayOrder)
values (@DashChartId, @DashQueryId, 1, @Username, @DisplayOrder);
select cast(SCOPE_IDENTITY() as bigint)`

	deleteDashChartQueries = `delete from data.DashChartQuery where DashChartId = @DashChartId`

	updateDashViewChartSequenceQuery = `update data.DashViewChart
set DisplayOrder = @DisplayOrder, ModifiedBy = @Username, ModifiedOn = getdate()
where DashViewChartId = @DashViewChartId`

	updateDashViewChartStatusQuery = `update data.DashViewChart
set IsActive = @IsActive, ModifiedBy = @Username, ModifiedOn = getdate()
where DashViewChartId = @DashViewChartId`

	updateDashViewAssetStatusQuery = `update data.DashViewAsset
set IsActive = @IsActive, ModifiedBy = @Username, ModifiedOn = getdate()
where DashViewAssetId = @DashViewAssetId`
)

// chartQueryFanout bounds the concurrent chart query lookups of one view.
const chartQueryFanout = 4

// DashboardRepository manages the Holocene dashboard catalog: assets, saved
// queries, charts and views.
type DashboardRepository struct {
	exec Executor
}

// NewDashboardRepository creates a repository over the Holocene executor.
func NewDashboardRepository(exec Executor) *DashboardRepository {
	return &DashboardRepository{exec: exec}
}

// GetDashAssets returns every dashboard asset.
func (r *DashboardRepository) GetDashAssets(ctx context.Context) ([]types.DashAsset, error) {
	return queryList[types.DashAsset](ctx, r.exec, "GetDashAssets", Proc("data.GetDashAssets"), nil)
}

// GetDashAssetID looks a topic up by trimmed, case-insensitive name. An
// unknown topic yields zero.
func (r *DashboardRepository) GetDashAssetID(ctx context.Context, topic string) (int64, error) {
	params := Params{}.Add("Topic", strings.ToUpper(strings.TrimSpace(topic)))
	return scalarID(ctx, r.exec, "GetDashAssetID", Text(dashAssetIDQuery), params, nil)
}

// GetDashQuery returns one saved query, or the zero query when the id is unknown.
func (r *DashboardRepository) GetDashQuery(ctx context.Context, id int64) (types.DashQuery, error) {
	params := Params{}.Add("DashQueryId", id)
	return queryLast[types.DashQuery](ctx, r.exec, "GetDashQuery", Text(dashQueryByIDQuery), params)
}

// GetDashQueries returns active queries only.
func (r *DashboardRepository) GetDashQueries(ctx context.Context) ([]types.DashQuery, error) {
	return queryList[types.DashQuery](ctx, r.exec, "GetDashQueries", Text(dashQueriesQuery), nil)
}

// UpsertDashQuery inserts q when its id is zero and updates it otherwise,
// returning the query id. Updates leave DisplayOrder and IsActive alone.
func (r *DashboardRepository) UpsertDashQuery(ctx context.Context, q types.DashQuery, username string) (int64, error) {
	params := Params{}.
		Add("QueryDesc", q.QueryDesc).
		Add("Query", q.Query).
		Add("Aesthetic", q.Aesthetic).
		Add("SpanId", q.SpanID).
		Add("StatId", q.StatID).
		Add("PeriodTypeId", q.PeriodTypeID).
		Add("Username", username)

	cmd := Text(updateDashQueryQuery)
	if q.DashQueryID == 0 {
		cmd = Text(insertDashQueryQuery)
		params = params.
			Add("QueryName", q.QueryName).
			Add("DisplayOrder", q.DisplayOrder)
	} else {
		params = params.Add("DashQueryId", q.DashQueryID)
	}
	return scalarID(ctx, r.exec, "UpsertDashQuery", cmd, params, nil)
}

// GetDashCharts returns active charts ordered by title.
func (r *DashboardRepository) GetDashCharts(ctx context.Context) ([]types.DashChart, error) {
	return queryList[types.DashChart](ctx, r.exec, "GetDashCharts", Text(dashChartsQuery), nil)
}

// UpsertDashChart inserts a chart when id is zero and retitles it otherwise.
func (r *DashboardRepository) UpsertDashChart(ctx context.Context, id int64, title, aesthetic, username string) (int64, error) {
	params := Params{}.
		Add("Title", title).
		Add("Aesthetic", aesthetic).
		Add("Username", username)

	cmd := Text(insertDashChartQuery)
	if id != 0 {
		cmd = Text(updateDashChartQuery)
		params = params.Add("DashChartId", id)
	}
	return scalarID(ctx, r.exec, "UpsertDashChart", cmd, params, nil)
}

// SetDashChartQueries replaces the queries attached to a chart, in display
// order, inside one transaction when the executor supports it.
func (r *DashboardRepository) SetDashChartQueries(ctx context.Context, chartID int64, queryIDs []int64, username string) error {
	const op = "SetDashChartQueries"
	if chartID == 0 {
		return validationError(types.ErrCodeValidationMissingField, op, "dash_chart_id", "chart id is required", nil)
	}
	run := func(exec Executor) error {
		if _, err := execCmd(ctx, exec, op, Text(deleteDashChartQueries), Params{}.Add("DashChartId", chartID)); err != nil {
			return err
		}
		for i, qid := range queryIDs {
			params := Params{}.
				Add("DashChartId", chartID).
				Add("DashQueryId", qid).
				Add("Username", username).
				Add("DisplayOrder", i+1)
			if _, err := scalarID(ctx, exec, op, Text(insertDashChartQueryLink), params, nil); err != nil {
				return err
			}
		}
		return nil
	}
	if tx, ok := r.exec.(TxExecutor); ok {
		return tx.InTx(ctx, run)
	}
	return run(r.exec)
}

// UpsertDashView creates or updates a view and returns its id.
func (r *DashboardRepository) UpsertDashView(ctx context.Context, v types.DashView, username string) (int64, error) {
	params := Params{}.
		Add("DashViewId", v.DashViewID).
		Add("DashViewName", v.Name).
		Add("DashViewDesc", v.Desc).
		Add("Asset", v.Asset).
		Add("Username", username)
	return scalarID(ctx, r.exec, "UpsertDashView", Proc("data.UpsertDashView"), params, nil)
}

// GetDashViews returns the views published under a topic.
func (r *DashboardRepository) GetDashViews(ctx context.Context, topic string) ([]types.DashViewAsset, error) {
	params := Params{}.Add("Topic", topic)
	return queryList[types.DashViewAsset](ctx, r.exec, "GetDashViews", Proc("data.GetDashViews"), params)
}

// GetDashViewsByAsset returns the views published under one asset id.
func (r *DashboardRepository) GetDashViewsByAsset(ctx context.Context, assetID int64) ([]types.DashViewAsset, error) {
	params := Params{}.Add("DashAssetID", assetID)
	return queryList[types.DashViewAsset](ctx, r.exec, "GetDashViewsByAsset", Proc("data.GetDashViewsByID"), params)
}

// GetDashViewCache returns the cached query results behind every chart of a
// view.
func (r *DashboardRepository) GetDashViewCache(ctx context.Context, viewID int64) ([]types.DashViewCache, error) {
	params := Params{}.Add("DashViewId", viewID)
	return queryList[types.DashViewCache](ctx, r.exec, "GetDashViewCache", Proc("data.GetDashViewChartsCache"), params)
}

// GetDashChartQueries returns the active queries of a chart with their
// cached results.
func (r *DashboardRepository) GetDashChartQueries(ctx context.Context, chartID int64) ([]types.DashChartQuery, error) {
	params := Params{}.Add("DashChartId", chartID)
	return queryList[types.DashChartQuery](ctx, r.exec, "GetDashChartQueries", Proc("data.GetDashChartQueries"), params)
}

// GetDashViewCharts returns the charts placed on a view with their queries
// attached. Embedded charts keep an empty query list. Missing tile sizes get
// the grid defaults.
func (r *DashboardRepository) GetDashViewCharts(ctx context.Context, viewID int64) ([]types.DashViewChart, error) {
	params := Params{}.Add("DashViewId", viewID)
	charts, err := queryList[types.DashViewChart](ctx, r.exec, "GetDashViewCharts", Proc("data.GetDashViewCharts"), params)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(chartQueryFanout)
	for i := range charts {
		c := &charts[i]
		if c.DisplayWidth == 0 {
			c.DisplayWidth = types.DefaultChartWidth
		}
		if c.DisplayHeight == 0 {
			c.DisplayHeight = types.DefaultChartHeight
		}
		c.Queries = []types.DashChartQuery{}
		if c.Embedded() {
			continue
		}
		g.Go(func() error {
			queries, err := r.GetDashChartQueries(gctx, c.DashChartID)
			if err != nil {
				return err
			}
			c.Queries = queries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return charts, nil
}

// UpsertDashViewChart places a chart on a view, or moves it when it is
// already there, and returns the placement id.
func (r *DashboardRepository) UpsertDashViewChart(ctx context.Context, viewID, chartID int64, displayOrder int, username string) (int64, error) {
	const op = "UpsertDashViewChart"
	if viewID == 0 {
		return 0, validationError(types.ErrCodeValidationMissingField, op, "dash_view_id", "view id is required", nil)
	}
	if chartID == 0 {
		return 0, validationError(types.ErrCodeValidationMissingField, op, "dash_chart_id", "chart id is required", nil)
	}
	params := Params{}.
		Add("DashViewId", viewID).
		Add("DashChartId", chartID).
		Add("DisplayOrder", displayOrder).
		Add("Username", username)
	return scalarID(ctx, r.exec, op, Proc("data.UpsertDashViewChart"), params, nil)
}

// UpdateDashViewChartSequence moves a placed chart to displayOrder.
func (r *DashboardRepository) UpdateDashViewChartSequence(ctx context.Context, viewChartID int64, displayOrder int, username string) error {
	const op = "UpdateDashViewChartSequence"
	if viewChartID == 0 {
		return validationError(types.ErrCodeValidationMissingField, op, "dash_view_chart_id", "view chart id is required", nil)
	}
	params := Params{}.
		Add("DisplayOrder", displayOrder).
		Add("Username", username).
		Add("DashViewChartId", viewChartID)
	_, err := execCmd(ctx, r.exec, op, Text(updateDashViewChartSequenceQuery), params)
	return err
}

// UpdateDashViewChartStatus shows or hides a placed chart.
func (r *DashboardRepository) UpdateDashViewChartStatus(ctx context.Context, viewChartID int64, active bool, username string) error {
	const op = "UpdateDashViewChartStatus"
	if viewChartID == 0 {
		return validationError(types.ErrCodeValidationMissingField, op, "dash_view_chart_id", "view chart id is required", nil)
	}
	params := Params{}.
		Add("IsActive", active).
		Add("Username", username).
		Add("DashViewChartId", viewChartID)
	_, err := execCmd(ctx, r.exec, op, Text(updateDashViewChartStatusQuery), params)
	return err
}

// UpdateDashViewAssetStatus publishes or withdraws a view under its asset.
func (r *DashboardRepository) UpdateDashViewAssetStatus(ctx context.Context, viewAssetID int64, active bool, username string) error {
	const op = "UpdateDashViewAssetStatus"
	if viewAssetID == 0 {
		return validationError(types.ErrCodeValidationMissingField, op, "dash_view_asset_id", "view asset id is required", nil)
	}
	params := Params{}.
		Add("IsActive", active).
		Add("Username", username).
		Add("DashViewAssetId", viewAssetID)
	_, err := execCmd(ctx, r.exec, op, Text(updateDashViewAssetStatusQuery), params)
	return err
}

// CloneDashView copies a view, with its charts, under another topic.
func (r *DashboardRepository) CloneDashView(ctx context.Context, viewID int64, topic, username string) error {
	params := Params{}.
		Add("DashViewId", viewID).
		Add("Asset", topic).
		Add("Username", username)
	_, err := execCmd(ctx, r.exec, "CloneDashView", Proc("data.CloneDashView"), params)
	return err
}
