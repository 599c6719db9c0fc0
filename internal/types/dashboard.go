package types

import "time"

// DashAsset is a topic that dashboards can be built for.
type DashAsset struct {
	DashAssetID int    `json:"dash_asset_id" db:"DashAssetId"`
	AssetName   string `json:"asset_name" db:"Name"`
	AssetDesc   string `json:"asset_desc" db:"Description"`
	IsActive    bool   `json:"is_active" db:"IsActive"`
	UserID      *int   `json:"user_id,omitempty" db:"UserId"`
}

// DashQuery is a saved chart query. SpanID, StatID and PeriodTypeID point at
// alt-data catalog entries and are NULL for free-form queries.
type DashQuery struct {
	DashQueryID  int64  `json:"dash_query_id" db:"DashQueryId"`
	QueryName    string `json:"query_name" db:"QueryName"`
	QueryDesc    string `json:"query_desc" db:"QueryDesc"`
	Query        string `json:"query" db:"Query"`
	Aesthetic    string `json:"aesthetic" db:"Aesthetic"`
	SpanID       *int64 `json:"span_id,omitempty" db:"SpanId"`
	StatID       *int64 `json:"stat_id,omitempty" db:"StatId"`
	PeriodTypeID *int64 `json:"period_type_id,omitempty" db:"PeriodTypeId"`
	IsActive     bool   `json:"is_active" db:"IsActive"`
	DisplayOrder int    `json:"display_order" db:"DisplayOrder"`
}

// DashChart is a titled chart grouping one or more queries.
type DashChart struct {
	DashChartID int64  `json:"dash_chart_id" db:"DashChartId"`
	Title       string `json:"title" db:"Title" validate:"required"`
	Aesthetic   string `json:"aesthetic" db:"Aesthetic"`
}

// DashView is a named collection of charts for one asset.
type DashView struct {
	DashViewID int64  `json:"dash_view_id" db:"DashViewId"`
	Name       string `json:"name" db:"DashViewName" validate:"required"`
	Desc       string `json:"desc" db:"DashViewDesc"`
	Asset      string `json:"asset" db:"Asset"`
}

// DashViewAsset links a view to the asset it is published under.
type DashViewAsset struct {
	DashViewAssetID int64  `json:"dash_view_asset_id" db:"DashViewAssetId"`
	AssetID         int64  `json:"asset_id" db:"AssetId"`
	AssetName       string `json:"asset_name" db:"AssetName"`
	AssetType       string `json:"asset_type" db:"AssetType"`
	DashViewID      int64  `json:"dash_view_id" db:"DashViewId"`
	DashViewName    string `json:"dash_view_name" db:"DashViewName"`
	DashViewDesc    string `json:"dash_view_desc" db:"DashViewDesc"`
	DashViewGroup   string `json:"dash_view_group" db:"DashViewGroup"`
	IsActive        bool   `json:"is_active" db:"IsActive"`
	DashboardURL    string `json:"dashboard_url" db:"DashboardUrl"`
	DisplayOrder    int    `json:"display_order" db:"DisplayOrder"`
}

// DashViewCache is one cached chart query result of a view.
type DashViewCache struct {
	DashViewID        int64      `json:"dash_view_id" db:"DashViewId"`
	DashChartID       int64      `json:"dash_chart_id" db:"DashChartId"`
	DashQueryID       int64      `json:"dash_query_id" db:"DashQueryId"`
	DashChartQueryID  int64      `json:"dash_chart_query_id" db:"DashChartQueryId"`
	Query             string     `json:"query" db:"Query"`
	QueryName         string     `json:"query_name" db:"QueryName"`
	QueryDesc         string     `json:"query_desc" db:"QueryDesc"`
	Aesthetic         string     `json:"aesthetic" db:"Aesthetic"`
	CacheData         string     `json:"cache_data" db:"CacheData"`
	CacheModifiedDate *time.Time `json:"cache_modified_date,omitempty" db:"CacheModifiedDate"`
	DisplayOrder      int        `json:"display_order" db:"DisplayOrder"`
}

// DashChartQuery is a query attached to a chart together with its cached
// result.
type DashChartQuery struct {
	DashQueryID  int64  `json:"dash_query_id" db:"DashQueryId"`
	QueryName    string `json:"query_name" db:"QueryName"`
	QueryDesc    string `json:"query_desc" db:"QueryDesc"`
	Query        string `json:"query" db:"Query"`
	Aesthetic    string `json:"aesthetic" db:"Aesthetic"`
	SpanID       *int64 `json:"span_id,omitempty" db:"SpanId"`
	StatID       *int64 `json:"stat_id,omitempty" db:"StatId"`
	PeriodTypeID *int64 `json:"period_type_id,omitempty" db:"PeriodTypeId"`
	CacheData    string `json:"cache_data" db:"CacheData"`
}

// Default chart tile size on a view grid, used when a placement has none.
const (
	DefaultChartWidth  = 3
	DefaultChartHeight = 4
)

// DashViewChart is a chart placed on a view. Charts rendered from an external
// URL or inline HTML carry no queries.
type DashViewChart struct {
	DashViewChartID int64   `json:"dash_view_chart_id" db:"DashViewChartId"`
	DashChartID     int64   `json:"dash_chart_id" db:"DashChartId"`
	Title           string  `json:"title" db:"Title"`
	Aesthetic       *string `json:"aesthetic,omitempty" db:"Aesthetic"`
	DisplayOrder    int     `json:"display_order" db:"DisplayOrder"`
	DisplayWidth    int     `json:"display_width" db:"DisplayWidth"`
	DisplayHeight   int     `json:"display_height" db:"DisplayHeight"`
	ChartURL        *string `json:"chart_url,omitempty" db:"ChartUrl"`
	ChartHTML       *string `json:"chart_html,omitempty" db:"ChartHtml"`
	UpdateMethod    *int    `json:"update_method,omitempty" db:"UpdateMethod"`

	Queries []DashChartQuery `json:"queries" db:"-"`
}

// Embedded reports whether the chart renders from a URL or inline HTML.
func (c DashViewChart) Embedded() bool {
	return (c.ChartURL != nil && *c.ChartURL != "") || (c.ChartHTML != nil && *c.ChartHTML != "")
}
