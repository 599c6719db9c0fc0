package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// AltDataDashboardDetail describes one production alt-data dashboard.
type AltDataDashboardDetail struct {
	Name            string `json:"name" db:"name"`
	URL             string `json:"url" db:"url"`
	Description     string `json:"description" db:"description"`
	DataSource      string `json:"data_source" db:"datasource"`
	UnderlyingTable string `json:"underlying_table" db:"underlying_table"`
	IsActive        int    `json:"is_active" db:"in_production"`
	Frequency       string `json:"frequency" db:"frequency"`
	View            string `json:"view" db:"view_table"`
	DefaultMetric   string `json:"default_metric" db:"default_metric"`
	DefaultFilter1  string `json:"default_filter_1" db:"default_filter1"`
	DefaultFilter2  string `json:"default_filter_2" db:"default_filter2"`
	DefaultFilter3  string `json:"default_filter_3" db:"default_filter3"`
	DefaultFilter4  string `json:"default_filter_4" db:"default_filter4"`
}

// AltDataBreakdown links an asset to a data source metric.
type AltDataBreakdown struct {
	BreakdownID        int64  `json:"breakdown_id" db:"breakdown_id"`
	AssetID            int64  `json:"asset_id" db:"asset_id"`
	DataSourceID       int64  `json:"datasource_id" db:"datasource_id"`
	MetricID           int64  `json:"metric_id" db:"metric_id"`
	DataSourceProvider string `json:"datasource_provider" db:"datasource_provider"`
	DataSourceName     string `json:"datasource_name" db:"datasource_name"`
	DataSourceDesc     string `json:"datasource_desc" db:"datasource_desc"`
	AssetName          string `json:"asset_name" db:"asset_name"`
	MetricName         string `json:"metric_name" db:"metric_name"`
	MetricDesc         string `json:"metric_desc" db:"metric_description"`
	MetricFrequency    string `json:"metric_frequency" db:"metric_frequency"`
	MetricLag          string `json:"metric_lag" db:"metric_lag"`
}

type AltDataFilter struct {
	FilterID        int64  `json:"filter_id" db:"filter_id"`
	FilterDetailID  int64  `json:"filter_detail_id" db:"filter_detail_id"`
	CatalogDetailID int64  `json:"catalog_detail_id" db:"catalog_detail_id"`
	CatalogID       int64  `json:"catalog_id" db:"catalog_id"`
	BreakdownID     int64  `json:"breakdown_id" db:"breakdown_id"`
	FilterDesc      string `json:"filter_desc" db:"filter_description"`
	CatalogName     string `json:"catalog_name" db:"catalog_name"`
	CatalogValue    string `json:"catalog_value" db:"catalog_value"`
}

type AltDataPeriodTypeStat struct {
	BreakdownID    int64  `json:"breakdown_id" db:"breakdown_id"`
	PeriodTypeID   int64  `json:"period_type_id" db:"period_type_id"`
	StatID         int64  `json:"stat_id" db:"stat_id"`
	PeriodTypeName string `json:"period_type_name" db:"period_type_name"`
	StatName       string `json:"stat_name" db:"stat_name"`
	StatDesc       string `json:"stat_desc" db:"stat_desc"`
}

// AltDataRecord is one observation of an alt-data series.
type AltDataRecord struct {
	DataSourceID    int64            `json:"datasource_id" db:"datasource_id"`
	AssetID         int64            `json:"asset_id" db:"asset_id"`
	MetricID        int64            `json:"metric_id" db:"metric_id"`
	FilterID        *int64           `json:"filter_id,omitempty" db:"filter_id"`
	PeriodID        int64            `json:"period_id" db:"period_id"`
	StatID          int64            `json:"stat_id" db:"stat_id"`
	PeriodTypeName  string           `json:"period_type_name" db:"period_type_name"`
	PeriodStart     time.Time        `json:"period_start" db:"period_start"`
	PeriodEnd       time.Time        `json:"period_end" db:"period_end"`
	StatName        string           `json:"stat_name" db:"stat_name"`
	StatDesc        string           `json:"stat_desc" db:"stat_description"`
	Value           *decimal.Decimal `json:"value,omitempty" db:"value"`
	IsActual        bool             `json:"is_actual" db:"is_actual"`
	UploadTimestamp *time.Time       `json:"upload_timestamp,omitempty" db:"upload_datetime"`
	ModifiedBy      string           `json:"modified_by" db:"modified_by"`
}

// RecordViewFilter selects one alt-data series. A zero FilterID matches every
// filter.
type RecordViewFilter struct {
	DataSourceID int64 `json:"datasource_id" validate:"required"`
	AssetID      int64 `json:"asset_id" validate:"required"`
	MetricID     int64 `json:"metric_id" validate:"required"`
	FilterID     int64 `json:"filter_id"`
	StatID       int64 `json:"stat_id" validate:"required"`
	PeriodTypeID int64 `json:"period_type_id" validate:"required"`
}

type AltDataStat struct {
	StatID   int64  `json:"stat_id" db:"stat_id"`
	StatName string `json:"stat_name" db:"name"`
	StatDesc string `json:"stat_desc" db:"description"`
}

// AltDataDashQuery is a chart query saved in the alt-data catalog.
type AltDataDashQuery struct {
	QueryName string `json:"query_name" validate:"required"`
	QueryDesc string `json:"query_desc"`
	Query     string `json:"query"`
	Aesthetic string `json:"aesthetic"`
	UserID    int    `json:"user_id"`
}
