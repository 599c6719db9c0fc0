package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// EarningsDetails summarizes risk and sizing for a symbol ahead of earnings,
// one row per desk.
type EarningsDetails struct {
	Desk            string           `json:"desk" db:"Desk"`
	Symbol          string           `json:"symbol" db:"Symbol"`
	IsDefaultDesk   bool             `json:"is_default_desk" db:"IsDefaultDesk"`
	IdioVol         *decimal.Decimal `json:"idio_vol,omitempty" db:"IdioVol"`
	IdioVolPct      *decimal.Decimal `json:"idio_vol_pct,omitempty" db:"IdioVolPct"`
	IdioVolPctDesk  *decimal.Decimal `json:"idio_vol_pct_desk,omitempty" db:"IdioVolPctDesk"`
	IdioVolPctFirm  *decimal.Decimal `json:"idio_vol_pct_firm,omitempty" db:"IdioVolPctFirm"`
	SEMV            *decimal.Decimal `json:"semv,omitempty" db:"SEMV"`
	GMVPctDesk      *decimal.Decimal `json:"gmv_pct_desk,omitempty" db:"GMVPctDesk"`
	GMVPctFirm      *decimal.Decimal `json:"gmv_pct_firm,omitempty" db:"GMVPctFirm"`
	ExpectedValueID *int64           `json:"expected_value_id,omitempty" db:"ExpectedValueId"`
}

// EarningsPreview is an analyst's pre-earnings write-up. The *ID fields point
// at pick-list answers and are NULL until the analyst fills them in.
type EarningsPreview struct {
	EarningsPreviewID int64      `json:"earnings_preview_id" db:"EarningsPreviewId"`
	BusDate           *time.Time `json:"bus_date,omitempty" db:"BusDate"`
	Symbol            string     `json:"symbol" db:"Symbol" validate:"required"`
	AnalystCode       string     `json:"analyst_code" db:"AnalystCode"`
	AnalystDesc       string     `json:"analyst_desc" db:"AnalystDesc"`
	Filename          string     `json:"filename" db:"Filename"`
	Status            string     `json:"status" db:"Status"`
	EarningsDate      *time.Time `json:"earnings_date,omitempty" db:"EarningsDate"`
	EarningsTime      string     `json:"earnings_time" db:"EarningsTime"`

	CurrentSEMVDesk     *decimal.Decimal `json:"current_semv_desk,omitempty" db:"CurrentSEMVDesk"`
	CurrentSEMVFund     *decimal.Decimal `json:"current_semv_fund,omitempty" db:"CurrentSEMVFund"`
	RecommendedSEMVDesk *decimal.Decimal `json:"recommended_semv_desk,omitempty" db:"RecommendedSEMVDesk"`
	RecommendationDesk  string           `json:"recommendation_desk" db:"RecommendationDesk"`

	ExpectedValueID    *int64           `json:"expected_value_id,omitempty" db:"ExpectedValueId"`
	ERLive             *decimal.Decimal `json:"er_live,omitempty" db:"ERLive"`
	EVLive             *decimal.Decimal `json:"ev_live,omitempty" db:"EVLive"`
	ExpectedValueIDFTE *int64           `json:"expected_value_id_fte,omitempty" db:"ExpectedValueIdFTE"`

	ThesisTypeID          *int   `json:"thesis_type_id,omitempty" db:"ThesisTypeId"`
	ThesisNotes           string `json:"thesis_notes" db:"ThesisNotes"`
	ConvictionLevelID     *int   `json:"conviction_level_id,omitempty" db:"ConvictionLevelId"`
	MgmtInteractionID     *int   `json:"mgmt_interaction_id,omitempty" db:"MgmtInteractionId"`
	NumbersExpectationsID *int   `json:"numbers_expectations_id,omitempty" db:"NumbersExpectationsId"`
	BigPictureNotes       string `json:"big_picture_notes" db:"BigPictureNotes"`
	PrintOutlookNotes     string `json:"print_outlook_notes" db:"PrintOutlookNotes"`
	ConsensusID           *int   `json:"consensus_id,omitempty" db:"ConsensusId"`
	ShortInterestID       *int   `json:"short_interest_id,omitempty" db:"ShortInterestId"`
	KeyRisksNotes         string `json:"key_risks_notes" db:"KeyRisksNotes"`
	ExitPositionNotes     string `json:"exit_position_notes" db:"ExitPositionNotes"`

	PctVolMoveIfWrong   string           `json:"pct_vol_move_if_wrong" db:"PctVolMoveIfWrong"`
	PctVolMoveIfWrongID *int             `json:"pct_vol_move_if_wrong_id,omitempty" db:"PctVolMoveIfWrongId"`
	OptionsImpliedVol   *decimal.Decimal `json:"options_implied_vol,omitempty" db:"OptionsImpliedVol"`
	PctSURP             *decimal.Decimal `json:"pct_surp,omitempty" db:"PctSURP"`

	MgmtCheckID                *int   `json:"mgmt_check_id,omitempty" db:"MgmtCheckId"`
	MgmtCheckNotes             string `json:"mgmt_check_notes" db:"MgmtCheckNotes"`
	DataCheckID                *int   `json:"data_check_id,omitempty" db:"DataCheckId"`
	DataCheckNotes             string `json:"data_check_notes" db:"DataCheckNotes"`
	ExpertCheckID              *int   `json:"expert_check_id,omitempty" db:"ExpertCheckId"`
	ExpertCheckNotes           string `json:"expert_check_notes" db:"ExpertCheckNotes"`
	CompsReadThruCheckID       *int   `json:"comps_read_thru_check_id,omitempty" db:"CompsReadThruCheckId"`
	CompsReadThruCheckNotes    string `json:"comps_read_thru_check_notes" db:"CompsReadThruCheckNotes"`
	ReviewTranscriptsID        *int   `json:"review_transcripts_id,omitempty" db:"ReviewTranscriptsId"`
	ReviewTranscriptsNotes     string `json:"review_transcripts_notes" db:"ReviewTranscriptsNotes"`
	ReviewSellSideID           *int   `json:"review_sell_side_id,omitempty" db:"ReviewSellSideId"`
	ReviewSellSideNotes        string `json:"review_sell_side_notes" db:"ReviewSellSideNotes"`
	TeamReviewID               *int   `json:"team_review_id,omitempty" db:"TeamReviewId"`
	TeamReviewNotes            string `json:"team_review_notes" db:"TeamReviewNotes"`
	SetupPostEarningsCallID    *int   `json:"setup_post_earnings_call_id,omitempty" db:"SetupPostEarningsCallId"`
	SetupPostEarningsCallNotes string `json:"setup_post_earnings_call_notes" db:"SetupPostEarningsCallNotes"`

	AdditionalNotes string     `json:"additional_notes" db:"AdditionalNotes"`
	PostTradeNotes  string     `json:"post_trade_notes" db:"PostTradeNotes"`
	Timestamp       *time.Time `json:"timestamp,omitempty" db:"ModifiedOn"`
}

// PreviewMetric is one key-metric estimate attached to an earnings preview.
type PreviewMetric struct {
	EarningsPreviewID int64            `json:"earnings_preview_id" db:"EarningsPreviewId"`
	KeyMetric         string           `json:"key_metric" db:"RefName"`
	KeyMetricOther    string           `json:"key_metric_other" db:"KeyMetricOther"`
	HoaEst            *decimal.Decimal `json:"hoa_est,omitempty" db:"HoaEst"`
	ConsensusEst      *decimal.Decimal `json:"consensus_est,omitempty" db:"ConsensusEst"`
}

// EarningsPreviewSubmission bundles everything SubmitEarningsPreview writes.
// ExpectedValue supplies the live EV and ER; either expected value id is only
// linked when non-zero.
type EarningsPreviewSubmission struct {
	Preview          EarningsPreview `json:"preview" validate:"required"`
	Metrics          []PreviewMetric `json:"metrics"`
	ExpectedValue    ExpectedValue   `json:"expected_value"`
	ExpectedValueFTE ExpectedValue   `json:"expected_value_fte"`
	AdditionalNotes  string          `json:"additional_notes"`
	Username         string          `json:"username" validate:"required"`
	Filename         string          `json:"filename"`
}

// StreetEvent is a scheduled corporate event from the street calendar.
type StreetEvent struct {
	StreetEventID int64      `json:"street_event_id" db:"StreetEventId"`
	SnapshotDate  *time.Time `json:"snapshot_date,omitempty" db:"SnapshotDate"`
	Symbol        string     `json:"symbol" db:"Symbol"`
	EventTypeCode string     `json:"event_type_code" db:"EventTypeCode"`
	EventTypeDesc string     `json:"event_type_desc" db:"EventTypeDesc"`
	EventDate     *time.Time `json:"event_date,omitempty" db:"EventDate"`
	EventTime     string     `json:"event_time" db:"EventTime"`
}
