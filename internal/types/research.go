package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// ViewOption is one entry of the long- or short-term view pick lists.
type ViewOption struct {
	ID        int             `json:"id" db:"Id"`
	Code      string          `json:"code" db:"Code"`
	Desc      string          `json:"desc" db:"Desc"`
	Weighting decimal.Decimal `json:"weighting" db:"Weighting"`
}

// IdeaAbstract is an analyst's current long/short view on a symbol.
type IdeaAbstract struct {
	IdeaAbstractID int    `json:"idea_abstract_id" db:"IdeaAbstractId"`
	DisplayName    string `json:"display_name" db:"DisplayName"`
	FirstName      string `json:"first_name" db:"FirstName"`
	LastName       string `json:"last_name" db:"LastName"`
	Username       string `json:"username" db:"Username"`
	Symbol         string `json:"symbol" db:"Symbol"`

	LongTermViewCode       string          `json:"long_term_view_code" db:"LongTermViewCode"`
	LongTermViewDesc       string          `json:"long_term_view_desc" db:"LongTermViewDesc"`
	LongTermViewWeighting  decimal.Decimal `json:"long_term_view_weighting" db:"LongTermViewWeighting"`
	ShortTermViewCode      string          `json:"short_term_view_code" db:"ShortTermViewCode"`
	ShortTermViewDesc      string          `json:"short_term_view_desc" db:"ShortTermViewDesc"`
	ShortTermViewWeighting decimal.Decimal `json:"short_term_view_weighting" db:"ShortTermViewWeighting"`
	LongTermThesis         string          `json:"long_term_thesis" db:"LongTermThesis"`
	ShortTermThesis        string          `json:"short_term_thesis" db:"ShortTermThesis"`

	IsHotIdea       bool `json:"is_hot_idea" db:"IsHotIdea"`
	IdeaAbstractAge int  `json:"idea_abstract_age" db:"IdeaAbstractAge"`

	// Populated by GetIdeaAbstractHistory only.
	BusDate *time.Time `json:"bus_date,omitempty" db:"BusDate"`
}

// LatestEVAndIdeaAbstract is the combined latest expected value and idea
// abstract snapshot per analyst and symbol. Numeric columns are NULL when the
// analyst has no expected value or no position.
type LatestEVAndIdeaAbstract struct {
	UserID            int    `json:"user_id" db:"UserId"`
	SecurityID        int    `json:"security_id" db:"SecurityId"`
	Desk              string `json:"desk" db:"Desk"`
	AnalystCode       string `json:"analyst_code" db:"AnalystCode"`
	AnalystDesc       string `json:"analyst_desc" db:"AnalystDesc"`
	Symbol            string `json:"symbol" db:"Symbol"`
	FullBloombergCode string `json:"full_bloomberg_code" db:"FullBloombergCode"`
	Direction         string `json:"direction" db:"Direction"`
	DirectionDesc     string `json:"direction_desc" db:"DirectionDesc"`

	ExpectedValueID *int             `json:"expected_value_id,omitempty" db:"ExpectedValueId"`
	ER              *decimal.Decimal `json:"er,omitempty" db:"ER"`
	EV              *decimal.Decimal `json:"ev,omitempty" db:"EV"`
	EVAge           *int             `json:"ev_age,omitempty" db:"EVAge"`
	IdeaAge         *int             `json:"idea_age,omitempty" db:"IdeaAge"`

	ShortTermViewCode         string `json:"short_term_view_code" db:"IdeaAbstractShortTermViewCode"`
	ShortTermViewDesc         string `json:"short_term_view_desc" db:"IdeaAbstractShortTermViewDesc"`
	LongTermViewCode          string `json:"long_term_view_code" db:"IdeaAbstractLongTermViewCode"`
	LongTermViewDesc          string `json:"long_term_view_desc" db:"IdeaAbstractLongTermViewDesc"`
	ShortTermThesis           string `json:"short_term_thesis" db:"IdeaAbstractShortTermThesis"`
	LongTermThesis            string `json:"long_term_thesis" db:"IdeaAbstractLongTermThesis"`
	IsHotIdea                 bool   `json:"is_hot_idea" db:"IsHotIdea"`
	HotIdeaAge                *int   `json:"hot_idea_age,omitempty" db:"HotIdeaAge"`
	PreviousShortTermViewCode string `json:"previous_short_term_view_code" db:"PreviousIdeaAbstractShortTermViewCode"`
	PreviousShortTermViewDesc string `json:"previous_short_term_view_desc" db:"PreviousIdeaAbstractShortTermViewDesc"`
	IsOppositeSide            bool   `json:"is_opposite_side" db:"IsOppositeSide"`

	PortfolioTimestamp *time.Time       `json:"portfolio_timestamp,omitempty" db:"PortfolioTimestamp"`
	SEMV               *decimal.Decimal `json:"semv,omitempty" db:"SEMV"`
	SEMVFund           *decimal.Decimal `json:"semv_fund,omitempty" db:"SEMVFund"`
	DollarIdio         *decimal.Decimal `json:"dollar_idio,omitempty" db:"DollarIdio"`
	DollarIdioFund     *decimal.Decimal `json:"dollar_idio_fund,omitempty" db:"DollarIdioFund"`

	ThesisID        *int       `json:"thesis_id,omitempty" db:"ThesisId"`
	ThesisCreatedOn *time.Time `json:"thesis_created_on,omitempty" db:"ThesisCreatedOn"`
	ThesisText      *string    `json:"thesis_text,omitempty" db:"ThesisText"`
}

// Idea is an item on the research idea list.
type Idea struct {
	IdeaID         int        `json:"idea_id" db:"IdeaId"`
	Assignee       string     `json:"assignee" db:"Assignee"`
	Analyst        string     `json:"analyst" db:"Analyst"`
	Symbol         string     `json:"symbol" db:"Symbol"`
	SecurityDesc   string     `json:"security_desc" db:"SecurityDesc"`
	IdeaStatusCode string     `json:"idea_status_code" db:"IdeaStatusCode"`
	IdeaSource     string     `json:"idea_source" db:"IdeaSource"`
	ModelCompleted bool       `json:"model_completed" db:"ModelCompleted"`
	Thesis         string     `json:"thesis" db:"Thesis"`
	Desk           string     `json:"desk" db:"Desk"`
	Sector         string     `json:"sector" db:"Sector"`
	DaysOnList     int        `json:"days_on_list" db:"DaysOnList"`
	CreatedOn      *time.Time `json:"created_on,omitempty" db:"CreatedOn"`
	ModifiedOn     *time.Time `json:"modified_on,omitempty" db:"ModifiedOn"`

	// Username is the portal user making a change; it is not a column.
	Username string `json:"username,omitempty" db:"-"`
}

// IdeaStatus is one entry of the idea status pick list.
type IdeaStatus struct {
	IdeaStatusID int    `json:"idea_status_id" db:"IdeaStatusId"`
	StatusCode   string `json:"status_code" db:"StatusCode"`
	StatusDesc   string `json:"status_desc" db:"StatusDesc"`
}

// HotIdea flags a symbol for short-term attention.
type HotIdea struct {
	IdeaAbstractShortTermViewCode string     `json:"short_term_view_code" db:"IdeaAbstractShortTermViewCode"`
	IdeaAbstractShortTermViewDesc string     `json:"short_term_view_desc" db:"IdeaAbstractShortTermViewDesc"`
	Username                      string     `json:"username" db:"Username"`
	Symbol                        string     `json:"symbol" db:"Symbol"`
	StartDate                     *time.Time `json:"start_date,omitempty" db:"StartDate"`
	EndDate                       *time.Time `json:"end_date,omitempty" db:"EndDate"`
	UserID                        int        `json:"user_id" db:"UserId"`
	SecurityID                    int        `json:"security_id" db:"SecurityId"`
	IdeaAbstractShortTermViewID   int        `json:"short_term_view_id" db:"IdeaAbstractShortTermViewId"`
	HotIdeaAge                    int        `json:"hot_idea_age" db:"HotIdeaAge"`
}

// ResearchEvent is a logged research interaction (call, meeting, note).
type ResearchEvent struct {
	ResearchEventID     int              `json:"research_event_id" db:"ResearchEventId"`
	EventDate           *time.Time       `json:"event_date,omitempty" db:"EventDate"`
	EventType           string           `json:"event_type" db:"EventType"`
	Author              string           `json:"author" db:"Author"`
	Company             string           `json:"company" db:"Company"`
	Contact             string           `json:"contact" db:"Contact"`
	ContactType         string           `json:"contact_type" db:"ContactType"`
	ExternalReferenceID string           `json:"external_reference_id" db:"ExternalReferenceId"`
	Symbol              string           `json:"symbol" db:"Symbol"`
	Title               string           `json:"title" db:"Title"`
	Tone                string           `json:"tone" db:"Tone"`
	HTMLString          string           `json:"html_string" db:"HtmlString"`
	ModifiedOn          *time.Time       `json:"modified_on,omitempty" db:"ModifiedOn"`
	SentimentScore      *decimal.Decimal `json:"sentiment_score,omitempty" db:"SentimentScore"`
	AttachmentName1     *string          `json:"attachment_name_1,omitempty" db:"AttachmentName1"`
	AttachmentName2     *string          `json:"attachment_name_2,omitempty" db:"AttachmentName2"`
}

// AnalystIdea is one analyst's position-aware idea row as served by the idea
// list, the alert feed, the upcoming-earnings list and the stale-idea report.
// Each feed fills a different subset of columns; the rest stay at their zero
// value or nil.
type AnalystIdea struct {
	AsOfTimestamp     *time.Time `json:"as_of_timestamp,omitempty" db:"AsOfTimestamp"`
	UserID            int        `json:"user_id" db:"UserId"`
	SecurityID        int        `json:"security_id" db:"SecurityId"`
	Desk              string     `json:"desk" db:"Desk"`
	Sector            string     `json:"sector" db:"Sector"`
	AnalystCode       string     `json:"analyst_code" db:"AnalystCode"`
	AnalystDesc       string     `json:"analyst_desc" db:"AnalystDesc"`
	Symbol            string     `json:"symbol" db:"Symbol"`
	FullBloombergCode string     `json:"full_bloomberg_code" db:"FullBloombergCode"`
	Direction         string     `json:"direction" db:"Direction"`
	DirectionDesc     string     `json:"direction_desc" db:"DirectionDesc"`

	ExpectedValueID *int             `json:"expected_value_id,omitempty" db:"ExpectedValueId"`
	EV              *decimal.Decimal `json:"ev,omitempty" db:"EV"`
	ER              *decimal.Decimal `json:"er,omitempty" db:"ER"`
	EVAge           *int             `json:"ev_age,omitempty" db:"EVAge"`
	IdeaAge         *int             `json:"idea_age,omitempty" db:"IdeaAge"`

	ShortTermViewCode         string `json:"short_term_view_code" db:"IdeaAbstractShortTermViewCode"`
	ShortTermViewDesc         string `json:"short_term_view_desc" db:"IdeaAbstractShortTermViewDesc"`
	LongTermViewCode          string `json:"long_term_view_code" db:"IdeaAbstractLongTermViewCode"`
	LongTermViewDesc          string `json:"long_term_view_desc" db:"IdeaAbstractLongTermViewDesc"`
	ShortTermThesis           string `json:"short_term_thesis" db:"IdeaAbstractShortTermThesis"`
	LongTermThesis            string `json:"long_term_thesis" db:"IdeaAbstractLongTermThesis"`
	PreviousShortTermViewCode string `json:"previous_short_term_view_code" db:"PreviousIdeaAbstractShortTermViewCode"`
	PreviousShortTermViewDesc string `json:"previous_short_term_view_desc" db:"PreviousIdeaAbstractShortTermViewDesc"`

	IsHotIdea      bool `json:"is_hot_idea" db:"IsHotIdea"`
	HotIdeaAge     *int `json:"hot_idea_age,omitempty" db:"HotIdeaAge"`
	IsOppositeSide bool `json:"is_opposite_side" db:"IsOppositeSide"`
	IdeaConflict   bool `json:"idea_conflict" db:"IdeaConflict"`
	IsSnoozed      bool `json:"is_snoozed" db:"IsSnoozed"`

	PortfolioTimestamp *time.Time       `json:"portfolio_timestamp,omitempty" db:"PortfolioTimestamp"`
	SEMV               *decimal.Decimal `json:"semv,omitempty" db:"SEMV"`
	SEMVFund           *decimal.Decimal `json:"semv_fund,omitempty" db:"SEMVFund"`
	DollarIdio         *decimal.Decimal `json:"dollar_idio,omitempty" db:"DollarIdio"`
	DollarIdioFund     *decimal.Decimal `json:"dollar_idio_fund,omitempty" db:"DollarIdioFund"`

	EarningsThesisFilename *string    `json:"earnings_thesis_filename,omitempty" db:"EarningsFilename"`
	ThesisID               *int       `json:"thesis_id,omitempty" db:"ThesisId"`
	ThesisCreatedOn        *time.Time `json:"thesis_created_on,omitempty" db:"ThesisCreatedOn"`
	ThesisText             *string    `json:"thesis_text,omitempty" db:"ThesisText"`

	// BusDate is reported by the stale-idea feed in place of a portfolio
	// timestamp.
	BusDate *time.Time `json:"bus_date,omitempty" db:"BusDate"`
}
