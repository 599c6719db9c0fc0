package types

import "time"

// IdeaEngineStatus is one entry of the idea engine status pick list.
type IdeaEngineStatus struct {
	IdeaEngineStatusID int    `json:"idea_engine_status_id" db:"IdeaEngineStatusId"`
	Code               string `json:"code" db:"Code"`
	Desc               string `json:"desc" db:"Desc"`
	DisplayOrder       int    `json:"display_order" db:"DisplayOrder"`
	IsActive           bool   `json:"is_active" db:"IsActive"`
}

// IdeaEngineSize is one entry of the idea engine sizing pick list.
type IdeaEngineSize struct {
	IdeaEngineSizeID int    `json:"idea_engine_size_id" db:"IdeaEngineSizeId"`
	Code             string `json:"code" db:"Code"`
	Desc             string `json:"desc" db:"Desc"`
	DisplayOrder     int    `json:"display_order" db:"DisplayOrder"`
	IsActive         bool   `json:"is_active" db:"IsActive"`
}

// IdeaEngine is a research work item raised against a symbol or a topic and
// assigned to an analyst.
type IdeaEngine struct {
	IdeaEngineID  int64      `json:"idea_engine_id" db:"IdeaEngineId"`
	Username      string     `json:"username" db:"Username"`
	DisplayName   string     `json:"display_name" db:"DisplayName"`
	SymbolOrTopic string     `json:"symbol_or_topic" db:"SymbolOrTopic"`
	Topic         string     `json:"topic" db:"Topic"`
	Symbol        string     `json:"symbol" db:"Symbol"`
	BusDate       *time.Time `json:"bus_date,omitempty" db:"BusDate"`
	Thesis        string     `json:"thesis" db:"Thesis"`

	ActionItem1 string `json:"action_item_1" db:"ActionItem1"`
	ActionItem2 string `json:"action_item_2" db:"ActionItem2"`
	ActionItem3 string `json:"action_item_3" db:"ActionItem3"`
	ActionItem4 string `json:"action_item_4" db:"ActionItem4"`
	ActionItem5 string `json:"action_item_5" db:"ActionItem5"`
	ActionItem6 string `json:"action_item_6" db:"ActionItem6"`

	AssignBusDate         *time.Time `json:"assign_bus_date,omitempty" db:"AssignBusDate"`
	AssignedByUsername    string     `json:"assigned_by_username" db:"AssignedByUsername"`
	AssignedByDisplayName string     `json:"assigned_by_display_name" db:"AssignedByDisplayName"`

	SizeCode        string `json:"size_code" db:"SizeCode"`
	SizeDesc        string `json:"size_desc" db:"SizeDesc"`
	StatusCode      string `json:"status_code" db:"StatusCode"`
	StatusDesc      string `json:"status_desc" db:"StatusDesc"`
	StatusShortDesc string `json:"status_short_desc" db:"StatusShortDesc"`

	Conclusion1 string `json:"conclusion_1" db:"Conclusion1"`
	Conclusion2 string `json:"conclusion_2" db:"Conclusion2"`
	Conclusion3 string `json:"conclusion_3" db:"Conclusion3"`

	Sector                 string `json:"sector" db:"Sector"`
	Desk                   string `json:"desk" db:"Desk"`
	DeskShort              string `json:"desk_short" db:"DeskShort"`
	InvestmentType         string `json:"investment_type" db:"InvestmentType"`
	InvestmentTypeDesc     string `json:"investment_type_desc" db:"InvestmentTypeDesc"`
	IdeaRecommendation     string `json:"idea_recommendation" db:"IdeaRecommendation"`
	IdeaRecommendationDesc string `json:"idea_recommendation_desc" db:"IdeaRecommendationDesc"`
}

// IdeaEngineFilter narrows GetIdeaEngines. Blank fields are not sent.
type IdeaEngineFilter struct {
	Symbol       string
	Topic        string
	Username     string
	RequestType  string
	IdeaEngineID int64
}
