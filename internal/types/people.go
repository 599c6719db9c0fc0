package types

import "time"

// User is a portal user. GetAnalysts fills IsPM; GetUsers fills the
// reporting-line fields.
type User struct {
	UserID                int    `json:"user_id" db:"UserId"`
	Username              string `json:"username" db:"Username"`
	DisplayName           string `json:"display_name" db:"DisplayName"`
	FirstName             string `json:"first_name" db:"FirstName"`
	LastName              string `json:"last_name" db:"LastName"`
	EmailAddress          string `json:"email_address" db:"EmailAddress"`
	IsAnalyst             bool   `json:"is_analyst" db:"IsAnalyst"`
	IsPM                  bool   `json:"is_pm" db:"IsPM"`
	IsActive              bool   `json:"is_active" db:"IsActive"`
	Desk                  string `json:"desk" db:"Desk"`
	Sector                string `json:"sector" db:"Sector"`
	ReportsToDisplayName  string `json:"reports_to_display_name,omitempty" db:"ReportsToDisplayName"`
	ReportsToEmailAddress string `json:"reports_to_email_address,omitempty" db:"ReportsToEmailAddress"`
}

// UserCustomSetting is a per-user key/value preference grouped by FieldGroup.
type UserCustomSetting struct {
	UserID      int        `json:"user_id" db:"UserId"`
	Username    string     `json:"username" db:"Username" validate:"required"`
	DisplayName string     `json:"display_name" db:"DisplayName"`
	FieldGroup  string     `json:"field_group" db:"FieldGroup" validate:"required"`
	FieldName   string     `json:"field_name" db:"FieldName" validate:"required"`
	FieldValue1 string     `json:"field_value_1" db:"FieldValue1"`
	FieldValue2 string     `json:"field_value_2" db:"FieldValue2"`
	FieldValue3 string     `json:"field_value_3" db:"FieldValue3"`
	ModifiedOn  *time.Time `json:"modified_on,omitempty" db:"ModifiedOn"`
}

// Tweet is a short internal market note.
type Tweet struct {
	TweetID         int        `json:"tweet_id" db:"TweetId"`
	Timestamp       time.Time  `json:"timestamp" db:"Timestamp"`
	Message         string     `json:"message" db:"Tweet" validate:"required"`
	Hashtags        string     `json:"hashtags" db:"Hashtags"`
	Username        string     `json:"username" db:"Username" validate:"required"`
	UserDisplayName string     `json:"user_display_name" db:"UserDisplayName"`
	EmailAddress    string     `json:"email_address" db:"EmailAddress"`
	ExpirationDate  *time.Time `json:"expiration_date,omitempty" db:"ExpirationDate"`
}
