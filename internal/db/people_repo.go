package db

import (
	"context"

	"holocene/internal/types"
)

// PeopleRepository covers portal users, their custom settings and tweets.
type PeopleRepository struct {
	exec Executor
}

// NewPeopleRepository creates a repository over the Holocene executor.
func NewPeopleRepository(exec Executor) *PeopleRepository {
	return &PeopleRepository{exec: exec}
}

// GetAnalysts returns the analyst list.
func (r *PeopleRepository) GetAnalysts(ctx context.Context) ([]types.User, error) {
	return queryList[types.User](ctx, r.exec, "GetAnalysts", Proc("app.GetAnalysts"), nil)
}

// GetUsers returns every portal user.
func (r *PeopleRepository) GetUsers(ctx context.Context) ([]types.User, error) {
	return queryList[types.User](ctx, r.exec, "GetUsers", Proc("app.GetUsers"), nil)
}

// GetUserCustomSettings returns the custom settings in one field group.
func (r *PeopleRepository) GetUserCustomSettings(ctx context.Context, fieldGroup string) ([]types.UserCustomSetting, error) {
	params := Params{}.Add("FieldGroup", fieldGroup)
	return queryList[types.UserCustomSetting](ctx, r.exec, "GetUserCustomSettings",
		Proc("app.GetUserCustomSettings"), params)
}

// GetUserCustomSetting narrows the settings lookup to one field and its values.
func (r *PeopleRepository) GetUserCustomSetting(ctx context.Context, fieldGroup, fieldName, value1, value2, value3 string) ([]types.UserCustomSetting, error) {
	params := Params{}.
		Add("FieldGroup", fieldGroup).
		Add("FieldName", fieldName).
		Add("FieldValue1", value1).
		Add("FieldValue2", value2).
		Add("FieldValue3", value3)
	return queryList[types.UserCustomSetting](ctx, r.exec, "GetUserCustomSetting",
		Proc("app.GetUserCustomSettings"), params)
}

// UpsertUserCustomSetting stores a setting for setting.Username and returns
// the value the procedure selects.
func (r *PeopleRepository) UpsertUserCustomSetting(ctx context.Context, setting types.UserCustomSetting) (int64, error) {
	params := Params{}.
		Add("Username", setting.Username).
		Add("FieldGroup", setting.FieldGroup).
		Add("FieldName", setting.FieldName).
		Add("FieldValue1", setting.FieldValue1).
		Add("FieldValue2", setting.FieldValue2).
		Add("FieldValue3", setting.FieldValue3)
	return scalarID(ctx, r.exec, "UpsertUserCustomSetting", Proc("app.UpsertUserCustomSetting"), params, nil)
}

// GetTweets returns tweets posted by username, narrowed by tweetID.
func (r *PeopleRepository) GetTweets(ctx context.Context, username string, tweetID int) ([]types.Tweet, error) {
	params := Params{}.
		Add("Username", username).
		Add("TweetId", tweetID)
	return queryList[types.Tweet](ctx, r.exec, "GetTweets", Proc("core.GetTweets"), params)
}

// InsertTweet records a tweet and returns its id.
func (r *PeopleRepository) InsertTweet(ctx context.Context, t types.Tweet) (int64, error) {
	params := Params{}.
		Add("Username", t.Username).
		Add("Tweet", t.Message).
		Add("Hashtags", t.Hashtags).
		Add("Timestamp", t.Timestamp)
	return scalarID(ctx, r.exec, "InsertTweet", Proc("core.InsertTweet"), params, nil)
}

// UpsertTweet edits an existing tweet, or inserts when TweetID is zero.
func (r *PeopleRepository) UpsertTweet(ctx context.Context, t types.Tweet) error {
	params := Params{}.
		Add("TweetId", t.TweetID).
		Add("Username", t.Username).
		Add("Tweet", t.Message).
		Add("Hashtags", t.Hashtags).
		Add("Timestamp", t.Timestamp)
	_, err := execCmd(ctx, r.exec, "UpsertTweet", Proc("core.UpsertTweet"), params)
	return err
}
