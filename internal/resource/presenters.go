package resource

import (
	"encoding/json"
	"strconv"

	"github.com/octofit/dashboard/internal/models"
)

// Badge colors
const (
	ColorPrimary   = "primary"
	ColorSecondary = "secondary"
	ColorSuccess   = "success"
	ColorInfo      = "info"
	ColorWarning   = "warning"
	ColorDanger    = "danger"
)

// Field-fallback precedence lists. Each list is tried in order and ends in the
// literal default passed alongside it.
var (
	idKeys            = []string{"id", "_id"}
	userNameKeys      = []string{"user_name", "user"}
	teamNameKeys      = []string{"team_name", "team"}
	pointsKeys        = []string{"total_points", "points"}
	activityCountKeys = []string{"activity_count", "activities"}
	workoutNameKeys   = []string{"name", "title"}
	workoutTypeKeys   = []string{"workout_type", "category"}
	difficultyKeys    = []string{"difficulty_level", "difficulty"}
)

// Defaults used when no candidate field is present
const (
	DefaultTeam   = "N/A"
	DefaultPeriod = "Overall"
)

// UserView is a user record passed through for display
type UserView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Team   string `json:"team"`
	Joined string `json:"joined"`
}

// PresentUser maps a raw user record
func PresentUser(rec models.Record, _ int) UserView {
	return UserView{
		ID:     TextOr(rec, "", idKeys...),
		Name:   TextOr(rec, "", "name", "username"),
		Email:  TextOr(rec, "", "email"),
		Team:   TextOr(rec, "", teamNameKeys...),
		Joined: DateOr(rec, "", "created_at"),
	}
}

// ActivityView is a logged activity prepared for display
type ActivityView struct {
	ID           string `json:"id"`
	UserName     string `json:"userName"`
	ActivityType string `json:"activityType"`
	Duration     string `json:"duration"`
	Distance     string `json:"distance"`
	Calories     string `json:"caloriesBurned"`
	Date         string `json:"date"`
}

// PresentActivity maps a raw activity record
func PresentActivity(rec models.Record, _ int) ActivityView {
	return ActivityView{
		ID:           TextOr(rec, "", idKeys...),
		UserName:     TextOr(rec, "", userNameKeys...),
		ActivityType: TextOr(rec, "", "activity_type"),
		Duration:     TextOr(rec, "", "duration"),
		Distance:     TextOr(rec, "", "distance"),
		Calories:     TextOr(rec, "", "calories_burned"),
		Date:         DateOr(rec, "", "date"),
	}
}

// TeamView is a team prepared for display
type TeamView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MemberCount int    `json:"memberCount"`
	Created     string `json:"createdAt"`
}

// PresentTeam maps a raw team record
func PresentTeam(rec models.Record, _ int) TeamView {
	return TeamView{
		ID:          TextOr(rec, "", idKeys...),
		Name:        TextOr(rec, "", "name"),
		Description: TextOr(rec, "", "description"),
		MemberCount: MemberCount(rec),
		Created:     DateOr(rec, "", "created_at"),
	}
}

// MemberCount is member_count, else the length of members, else 0.
// A present member_count always wins, even when it is not a count.
func MemberCount(rec models.Record) int {
	if _, ok := Lookup(rec, "member_count"); ok {
		return CountOr(rec, 0, "member_count")
	}
	if n, ok := ListLen(rec, "members"); ok {
		return n
	}
	return 0
}

// LeaderboardView is a ranked leaderboard entry
type LeaderboardView struct {
	Key           string      `json:"key"`
	Rank          int         `json:"rank"`
	Medal         string      `json:"medal,omitempty"`
	User          string      `json:"user"`
	Team          string      `json:"team"`
	Points        json.Number `json:"points"`
	ActivityCount int         `json:"activityCount"`
	Period        string      `json:"period"`
}

// PresentLeaderboard maps a raw entry. Rank is index+1: entries are expected
// in server order, already sorted.
func PresentLeaderboard(rec models.Record, index int) LeaderboardView {
	rank := index + 1
	return LeaderboardView{
		Key:           TextOr(rec, strconv.Itoa(index), idKeys...),
		Rank:          rank,
		Medal:         Medal(rank),
		User:          TextOr(rec, "", userNameKeys...),
		Team:          TextOr(rec, DefaultTeam, teamNameKeys...),
		Points:        NumberOr(rec, "0", pointsKeys...),
		ActivityCount: CountOr(rec, 0, activityCountKeys...),
		Period:        TextOr(rec, DefaultPeriod, "period"),
	}
}

// Medal returns the medal for podium ranks, empty otherwise
func Medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return ""
	}
}

// WorkoutView is a suggested workout card
type WorkoutView struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	WorkoutType      string `json:"workoutType"`
	Duration         string `json:"duration"`
	Difficulty       string `json:"difficultyLevel"`
	DifficultyColor  string `json:"difficultyColor"`
	CaloriesEstimate string `json:"caloriesEstimate"`
}

// PresentWorkout maps a raw workout record
func PresentWorkout(rec models.Record, _ int) WorkoutView {
	difficulty := TextOr(rec, "", difficultyKeys...)
	return WorkoutView{
		ID:               TextOr(rec, "", idKeys...),
		Name:             TextOr(rec, "", workoutNameKeys...),
		Description:      TextOr(rec, "", "description"),
		WorkoutType:      TextOr(rec, "", workoutTypeKeys...),
		Duration:         TextOr(rec, "", "duration"),
		Difficulty:       difficulty,
		DifficultyColor:  DifficultyColor(difficulty),
		CaloriesEstimate: TextOr(rec, "", "calories_estimate"),
	}
}

// DifficultyColor maps a difficulty level to its badge color
func DifficultyColor(level string) string {
	switch level {
	case "Beginner":
		return ColorSuccess
	case "Intermediate":
		return ColorWarning
	case "Advanced":
		return ColorDanger
	default:
		return ColorSecondary
	}
}
