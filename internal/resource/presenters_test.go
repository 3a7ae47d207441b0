package resource

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/octofit/dashboard/internal/models"
	"github.com/octofit/dashboard/internal/normalize"
)

// decodeRecords decodes body the way the loader does, keeping numbers exact
func decodeRecords(t *testing.T, body string) models.Collection {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	dec.UseNumber()
	var payload any
	require.NoError(t, dec.Decode(&payload))
	return normalize.Normalize(payload)
}

func TestLeaderboardScenario(t *testing.T) {
	records := decodeRecords(t, `{"results":[{"id":1,"user":"a","total_points":5}]}`)
	p := LeaderboardDescriptor.Render(records)

	require.Len(t, p.Records, 1)
	entry := p.Records[0].(LeaderboardView)
	require.Equal(t, 1, entry.Rank)
	require.Equal(t, "🥇", entry.Medal)
	require.Equal(t, json.Number("5"), entry.Points)
	require.Equal(t, "a", entry.User)
	require.Equal(t, DefaultTeam, entry.Team)
	require.Equal(t, DefaultPeriod, entry.Period)
	require.Equal(t, 0, entry.ActivityCount)
	require.Equal(t, "1", entry.Key)

	require.True(t, p.Rows[0].Highlight)
	require.Equal(t, "🥇 1", p.Rows[0].Cells[0].Text)
}

func TestLeaderboardRankIgnoresID(t *testing.T) {
	records := decodeRecords(t, `[{"id":9},{"id":3},{"id":1},{"id":7},{}]`)
	p := LeaderboardDescriptor.Render(records)

	wantMedals := []string{"🥇", "🥈", "🥉", "", ""}
	for i, raw := range p.Records {
		entry := raw.(LeaderboardView)
		require.Equal(t, i+1, entry.Rank)
		require.Equal(t, wantMedals[i], entry.Medal)
		require.Equal(t, entry.Rank <= 3, p.Rows[i].Highlight)
	}
	require.Equal(t, "4", p.Rows[3].Cells[0].Text)
	require.Equal(t, "4", p.Records[4].(LeaderboardView).Key, "missing id falls back to index")
}

func TestMedal(t *testing.T) {
	require.Equal(t, "🥇", Medal(1))
	require.Equal(t, "🥈", Medal(2))
	require.Equal(t, "🥉", Medal(3))
	require.Empty(t, Medal(4))
	require.Empty(t, Medal(0))
}

func TestLeaderboardFallbackPrecedence(t *testing.T) {
	rec := models.Record{
		"user_name":      "Ada",
		"user":           "ada42",
		"team_name":      "Red",
		"team":           "team-1",
		"total_points":   json.Number("10"),
		"points":         json.Number("99"),
		"activity_count": json.Number("4"),
		"activities":     json.Number("8"),
		"period":         "Weekly",
	}
	e := PresentLeaderboard(rec, 0)
	require.Equal(t, "Ada", e.User)
	require.Equal(t, "Red", e.Team)
	require.Equal(t, json.Number("10"), e.Points)
	require.Equal(t, 4, e.ActivityCount)
	require.Equal(t, "Weekly", e.Period)

	alt := PresentLeaderboard(models.Record{"user": "ada42", "team": "team-1", "points": json.Number("99"), "activities": json.Number("8")}, 5)
	require.Equal(t, "ada42", alt.User)
	require.Equal(t, "team-1", alt.Team)
	require.Equal(t, json.Number("99"), alt.Points)
	require.Equal(t, 8, alt.ActivityCount)
	require.Equal(t, 6, alt.Rank)
}

func TestZeroCountsAsPresent(t *testing.T) {
	e := PresentLeaderboard(models.Record{"total_points": json.Number("0"), "points": json.Number("7")}, 0)
	require.Equal(t, json.Number("0"), e.Points)

	e = PresentLeaderboard(models.Record{"total_points": nil, "points": json.Number("7")}, 0)
	require.Equal(t, json.Number("7"), e.Points, "null is treated as absent")
}

func TestPresentPrimaryFieldWinsEvenWhenNotNumeric(t *testing.T) {
	records := decodeRecords(t, `[
		{"total_points":"N/A","points":5,"activity_count":2.5,"activities":9},
		{"total_points":"42","points":5,"activity_count":"3","activities":9}
	]`)

	e := PresentLeaderboard(models.AsRecord(records[0]), 0)
	require.Equal(t, json.Number("0"), e.Points, "non-numeric primary falls back to the default, not to points")
	require.Equal(t, 0, e.ActivityCount, "fractional primary falls back to the default, not to activities")

	e = PresentLeaderboard(models.AsRecord(records[1]), 1)
	require.Equal(t, json.Number("42"), e.Points)
	require.Equal(t, 3, e.ActivityCount)

	teams := decodeRecords(t, `[
		{"member_count":"many","members":["a"]},
		{"member_count":-1,"members":["a","b"]},
		{"member_count":null,"members":["a","b"]}
	]`)
	require.Equal(t, 0, MemberCount(models.AsRecord(teams[0])))
	require.Equal(t, -1, MemberCount(models.AsRecord(teams[1])))
	require.Equal(t, 2, MemberCount(models.AsRecord(teams[2])), "null member_count is absent")
}

func TestCountOrRejectsOutOfRange(t *testing.T) {
	records := decodeRecords(t, `[{"activity_count":1e30,"activities":4},{"activity_count":1e300},{"activity_count":7.0}]`)

	require.Equal(t, 0, CountOr(models.AsRecord(records[0]), 0, activityCountKeys...))
	require.Equal(t, -1, CountOr(models.AsRecord(records[1]), -1, activityCountKeys...))
	require.Equal(t, 7, CountOr(models.AsRecord(records[2]), 0, activityCountKeys...))
}

func TestDifficultyColorIsTotal(t *testing.T) {
	cases := map[string]string{
		"Beginner":     ColorSuccess,
		"Intermediate": ColorWarning,
		"Advanced":     ColorDanger,
		"Expert":       ColorSecondary,
		"beginner":     ColorSecondary,
		"":             ColorSecondary,
	}
	for level, want := range cases {
		require.Equal(t, want, DifficultyColor(level), level)
	}

	w := PresentWorkout(models.Record{"name": "Core"}, 0)
	require.Equal(t, ColorSecondary, w.DifficultyColor)

	w = PresentWorkout(models.Record{"title": "Legs", "difficulty": "Advanced", "category": "strength"}, 0)
	require.Equal(t, "Legs", w.Name)
	require.Equal(t, ColorDanger, w.DifficultyColor)
	require.Equal(t, "strength", w.WorkoutType)
}

func TestTeamMemberCount(t *testing.T) {
	records := decodeRecords(t, `[
		{"id":2,"name":"Red","members":["a","b"]},
		{"id":3,"name":"Blue","member_count":5,"members":["a"]},
		{"id":4,"name":"Green"},
		{"id":5,"name":"Gold","member_count":0,"members":["a","b","c"]}
	]`)
	p := TeamDescriptor.Render(records)

	counts := make([]int, len(p.Records))
	for i, r := range p.Records {
		counts[i] = r.(TeamView).MemberCount
	}
	require.Equal(t, []int{2, 5, 0, 0}, counts)
	require.Equal(t, "2", p.Rows[0].Cells[3].Text)
}

func TestActivityUserFallback(t *testing.T) {
	a := PresentActivity(models.Record{"user": "u1", "date": "2024-03-05T10:00:00Z"}, 0)
	require.Equal(t, "u1", a.UserName)
	require.Equal(t, "2024-03-05", a.Date)

	a = PresentActivity(models.Record{"user": "u1", "user_name": "Una", "date": "yesterday"}, 0)
	require.Equal(t, "Una", a.UserName)
	require.Equal(t, "yesterday", a.Date)
}

func TestUserPassThrough(t *testing.T) {
	u := PresentUser(models.Record{"_id": "abc", "name": "Ada", "email": "ada@example.com", "team": "Red", "created_at": "2024-01-02"}, 0)
	require.Equal(t, UserView{ID: "abc", Name: "Ada", Email: "ada@example.com", Team: "Red", Joined: "2024-01-02"}, u)
}

func TestNonObjectRecordsPresentEmpty(t *testing.T) {
	p := ActivityDescriptor.Render(models.Collection{"oops", json.Number("3")})
	require.Len(t, p.Rows, 2)
	require.Equal(t, ActivityView{}, p.Records[0])
	require.Equal(t, "1", p.Rows[1].Key)
}

func TestWorkoutCards(t *testing.T) {
	records := decodeRecords(t, `[{"id":1,"name":"HIIT","description":"Fast","workout_type":"cardio","duration":30,"difficulty_level":"Intermediate","calories_estimate":300}]`)
	p := WorkoutDescriptor.Render(records)

	row := p.Rows[0]
	require.Equal(t, "HIIT", row.Title)
	require.Equal(t, "Fast", row.Subtitle)
	require.Equal(t, []string{"Type", "Duration", "Difficulty", "Calories"}, p.Headers)
	require.Equal(t, "30 min", row.Cells[1].Text)
	require.Equal(t, ColorWarning, row.Cells[2].Badge)
	require.Equal(t, "300 kcal", row.Cells[3].Text)
}
