package resource

import (
	"strconv"
	"strings"
)

func fixed[D any](color string) func(D) string {
	return func(D) string { return color }
}

func withUnit(v, unit string) string {
	if v == "" {
		return ""
	}
	return v + " " + unit
}

// UserDescriptor lists registered users
var UserDescriptor = Descriptor[UserView]{
	Meta: Meta{
		Kind:        Users,
		DisplayName: "Users",
		Noun:        "users",
		Tagline:     "View and manage user profiles",
		EmptyNotice: "No users found.",
		TotalLabel:  "Total users",
		Endpoint:    "/api/users/",
		Layout:      LayoutTable,
	},
	Present: PresentUser,
	Key:     func(u UserView, i int) string { return keyOr(u.ID, i) },
	Columns: []Column[UserView]{
		{Label: "#", Value: func(u UserView) string { return u.ID }, Badge: fixed[UserView](ColorSecondary)},
		{Label: "Name", Value: func(u UserView) string { return u.Name }, Strong: true},
		{Label: "Email", Value: func(u UserView) string { return u.Email }},
		{Label: "Team", Value: func(u UserView) string { return u.Team }},
		{Label: "Joined", Value: func(u UserView) string { return u.Joined }},
	},
}

// ActivityDescriptor lists logged activities
var ActivityDescriptor = Descriptor[ActivityView]{
	Meta: Meta{
		Kind:        Activities,
		DisplayName: "Activities",
		Noun:        "activities",
		Tagline:     "Track your fitness activities",
		EmptyNotice: "No activities found.",
		TotalLabel:  "Total activities",
		Endpoint:    "/api/activities/",
		Layout:      LayoutTable,
	},
	Present: PresentActivity,
	Key:     func(a ActivityView, i int) string { return keyOr(a.ID, i) },
	Columns: []Column[ActivityView]{
		{Label: "#", Value: func(a ActivityView) string { return a.ID }, Badge: fixed[ActivityView](ColorSecondary)},
		{Label: "User", Value: func(a ActivityView) string { return a.UserName }, Strong: true},
		{Label: "Activity Type", Value: func(a ActivityView) string { return a.ActivityType }, Badge: fixed[ActivityView](ColorInfo)},
		{Label: "Duration (min)", Value: func(a ActivityView) string { return a.Duration }},
		{Label: "Distance (km)", Value: func(a ActivityView) string { return a.Distance }},
		{Label: "Calories", Value: func(a ActivityView) string { return a.Calories }, Badge: fixed[ActivityView](ColorSuccess)},
		{Label: "Date", Value: func(a ActivityView) string { return a.Date }},
	},
}

// TeamDescriptor lists teams
var TeamDescriptor = Descriptor[TeamView]{
	Meta: Meta{
		Kind:        Teams,
		DisplayName: "Teams",
		Noun:        "teams",
		Tagline:     "Create and join fitness teams",
		EmptyNotice: "No teams found.",
		TotalLabel:  "Total teams",
		Endpoint:    "/api/teams/",
		Layout:      LayoutTable,
	},
	Present: PresentTeam,
	Key:     func(t TeamView, i int) string { return keyOr(t.ID, i) },
	Columns: []Column[TeamView]{
		{Label: "#", Value: func(t TeamView) string { return t.ID }, Badge: fixed[TeamView](ColorSecondary)},
		{Label: "Name", Value: func(t TeamView) string { return t.Name }, Strong: true},
		{Label: "Description", Value: func(t TeamView) string { return t.Description }},
		{Label: "Members", Value: func(t TeamView) string { return strconv.Itoa(t.MemberCount) }, Badge: fixed[TeamView](ColorPrimary)},
		{Label: "Created", Value: func(t TeamView) string { return t.Created }},
	},
}

// LeaderboardDescriptor ranks entries in server order
var LeaderboardDescriptor = Descriptor[LeaderboardView]{
	Meta: Meta{
		Kind:        Leaderboard,
		DisplayName: "Leaderboard",
		Noun:        "leaderboard",
		Tagline:     "See who's leading the competition",
		EmptyNotice: "No leaderboard entries found.",
		TotalLabel:  "Total entries",
		Endpoint:    "/api/leaderboard/",
		Layout:      LayoutTable,
		Icon:        "🏆",
	},
	Present: PresentLeaderboard,
	Key:     func(e LeaderboardView, _ int) string { return e.Key },
	Columns: []Column[LeaderboardView]{
		{Label: "Rank", Value: func(e LeaderboardView) string {
			return strings.TrimSpace(e.Medal + " " + strconv.Itoa(e.Rank))
		}, Strong: true},
		{Label: "User", Value: func(e LeaderboardView) string { return e.User }, Strong: true},
		{Label: "Team", Value: func(e LeaderboardView) string { return e.Team }},
		{Label: "Points", Value: func(e LeaderboardView) string { return e.Points.String() }, Badge: fixed[LeaderboardView](ColorSuccess)},
		{Label: "Activities", Value: func(e LeaderboardView) string { return strconv.Itoa(e.ActivityCount) }, Badge: fixed[LeaderboardView](ColorInfo)},
		{Label: "Period", Value: func(e LeaderboardView) string { return e.Period }},
	},
	Highlight: func(e LeaderboardView) bool { return e.Rank <= 3 },
}

// WorkoutDescriptor shows workout suggestions as cards
var WorkoutDescriptor = Descriptor[WorkoutView]{
	Meta: Meta{
		Kind:        Workouts,
		DisplayName: "Workout Suggestions",
		Noun:        "workouts",
		Tagline:     "Personalized workout plans to achieve your fitness goals",
		EmptyNotice: "No workout suggestions available.",
		TotalLabel:  "Total workout plans",
		Endpoint:    "/api/workouts/",
		Layout:      LayoutCards,
		Icon:        "💪",
	},
	Present:  PresentWorkout,
	Key:      func(w WorkoutView, i int) string { return keyOr(w.ID, i) },
	Title:    func(w WorkoutView) string { return w.Name },
	Subtitle: func(w WorkoutView) string { return w.Description },
	Columns: []Column[WorkoutView]{
		{Label: "Type", Value: func(w WorkoutView) string { return w.WorkoutType }, Badge: fixed[WorkoutView](ColorInfo)},
		{Label: "Duration", Value: func(w WorkoutView) string { return withUnit(w.Duration, "min") }, Badge: fixed[WorkoutView](ColorSecondary)},
		{Label: "Difficulty", Value: func(w WorkoutView) string { return w.Difficulty }, Badge: func(w WorkoutView) string { return w.DifficultyColor }},
		{Label: "Calories", Value: func(w WorkoutView) string { return withUnit(w.CaloriesEstimate, "kcal") }, Badge: fixed[WorkoutView](ColorSuccess)},
	},
}

func keyOr(id string, index int) string {
	if id != "" {
		return id
	}
	return strconv.Itoa(index)
}
