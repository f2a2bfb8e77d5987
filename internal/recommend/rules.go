package recommend

import "github.com/chris-regnier/wellnessctl/internal/mood"

// Check-in values a rule is evaluated against.
type checkIn struct {
	mood       int
	stress     int
	energy     int
	activities mood.ActivitySet
}

// rule appends its suggestions when cond holds. Rules are evaluated in table
// order and the order of suggestions within a rule is preserved.
type rule struct {
	name        string
	cond        func(checkIn) bool
	suggestions []suggestion
}

type suggestion struct {
	text       string
	kind       Type
	title      string
	duration   int
	difficulty Difficulty
}

var rules = []rule{
	{
		name: "low-mood",
		cond: func(c checkIn) bool { return c.mood < 5 },
		suggestions: []suggestion{
			{"Try a 5-minute breathing exercise to center yourself", Meditation, "Breathing Exercise", 5, Easy},
			{"Consider going for a short walk in nature", Exercise, "Take a Walk", 15, Easy},
			{"Write down three things you're grateful for today", Activity, "Gratitude Practice", 10, Easy},
		},
	},
	{
		name: "high-stress",
		cond: func(c checkIn) bool { return c.stress > 3 },
		suggestions: []suggestion{
			{"Practice progressive muscle relaxation", Meditation, "Muscle Relaxation", 15, Medium},
			{"Take breaks every hour to stretch and breathe", Tip, "Hourly Stretch Breaks", 0, Easy},
			{"Consider meditation or mindfulness exercises", Meditation, "Mindfulness Meditation", 10, Medium},
		},
	},
	{
		name: "low-energy",
		cond: func(c checkIn) bool { return c.energy < 3 },
		suggestions: []suggestion{
			{"Ensure you're getting 7-8 hours of sleep", Tip, "Sleep Hygiene", 0, Medium},
			{"Try light exercise like yoga or walking", Exercise, "Light Exercise", 20, Easy},
			{"Stay hydrated and eat nutritious meals", Tip, "Hydration & Nutrition", 0, Easy},
		},
	},
	{
		name: "no-social",
		cond: func(c checkIn) bool { return !c.activities.Has(mood.Social) },
		suggestions: []suggestion{
			{"Reach out to a friend or family member", Activity, "Reach Out", 10, Easy},
			{"Join a community activity or group", Activity, "Join a Group", 60, Hard},
		},
	},
}
