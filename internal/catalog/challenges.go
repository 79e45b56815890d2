package catalog

import "health_edu_backend/internal/model"

var challenges = []Challenge{
	// Nutrition
	{
		ID:              "swap-snack",
		Title:           "Swap a Snack",
		Description:     "Replace one sugary snack with a healthy alternative",
		Task:            "Replace one sugary snack today (e.g., chocolate bar) with a piece of fruit or handful of nuts.",
		Feedback:        "Nice! You just saved 200+ calories and boosted your fiber intake.",
		Category:        CategoryNutrition,
		Difficulty:      DifficultyEasy,
		EstimatedTime:   "2 minutes",
		Points:          20,
		Icon:            "🍎",
		Color:           "bg-green-500",
		InteractionType: model.InteractionSimple,
	},
	{
		ID:              "veggie-boost",
		Title:           "Veggie Boost",
		Description:     "Add extra vegetables to your meals",
		Task:            "Add an extra serving of vegetables to 2 meals today.",
		Feedback:        "Excellent! You've increased your nutrient density and fiber intake.",
		Category:        CategoryNutrition,
		Difficulty:      DifficultyEasy,
		EstimatedTime:   "5 minutes",
		Points:          25,
		Icon:            "🥦",
		Color:           "bg-green-600",
		InteractionType: model.InteractionCounter,
		TargetCount:     2,
	},
	{
		ID:              "sugar-free-day",
		Title:           "Sugar-Free Challenge",
		Description:     "Avoid added sugars for the entire day",
		Task:            "Go a full day without consuming any added sugars (check labels!).",
		Feedback:        "Amazing willpower! Your blood sugar levels will thank you.",
		Category:        CategoryNutrition,
		Difficulty:      DifficultyHard,
		EstimatedTime:   "All day",
		Points:          50,
		Icon:            "🚫",
		Color:           "bg-red-500",
		InteractionType: model.InteractionSimple,
	},
	{
		ID:              "balanced-plate",
		Title:           "Balanced Plate",
		Description:     "Build one meal the balanced-plate way",
		Task:            "For one meal today, tick off each part of a balanced plate as you add it.",
		Feedback:        "That's a textbook balanced plate. Half veggies really does make a difference!",
		Category:        CategoryNutrition,
		Difficulty:      DifficultyMedium,
		EstimatedTime:   "15 minutes",
		Points:          30,
		Icon:            "🍽️",
		Color:           "bg-lime-500",
		InteractionType: model.InteractionChecklist,
		Items:           []string{"Half plate of vegetables and fruit", "Quarter plate of lean protein", "Quarter plate of whole grains", "Glass of water"},
	},

	// Hydration
	{
		ID:              "hydration-tracker",
		Title:           "Hydration Tracker",
		Description:     "Track your daily water intake",
		Task:            "Drink 6–8 glasses of water today. Tap to tick each one off.",
		Feedback:        "Hydration complete! Your brain and body thank you.",
		Category:        CategoryHydration,
		Difficulty:      DifficultyEasy,
		EstimatedTime:   "Throughout day",
		Points:          30,
		Icon:            "💧",
		Color:           "bg-blue-500",
		InteractionType: model.InteractionCounter,
		TargetCount:     8,
	},
	{
		ID:              "morning-water",
		Title:           "Morning Hydration",
		Description:     "Start your day with water",
		Task:            "Drink a full glass of water within 30 minutes of waking up.",
		Feedback:        "Perfect start! You've kickstarted your metabolism and hydration.",
		Category:        CategoryHydration,
		Difficulty:      DifficultyEasy,
		EstimatedTime:   "2 minutes",
		Points:          15,
		Icon:            "🌅",
		Color:           "bg-blue-400",
		InteractionType: model.InteractionSimple,
	},

	// Movement
	{
		ID:              "ten-minute-move",
		Title:           "10-Minute Move",
		Description:     "Quick movement break",
		Task:            "Do a quick 10-minute movement break — walk, stretch, or dance.",
		Feedback:        "Movement unlocks motivation. Keep going!",
		Category:        CategoryMovement,
		Difficulty:      DifficultyEasy,
		EstimatedTime:   "10 minutes",
		Points:          25,
		Icon:            "🏃‍♂️",
		Color:           "bg-orange-500",
		InteractionType: model.InteractionTimer,
		MaxValue:        600,
	},
	{
		ID:              "stairs-challenge",
		Title:           "Take the Stairs",
		Description:     "Choose stairs over elevators",
		Task:            "Take the stairs instead of elevators/escalators 3 times today.",
		Feedback:        "Step by step, you're building stronger legs and better health!",
		Category:        CategoryMovement,
		Difficulty:      DifficultyEasy,
		EstimatedTime:   "5 minutes",
		Points:          20,
		Icon:            "🪜",
		Color:           "bg-orange-600",
		InteractionType: model.InteractionCounter,
		TargetCount:     3,
	},
	{
		ID:              "walking-meeting",
		Title:           "Walking Meeting",
		Description:     "Turn a call into a walk",
		Task:            "Take one phone call or virtual meeting while walking.",
		Feedback:        "Multi-tasking at its finest! Walking boosts creativity too.",
		Category:        CategoryMovement,
		Difficulty:      DifficultyMedium,
		EstimatedTime:   "20-30 minutes",
		Points:          35,
		Icon:            "🚶‍♀️",
		Color:           "bg-orange-400",
		InteractionType: model.InteractionSimple,
	},
	{
		ID:              "desk-stretches",
		Title:           "Desk Stretches",
		Description:     "Combat desk fatigue with stretches",
		Task:            "Do 5 different desk stretches throughout your workday.",
		Feedback:        "Your spine and muscles appreciate the relief from sitting!",
		Category:        CategoryMovement,
		Difficulty:      DifficultyEasy,
		EstimatedTime:   "10 minutes total",
		Points:          20,
		Icon:            "🧘‍♂️",
		Color:           "bg-purple-500",
		InteractionType: model.InteractionCounter,
		TargetCount:     5,
	},

	// Mental health
	{
		ID:              "gratitude-practice",
		Title:           "Gratitude Practice",
		Description:     "Practice daily gratitude",
		Task:            "Write down 3 things you're grateful for today.",
		Feedback:        "Gratitude rewires your brain for positivity and better mental health.",
		Category:        CategoryMentalHealth,
		Difficulty:      DifficultyEasy,
		EstimatedTime:   "5 minutes",
		Points:          25,
		Icon:            "🙏",
		Color:           "bg-purple-600",
		InteractionType: model.InteractionCounter,
		TargetCount:     3,
	},
	{
		ID:              "digital-detox",
		Title:           "Digital Detox Hour",
		Description:     "Take a break from screens",
		Task:            "Spend 1 hour without any screens (phone, TV, computer).",
		Feedback:        "Mental reset complete! Your mind feels clearer already.",
		Category:        CategoryMentalHealth,
		Difficulty:      DifficultyMedium,
		EstimatedTime:   "1 hour",
		Points:          40,
		Icon:            "📵",
		Color:           "bg-indigo-500",
		InteractionType: model.InteractionTimer,
		MaxValue:        3600,
	},
	{
		ID:              "breathing-exercise",
		Title:           "Deep Breathing",
		Description:     "Practice mindful breathing",
		Task:            "Do a 5-minute deep breathing exercise (4 seconds in, 4 seconds hold, 4 seconds out).",
		Feedback:        "Calm restored! Deep breathing activates your relaxation response.",
		Category:        CategoryMentalHealth,
		Difficulty:      DifficultyEasy,
		EstimatedTime:   "5 minutes",
		Points:          20,
		Icon:            "🌬️",
		Color:           "bg-teal-500",
		InteractionType: model.InteractionTimer,
		MaxValue:        300,
	},

	// Sleep
	{
		ID:              "sleep-schedule",
		Title:           "Consistent Sleep",
		Description:     "Maintain a regular sleep schedule",
		Task:            "Go to bed and wake up at the same time today (within 30 minutes of your target).",
		Feedback:        "Consistency is key! Your circadian rhythm loves this routine.",
		Category:        CategorySleep,
		Difficulty:      DifficultyMedium,
		EstimatedTime:   "Planning",
		Points:          35,
		Icon:            "😴",
		Color:           "bg-indigo-600",
		InteractionType: model.InteractionSimple,
	},
	{
		ID:              "phone-free-bedroom",
		Title:           "Phone-Free Bedroom",
		Description:     "Keep devices out of the bedroom",
		Task:            "Charge your phone outside the bedroom tonight.",
		Feedback:        "Sweet dreams! Removing screens improves sleep quality significantly.",
		Category:        CategorySleep,
		Difficulty:      DifficultyMedium,
		EstimatedTime:   "1 minute setup",
		Points:          30,
		Icon:            "🛏️",
		Color:           "bg-violet-500",
		InteractionType: model.InteractionSimple,
	},
	{
		ID:              "wind-down-routine",
		Title:           "Wind-Down Routine",
		Description:     "Create a relaxing bedtime routine",
		Task:            "Spend 30 minutes before bed doing relaxing activities (reading, gentle stretching, etc.).",
		Feedback:        "Perfect preparation for quality sleep! Your body knows it's time to rest.",
		Category:        CategorySleep,
		Difficulty:      DifficultyEasy,
		EstimatedTime:   "30 minutes",
		Points:          25,
		Icon:            "🕯️",
		Color:           "bg-violet-600",
		InteractionType: model.InteractionTimer,
		MaxValue:        1800,
	},
}
