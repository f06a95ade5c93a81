package catalog

import "github.com/verte-zerg/mindely/internal/model"

var builtinMethods = []model.StudyMethod{
	{
		ID:              "pomodoro",
		Title:           "Pomodoro Technique",
		Description:     "Focus in 25-minute bursts with short breaks between.",
		FullDescription: "The Pomodoro Technique helps you break work into focused intervals, making large tasks less overwhelming. Work for 25 minutes, then reward yourself with a 5-minute break.",
		HowItWorks: []string{
			"Set timer for 25 minutes of focused work",
			"Work on one task without distractions",
			"Take a 5-minute break when the timer rings",
			"After 4 pomodoros, take a longer 15-30 minute break",
		},
		BestFor:      []string{"Beginners", "Long study days", "Low motivation days"},
		Icon:         "⏱",
		HasTimer:     true,
		FocusMinutes: 25,
		BreakMinutes: 5,
		ModeToggle:   true,
	},
	{
		ID:              "flowtime",
		Title:           "Flowtime",
		Description:     "Work in natural flow states without fixed intervals.",
		FullDescription: "Flowtime lets you work in your natural rhythm. Unlike Pomodoro, you decide when to take breaks based on how you feel, preserving your flow state.",
		HowItWorks: []string{
			"Start working on your task",
			"Note when you started",
			"Take a break when you naturally feel tired",
			"Rest for 1/5 of the time you worked",
		},
		BestFor:      []string{"Creative work", "Deep thinking", "Those who dislike rigid schedules"},
		Icon:         "🕒",
		HasTimer:     true,
		FocusMinutes: 45,
		BreakMinutes: 10,
		ModeToggle:   true,
	},
	{
		ID:              "time-blocking",
		Title:           "Time Blocking",
		Description:     "Assign specific hours to specific tasks or subjects.",
		FullDescription: "Time blocking helps you plan your day by dedicating specific time slots to specific activities. It reduces decision fatigue and creates structure.",
		HowItWorks: []string{
			"List all tasks you need to complete",
			"Estimate how long each task will take",
			"Assign each task to a specific time slot",
			"Protect your blocks from interruptions",
		},
		BestFor:      []string{"University students", "Competitive exam prep", "Long study days"},
		Icon:         "📅",
		HasTimer:     true,
		FocusMinutes: 60,
		BreakMinutes: 10,
	},
	{
		ID:              "active-recall",
		Title:           "Active Recall",
		Description:     "Test yourself instead of passively re-reading notes.",
		FullDescription: "Active recall is one of the most effective learning techniques. Instead of just reading, you actively retrieve information from memory, which strengthens neural pathways.",
		HowItWorks: []string{
			"Study a topic briefly",
			"Close your book or notes",
			"Write or say everything you remember",
			"Check what you missed and repeat",
		},
		BestFor:      []string{"Exams", "Definitions & formulas", "MCQ preparation"},
		Icon:         "🧠",
		HasTimer:     true,
		FocusMinutes: 30,
		BreakMinutes: 5,
	},
	{
		ID:              "feynman",
		Title:           "Feynman Technique",
		Description:     "Teach concepts in simple words to truly understand them.",
		FullDescription: "Named after physicist Richard Feynman, this technique reveals gaps in your understanding. If you can't explain something simply, you don't understand it well enough.",
		HowItWorks: []string{
			"Choose a concept to learn",
			"Explain it as if teaching a child",
			"Identify gaps in your explanation",
			"Go back, study more, and simplify again",
		},
		BestFor: []string{"Concept-heavy subjects", "Physics & engineering", "Deep understanding"},
		Icon:    "💡",
	},
	{
		ID:              "sq3r",
		Title:           "SQ3R Method",
		Description:     "Survey, Question, Read, Recite, Review for deep reading.",
		FullDescription: "SQ3R is a structured reading strategy that turns passive reading into active learning. Each step builds comprehension and retention.",
		HowItWorks: []string{
			"Survey: Skim headings, summaries, and images",
			"Question: Turn headings into questions",
			"Read: Read actively to answer your questions",
			"Recite: Summarize in your own words",
			"Review: Go over the material regularly",
		},
		BestFor:      []string{"Textbooks", "Theory subjects", "History, biology, law"},
		Icon:         "📖",
		HasTimer:     true,
		FocusMinutes: 45,
		BreakMinutes: 10,
	},
	{
		ID:              "leitner",
		Title:           "Leitner System",
		Description:     "Use flashcard boxes to optimize your review schedule.",
		FullDescription: "The Leitner System uses spaced repetition with physical or digital flashcards. Cards you know well are reviewed less often, while difficult ones appear more frequently.",
		HowItWorks: []string{
			"Create flashcards for what you're learning",
			"Start all cards in Box 1",
			"Move correct answers to the next box",
			"Move wrong answers back to Box 1",
			"Review boxes at different intervals",
		},
		BestFor: []string{"Vocabulary", "Definitions", "Facts & dates"},
		Icon:    "🗂",
	},
	{
		ID:              "mind-mapping",
		Title:           "Mind Mapping",
		Description:     "Visualize connections between ideas with branching diagrams.",
		FullDescription: "Mind mapping mirrors how your brain naturally connects ideas. Starting from a central concept, you branch out to related topics, creating a visual overview.",
		HowItWorks: []string{
			"Write your main topic in the center",
			"Draw branches for main subtopics",
			"Add smaller branches for details",
			"Use colors, icons, and images",
			"Connect related ideas across branches",
		},
		BestFor: []string{"Brainstorming", "Overview of topics", "Visual learners"},
		Icon:    "🌿",
	},
	{
		ID:              "cornell",
		Title:           "Cornell Note-Taking",
		Description:     "Structured notes with cues, notes, and summary sections.",
		FullDescription: "The Cornell method divides your page into sections for notes, cues, and summaries. This structure helps with active review and retention.",
		HowItWorks: []string{
			"Divide your page into 3 sections",
			"Right column (largest): Take detailed notes",
			"Left column: Add questions & keywords later",
			"Bottom section: Write a brief summary",
			"Use the cue column to test yourself",
		},
		BestFor:      []string{"Lectures", "Reading notes", "Any subject"},
		Icon:         "📝",
		HasTimer:     true,
		FocusMinutes: 50,
		BreakMinutes: 10,
	},
	{
		ID:              "spaced-repetition",
		Title:           "Spaced Repetition",
		Description:     "Review material at increasing intervals over time.",
		FullDescription: "Spaced repetition fights the forgetting curve by reviewing information just as you're about to forget it. This builds strong long-term memory with minimal effort.",
		HowItWorks: []string{
			"Learn new material",
			"Review after 1 day",
			"Review again after 3 days",
			"Then 1 week, 2 weeks, 1 month...",
			"Increase intervals for material you know well",
		},
		BestFor:      []string{"Exams", "Language learning", "Long-term retention"},
		Icon:         "🔁",
		HasTimer:     true,
		FocusMinutes: 20,
		BreakMinutes: 5,
	},
}
