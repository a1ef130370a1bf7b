package api

import (
	"time"

	"github.com/pluqqy/promptcat/pkg/models"
)

// SeedCategories returns the categories shipped with the demo catalog.
func SeedCategories() []string {
	return []string{
		"Creative",
		"Professional",
		"Technical",
		"Educational",
		"Lifestyle",
		"Content",
		"Analytical",
		"Communication",
		"Entertainment",
		"Utility",
	}
}

var seedEpoch = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

func seedDay(n int) time.Time {
	return seedEpoch.AddDate(0, 0, n)
}

// SeedPrompts returns the prompts shipped with the demo catalog.
func SeedPrompts() []models.Prompt {
	return []models.Prompt{
		{
			ID:          "1",
			Name:        "Professional Email Writer",
			Description: "Drafts clear, polite business emails from a few bullet points.",
			Category:    "Professional",
			Text:        "Act as an experienced executive assistant. Turn the following bullet points into a concise, courteous business email with a clear subject line and call to action:\n\n{points}",
			Tags:        []string{"email", "business", "writing"},
			LikeCount:   42,
			AuthorID:    "demo-author",
			CreatedAt:   seedDay(0),
		},
		{
			ID:          "2",
			Name:        "Short Story Generator",
			Description: "Writes a short story with a twist from a one-line premise.",
			Category:    "Creative",
			Text:        "You are a creative fiction writer. Write a 500-word short story based on this premise, ending with an unexpected twist:\n\n{premise}",
			Tags:        []string{"fiction", "story", "writing"},
			LikeCount:   31,
			AuthorID:    "demo-author",
			CreatedAt:   seedDay(1),
		},
		{
			ID:          "3",
			Name:        "Code Reviewer",
			Description: "Reviews a code snippet for bugs, readability and performance.",
			Category:    "Technical",
			Text:        "Act as a senior software engineer performing a code review. List bugs, readability issues and performance concerns in the code below, each with a suggested fix:\n\n{code}",
			Tags:        []string{"code", "review", "programming"},
			LikeCount:   57,
			AuthorID:    "dev-guild",
			CreatedAt:   seedDay(2),
		},
		{
			ID:          "4",
			Name:        "Concept Explainer",
			Description: "Explains a difficult concept at three levels of depth.",
			Category:    "Educational",
			Text:        "Explain {concept} three times: first to a ten-year-old, then to a university student, then to a domain expert. Keep each explanation under 150 words.",
			Tags:        []string{"learning", "teaching"},
			LikeCount:   25,
			AuthorID:    "tutor-bot",
			CreatedAt:   seedDay(3),
		},
		{
			ID:          "5",
			Name:        "Weekly Meal Planner",
			Description: "Plans a week of balanced meals with a shopping list.",
			Category:    "Lifestyle",
			Text:        "Create a seven-day meal plan for {people} people following a {diet} diet. Include breakfast, lunch and dinner, then a consolidated shopping list grouped by aisle.",
			Tags:        []string{"food", "health", "planning"},
			LikeCount:   18,
			AuthorID:    "demo-author",
			CreatedAt:   seedDay(4),
		},
		{
			ID:          "6",
			Name:        "Blog Post Outliner",
			Description: "Produces an SEO-friendly outline for a blog post.",
			Category:    "Content",
			Text:        "You are a content strategist. Produce a detailed outline for a blog post titled \"{title}\" with H2 and H3 headings, key points under each, and three suggested meta descriptions.",
			Tags:        []string{"blog", "seo", "writing"},
			LikeCount:   22,
			AuthorID:    "content-lab",
			CreatedAt:   seedDay(5),
		},
		{
			ID:          "7",
			Name:        "Data Insight Finder",
			Description: "Summarises trends and anomalies in a table of data.",
			Category:    "Analytical",
			Text:        "Act as a data analyst. Given the CSV below, describe the three most important trends, any anomalies, and one follow-up question worth investigating:\n\n{csv}",
			Tags:        []string{"data", "analysis"},
			LikeCount:   39,
			AuthorID:    "dev-guild",
			CreatedAt:   seedDay(6),
		},
		{
			ID:          "8",
			Name:        "Difficult Conversation Coach",
			Description: "Helps prepare for a hard conversation with a colleague.",
			Category:    "Communication",
			Text:        "I need to talk to {person} about {issue}. Role-play the conversation with me, then give feedback on my tone and suggest better phrasing where needed.",
			Tags:        []string{"feedback", "roleplay"},
			LikeCount:   14,
			AuthorID:    "content-lab",
			CreatedAt:   seedDay(7),
		},
		{
			ID:          "9",
			Name:        "Trivia Quiz Host",
			Description: "Runs an interactive trivia quiz on any topic.",
			Category:    "Entertainment",
			Text:        "You are a witty quiz host. Ask me ten multiple-choice questions about {topic}, one at a time, keep score, and reveal the answer after each guess.",
			Tags:        []string{"game", "quiz"},
			LikeCount:   27,
			AuthorID:    "tutor-bot",
			CreatedAt:   seedDay(8),
		},
		{
			ID:          "10",
			Name:        "Regex Builder",
			Description: "Builds and explains a regular expression from a description.",
			Category:    "Utility",
			Text:        "Write a regular expression that matches {description}. Explain each part of the pattern and give three strings that match and three that do not.",
			Tags:        []string{"regex", "programming"},
			LikeCount:   33,
			AuthorID:    "dev-guild",
			CreatedAt:   seedDay(9),
		},
		{
			ID:          "11",
			Name:        "Cover Letter Tailor",
			Description: "Tailors a cover letter to a specific job description.",
			Category:    "Professional",
			Text:        "Act as a career coach. Rewrite my cover letter so it speaks directly to the job description below, highlighting matching experience without inventing facts.\n\nJob: {job}\n\nLetter: {letter}",
			Tags:        []string{"career", "writing"},
			LikeCount:   19,
			AuthorID:    "content-lab",
			CreatedAt:   seedDay(10),
		},
		{
			ID:          "12",
			Name:        "Poem in Any Style",
			Description: "Writes a poem about a subject in the style of a chosen poet.",
			Category:    "Creative",
			Text:        "Write a poem about {subject} in the style of {poet}. Match the poet's typical form, rhythm and imagery.",
			Tags:        []string{"poetry", "writing"},
			LikeCount:   11,
			AuthorID:    "demo-author",
			CreatedAt:   seedDay(11),
		},
	}
}
