package questions

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Seed inserts the starter question bank when the catalog is empty.
// It is a no-op on a populated catalog so restarts never duplicate rows.
func Seed(ctx context.Context, repo Repo) (int, error) {
	count, err := repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	for i := range seedQuestions {
		q := seedQuestions[i]
		q.ID = uuid.NewString()
		q.CreatedAt = now
		q.UpdatedAt = now
		if err := repo.Create(ctx, q); err != nil {
			return 0, err
		}
	}
	return len(seedQuestions), nil
}

var seedQuestions = []Question{
	{
		Question:    "Please introduce yourself.",
		Category:    CategoryCommon,
		ModelAnswer: "Hello, my name is [name]. I come from [country] and studied [major/background]. I applied because I want to work in Korea as a [role]. My strength is [strength], and I hope to grow at your company by contributing [contribution].",
		Reasoning:   "A self-introduction should be concise while covering the key facts: background, major, motivation, and strengths. Delivering it naturally in Korean matters.",
	},
	{
		Question:    "Why did you apply to our company?",
		Category:    CategoryCommon,
		ModelAnswer: "Your company is a leader in [industry/field], and I strongly relate to [the company's character/vision]. I was especially impressed by [a specific project/product/culture], and I want to apply my experience and skills to contribute to your growth.",
		Reasoning:   "Show that you researched and understand the company, and explain concretely how your goals align with its direction.",
	},
	{
		Question:    "What are your strengths and weaknesses?",
		Category:    CategoryCommon,
		ModelAnswer: "My strength is [specific strength]. For example, I demonstrated it in [example]. My weakness is [weakness], but I am working on it through [specific effort].",
		Reasoning:   "Explain strengths with concrete examples, and pair weaknesses with improvement efforts to show growth potential.",
	},
	{
		Question:    "Where do you see yourself in ten years?",
		Category:    CategoryCommon,
		ModelAnswer: "In ten years I want to have grown into an expert in [field] and achieved [specific goal]. To get there I keep [learning/development plan], and I want to be someone who has a positive influence on the team and the organization.",
		Reasoning:   "Present a concrete yet realistic vision and show a willingness to stay with the company long term.",
	},
	{
		Question:    "Which programming language are you most confident in, and what projects have you used it for?",
		Category:    CategoryJob,
		JobType:     JobTypeIT,
		Level:       LevelEntry,
		ModelAnswer: "I am most confident in [language]. In [project] I implemented [specific feature] and worked through [technical challenge and resolution]. Through that I learned [lesson].",
		Reasoning:   "Naming a language is not enough. Describing real project experience and the problem-solving process is what proves technical ability.",
	},
	{
		Question:    "How did you resolve a technical disagreement in a team project?",
		Category:    CategoryJob,
		JobType:     JobTypeIT,
		Level:       LevelEntry,
		ModelAnswer: "In [project] we disagreed about [technology choice/architecture]. I analyzed the trade-offs of each approach and shared them with the team, and based on [evidence] we decided on [decision]. As a result we achieved [outcome].",
		Reasoning:   "What matters is demonstrating technical communication and collaboration. Emphasize logical reasoning and teamwork.",
	},
	{
		Question:    "Have you learned any new technologies or frameworks recently?",
		Category:    CategoryJob,
		JobType:     JobTypeIT,
		Level:       LevelEntry,
		ModelAnswer: "I recently studied [technology/framework]. I learned it through [study method] and applied it in [a toy project/hands-on practice]. It offers [advantage], so I would like to use it at work as well.",
		Reasoning:   "Show a commitment to continuous learning and interest in technology trends. Mentioning hands-on practice rather than pure theory is better.",
	},
	{
		Question:    "How did you study Korean, and what is your current level?",
		Category:    CategoryForeigner,
		ModelAnswer: "I studied Korean through [study method] and I am currently at [TOPIK level/proficiency]. I picked up business Korean through [experience/effort] and keep improving it.",
		Reasoning:   "Emphasize Korean proficiency together with workplace communication ability, and show a commitment to continued learning.",
	},
	{
		Question:    "Have you had any difficulty adapting to Korean culture or the work environment?",
		Category:    CategoryForeigner,
		ModelAnswer: "At first I struggled with [specific difficulty], but I overcame it through [adaptation effort]. I adapted by learning [positive aspect] of Korea, and I learned to respond flexibly while respecting cultural differences.",
		Reasoning:   "Acknowledge difficulties honestly, but show the concrete experience of overcoming them and a positive attitude.",
	},
	{
		Question:    "Do you plan to work in Korea long term?",
		Category:    CategoryForeigner,
		ModelAnswer: "Yes, I want to work and grow in Korea for the long term. Because of [specific reason] I believe Korea suits my career, and I am also preparing [visa/settlement plans]. I hope to grow with your company over the long run.",
		Reasoning:   "Showing a long-term commitment and concrete plans reassures the company about hiring you.",
	},
}
