package openrouter

import (
	"fmt"
	"strings"

	"interview-backend/internal/llm"
)

const followUpSystemPrompt = `You are a seasoned Korean job interviewer conducting a pressure interview.
Given a candidate's answer, ask exactly one short probing follow-up question that digs into
a weak point, a vague claim, or a missing detail in the answer.
Rules:
- Reply with the follow-up question only, no preamble and no quotation marks.
- Keep it to a single sentence.
- Stay respectful but firm, in the register of a real Korean job interview.`

func buildFollowUpMessages(question, userAnswer string) []chatMessage {
	var user strings.Builder
	if strings.TrimSpace(question) != "" {
		fmt.Fprintf(&user, "Interview question: %s\n\n", question)
	}
	fmt.Fprintf(&user, "Candidate's answer: %s", userAnswer)

	return []chatMessage{
		{Role: "system", Content: followUpSystemPrompt},
		{Role: "user", Content: user.String()},
	}
}

const evaluationSystemPrompt = `You are a senior Korean hiring manager evaluating a complete practice interview
by a foreign candidate. Score the interview as a whole and give feedback per question.
Respond with a single JSON object, no markdown, using exactly these keys:
{
  "logic": 0-100 integer, logical structure and consistency of the answers,
  "evidence": 0-100 integer, use of concrete examples and supporting evidence,
  "jobUnderstanding": 0-100 integer, understanding of the target role,
  "formality": 0-100 integer, appropriateness of business-Korean register,
  "completeness": 0-100 integer, how complete and substantial the answers are,
  "overallFeedback": string, an overall assessment in 3-5 sentences,
  "detailedFeedback": array with one object per question, in the given order, each with keys
    questionOrder (integer), questionId (string), question, userAnswer,
    followUpQuestion (empty string if none), followUpAnswer (empty string if none),
    feedback (specific critique of this answer), improvements (concrete suggestions)
}
Be honest and specific; generic praise is not useful feedback.`

func buildEvaluationMessages(answers []llm.AnswerInput) []chatMessage {
	var user strings.Builder
	user.WriteString("Interview transcript:\n")
	for _, a := range answers {
		fmt.Fprintf(&user, "\n[Question %d] (id: %s)\n%s\n", a.QuestionOrder, a.QuestionID, a.Question)
		fmt.Fprintf(&user, "Answer: %s\n", a.UserAnswer)
		if a.FollowUpQuestion != "" {
			fmt.Fprintf(&user, "Follow-up question: %s\n", a.FollowUpQuestion)
			fmt.Fprintf(&user, "Follow-up answer: %s\n", a.FollowUpAnswer)
		}
	}

	return []chatMessage{
		{Role: "system", Content: evaluationSystemPrompt},
		{Role: "user", Content: user.String()},
	}
}
