package analysis

import (
	"fmt"
	"strings"
)

// buildPrompt produces the recruiting-specialist prompt for one match
func buildPrompt(requirements []string, resumeText string) string {
	return fmt.Sprintf(`Act as a Recruiting and Selection Specialist.
Analyze the provided resume against the job requirements.

JOB REQUIREMENTS:
%s

RESUME TEXT:
%s

Instructions:
1. Calculate a score from 0 to 100.
2. Justify the score technically and objectively.
3. Identify missing skills (missingSkills).
4. Write 3 tailored interview questions probing the points where the candidate looks weakest or where the experience is unclear.

Respond with a JSON object containing exactly the keys "score" (number), "reasoning" (string), "missingSkills" (array of strings) and "interviewQuestions" (array of 3 strings).`,
		strings.Join(requirements, ", "), resumeText)
}
