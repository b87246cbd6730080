package prompts

import (
	"fmt"
	"strings"
)

// ArticlesSystemMessage is the system role for article generation.
const ArticlesSystemMessage = "You are a Medical Content Writer."

// BuildArticlesPrompt creates the instruction for a batch of new educational
// articles. Existing titles are listed as exclusions; uniqueness is
// best-effort via the instruction, not enforced structurally.
func BuildArticlesPrompt(condition string, existingTitles []string, language string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %q Management and Lifestyle.\n", condition)
	fmt.Fprintf(&b, "Language: %s.\n\n", language)

	b.WriteString("Task:\n")
	b.WriteString("- Write 3 detailed educational articles for a patient.\n")
	fmt.Fprintf(&b, "- Topics should be unique and NOT cover these existing titles: %s.\n", strings.Join(existingTitles, ", "))
	b.WriteString("- Categories examples: Nutrition, Mental Health, Medication, Exercise, Complications.\n\n")

	b.WriteString(`Return ONLY a JSON object:
{
  "articles": [
    {
      "title": "Clear Title",
      "category": "Category",
      "summary": "Short 2 sentence summary",
      "content": "Detailed content paragraph (approx 100 words)."
    }
  ]
}`)

	return b.String()
}
