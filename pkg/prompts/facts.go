package prompts

import (
	"fmt"
	"strings"

	"github.com/Killer2OO0/CarePlanner.AI/pkg/models"
)

// FactsSystemMessage is the system role for health-fact generation.
const FactsSystemMessage = "You are a Medical Knowledge Assistant."

// BuildFactsPrompt creates the instruction for one page of health facts.
// The page number is spelled out so successive pages ask for fresh content;
// variety is best-effort, dedup happens at the caller by derived fact ID.
func BuildFactsPrompt(patient *models.Patient, language string, page int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Patient: %s, %d years old.\n", patient.Name, patient.Age)
	fmt.Fprintf(&b, "Condition: %s.\n\n", patient.Condition)

	b.WriteString(`Task:
- Generate 5 distinct, interesting, and scientifically accurate health facts or tips relevant to the patient's condition.
- Ensure they are diverse (Nutrition, Exercise, Mental Health, Medical).
`)
	fmt.Fprintf(&b, "- REQUIRED LANGUAGE: %s.\n", language)
	fmt.Fprintf(&b, "- This is page %d of facts. Ensure variety.\n\n", page)

	b.WriteString(`Return ONLY a JSON object:
{
  "facts": [
    { "title": "Fact Title", "content": "1-2 sentence fact", "tags": ["Tag1", "Tag2"] }
  ]
}`)

	return b.String()
}
