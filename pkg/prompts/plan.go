// Package prompts builds the natural-language instructions sent to the
// generative transport. Prompt text is the contract with the model: the
// safety directive below is embedded verbatim, and the post-validation in
// the plan service independently re-checks what it mandates.
package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Killer2OO0/CarePlanner.AI/pkg/models"
)

// MaxPlanLogs caps how many log entries are serialized into a plan prompt.
const MaxPlanLogs = 20

// PlanSystemMessage is the system role for plan generation.
const PlanSystemMessage = "You are an expert Medical AI Assistant."

// articleRef is the title/summary-only projection of an article offered to
// the model as citation material.
type articleRef struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// BuildPlanPrompt creates the plan-generation instruction from the patient
// profile, at most the MaxPlanLogs most-recent log entries, and the article
// corpus projection. logs must already be ordered most-recent-first.
func BuildPlanPrompt(patient *models.Patient, logs []models.LogEntry, articles []models.Article, language string) string {
	if len(logs) > MaxPlanLogs {
		logs = logs[:MaxPlanLogs]
	}
	logsJSON, _ := json.Marshal(logs)

	refs := make([]articleRef, len(articles))
	for i, a := range articles {
		refs[i] = articleRef{ID: a.ID, Title: a.Title, Summary: a.Summary}
	}
	refsJSON, _ := json.Marshal(refs)

	var b strings.Builder

	b.WriteString("Patient Profile:\n")
	fmt.Fprintf(&b, "- Name: %s\n", patient.Name)
	fmt.Fprintf(&b, "- Age: %d\n", patient.Age)
	fmt.Fprintf(&b, "- Condition: %s\n", patient.Condition)
	fmt.Fprintf(&b, "- Medications: %s\n\n", strings.Join(patient.Medications, ", "))

	b.WriteString("Recent Vitals Logs (Last 7 days):\n")
	b.Write(logsJSON)
	b.WriteString("\n\n")

	b.WriteString("Available Guidelines (Articles):\n")
	b.Write(refsJSON)
	b.WriteString("\n\n")

	b.WriteString(`Task:
- Analyze the logs.
- Generate a daily plan with specific tasks.
- Determine the targets.
- Provide a trend insight.
- Select RELEVANT articles as citations if applicable.

CRITICAL SAFETY RULES:
- If Glucose > 250 mg/dL OR BP > 180/120:
  - YOU MUST ADD A TASK: "Contact Clinician IMMEDIATELY".
  - The Insight MUST start with "WARNING: CRITICAL VITALS DETECTED."

LANGUAGE REQUIREMENT:
`)
	fmt.Fprintf(&b, "- Perform all analysis in English but OUTPUT the final JSON content (message, tasks, insight) in %s.\n\n", language)

	b.WriteString(`Return ONLY a JSON object matching this schema:
{
  "plan": {
    "message": "encouraging message with specific insight",
    "tasks": [{ "task": "Task Name", "time": "HH:MM AM/PM" }],
    "targets": { "glucose_min": number, "glucose_max": number },
    "citations": [ { "id": number, "title": "...", "category": "...", "summary": "...", "content": "..." } ]
  },
  "trends": {
    "insight": "trend analysis",
    "stats": { "tir": number (0-100), "bp_control": number (0-100), "streak": number }
  }
}`)

	return b.String()
}
