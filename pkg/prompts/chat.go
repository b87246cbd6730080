package prompts

import (
	"fmt"
	"strings"

	"github.com/Killer2OO0/CarePlanner.AI/pkg/models"
)

// Chat prompts stay deliberately small: streaming latency matters more here
// than exhaustive context, so only the newest readings and turns go in.
const (
	MaxChatLogs    = 5
	MaxChatHistory = 3
)

// ChatSystemMessage is the system role for the conversational assistant.
const ChatSystemMessage = "You are Dr. AI, a compassionate and knowledgeable health assistant. " +
	"Answer briefly and helpfully based ONLY on the patient's data and general medical knowledge. " +
	"If the values are critical, advise seeing a doctor. Keep it under 50 words unless asked for more."

// BuildChatPrompt creates the per-turn chat instruction from the user
// message, recent history, and a compact vitals summary.
func BuildChatPrompt(message string, history []models.ChatMessage, patientCtx *models.PatientContext) string {
	logs := patientCtx.RecentLogs
	if len(logs) > MaxChatLogs {
		logs = logs[:MaxChatLogs]
	}
	logLines := make([]string, len(logs))
	for i, l := range logs {
		logLines[i] = fmt.Sprintf("%s: %s %g %s",
			l.Timestamp.Format("2006-01-02"), l.Type, l.Value, l.Unit)
	}

	if len(history) > MaxChatHistory {
		history = history[len(history)-MaxChatHistory:]
	}
	historyLines := make([]string, len(history))
	for i, h := range history {
		historyLines[i] = fmt.Sprintf("%s: %s", h.Role, h.Content)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Patient: %s (%s)\n", patientCtx.Name, patientCtx.Condition)
	fmt.Fprintf(&b, "Recent Vitals:\n%s\n\n", strings.Join(logLines, "\n"))
	fmt.Fprintf(&b, "Conversation History:\n%s\n\n", strings.Join(historyLines, "\n"))
	fmt.Fprintf(&b, "User: %s\n\n", message)
	b.WriteString("Answer the user's question using their data.")

	return b.String()
}
