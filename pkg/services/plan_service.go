// Package services contains the application services: plan orchestration with
// deterministic fallback, facts and article generation, chat streaming, and
// dashboard assembly.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Killer2OO0/CarePlanner.AI/pkg/llm"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/logging"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/models"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/planner"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/prompts"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/vitals"
)

// planTemperature keeps plan output consistent across retries while leaving
// room for phrasing variety.
const planTemperature = 0.7

// PlanService computes a patient's daily plan and trend summary.
type PlanService interface {
	// ComputePlan returns a plan for the patient. It never fails: any
	// generative-path error falls back to the deterministic planner, so the
	// result is always usable.
	ComputePlan(ctx context.Context, patient *models.Patient, logs []models.LogEntry, articles []models.Article, language string) *models.PlanResult
}

type planService struct {
	client  llm.Client
	breaker *llm.CircuitBreaker
	logger  *zap.Logger
	now     func() time.Time
}

// NewPlanService creates a plan service backed by the given transport.
func NewPlanService(client llm.Client, breaker *llm.CircuitBreaker, logger *zap.Logger) PlanService {
	return &planService{
		client:  client,
		breaker: breaker,
		logger:  logger.Named("plan_service"),
		now:     time.Now,
	}
}

var _ PlanService = (*planService)(nil)

func (s *planService) ComputePlan(ctx context.Context, patient *models.Patient, logs []models.LogEntry, articles []models.Article, language string) *models.PlanResult {
	// One instant for the whole computation, so the criticality check and a
	// potential fallback evaluate the same window.
	now := s.now()
	window := vitals.Aggregate(logs, patient.ID, now)

	if allowed, err := s.breaker.Allow(); !allowed {
		return s.fallback(patient, logs, articles, now, "circuit breaker", err)
	}

	prompt := prompts.BuildPlanPrompt(patient, vitals.MostRecentFirst(window.All), articles, language)

	response, err := s.client.GenerateResponse(ctx, prompt, prompts.PlanSystemMessage, planTemperature)
	if err != nil {
		s.breaker.RecordFailure()
		return s.fallback(patient, logs, articles, now, "transport", err)
	}
	s.breaker.RecordSuccess()

	result, err := llm.ParseJSONResponse[models.PlanResult](response)
	if err != nil {
		return s.fallback(patient, logs, articles, now, "parse", err)
	}

	if err := validatePlanResult(&result); err != nil {
		return s.fallback(patient, logs, articles, now, "validation", err)
	}

	// The safety directive is re-checked here instead of being trusted to
	// the model. A critical window whose output lacks the mandated task or
	// warning marker is rejected wholesale.
	if window.Critical() {
		if err := validateSafetyDirective(&result); err != nil {
			return s.fallback(patient, logs, articles, now, "safety", err)
		}
	}

	result.Plan.Citations = reconcileCitations(result.Plan.Citations, articles)

	s.logger.Info("Generated plan",
		zap.String("patient_id", patient.ID),
		zap.String("model", s.client.Model()),
		zap.Int("tasks", len(result.Plan.Tasks)),
		zap.Int("citations", len(result.Plan.Citations)))

	return &result
}

// fallback logs the generative-path failure and delegates to the
// deterministic planner. The fallback result fully replaces the generative
// one; partial output is never merged.
func (s *planService) fallback(patient *models.Patient, logs []models.LogEntry, articles []models.Article, now time.Time, stage string, err error) *models.PlanResult {
	s.logger.Warn("Falling back to rule-based plan",
		zap.String("patient_id", patient.ID),
		zap.String("stage", stage),
		zap.String("reason", logging.SanitizeError(err)))

	return planner.Generate(patient, logs, articles, now)
}

// validatePlanResult checks the structural contract of a generated plan:
// mandated fields present, every task carrying a label and a time.
func validatePlanResult(result *models.PlanResult) error {
	if strings.TrimSpace(result.Plan.Message) == "" {
		return fmt.Errorf("plan message is empty")
	}
	if len(result.Plan.Tasks) == 0 {
		return fmt.Errorf("plan has no tasks")
	}
	for i, task := range result.Plan.Tasks {
		if strings.TrimSpace(task.Task) == "" {
			return fmt.Errorf("task %d has no label", i)
		}
		if strings.TrimSpace(task.Time) == "" {
			return fmt.Errorf("task %d has no time", i)
		}
	}
	if strings.TrimSpace(result.Trends.Insight) == "" {
		return fmt.Errorf("trend insight is empty")
	}
	return nil
}

// validateSafetyDirective verifies the emergency-contact task and the
// warning-marker prefix. The directive mandates these exact English strings
// regardless of the output language, so the check is language-independent.
func validateSafetyDirective(result *models.PlanResult) error {
	found := false
	for _, task := range result.Plan.Tasks {
		if strings.Contains(task.Task, planner.EmergencyContactTask) {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("critical window but emergency task missing")
	}
	if !strings.HasPrefix(result.Trends.Insight, planner.CriticalWarningPrefix) {
		return fmt.Errorf("critical window but insight lacks warning marker")
	}
	return nil
}

// reconcileCitations replaces each returned citation with the corpus article
// of the same ID, dropping citations that reference nothing in the corpus.
// The model may echo altered titles or invent IDs; only corpus content is
// ever served.
func reconcileCitations(citations []models.Article, corpus []models.Article) []models.Article {
	if len(citations) == 0 {
		return nil
	}
	byID := make(map[int]models.Article, len(corpus))
	for _, a := range corpus {
		byID[a.ID] = a
	}
	var out []models.Article
	seen := make(map[int]bool, len(citations))
	for _, c := range citations {
		a, ok := byID[c.ID]
		if !ok || seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		out = append(out, a)
	}
	return out
}
