package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Killer2OO0/CarePlanner.AI/pkg/llm"
)

func TestComputeArticles_ReturnsDrafts(t *testing.T) {
	mock := llm.NewMockClient()
	mock.GenerateResponseFunc = func(ctx context.Context, prompt, system string, temperature float64) (string, error) {
		return `{"articles":[
			{"title":"Carb Counting Basics","category":"Nutrition","summary":"Two sentences.","content":"Longer text."},
			{"title":"","category":"Noise","summary":"","content":""},
			{"title":"Sleep and Glucose","category":"Lifestyle","summary":"Two sentences.","content":"Longer text."}
		]}`, nil
	}
	svc := NewArticleService(mock, zap.NewNop())

	drafts := svc.ComputeArticles(context.Background(), "Type 2 Diabetes", []string{"Understanding A1C"}, "English")

	require.Len(t, drafts, 2, "untitled drafts are dropped")
	assert.Equal(t, "Carb Counting Basics", drafts[0].Title)
	assert.Equal(t, "Sleep and Glucose", drafts[1].Title)
}

func TestComputeArticles_EmptyOnFailure(t *testing.T) {
	mock := llm.NewMockClient()
	mock.GenerateResponseFunc = func(ctx context.Context, prompt, system string, temperature float64) (string, error) {
		return "", errors.New("HTTP 503")
	}
	svc := NewArticleService(mock, zap.NewNop())

	drafts := svc.ComputeArticles(context.Background(), "Hypertension", nil, "English")

	require.NotNil(t, drafts)
	assert.Empty(t, drafts)
}

func TestComputeArticles_PromptExcludesExistingTitles(t *testing.T) {
	mock := llm.NewMockClient()
	svc := NewArticleService(mock, zap.NewNop())

	svc.ComputeArticles(context.Background(), "Type 2 Diabetes", []string{"Understanding A1C", "Foot Care"}, "English")

	require.Len(t, mock.Prompts, 1)
	assert.Contains(t, mock.Prompts[0], "Understanding A1C, Foot Care")
}
