package planner

import (
	"strings"

	"github.com/Killer2OO0/CarePlanner.AI/pkg/models"
)

// Citation selection only applies to patients whose condition mentions
// diabetes. The positional fallbacks (first article, third article) are a
// compatibility quirk of the corpus layout; they are kept deliberate and
// visible here rather than inlined. A corpus too small for a fallback index
// simply yields no citation.

func selectCitations(patient *models.Patient, state glucoseState, articles []models.Article) []models.Article {
	if !strings.Contains(patient.Condition, "Diabetes") {
		return nil
	}

	var citations []models.Article
	if a, ok := primaryCitation(articles); ok {
		citations = append(citations, a)
	}
	if state == stateHigh {
		if a, ok := dietCitation(articles); ok {
			citations = append(citations, a)
		}
	}
	return citations
}

// primaryCitation selects the article whose title mentions A1C, falling back
// to the first article in the corpus.
func primaryCitation(articles []models.Article) (models.Article, bool) {
	return byTitleOrIndex(articles, "A1C", 0)
}

// dietCitation selects the article whose title mentions Eating, falling back
// to the third article in the corpus.
func dietCitation(articles []models.Article) (models.Article, bool) {
	return byTitleOrIndex(articles, "Eating", 2)
}

func byTitleOrIndex(articles []models.Article, titleFragment string, fallbackIndex int) (models.Article, bool) {
	for _, a := range articles {
		if strings.Contains(a.Title, titleFragment) {
			return a, true
		}
	}
	if fallbackIndex < len(articles) {
		return articles[fallbackIndex], true
	}
	return models.Article{}, false
}
