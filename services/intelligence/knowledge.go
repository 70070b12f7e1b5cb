// File: services/intelligence/knowledge.go
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"glambook/database/repository/knowledge"
	"glambook/models"

	"go.uber.org/zap"
)

// ContentGenerator is the model surface the answerer depends on; the
// Gemini client in production, a fake in tests.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

const answerTimeout = 8 * time.Second

var languageNames = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"ne": "Nepali",
	"mr": "Marathi",
}

// KnowledgeService answers free-form customer questions grounded on the
// admin-managed knowledge base. It also backs model-assisted address
// extraction for messy multi-line inputs.
type KnowledgeService struct {
	Generator ContentGenerator
	Repo      knowledge.Repository
	Logger    *zap.Logger
}

func NewKnowledgeService(generator ContentGenerator, repo knowledge.Repository, logger *zap.Logger) *KnowledgeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KnowledgeService{Generator: generator, Repo: repo, Logger: logger}
}

// Answer responds to a customer question using only knowledge base
// content. Errors bubble up so the caller can fall back to a canned
// reply.
func (s *KnowledgeService) Answer(ctx context.Context, question, language string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, answerTimeout)
	defer cancel()

	var entries []models.KnowledgeEntry
	if s.Repo != nil {
		var err error
		entries, err = s.Repo.ActiveContent(ctx, language)
		if err != nil {
			s.Logger.Warn("knowledge load failed, answering ungrounded", zap.Error(err))
		}
	}

	prompt := buildAnswerPrompt(question, language, entries)
	answer, err := s.Generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("answer question: %w", err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", fmt.Errorf("answer question: empty model response")
	}
	return answer, nil
}

func buildAnswerPrompt(question, language string, entries []models.KnowledgeEntry) string {
	var sb strings.Builder
	sb.WriteString("You are the booking assistant for a makeup artistry studio. ")
	sb.WriteString("Answer the customer's question briefly (2-3 sentences) using ONLY the business information below. ")
	sb.WriteString("If the information does not cover the question, say you will check with the team and suggest booking a consultation. ")
	langName := languageNames[language]
	if langName == "" {
		langName = "English"
	}
	fmt.Fprintf(&sb, "Reply in %s.\n\n", langName)

	if len(entries) > 0 {
		sb.WriteString("Business information:\n")
		for _, e := range entries {
			if e.Category != "" {
				fmt.Fprintf(&sb, "[%s] ", e.Category)
			}
			sb.WriteString(e.Content)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "Customer question: %s\n", question)
	return sb.String()
}

// ExtractAddress pulls a street address out of a free-form message,
// implementing the extraction pipeline's resolver port. known carries
// already-collected fields so the model does not re-extract them as
// part of the address.
func (s *KnowledgeService) ExtractAddress(ctx context.Context, message string, known map[string]string) (string, error) {
	var sb strings.Builder
	sb.WriteString("Extract the street/delivery address from the customer message below. ")
	sb.WriteString("Return ONLY the address text, nothing else. If there is no address, return NONE.\n")
	if len(known) > 0 {
		sb.WriteString("These values are other fields, not part of the address:\n")
		for k, v := range known {
			fmt.Fprintf(&sb, "- %s: %s\n", k, v)
		}
	}
	fmt.Fprintf(&sb, "\nCustomer message: %s\n", message)

	out, err := s.Generator.GenerateContent(ctx, sb.String())
	if err != nil {
		return "", fmt.Errorf("extract address: %w", err)
	}
	out = strings.TrimSpace(strings.Trim(strings.TrimSpace(out), "\"'`"))
	if out == "" || strings.EqualFold(out, "NONE") {
		return "", fmt.Errorf("extract address: no address found")
	}
	// A real address is one short line; anything longer is the model
	// rambling.
	if strings.Contains(out, "\n") || len(out) > 160 {
		return "", fmt.Errorf("extract address: implausible model output")
	}
	return out, nil
}
