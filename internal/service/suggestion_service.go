package service

import (
	"context"
	"feedback_backend/internal/util"
	"feedback_backend/pkg/logger"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const suggestionPrompt = "Create a list of three open-ended and engaging questions formatted as a single string. " +
	"Each question should be separated by '||'. These questions are for an anonymous social messaging platform, " +
	"and should be suitable for a diverse audience. Avoid personal or sensitive topics, focusing instead on " +
	"universal themes that encourage friendly interaction. For example, your output should be structured like this: " +
	"'What's a hobby you've recently started?||If you could have dinner with any historical figure, who would it be?||" +
	"What's a simple thing that makes you happy?'. Ensure the questions are intriguing, foster curiosity, and " +
	"contribute to a positive and welcoming conversational environment."

type SuggestionService struct {
	AI ChatCompleter
}

func NewSuggestionService(ai ChatCompleter) *SuggestionService {
	return &SuggestionService{AI: ai}
}

// Suggest asks the model for three conversation starters.
func (s *SuggestionService) Suggest(ctx context.Context) ([]string, error) {
	reply, err := s.AI.Chat(ctx, []AIChatMessage{{Role: "user", Content: suggestionPrompt}})
	if err != nil {
		logger.Log.Error("Suggestion request failed", zap.Error(err))
		return nil, errors.Wrap(util.ErrSuggestionUnavailable, err.Error())
	}

	suggestions := SplitSuggestions(reply)
	if len(suggestions) == 0 {
		return nil, errors.Wrap(util.ErrSuggestionUnavailable, "empty reply")
	}
	return suggestions, nil
}

// SplitSuggestions splits a '||' separated reply, dropping blanks and surrounding quotes.
func SplitSuggestions(reply string) []string {
	parts := strings.Split(reply, util.SuggestionsSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `'"`)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
