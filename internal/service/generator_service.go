package service

import (
	"context"
	"fmt"
	"strings"

	"babyname-be/internal/apperr"
	"babyname-be/internal/constant"
	"babyname-be/internal/dto"
	"babyname-be/internal/pkg/logger"
	"babyname-be/pkg/llm"
	"babyname-be/pkg/namegen"
	"babyname-be/pkg/wiki"
)

type IGeneratorService interface {
	GenerateNames(ctx context.Context, req *dto.GenerateNamesRequest) (*dto.GenerateNamesResponse, error)
	// GenerateDescription returns the long-form prose for a single name and
	// whether an encyclopedia summary informed it. Short model responses are
	// replaced with a fixed fallback paragraph rather than surfaced as-is.
	GenerateDescription(ctx context.Context, name string) (string, bool, error)
}

type generatorService struct {
	provider   llm.Provider
	wikiClient *wiki.Client // nil when lookups are disabled
	namesModel string
	proseModel string
	nameCount  int
	logger     logger.ILogger
}

func NewGeneratorService(
	provider llm.Provider,
	wikiClient *wiki.Client,
	namesModel string,
	proseModel string,
	nameCount int,
	log logger.ILogger,
) IGeneratorService {
	return &generatorService{
		provider:   provider,
		wikiClient: wikiClient,
		namesModel: namesModel,
		proseModel: proseModel,
		nameCount:  nameCount,
		logger:     log,
	}
}

func (s *generatorService) GenerateNames(ctx context.Context, req *dto.GenerateNamesRequest) (*dto.GenerateNamesResponse, error) {
	count := req.Count
	if count <= 0 {
		count = s.nameCount
	}

	prompt := fmt.Sprintf(constant.NamesPromptTemplate, count, req.Theme)
	if req.Gender != "" {
		prompt += "\n" + fmt.Sprintf(constant.NamesGenderLine, req.Gender)
	}

	raw, err := s.provider.Generate(ctx, prompt,
		llm.WithModel(s.namesModel),
		llm.WithTemperature(0.9),
	)
	if err != nil {
		return nil, apperr.CollaboratorFailure("name generator is unavailable", err)
	}

	candidates, err := namegen.ParseCandidates(raw)
	if err != nil {
		s.logger.Warn("GeneratorService", "Rejected malformed generator response", map[string]interface{}{
			"theme": req.Theme,
			"error": err.Error(),
		})
		return nil, apperr.CollaboratorFailure("name generator returned an unusable response", err)
	}

	result := make([]*dto.NameCandidateResponse, 0, len(candidates))
	for _, c := range candidates {
		result = append(result, &dto.NameCandidateResponse{
			Name:    c.Name,
			Meaning: c.Meaning,
			Origin:  c.Origin,
		})
	}
	return &dto.GenerateNamesResponse{NamesWithMeanings: result}, nil
}

func (s *generatorService) GenerateDescription(ctx context.Context, name string) (string, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false, apperr.Validation("name is required")
	}

	prompt := fmt.Sprintf(constant.DescriptionPromptTemplate, name)
	usedWiki := false
	if s.wikiClient != nil {
		// Wiki context is advisory: a failed lookup never fails generation.
		if summary, ok := s.wikiClient.Summary(ctx, name); ok {
			prompt = fmt.Sprintf(constant.DescriptionWikiContextTemplate, summary) + prompt
			usedWiki = true
		}
	}

	history := []llm.Message{
		{Role: "system", Content: constant.DescriptionSystemPrompt},
		{Role: "user", Content: prompt},
	}
	text, err := s.provider.Chat(ctx, history,
		llm.WithModel(s.proseModel),
		llm.WithMaxTokens(900),
	)
	if err != nil {
		return "", false, apperr.CollaboratorFailure("description generator is unavailable", err)
	}

	text = strings.TrimSpace(text)
	if namegen.WordCount(text) < constant.MinDescriptionWords {
		s.logger.Warn("GeneratorService", "Generator response too short, applying fallback text", map[string]interface{}{
			"name":  name,
			"words": namegen.WordCount(text),
		})
		return constant.FallbackDescription, false, nil
	}
	return text, usedWiki, nil
}
