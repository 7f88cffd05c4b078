package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"babyname-be/internal/apperr"
	"babyname-be/internal/constant"
	"babyname-be/internal/dto"
	"babyname-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	response   string
	err        error
	lastPrompt string
	lastOpts   llm.Options
}

func (p *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	for _, m := range history {
		if m.Role == "user" {
			p.lastPrompt = m.Content
		}
	}
	for _, opt := range options {
		opt(&p.lastOpts)
	}
	return p.response, p.err
}

func (p *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	p.lastPrompt = prompt
	for _, opt := range options {
		opt(&p.lastOpts)
	}
	return p.response, p.err
}

func newTestGenerator(provider llm.Provider) IGeneratorService {
	return NewGeneratorService(provider, nil, "names-model", "prose-model", 10, nopLogger{})
}

func TestGenerateNamesParsesCandidates(t *testing.T) {
	provider := &fakeProvider{response: "```json\n[{\"name\": \"Ash\", \"summary\": \"From the ash tree.\"}]\n```"}
	svc := newTestGenerator(provider)

	res, err := svc.GenerateNames(context.Background(), &dto.GenerateNamesRequest{Theme: "nature"})
	require.NoError(t, err)
	require.Len(t, res.NamesWithMeanings, 1)
	assert.Equal(t, "Ash", res.NamesWithMeanings[0].Name)
	assert.Equal(t, "From the ash tree.", res.NamesWithMeanings[0].Meaning)
	assert.Contains(t, provider.lastPrompt, "nature")
	assert.Equal(t, "names-model", provider.lastOpts.Model)
}

func TestGenerateNamesIncludesGenderLine(t *testing.T) {
	provider := &fakeProvider{response: `[{"name": "Ava"}]`}
	svc := newTestGenerator(provider)

	_, err := svc.GenerateNames(context.Background(), &dto.GenerateNamesRequest{Theme: "classic", Gender: "girl"})
	require.NoError(t, err)
	assert.Contains(t, provider.lastPrompt, "girl")
}

func TestGenerateNamesRejectsMalformedResponse(t *testing.T) {
	provider := &fakeProvider{response: "Sure! Here are some lovely names: Ava, Rowan, Ash."}
	svc := newTestGenerator(provider)

	_, err := svc.GenerateNames(context.Background(), &dto.GenerateNamesRequest{Theme: "nature"})
	assert.True(t, apperr.IsCollaboratorFailure(err))
}

func TestGenerateNamesWrapsProviderError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("timeout")}
	svc := newTestGenerator(provider)

	_, err := svc.GenerateNames(context.Background(), &dto.GenerateNamesRequest{Theme: "nature"})
	assert.True(t, apperr.IsCollaboratorFailure(err))
}

func TestGenerateDescriptionUsesProseModel(t *testing.T) {
	long := strings.Repeat("word ", constant.MinDescriptionWords+10)
	provider := &fakeProvider{response: long}
	svc := newTestGenerator(provider)

	text, usedWiki, err := svc.GenerateDescription(context.Background(), "Ava")
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(long), text)
	assert.False(t, usedWiki)
	assert.Equal(t, "prose-model", provider.lastOpts.Model)
}

func TestShortDescriptionFallsBackToFixedParagraph(t *testing.T) {
	provider := &fakeProvider{response: "A nice name."}
	svc := newTestGenerator(provider)

	text, usedWiki, err := svc.GenerateDescription(context.Background(), "Zyx")
	require.NoError(t, err)
	assert.Equal(t, constant.FallbackDescription, text)
	assert.False(t, usedWiki)
}

func TestGenerateDescriptionRejectsBlankName(t *testing.T) {
	svc := newTestGenerator(&fakeProvider{})

	_, _, err := svc.GenerateDescription(context.Background(), "   ")
	assert.True(t, apperr.IsValidation(err))
}
