package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/octobees/outreach-campaigns/api/internal/config"
	"github.com/octobees/outreach-campaigns/api/internal/dto"
	"github.com/octobees/outreach-campaigns/api/internal/llm"
	"github.com/octobees/outreach-campaigns/api/internal/repository"
)

const (
	maxProfileFieldRunes = 100
	maxSummaryRunes      = 500

	msgProfileFieldsRequired = "All fields are required: name, job_title, company, location, summary"
	msgProfileFieldsTooLong  = "Field values are too long (max 100 characters each)"
	msgSummaryTooLong        = "Summary is too long (max 500 characters)"
)

// MessageService generates personalised outreach messages through an LLM provider.
type MessageService struct {
	client   llm.Client
	accounts repository.AccountsRepository
	cfg      config.PromptConfig
	logger   *zap.Logger
}

// NewMessageService wires the generator. accounts may be nil when only raw
// profiles are used.
func NewMessageService(client llm.Client, accounts repository.AccountsRepository, cfg config.PromptConfig, logger *zap.Logger) *MessageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageService{
		client:   client,
		accounts: accounts,
		cfg:      cfg,
		logger:   logger.Named("message"),
	}
}

// Generate validates the profile and asks the provider for a message.
//
// When the provider answers without usable text the fallback is returned with a
// nil error. When the call itself fails the fallback is returned together with
// the error so the caller can decide how to report it.
func (s *MessageService) Generate(ctx context.Context, req dto.PersonalizedMessageRequest) (string, error) {
	profile := Profile{
		Name:     strings.TrimSpace(req.Name),
		JobTitle: strings.TrimSpace(req.JobTitle),
		Company:  strings.TrimSpace(req.Company),
		Location: strings.TrimSpace(req.Location),
		Summary:  strings.TrimSpace(req.Summary),
	}
	if err := validateProfile(profile); err != nil {
		return "", err
	}
	return s.generate(ctx, profile)
}

// GenerateForAccount builds the profile from a stored account.
func (s *MessageService) GenerateForAccount(ctx context.Context, rawID string) (string, error) {
	if s.accounts == nil {
		return "", errors.New("accounts repository is not configured")
	}
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return "", ValidationError{Message: msgInvalidAccountID}
	}

	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return "", err
	}

	profile := Profile{
		Name:     account.FullName(),
		JobTitle: account.CurrentJobTitle,
		Company:  account.CurrentCompany,
	}
	if account.Location != nil {
		profile.Location = strings.TrimSpace(*account.Location)
	}
	if account.Summary != nil {
		profile.Summary = strings.TrimSpace(*account.Summary)
	}
	if err := validateProfile(profile); err != nil {
		return "", err
	}
	return s.generate(ctx, profile)
}

func (s *MessageService) generate(ctx context.Context, profile Profile) (string, error) {
	prompt, err := renderPrompt(s.cfg, profile)
	if err != nil {
		return s.cfg.Fallback, err
	}

	completion, err := s.client.Complete(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      prompt,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		if errors.Is(err, llm.ErrMalformedResponse) {
			s.logger.Warn("unreadable provider response, using fallback message", zap.Error(err))
			return s.cfg.Fallback, nil
		}
		s.logger.Error("personalized message generation failed", zap.Error(err))
		return s.cfg.Fallback, fmt.Errorf("generate personalized message: %w", err)
	}

	text := completion.FirstText()
	if text == "" {
		s.logger.Warn("provider returned no text, using fallback message", zap.String("model", completion.Model))
		return s.cfg.Fallback, nil
	}
	return truncateAtWord(text, s.cfg.MaxMessageRunes), nil
}

func validateProfile(p Profile) error {
	if p.Name == "" || p.JobTitle == "" || p.Company == "" || p.Location == "" || p.Summary == "" {
		return ValidationError{Message: msgProfileFieldsRequired}
	}
	for _, field := range []string{p.Name, p.JobTitle, p.Company, p.Location} {
		if utf8.RuneCountInString(field) > maxProfileFieldRunes {
			return ValidationError{Message: msgProfileFieldsTooLong}
		}
	}
	if utf8.RuneCountInString(p.Summary) > maxSummaryRunes {
		return ValidationError{Message: msgSummaryTooLong}
	}
	return nil
}

// truncateAtWord caps text at limit runes, cutting back to the last space when
// one exists.
func truncateAtWord(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}

	runes := []rune(text)[:limit]
	cut := len(runes)
	for i := len(runes) - 1; i > 0; i-- {
		if unicode.IsSpace(runes[i]) {
			cut = i
			break
		}
	}
	return strings.TrimRightFunc(string(runes[:cut]), func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == ';' || r == ':'
	})
}
