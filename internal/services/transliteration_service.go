package services

import (
	"context"
	"errors"
	"strings"

	"github.com/seva-intake/api/internal/devanagari"
)

var (
	// ErrTransliterationInvalidInput indicates the caller provided invalid data.
	ErrTransliterationInvalidInput = errors.New("transliteration: invalid input")
	// ErrTransliterationUnavailable indicates a provider could not complete the request due to dependency issues.
	ErrTransliterationUnavailable = errors.New("transliteration: unavailable")
)

const (
	defaultMaxTransliterationInput = 120
	localTransliterationSource     = "seva-local"
)

// TransliterationProvider describes a dependency capable of producing Devanagari renderings,
// typically a remote phonetic service with a richer dictionary than the built-in engine.
type TransliterationProvider interface {
	Transliterate(ctx context.Context, req TransliterationRequest) (TransliterationResult, error)
}

// TransliterationRequest encapsulates the parameters sent to a provider.
type TransliterationRequest struct {
	Latin string
}

// TransliterationResult captures the provider output and provenance.
type TransliterationResult struct {
	Provider   string
	Devanagari string
}

// TransliterationServiceDeps wires the provider chain for transliteration operations.
type TransliterationServiceDeps struct {
	Provider       TransliterationProvider
	Engine         *devanagari.Transliterator
	Logger         func(context.Context, string, map[string]any)
	MaxInputLength int
}

type transliterationService struct {
	provider TransliterationProvider
	engine   *devanagari.Transliterator
	logger   func(context.Context, string, map[string]any)
	maxInput int
}

// NewTransliterationService constructs a TransliterationService. The built-in
// engine always backs the chain, so conversion never fails on provider outages.
func NewTransliterationService(deps TransliterationServiceDeps) TransliterationService {
	engine := deps.Engine
	if engine == nil {
		engine = devanagari.Default()
	}

	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}

	maxInput := deps.MaxInputLength
	if maxInput <= 0 {
		maxInput = defaultMaxTransliterationInput
	}

	return &transliterationService{
		provider: deps.Provider,
		engine:   engine,
		logger:   logger,
		maxInput: maxInput,
	}
}

// Convert renders a single Latin-script value in Devanagari.
func (s *transliterationService) Convert(ctx context.Context, cmd ConvertCommand) (ConvertResult, error) {
	input := strings.TrimSpace(cmd.Input)
	if input == "" {
		return ConvertResult{}, ErrTransliterationInvalidInput
	}
	if len([]rune(input)) > s.maxInput {
		return ConvertResult{}, ErrTransliterationInvalidInput
	}

	output, source := s.transliterate(ctx, input)
	return ConvertResult{
		Input:      input,
		Devanagari: output,
		Source:     source,
	}, nil
}

// DeriveNames transliterates each Latin name field, then merges the results
// into the operator-typed values without overwriting them.
func (s *transliterationService) DeriveNames(ctx context.Context, cmd DeriveNamesCommand) (DevanagariNames, error) {
	fields := []string{cmd.Latin.First, cmd.Latin.Middle, cmd.Latin.Surname}
	for _, field := range fields {
		if len([]rune(field)) > s.maxInput {
			return DevanagariNames{}, ErrTransliterationInvalidInput
		}
	}

	derived := DevanagariNames{}
	if first := strings.TrimSpace(cmd.Latin.First); first != "" {
		derived.First, _ = s.transliterate(ctx, first)
	}
	if middle := strings.TrimSpace(cmd.Latin.Middle); middle != "" {
		derived.Middle, _ = s.transliterate(ctx, middle)
	}
	if surname := strings.TrimSpace(cmd.Latin.Surname); surname != "" {
		derived.Surname, _ = s.transliterate(ctx, surname)
	}

	return cmd.Existing.Merge(derived), nil
}

// transliterate runs the provider chain for one value. Provider failures are
// logged and absorbed; the built-in engine keeps the intake flow alive.
func (s *transliterationService) transliterate(ctx context.Context, input string) (string, string) {
	if s.provider != nil {
		result, err := s.provider.Transliterate(ctx, TransliterationRequest{Latin: input})
		if err == nil && strings.TrimSpace(result.Devanagari) != "" {
			source := strings.TrimSpace(result.Provider)
			if source == "" {
				source = "unknown"
			}
			return strings.TrimSpace(result.Devanagari), source
		}
		if err != nil {
			if errors.Is(err, ErrTransliterationUnavailable) {
				s.logger(ctx, "transliteration.provider_unavailable", map[string]any{
					"input_length": len([]rune(input)),
				})
			} else {
				s.logger(ctx, "transliteration.provider_error", map[string]any{
					"input_length": len([]rune(input)),
					"error":        err.Error(),
				})
			}
		}
	}

	return s.engine.Transliterate(input), localTransliterationSource
}
