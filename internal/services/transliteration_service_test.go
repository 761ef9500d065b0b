package services

import (
	"context"
	"errors"
	"testing"
)

type stubProvider struct {
	result TransliterationResult
	err    error
	calls  []TransliterationRequest
}

func (s *stubProvider) Transliterate(ctx context.Context, req TransliterationRequest) (TransliterationResult, error) {
	s.calls = append(s.calls, req)
	if s.err != nil {
		return TransliterationResult{}, s.err
	}
	return s.result, nil
}

func TestConvertUsesProviderWhenAvailable(t *testing.T) {
	provider := &stubProvider{
		result: TransliterationResult{Provider: "seva-remote", Devanagari: "सुरेश"},
	}
	svc := NewTransliterationService(TransliterationServiceDeps{Provider: provider})

	result, err := svc.Convert(context.Background(), ConvertCommand{Input: "  Suresh  "})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if result.Devanagari != "सुरेश" {
		t.Errorf("Devanagari = %q, want %q", result.Devanagari, "सुरेश")
	}
	if result.Source != "seva-remote" {
		t.Errorf("Source = %q, want %q", result.Source, "seva-remote")
	}
	if result.Input != "Suresh" {
		t.Errorf("Input = %q, want trimmed %q", result.Input, "Suresh")
	}
	if len(provider.calls) != 1 || provider.calls[0].Latin != "Suresh" {
		t.Errorf("provider calls = %+v, want one call with %q", provider.calls, "Suresh")
	}
}

func TestConvertFallsBackOnProviderError(t *testing.T) {
	provider := &stubProvider{err: ErrTransliterationUnavailable}
	var events []string
	svc := NewTransliterationService(TransliterationServiceDeps{
		Provider: provider,
		Logger: func(_ context.Context, event string, _ map[string]any) {
			events = append(events, event)
		},
	})

	result, err := svc.Convert(context.Background(), ConvertCommand{Input: "suresh"})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if result.Devanagari != "सुरेश" {
		t.Errorf("Devanagari = %q, want built-in %q", result.Devanagari, "सुरेश")
	}
	if result.Source != localTransliterationSource {
		t.Errorf("Source = %q, want %q", result.Source, localTransliterationSource)
	}
	if len(events) != 1 || events[0] != "transliteration.provider_unavailable" {
		t.Errorf("logged events = %v, want provider_unavailable", events)
	}
}

func TestConvertFallsBackOnEmptyProviderOutput(t *testing.T) {
	provider := &stubProvider{result: TransliterationResult{Provider: "seva-remote", Devanagari: "  "}}
	svc := NewTransliterationService(TransliterationServiceDeps{Provider: provider})

	result, err := svc.Convert(context.Background(), ConvertCommand{Input: "sharma"})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if result.Devanagari != "शर्मा" {
		t.Errorf("Devanagari = %q, want built-in %q", result.Devanagari, "शर्मा")
	}
	if result.Source != localTransliterationSource {
		t.Errorf("Source = %q, want %q", result.Source, localTransliterationSource)
	}
}

func TestConvertWithoutProviderUsesBuiltInEngine(t *testing.T) {
	svc := NewTransliterationService(TransliterationServiceDeps{})

	result, err := svc.Convert(context.Background(), ConvertCommand{Input: "priya"})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if result.Devanagari != "प्रिया" {
		t.Errorf("Devanagari = %q, want %q", result.Devanagari, "प्रिया")
	}
}

func TestConvertRejectsInvalidInput(t *testing.T) {
	svc := NewTransliterationService(TransliterationServiceDeps{MaxInputLength: 5})

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "whitespace only", input: "   "},
		{name: "too long", input: "sureshkumar"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Convert(context.Background(), ConvertCommand{Input: tc.input}); !errors.Is(err, ErrTransliterationInvalidInput) {
				t.Errorf("Convert(%q) error = %v, want ErrTransliterationInvalidInput", tc.input, err)
			}
		})
	}
}

func TestDeriveNamesKeepsOperatorValues(t *testing.T) {
	svc := NewTransliterationService(TransliterationServiceDeps{})

	names, err := svc.DeriveNames(context.Background(), DeriveNamesCommand{
		Latin:    NameTriple{First: "Suresh", Surname: "Sharma"},
		Existing: DevanagariNames{Surname: "हाताने"},
	})
	if err != nil {
		t.Fatalf("DeriveNames: %v", err)
	}
	if names.First != "सुरेश" {
		t.Errorf("First = %q, want derived %q", names.First, "सुरेश")
	}
	if names.Middle != "" {
		t.Errorf("Middle = %q, want empty", names.Middle)
	}
	if names.Surname != "हाताने" {
		t.Errorf("Surname = %q, operator value must survive derivation", names.Surname)
	}
}

func TestDeriveNamesRejectsOverlongField(t *testing.T) {
	svc := NewTransliterationService(TransliterationServiceDeps{MaxInputLength: 4})

	_, err := svc.DeriveNames(context.Background(), DeriveNamesCommand{
		Latin: NameTriple{First: "Suresh", Surname: "Rao"},
	})
	if !errors.Is(err, ErrTransliterationInvalidInput) {
		t.Fatalf("DeriveNames error = %v, want ErrTransliterationInvalidInput", err)
	}
}
