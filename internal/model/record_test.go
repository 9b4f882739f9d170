package model

import (
	"errors"
	"testing"
	"time"
)

func validRecord(kind Kind) Record {
	now := time.Now().UTC()
	return Record{
		ID:         "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		Kind:       kind,
		Content:    "Lives in Beijing",
		Category:   "location",
		Source:     "conversation",
		CreatedAt:  now,
		UpdatedAt:  now,
		Confidence: 1.0,
		Status:     StatusActive,
		Importance: ImportanceActive,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Record)
		wantErr bool
	}{
		{"valid fact", func(r *Record) {}, false},
		{"missing content", func(r *Record) { r.Content = "" }, true},
		{"missing category", func(r *Record) { r.Category = "" }, true},
		{"missing source", func(r *Record) { r.Source = "" }, true},
		{"confidence too high", func(r *Record) { r.Confidence = 1.5 }, true},
		{"confidence negative", func(r *Record) { r.Confidence = -0.1 }, true},
		{"unknown status", func(r *Record) { r.Status = "gone" }, true},
		{"unknown kind", func(r *Record) { r.Kind = "opinion" }, true},
		{"unknown importance", func(r *Record) { r.Importance = "vital" }, true},
		{"negative access count", func(r *Record) { r.AccessCount = -1 }, true},
		{"strength on fact", func(r *Record) { r.Strength = StrengthStrong }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord(KindFact)
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateKindFields(t *testing.T) {
	pref := validRecord(KindPreference)
	pref.Strength = StrengthWeak
	if err := pref.Validate(); err != nil {
		t.Errorf("preference with strength: %v", err)
	}

	pref.Supersedes = "some-id"
	if err := pref.Validate(); err == nil {
		t.Error("expected error: only facts supersede")
	}

	exp := validRecord(KindExperience)
	exp.Date = "2026-08-01"
	exp.Outcome = "learned Go"
	if err := exp.Validate(); err != nil {
		t.Errorf("experience with date/outcome: %v", err)
	}
}

func TestValidationErrorType(t *testing.T) {
	r := validRecord(KindFact)
	r.Confidence = 2.0
	err := r.Validate()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if ve.Field != "confidence" {
		t.Errorf("expected field confidence, got %q", ve.Field)
	}
	if !IsValidation(err) {
		t.Error("IsValidation should report true")
	}
}

func TestReference(t *testing.T) {
	r := validRecord(KindFact)
	if !r.Reference().Equal(r.CreatedAt) {
		t.Error("expected created_at when never accessed")
	}

	accessed := time.Now().UTC().Add(-time.Hour)
	r.LastAccessed = &accessed
	if !r.Reference().Equal(accessed) {
		t.Error("expected last_accessed when set")
	}
}

func TestStagedKindRouting(t *testing.T) {
	for _, k := range []StagedKind{StagedTask, StagedCompleted, StagedDecision, StagedPitfall} {
		if !k.IsProject() {
			t.Errorf("%s should be a project kind", k)
		}
		if _, ok := k.RecordKind(); ok {
			t.Errorf("%s should not map to a record kind", k)
		}
	}
	for staged, kind := range map[StagedKind]Kind{
		StagedFact:       KindFact,
		StagedPreference: KindPreference,
		StagedExperience: KindExperience,
	} {
		got, ok := staged.RecordKind()
		if !ok || got != kind {
			t.Errorf("%s: expected %s, got %s (%v)", staged, kind, got, ok)
		}
	}
}
