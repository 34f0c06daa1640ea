package i18n

import (
	"context"
	"testing"
)

func initLang(t *testing.T, lang string) context.Context {
	t.Helper()
	if err := Init(lang); err != nil {
		t.Fatalf("Init(%q): %v", lang, err)
	}
	loc := NewLocalizer(lang)
	return WithLocalizer(context.Background(), loc)
}

func TestTranslateEnglish(t *testing.T) {
	ctx := initLang(t, "en")

	got := T(ctx, "QuitConfirm")
	if got != "Are you sure?" {
		t.Errorf("T(QuitConfirm) = %q, want 'Are you sure?'", got)
	}

	got = T(ctx, "SpecifySheet")
	if got != "Specify sheet number." {
		t.Errorf("T(SpecifySheet) = %q, want 'Specify sheet number.'", got)
	}
}

func TestTranslateGerman(t *testing.T) {
	ctx := initLang(t, "de")

	got := T(ctx, "PromptProblem")
	if got != "Aufgabe" {
		t.Errorf("T(PromptProblem) = %q, want 'Aufgabe'", got)
	}

	got = T(ctx, "Panic")
	if got != "Panik!" {
		t.Errorf("T(Panic) = %q, want 'Panik!'", got)
	}
}

func TestPluralTranslation(t *testing.T) {
	ctx := initLang(t, "en")

	got1 := Tp(ctx, "StudentsAdded", 1)
	if got1 != "1 student added." {
		t.Errorf("Tp(StudentsAdded, 1) = %q, want '1 student added.'", got1)
	}

	got5 := Tp(ctx, "StudentsAdded", 5)
	if got5 != "5 students added." {
		t.Errorf("Tp(StudentsAdded, 5) = %q, want '5 students added.'", got5)
	}
}

func TestTemplateDataTranslation(t *testing.T) {
	ctx := initLang(t, "en")

	got := Td(ctx, "RateSheetIntro", map[string]any{"Sheet": "3"})
	if got != "Rate sheet no 3. Be gentle!" {
		t.Errorf("Td(RateSheetIntro, Sheet=3) = %q, want 'Rate sheet no 3. Be gentle!'", got)
	}
}

func TestContextLanguage(t *testing.T) {
	initLang(t, "en")

	ctx := Context(context.Background(), "de")
	if got := T(ctx, "QuitConfirm"); got != "Wirklich beenden?" {
		t.Errorf("T(QuitConfirm) in de = %q, want 'Wirklich beenden?'", got)
	}

	if got := T(context.Background(), "QuitConfirm"); got != "Are you sure?" {
		t.Errorf("T(QuitConfirm) without localizer = %q, want default language", got)
	}
}

func TestMissingKey(t *testing.T) {
	ctx := initLang(t, "en")

	got := T(ctx, "NonExistentKey")
	if got != "NonExistentKey" {
		t.Errorf("T(NonExistentKey) = %q, want 'NonExistentKey'", got)
	}
}

func TestInitInvalidLanguage(t *testing.T) {
	if err := Init("not a tag!"); err == nil {
		t.Error("Init with invalid tag: expected error")
	}
}
