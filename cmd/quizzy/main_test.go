package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/saulo-duarte/quizzy/internal/catalog"
)

func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	err := newApp(strings.NewReader(stdin), out).RunContext(context.Background(), append([]string{"quizzy"}, args...))
	return out.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("QUIZZY_PREFERENCES_PATH", filepath.Join(dir, "prefs.json"))
	t.Setenv("QUIZZY_CATALOG_PATH", "")
	t.Setenv("QUIZZY_DATABASE_DSN", "")
	t.Setenv("LOG_LEVEL", "panic")
	return dir
}

func TestList(t *testing.T) {
	isolate(t)
	out, err := runApp(t, "", "list")
	if err != nil {
		t.Fatalf("Erro inesperado: %v", err)
	}
	for _, id := range []string{"javascript-fundamentals", "react-basics", "general-knowledge"} {
		if !strings.Contains(out, id) {
			t.Errorf("Esperado %q na listagem, Recebido:\n%s", id, out)
		}
	}
}

func TestValidate(t *testing.T) {
	dir := isolate(t)

	t.Run("embedded", func(t *testing.T) {
		out, err := runApp(t, "", "validate")
		if err != nil {
			t.Fatalf("Erro inesperado: %v", err)
		}
		if !strings.Contains(out, "3 quizzes ok") {
			t.Errorf("Esperado 3 quizzes ok, Recebido %q", out)
		}
	})

	t.Run("broken file", func(t *testing.T) {
		path := filepath.Join(dir, "broken.yaml")
		body := "quizzes:\n  - id: x\n    title: X\n    category: General\n    time_per_question: 0\n    questions: []\n"
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := runApp(t, "", "validate", path)
		if !errors.Is(err, catalog.ErrMalformedCatalog) {
			t.Errorf("Esperado ErrMalformedCatalog, Recebido %v", err)
		}
	})
}

func TestTheme(t *testing.T) {
	isolate(t)

	steps := []struct {
		args []string
		want string
	}{
		{[]string{"theme"}, "light"},
		{[]string{"theme", "toggle"}, "dark"},
		{[]string{"theme", "show"}, "dark"},
		{[]string{"theme", "light"}, "light"},
		{[]string{"theme", "dark"}, "dark"},
	}
	for _, step := range steps {
		out, err := runApp(t, "", step.args...)
		if err != nil {
			t.Fatalf("%v: erro inesperado: %v", step.args, err)
		}
		if strings.TrimSpace(out) != step.want {
			t.Errorf("%v: Esperado %q, Recebido %q", step.args, step.want, out)
		}
	}

	if _, err := runApp(t, "", "theme", "blue"); !errors.Is(err, errUnknownTheme) {
		t.Errorf("Esperado errUnknownTheme, Recebido %v", err)
	}
}

func TestPlayQuitsOnInput(t *testing.T) {
	isolate(t)
	out, err := runApp(t, "q\n", "play", "--no-color")
	if err != nil {
		t.Fatalf("Erro inesperado: %v", err)
	}
	if !strings.Contains(out, "Choose a quiz") {
		t.Errorf("Esperado tela de seleção, Recebido:\n%s", out)
	}
}
