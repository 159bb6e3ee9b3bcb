package chat_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/neurolink/internal/app/chat"
	"github.com/PabloGalante/neurolink/internal/domain"
)

func TestClassify(t *testing.T) {
	c := chat.NewClassifier(chat.DefaultLexicon())

	cases := []struct {
		text string
		want domain.DisplayType
	}{
		{"try this breathing exercise", domain.DisplayResource},
		{"I want to end it all", domain.DisplayEscalation},
		{"ok, sounds good", domain.DisplayNormal},
		{"Let's break this into small steps...", domain.DisplayResource},
		{"Please call 988 or text HELLO to 741741.", domain.DisplayEscalation},
		{"That sounds really hard. I'm glad you told me.", domain.DisplayNormal},
		{"I'm worried you might hurt myself... try a breathing exercise", domain.DisplayEscalation},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, c.Classify(tc.text), tc.text)
	}
}

func TestClassifyEscalationWinsOverResource(t *testing.T) {
	c := chat.NewClassifier(chat.DefaultLexicon())

	for _, phrase := range chat.DefaultLexicon().Crisis {
		text := "here is a tip, try this exercise step by step: " + phrase
		assert.Equal(t, domain.DisplayEscalation, c.Classify(text), phrase)
	}
}

func TestLoadLexicon(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("crisis:\n  - no way out\n"), 0o600))

	lex, err := chat.LoadLexicon(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"no way out"}, lex.Crisis)
	assert.Equal(t, chat.DefaultLexicon().Resource, lex.Resource)

	c := chat.NewClassifier(lex)
	assert.Equal(t, domain.DisplayEscalation, c.Classify("I feel there is NO WAY OUT"))
	assert.Equal(t, domain.DisplayNormal, c.Classify("I want to end it all"))
}

func TestLoadLexiconDefaultsAndErrors(t *testing.T) {
	lex, err := chat.LoadLexicon("")
	require.NoError(t, err)
	assert.Equal(t, chat.DefaultLexicon(), lex)

	_, err = chat.LoadLexicon(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("crisis: [unterminated"), 0o600))
	_, err = chat.LoadLexicon(bad)
	assert.Error(t, err)
}
