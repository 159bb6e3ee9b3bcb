package chat

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/PabloGalante/neurolink/internal/domain"
)

// Lexicon holds the phrase lists used to flag replies.
// This is best-effort lexical flagging, not a crisis detector.
type Lexicon struct {
	Crisis   []string `yaml:"crisis"`
	Resource []string `yaml:"resource"`
}

// DefaultLexicon returns the built-in phrase lists. The crisis list includes
// the hotline numbers the persona is told to cite.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Crisis:   []string{"suicide", "kill myself", "hurt myself", "end it all", "988", "741741"},
		Resource: []string{"tip", "try", "exercise", "breathe", "step", "guide"},
	}
}

// LoadLexicon reads a YAML lexicon file. An empty path returns the defaults;
// a list missing from the file keeps its default.
func LoadLexicon(path string) (Lexicon, error) {
	lex := DefaultLexicon()
	if path == "" {
		return lex, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Lexicon{}, fmt.Errorf("reading lexicon: %w", err)
	}

	var fromFile Lexicon
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return Lexicon{}, fmt.Errorf("parsing lexicon %s: %w", path, err)
	}

	if len(fromFile.Crisis) > 0 {
		lex.Crisis = fromFile.Crisis
	}
	if len(fromFile.Resource) > 0 {
		lex.Resource = fromFile.Resource
	}
	return lex, nil
}

// Classifier tags a reply's display style.
type Classifier struct {
	crisis   []string
	resource *regexp.Regexp
}

// NewClassifier compiles the lexicon. Resource phrases match as substrings.
func NewClassifier(lex Lexicon) *Classifier {
	crisis := make([]string, 0, len(lex.Crisis))
	for _, p := range lex.Crisis {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			crisis = append(crisis, p)
		}
	}

	var quoted []string
	for _, p := range lex.Resource {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			quoted = append(quoted, regexp.QuoteMeta(p))
		}
	}

	c := &Classifier{crisis: crisis}
	if len(quoted) > 0 {
		c.resource = regexp.MustCompile(strings.Join(quoted, "|"))
	}
	return c
}

// Classify maps raw backend text to normal, escalation or resource.
// Escalation always wins over resource.
func (c *Classifier) Classify(text string) domain.DisplayType {
	lower := strings.ToLower(text)

	for _, p := range c.crisis {
		if strings.Contains(lower, p) {
			return domain.DisplayEscalation
		}
	}

	if c.resource != nil && c.resource.MatchString(lower) {
		return domain.DisplayResource
	}
	return domain.DisplayNormal
}
