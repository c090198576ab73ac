// Package quests is the catalog of mini-games a student can complete for a
// badge, and the quest sets offered per subject.
package quests

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/sharkbite/internal/common"
)

const (
	DailyChallenge = "daily-challenge"
	StoryBuilder   = "story-builder"
	GrammarGame    = "grammar-game"
	TypingQuest    = "typing-quest"
)

// TypingPassage is the text the typing quest asks for.
const TypingPassage = "The shark swims silently below the waves"

// Quest is one mini-game. Answer is empty for quests that accept any
// completion. Options lists the choices or word tiles shown with the prompt.
type Quest struct {
	ID      string
	Title   string
	Prompt  string
	Options []string
	Answer  string
	Badge   string
}

// Timed reports whether completing the quest also records typing time.
func (q Quest) Timed() bool { return q.ID == TypingQuest }

// Check compares answer with the expected one after trimming. Quests
// without an answer accept anything.
func (q Quest) Check(answer string) error {
	if q.Answer == "" {
		return nil
	}
	if strings.TrimSpace(answer) != q.Answer {
		return fmt.Errorf("%w for %s", common.ErrWrongAnswer, q.Title)
	}
	return nil
}

var catalog = []Quest{
	{
		ID:      DailyChallenge,
		Title:   "Daily Challenge",
		Prompt:  "Which ocean is the largest?",
		Options: []string{"Atlantic", "Indian", "Pacific", "Arctic"},
		Answer:  "Pacific",
		Badge:   "Ocean Brain",
	},
	{
		ID:      StoryBuilder,
		Title:   "Story Builder",
		Prompt:  "Build your sentence:",
		Options: []string{"The shark", "wears a tuxedo", "and solves math problems"},
		Badge:   "Creative Fin",
	},
	{
		ID:     GrammarGame,
		Title:  "Grammar Game",
		Prompt: `Fix this sentence: "he swim fast yesterday"`,
		Answer: "He swam fast yesterday.",
		Badge:  "Grammar Shark",
	},
	{
		ID:     TypingQuest,
		Title:  "Typing Quest",
		Prompt: "Type: \"" + TypingPassage + "\"",
		Answer: TypingPassage,
		Badge:  "Typing Shark",
	},
}

var bySubject = map[string][]string{
	"Math":    {DailyChallenge},
	"Writing": {StoryBuilder, GrammarGame},
	"Coding":  {TypingQuest},
}

// All returns the whole catalog.
func All() []Quest {
	out := make([]Quest, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a quest by id.
func Lookup(id string) (Quest, error) {
	id = strings.TrimSpace(id)
	for _, q := range catalog {
		if q.ID == id {
			return q, nil
		}
	}
	return Quest{}, fmt.Errorf("%w: %q", common.ErrQuestNotFound, id)
}

// ForSubject returns the quests offered for subject. An empty or unknown
// subject gets the whole catalog.
func ForSubject(subject string) []Quest {
	ids, ok := bySubject[subject]
	if !ok {
		return All()
	}
	out := make([]Quest, 0, len(ids))
	for _, id := range ids {
		q, _ := Lookup(id)
		out = append(out, q)
	}
	return out
}
