package levels

import "fmt"

// Reaction selects what happens when an actor hits a tile.
type Reaction int

const (
	ReactionNone Reaction = iota
	ReactionBreakable
	ReactionQuestionMark
)

var reactionNames = map[string]Reaction{
	"":             ReactionNone,
	"breakable":    ReactionBreakable,
	"questionMark": ReactionQuestionMark,
}

// ParseReaction maps a tile "callback" property to a Reaction.
func ParseReaction(name string) (Reaction, error) {
	r, ok := reactionNames[name]
	if !ok {
		return ReactionNone, fmt.Errorf("levels: unknown tile reaction %q", name)
	}
	return r, nil
}

func (r Reaction) String() string {
	switch r {
	case ReactionBreakable:
		return "breakable"
	case ReactionQuestionMark:
		return "questionMark"
	}
	return "none"
}
