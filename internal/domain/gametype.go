package domain

import "sort"

// GameType identifies a rule-set
type GameType string

const (
	GameWouldYouRather GameType = "would_you_rather"
	GameHotTakes       GameType = "hot_takes"
	GameMostLikely     GameType = "most_likely"
	GameWordExplain    GameType = "word_explain"
	GameTrivia         GameType = "trivia"
)

// String returns the string representation of the game type
func (g GameType) String() string {
	return string(g)
}

// GameInfo is the display metadata of a game type
type GameInfo struct {
	Type        GameType `json:"type"`
	Name        string   `json:"name"`
	Icon        string   `json:"icon"`
	Description string   `json:"description"`
}

var gameInfos = map[GameType]GameInfo{
	GameWouldYouRather: {
		Type:        GameWouldYouRather,
		Name:        "Would You Rather",
		Icon:        "⚖️",
		Description: "Pick a side. Side with the majority to score.",
	},
	GameHotTakes: {
		Type:        GameHotTakes,
		Name:        "Hot Takes",
		Icon:        "🔥",
		Description: "Agree or disagree with a spicy statement.",
	},
	GameMostLikely: {
		Type:        GameMostLikely,
		Name:        "Most Likely To",
		Icon:        "👉",
		Description: "Vote for the player who fits the prompt best.",
	},
	GameWordExplain: {
		Type:        GameWordExplain,
		Name:        "Explain It",
		Icon:        "💬",
		Description: "One player explains, everyone else races to guess the word.",
	},
	GameTrivia: {
		Type:        GameTrivia,
		Name:        "Trivia",
		Icon:        "❓",
		Description: "Answer fast, answer right.",
	},
}

// LookupGameInfo returns the display metadata for a game type. Unknown types
// get a generic entry named after the type.
func LookupGameInfo(gameType GameType) GameInfo {
	if info, ok := gameInfos[gameType]; ok {
		return info
	}
	return GameInfo{Type: gameType, Name: string(gameType), Icon: "🎲"}
}

// AllGameInfos returns the display metadata of every known game type, sorted by type
func AllGameInfos() []GameInfo {
	infos := make([]GameInfo, 0, len(gameInfos))
	for _, info := range gameInfos {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Type < infos[j].Type
	})
	return infos
}
