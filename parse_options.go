package fstr

import "github.com/rs/zerolog"

// ParseOption configures Parse.
type ParseOption func(*parseConfig)

type parseConfig struct {
	command     bool
	mention     bool
	hashtag     bool
	userSticker bool
	link        bool
	markdown    bool
	textEmoji   bool
	emojiTokens bool
	aliases     *AliasTable
	wordRune    func(rune) bool
	logger      zerolog.Logger

	// links is scratch state of the link scanner for the text being scanned.
	links linkMemo
}

func newParseConfig(opts []ParseOption) parseConfig {
	cfg := parseConfig{
		mention:     true,
		hashtag:     true,
		userSticker: true,
		link:        true,
		markdown:    true,
		textEmoji:   true,
		aliases:     DefaultAliases(),
		wordRune:    IsWordRune,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithCommands enables or disables /command detection. Disabled by default.
func WithCommands(enabled bool) ParseOption {
	return func(cfg *parseConfig) {
		cfg.command = enabled
	}
}

// WithMentions enables or disables @mention detection.
func WithMentions(enabled bool) ParseOption {
	return func(cfg *parseConfig) {
		cfg.mention = enabled
	}
}

// WithHashTags enables or disables #hashtag detection.
func WithHashTags(enabled bool) ParseOption {
	return func(cfg *parseConfig) {
		cfg.hashtag = enabled
	}
}

// WithUserStickers enables or disables legacy #u123s# sticker detection.
func WithUserStickers(enabled bool) ParseOption {
	return func(cfg *parseConfig) {
		cfg.userSticker = enabled
	}
}

// WithLinks enables or disables link detection.
func WithLinks(enabled bool) ParseOption {
	return func(cfg *parseConfig) {
		cfg.link = enabled
	}
}

// WithMarkdown enables or disables markdown delimiter parsing.
func WithMarkdown(enabled bool) ParseOption {
	return func(cfg *parseConfig) {
		cfg.markdown = enabled
	}
}

// WithTextEmoji enables or disables detection of textual emoji aliases
// such as ":)".
func WithTextEmoji(enabled bool) ParseOption {
	return func(cfg *parseConfig) {
		cfg.textEmoji = enabled
	}
}

// WithEmojiTokens emits emoji as standalone Emoji and TextEmoji tokens
// instead of annotating them inside text tokens. Disabled by default.
func WithEmojiTokens(enabled bool) ParseOption {
	return func(cfg *parseConfig) {
		cfg.emojiTokens = enabled
	}
}

// WithAll sets every scanner family at once. Options given after it
// override single families.
func WithAll(enabled bool) ParseOption {
	return func(cfg *parseConfig) {
		cfg.command = enabled
		cfg.mention = enabled
		cfg.hashtag = enabled
		cfg.userSticker = enabled
		cfg.link = enabled
		cfg.markdown = enabled
		cfg.textEmoji = enabled
	}
}

// WithAliases replaces the textual emoji alias table.
func WithAliases(table *AliasTable) ParseOption {
	return func(cfg *parseConfig) {
		if table != nil {
			cfg.aliases = table
		}
	}
}

// WithWordRune replaces the classifier deciding which runes belong to
// words for command, mention and hashtag detection.
func WithWordRune(fn func(rune) bool) ParseOption {
	return func(cfg *parseConfig) {
		if fn != nil {
			cfg.wordRune = fn
		}
	}
}

// WithLogger sets the logger receiving debug events such as unpaired
// markdown delimiters.
func WithLogger(logger zerolog.Logger) ParseOption {
	return func(cfg *parseConfig) {
		cfg.logger = logger
	}
}
