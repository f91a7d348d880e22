package services

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
)

const referenceTokenMaxLength = 100

var (
	hashtagPattern = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)
	mentionPattern = regexp.MustCompile(`@([\p{L}\p{N}_]+)`)
)

// ExtractHashtags pulls hashtag tokens out of free text, lower-cased and
// de-duplicated in first-seen order. Tokens longer than 100 runes are
// dropped silently to guard against pathological input.
func ExtractHashtags(content string) []string {
	return extractReferences(hashtagPattern, content, true)
}

// ExtractMentions pulls mention tokens out of free text as written, since
// display names are matched verbatim against the user directory.
func ExtractMentions(content string) []string {
	return extractReferences(mentionPattern, content, false)
}

func extractReferences(pattern *regexp.Regexp, content string, foldCase bool) []string {
	if len(strings.TrimSpace(content)) == 0 {
		return nil
	}

	var tokens []string
	for _, match := range pattern.FindAllStringSubmatch(content, -1) {
		token := match[1]
		if foldCase {
			token = strings.ToLower(token)
		}
		if utf8.RuneCountInString(token) > referenceTokenMaxLength {
			continue
		}
		tokens = append(tokens, token)
	}

	return lo.Uniq(tokens)
}
