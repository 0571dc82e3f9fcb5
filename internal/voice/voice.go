// Package voice identifies which people are named in a spoken clip.
//
// Audio is transcribed by a speech-to-text model, then every word of the
// transcript is fuzzily compared against the candidate names.
package voice

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/Swagat404/SettleUp/internal/openai"
)

// DefaultThreshold is the minimum similarity score (0-100) for a match.
const DefaultThreshold = 80

const transcribePrompt = "The following audio is in English with possible accent variations."

// Transcriber is the speech-to-text call the client needs.
type Transcriber interface {
	Transcribe(ctx context.Context, req openai.TranscriptionRequest) (string, error)
}

// Config configures a Client.
type Config struct {
	Model     string
	Language  string
	Threshold int
}

// Client implements participant matching from audio.
type Client struct {
	stt Transcriber
	cfg Config
}

// New creates a Client. A zero threshold means DefaultThreshold.
func New(stt Transcriber, cfg Config) *Client {
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	return &Client{stt: stt, cfg: cfg}
}

// Match transcribes audio and returns the candidates heard in it.
func (c *Client) Match(ctx context.Context, audio []byte, candidates []string) ([]string, error) {
	text, err := c.stt.Transcribe(ctx, openai.TranscriptionRequest{
		Model:    c.cfg.Model,
		Audio:    audio,
		Language: c.cfg.Language,
		Prompt:   transcribePrompt,
	})
	if err != nil {
		return nil, fmt.Errorf("transcribe audio: %w", err)
	}
	return MatchNames(text, candidates, c.cfg.Threshold), nil
}

// MatchNames returns the candidates that some word of text resembles.
//
// Each word is compared with every candidate's full name and given name;
// the best-scoring candidate is taken if its score reaches threshold, with
// ties going to the earlier candidate. The result keeps the order of first
// match and holds no duplicates.
func MatchNames(text string, candidates []string, threshold int) []string {
	folded := make([][]string, len(candidates))
	for i, name := range candidates {
		full := fold(name)
		forms := []string{full}
		if first, _, ok := strings.Cut(full, " "); ok && first != "" {
			forms = append(forms, first)
		}
		folded[i] = forms
	}

	var found []string
	seen := make(map[int]bool)
	for _, word := range words(fold(text)) {
		best, bestScore := -1, 0
		for i, forms := range folded {
			for _, form := range forms {
				if s := ratio(word, form); s > bestScore {
					best, bestScore = i, s
				}
			}
		}
		if best < 0 || bestScore < threshold || seen[best] {
			continue
		}
		seen[best] = true
		found = append(found, candidates[best])
	}
	return found
}

// ratio scores the similarity of a and b from 0 to 100 as
// 2*lcs / (len(a)+len(b)), rounded to the nearest integer, where lcs is the
// length of their longest common subsequence. A substitution therefore
// costs one deletion plus one insertion.
func ratio(a, b string) int {
	total := len([]rune(a)) + len([]rune(b))
	if total == 0 {
		return 100
	}
	lcs := edlib.LCS(a, b)
	return int(math.Round(100 * float64(2*lcs) / float64(total)))
}

// fold lowercases s and strips diacritics so "José" and "jose" compare equal.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return strings.Join(strings.Fields(cases.Fold().String(stripped)), " ")
}

// words splits s into runs of letters, digits and underscores.
func words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}
