// Package extract isolates a structured command payload from a free-text
// model reply. The model is asked to answer with a bare JSON object, but in
// practice it wraps the object in markdown fences or surrounding prose, so
// extraction runs a priority-ordered list of strategies and the first one
// that applies wins.
package extract

import (
	"errors"
	"strings"
)

// ErrUnclosedFence is returned when a reply opens a tagged fence but never
// closes it. This is a malformed reply, not a conversational one.
var ErrUnclosedFence = errors.New("fenced block not terminated")

// Strategy tries to isolate a candidate payload from a raw reply.
// matched reports whether the strategy applies to the reply at all; when it
// does, err may still flag the match as malformed.
type Strategy interface {
	Name() string
	Apply(reply string) (candidate string, matched bool, err error)
}

// Extractor runs strategies in order and stops at the first match.
type Extractor struct {
	strategies []Strategy
}

func New(strategies ...Strategy) *Extractor {
	return &Extractor{strategies: strategies}
}

// Default returns the standard chain: tagged fence, whole-reply object,
// greedy bracket scan.
func Default() *Extractor {
	return New(FenceStrategy{Tag: "json"}, PureStrategy{}, BracketScanStrategy{})
}

// Extract returns the candidate payload, or found=false when the reply is
// plain conversational text. A non-nil error means a strategy matched but
// the reply is malformed (e.g. an unterminated fence); the candidate is
// empty in that case.
func (e *Extractor) Extract(reply string) (candidate string, found bool, err error) {
	for _, s := range e.strategies {
		candidate, matched, err := s.Apply(reply)
		if !matched {
			continue
		}
		if err != nil {
			return "", true, err
		}
		return candidate, true, nil
	}
	return "", false, nil
}

// FenceStrategy extracts the content of the first markdown fence tagged
// with Tag, strictly between the opening fence and the next closing fence.
type FenceStrategy struct {
	Tag string
}

func (FenceStrategy) Name() string { return "fence" }

func (s FenceStrategy) Apply(reply string) (string, bool, error) {
	open := "```" + s.Tag
	start := strings.Index(reply, open)
	if start == -1 {
		return "", false, nil
	}
	rest := reply[start+len(open):]
	end := strings.Index(rest, "```")
	if end == -1 {
		return "", true, ErrUnclosedFence
	}
	return strings.TrimSpace(rest[:end]), true, nil
}

// PureStrategy matches replies that are nothing but a JSON object once
// trimmed.
type PureStrategy struct{}

func (PureStrategy) Name() string { return "pure" }

func (PureStrategy) Apply(reply string) (string, bool, error) {
	trimmed := strings.TrimSpace(reply)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		return trimmed, true, nil
	}
	return "", false, nil
}

// BracketScanStrategy takes everything from the first '{' to the last '}'.
// It tolerates prose around a single object but is knowingly unsound for
// replies containing several independent objects or literal braces in
// prose: those yield one merged candidate that fails to decode downstream.
// Kept as a separate strategy so a stricter contract can replace it without
// touching the rest of the chain.
type BracketScanStrategy struct{}

func (BracketScanStrategy) Name() string { return "bracket-scan" }

func (BracketScanStrategy) Apply(reply string) (string, bool, error) {
	start := strings.Index(reply, "{")
	if start == -1 {
		return "", false, nil
	}
	end := strings.LastIndex(reply, "}")
	if end == -1 || end <= start {
		return "", false, nil
	}
	return reply[start : end+1], true, nil
}
