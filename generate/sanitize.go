package generate

import (
	"regexp"
	"strings"
)

// reThinkBlock matches one reasoning segment. The lazy body stops at the
// first closing tag, and an opening tag with no closing tag never matches.
var reThinkBlock = regexp.MustCompile(`(?is)<think>.*?</think>`)

// seamTags are dropped when removing a segment joins their two halves.
var seamTags = []string{"<think>", "</think>"}

// StripThinking removes every <think>...</think> segment from a model reply.
// Text around the removed segments is kept as-is, except that a tag formed
// only by joining the text on both sides of a removed segment is dropped too.
func StripThinking(reply string) string {
	locs := reThinkBlock.FindAllStringIndex(reply, -1)
	if locs == nil {
		return reply
	}

	out := reply[:locs[0][0]]
	for i, loc := range locs {
		end := len(reply)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		left, right := trimSeam(out, reply[loc[1]:end])
		out = left + right
	}
	return out
}

// trimSeam drops a tag that straddles the boundary between left and right.
func trimSeam(left, right string) (string, string) {
	for changed := true; changed; {
		changed = false
		for _, tag := range seamTags {
			for k := 1; k < len(tag); k++ {
				if len(left) < k || len(right) < len(tag)-k {
					continue
				}
				if strings.EqualFold(left[len(left)-k:], tag[:k]) && strings.EqualFold(right[:len(tag)-k], tag[k:]) {
					left, right = left[:len(left)-k], right[len(tag)-k:]
					changed = true
					break
				}
			}
		}
	}
	return left, right
}
