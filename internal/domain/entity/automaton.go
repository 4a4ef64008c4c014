package entity

import "errors"

// ErrNotBuilt is returned by Scan before Build has been called.
var ErrNotBuilt = errors.New("automaton: not built")

// Automaton is an Aho-Corasick matcher over the store's patterns.
// Matching is case-insensitive and byte-offset exact: input bytes are
// lowercased in ASCII only, so offsets line up with the original text.
// Build once, then Scan from any number of goroutines.
type Automaton struct {
	nodes    []acNode
	patterns []Pattern
	built    bool
}

type acNode struct {
	next map[byte]int
	fail int
	out  []int
}

// NewAutomaton returns an empty, unbuilt automaton.
func NewAutomaton() *Automaton {
	return &Automaton{nodes: []acNode{{next: make(map[byte]int)}}}
}

// Build constructs the trie and failure links for the given patterns.
// It replaces any previous build.
func (a *Automaton) Build(patterns []Pattern) {
	a.nodes = []acNode{{next: make(map[byte]int)}}
	a.patterns = patterns
	for i, p := range patterns {
		a.insert(asciiLower(p.Text), i)
	}
	a.link()
	a.built = true
}

func (a *Automaton) insert(text string, patternIndex int) {
	cur := 0
	for i := 0; i < len(text); i++ {
		b := text[i]
		next, ok := a.nodes[cur].next[b]
		if !ok {
			next = len(a.nodes)
			a.nodes = append(a.nodes, acNode{next: make(map[byte]int)})
			a.nodes[cur].next[b] = next
		}
		cur = next
	}
	a.nodes[cur].out = append(a.nodes[cur].out, patternIndex)
}

// link computes failure transitions breadth-first and merges each
// node's output with its failure node's, so one state visit reports
// every pattern ending there.
func (a *Automaton) link() {
	queue := make([]int, 0, len(a.nodes))
	for _, child := range a.nodes[0].next {
		a.nodes[child].fail = 0
		queue = append(queue, child)
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for b, child := range a.nodes[cur].next {
			f := a.nodes[cur].fail
			for f != 0 {
				if _, ok := a.nodes[f].next[b]; ok {
					break
				}
				f = a.nodes[f].fail
			}
			if next, ok := a.nodes[f].next[b]; ok && next != child {
				a.nodes[child].fail = next
			} else {
				a.nodes[child].fail = 0
			}
			a.nodes[child].out = append(a.nodes[child].out, a.nodes[a.nodes[child].fail].out...)
			queue = append(queue, child)
		}
	}
}

// Scan reports every pattern occurrence in text that sits on word
// boundaries. Offsets are byte positions into the original text.
func (a *Automaton) Scan(text string) ([]Match, error) {
	if !a.built {
		return nil, ErrNotBuilt
	}
	var matches []Match
	cur := 0
	for i := 0; i < len(text); i++ {
		b := lowerByte(text[i])
		for cur != 0 {
			if _, ok := a.nodes[cur].next[b]; ok {
				break
			}
			cur = a.nodes[cur].fail
		}
		if next, ok := a.nodes[cur].next[b]; ok {
			cur = next
		}
		for _, pi := range a.nodes[cur].out {
			p := a.patterns[pi]
			end := i + 1
			start := end - len(p.Text)
			if !wordBoundary(text, start, end) {
				continue
			}
			matches = append(matches, Match{Start: start, End: end, Pattern: p})
		}
	}
	return matches, nil
}

// wordBoundary reports whether [start, end) is not glued to adjacent
// alphanumeric bytes. "Mars" inside "Marshmallow" fails this check.
func wordBoundary(text string, start, end int) bool {
	if start > 0 && isWordByte(text[start-1]) {
		return false
	}
	if end < len(text) && isWordByte(text[end]) {
		return false
	}
	return true
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

func lowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

func asciiLower(s string) string {
	buf := []byte(s)
	for i, b := range buf {
		buf[i] = lowerByte(b)
	}
	return string(buf)
}
