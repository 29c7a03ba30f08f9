// Package analytics computes word frequencies and top keywords for page
// text.
package analytics

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// stopwords are frequent words and web UI noise that carry no topic.
var stopwords = func() map[string]struct{} {
	m := make(map[string]struct{})
	for _, w := range strings.Fields(`
		a about above across after afterwards again against all almost alone along
		already also although always am among amongst an and another any anyhow
		anyone anything anyway anywhere are aren't around as at
		back be became because become becomes becoming been before beforehand behind
		being below beside besides between beyond both but by
		can can't cannot could couldn't
		did didn't do does doesn't doing don't done down during
		each either else elsewhere enough especially etc even ever every everyone
		everything everywhere
		few for former formerly from further
		get got had hadn't has hasn't have haven't having he he'd he'll he's hence
		her here here's hers herself him himself his how however
		i i'd i'll i'm i've if in indeed into is isn't it it's its itself
		just keep last latter least less let let's like likely
		made make many may maybe me meanwhile might mine more moreover most mostly
		much must mustn't my myself
		neither never nevertheless next no nobody none noone nor not now
		of off often on once one only onto or other others otherwise our ours
		ourselves out over own
		per perhaps please rather really
		same see seem seemed seems several she she'd she'll she's should shouldn't
		since so some somehow someone something sometimes somewhere still such
		than that that's the their theirs them themselves then there there's
		therefore these they they'd they'll they're they've this those though
		through throughout thus to together too toward towards
		under until up upon us use used using
		very via
		was wasn't we we'd we'll we're we've well were weren't what what's
		whatever when whenever where where's whereas wherever whether which while
		who who's whoever whose why will with within without won't would wouldn't
		yet you you'd you'll you're you've your yours yourself yourselves
		click button link menu page pages website site home homepage search
		loading loaded load loads redirect redirected
	`) {
		m[w] = struct{}{}
	}
	return m
}()

type Analytics struct{}

func IsStopword(word string) bool {
	_, exists := stopwords[strings.ToLower(word)]
	return exists
}

// WordFrequency counts lowercased words, trimming punctuation at the edges
// and skipping stopwords and bare numbers.
func (a *Analytics) WordFrequency(text string) map[string]int {
	frequencies := make(map[string]int)

	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if word == "" || IsStopword(word) || isNumber(word) {
			continue
		}
		frequencies[word]++
	}

	return frequencies
}

// TopKeywords returns the n most frequent words formatted as "word:count".
// Ties are broken alphabetically so the result is stable.
func (a *Analytics) TopKeywords(text string, n int) []string {
	type kv struct {
		Key   string
		Value int
	}

	frequencies := a.WordFrequency(text)
	ss := make([]kv, 0, len(frequencies))
	for k, v := range frequencies {
		ss = append(ss, kv{k, v})
	}

	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Value != ss[j].Value {
			return ss[i].Value > ss[j].Value
		}
		return ss[i].Key < ss[j].Key
	})

	limit := min(n, len(ss))
	keywords := make([]string, limit)
	for i := 0; i < limit; i++ {
		keywords[i] = fmt.Sprintf("%s:%d", ss[i].Key, ss[i].Value)
	}
	return keywords
}

func isNumber(word string) bool {
	for _, r := range word {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
