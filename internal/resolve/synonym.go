package resolve

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/caliber-ui/quotation-app/internal/util"
)

// Synonyms maps a main type name to the phrases customers use for it.
// Main-name order follows the source file.
type Synonyms struct {
	Mains  []string
	ByMain map[string][]string
}

// LoadSynonyms parses a synonyms file: an object of main name to a phrase
// or list of phrases.
func LoadSynonyms(raw []byte) (*Synonyms, error) {
	var top util.OrderedObject
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("synonyms file: %w", err)
	}
	s := &Synonyms{ByMain: map[string][]string{}}
	for _, main := range top.Keys {
		val := top.Values[main]
		var list []string
		if util.IsArray(val) {
			var items []json.RawMessage
			if err := json.Unmarshal(val, &items); err != nil {
				return nil, fmt.Errorf("synonyms for %q: %w", main, err)
			}
			for _, item := range items {
				if str, ok := util.DecodeString(item); ok && str != "" {
					list = append(list, str)
				}
			}
		} else if str, ok := util.DecodeString(val); ok && str != "" {
			list = []string{str}
		}
		s.Mains = append(s.Mains, main)
		s.ByMain[main] = list
	}
	return s, nil
}

// SynonymMatch records one phrase hit and the main type it maps to.
type SynonymMatch struct {
	Phrase string
	Main   string
}

var allenPhrases = []string{"CAPSCREW", "ALLEN CAP", "SOCKET CAP", "ALLEN"}

// Match finds every synonym phrase contained in the description.
//
// Two disambiguation rules keep cap-screw phrasing from fanning out to the
// wrong mains. When the description carries CAPSCREW together with a hex-head
// marker the enquiry is ambiguous between a socket screw and a hex bolt, so
// only matches mapping to ALLEN CAP SCREW or HEX BOLT are kept. Otherwise a
// phrase containing cap-screw wording may only map to ALLEN CAP SCREW.
func (s *Synonyms) Match(desc string) []SynonymMatch {
	if desc == "" || s == nil {
		return nil
	}
	descUp := strings.ToUpper(desc)

	if strings.Contains(descUp, "CAPSCREW") &&
		(strings.Contains(descUp, "HEX HD") || strings.Contains(descUp, "HEXHD") || strings.Contains(descUp, "HEX HEAD")) {
		var out []SynonymMatch
		for _, main := range s.Mains {
			mainUp := strings.ToUpper(main)
			if mainUp != "ALLEN CAP SCREW" && mainUp != "HEX BOLT" {
				continue
			}
			for _, phrase := range s.ByMain[main] {
				if phrase != "" && strings.Contains(descUp, strings.ToUpper(phrase)) {
					out = append(out, SynonymMatch{Phrase: phrase, Main: main})
				}
			}
		}
		return out
	}

	var out []SynonymMatch
	for _, main := range s.Mains {
		mainUp := strings.ToUpper(main)
		for _, phrase := range s.ByMain[main] {
			if phrase == "" || !strings.Contains(descUp, strings.ToUpper(phrase)) {
				continue
			}
			if hasAllenPhrase(strings.ToUpper(phrase)) && mainUp != "ALLEN CAP SCREW" {
				continue
			}
			out = append(out, SynonymMatch{Phrase: phrase, Main: main})
		}
	}
	return out
}

func hasAllenPhrase(phraseUp string) bool {
	for _, p := range allenPhrases {
		if strings.Contains(phraseUp, p) {
			return true
		}
	}
	return false
}

// Rewrite substitutes every matched phrase with its main type name, case
// insensitively, and returns the description used for downstream matching.
func Rewrite(desc string, matches []SynonymMatch) string {
	out := desc
	for _, m := range matches {
		re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(m.Phrase))
		if err != nil {
			out = strings.ReplaceAll(out, m.Phrase, m.Main)
			continue
		}
		out = re.ReplaceAllString(out, m.Main)
	}
	return out
}
