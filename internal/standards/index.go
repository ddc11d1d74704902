package standards

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/caliber-ui/quotation-app/internal"
	"github.com/caliber-ui/quotation-app/internal/util"
)

// Index groups dimensional-standard entries by fastener category and carries
// the finish vocabulary collected while building. Category and finish order
// follow first appearance in the source file.
type Index struct {
	Categories    map[string][]internal.StandardsEntry
	CategoryOrder []string
	// GlobalFinishes is the upper-cased finish vocabulary, deduplicated
	// case-insensitively keeping first occurrence.
	GlobalFinishes []string
}

var categoryGuesses = []string{"washer", "bolt", "nut", "stud", "screw"}

// Build parses a standards reference file. The top level may be an object
// of category lists or a bare list of entries.
func Build(raw []byte) (*Index, error) {
	idx := &Index{Categories: map[string][]internal.StandardsEntry{}}
	trimmed := strings.TrimSpace(string(raw))
	switch {
	case strings.HasPrefix(trimmed, "{"):
		var top util.OrderedObject
		if err := json.Unmarshal(raw, &top); err != nil {
			return nil, fmt.Errorf("standards file: %w", err)
		}
		for _, topKey := range top.Keys {
			val := top.Values[topKey]
			keyLower := strings.ToLower(strings.TrimSpace(topKey))
			if strings.Contains(keyLower, "finish") && util.IsArray(val) {
				idx.addFinishList(val)
				continue
			}
			if !util.IsArray(val) {
				continue
			}
			category := strings.TrimRight(keyLower, "s")
			for _, obj := range decodeObjectList(val) {
				idx.add(category, parseEntry(category, obj))
			}
		}
	case strings.HasPrefix(trimmed, "["):
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("standards file: %w", err)
		}
		for _, item := range items {
			if !util.IsObject(item) {
				continue
			}
			var obj util.OrderedObject
			if err := json.Unmarshal(item, &obj); err != nil {
				continue
			}
			category := guessCategory(&obj)
			idx.add(category, parseEntry(category, &obj))
		}
	default:
		return nil, fmt.Errorf("standards file: expected object or array")
	}
	return idx, nil
}

func (idx *Index) add(category string, entry internal.StandardsEntry) {
	if _, ok := idx.Categories[category]; !ok {
		idx.CategoryOrder = append(idx.CategoryOrder, category)
	}
	idx.Categories[category] = append(idx.Categories[category], entry)
	for _, f := range entry.Finishes {
		idx.addFinish(f)
	}
}

func (idx *Index) addFinish(f string) {
	fu := strings.ToUpper(strings.TrimSpace(f))
	if fu == "" {
		return
	}
	for _, existing := range idx.GlobalFinishes {
		if existing == fu {
			return
		}
	}
	idx.GlobalFinishes = append(idx.GlobalFinishes, fu)
}

func (idx *Index) addFinishList(raw json.RawMessage) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return
	}
	for _, item := range items {
		if util.IsArray(item) {
			idx.addFinishList(item)
			continue
		}
		if s, ok := util.DecodeString(item); ok {
			idx.addFinish(s)
		}
	}
}

// typeKeyOf finds the key naming the fastener type: the first key ending in
// " type" (any case), then the conventional fallbacks.
func typeKeyOf(obj *util.OrderedObject) string {
	for _, k := range obj.Keys {
		if strings.HasSuffix(strings.ToLower(strings.TrimSpace(k)), " type") {
			return k
		}
	}
	return ""
}

func guessCategory(obj *util.OrderedObject) string {
	if tk := typeKeyOf(obj); tk != "" {
		fields := strings.Fields(strings.TrimSpace(tk))
		if len(fields) > 0 {
			return strings.ToLower(fields[0])
		}
	}
	for _, guess := range categoryGuesses {
		for _, k := range obj.Keys {
			if strings.Contains(strings.ToLower(k), guess) {
				return guess
			}
		}
	}
	return "unknown"
}

func parseEntry(category string, obj *util.OrderedObject) internal.StandardsEntry {
	entry := internal.StandardsEntry{Category: category}

	typeName := ""
	if tk := typeKeyOf(obj); tk != "" {
		typeName = stringAt(obj, tk)
	}
	if typeName == "" {
		for _, alt := range []string{"Type", "Bolt Type", "Nut Type", "name"} {
			if typeName = stringAt(obj, alt); typeName != "" {
				break
			}
		}
	}
	entry.TypeName = strings.TrimSpace(typeName)
	entry.Standard = strings.TrimSpace(firstString(obj, "Standard", "standard"))
	entry.Inches = strings.TrimSpace(joinedString(obj, "Inches", "inches"))
	entry.Metrics = splitValues(rawAt(obj, "Metrics", "metrics"))
	entry.Grades = parseGrades(rawAt(obj, "Grades", "grades"))

	for _, k := range obj.Keys {
		if !strings.Contains(strings.ToLower(k), "finish") {
			continue
		}
		for _, f := range splitValues(obj.Values[k]) {
			entry.Finishes = append(entry.Finishes, strings.ToUpper(strings.TrimSpace(f)))
		}
	}

	if raw, err := marshalRaw(obj); err == nil {
		entry.Raw = raw
	}
	return entry
}

// parseGrades flattens a grades field into trimmed strings, splitting
// comma/semicolon-joined values and stringifying bare numbers.
func parseGrades(raw json.RawMessage) []string {
	return splitValues(raw)
}

// splitValues handles a string, a number or a list of either, splitting
// string elements on commas and semicolons.
func splitValues(raw json.RawMessage) []string {
	if raw == nil || string(raw) == "null" {
		return nil
	}
	if util.IsArray(raw) {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil
		}
		var out []string
		for _, item := range items {
			out = append(out, splitValues(item)...)
		}
		return out
	}
	s, ok := util.DecodeString(raw)
	if !ok {
		return nil
	}
	return util.SplitList(s)
}

func rawAt(obj *util.OrderedObject, keys ...string) json.RawMessage {
	for _, k := range keys {
		if raw, ok := obj.Get(k); ok {
			return raw
		}
	}
	return nil
}

func stringAt(obj *util.OrderedObject, key string) string {
	raw, ok := obj.Get(key)
	if !ok {
		return ""
	}
	s, _ := util.DecodeString(raw)
	return s
}

func firstString(obj *util.OrderedObject, keys ...string) string {
	for _, k := range keys {
		if s := stringAt(obj, k); s != "" {
			return s
		}
	}
	return ""
}

// joinedString reads a field that may be a string or a list, joining list
// elements with ", ".
func joinedString(obj *util.OrderedObject, keys ...string) string {
	raw := rawAt(obj, keys...)
	if raw == nil {
		return ""
	}
	if util.IsArray(raw) {
		return strings.Join(splitValues(raw), ", ")
	}
	s, _ := util.DecodeString(raw)
	return s
}

func marshalRaw(obj *util.OrderedObject) (json.RawMessage, error) {
	m := map[string]json.RawMessage{}
	for k, v := range obj.Values {
		m[k] = v
	}
	return json.Marshal(m)
}

func decodeObjectList(raw json.RawMessage) []*util.OrderedObject {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]*util.OrderedObject, 0, len(items))
	for _, item := range items {
		if !util.IsObject(item) {
			continue
		}
		var obj util.OrderedObject
		if err := json.Unmarshal(item, &obj); err != nil {
			continue
		}
		out = append(out, &obj)
	}
	return out
}

// TypesForCategory returns the distinct type names in a category, sorted.
func (idx *Index) TypesForCategory(category string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, e := range idx.Categories[category] {
		if e.TypeName == "" {
			continue
		}
		if _, ok := seen[e.TypeName]; ok {
			continue
		}
		seen[e.TypeName] = struct{}{}
		out = append(out, e.TypeName)
	}
	sort.Strings(out)
	return out
}

// AllTypes returns every distinct type name across categories, first-seen
// order.
func (idx *Index) AllTypes() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, cat := range idx.CategoryOrder {
		for _, e := range idx.Categories[cat] {
			if e.TypeName == "" {
				continue
			}
			if _, ok := seen[e.TypeName]; ok {
				continue
			}
			seen[e.TypeName] = struct{}{}
			out = append(out, e.TypeName)
		}
	}
	return out
}

// EntriesForType returns all entries whose type name matches exactly.
func (idx *Index) EntriesForType(typeName string) []internal.StandardsEntry {
	var out []internal.StandardsEntry
	for _, cat := range idx.CategoryOrder {
		for _, e := range idx.Categories[cat] {
			if e.TypeName == typeName {
				out = append(out, e)
			}
		}
	}
	return out
}

// Family extracts the standard family, the first whitespace-separated token
// of a standard designation ("DIN 933" yields "DIN").
func Family(standard string) string {
	fields := strings.Fields(strings.TrimSpace(standard))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Families returns every distinct standard family in the index, sorted.
func (idx *Index) Families() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, cat := range idx.CategoryOrder {
		for _, e := range idx.Categories[cat] {
			fam := Family(e.Standard)
			if fam == "" {
				continue
			}
			if _, ok := seen[fam]; ok {
				continue
			}
			seen[fam] = struct{}{}
			out = append(out, fam)
		}
	}
	sort.Strings(out)
	return out
}

// FamiliesForType returns the families of the standards carried by entries
// of the given type, sorted.
func (idx *Index) FamiliesForType(typeName string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, e := range idx.EntriesForType(typeName) {
		fam := Family(e.Standard)
		if fam == "" {
			continue
		}
		if _, ok := seen[fam]; ok {
			continue
		}
		seen[fam] = struct{}{}
		out = append(out, fam)
	}
	sort.Strings(out)
	return out
}

// GradesForType returns the distinct grades across entries of the type,
// first-seen order.
func (idx *Index) GradesForType(typeName string) []string {
	var all []string
	for _, e := range idx.EntriesForType(typeName) {
		all = append(all, e.Grades...)
	}
	return util.Dedupe(all)
}

// FinishesForType returns the distinct finishes across entries of the type,
// first-seen order.
func (idx *Index) FinishesForType(typeName string) []string {
	var all []string
	for _, e := range idx.EntriesForType(typeName) {
		all = append(all, e.Finishes...)
	}
	return util.Dedupe(all)
}
