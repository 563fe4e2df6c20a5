// Package retrieve expands analysis targets through a fixed alias table
// and pulls relevant chunks from the vector index.
package retrieve

import (
	"context"
	"sort"
	"strings"

	"rasid/pkg/logger"
	"rasid/pkg/store"
)

// DefaultK is the number of chunks requested per retrieval.
const DefaultK = 100

// aliasTable maps both lower-cased Latin and Arabic surface forms to
// their synonym sets. Entries are bidirectional: expanding any member
// of a group yields the rest.
var aliasTable = map[string][]string{
	"assad":         {"النظام", "الأسد", "نظام الأسد", "regime", "assad regime"},
	"regime":        {"النظام", "نظام الأسد", "assad"},
	"النظام":        {"assad", "regime", "الأسد", "نظام الأسد"},
	"hts":           {"هتش", "هيئة تحرير الشام", "الشرع"},
	"هتش":           {"hts", "هيئة تحرير الشام", "تحرير الشام"},
	"opposition":    {"المعارضة", "الثوار", "الفصائل"},
	"المعارضة":      {"opposition", "الثوار", "فصائل المعارضة"},
	"sdf":           {"قسد", "قوات سوريا الديمقراطية", "الأكراد"},
	"قسد":           {"sdf", "قوات سوريا الديمقراطية", "الإدارة الذاتية"},
	"isis":          {"داعش", "تنظيم الدولة", "الدولة الإسلامية"},
	"داعش":          {"isis", "تنظيم الدولة"},
	"russia":        {"روسيا", "موسكو", "الروس"},
	"روسيا":         {"russia", "موسكو", "الروس"},
	"usa":           {"أمريكا", "الولايات المتحدة", "واشنطن", "america"},
	"america":       {"أمريكا", "الولايات المتحدة", "usa"},
	"أمريكا":        {"usa", "الولايات المتحدة", "واشنطن"},
	"iran":          {"إيران", "طهران", "الحرس الثوري"},
	"إيران":         {"iran", "طهران"},
	"turkey":        {"تركيا", "أنقرة", "أردوغان"},
	"تركيا":         {"turkey", "أنقرة"},
	"israel":        {"إسرائيل", "الاحتلال", "تل أبيب"},
	"إسرائيل":       {"israel", "تل أبيب"},
	"hezbollah":     {"حزب الله", "حزب الله اللبناني"},
	"حزب الله":      {"hezbollah", "حزب الله اللبناني"},
	"civilians":     {"المدنيون", "المدنيين", "السكان"},
	"المدنيون":      {"civilians", "المدنيين"},
}

// ExpandTargets unions every synonym of every input term. The input
// terms themselves are always part of the result, table hit or not.
// Output order is deterministic: input terms in order, then their
// synonyms sorted.
func ExpandTargets(terms []string) []string {
	seen := make(map[string]bool)
	var expanded []string

	add := func(term string) {
		if term == "" || seen[term] {
			return
		}
		seen[term] = true
		expanded = append(expanded, term)
	}

	for _, term := range terms {
		add(term)
	}
	for _, term := range terms {
		synonyms, ok := aliasTable[strings.ToLower(term)]
		if !ok {
			synonyms = aliasTable[term]
		}
		sorted := make([]string, len(synonyms))
		copy(sorted, synonyms)
		sort.Strings(sorted)
		for _, s := range sorted {
			add(s)
		}
	}
	return expanded
}

// Retriever answers chunk queries for a set of targets.
type Retriever struct {
	store store.ChunkStore
}

// New creates a Retriever on the given chunk store.
func New(chunkStore store.ChunkStore) *Retriever {
	return &Retriever{store: chunkStore}
}

// Retrieve expands targets, combines them with the base query into one
// search string and returns up to k nearest chunks. Zero results is not
// an error. k <= 0 falls back to DefaultK.
func (r *Retriever) Retrieve(ctx context.Context, query string, targets []string, k int) ([]store.Chunk, error) {
	if k <= 0 {
		k = DefaultK
	}

	expanded := ExpandTargets(targets)
	searchQuery := query
	if len(expanded) > 0 {
		searchQuery = query + " " + strings.Join(expanded, " ")
	}

	chunks, err := r.store.Query(ctx, searchQuery, k)
	if err != nil {
		return nil, err
	}
	logger.Debug("retrieved chunks", "targets", len(targets), "expanded", len(expanded), "chunks", len(chunks))
	return chunks, nil
}
