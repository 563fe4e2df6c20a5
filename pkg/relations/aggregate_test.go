package relations

import (
	"strings"
	"testing"

	"rasid/pkg/article"
)

func TestPairKeySymmetric(t *testing.T) {
	if PairKey("روسيا", "تركيا") != PairKey("تركيا", "روسيا") {
		t.Fatal("pair key depends on argument order")
	}

	e1, e2 := SplitPairKey(PairKey("b", "a"))
	if e1 != "a" || e2 != "b" {
		t.Fatalf("split = (%q, %q), want sorted (a, b)", e1, e2)
	}
}

func TestGroupByPairAndPeriodPairExplosion(t *testing.T) {
	m := testMatcher()

	// Three entities mentioned together yield C(3,2) = 3 pair entries.
	arts := []article.Article{{
		Title:   "مواقف روسيا و تركيا و إيران",
		Content: "تباينت مواقف الدول الثلاث حول مستقبل العملية السياسية",
		Date:    "يناير 2025",
	}}

	grouped := m.GroupByPairAndPeriod(arts)
	if len(grouped) != 3 {
		t.Fatalf("pairs = %d, want 3: %v", len(grouped), keys(grouped))
	}
	for pair, periods := range grouped {
		refs := periods["2025-01"]
		if len(refs) != 1 {
			t.Fatalf("pair %s refs = %d, want 1", pair, len(refs))
		}
	}
}

func TestGroupByPairAndPeriodSingleEntitySkipped(t *testing.T) {
	m := testMatcher()
	arts := []article.Article{{
		Title:   "الموقف الروسي",
		Content: "تفاصيل عن موقف موسكو فقط دون ذكر أي طرف آخر",
		Date:    "يناير 2025",
	}}

	if grouped := m.GroupByPairAndPeriod(arts); len(grouped) != 0 {
		t.Fatalf("expected no pairs, got %v", keys(grouped))
	}
}

func TestGroupByPairAndPeriodTruncatesContent(t *testing.T) {
	m := testMatcher()
	long := strings.Repeat("تفاصيل طويلة عن العلاقة بين الطرفين ", 200)
	arts := []article.Article{{
		Title:   "روسيا و تركيا",
		Content: long,
		Date:    "شباط 2025",
	}}

	grouped := m.GroupByPairAndPeriod(arts)
	refs := grouped[PairKey("روسيا", "تركيا")]["2025-02"]
	if len(refs) != 1 {
		t.Fatalf("refs = %d, want 1", len(refs))
	}
	if got := len([]rune(refs[0].Content)); got > 2000 {
		t.Fatalf("content runes = %d, want <= 2000", got)
	}
}

func TestGroupByPairAndPeriodUnknownDate(t *testing.T) {
	m := testMatcher()
	arts := []article.Article{{
		Title:   "روسيا و تركيا",
		Content: "حوار ثنائي بين الجانبين حول الترتيبات الأمنية في الشمال",
	}}

	grouped := m.GroupByPairAndPeriod(arts)
	refs := grouped[PairKey("روسيا", "تركيا")][article.PeriodUnknown]
	if len(refs) != 1 {
		t.Fatalf("unknown-period refs = %d, want 1", len(refs))
	}
}

func keys(grouped map[string]map[string][]ArticleRef) []string {
	var out []string
	for k := range grouped {
		out = append(out, k)
	}
	return out
}
