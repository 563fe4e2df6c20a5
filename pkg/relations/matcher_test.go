package relations

import (
	"testing"

	"rasid/pkg/catalog"
)

func testMatcher() *Matcher {
	return NewMatcher(catalog.Default())
}

func contains(ids []string, id string) bool {
	for _, got := range ids {
		if got == id {
			return true
		}
	}
	return false
}

func TestFindEntitiesByAlias(t *testing.T) {
	ids := testMatcher().FindEntities("أعلنت موسكو عن موقفها من التطورات", "")
	if !contains(ids, "روسيا") {
		t.Fatalf("alias موسكو did not resolve to روسيا: %v", ids)
	}
}

func TestFindEntitiesByID(t *testing.T) {
	ids := testMatcher().FindEntities("العلاقة بين قسد والحكومة", "")
	if !contains(ids, "قسد") {
		t.Fatalf("id not matched directly: %v", ids)
	}
}

func TestFindEntitiesLatinCaseInsensitive(t *testing.T) {
	ids := testMatcher().FindEntities("تقارير عن نشاط YPG في المنطقة", "")
	if !contains(ids, "قسد") {
		t.Fatalf("latin alias not matched case-insensitively: %v", ids)
	}
}

func TestFindEntitiesCatalogOrder(t *testing.T) {
	m := testMatcher()
	text := "التوتر بين روسيا و تركيا حول الملف السوري و موقف إيران"
	ids := m.FindEntities(text, "")

	// روسيا precedes إيران which precedes تركيا in the catalog.
	want := []string{"روسيا", "إيران", "تركيا"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}
}

func TestWindowSuppressesBeforeStart(t *testing.T) {
	m := testMatcher()
	text := "تصريحات الحكومة السورية الجديدة حول المرحلة المقبلة"

	if ids := m.FindEntities(text, "2024-06"); contains(ids, "الحكومة الانتقالية") {
		t.Fatalf("entity detected before window start: %v", ids)
	}
	if ids := m.FindEntities(text, "2025-01"); !contains(ids, "الحكومة الانتقالية") {
		t.Fatalf("entity not detected after window start: %v", ids)
	}
}

func TestWindowEndDoesNotSuppress(t *testing.T) {
	m := testMatcher()
	// Historical-reference policy: an end-bounded entity stays
	// detectable after its window closes.
	ids := m.FindEntities("إرث نظام الأسد في مؤسسات الدولة", "2025-01")
	if !contains(ids, "النظام") {
		t.Fatalf("end-bounded entity suppressed after window end: %v", ids)
	}
}

func TestUnknownPeriodDisablesSuppression(t *testing.T) {
	m := testMatcher()
	text := "الإدارة السورية الجديدة"
	if ids := m.FindEntities(text, "unknown"); !contains(ids, "الحكومة الانتقالية") {
		t.Fatalf("unknown period should disable suppression: %v", ids)
	}
}

func TestFindEntitiesEmptyText(t *testing.T) {
	if ids := testMatcher().FindEntities("", "2025-01"); ids != nil {
		t.Fatalf("expected nil for empty text, got %v", ids)
	}
}
