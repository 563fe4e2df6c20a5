package catalog

// Default returns the curated entity table for Syrian political
// coverage. Activity windows encode the December 2024 transition: the
// Assad-era government ends at 2024-12 and the transitional government
// starts there. Entities past their end window stay detectable so that
// historical references keep resolving.
func Default() *Catalog {
	return New([]Entity{
		{
			ID:       "النظام",
			NameEN:   "Assad Regime",
			NameAR:   "النظام السوري",
			Category: CategoryGovernment,
			Aliases:  []string{"الأسد", "بشار", "نظام الأسد", "النظام السوري"},
			Window:   &Window{End: "2024-12"},
		},
		{
			ID:       "هتش",
			NameEN:   "HTS",
			NameAR:   "هيئة تحرير الشام",
			Category: CategoryFaction,
			Aliases:  []string{"هيئة تحرير الشام", "تحرير الشام", "الجولاني", "الشرع", "أحمد الشرع"},
		},
		{
			ID:       "الحكومة الانتقالية",
			NameEN:   "Transitional Government",
			NameAR:   "الحكومة الانتقالية",
			Category: CategoryGovernment,
			Aliases:  []string{"الحكومة السورية الجديدة", "الإدارة الجديدة", "حكومة دمشق الجديدة", "الإدارة السورية الجديدة"},
			Window:   &Window{Start: "2024-12"},
		},
		{
			ID:       "المعارضة",
			NameEN:   "Opposition",
			NameAR:   "المعارضة السورية",
			Category: CategoryOpposition,
			Aliases:  []string{"الثوار", "الفصائل", "الجيش الحر", "فصائل المعارضة"},
		},
		{
			ID:       "قسد",
			NameEN:   "SDF",
			NameAR:   "قوات سوريا الديمقراطية",
			Category: CategoryFaction,
			Aliases:  []string{"قوات سوريا الديمقراطية", "الأكراد", "الكرد", "الإدارة الذاتية", "pyd", "ypg"},
		},
		{
			ID:       "داعش",
			NameEN:   "ISIS",
			NameAR:   "تنظيم الدولة",
			Category: CategoryTerrorist,
			Aliases:  []string{"الدولة الإسلامية", "تنظيم الدولة"},
		},
		{
			ID:       "روسيا",
			NameEN:   "Russia",
			NameAR:   "روسيا",
			Category: CategoryForeignPower,
			Aliases:  []string{"الروس", "موسكو", "بوتين", "الروسي"},
		},
		{
			ID:       "أمريكا",
			NameEN:   "USA",
			NameAR:   "الولايات المتحدة",
			Category: CategoryForeignPower,
			Aliases:  []string{"الولايات المتحدة", "واشنطن", "الأمريكي", "الإدارة الأمريكية"},
		},
		{
			ID:       "إيران",
			NameEN:   "Iran",
			NameAR:   "إيران",
			Category: CategoryForeignPower,
			Aliases:  []string{"طهران", "الإيراني", "الحرس الثوري"},
		},
		{
			ID:       "تركيا",
			NameEN:   "Turkey",
			NameAR:   "تركيا",
			Category: CategoryForeignPower,
			Aliases:  []string{"أنقرة", "أردوغان", "التركي"},
		},
		{
			ID:       "إسرائيل",
			NameEN:   "Israel",
			NameAR:   "إسرائيل",
			Category: CategoryForeignPower,
			Aliases:  []string{"الاحتلال", "الإسرائيلي", "تل أبيب", "الصهيوني"},
		},
		{
			ID:       "حزب الله",
			NameEN:   "Hezbollah",
			NameAR:   "حزب الله",
			Category: CategoryMilitia,
			Aliases:  []string{"حزب الله اللبناني"},
		},
		{
			ID:       "الميليشيات",
			NameEN:   "Pro-Iran Militias",
			NameAR:   "الميليشيات الإيرانية",
			Category: CategoryMilitia,
			Aliases:  []string{"الميليشيات الإيرانية", "الميليشيات الشيعية"},
		},
	})
}
