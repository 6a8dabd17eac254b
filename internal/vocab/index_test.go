package vocab

import (
	"reflect"
	"testing"

	"jlptag/internal/jlpt"
)

func TestBuilderResolvesMostAdvancedTier(t *testing.T) {
	builder := NewBuilder()
	builder.Add(jlpt.LevelN5, "食べる", "たべる", "to eat")
	builder.Add(jlpt.LevelN3, "食べる", "たべる", "to consume")

	index := builder.Build()
	entry, ok := index.Lookup("食べる")
	if !ok {
		t.Fatal("Lookup(食べる) returned no entry")
	}
	if entry.Level != jlpt.LevelN3 {
		t.Errorf("Level = %s, want %s", entry.Level, jlpt.LevelN3)
	}
	want := []string{"to eat", "to consume"}
	if !reflect.DeepEqual(entry.Meanings, want) {
		t.Errorf("Meanings = %v, want %v", entry.Meanings, want)
	}
}

func TestBuilderResolutionIgnoresInsertionOrder(t *testing.T) {
	builder := NewBuilder()
	builder.Add(jlpt.LevelN1, "把握", "はあく", "grasp")
	builder.Add(jlpt.LevelN4, "把握", "はあく", "understanding")

	entry, ok := builder.Build().Lookup("把握")
	if !ok {
		t.Fatal("Lookup(把握) returned no entry")
	}
	if entry.Level != jlpt.LevelN1 {
		t.Errorf("Level = %s, want %s", entry.Level, jlpt.LevelN1)
	}
}

func TestBuilderKeyDerivation(t *testing.T) {
	tests := []struct {
		name    string
		kanji   string
		kana    string
		keys    []string
		missing []string
	}{
		{
			name:  "distinct kanji and kana",
			kanji: "学生",
			kana:  "がくせい",
			keys:  []string{"学生", "がくせい"},
		},
		{
			name:  "kana equals kanji",
			kanji: "ここ",
			kana:  "ここ",
			keys:  []string{"ここ"},
		},
		{
			name:  "kana only",
			kanji: "",
			kana:  "それ",
			keys:  []string{"それ"},
		},
		{
			name:    "kanji only",
			kanji:   "林檎",
			kana:    "",
			keys:    []string{"林檎"},
			missing: []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			builder := NewBuilder()
			builder.Add(jlpt.LevelN5, tt.kanji, tt.kana, "meaning")
			index := builder.Build()
			if index.Len() != len(tt.keys) {
				t.Fatalf("Len() = %d, want %d", index.Len(), len(tt.keys))
			}
			for _, key := range tt.keys {
				if _, ok := index.Lookup(key); !ok {
					t.Errorf("Lookup(%q) missing", key)
				}
			}
			for _, key := range tt.missing {
				if _, ok := index.Lookup(key); ok {
					t.Errorf("Lookup(%q) unexpectedly present", key)
				}
			}
		})
	}
}

func TestBuilderSourceKanjiTakesFirstRecordAtWinningTier(t *testing.T) {
	builder := NewBuilder()
	builder.Add(jlpt.LevelN4, "取る", "とる", "to take")
	builder.Add(jlpt.LevelN2, "", "とる", "to capture")
	builder.Add(jlpt.LevelN2, "撮る", "とる", "to photograph")

	entry, ok := builder.Build().Lookup("とる")
	if !ok {
		t.Fatal("Lookup(とる) returned no entry")
	}
	if entry.Level != jlpt.LevelN2 {
		t.Fatalf("Level = %s, want %s", entry.Level, jlpt.LevelN2)
	}
	// The first record at the winning tier had no kanji, so none is carried.
	if entry.SourceKanji != "" {
		t.Errorf("SourceKanji = %q, want empty", entry.SourceKanji)
	}
}

func TestBuilderSourceKanjiMatchesWinningTier(t *testing.T) {
	builder := NewBuilder()
	builder.Add(jlpt.LevelN5, "聞く", "きく", "to hear")
	builder.Add(jlpt.LevelN2, "効く", "きく", "to be effective")

	entry, ok := builder.Build().Lookup("きく")
	if !ok {
		t.Fatal("Lookup(きく) returned no entry")
	}
	if entry.SourceKanji != "効く" {
		t.Errorf("SourceKanji = %q, want 効く", entry.SourceKanji)
	}
}

func TestBuilderDeduplicatesMeanings(t *testing.T) {
	builder := NewBuilder()
	builder.Add(jlpt.LevelN5, "山", "やま", "mountain")
	builder.Add(jlpt.LevelN3, "山", "やま", "mountain")
	builder.Add(jlpt.LevelN3, "山", "やま", "heap")

	entry, _ := builder.Build().Lookup("山")
	want := []string{"mountain", "heap"}
	if !reflect.DeepEqual(entry.Meanings, want) {
		t.Errorf("Meanings = %v, want %v", entry.Meanings, want)
	}
}

func TestIndexLookupMiss(t *testing.T) {
	index := NewBuilder().Build()
	if _, ok := index.Lookup("missing"); ok {
		t.Error("Lookup on empty index reported a hit")
	}
}

func TestListFileName(t *testing.T) {
	if got := ListFileName(jlpt.LevelN3); got != "VocabList.N3.csv" {
		t.Errorf("ListFileName(N3) = %q, want VocabList.N3.csv", got)
	}
}
