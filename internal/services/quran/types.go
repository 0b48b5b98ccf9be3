package quran

import (
	"strconv"
	"strings"
)

// TranslatedName is a chapter name in the requested language.
type TranslatedName struct {
	LanguageName string `json:"language_name"`
	Name         string `json:"name"`
}

// Chapter describes one chapter in the catalog.
type Chapter struct {
	ID              int            `json:"id"`
	RevelationPlace string         `json:"revelation_place"`
	RevelationOrder int            `json:"revelation_order"`
	BismillahPre    bool           `json:"bismillah_pre"`
	NameSimple      string         `json:"name_simple"`
	NameComplex     string         `json:"name_complex"`
	NameArabic      string         `json:"name_arabic"`
	VersesCount     int            `json:"verses_count"`
	Pages           []int          `json:"pages"`
	TranslatedName  TranslatedName `json:"translated_name"`
}

// WordText is a translated or transliterated rendering of a word.
type WordText struct {
	Text         string `json:"text"`
	LanguageName string `json:"language_name"`
}

// Word is one word of a verse.
type Word struct {
	ID              int      `json:"id"`
	Position        int      `json:"position"`
	AudioURL        string   `json:"audio_url"`
	CharTypeName    string   `json:"char_type_name"`
	Translation     WordText `json:"translation"`
	Transliteration WordText `json:"transliteration"`
}

// IsWord reports whether the entry is a word rather than an end-of-verse marker.
func (w Word) IsWord() bool {
	return w.CharTypeName == "" || w.CharTypeName == "word"
}

// Audio locates a verse recitation. URL is relative to the audio host.
type Audio struct {
	URL string `json:"url"`
}

// Verse is one verse of a chapter.
type Verse struct {
	ID          int    `json:"id"`
	ChapterID   int    `json:"chapter_id"`
	VerseNumber int    `json:"verse_number"`
	VerseKey    string `json:"verse_key"`
	TextIndopak string `json:"text_indopak"`
	TextUthmani string `json:"text_uthmani"`
	JuzNumber   int    `json:"juz_number"`
	PageNumber  int    `json:"page_number"`
	Words       []Word `json:"words"`
	Audio       *Audio `json:"audio"`
}

// WordTranslation joins the per-word translations of the verse, skipping
// end-of-verse markers and empty entries.
func (v Verse) WordTranslation() string {
	parts := make([]string, 0, len(v.Words))
	for _, w := range v.Words {
		if !w.IsWord() {
			continue
		}
		if text := strings.TrimSpace(w.Translation.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// Key identifies the verse within a list.
func (v Verse) Key() string {
	return strconv.Itoa(v.ID)
}

// AudioPath returns the relative recitation path, or "" when none was returned.
func (v Verse) AudioPath() string {
	if v.Audio == nil {
		return ""
	}
	return v.Audio.URL
}

// Text returns the verse script, preferring the IndoPak rendering.
func (v Verse) Text() string {
	if v.TextIndopak != "" {
		return v.TextIndopak
	}
	return v.TextUthmani
}

// Pagination is the paging block of a verse response.
type Pagination struct {
	PerPage      int  `json:"per_page"`
	CurrentPage  int  `json:"current_page"`
	NextPage     *int `json:"next_page"`
	TotalPages   int  `json:"total_pages"`
	TotalRecords int  `json:"total_records"`
}

// VersePage is one page of a chapter's verses.
type VersePage struct {
	Verses     []Verse    `json:"verses"`
	Pagination Pagination `json:"pagination"`
}

type chaptersResponse struct {
	Chapters []Chapter `json:"chapters"`
}

type chapterResponse struct {
	Chapter Chapter `json:"chapter"`
}
