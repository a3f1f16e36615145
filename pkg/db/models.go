package db

// Document is a named artifact. Names are unique.
type Document struct {
	ID   DocumentID
	Name string
}

// Dict is one importable dictionary source, e.g. a CC-CEDICT release.
type Dict struct {
	ID   DictID
	Name string
}

// WordDef is the content of a single dictionary entry.
type WordDef struct {
	Simplified  string
	Traditional string
	// Pinyin holds one syllable per headword character, in order.
	Pinyin []string
	// Defs keeps the order given by the source.
	Defs []string
}

// Entry is a WordDef as stored, together with its row id and owning dict.
type Entry struct {
	ID   WordDefID
	Dict DictID
	WordDef
}
