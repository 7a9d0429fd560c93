package model

// Mention is one target phrase in one sentence, as read from a batch file
type Mention struct {
	Sentence string `json:"sentence"`
	Phrase   string `json:"phrase"`
	Source   string `json:"source,omitempty"` // input file the row came from
	Line     int    `json:"line,omitempty"`   // 1-based line in Source
}

// IdentifiedTerm is a term finder hit with its context attributes
type IdentifiedTerm struct {
	Sentence      string      `json:"sentence"`
	SentenceIndex int         `json:"sentence_index"` // 0-based
	Term          string      `json:"term"`           // matched text as it appears
	Negation      Negation    `json:"negation"`
	Temporality   Temporality `json:"temporality"`
	Experiencer   Experiencer `json:"experiencer"`
	Start         int         `json:"start"` // byte offsets within Sentence
	End           int         `json:"end"`
}
