// Package dataset loads, validates, and selects from the below-proficient
// statistics document. The document is fetched once per process; a successful
// load is memoized for the process lifetime.
package dataset

// Record is one statistic entry for a geographic scope. Text carries the
// display form ("<n> out of <m>"); the numeric fields mirror the source data
// and are not cross-checked against Text.
type Record struct {
	Text        string  `json:"text" validate:"required,stat_text"`
	Ratio       float64 `json:"ratio,omitempty"`
	Numerator   int     `json:"numerator,omitempty"`
	Denominator int     `json:"denominator,omitempty"`
}

// National holds the required country-wide record.
type National struct {
	US *Record `json:"US" validate:"required"`
}

// Dataset is the full statistics document: one national record plus zero or
// more per-state records keyed by two-letter USPS code.
type Dataset struct {
	National National          `json:"national"`
	States   map[string]Record `json:"states" validate:"omitempty,dive,keys,len=2,alpha,endkeys"`
}
