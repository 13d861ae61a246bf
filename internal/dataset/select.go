package dataset

import "mathfacts.org/naep-web/internal/geo"

// NationalLabel is the scope label shown for the country-wide record.
const NationalLabel = "U.S."

// Selection is the outcome of matching a visitor's location to a record.
type Selection struct {
	Label    string
	Record   Record
	National bool
}

// Select maps a resolved country and state code to a dataset record. US
// visitors with a state entry get that state's record; everyone else gets the
// national one. The label for an unmapped state code is the raw code itself.
func Select(ds *Dataset, country, stateCode string) Selection {
	if country == "US" && stateCode != "" {
		if rec, ok := ds.States[stateCode]; ok {
			label := stateCode
			if name, ok := geo.StateName(stateCode); ok {
				label = name
			}
			return Selection{Label: label, Record: rec, National: false}
		}
	}
	return Selection{Label: NationalLabel, Record: *ds.National.US, National: true}
}
