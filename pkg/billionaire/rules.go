// Package billionaire cleans the 2009 billionaire roster: it repairs known bad
// literals, types the Age column, fills missing categorical fields, imputes
// ages from the citizenship group mean and drops rows without a net worth or
// rank.
package billionaire

import (
	"github.com/wdm0006/billclean/pkg/table"
	"github.com/wdm0006/billclean/pkg/transform/coerce"
	"github.com/wdm0006/billclean/pkg/transform/impute"
	"github.com/wdm0006/billclean/pkg/transform/standardize"
)

// Column names of the source file. They are part of the input contract.
const (
	ColName        = "Name"
	ColAge         = "Age"
	ColCitizenship = "Citizenship"
	ColResidence   = "Residence"
	ColNetWorth    = "Net Worth ($bil)"
	ColRank        = "Rank"
)

// Unknown replaces a missing categorical value.
const Unknown = "Unknown"

// Default paths used when none are given.
const (
	DefaultInput  = "data/billionaire2009.csv"
	DefaultOutput = "data/billionaire2009_cleaned.csv"
)

// DefaultReplacements lists the malformed literals known in the source.
func DefaultReplacements() []standardize.Rule {
	return []standardize.Rule{
		{Column: ColAge, From: "56/58", To: "57"},
	}
}

// DefaultTypes lists the columns that must hold numbers.
func DefaultTypes() []coerce.Rule {
	return []coerce.Rule{
		{Column: ColAge, Kind: table.KindInt},
	}
}

// DefaultFills lists the sentinel for each categorical column.
func DefaultFills() []impute.Default {
	return []impute.Default{
		{Column: ColName, Value: Unknown},
		{Column: ColCitizenship, Value: Unknown},
		{Column: ColResidence, Value: Unknown},
	}
}

// DefaultColumns lists the columns the source must carry. The stages address
// them by name, so a renamed or missing header is an input error.
func DefaultColumns() []string {
	return []string{ColName, ColAge, ColCitizenship, ColResidence, ColNetWorth, ColRank}
}

// DefaultRequired lists the columns a row must have to be kept.
func DefaultRequired() []string {
	return []string{ColNetWorth, ColRank}
}
