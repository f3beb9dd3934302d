package match

import "slices"

// Issue codes reported in Result.Issues.
const (
	IssueNone       = "noIssue"
	IssueNoMatch    = "noMatch"
	IssueHomonym    = "homonym"
	IssueSynonym    = "synonym"
	IssueMisapplied = "misappliedName"
)

// Result is a resolved taxon concept with its classification.
// When Success is false all taxonomic fields are empty and Issues explains
// the failure.
type Result struct {
	Success                  bool     `json:"success"`
	ScientificName           string   `json:"scientificName,omitempty"`
	ScientificNameAuthorship string   `json:"scientificNameAuthorship,omitempty"`
	TaxonConceptID           string   `json:"taxonConceptID,omitempty"`
	Rank                     string   `json:"rank,omitempty"`
	RankID                   int      `json:"rankID,omitempty"`
	Kingdom                  string   `json:"kingdom,omitempty"`
	KingdomID                string   `json:"kingdomID,omitempty"`
	Phylum                   string   `json:"phylum,omitempty"`
	PhylumID                 string   `json:"phylumID,omitempty"`
	Class                    string   `json:"class,omitempty"`
	ClassID                  string   `json:"classID,omitempty"`
	Order                    string   `json:"order,omitempty"`
	OrderID                  string   `json:"orderID,omitempty"`
	Family                   string   `json:"family,omitempty"`
	FamilyID                 string   `json:"familyID,omitempty"`
	Genus                    string   `json:"genus,omitempty"`
	GenusID                  string   `json:"genusID,omitempty"`
	VernacularName           string   `json:"vernacularName,omitempty"`
	SpeciesGroup             []string `json:"speciesGroup,omitempty"`
	SpeciesSubgroup          []string `json:"speciesSubgroup,omitempty"`
	Issues                   []string `json:"issues"`
}

// fail is the shared failure value. It is never handed out directly,
// Fail returns copies so callers cannot change it.
var fail = Result{Success: false, Issues: []string{IssueNoMatch}}

// Fail returns the failure result {success: false, issues: [noMatch]}.
// It is used whenever a name cannot be resolved, including errors
// swallowed by the client.
func Fail() Result {
	res := fail
	res.Issues = slices.Clone(fail.Issues)
	return res
}

// Failure returns a failed result with the given issue codes. Without
// issues it is the same as Fail.
func Failure(issues ...string) Result {
	if len(issues) == 0 {
		return Fail()
	}
	return Result{Success: false, Issues: slices.Clone(issues)}
}

// IsFail reports if the result equals the shared failure value.
func (r Result) IsFail() bool {
	return !r.Success && slices.Equal(r.Issues, fail.Issues) &&
		r.ScientificName == "" && r.TaxonConceptID == ""
}

// HasIssue reports if the result contains the issue code.
func (r Result) HasIssue(issue string) bool {
	return slices.Contains(r.Issues, issue)
}

// Valid checks that a failed result has no taxonomic data and has at
// least one issue.
func (r Result) Valid() bool {
	if r.Success {
		return true
	}
	if len(r.Issues) == 0 {
		return false
	}
	return r.ScientificName == "" && r.ScientificNameAuthorship == "" &&
		r.TaxonConceptID == "" && r.Rank == "" && r.RankID == 0 &&
		r.Kingdom == "" && r.KingdomID == "" &&
		r.Phylum == "" && r.PhylumID == "" &&
		r.Class == "" && r.ClassID == "" &&
		r.Order == "" && r.OrderID == "" &&
		r.Family == "" && r.FamilyID == "" &&
		r.Genus == "" && r.GenusID == "" &&
		r.VernacularName == "" &&
		len(r.SpeciesGroup) == 0 && len(r.SpeciesSubgroup) == 0
}

// Sanitize makes a result from an untrusted source obey the failure
// invariant. A failed result keeps its issues (or gets noMatch) and loses
// taxonomic data.
func (r Result) Sanitize() Result {
	if r.Valid() {
		return r
	}
	return Failure(r.Issues...)
}
