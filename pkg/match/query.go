// Package match contains value types for taxonomic name matching: the
// query, the resolved result, the shared failure value, and the Lookup
// capability that resolves one query. This is a pure package.
package match

import (
	"strings"

	"github.com/gnames/gnmatch/pkg/normalize"
)

// NameQuery describes a name to resolve. All fields are optional, empty
// string means the field is absent. NameQuery is a value type, none of its
// methods modify the receiver.
type NameQuery struct {
	ScientificName           string      `json:"scientificName,omitempty"           yaml:"scientificName"`
	ScientificNameAuthorship string      `json:"scientificNameAuthorship,omitempty" yaml:"scientificNameAuthorship"`
	Kingdom                  string      `json:"kingdom,omitempty"                  yaml:"kingdom"`
	Phylum                   string      `json:"phylum,omitempty"                   yaml:"phylum"`
	Class                    string      `json:"class,omitempty"                    yaml:"class"`
	Order                    string      `json:"order,omitempty"                    yaml:"order"`
	Family                   string      `json:"family,omitempty"                   yaml:"family"`
	Genus                    string      `json:"genus,omitempty"                    yaml:"genus"`
	SpecificEpithet          string      `json:"specificEpithet,omitempty"          yaml:"specificEpithet"`
	InfraspecificEpithet     string      `json:"infraspecificEpithet,omitempty"     yaml:"infraspecificEpithet"`
	Rank                     string      `json:"rank,omitempty"                     yaml:"rank"`
	VernacularName           string      `json:"vernacularName,omitempty"           yaml:"vernacularName"`
	TaxonID                  string      `json:"taxonID,omitempty"                  yaml:"taxonID"`
	SearchStyle              SearchStyle `json:"searchStyle,omitempty"              yaml:"searchStyle"`
}

// field is a name/value pair of a NameQuery field.
type field struct {
	name  string
	value string
}

// fields returns all fields in their fixed order.
func (q NameQuery) fields() []field {
	return []field{
		{"scientificName", q.ScientificName},
		{"scientificNameAuthorship", q.ScientificNameAuthorship},
		{"kingdom", q.Kingdom},
		{"phylum", q.Phylum},
		{"class", q.Class},
		{"order", q.Order},
		{"family", q.Family},
		{"genus", q.Genus},
		{"specificEpithet", q.SpecificEpithet},
		{"infraspecificEpithet", q.InfraspecificEpithet},
		{"rank", q.Rank},
		{"vernacularName", q.VernacularName},
		{"taxonID", q.TaxonID},
		{"searchStyle", string(q.SearchStyle)},
	}
}

// keyEscaper protects the separator of Key inside field values.
var keyEscaper = strings.NewReplacer(`\`, `\\`, "\x1f", `\x1f`)

// Key returns a deterministic representation of the query built from
// its non-empty fields in the fixed field order. Backslashes and the field
// separator inside values are escaped, so distinct queries never share a
// key.
func (q NameQuery) Key() string {
	var b strings.Builder
	for _, f := range q.fields() {
		if f.value == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\x1f')
		}
		b.WriteString(f.name)
		b.WriteByte('=')
		b.WriteString(keyEscaper.Replace(f.value))
	}
	return b.String()
}

// Equal reports if two queries have the same non-empty fields.
func (q NameQuery) Equal(other NameQuery) bool {
	return q.Key() == other.Key()
}

// IsEmpty is true if no field of the query is set.
func (q NameQuery) IsEmpty() bool {
	return q.Key() == ""
}

// Normalize returns a copy of the query with name fields normalized by n.
// Rank is trimmed and lower-cased, TaxonID is trimmed, SearchStyle is
// opaque and stays untouched.
func (q NameQuery) Normalize(n *normalize.Normalizer) NameQuery {
	res := q
	res.ScientificName = n.Normalize(q.ScientificName)
	res.ScientificNameAuthorship = n.Normalize(q.ScientificNameAuthorship)
	res.Kingdom = n.Normalize(q.Kingdom)
	res.Phylum = n.Normalize(q.Phylum)
	res.Class = n.Normalize(q.Class)
	res.Order = n.Normalize(q.Order)
	res.Family = n.Normalize(q.Family)
	res.Genus = n.Normalize(q.Genus)
	res.SpecificEpithet = n.Normalize(q.SpecificEpithet)
	res.InfraspecificEpithet = n.Normalize(q.InfraspecificEpithet)
	res.VernacularName = n.Normalize(q.VernacularName)
	res.Rank = strings.ToLower(strings.TrimSpace(q.Rank))
	res.TaxonID = strings.TrimSpace(q.TaxonID)
	return res
}

// Classification is a Linnaean hierarchy used for queries by
// classification.
type Classification struct {
	ScientificName           string
	ScientificNameAuthorship string
	Kingdom                  string
	Phylum                   string
	Class                    string
	Order                    string
	Family                   string
	Genus                    string
	SpecificEpithet          string
	InfraspecificEpithet     string
	Rank                     string
}

// Query converts the classification to a NameQuery with the given
// search style.
func (c Classification) Query(style SearchStyle) NameQuery {
	return NameQuery{
		ScientificName:           c.ScientificName,
		ScientificNameAuthorship: c.ScientificNameAuthorship,
		Kingdom:                  c.Kingdom,
		Phylum:                   c.Phylum,
		Class:                    c.Class,
		Order:                    c.Order,
		Family:                   c.Family,
		Genus:                    c.Genus,
		SpecificEpithet:          c.SpecificEpithet,
		InfraspecificEpithet:     c.InfraspecificEpithet,
		Rank:                     c.Rank,
		SearchStyle:              style,
	}
}

// QueryFromParams builds a query from named parameters, for example URL
// query values. Parameter names are the JSON keys of NameQuery.
func QueryFromParams(get func(name string) string) NameQuery {
	return NameQuery{
		ScientificName:           get("scientificName"),
		ScientificNameAuthorship: get("scientificNameAuthorship"),
		Kingdom:                  get("kingdom"),
		Phylum:                   get("phylum"),
		Class:                    get("class"),
		Order:                    get("order"),
		Family:                   get("family"),
		Genus:                    get("genus"),
		SpecificEpithet:          get("specificEpithet"),
		InfraspecificEpithet:     get("infraspecificEpithet"),
		Rank:                     get("rank"),
		VernacularName:           get("vernacularName"),
		TaxonID:                  get("taxonID"),
		SearchStyle:              SearchStyle(get("searchStyle")),
	}
}
