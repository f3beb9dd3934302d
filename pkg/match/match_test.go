package match_test

import (
	"encoding/json"
	"testing"

	"github.com/gnames/gnmatch/pkg/match"
	"github.com/gnames/gnmatch/pkg/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	tests := []struct {
		msg string
		q   match.NameQuery
		res string
	}{
		{"empty", match.NameQuery{}, ""},
		{
			"name only",
			match.NameQuery{ScientificName: "Acacia dealbata"},
			"scientificName=Acacia dealbata",
		},
		{
			"fixed order",
			match.NameQuery{
				SearchStyle:    match.Fuzzy,
				Genus:          "Acacia",
				Kingdom:        "Plantae",
				ScientificName: "Acacia dealbata",
			},
			"scientificName=Acacia dealbata\x1fkingdom=Plantae\x1fgenus=Acacia" +
				"\x1fsearchStyle=FUZZY",
		},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, v.q.Key(), v.msg)
	}
}

func TestKeyEscaping(t *testing.T) {
	n := normalize.All()
	tests := []struct {
		msg    string
		q1, q2 match.NameQuery
	}{
		{
			"separator in value",
			match.NameQuery{ScientificName: "Acacia\x1fkingdom=Animalia"},
			match.NameQuery{ScientificName: "Acacia", Kingdom: "Animalia"},
		},
		{
			"escaped separator text",
			match.NameQuery{ScientificName: `Acacia\x1f`},
			match.NameQuery{ScientificName: "Acacia\x1f"},
		},
	}

	for _, v := range tests {
		assert.NotEqual(t, v.q1.Key(), v.q2.Key(), v.msg)
		assert.False(t, v.q1.Equal(v.q2), v.msg)
		assert.NotEqual(t,
			match.NewSignature(match.ScopeMatch, v.q1, n),
			match.NewSignature(match.ScopeMatch, v.q2, n),
			v.msg,
		)
	}
	assert.Equal(t, `scientificName=Acacia\x1fkingdom=Animalia`,
		match.NameQuery{ScientificName: "Acacia\x1fkingdom=Animalia"}.Key())
}

func TestEqual(t *testing.T) {
	q1 := match.NameQuery{ScientificName: "Macropus", Kingdom: "Animalia"}
	q2 := match.NameQuery{Kingdom: "Animalia", ScientificName: "Macropus"}
	q3 := match.NameQuery{ScientificName: "Macropus"}

	assert.True(t, q1.Equal(q2))
	assert.False(t, q1.Equal(q3))
	assert.True(t, match.NameQuery{}.IsEmpty())
	assert.False(t, q3.IsEmpty())
}

func TestNormalizeQuery(t *testing.T) {
	q := match.NameQuery{
		ScientificName: "  Acacia   DEALBATA ",
		Kingdom:        "Plantae",
		Rank:           " Species ",
		TaxonID:        " https://id.biodiversity.org.au/taxon/apni/51286863 ",
		SearchStyle:    match.Strict,
	}
	res := q.Normalize(normalize.All())

	assert.Equal(t, "acacia dealbata", res.ScientificName)
	assert.Equal(t, "plantae", res.Kingdom)
	assert.Equal(t, "species", res.Rank)
	assert.Equal(t, "https://id.biodiversity.org.au/taxon/apni/51286863", res.TaxonID)
	assert.Equal(t, match.Strict, res.SearchStyle)

	// receiver is not modified
	assert.Equal(t, "  Acacia   DEALBATA ", q.ScientificName)
}

func TestClassificationQuery(t *testing.T) {
	c := match.Classification{
		Genus:           "Acacia",
		SpecificEpithet: "dealbata",
		Family:          "Fabaceae",
	}
	q := c.Query(match.MatchAll)
	assert.Equal(t, "Acacia", q.Genus)
	assert.Equal(t, "dealbata", q.SpecificEpithet)
	assert.Equal(t, "Fabaceae", q.Family)
	assert.Equal(t, match.MatchAll, q.SearchStyle)
}

func TestParseSearchStyle(t *testing.T) {
	tests := []struct {
		input string
		res   match.SearchStyle
		err   bool
	}{
		{"", "", false},
		{"strict", match.Strict, false},
		{" Fuzzy ", match.Fuzzy, false},
		{"MATCH_ALL", match.MatchAll, false},
		{"sloppy", "", true},
	}

	for _, v := range tests {
		res, err := match.ParseSearchStyle(v.input)
		if v.err {
			assert.Error(t, err, v.input)
			continue
		}
		require.NoError(t, err, v.input)
		assert.Equal(t, v.res, res, v.input)
	}
}

func TestFail(t *testing.T) {
	f := match.Fail()
	assert.False(t, f.Success)
	assert.Equal(t, []string{"noMatch"}, f.Issues)
	assert.True(t, f.IsFail())
	assert.True(t, f.Valid())

	// changing a copy does not change the shared value
	f.Issues[0] = "changed"
	assert.Equal(t, []string{"noMatch"}, match.Fail().Issues)

	h := match.Failure(match.IssueHomonym)
	assert.False(t, h.Success)
	assert.False(t, h.IsFail())
	assert.True(t, h.HasIssue(match.IssueHomonym))
	assert.True(t, match.Failure().IsFail())
}

func TestValidSanitize(t *testing.T) {
	bad := match.Result{Success: false, ScientificName: "Acacia"}
	assert.False(t, bad.Valid())

	res := bad.Sanitize()
	assert.True(t, res.Valid())
	assert.True(t, res.IsFail())

	withIssue := match.Result{
		Success: false, Rank: "genus", Issues: []string{match.IssueHomonym},
	}
	res = withIssue.Sanitize()
	assert.Equal(t, "", res.Rank)
	assert.Equal(t, []string{match.IssueHomonym}, res.Issues)

	ok := match.Result{Success: true, ScientificName: "Acacia"}
	assert.Equal(t, ok, ok.Sanitize())

	leaky := []match.Result{
		{KingdomID: "k1"},
		{PhylumID: "p1"},
		{ClassID: "c1"},
		{OrderID: "o1"},
		{FamilyID: "f1"},
		{GenusID: "g1"},
		{SpeciesGroup: []string{"Plants"}},
		{SpeciesSubgroup: []string{"Dicots"}},
	}
	for i, v := range leaky {
		v.Issues = []string{match.IssueHomonym}
		assert.False(t, v.Valid(), i)
		res = v.Sanitize()
		assert.True(t, res.Valid(), i)
		assert.Equal(t, match.Failure(match.IssueHomonym), res, i)
	}
}

func TestRankID(t *testing.T) {
	assert.Equal(t, 7000, match.RankID("species"))
	assert.Equal(t, 6000, match.RankID(" Genus "))
	assert.Equal(t, 1000, match.RankID("KINGDOM"))
	assert.Equal(t, 0, match.RankID("clade"))
}

func TestSignature(t *testing.T) {
	n := normalize.All()
	q1 := match.NameQuery{ScientificName: "Acacia  dealbata"}
	q2 := match.NameQuery{ScientificName: "acacia dealbata"}
	q3 := match.NameQuery{ScientificName: "Acacia dealbata", SearchStyle: match.Fuzzy}

	s1 := match.NewSignature(match.ScopeMatch, q1, n)
	s2 := match.NewSignature(match.ScopeMatch, q2, n)
	s3 := match.NewSignature(match.ScopeMatch, q3, n)
	s4 := match.NewSignature(match.ScopeVernacular, q1, n)

	assert.Equal(t, s1, s2)
	assert.NotEqual(t, s1, s3)
	assert.NotEqual(t, s1, s4)
	assert.Equal(t, s1, match.NewSignature(match.ScopeMatch, q1, n))
}

func TestWireShape(t *testing.T) {
	q := match.NameQuery{
		ScientificName: "Acacia dealbata",
		SearchStyle:    match.Fuzzy,
	}
	bs, err := json.Marshal(q)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"scientificName":"Acacia dealbata","searchStyle":"FUZZY"}`,
		string(bs),
	)

	bs, err = json.Marshal(match.Fail())
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"issues":["noMatch"]}`, string(bs))
}

func TestQueryFromParams(t *testing.T) {
	params := map[string]string{
		"scientificName": "Acacia dealbata",
		"kingdom":        "Plantae",
		"searchStyle":    "STRICT",
	}
	q := match.QueryFromParams(func(name string) string {
		return params[name]
	})
	assert.Equal(t,
		"scientificName=Acacia dealbata\x1fkingdom=Plantae\x1fsearchStyle=STRICT",
		q.Key(),
	)
}
