package params_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/entitlement-engine/params"
	"github.com/warp/entitlement-engine/statute"
)

func TestLoad_EmbeddedTables(t *testing.T) {
	reg, err := params.Load()
	require.NoError(t, err)

	// Every paragraph the engine depends on must be present.
	for _, p := range []statute.Paragraph{
		statute.ParIncomeTax, statute.ParSurcharge, statute.ParSocialInsurance,
		statute.ParEmploymentDeduct, statute.ParNeed, statute.ParInsuranceSupp,
		statute.ParStudentAllowance, statute.ParFamilyAllowance, statute.ParAssetAllowance,
	} {
		_, err := reg.Lookup(p, 2022)
		assert.NoError(t, err, "paragraph %s", p)
	}
}

func TestLoad_2023BackfillsAidTables(t *testing.T) {
	// The 2022 aid amendment stays in force through 2023.
	reg, err := params.Load()
	require.NoError(t, err)

	set, err := reg.Lookup(statute.ParNeed, 2023)
	require.NoError(t, err)
	assert.Equal(t, statute.Year(2022), set.Year)
	assert.True(t, set.Scalars.Amount("max_award").Equal(statute.NewAmount(934)))
}

func TestLoad_TaxSchedulesEvaluate(t *testing.T) {
	reg, err := params.Load()
	require.NoError(t, err)

	for _, year := range []statute.Year{2021, 2022, 2023} {
		set, err := reg.Lookup(statute.ParIncomeTax, year)
		require.NoError(t, err)

		zero, err := set.Brackets.Evaluate(statute.ZeroAmount())
		require.NoError(t, err)
		assert.True(t, zero.IsZero(), "year %d: zero income must be tax-free", year)

		high, err := set.Brackets.Evaluate(statute.NewAmount(300000))
		require.NoError(t, err)
		assert.True(t, high.IsPositive(), "year %d: open-ended top bracket", year)
	}
}

func TestLoad_ContributionScheduleShare(t *testing.T) {
	reg, err := params.Load()
	require.NoError(t, err)

	set, err := reg.Lookup(statute.ParFamilyAllowance, 2022)
	require.NoError(t, err)

	// At the first bracket's lower bound the contribution is exactly zero.
	c, err := set.Brackets.Evaluate(statute.ZeroAmount())
	require.NoError(t, err)
	assert.True(t, c.IsZero())

	// 50% retention without siblings: 1000 excess charges 500.
	c, err = set.Brackets.EvaluateWithDependents(statute.NewAmount(1000), 0)
	require.NoError(t, err)
	assert.True(t, c.Equal(statute.NewAmount(500)), "got %v", c.Value)
}

func TestLoadFrom_RejectsMalformedDocuments(t *testing.T) {
	cases := map[string]string{
		"not json":        `{"paragraphs": [`,
		"empty":           `{"paragraphs": []}`,
		"bad kind":        `{"paragraphs": [{"paragraph": "x", "year": 2022, "brackets": [{"lower": "0", "formula": {"kind": "cubic"}}]}]}`,
		"bad coefficient": `{"paragraphs": [{"paragraph": "x", "year": 2022, "brackets": [{"lower": "0", "formula": {"kind": "polynomial", "a2": "abc"}}]}]}`,
		"unordered":       `{"paragraphs": [{"paragraph": "x", "year": 2022, "brackets": [{"lower": "10", "formula": {"kind": "zero"}}, {"lower": "10", "formula": {"kind": "zero"}}]}]}`,
	}

	for name, doc := range cases {
		_, err := params.LoadFrom([]byte(doc))
		assert.Error(t, err, name)
	}
}
