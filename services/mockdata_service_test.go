package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMonthlyFinancials_TwelvePointsAndProfitInvariant(t *testing.T) {
	cases := []struct {
		rent       float64
		propertyID int
	}{
		{1000, 1},
		{2500.5, 7},
		{0, 3},
		{87000, 42},
	}

	for _, tc := range cases {
		points := GenerateMonthlyFinancials(tc.rent, tc.propertyID)
		require.Len(t, points, 12)

		for i, p := range points {
			assert.Equal(t, p.Revenue-p.Expenses, p.Profit,
				"利润必须等于收入减支出 (rent=%v id=%d month=%d)", tc.rent, tc.propertyID, i)
		}
	}
}

func TestGenerateMonthlyFinancials_MonthNamesInOrder(t *testing.T) {
	expected := []string{
		"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	}

	points := GenerateMonthlyFinancials(1200, 5)
	require.Len(t, points, 12)
	for i, p := range points {
		assert.Equal(t, expected[i], p.Month)
	}
}

func TestGenerateMonthlyFinancials_Deterministic(t *testing.T) {
	first := GenerateMonthlyFinancials(3300, 17)
	second := GenerateMonthlyFinancials(3300, 17)
	assert.Equal(t, first, second, "相同输入必须产生逐位相同的序列")
}

func TestGenerateMonthlyFinancials_JanuaryFormula(t *testing.T) {
	// rent=1000, propertyID=1, 一月: 季节系数0.97,
	// 收入扰动 1+0.05*sin(1000), 支出扰动 1+0.08*sin(1000)
	points := GenerateMonthlyFinancials(1000, 1)
	require.Len(t, points, 12)

	expectedRevenue := int(math.Round(1000 * 0.97 * (1 + 0.05*math.Sin(1000))))
	expectedExpenses := int(math.Round(600 * (1 + 0.08*math.Sin(1000))))

	assert.Equal(t, expectedRevenue, points[0].Revenue)
	assert.Equal(t, expectedExpenses, points[0].Expenses)
	assert.Equal(t, expectedRevenue-expectedExpenses, points[0].Profit)
}

func TestGenerateMonthlyFinancials_SeasonalFactors(t *testing.T) {
	points := GenerateMonthlyFinancials(1000, 2)
	seed := 2000.0

	// 四月到九月没有季节系数
	for m := 3; m <= 8; m++ {
		jitter := 1 + 0.05*math.Sin(seed+float64(m)*50)
		assert.Equal(t, int(math.Round(1000*jitter)), points[m].Revenue, "month %d", m)
	}
	// 十月到十二月乘以1.05
	for m := 9; m <= 11; m++ {
		jitter := 1 + 0.05*math.Sin(seed+float64(m)*50)
		assert.Equal(t, int(math.Round(1000*1.05*jitter)), points[m].Revenue, "month %d", m)
	}
}

func TestGenerateMonthlyFinancials_InputDefaults(t *testing.T) {
	// 负租金按0处理
	points := GenerateMonthlyFinancials(-500, 1)
	for _, p := range points {
		assert.Zero(t, p.Revenue)
		assert.Zero(t, p.Expenses)
		assert.Zero(t, p.Profit)
	}

	// 非法物业ID按1处理
	assert.Equal(t,
		GenerateMonthlyFinancials(1000, 1),
		GenerateMonthlyFinancials(1000, 0))
	assert.Equal(t,
		GenerateMonthlyFinancials(1000, 1),
		GenerateMonthlyFinancials(1000, -9))
}
