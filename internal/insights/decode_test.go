package insights

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeProfile_Valid(t *testing.T) {
	body := `{
		"businessName": "Acme",
		"industry": "Retail",
		"financials": {"monthlyRevenue": "12000", "monthlyExpenses": 9000, "fundingStage": "Seed"},
		"goals": {"primaryGoal": "Expand online", "topChallenge": "Cash flow"},
		"marketFactors": ["inflation", "hiring"],
		"somethingElse": true
	}`

	profile, err := DecodeProfile([]byte(body))
	require.NoError(t, err)

	assert.Equal(t, "Acme", profile.BusinessName)
	assert.Equal(t, "Retail", profile.Industry)
	require.NotNil(t, profile.Financials.MonthlyRevenue)
	assert.Equal(t, 12000.0, profile.Financials.MonthlyRevenue.Float64())
	assert.Equal(t, "12000", profile.Financials.MonthlyRevenue.String())
	assert.Equal(t, 9000.0, profile.Financials.MonthlyExpenses.Float64())
	assert.Equal(t, "Seed", profile.Financials.FundingStage)
	assert.Equal(t, "Cash flow", profile.Goals.TopChallenge)
	assert.Equal(t, []string{"inflation", "hiring"}, profile.MarketFactors)
}

func TestDecodeProfile_EmptyObject(t *testing.T) {
	profile, err := DecodeProfile([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, profile.BusinessName)
	assert.Nil(t, profile.Financials.MonthlyRevenue)
	assert.Empty(t, profile.MarketFactors)
}

func TestDecodeProfile_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{name: "empty body", body: ""},
		{name: "whitespace body", body: "  \n"},
		{name: "malformed json", body: `{"businessName": `},
		{name: "array body", body: `["a"]`},
		{name: "wrong type", body: `{"businessName": 5}`, wantField: "businessName"},
		{name: "market factors not a list", body: `{"marketFactors": "inflation"}`, wantField: "marketFactors"},
		{name: "non numeric amount", body: `{"financials": {"monthlyRevenue": "a lot"}}`, wantField: "financials.monthlyRevenue"},
		{name: "bool amount", body: `{"financials": {"monthlyRevenue": true}}`, wantField: "financials.monthlyRevenue"},
		{name: "object amount", body: `{"financials": {"monthlyExpenses": {}}}`, wantField: "financials.monthlyExpenses"},
		{name: "array amount", body: `{"financials": {"monthlyRevenue": [1]}}`, wantField: "financials.monthlyRevenue"},
		{name: "negative string amount", body: `{"financials": {"monthlyRevenue": "-10"}}`, wantField: "financials.monthlyRevenue"},
		{name: "negative amount", body: `{"financials": {"monthlyExpenses": -5}}`, wantField: "financials.monthlyExpenses"},
		{name: "name too long", body: `{"businessName": "` + longString(201) + `"}`, wantField: "businessName"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := DecodeProfile([]byte(tt.body))
			assert.Nil(t, profile)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "expected ValidationError, got %v", err)
			if tt.wantField != "" {
				require.NotEmpty(t, validationErr.Fields)
				assert.Contains(t, validationErr.Fields[0], tt.wantField)
			}
		})
	}
}

func TestDecodeProfile_TooManyMarketFactors(t *testing.T) {
	body := `{"marketFactors": [`
	for i := 0; i < 51; i++ {
		if i > 0 {
			body += ","
		}
		body += `"x"`
	}
	body += `]}`

	_, err := DecodeProfile([]byte(body))

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"marketFactors"}, validationErr.Fields)
}

func longString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'a'
	}
	return string(b)
}

func TestReadBody(t *testing.T) {
	body, err := ReadBody(strings.NewReader(`{"industry": "SaaS"}`))
	require.NoError(t, err)
	assert.Equal(t, `{"industry": "SaaS"}`, string(body))

	body, err = ReadBody(nil)
	require.NoError(t, err)
	assert.Empty(t, body)

	_, err = ReadBody(bytes.NewReader(make([]byte, MaxBodyBytes+1)))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestReadBody_MaxBytesReader(t *testing.T) {
	r := http.MaxBytesReader(httptest.NewRecorder(), io.NopCloser(bytes.NewReader(make([]byte, MaxBodyBytes+10))), MaxBodyBytes)

	_, err := ReadBody(r)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestReadBody_ReadFailure(t *testing.T) {
	_, err := ReadBody(iotest.ErrReader(errors.New("connection reset")))

	require.Error(t, err)
	var validationErr *ValidationError
	assert.False(t, errors.As(err, &validationErr))
	assert.EqualError(t, err, "read request body: connection reset")
}

func TestMaxBodyBytes_FitsLargestValidProfile(t *testing.T) {
	factors := make([]string, 50)
	for i := range factors {
		factors[i] = longString(200)
	}
	profile := map[string]any{
		"businessName": longString(200),
		"industry":     longString(200),
		"description":  longString(5000),
		"stage":        longString(200),
		"employees":    longString(200),
		"location":     longString(200),
		"financials": map[string]any{
			"monthlyRevenue":  "123456789012.99",
			"monthlyExpenses": "123456789012.99",
			"fundingStage":    longString(200),
		},
		"goals":         map[string]any{"primaryGoal": longString(200), "topChallenge": longString(200)},
		"marketFactors": factors,
	}

	body, err := json.Marshal(profile)
	require.NoError(t, err)
	require.Less(t, len(body), MaxBodyBytes)

	_, err = DecodeProfile(body)
	assert.NoError(t, err)
}
