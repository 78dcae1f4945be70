package insights

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/business-insights-agent/internal/models"
)

const (
	// SystemInstruction frames the model as a growth advisor.
	SystemInstruction = "You are an expert business growth advisor. Analyze business profiles and provide strategic insights."

	// Temperature and MaxOutputTokens are fixed for every provider call.
	Temperature     float32 = 0.7
	MaxOutputTokens         = 2000

	textPlaceholder   = "N/A"
	amountPlaceholder = "0"
	noMarketFactors   = "None specified"
)

// ChatRequest is the provider-neutral shape of one insight generation call
type ChatRequest struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int
}

// BuildRequest renders profile into the two-message chat request sent to the provider.
func BuildRequest(profile *models.BusinessProfile) ChatRequest {
	return ChatRequest{
		System:      SystemInstruction,
		User:        "I need a comprehensive business growth analysis for this business profile:\n\n" + RenderProfile(profile),
		Temperature: Temperature,
		MaxTokens:   MaxOutputTokens,
	}
}

// RenderProfile formats the profile as a fixed-order block of "Label: value" lines.
// The field order and placeholders are stable so identical input gives identical prompts.
func RenderProfile(profile *models.BusinessProfile) string {
	if profile == nil {
		profile = &models.BusinessProfile{}
	}

	var builder strings.Builder
	builder.WriteString("\n")
	builder.WriteString(fmt.Sprintf("Business: %s\n", text(profile.BusinessName)))
	builder.WriteString(fmt.Sprintf("Industry: %s\n", text(profile.Industry)))
	builder.WriteString(fmt.Sprintf("Description: %s\n", text(profile.Description)))
	builder.WriteString(fmt.Sprintf("Stage: %s\n", text(profile.Stage)))
	builder.WriteString(fmt.Sprintf("Employees: %s\n", text(profile.Employees)))
	builder.WriteString(fmt.Sprintf("Location: %s\n", text(profile.Location)))
	builder.WriteString(fmt.Sprintf("Monthly Revenue: $%s\n", amount(profile.Financials.MonthlyRevenue)))
	builder.WriteString(fmt.Sprintf("Monthly Expenses: $%s\n", amount(profile.Financials.MonthlyExpenses)))
	builder.WriteString(fmt.Sprintf("Funding Stage: %s\n", text(profile.Financials.FundingStage)))
	builder.WriteString(fmt.Sprintf("Primary Goal: %s\n", text(profile.Goals.PrimaryGoal)))
	builder.WriteString(fmt.Sprintf("Top Challenge: %s\n", text(profile.Goals.TopChallenge)))
	builder.WriteString(fmt.Sprintf("Market Factors: %s\n", marketFactors(profile.MarketFactors)))
	return builder.String()
}

func text(value string) string {
	if value == "" {
		return textPlaceholder
	}
	return value
}

func amount(value *models.Amount) string {
	if value == nil {
		return amountPlaceholder
	}
	return value.String()
}

func marketFactors(factors []string) string {
	if len(factors) == 0 {
		return noMarketFactors
	}
	return strings.Join(factors, ", ")
}
