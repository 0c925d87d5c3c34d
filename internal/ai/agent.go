package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-parfait-pos/internal/database"
	"go-parfait-pos/internal/report"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"gorm.io/gorm"
)

// Agent answers admin questions about the shop by calling back into the
// catalog and the aggregation engine.
type Agent struct {
	DB *gorm.DB
}

func (a *Agent) Run(ctx context.Context, userMessage, apiKey string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash-001")

	today := time.Now().Format("2006-01-02")
	systemPrompt := fmt.Sprintf(`SYSTEM: Today is %s. You are the sales assistant of a small food shop.

RULES:
1. CATALOG: For any question about products, flavors or prices, call
   'check_catalog' and read the JSON to answer. Do NOT say you cannot
   see the catalog.
2. SALES: For revenue, counts or trends, call 'get_sales_summary' with
   the date the user is asking about (default to today). The summary
   already contains day/month/year totals and the 6-month trend.
3. Amounts are in Naira.

USER: %s`, today, userMessage)

	model.Tools = []*genai.Tool{
		{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        "check_catalog",
					Description: "Get the full product catalog with every flavor and its price.",
				},
				{
					Name:        "get_sales_summary",
					Description: "Get day/month/year sales totals and the 6-month revenue trend for a given date.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"date": {Type: genai.TypeString, Description: "Cursor date (YYYY-MM-DD)"},
						},
						Required: []string{"date"},
					},
				},
			},
		},
	}

	session := model.StartChat()

	resp, err := session.SendMessage(ctx, genai.Text(systemPrompt))
	if err != nil {
		return "", err
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok {
			switch funcCall.Name {
			case "check_catalog":
				return a.executeCheckCatalog(ctx, session)
			case "get_sales_summary":
				return a.executeSalesSummary(ctx, session, funcCall)
			}
		}
	}

	return printResponse(resp), nil
}

func (a *Agent) executeCheckCatalog(ctx context.Context, session *genai.ChatSession) (string, error) {
	products, err := database.Catalog(a.DB)
	if err != nil {
		return "", err
	}

	type simpleFlavor struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	type simpleProduct struct {
		Name    string         `json:"name"`
		Flavors []simpleFlavor `json:"flavors"`
	}
	var list []simpleProduct
	for _, p := range products {
		sp := simpleProduct{Name: p.Name}
		for _, f := range p.Flavors {
			sp.Flavors = append(sp.Flavors, simpleFlavor{Name: f.Name, Price: f.Price})
		}
		list = append(list, sp)
	}

	jsonBytes, _ := json.Marshal(list)

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "check_catalog",
		Response: map[string]interface{}{"catalog": string(jsonBytes)},
	})
	if err != nil {
		return "", err
	}
	return printResponse(finalResp), nil
}

func (a *Agent) executeSalesSummary(ctx context.Context, session *genai.ChatSession, funcCall genai.FunctionCall) (string, error) {
	dateStr, _ := funcCall.Args["date"].(string)
	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return "Error: Dates must be in YYYY-MM-DD format.", nil
	}

	sales, err := database.AllSales(a.DB)
	if err != nil {
		return "", err
	}
	records := database.ToRecords(sales)

	cursor := report.Cursor{Year: day.Year(), Month: int(day.Month()), Day: day.Day()}
	kpi := report.Rollup(records, cursor)
	trend := report.Trend(records, time.Now())
	delta := report.MonthDelta(trend)

	trendJSON, _ := json.Marshal(trend)

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name: "get_sales_summary",
		Response: map[string]interface{}{
			"day_total":   kpi.DayTotal,
			"day_count":   kpi.DayCount,
			"month_total": kpi.MonthTotal,
			"month_count": kpi.MonthCount,
			"year_total":  kpi.YearTotal,
			"year_count":  kpi.YearCount,
			"trend":       string(trendJSON),
			"month_delta": delta.String(),
		},
	})
	if err != nil {
		return "", err
	}
	return printResponse(finalResp), nil
}

func printResponse(resp *genai.GenerateContentResponse) string {
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return "I completed the action."
}
