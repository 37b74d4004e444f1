// Package ai answers a shop owner's questions about stock, sales and debt
// with a Gemini model that can call read-only tools.
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dairy-pos/internal/catalog"
	"dairy-pos/internal/database"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"gorm.io/gorm"
)

const (
	defaultModel = "gemini-2.0-flash-001"
	maxToolCalls = 5
)

var ErrDisabled = errors.New("assistant is not configured (GEMINI_API_KEY is empty)")

type Agent struct {
	apiKey  string
	model   string
	db      *gorm.DB
	catalog *catalog.Store
}

func NewAgent(apiKey string, db *gorm.DB, products *catalog.Store) *Agent {
	return &Agent{apiKey: apiKey, model: defaultModel, db: db, catalog: products}
}

func (a *Agent) Enabled() bool { return a != nil && a.apiKey != "" }

// Ask runs one question through the model, answering its tool calls with
// data from shopID only.
func (a *Agent) Ask(ctx context.Context, shopID, userMessage string) (string, error) {
	if !a.Enabled() {
		return "", ErrDisabled
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(a.apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel(a.model)
	model.Tools = tools

	today := time.Now().Format("2006-01-02")
	systemPrompt := fmt.Sprintf(`SYSTEM: Today is %s. You are the assistant of a small dairy shop.

	RULES:
	1. STOCK: For any question about a product's price, unit, stock or expiry, call 'check_inventory' and read the JSON.
	2. SALES: For revenue or number of sales, call 'get_sales_report' with a date range.
	3. DEBT: For who owes money or how much is outstanding, call 'get_outstanding_debt'.
	4. You can only read. If asked to change prices, stock or record a sale, say the owner must do it in the app.

	USER: %s`, today, userMessage)

	session := model.StartChat()
	resp, err := session.SendMessage(ctx, genai.Text(systemPrompt))
	if err != nil {
		return "", err
	}

	// --- HANDLE TOOL CALLS ---
	for i := 0; i < maxToolCalls; i++ {
		call, ok := firstCall(resp)
		if !ok {
			break
		}
		result := a.runTool(ctx, shopID, call)
		resp, err = session.SendMessage(ctx, genai.FunctionResponse{Name: call.Name, Response: result})
		if err != nil {
			return "", err
		}
	}

	return printResponse(resp), nil
}

var tools = []*genai.Tool{
	{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        "check_inventory",
				Description: "Get the full product list of the shop: name, price, unit, stock level, category and expiry date.",
			},
			{
				Name:        "get_sales_report",
				Description: "Get paid revenue and number of sales for a date range, plus the total outstanding debt.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"start_date": {Type: genai.TypeString, Description: "Start date (YYYY-MM-DD)"},
						"end_date":   {Type: genai.TypeString, Description: "End date (YYYY-MM-DD)"},
					},
					Required: []string{"start_date", "end_date"},
				},
			},
			{
				Name:        "get_outstanding_debt",
				Description: "List customers with unpaid tab sales and how much each owes.",
			},
		},
	},
}

// runTool answers one function call. Failures are reported to the model as
// an "error" field rather than aborting the chat.
func (a *Agent) runTool(ctx context.Context, shopID string, call genai.FunctionCall) map[string]any {
	switch call.Name {
	case "check_inventory":
		products, err := a.catalog.ListByShop(ctx, shopID)
		if err != nil {
			return map[string]any{"error": "could not read inventory"}
		}
		list := make([]map[string]any, 0, len(products))
		for _, p := range products {
			item := map[string]any{
				"name":     p.Name,
				"price":    p.Price,
				"unit":     string(p.Unit),
				"stock":    p.StockLevel,
				"category": p.Category,
			}
			if p.ExpDate != nil {
				item["exp_date"] = p.ExpDate.Format("2006-01-02")
			}
			list = append(list, item)
		}
		return map[string]any{"inventory": list}

	case "get_sales_report":
		startStr, _ := call.Args["start_date"].(string)
		endStr, _ := call.Args["end_date"].(string)
		start, err1 := time.ParseInLocation("2006-01-02", startStr, time.Local)
		end, err2 := time.ParseInLocation("2006-01-02", endStr, time.Local)
		if err1 != nil || err2 != nil {
			return map[string]any{"error": "dates must be in YYYY-MM-DD format"}
		}
		end = end.Add(24*time.Hour - time.Nanosecond)

		report, err := database.GetSalesReport(ctx, a.db, shopID, start, end)
		if err != nil {
			return map[string]any{"error": "could not calculate sales"}
		}
		return map[string]any{
			"revenue":          report.Revenue,
			"sales_count":      report.SalesCount,
			"outstanding_debt": report.OutstandingDebt,
		}

	case "get_outstanding_debt":
		debtors, err := database.GetDebtors(ctx, a.db, shopID)
		if err != nil {
			return map[string]any{"error": "could not read debts"}
		}
		list := make([]map[string]any, 0, len(debtors))
		for _, d := range debtors {
			list = append(list, map[string]any{"customer": d.Name, "owes": d.Total, "unpaid_sales": d.SaleCount})
		}
		return map[string]any{"debtors": list}

	default:
		return map[string]any{"error": "unknown tool " + call.Name}
	}
}

func firstCall(resp *genai.GenerateContentResponse) (genai.FunctionCall, bool) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return genai.FunctionCall{}, false
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if call, ok := part.(genai.FunctionCall); ok {
			return call, true
		}
	}
	return genai.FunctionCall{}, false
}

func printResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "I could not come up with an answer."
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return "I looked that up but have nothing to add."
}
