package agent

import (
	"context"

	"github.com/tviana/cryptofolio"
	"github.com/tviana/cryptofolio/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert skills you can reach through the Tools and ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to understand the state of his crypto portfolio: what he holds,
			what it is worth, and how it is allocated. Check the portfolio first so you know his assets
			before answering.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst returns the expert in charge of reading the user's portfolio.
// The load callback prices the portfolio at current market prices.
func NewAnalyst(load func() (*cryptofolio.Valuation, error)) *Expert {
	lib := []Function{
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "portfolio_valuation",
				Description: "Returns the user's portfolio priced at current market prices: per-asset amount, price, value and share of the total, as a markdown table.",
				Parameters:  &genai.Schema{Type: genai.TypeObject},
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "The portfolio valuation as markdown.",
				},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				fresp := &genai.FunctionResponse{ID: id, Name: "portfolio_valuation", Response: map[string]any{}}
				v, err := load()
				if err != nil {
					fresp.Response["error"] = err.Error()
					return fresp
				}
				md, err := renderer.HoldingMarkdown(v)
				if err != nil {
					fresp.Response["error"] = err.Error()
					return fresp
				}
				fresp.Response["output"] = md
				return fresp
			},
		},
	}

	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. He is in charge of reading the user's crypto portfolio.
		He can price it at current market rates and report values and allocation.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an analyst in charge of the user's crypto portfolio.
				You know how to use the Tools to extract relevant information about the user's
				holdings and their current value. They might ask approximative questions,
				pardon their language and figure out what they meant.

				Use the available tools to get information about the user's portfolio:
				  - held assets and amounts
				  - current prices and values
				  - allocation percentages
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function.
type Func struct {
	// Decl declares this function.
	Decl *genai.FunctionDeclaration
	// Func calls this function.
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}
