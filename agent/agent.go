// Package agent implements the interactive AI assistant behind 'cfol assist'.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent runs the chat session: a facilitator model fronting a set of experts
// it can consult as tools.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	Facilitator *Expert
	Experts     []*Expert
}

// New creates an Agent writing to w and reading user input from r. The
// experts become the facilitator's tools.
func New(w io.Writer, r io.Reader, experts ...*Expert) *Agent {
	return &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		Experts:     experts,
		Facilitator: newFacilitator(experts...),
	}
}

// Start opens the chat sessions, experts first so the facilitator can reach
// them from its very first turn.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return err
		}
	}
	return a.Facilitator.Start(ctx, client)
}

const prompt = "cfol> "

// Run reads questions line by line and prints the facilitator's answers.
// Initial prompts, if any, are consumed before reading from the user; the
// session ends on 'bye' or end of input.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "cfol assist ready. Ask about your portfolio; 'bye' quits.")

	for {
		fmt.Fprint(a.w, prompt)

		var input string
		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			if strings.TrimSpace(input) == "" {
				continue
			}
			// Echo scripted questions so the transcript reads like a session.
			fmt.Fprintln(a.w, input)
		} else {
			line, err := a.r.ReadString('\n')
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}
			input = line
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		content, err := a.Facilitator.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, content.Parts[0].Text)
	}
}
