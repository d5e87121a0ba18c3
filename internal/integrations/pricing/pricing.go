// Package pricing produces cost/labor estimates for quote lines that had
// no catalog match. The engine only ever consumes the structured Response;
// the network call lives entirely behind the Estimator interface.
package pricing

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/tidwall/gjson"
)

const defaultModel = "claude-sonnet-4-5-20250929"

// Request describes the inspection finding to price.
type Request struct {
	Section         string
	Item            string
	Notes           string
	Recommendations []string
}

// ResponseKind tags the decoded response. Unknown is the explicit
// fallback variant: a reply the decoder could not recognize is carried as
// data, never as a hard parse failure.
type ResponseKind string

const (
	KindEstimate ResponseKind = "estimate"
	KindUnknown  ResponseKind = "unknown"
)

// Response is the structured pricing reply. Every field is optional and
// defaulted; malformed model output degrades to KindUnknown with Raw set.
type Response struct {
	Kind       ResponseKind
	PartCost   float64
	LaborHours float64
	Confidence float64
	Note       string
	Raw        string
}

// Estimator is what the session consumes; Client is the Anthropic-backed
// implementation.
type Estimator interface {
	Estimate(ctx context.Context, req Request) (Response, error)
}

type Client struct {
	apiKey string
	model  string
}

func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{apiKey: apiKey, model: model}
}

func (c *Client) Estimate(ctx context.Context, req Request) (Response, error) {
	systemPrompt := `You estimate repair pricing for a vehicle inspection finding.
Respond with JSON only (no markdown):
{"part_cost": 24.99, "labor_hours": 0.5, "confidence": 0.8, "note": "..."}
part_cost is the retail parts cost in USD, labor_hours the book labor time.
If you cannot estimate, set confidence to 0 and explain in note.`

	var b strings.Builder
	fmt.Fprintf(&b, "Section: %s\nItem: %s\n", req.Section, req.Item)
	if strings.TrimSpace(req.Notes) != "" {
		fmt.Fprintf(&b, "Technician notes: %s\n", strings.TrimSpace(req.Notes))
	}
	for _, r := range req.Recommendations {
		fmt.Fprintf(&b, "Recommendation: %s\n", strings.TrimSpace(r))
	}

	client := anthropic.NewClient(option.WithAPIKey(c.apiKey))
	log.Printf("pricing estimate model=%s section=%s item=%s", c.model, req.Section, req.Item)
	message, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(b.String())),
		},
	})
	if err != nil {
		log.Printf("pricing anthropic error: %v", err)
		return Response{}, fmt.Errorf("Anthropic API error: %w", err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			resp := DecodeResponse(block.Text)
			log.Printf("pricing response kind=%s part_cost=%.2f labor_hours=%.2f confidence=%.2f",
				resp.Kind, resp.PartCost, resp.LaborHours, resp.Confidence)
			return resp, nil
		}
	}
	return Response{Kind: KindUnknown}, fmt.Errorf("no text content in Anthropic response")
}

// DecodeResponse parses model output defensively. Markdown fences are
// stripped, numeric fields accept numbers or numeric strings, and a reply
// with no recognizable pricing fields becomes KindUnknown.
func DecodeResponse(text string) Response {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	if !gjson.Valid(text) {
		return Response{Kind: KindUnknown, Raw: text}
	}
	obj := gjson.Parse(text)
	if obj.IsArray() {
		// Some models wrap the single estimate in an array.
		arr := obj.Array()
		if len(arr) == 0 {
			return Response{Kind: KindUnknown, Raw: text}
		}
		obj = arr[0]
	}
	if !obj.IsObject() {
		return Response{Kind: KindUnknown, Raw: text}
	}

	partCost, partOK := numericField(obj, "part_cost", "partCost", "parts_cost", "cost")
	laborHours, laborOK := numericField(obj, "labor_hours", "laborHours", "labor")
	if !partOK && !laborOK {
		return Response{Kind: KindUnknown, Raw: text}
	}

	confidence, _ := numericField(obj, "confidence")
	return Response{
		Kind:       KindEstimate,
		PartCost:   partCost,
		LaborHours: laborHours,
		Confidence: confidence,
		Note:       strings.TrimSpace(obj.Get("note").String()),
	}
}

// numericField accepts numbers and numeric strings like "24.99" or
// "$24.99"; anything else reads as absent.
func numericField(obj gjson.Result, keys ...string) (float64, bool) {
	for _, k := range keys {
		r := obj.Get(k)
		if !r.Exists() {
			continue
		}
		switch r.Type {
		case gjson.Number:
			return r.Float(), true
		case gjson.String:
			s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(r.String()), "$"))
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}
