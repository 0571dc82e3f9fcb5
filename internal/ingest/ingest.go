// Package ingest reads bill images with a multimodal chat model and
// translates item names into a target language.
package ingest

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"golang.org/x/text/unicode/norm"

	"github.com/Swagat404/SettleUp/internal/models"
	"github.com/Swagat404/SettleUp/internal/openai"
)

const parsePrompt = "Can you see this bill? Parse each line item's name as item_name, " +
	"quantity as quantity, price of one unit as price_per_unit and total price of " +
	"the quantity as total_price, under an items array. Add the names of any " +
	"people on the bill as people and the bill category as bill_category. " +
	"Account for any discounted prices visible on the bill. Reply with the JSON " +
	"object only, using exactly these fields."

// ErrNoJSON is returned when a model reply contains no JSON object.
var ErrNoJSON = errors.New("no JSON object in model reply")

var fencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// Completer is the chat completion call the client needs.
type Completer interface {
	ChatCompletion(ctx context.Context, model string, messages []openai.Message) (string, error)
}

// Config selects models and the translation target.
type Config struct {
	ParseModel     string
	TranslateModel string
	TargetLanguage language.Tag
}

// Client implements bill parsing and translation.
type Client struct {
	chat Completer
	cfg  Config
}

// New creates a Client. An undetermined target language means English.
func New(chat Completer, cfg Config) *Client {
	if cfg.TargetLanguage.IsRoot() {
		cfg.TargetLanguage = language.English
	}
	return &Client{chat: chat, cfg: cfg}
}

// Parse sends the image to the parse model and decodes the reply.
func (c *Client) Parse(ctx context.Context, image []byte) (*models.ParsedBill, error) {
	mime := http.DetectContentType(image)
	if !strings.HasPrefix(mime, "image/") {
		return nil, fmt.Errorf("unsupported bill image type %q", mime)
	}
	dataURL := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(image)

	reply, err := c.chat.ChatCompletion(ctx, c.cfg.ParseModel, []openai.Message{{
		Role:    "user",
		Content: []openai.ContentPart{openai.TextPart(parsePrompt), openai.ImagePart(dataURL)},
	}})
	if err != nil {
		return nil, fmt.Errorf("parse bill: %w", err)
	}

	bill, err := decodeBill(reply)
	if err != nil {
		return nil, fmt.Errorf("parse bill: %w", err)
	}
	return bill, nil
}

// Translate returns a copy of bill with item names translated into the
// target language. Names the model returns empty are kept as they were.
func (c *Client) Translate(ctx context.Context, bill *models.ParsedBill) (*models.ParsedBill, error) {
	target := c.targetName()
	category := strings.TrimSpace(bill.Category)
	if category == "" {
		category = "general"
	}
	system := fmt.Sprintf(
		"You are a concise translator translating item names to %s from %s bills. "+
			"If a name is already in %s, return it unchanged. Reply with the name only.",
		target, category, target,
	)

	out := *bill
	out.Items = make([]models.ParsedItem, len(bill.Items))
	for i, item := range bill.Items {
		reply, err := c.chat.ChatCompletion(ctx, c.cfg.TranslateModel, []openai.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: item.Name},
		})
		if err != nil {
			return nil, fmt.Errorf("translate item %d %q: %w", i, item.Name, err)
		}
		if name := norm.NFC.String(strings.TrimSpace(reply)); name != "" {
			item.Name = name
		}
		out.Items[i] = item
	}
	return &out, nil
}

func (c *Client) targetName() string {
	if name := display.English.Languages().Name(c.cfg.TargetLanguage); name != "" {
		return name
	}
	return c.cfg.TargetLanguage.String()
}

// decodeBill extracts the JSON object from a model reply. Fenced blocks are
// preferred; otherwise the outermost braces are used.
func decodeBill(reply string) (*models.ParsedBill, error) {
	raw := ""
	if m := fencePattern.FindStringSubmatch(reply); m != nil {
		raw = strings.TrimSpace(m[1])
	} else if start, end := strings.Index(reply, "{"), strings.LastIndex(reply, "}"); start >= 0 && end > start {
		raw = reply[start : end+1]
	}
	if raw == "" {
		return nil, ErrNoJSON
	}

	var bill models.ParsedBill
	if err := json.Unmarshal([]byte(raw), &bill); err != nil {
		return nil, fmt.Errorf("decode bill json: %w", err)
	}

	for i := range bill.Items {
		item := &bill.Items[i]
		item.Name = norm.NFC.String(strings.TrimSpace(item.Name))
		if item.TotalPrice.IsZero() && !item.PricePerUnit.IsZero() {
			qty := item.Quantity
			if qty.IsZero() {
				qty = decimal.NewFromInt(1)
			}
			item.TotalPrice = item.PricePerUnit.Mul(qty).Round(2)
		}
	}
	return &bill, nil
}
