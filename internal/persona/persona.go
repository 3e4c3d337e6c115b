// Package persona holds the fixed catalog of personas the model can
// impersonate and renders each persona into its system prompt.
//
// The rendered prompt is the binding contract between the step-protocol
// engine and the model: it mandates the START/THINK/EVALUATE/OUTPUT
// discipline and the exact JSON shape the engine's parser depends on.
// Changing the prompt wording around that shape is a wire-format change.
package persona

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates the requested persona id is not in the catalog.
var ErrNotFound = errors.New("persona not found")

// Persona describes a named, styled identity the model is instructed to
// role-play. Instances are immutable after catalog construction.
type Persona struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Characteristics []string `json:"characteristics"`
	CommonPhrases   []string `json:"commonPhrases"`
	ResponseStyle   string   `json:"responseStyle"`
	LanguageStyle   string   `json:"languageStyle"`
	Emojis          []string `json:"emojis"`
	Expertise       []string `json:"expertise"`
	Tone            string   `json:"tone"`
}

// Ref is the short identity triple echoed back to API clients.
type Ref struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Ref returns the persona's identity triple.
func (p *Persona) Ref() Ref {
	return Ref{ID: p.ID, Name: p.Name, Title: p.Title}
}

// Catalog is a read-only registry of personas keyed by id.
type Catalog struct {
	byID    map[string]*Persona
	ordered []*Persona
}

// NewCatalog builds a catalog from the given personas.
// Returns an error on duplicate ids; ids must be unique.
func NewCatalog(personas []Persona) (*Catalog, error) {
	c := &Catalog{
		byID:    make(map[string]*Persona, len(personas)),
		ordered: make([]*Persona, 0, len(personas)),
	}
	for i := range personas {
		p := &personas[i]
		if p.ID == "" {
			return nil, fmt.Errorf("persona %q: empty id", p.Name)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate persona id %q", p.ID)
		}
		c.byID[p.ID] = p
		c.ordered = append(c.ordered, p)
	}
	return c, nil
}

// Lookup returns the persona for id, or ErrNotFound.
func (c *Catalog) Lookup(id string) (*Persona, error) {
	p, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return p, nil
}

// All returns the personas in registration order.
func (c *Catalog) All() []*Persona {
	out := make([]*Persona, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Len returns the number of registered personas.
func (c *Catalog) Len() int {
	return len(c.ordered)
}

// StepFormat is the literal output shape the prompt mandates. The engine's
// incremental parser assumes the model emits exactly one such object per
// round-trip.
const StepFormat = `{ "step": "START | THINK | EVALUATE | OUTPUT", "content": "string" }`

// RenderPrompt renders a persona into its system prompt. The output is
// deterministic: same persona, same string.
func RenderPrompt(p *Persona) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are %s, also known as %q.\n\n", p.Name, p.Title)
	b.WriteString(p.Description)
	b.WriteString("\n\n")

	b.WriteString("**Your Characteristics:**\n")
	for _, ch := range p.Characteristics {
		fmt.Fprintf(&b, "- %s\n", ch)
	}

	b.WriteString("\n**Your Response Style:**\n")
	fmt.Fprintf(&b, "- %s\n", p.ResponseStyle)
	fmt.Fprintf(&b, "- Use %s\n", p.LanguageStyle)
	fmt.Fprintf(&b, "- Maintain a %s tone\n", p.Tone)

	b.WriteString("\n**Common Phrases You Use:**\n")
	for _, phrase := range p.CommonPhrases {
		fmt.Fprintf(&b, "- %q\n", phrase)
	}

	b.WriteString("\n**Your Expertise:**\n")
	for _, exp := range p.Expertise {
		fmt.Fprintf(&b, "- %s\n", exp)
	}

	b.WriteString(`
**IMPORTANT: Use Chain of Thought (CoT) Reasoning**

You work on START, THINK, EVALUATE and OUTPUT format. For a given user query:

1. **START**: Analyze what the user is asking
2. **THINK**: Break down the problem into logical steps (do multiple thinking steps)
3. **EVALUATE**: Check if your thinking is correct (this step is automatic)
4. **OUTPUT**: Provide the final, polished answer in your unique style

**Rules:**
- Strictly follow the output JSON format
- Always follow the sequence: START → THINK → EVALUATE → OUTPUT
- Perform multiple THINK steps before OUTPUT
- After each THINK, automatically add EVALUATE step
- Only show the final OUTPUT to the user
`)
	fmt.Fprintf(&b, "- Use your unique %s personality and style in the final OUTPUT\n", p.Name)

	b.WriteString("\n**Output JSON Format:**\n")
	b.WriteString(StepFormat)
	b.WriteString("\n")

	b.WriteString(`
**IMPORTANT FORMATTING INSTRUCTIONS FOR OUTPUT:**
When providing the final OUTPUT, always format your response properly:

1. **Use Markdown Headers**: Use ### for section headers
2. **Code Blocks**: Always wrap code examples in proper markdown code blocks with language specification
3. **Inline Code**: Use backticks for inline code references
4. **Bold Text**: Use **bold** for important concepts
5. **Lists**: Use proper markdown lists with - or 1. 2. 3.
6. **Paragraphs**: Separate sections with proper spacing

**Important Guidelines:**
1. Always respond in your unique style and tone
2. Use your common phrases naturally in responses
3. Provide practical, actionable advice
4. Include code examples when relevant
5. Stay true to your personality and teaching approach
`)
	fmt.Fprintf(&b, "6. Use appropriate emojis: %s\n", strings.Join(p.Emojis, ", "))
	b.WriteString(`7. Focus on programming and development topics
8. Be helpful, encouraging, and educational
9. **ALWAYS use structured CoT reasoning** - but only show OUTPUT to user
10. **ALWAYS format OUTPUT with proper markdown and code blocks**
11. **IMPORTANT**: Make sure your OUTPUT is complete and properly formatted
12. **NEVER leave responses incomplete or with trailing backslashes**
`)

	fmt.Fprintf(&b, "\nRemember: You are %s, not an AI assistant. Use CoT internally to think through problems, but only show the final, polished answer to the user in your unique style. Make sure your OUTPUT is complete, well-formatted, and provides a comprehensive answer to the user's question.", p.Name)

	return b.String()
}
