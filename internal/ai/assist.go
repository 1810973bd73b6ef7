package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Feature-area session names. One chat per name, reused across calls.
const (
	featureDesign      = "design-assistant"
	featureCSS         = "css-generator"
	featureContent     = "content-improver"
	featureGeneration  = "content_generation"
	featureImprovement = "content_improvement"
	featureCSSGen      = "css_generation"
	featureLayout      = "layout_suggestions"
	featureStyles      = "style_optimization"
	featureHealth      = "health_check"
)

const (
	systemDesign = "You are an expert UI/UX designer and CSS specialist. Help users create beautiful, modern websites with professional design patterns. Provide specific, actionable suggestions with modern CSS techniques including gradients, shadows, animations, and responsive design."

	systemCSS = "You are a CSS expert. Generate clean, modern CSS code based on user requirements. Use modern techniques like flexbox, grid, custom properties, and animations. Always provide complete, working CSS that follows best practices."

	systemContent = "You are a content strategist and copywriter. Help improve website content to be more engaging, professional, and conversion-focused. Provide suggestions that maintain the original meaning while enhancing clarity and impact."

	systemEditor = "You are an advanced AI assistant specialized in web development and design. You help users create, edit, and improve websites with intelligent suggestions. You can generate CSS, HTML, content, and provide layout recommendations. Always provide practical, actionable suggestions."
)

// contentPreviewLimit bounds free text interpolated into prompts.
const contentPreviewLimit = 200

// Envelope is the loosely-typed AI response payload. Provider failures
// are reported inside it with success=false instead of an HTTP error.
type Envelope map[string]any

// Assist wraps the chat client with fixed prompt templates per feature
// area. Responses are returned raw or lightly post-processed; a failed
// JSON parse degrades to a fallback structure rather than failing the
// call. Single attempt, no retries.
type Assist struct {
	registry *sessionRegistry
	factory  ChatFactory
	logger   *zap.SugaredLogger
}

func NewAssist(factory ChatFactory, logger *zap.SugaredLogger) *Assist {
	return &Assist{
		registry: newSessionRegistry(factory),
		factory:  factory,
		logger:   logger,
	}
}

func (a *Assist) IsConfigured() bool {
	return a.factory.IsConfigured()
}

func (a *Assist) SessionCount() int {
	return a.registry.count()
}

func (a *Assist) send(ctx context.Context, feature, systemMessage, prompt string) (string, error) {
	s, err := a.registry.get(feature, systemMessage)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chat.Send(ctx, prompt)
}

func failure(err error) Envelope {
	return Envelope{"success": false, "error": err.Error()}
}

// ElementInfo describes the page element a design request refers to.
type ElementInfo struct {
	TagName     string         `json:"tagName"`
	Styles      map[string]any `json:"styles"`
	TextContent string         `json:"textContent"`
}

// DesignSuggestions asks for five improvement suggestions for one
// element and parses the expected JSON array, wrapping the raw text in a
// single suggestion when the model answered in prose.
func (a *Assist) DesignSuggestions(ctx context.Context, info ElementInfo) Envelope {
	tag := strings.ToLower(info.TagName)
	if tag == "" {
		tag = "div"
	}
	styles, _ := json.MarshalIndent(info.Styles, "", "  ")
	preview := info.TextContent
	if len(preview) > contentPreviewLimit {
		preview = preview[:contentPreviewLimit]
	}

	prompt := fmt.Sprintf(`I have a %s element with the following properties:
- Current styles: %s
- Content preview: "%s"

Please provide 5 modern design improvement suggestions. For each suggestion, provide:
1. A descriptive name
2. The complete CSS that would achieve this design
3. A brief explanation of why this improves the design

Focus on modern trends like:
- Glassmorphism and neumorphism effects
- Modern color gradients
- Subtle shadows and animations
- Improved typography and spacing
- Better responsiveness

Return your response as a JSON array with this structure:
[
    {
        "name": "suggestion name",
        "css": "complete css code",
        "description": "why this improves the design"
    }
]`, tag, styles, preview)

	response, err := a.send(ctx, featureDesign, systemDesign, prompt)
	if err != nil {
		a.logger.Warnf("design suggestions: %v", err)
		return failure(err)
	}

	var suggestions []map[string]any
	if err := json.Unmarshal([]byte(response), &suggestions); err == nil {
		return Envelope{"success": true, "suggestions": suggestions}
	}
	return Envelope{"success": true, "suggestions": []map[string]any{{
		"name":        "AI Design Suggestion",
		"css":         "",
		"description": response,
	}}}
}

// GenerateCSS turns a textual description into CSS, stripping markdown
// fences the model tends to wrap code in.
func (a *Assist) GenerateCSS(ctx context.Context, description, elementType string) Envelope {
	if elementType == "" {
		elementType = "div"
	}
	prompt := fmt.Sprintf(`Generate modern CSS for a %s element based on this description:
"%s"

Provide clean, production-ready CSS that includes:
- Modern properties and techniques
- Proper fallbacks for older browsers
- Responsive design considerations
- Performance optimizations

Return only the CSS code without any explanations or markdown formatting.`, elementType, description)

	response, err := a.send(ctx, featureCSS, systemCSS, prompt)
	if err != nil {
		a.logger.Warnf("css generation: %v", err)
		return failure(err)
	}
	return Envelope{"success": true, "css": stripCodeFence(response)}
}

// ImproveContent rewrites text for engagement while keeping its intent.
func (a *Assist) ImproveContent(ctx context.Context, content, contentType string) Envelope {
	if contentType == "" {
		contentType = "general"
	}
	prompt := fmt.Sprintf(`Improve this %s content to make it more engaging and professional:

Original: "%s"

Please provide an improved version that:
- Maintains the original meaning and intent
- Uses more engaging and professional language
- Improves readability and flow
- Adds impact without being overly promotional
- Is appropriate for a modern professional website

Return only the improved text without explanations.`, contentType, content)

	response, err := a.send(ctx, featureContent, systemContent, prompt)
	if err != nil {
		a.logger.Warnf("content improvement: %v", err)
		return failure(err)
	}
	return Envelope{"success": true, "improved_content": strings.TrimSpace(response)}
}

// ColorPalette generates a five-color palette as structured JSON. Unlike
// the other operations this one has no prose fallback: an unparseable
// answer is a failure.
func (a *Assist) ColorPalette(ctx context.Context, theme string) Envelope {
	if theme == "" {
		theme = "modern"
	}
	prompt := fmt.Sprintf(`Generate a modern %s color palette for a professional website.

Provide:
- 5 main colors (primary, secondary, accent, background, text)
- Each color in both HEX and RGB format
- Brief description of when to use each color
- CSS custom properties format for easy implementation

Return as JSON with this structure:
{
    "palette": {
        "primary": {"hex": "#000000", "rgb": "0, 0, 0", "use": "description"},
        "secondary": {"hex": "#000000", "rgb": "0, 0, 0", "use": "description"},
        "accent": {"hex": "#000000", "rgb": "0, 0, 0", "use": "description"},
        "background": {"hex": "#000000", "rgb": "0, 0, 0", "use": "description"},
        "text": {"hex": "#000000", "rgb": "0, 0, 0", "use": "description"}
    },
    "css_variables": "css custom properties code"
}`, theme)

	response, err := a.send(ctx, featureDesign, systemDesign, prompt)
	if err != nil {
		a.logger.Warnf("color palette: %v", err)
		return failure(err)
	}

	var palette map[string]any
	if err := json.Unmarshal([]byte(stripCodeFence(response)), &palette); err != nil {
		return Envelope{"success": false, "error": "failed to parse color palette response"}
	}
	env := Envelope{"success": true}
	for k, v := range palette {
		env[k] = v
	}
	return env
}

// AnalyzeElement reviews an HTML fragment for accessibility, SEO,
// performance, design and UX improvements.
func (a *Assist) AnalyzeElement(ctx context.Context, elementHTML, pageContext string) Envelope {
	prompt := fmt.Sprintf(`Analyze this HTML element and suggest improvements:

HTML: %s
Context: %s

Provide suggestions for:
1. Accessibility improvements
2. SEO enhancements
3. Performance optimizations
4. Visual design improvements
5. User experience enhancements

Return as JSON array with structure:
[
    {
        "category": "accessibility|seo|performance|design|ux",
        "suggestion": "specific suggestion",
        "implementation": "how to implement this",
        "impact": "why this matters"
    }
]`, elementHTML, pageContext)

	response, err := a.send(ctx, featureDesign, systemDesign, prompt)
	if err != nil {
		a.logger.Warnf("element analysis: %v", err)
		return failure(err)
	}

	var suggestions []map[string]any
	if err := json.Unmarshal([]byte(response), &suggestions); err == nil {
		return Envelope{"success": true, "suggestions": suggestions}
	}
	return Envelope{"success": true, "suggestions": []map[string]any{{
		"category":       "general",
		"suggestion":     response,
		"implementation": "",
		"impact":         "",
	}}}
}

// GenerateContent produces text, image concepts or a layout
// recommendation depending on the requested type.
func (a *Assist) GenerateContent(ctx context.Context, request, requestContext, contentType string) Envelope {
	if requestContext == "" {
		requestContext = "Website content"
	}
	var prompt string
	switch contentType {
	case "image_suggestion":
		prompt = fmt.Sprintf(`Suggest 3 professional image concepts for: %s
Context: %s

Provide specific, actionable image suggestions that would work well for web design.`, request, requestContext)
	case "layout_recommendation":
		prompt = fmt.Sprintf(`Recommend a modern, professional layout structure for: %s
Context: %s

Provide specific layout suggestions with modern design principles.`, request, requestContext)
	case "text", "":
		prompt = fmt.Sprintf(`Generate engaging, professional content for: %s
Context: %s

Provide clean, web-ready content without markdown formatting.`, request, requestContext)
	default:
		prompt = request
	}

	response, err := a.send(ctx, featureGeneration, systemEditor, prompt)
	if err != nil {
		a.logger.Warnf("content generation: %v", err)
		return failure(err)
	}
	return Envelope{"success": true, "content": response, "confidence": 0.9}
}

// ImproveEditorContent is the editor-surface counterpart of
// ImproveContent, held against its own session.
func (a *Assist) ImproveEditorContent(ctx context.Context, content string) Envelope {
	prompt := fmt.Sprintf(`Improve this content: %s

Make it more engaging, professional, and web-optimized.
Maintain the original intent but enhance clarity, flow, and impact.
Provide the improved version without explanation unless specifically asked.`, content)

	response, err := a.send(ctx, featureImprovement, systemEditor, prompt)
	if err != nil {
		a.logger.Warnf("editor content improvement: %v", err)
		return failure(err)
	}
	return Envelope{"success": true, "improved_content": response}
}

// GenerateEditorCSS generates CSS for the editor surface, optionally
// seeded with the element's current styles.
func (a *Assist) GenerateEditorCSS(ctx context.Context, description, elementType string, currentStyles map[string]any) Envelope {
	var currentStylesText string
	if len(currentStyles) > 0 {
		raw, _ := json.MarshalIndent(currentStyles, "", "  ")
		currentStylesText = "Current styles: " + string(raw)
	}
	prompt := fmt.Sprintf(`Generate modern, responsive CSS for: %s
Element type: %s
%s

Provide clean, modern CSS using best practices. Include hover effects and transitions where appropriate.
Return only the CSS code without explanation.`, description, elementType, currentStylesText)

	response, err := a.send(ctx, featureCSSGen, systemEditor, prompt)
	if err != nil {
		a.logger.Warnf("editor css generation: %v", err)
		return failure(err)
	}
	return Envelope{"success": true, "css_code": stripCodeFence(response)}
}

// SuggestLayout analyzes content and proposes an overall layout.
func (a *Assist) SuggestLayout(ctx context.Context, content, layoutContext string) Envelope {
	if layoutContext == "" {
		layoutContext = "Modern website"
	}
	prompt := fmt.Sprintf(`Analyze this content and suggest an optimal layout: %s
Context: %s

Suggest:
1. Overall layout structure
2. Element positioning
3. Visual hierarchy
4. Responsive considerations
5. User experience improvements

Provide practical, implementable suggestions.`, content, layoutContext)

	response, err := a.send(ctx, featureLayout, systemEditor, prompt)
	if err != nil {
		a.logger.Warnf("layout suggestion: %v", err)
		return failure(err)
	}
	return Envelope{"success": true, "layout_suggestions": response}
}

// OptimizeStyles asks the model to enhance a style map. Callers fall
// back to the submitted styles when this fails.
func (a *Assist) OptimizeStyles(ctx context.Context, styles map[string]any) (map[string]any, error) {
	raw, _ := json.MarshalIndent(styles, "", "  ")
	prompt := fmt.Sprintf(`Optimize these CSS styles for better visual design:
%s

Improve the styles while maintaining the original intent.
Add complementary properties for better visual appeal.
Return optimized CSS properties as JSON.`, raw)

	response, err := a.send(ctx, featureStyles, systemEditor, prompt)
	if err != nil {
		return nil, err
	}
	var optimized map[string]any
	if err := json.Unmarshal([]byte(stripCodeFence(response)), &optimized); err != nil {
		return nil, err
	}
	return optimized, nil
}

// DesignAssist answers a free-form design prompt for the authenticated
// editor, focused on immediately applicable advice.
func (a *Assist) DesignAssist(ctx context.Context, request string) Envelope {
	prompt := fmt.Sprintf(`You are a professional web design AI assistant. Provide practical, actionable design suggestions that can be implemented immediately. Focus on:
1. Specific CSS properties and values
2. Modern design principles (2024-2025 trends)
3. User experience improvements
4. Accessibility considerations

Respond with concise, implementable advice.

User request: %s`, request)

	response, err := a.send(ctx, featureDesign, systemDesign, prompt)
	if err != nil {
		a.logger.Warnf("design assist: %v", err)
		return failure(err)
	}
	return Envelope{"success": true, "response": response, "suggestions": []string{}}
}

// Probe sends a trivial round-trip to verify the provider is reachable.
func (a *Assist) Probe(ctx context.Context) bool {
	if !a.IsConfigured() {
		return false
	}
	_, err := a.send(ctx, featureHealth, systemEditor, "Hello, are you working?")
	return err == nil
}

// stripCodeFence removes a surrounding markdown code fence, with or
// without a language tag.
func stripCodeFence(s string) string {
	out := strings.TrimSpace(s)
	if strings.HasPrefix(out, "```") {
		if idx := strings.Index(out, "\n"); idx >= 0 {
			out = out[idx+1:]
		} else {
			out = strings.TrimPrefix(out, "```")
		}
	}
	out = strings.TrimSuffix(strings.TrimSpace(out), "```")
	return strings.TrimSpace(out)
}
