package agent

import (
	"os"
	"path/filepath"
	"strings"
)

const defaultPlannerPrompt = `You are a planning assistant for data-backed decision making.
Your job is to decompose user requests into clear, actionable steps.

Available tools for each step:
1. search_products - Find products by category, price, rating, or keywords
2. analyze_reviews - Analyze customer reviews for complaints, praise, or themes
3. calculate_statistics - Calculate statistics, comparisons, and rankings

Create a plan with 2-5 steps. Each step should be a clear action that can be executed with one of the tools.

Do NOT assume a specific category (like "Electronics") unless the user explicitly mentions it.

Respond with a JSON array of steps, like:
["Step 1: Search for products in Electronics category", "Step 2: Analyze reviews to find complaints", "Step 3: Calculate category statistics for comparison"]`

const defaultSelectorPrompt = `You are a tool selection assistant. Based on the current task, select the appropriate tool and its parameters.

Dataset columns available: product_id, product_name, category, sub_category, discounted_price, actual_price, discount_percentage, rating, rating_count, about_product, review_title, review_content.

Available tools and their parameters:

%s

Important rules:
- If the user goal or current task mentions categories, include them in the category (or categories) parameter. Comma-join multiple category hints (e.g. "Electronics, Clothing"). Do not leave category empty when categories are implied.
- NEVER paste the user's entire question into a free-text filter field such as category or keyword.
- If the goal asks for an explicit "top N", set the count parameter (limit or top_n) to N.

Respond with ONLY this JSON object (no code fences, no extra text):
{"tool": "tool_name", "parameters": { ... }}`

const defaultSynthesizerPrompt = `You are a business analyst synthesizing research findings.

Create a comprehensive, user-friendly response that:
1. Directly addresses the user's original goal
2. Presents key findings clearly with data support
3. Provides actionable recommendations
4. Uses clear formatting with headers and bullet points
5. Highlights the most important insights

Be concise but thorough. Use data from the tool results to support your recommendations.`

// PromptManager serves the system prompts for each oracle call. Built-in
// defaults can be overridden by dropping planner.md, selector.md or
// synthesizer.md into the prompt directory.
type PromptManager struct {
	Directory string
}

func NewPromptManager(dir string) *PromptManager {
	return &PromptManager{Directory: dir}
}

func (pm *PromptManager) load(name, fallback string) string {
	if pm.Directory == "" {
		return fallback
	}
	data, err := os.ReadFile(filepath.Join(pm.Directory, name+".md"))
	if err != nil {
		return fallback
	}
	if text := strings.TrimSpace(string(data)); text != "" {
		return text
	}
	return fallback
}

func (pm *PromptManager) PlannerPrompt() string {
	return pm.load("planner", defaultPlannerPrompt)
}

// SelectorPrompt returns the selector system prompt with the tool catalog
// spliced in.
func (pm *PromptManager) SelectorPrompt(catalog string) string {
	template := pm.load("selector", defaultSelectorPrompt)
	if strings.Contains(template, "%s") {
		return strings.Replace(template, "%s", catalog, 1)
	}
	return template + "\n\n" + catalog
}

func (pm *PromptManager) SynthesizerPrompt() string {
	return pm.load("synthesizer", defaultSynthesizerPrompt)
}
