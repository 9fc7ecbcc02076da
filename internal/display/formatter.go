package display

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Ikanga93/ritt-ai-assistant/internal/catalog"
	"github.com/Ikanga93/ritt-ai-assistant/internal/fuzzy"
	"github.com/Ikanga93/ritt-ai-assistant/internal/order"
)

// Styles for terminal output.
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	specialTag   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5")) // magenta
	priceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))            // green
	suggestStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))            // yellow
	dimStyle     = lipgloss.NewStyle().Faint(true)
	cyanStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// OrderJSON is the JSON output shape for a verified order.
type OrderJSON struct {
	Restaurant string               `json:"restaurant,omitempty"`
	Lines      []order.VerifiedLine `json:"lines"`
	Subtotal   float64              `json:"subtotal"`
	Verified   int                  `json:"verified"`
	Special    int                  `json:"special"`
	Unverified int                  `json:"unverified"`
}

// MatchJSON is the JSON output shape for one ranked candidate.
type MatchJSON struct {
	Text       string  `json:"text"`
	Similarity float64 `json:"similarity"`
	Index      int     `json:"index"`
	Step       string  `json:"step,omitempty"`
}

// MatchesJSON wraps a ranked candidate list with the query that produced it.
type MatchesJSON struct {
	Query      string      `json:"query"`
	Normalized string      `json:"normalized"`
	Threshold  float64     `json:"threshold"`
	Matches    []MatchJSON `json:"matches"`
}

// NormalizedJSON pairs raw text with its normalized form.
type NormalizedJSON struct {
	Input      string `json:"input"`
	Normalized string `json:"normalized"`
}

// MenuItemJSON is the JSON output shape for a menu entry.
type MenuItemJSON struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    *float64 `json:"price"`
	Category string   `json:"category"`
}

// RestaurantJSON is the JSON output shape for a restaurant.
type RestaurantJSON struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
	Items   int      `json:"items"`
}

// ResolutionJSON is the JSON output shape for a resolver hit.
type ResolutionJSON struct {
	Query string `json:"query"`
	Kind  string `json:"kind"`
	catalog.Resolution
}

// Tally counts lines by status.
func Tally(lines []order.VerifiedLine) (verified, special, unverified int) {
	for _, l := range lines {
		switch l.Status() {
		case order.StatusVerified:
			verified++
		case order.StatusSpecial:
			special++
		default:
			unverified++
		}
	}
	return verified, special, unverified
}

// PrintOrder renders verified lines and the subtotal of the verified ones.
func PrintOrder(w io.Writer, lines []order.VerifiedLine, restaurant string) {
	verified, special, unverified := Tally(lines)
	title := "Order"
	if restaurant != "" {
		title = "Order for " + restaurant
	}

	fmt.Fprintf(w, "\n%s — %s\n\n",
		headerStyle.Render(title),
		cyanStyle.Render(fmt.Sprintf("%d verified, %d special, %d unverified", verified, special, unverified)),
	)
	for _, l := range lines {
		PrintLine(w, l)
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "  %s %s\n\n", titleStyle.Render("Subtotal:"), priceStyle.Render(FormatPrice(order.Subtotal(lines))))
}

// PrintOrderJSON renders verified lines as JSON.
func PrintOrderJSON(w io.Writer, lines []order.VerifiedLine, restaurant string) error {
	verified, special, unverified := Tally(lines)
	if lines == nil {
		lines = []order.VerifiedLine{}
	}
	return json.NewEncoder(w).Encode(OrderJSON{
		Restaurant: restaurant,
		Lines:      lines,
		Subtotal:   order.Subtotal(lines),
		Verified:   verified,
		Special:    special,
		Unverified: unverified,
	})
}

// PrintLine renders one verified line.
func PrintLine(w io.Writer, l order.VerifiedLine) {
	switch l.Status() {
	case order.StatusVerified:
		fmt.Fprintf(w, "  %dx %s  %s\n", l.Quantity, titleStyle.Render(l.Name), priceStyle.Render(FormatPrice(l.Price)))
		meta := []string{fmt.Sprintf("confidence %.2f", l.Confidence)}
		if l.ID != "" {
			meta = append(meta, "id "+l.ID)
		}
		fmt.Fprintf(w, "    %s\n", dimStyle.Render(strings.Join(meta, " | ")))
		if l.SpecialInstructions != "" {
			fmt.Fprintf(w, "    %s\n", suggestStyle.Render(wordWrap(l.SpecialInstructions, 72, "    ")))
		}
	case order.StatusSpecial:
		fmt.Fprintf(w, "  %s %s\n", specialTag.Render("NOTE"), titleStyle.Render(l.SpecialInstructions))
	default:
		fmt.Fprintf(w, "  %dx %s  %s\n", l.Quantity, titleStyle.Render(l.Name), errorStyle.Render("not on the menu"))
		if l.Suggestion != "" {
			fmt.Fprintf(w, "    %s\n", suggestStyle.Render(fmt.Sprintf("did you mean %q?", l.Suggestion)))
		}
	}
}

// PrintMatches renders ranked candidates for a query.
func PrintMatches(w io.Writer, query string, matches []fuzzy.MatchResult, steps []fuzzy.Step) {
	fmt.Fprintf(w, "\n%s %s\n\n",
		titleStyle.Render(fmt.Sprintf("Matches for %q:", query)),
		dimStyle.Render(fmt.Sprintf("(normalized: %q)", fuzzy.Normalize(query))),
	)
	if len(matches) == 0 {
		fmt.Fprintf(w, "  %s\n\n", dimStyle.Render("no candidate cleared the threshold"))
		return
	}
	for i, m := range matches {
		line := fmt.Sprintf("  %s  %s", cyanStyle.Render(fmt.Sprintf("%.3f", m.Similarity)), m.MatchedText)
		if i < len(steps) && steps[i] != "" {
			line += "  " + dimStyle.Render(string(steps[i]))
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
}

// PrintMatchesJSON renders ranked candidates as JSON.
func PrintMatchesJSON(w io.Writer, query string, threshold float64, matches []fuzzy.MatchResult, steps []fuzzy.Step) error {
	out := MatchesJSON{
		Query:      query,
		Normalized: fuzzy.Normalize(query),
		Threshold:  threshold,
		Matches:    make([]MatchJSON, 0, len(matches)),
	}
	for i, m := range matches {
		mj := MatchJSON{Text: m.MatchedText, Similarity: m.Similarity, Index: m.Index}
		if i < len(steps) {
			mj.Step = string(steps[i])
		}
		out.Matches = append(out.Matches, mj)
	}
	return json.NewEncoder(w).Encode(out)
}

// PrintNormalized renders each input next to its normalized form.
func PrintNormalized(w io.Writer, inputs []string) {
	for _, in := range inputs {
		fmt.Fprintf(w, "%s %s %s\n", dimStyle.Render(in), cyanStyle.Render("→"), fuzzy.Normalize(in))
	}
}

// PrintNormalizedJSON renders normalized inputs as JSON.
func PrintNormalizedJSON(w io.Writer, inputs []string) error {
	out := make([]NormalizedJSON, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, NormalizedJSON{Input: in, Normalized: fuzzy.Normalize(in)})
	}
	return json.NewEncoder(w).Encode(out)
}

// PrintMenu renders menu entries grouped by category in the order given.
func PrintMenu(w io.Writer, items []catalog.Entry, restaurant string) {
	fmt.Fprintf(w, "\n%s — %s\n",
		headerStyle.Render(restaurant),
		cyanStyle.Render(fmt.Sprintf("%d items", len(items))),
	)
	current := "\x00"
	for _, e := range items {
		if e.Category != current {
			current = e.Category
			heading := current
			if heading == "" {
				heading = "Other"
			}
			fmt.Fprintf(w, "\n  %s\n", titleStyle.Render(heading))
		}
		price := dimStyle.Render("no price")
		if e.Price != nil {
			price = priceStyle.Render(FormatPrice(*e.Price))
		}
		id := ""
		if e.ID != "" {
			id = "  " + dimStyle.Render(e.ID)
		}
		fmt.Fprintf(w, "    %s  %s%s\n", e.Name, price, id)
	}
	fmt.Fprintln(w)
}

// PrintMenuJSON renders menu entries as JSON.
func PrintMenuJSON(w io.Writer, items []catalog.Entry) error {
	out := make([]MenuItemJSON, 0, len(items))
	for _, e := range items {
		out = append(out, MenuItemJSON{ID: e.ID, Name: e.Name, Price: e.Price, Category: e.Category})
	}
	return json.NewEncoder(w).Encode(out)
}

// PrintRestaurants renders the restaurants in a catalog.
func PrintRestaurants(w io.Writer, restaurants []catalog.Restaurant) {
	fmt.Fprintf(w, "\n%s\n\n", titleStyle.Render(fmt.Sprintf("%d restaurants:", len(restaurants))))
	for _, r := range restaurants {
		fmt.Fprintf(w, "  %s  %s\n", cyanStyle.Render(r.ID), titleStyle.Render(r.Name))
		meta := []string{fmt.Sprintf("%d items", len(r.Items()))}
		if len(r.Aliases) > 0 {
			meta = append(meta, "also: "+strings.Join(r.Aliases, ", "))
		}
		fmt.Fprintf(w, "        %s\n\n", dimStyle.Render(strings.Join(meta, " | ")))
	}
}

// PrintRestaurantsJSON renders restaurants as JSON.
func PrintRestaurantsJSON(w io.Writer, restaurants []catalog.Restaurant) error {
	out := make([]RestaurantJSON, 0, len(restaurants))
	for _, r := range restaurants {
		aliases := r.Aliases
		if aliases == nil {
			aliases = []string{}
		}
		out = append(out, RestaurantJSON{ID: r.ID, Name: r.Name, Aliases: aliases, Items: len(r.Items())})
	}
	return json.NewEncoder(w).Encode(out)
}

// PrintCategories renders a list of categories and their counts.
func PrintCategories(w io.Writer, cats map[string]int, restaurant string) {
	type catCount struct {
		Name  string
		Count int
	}
	sorted := make([]catCount, 0, len(cats))
	for k, v := range cats {
		sorted = append(sorted, catCount{k, v})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].Name < sorted[j].Name
	})

	fmt.Fprintf(w, "\n%s\n\n",
		titleStyle.Render(fmt.Sprintf("Menu sections at %s:", restaurant)),
	)
	for _, c := range sorted {
		fmt.Fprintf(w, "  %s: %d items\n", cyanStyle.Render(c.Name), c.Count)
	}
	fmt.Fprintln(w)
}

// PrintCategoriesJSON renders categories as JSON.
func PrintCategoriesJSON(w io.Writer, cats map[string]int) error {
	return json.NewEncoder(w).Encode(cats)
}

// PrintResolution renders how a query was resolved.
func PrintResolution(w io.Writer, query string, kind catalog.Kind, res catalog.Resolution) {
	label := res.Name
	if res.ID != "" {
		label = fmt.Sprintf("%s (%s)", res.Name, res.ID)
	}
	fmt.Fprintf(w, "%s %s %s\n",
		dimStyle.Render(fmt.Sprintf("%s %q", kind, query)),
		cyanStyle.Render("→"),
		titleStyle.Render(label),
	)
	fmt.Fprintf(w, "  %s\n", dimStyle.Render(fmt.Sprintf("via %s, score %.3f", res.Method, res.Score)))
}

// PrintResolutionJSON renders a resolver hit as JSON.
func PrintResolutionJSON(w io.Writer, query string, kind catalog.Kind, res catalog.Resolution) error {
	return json.NewEncoder(w).Encode(ResolutionJSON{Query: query, Kind: string(kind), Resolution: res})
}

// PrintRestaurantContext prints a dim line showing which restaurant was selected.
func PrintRestaurantContext(w io.Writer, r catalog.Restaurant, via catalog.Method) {
	fmt.Fprintf(w, "%s\n\n",
		dimStyle.Render(fmt.Sprintf("Using restaurant: %s — %s (matched by %s)", r.ID, r.Name, via)),
	)
}

// PrintError prints a styled error message.
func PrintError(w io.Writer, msg string) {
	fmt.Fprintln(w, errorStyle.Render(msg))
}

// PrintWarning prints a styled warning message.
func PrintWarning(w io.Writer, msg string) {
	fmt.Fprintln(w, warningStyle.Render(msg))
}

// FormatPrice renders a price in dollars.
func FormatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func wordWrap(text string, width int, indent string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n"+indent)
}
