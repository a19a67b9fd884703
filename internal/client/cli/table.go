package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

func newTable(out io.Writer, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func row(tw *tabwriter.Writer, cells ...any) {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(tw, strings.Join(parts, "\t"))
}

// page clamps a 1-based page number to [1, pages] and returns the slice
// bounds for it. An empty list has one empty page.
func page(n, requested, size int) (start, end, current, pages int) {
	if size <= 0 {
		size = n
		if size == 0 {
			size = 1
		}
	}
	pages = (n + size - 1) / size
	if pages == 0 {
		pages = 1
	}
	current = min(max(requested, 1), pages)
	start = (current - 1) * size
	end = min(start+size, n)
	return start, end, current, pages
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// matches reports a case-insensitive substring match against any field.
func matches(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
