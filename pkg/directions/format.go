package directions

import (
	"fmt"
	"strings"
)

const noRoutes = "<b>No routes were returned</b>"

// Format renders the commute as a <pre> block with one line per route.
func Format(r *Report) string {
	var b strings.Builder

	b.WriteString("<pre>")
	b.WriteString("<b>Commute:</b>\n")

	if len(r.Routes) == 0 {
		b.WriteString(noRoutes)
		b.WriteString("</pre>")
		return b.String()
	}

	for _, route := range r.Routes {
		fmt.Fprintf(&b, "via %s: %s, %s\n", route.Summary, route.Duration, route.Distance)
	}

	b.WriteString("</pre>")
	return b.String()
}
