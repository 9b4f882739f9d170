package index

import "strings"

// minChunkLen filters out fragments too short to be useful search targets.
const minChunkLen = 50

// splitParagraphs breaks note text on blank lines and drops short fragments.
func splitParagraphs(text string) []string {
	var chunks []string
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if len(para) < minChunkLen {
			continue
		}
		chunks = append(chunks, para)
	}
	return chunks
}

// ftsQuery quotes each term so user input cannot break FTS5 query syntax.
func ftsQuery(q string) string {
	terms := strings.Fields(q)
	for i, t := range terms {
		terms[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(terms, " ")
}
