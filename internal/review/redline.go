// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package review

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/pdiddy/redline-engine/internal/playbook"
	"github.com/pdiddy/redline-engine/pkg/types"
)

// acceptPromptTmpl asks the model whether a mapped document clause meets the
// playbook standard for its type. The reply ends with YES or NO on its own
// line, preceded by a short explanation.
var acceptPromptTmpl = template.Must(template.New("accept").Parse(`You are a legal contract reviewer.

Below is an NDA clause, and the playbook guidance for its type.

- Begin by carefully reviewing the "Clause Definition" and "Provision Definition" to understand the intended purpose and legal context.
- Apply the "Review Instructions" as a checklist; these are the essential requirements, best practices, and explicit red flags.
- Refer to the "Ideal" and "Acceptable" examples: Acceptable is the minimum standard; Ideal is best practice.
- Pay special attention to any "Red Flags" listed.

CRITICAL INSTRUCTIONS:
- A clause is PROBLEMATIC if it omits any essential requirement listed in the Review Instructions, or contains any red flag language (such as permitting disclosure without prior notice, failing to require efforts to limit disclosure, waiving liability for breach of confidentiality, or precluding claims for damages/injunctive relief).
- A clause is ACCEPTABLE if, in your expert judgment, it offers at least the same level of protection as the Acceptable Example, does not introduce any clear new risks or red flag language, and substantially addresses the Review Instructions' core requirements, even if some minor details are omitted, sequence differs, or the language is not identical.
- Do not accept a clause merely because it resembles the Acceptable Example in some respects; all core requirements and red flags must be checked.
- If the clause omits only best-practice (Ideal) points but meets all Acceptable requirements and avoids all red flags, answer YES.
- Only answer NO if the clause is clearly weaker, more permissive, or introduces a real risk not present in the Acceptable Example.

For transparency, briefly explain which checklist items were met or missed, and call out any red flags found.

--- Playbook Guidance ---

Clause Definition:
{{.ClauseDefinition}}

Provision Definition:
{{.ProvisionDefinition}}

Review Instructions:
{{.ReviewInstruction}}

Ideal Example:
{{.Ideal}}

Acceptable Example:
{{.Acceptable}}

Red Flags:
{{.RedFlag}}

--- NDA Clause to Review ---

{{.ClauseContent}}

Explain in 1-3 sentences, then answer YES or NO on a new line. Do not write anything else after YES or NO.
`))

// formatPromptTmpl harmonizes a playbook replacement clause with the
// numbering and structure of the original.
var formatPromptTmpl = template.Must(template.New("format").Parse(`Original NDA clause:
{{.ClauseContent}}

Replacement clause from the playbook:
{{.Fix}}

When suggesting the replacement clause, format its numbering, lettering, and structure to match the original clause as closely as possible. Do not change the legal substance; only the numbering and formatting. Output only the rewritten clause.
`))

// Verdict is the acceptability judgment for one mapped clause.
type Verdict struct {
	Acceptable  bool
	Explanation string
}

// judgeClause runs the acceptability prompt for one playbook/clause pair.
// The last non-empty line of the reply carries the YES/NO; everything before
// it is the explanation.
func judgeClause(ctx context.Context, backend Backend, entry *types.PlaybookEntry, content string, maxRetries int) (Verdict, error) {
	prompt, err := renderTemplate(acceptPromptTmpl, map[string]string{
		"ClauseDefinition":    entry.ClauseDefinition,
		"ProvisionDefinition": entry.ProvisionDefinition,
		"ReviewInstruction":   entry.ReviewInstruction,
		"Ideal":               entry.Ideal,
		"Acceptable":          entry.Acceptable,
		"RedFlag":             entry.RedFlag,
		"ClauseContent":       content,
	})
	if err != nil {
		return Verdict{}, fmt.Errorf("rendering acceptability prompt: %w", err)
	}

	reply, err := callWithRetry(ctx, backend, Request{
		System:    "You are a legal contract reviewer.",
		Prompt:    prompt,
		MaxTokens: 256,
	}, maxRetries)
	if err != nil {
		return Verdict{}, err
	}

	var lines []string
	for _, l := range strings.Split(reply, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}
	if len(lines) == 0 {
		return Verdict{}, fmt.Errorf("empty acceptability reply")
	}

	v := Verdict{
		Acceptable: strings.EqualFold(lines[len(lines)-1], "YES"),
	}
	if len(lines) > 1 {
		v.Explanation = strings.Join(lines[:len(lines)-1], "\n")
	}
	return v, nil
}

// harmonizeFix reformats the playbook replacement to mirror the numbering
// and lettering of the original clause.
func harmonizeFix(ctx context.Context, backend Backend, content, fix string, maxRetries int) (string, error) {
	prompt, err := renderTemplate(formatPromptTmpl, map[string]string{
		"ClauseContent": content,
		"Fix":           fix,
	})
	if err != nil {
		return "", fmt.Errorf("rendering format prompt: %w", err)
	}

	reply, err := callWithRetry(ctx, backend, Request{
		System:    "You are an expert legal drafter.",
		Prompt:    prompt,
		MaxTokens: 512,
	}, maxRetries)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

// Redline reviews each mapped playbook/clause pair: acceptable clauses are
// skipped, problematic ones get a formatting-harmonized replacement drawn
// from the playbook's example language. Redlines come back in playbook order.
func Redline(ctx context.Context, backend Backend, cfg types.ReviewConfig, pb *playbook.Playbook, clauses []types.Clause, mapping types.Mapping, w io.Writer) ([]types.Redline, error) {
	var redlines []types.Redline

	for _, name := range pb.Names() {
		idx := mapping[name]
		if idx == nil {
			continue
		}
		if *idx < 0 || *idx >= len(clauses) {
			return nil, fmt.Errorf("mapping for %q points at clause %d, document has %d", name, *idx, len(clauses))
		}

		entry := pb.Lookup(name)
		if entry == nil {
			fmt.Fprintf(w, "warning: playbook entry for %q not found\n", name)
			continue
		}
		content := clauses[*idx].Content

		verdict, err := judgeClause(ctx, backend, entry, content, cfg.MaxRetries)
		if err != nil {
			return nil, fmt.Errorf("judging %q: %w", name, err)
		}

		if verdict.Acceptable {
			fmt.Fprintf(w, "acceptable  %s (clause %d)\n", name, *idx+1)
			continue
		}

		fmt.Fprintf(w, "problematic %s (clause %d)\n", name, *idx+1)
		if verdict.Explanation != "" {
			fmt.Fprintf(w, "  %s\n", verdict.Explanation)
		}

		fix := playbook.Fix(entry)
		if fix == "" {
			fmt.Fprintf(w, "warning: no example fix in playbook for %q\n", name)
		} else {
			fix, err = harmonizeFix(ctx, backend, content, fix, cfg.MaxRetries)
			if err != nil {
				return nil, fmt.Errorf("harmonizing fix for %q: %w", name, err)
			}
		}

		redlines = append(redlines, types.Redline{
			TextSnippet:             content,
			PlaybookClauseReference: name,
			SuggestedFix:            fix,
		})
	}

	return redlines, nil
}
