/*
Package fixer is the core of mdfix: it applies the ordered rule table to
one document at a time and reports what changed.

	+-----------+      +-----------+      +------------+
	|  rules    | ---> |   Fixer   | ---> |   Result   |
	| (ordered) |      | (Fix/File)|      | (counts)   |
	+-----------+      +-----------+      +------------+

🎯 Purpose:
- Applies every rule in table order to a document's full text
- Counts non-overlapping matches against the live, mutating text
- Rewrites files atomically, BOM-prefixed, only when content changed

🔄 Flow:
1. Read document content (strip an existing BOM)
2. For each rule: count matches in current text, substitute all,
   repeat until the pattern stops matching
3. Compare final text against original
4. Persist only when changed and not in dry-run mode

📝 Design Philosophy:
The fixer never prints. It returns structured results (changed flag,
total count, per-rule breakdown) and leaves all reporting to the
runner, so the core stays testable without capturing console output.
Rules are sequential and composable within a file: a later rule sees
the output of earlier rules, never the original text. The same input
always yields the same output and the same count.
*/
package fixer
