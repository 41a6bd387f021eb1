package config

// Fallback prompts, used when config.toml is absent or leaves a prompt out.
// config/config.toml carries the same text and is the place to edit it.

const defaultSystemPrompt = "You are an SAP SmartForm and ABAP expert. Always respond in strict JSON."

// The tree prompt receives the page name (JSON-quoted) and the page skeleton.
const defaultTreePrompt = `You are reviewing one SmartForm page that has already been grouped into windows and elements.

For every element, explain its technical mapping, coding and usage:
- "mapping": which SAP table/structure fields or program symbols the element reads (e.g. &VBDKR-VBELN&)
- "coding": any ABAP program lines, conditions or formatting the element carries
- "usage": what the element contributes to the printed output

Rules:
- Return ONLY the JSON object you were given, with "mapping", "coding" and "usage" filled in for every element.
- Do not add, remove, reorder or rename windows or elements.
- Keep "elemName", "path", "nodeType", "attributes" and "textPayload" exactly as given.
- "pageName" must stay exactly %s. If it is empty, leave it empty. Never invent a page name.

Here is the page:
%s
`

// The rows prompt receives the flat node list.
const defaultRowsPrompt = `You are reviewing multiple SmartForm nodes.

For each node, explain its **technical mapping and coding**.

Return ONLY a strict JSON array of rows like this:
[
  {
    "elemName": "...",
    "path": "...",
    "nodeType": "...",
    "attributes": [...],
    "mapping": "...",
    "coding": "...",
    "usage": "..."
  },
  ...
]

Here are the nodes:
%s
`
