package prompts

const defaultTriageSystem = `You are a technical documentation assistant. You decide whether a code change requires a specific documentation file to be updated. You answer with a single word.`

const defaultTriage = `I have a git diff from a code pull request and one documentation file.
Determine if the changes in the code require an update to this specific documentation file.

Conditions for documentation updates:
1. New functionality in the diff that is not documented.
2. Removed functionality in the diff that is documented and should be removed.
3. Updated functionality in the diff that is now outdated in the documentation.
4. Currently undocumented functionality in the diff that this file is the natural home for.
5. Consumer-facing only: focus exclusively on changes that affect the public API, configuration, installation, or behavior as experienced by someone using the library or application.
6. Ignore internal logic: no documentation update is needed for internal refactors, private helper functions, performance optimizations, or logic changes that do not alter the external interface or outcome, no matter how large the diff is.

Judge this file on its own. Do not consider what other documentation files might contain.
${DESCRIPTION}
Git Diff:
${DIFF}

Documentation File (${DOC_PATH}):
${CONTENT}

Does this specific documentation file need to be updated?
Answer with just "YES" or "NO".
`

const defaultUpdateSystem = `You are an expert technical writer and software engineer. You synchronize one documentation file with recent code changes and return only the file's new content.`

const defaultUpdate = `Input Data:
1. Target file to update: ${TARGET_PATH}
2. Current content of ${TARGET_PATH}:
---
${TARGET_CONTENT}
---
3. Git diff (code changes):
${DIFF}
${DESCRIPTION}
4. Ambient context (current content of every file being updated in this run):
${AMBIENT_CONTEXT}

Objectives:
1. Visibility filtering:
- Focus exclusively on changes affecting the public API, configuration, installation, or externally observable behavior.
- Ignore internal refactors or private logic that does not alter the external interface.

2. Update logic for ${TARGET_PATH}:
- Removals: if functionality is removed in the diff, delete the corresponding documentation completely. Do not leave deprecation notices, "removed" notes or changelog remarks.
- Changes: update signatures, parameters, configuration and behavior descriptions to reflect the current state.
- Additions: add new public-facing features or parameters only if they belong in this specific file.
- Prevent duplication: the ambient context shows the other files being updated. If a change more naturally belongs in one of those files, do NOT document it here.
- Preserve all unrelated content, structure and tone verbatim.

Format rules:
${FORMAT_RULES}

Constraints:
- Return ONLY the full, updated content of ${TARGET_PATH}.
- No JSON, no preamble, no meta-commentary, no code fence wrapped around the whole response.
- No speculation: only document what is explicitly supported by the diff.
- The output must be the updated content of the file and nothing else.

Provide the full updated content for ${TARGET_PATH}:
`

const defaultBatch = `Input Data:
1. Files to update:
${PATHS}
2. Current content of those files:
${DOCUMENTS}
3. Git diff (code changes):
${DIFF}
${DESCRIPTION}
Objectives:
- Focus exclusively on changes affecting the public API, configuration, installation, or externally observable behavior. Ignore internal refactors.
- Removals: if functionality is removed in the diff, delete the corresponding documentation completely. Do not leave deprecation notices.
- Changes: update signatures, parameters, configuration and behavior descriptions to reflect the current state.
- Additions: document each new public-facing feature in exactly one file, the one where it most naturally belongs. Never document the same change in two files.
- Preserve all unrelated content, structure, tone and format-specific syntax (front matter, fenced code blocks, custom containers) verbatim.
- No speculation: only document what is explicitly supported by the diff.

Response format:
Return a single JSON object of the form {"files": {"<path>": "<full new content>"}}.
Include only files that need a change, with their full new content. Omit files that need no change.
Do not include any text outside the JSON object.
`

const markdownRules = `- Keep front matter blocks (--- ... ---) intact at the top of the file.
- Keep every fenced code block wrapped in triple backticks with its language tag; never drop backticks or other markup syntax.
- Keep structural containers (::: tip, ::: warning, ::: code-group, admonitions) balanced and in place.
- Match the heading levels and list style already used in the file.`

const configRules = `- This is a structured configuration file (for example navigation or sidebar config), not prose.
- Return syntactically valid content for its format; keep existing keys, ordering and comments unless the diff requires a change.
- Only add, rename or remove entries that correspond to documentation pages affected by the diff.`
