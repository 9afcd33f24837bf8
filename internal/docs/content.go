package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Getting started with docsync",
		Content: topicQuickstart,
	},
	{
		Name:    "config",
		Title:   "Configuration Reference",
		Summary: "Config file fields, defaults, and environment variables",
		Content: topicConfig,
	},
	{
		Name:    "prompts",
		Title:   "Prompt Templates",
		Summary: "Overriding the triage and update prompts",
		Content: topicPrompts,
	},
	{
		Name:    "pipeline",
		Title:   "Pipeline Stages",
		Summary: "Diff, corpus, triage, generate, and publish",
		Content: topicPipeline,
	},
	{
		Name:    "outcomes",
		Title:   "Outcomes and Exit Codes",
		Summary: "Terminal states and what each exit code means",
		Content: topicOutcomes,
	},
	{
		Name:    "artifacts",
		Title:   "Artifacts Directory",
		Summary: "What --artifacts-dir records",
		Content: topicArtifacts,
	},
}

const topicQuickstart = `QUICK START

docsync keeps a documentation repository in sync with code changes. Given a
pull request in a source repository, it diffs the local checkout against the
pull request's base branch, asks a language model which documentation files
the change affects, rewrites those files, and opens a pull request against
the documentation repository.

  1. Check out the source pull request locally.

  2. Export credentials:

       export GH_TOKEN=...           # read source PR, write docs repo
       export OPENAI_API_KEY=...

  3. Preview:

       docsync run --source-pr 42 --source-repo acme/widgets \
         --doc-repo acme/docs --doc-path docs --dry-run

  4. Drop --dry-run to create the branch and pull request.

Run 'docsync init' to write a starter .docsync.yaml, and
'docsync init --prompts' to also get editable prompt templates.
`

const topicConfig = `CONFIGURATION REFERENCE

docsync reads .docsync.yaml from --repo-path, or the file named by --config.
A missing default file means built-in defaults. Every field is optional.

  model                  Model name. Default gpt-4o.
  base-url               OpenAI-compatible API base URL.
  branch-prefix          Prefix of the docs branch. Default doc-update-pr.
                         Branches are named <prefix>-<owner>/<repo>-<pr>.
  max-diff-chars         Diff budget per request. Default 40000.
  max-doc-context-chars  Document and ambient context budget. Default 50000.
  strategy               per-file (default) or batched.
  concurrency            Parallel model calls. Default 4.
  requests-per-minute    Model call rate limit. 0 (default) is unlimited.

  diff:
    remote               Remote to fetch the base branch from. Default origin.
    context-lines        git diff -U value. Default 20.
    inter-hunk-context   git diff --inter-hunk-context value. Default 15.
    function-context     Pass -W to git diff. Default true.

  include                Globs selecting documents. Default ["**/*.md"].
  config-files           Globs selecting structured navigation or sidebar
                         files. Generated yaml and json must still parse.

  prompts:               Template override files, relative to the config file.
    triage-system, triage, update-system, update, batch

  pull-request:
    draft                Open the pull request as a draft.
    labels               Labels to add to the pull request.

ENVIRONMENT

  GH_TOKEN (or GITHUB_TOKEN)   Required.
  OPENAI_API_KEY               Required.
  OPENAI_MODEL                 Overrides model.
  OPENAI_BASE_URL              Overrides base-url.
  NO_COLOR                     Disables colored output.
`

const topicPrompts = `PROMPT TEMPLATES

Templates use ${NAME} placeholders. Unknown names expand to nothing, and the
process environment is never consulted. Write a literal dollar sign as $$.

  triage          DIFF, DOC_PATH, CONTENT, DESCRIPTION
  update          TARGET_PATH, TARGET_CONTENT, DIFF, AMBIENT_CONTEXT,
                  DESCRIPTION, FORMAT_RULES
  batch           PATHS, DOCUMENTS, DIFF, DESCRIPTION

DESCRIPTION is the source pull request's title and body, or empty.
AMBIENT_CONTEXT lists every document flagged in this run so the model can
put each new fact in exactly one file.

The triage answer counts as "update needed" only if it contains the word
YES. Anything else, including an unclear answer, means no update.

The batched template must ask for {"files": {"<path>": "<content>"}}. A
response that cannot be decoded fails the run.
`

const topicPipeline = `PIPELINE STAGES

  1. diff      Look up the source pull request's base branch, run
               git fetch <remote> <base> and
               git diff <remote>/<base> -W -U20 --inter-hunk-context=15 -- .
               in --repo-path. An empty diff ends the run.
  2. corpus    List --doc-path in the docs repository recursively and read
               every file matching include or config-files. Files that are
               not valid UTF-8 are skipped with a warning.
  3. triage    Ask, per document and in isolation, whether the diff needs it
               to change. Only consumer-facing changes count.
  4. generate  Rewrite each flagged document. Output that is empty or equal
               to the original is dropped.
  5. publish   Create <prefix>-<owner>/<repo>-<pr> from the default branch
               (suffixed with a timestamp if it exists), commit each file,
               and open a pull request.
`

const topicOutcomes = `OUTCOMES AND EXIT CODES

Exit 0, nothing published:
  no-diff            The checkout does not differ from the base branch.
  no-documents       No documentation files matched under --doc-path.
  no-update-needed   Triage flagged no document.
  no-changes         Every generated file matched its original.
  dry-run            --dry-run was given; the plan was printed.

Exit 0, published:
  published          The pull request URL is printed.

Exit 1:
  Missing secrets, a --repo-path that is not a git checkout, an unknown pull
  request, a failed fetch or diff, a missing --doc-path, a model API error,
  an undecodable batched response, or a failed write. Failures after the
  branch was created name the branch so it can be inspected or deleted.
`

const topicArtifacts = `ARTIFACTS DIRECTORY

With --artifacts-dir <dir>, docsync records:

  prompts/NNN-<label>.md      Every rendered prompt (system and user).
  responses/NNN-<label>.txt   Every raw model response.
  updates/<doc path>          Every accepted replacement file.
  timing.json                 Start, end, and duration of each stage.
  run.json                    Run ID, outcome, flagged and updated files,
                              branch, and pull request URL.
`
