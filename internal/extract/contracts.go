package extract

import "context"

// ChatCompleter is the extraction-engine contract: it receives the system
// instructions and the page prompt and returns the engine's free-text reply.
// The reply is expected, but not guaranteed, to contain JSON; recovery is
// this package's job. Retry and backoff policy for the call belong to the
// caller's collaborator, never to this core.
type ChatCompleter interface {
	Complete(ctx context.Context, systemMessage, userPrompt string) (string, error)
}
