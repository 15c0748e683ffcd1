// Package llm provides the AI folder classifier used by task intake.
// It supports several providers (Anthropic, OpenAI, Gemini and a remote
// classify endpoint) behind one Classifier, with retry logic, rate limiting
// and response caching.
package llm
