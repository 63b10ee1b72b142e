// Package gemini implements the generation.Summarizer interface against
// Google's Gemini API.
package gemini
