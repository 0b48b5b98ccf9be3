// Package quran talks to the public verse API.
//
// The client lists chapters and fetches one page of a chapter's verses per
// call, including word-by-word translations and the relative recitation audio
// path. It performs exactly one round trip per call and never retries;
// callers decide whether a failure is worth repeating. Every failure is
// tagged with services.ErrNetwork.
package quran
