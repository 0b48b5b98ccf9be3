// Package textutil normalizes and compares short pieces of text.
//
// Chapter names arrive in several transliterations ("Al-Fātiḥah",
// "Al-Fatihah", "fatiha"), so lookups fold case, strip combining marks, and
// compare character trigram fingerprints by cosine similarity. StripTags
// cleans the footnote markup the verse API embeds in translations.
package textutil
