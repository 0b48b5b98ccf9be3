// Command recite reads Quran chapters page by page from the verse API and
// plays verse recitations, keeping a local history of what was heard.
package main
