// Package pagination accumulates cursor-addressed pages from a remote source
// into one ordered item sequence.
//
// A Store issues at most one fetch at a time, appends pages strictly in
// cursor order, and coalesces RequestMore calls made while a fetch is in
// flight into a single follow-up fetch. Failures keep whatever was already
// accumulated and leave RequestMore available as the retry path. NearEnd
// implements the proximity prefetch rule used by list views.
package pagination
