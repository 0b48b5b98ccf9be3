// Package session binds one chapter's verse list to per-verse playback.
//
// A Session owns a pagination store for its chapter and a lazily populated
// map from verse id to playback controller. Rendering code reports which rows
// are visible; rows that scroll far enough away release their audio, and
// reaching the end of the list requests the next page. Closing the session
// discards late fetches and releases every controller.
package session
