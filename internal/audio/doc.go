// Package audio plays verse recitations through the system speaker.
//
// Engine implements playback.Engine on top of gopxl/beep: each Open downloads
// one asset, decodes it fully into memory, and mounts it paused on the shared
// speaker mixer. Handles toggle a beep.Ctrl, and when an asset reaches its
// end it is rewound, paused, and reported through the finished callback.
package audio
