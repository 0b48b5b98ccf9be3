package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

type codec string

const (
	codecUnknown codec = ""
	codecMP3     codec = "mp3"
	codecWAV     codec = "wav"
	codecFLAC    codec = "flac"
	codecVorbis  codec = "vorbis"
)

// detectCodec picks a decoder from the asset path, falling back to the
// response content type.
func detectCodec(uri, contentType string) codec {
	if parsed, err := url.Parse(uri); err == nil {
		switch strings.ToLower(path.Ext(parsed.Path)) {
		case ".mp3":
			return codecMP3
		case ".wav", ".wave":
			return codecWAV
		case ".flac":
			return codecFLAC
		case ".ogg", ".oga":
			return codecVorbis
		}
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return codecUnknown
	}
	switch mediaType {
	case "audio/mpeg", "audio/mp3":
		return codecMP3
	case "audio/wav", "audio/x-wav", "audio/wave":
		return codecWAV
	case "audio/flac", "audio/x-flac":
		return codecFLAC
	case "audio/ogg", "audio/vorbis", "application/ogg":
		return codecVorbis
	}
	return codecUnknown
}

func decode(c codec, data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	reader := bytes.NewReader(data)
	switch c {
	case codecMP3:
		return mp3.Decode(io.NopCloser(reader))
	case codecWAV:
		return wav.Decode(reader)
	case codecFLAC:
		return flac.Decode(reader)
	case codecVorbis:
		return vorbis.Decode(io.NopCloser(reader))
	default:
		return nil, beep.Format{}, errors.New("unsupported audio format")
	}
}

// bufferAll decodes the whole stream into memory so the handle can seek
// back to the start after it finishes.
func bufferAll(streamer beep.StreamSeekCloser, format beep.Format) (*beep.Buffer, error) {
	defer streamer.Close()
	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("decode audio: %w", err)
	}
	if buf.Len() == 0 {
		return nil, errors.New("decode audio: asset is empty")
	}
	return buf, nil
}
