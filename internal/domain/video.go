package domain

// FormatType classifies what streams a format carries
type FormatType string

const (
	FormatAudio FormatType = "audio"
	FormatVideo FormatType = "video"
	FormatBoth  FormatType = "both"
)

// VideoFormat describes a single downloadable format of a video.
// Instances are never mutated after construction; each resolver call
// produces a fresh set.
type VideoFormat struct {
	FormatID     string     `json:"formatId"`
	Extension    string     `json:"extension"`
	Resolution   string     `json:"resolution,omitempty"`
	Filesize     int64      `json:"filesize,omitempty"`
	AudioQuality string     `json:"audioQuality,omitempty"`
	Type         FormatType `json:"type"`
	Quality      string     `json:"quality"`
}

// VideoInfo is the structured metadata for a URL, discriminated on
// IsPlaylist. For playlist containers Formats is empty and the
// playlist fields are populated; PlaylistItems may be shorter than
// PlaylistCount when metadata is partial.
type VideoInfo struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Thumbnail     string        `json:"thumbnail"`
	Duration      string        `json:"duration,omitempty"`
	Formats       []VideoFormat `json:"formats"`
	IsPlaylist    bool          `json:"isPlaylist"`
	PlaylistTitle string        `json:"playlistTitle,omitempty"`
	PlaylistCount int           `json:"playlistCount,omitempty"`
	PlaylistItems []VideoInfo   `json:"playlistItems,omitempty"`
}

// HasAudioFormat reports whether any format carries an audio stream
func (v *VideoInfo) HasAudioFormat() bool {
	for _, f := range v.Formats {
		if f.Type == FormatAudio || f.Type == FormatBoth {
			return true
		}
	}
	return false
}

// HasVideoFormat reports whether any format carries a video stream
func (v *VideoInfo) HasVideoFormat() bool {
	for _, f := range v.Formats {
		if f.Type == FormatVideo || f.Type == FormatBoth {
			return true
		}
	}
	return false
}
