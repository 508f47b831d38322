package api

// Wire types follow the server's PascalCase JSON. Only the fields the client
// reads are modeled.

type AuthResult struct {
	AccessToken string `json:"AccessToken"`
	ServerID    string `json:"ServerId"`
	User        User   `json:"User"`
}

type User struct {
	ID            string             `json:"Id"`
	Name          string             `json:"Name"`
	ServerID      string             `json:"ServerId"`
	HasPassword   bool               `json:"HasPassword"`
	Configuration *UserConfiguration `json:"Configuration,omitempty"`
}

// UserConfiguration is the server-side per-user playback configuration.
type UserConfiguration struct {
	AudioLanguagePreference    string `json:"AudioLanguagePreference"`
	SubtitleLanguagePreference string `json:"SubtitleLanguagePreference"`
	SubtitleMode               string `json:"SubtitleMode"`
	PlayDefaultAudioTrack      bool   `json:"PlayDefaultAudioTrack"`
	RememberAudioSelections    bool   `json:"RememberAudioSelections"`
	RememberSubtitleSelections bool   `json:"RememberSubtitleSelections"`
}

type SystemInfo struct {
	ServerName string `json:"ServerName"`
	Version    string `json:"Version"`
	ID         string `json:"Id"`
}

type ItemsResponse struct {
	Items            []Item `json:"Items"`
	TotalRecordCount int    `json:"TotalRecordCount"`
}

type Item struct {
	ID                string        `json:"Id"`
	Name              string        `json:"Name"`
	Type              string        `json:"Type"`
	SeriesID          string        `json:"SeriesId"`
	SeriesName        string        `json:"SeriesName"`
	SeasonID          string        `json:"SeasonId"`
	IndexNumber       int           `json:"IndexNumber"`
	ParentIndexNumber int           `json:"ParentIndexNumber"`
	ProductionYear    int           `json:"ProductionYear"`
	RunTimeTicks      int64         `json:"RunTimeTicks"`
	Container         string        `json:"Container"`
	Path              string        `json:"Path"`
	Overview          string        `json:"Overview"`
	CollectionType    string        `json:"CollectionType"`
	UserData          *UserData     `json:"UserData,omitempty"`
	MediaSources      []MediaSource `json:"MediaSources,omitempty"`

	// Trickplay is keyed by media source id, then by tile width.
	Trickplay map[string]map[string]TrickplayInfo `json:"Trickplay,omitempty"`
}

type UserData struct {
	IsFavorite            bool    `json:"IsFavorite"`
	Played                bool    `json:"Played"`
	PlayCount             int     `json:"PlayCount"`
	PlaybackPositionTicks int64   `json:"PlaybackPositionTicks"`
	PlayedPercentage      float64 `json:"PlayedPercentage"`
}

type MediaSource struct {
	ID           string        `json:"Id"`
	Container    string        `json:"Container"`
	Bitrate      int           `json:"Bitrate"`
	Size         int64         `json:"Size"`
	MediaStreams []MediaStream `json:"MediaStreams"`
}

type MediaStream struct {
	Index     int    `json:"Index"`
	Type      string `json:"Type"`
	Codec     string `json:"Codec"`
	Language  string `json:"Language"`
	Title     string `json:"DisplayTitle"`
	IsDefault bool   `json:"IsDefault"`
	IsForced  bool   `json:"IsForced"`
}

// TrickplayInfo describes one thumbnail tile sheet resolution.
type TrickplayInfo struct {
	Width          int `json:"Width"`
	Height         int `json:"Height"`
	TileWidth      int `json:"TileWidth"`
	TileHeight     int `json:"TileHeight"`
	ThumbnailCount int `json:"ThumbnailCount"`
	Interval       int `json:"Interval"`
	Bandwidth      int `json:"Bandwidth"`
}

type QuickConnectState struct {
	Code          string `json:"Code"`
	Secret        string `json:"Secret"`
	Authenticated bool   `json:"Authenticated"`
}

type RemoteSubtitle struct {
	ID              string  `json:"Id"`
	Name            string  `json:"Name"`
	Format          string  `json:"Format"`
	Language        string  `json:"ThreeLetterISOLanguageName"`
	Author          string  `json:"Author"`
	DownloadCount   int     `json:"DownloadCount"`
	CommunityRating float64 `json:"CommunityRating"`
}

// PlaybackReport is the common body for start/progress/stop telemetry.
type PlaybackReport struct {
	ItemID        string `json:"ItemId"`
	MediaSourceID string `json:"MediaSourceId,omitempty"`
	PlaySessionID string `json:"PlaySessionId,omitempty"`
	PositionTicks int64  `json:"PositionTicks"`
	IsPaused      bool   `json:"IsPaused"`
	PlayMethod    string `json:"PlayMethod,omitempty"`
}
