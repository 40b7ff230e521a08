package stats

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// IdentifierSeparator splits a Riot ID into game name and tag line.
const IdentifierSeparator = "#"

// ErrMalformedBlob is returned when a stored stats value can't be decoded.
var ErrMalformedBlob = errors.New("malformed stats blob")

// Kind tells which shape a Blob carries.
type Kind int

const (
	KindNone Kind = iota
	KindAPI
	KindManual
)

func (k Kind) String() string {
	switch k {
	case KindAPI:
		return "api"
	case KindManual:
		return "manual"
	}
	return "none"
}

// GameInfo is the part of a game definition the stats logic depends on.
type GameInfo struct {
	ID           uint
	Name         string
	APIAvailable bool
}

// RiotID is the two part public identifier echoed back by the account endpoint.
type RiotID struct {
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// String joins the identifier with the separator.
func (r RiotID) String() string {
	return r.GameName + IdentifierSeparator + r.TagLine
}

// SplitRiotID splits "Name#Tag" on the first separator.
// Any further separator stays in the tag, callers reject it.
func SplitRiotID(identifier string) (gameName string, tagLine string, ok bool) {
	return strings.Cut(identifier, IdentifierSeparator)
}

// IsRiotID reports whether the identifier is exactly "Name#Tag" with both parts set.
func IsRiotID(identifier string) bool {
	gameName, tagLine, ok := SplitRiotID(identifier)
	return ok && gameName != "" && tagLine != "" && !strings.Contains(tagLine, IdentifierSeparator)
}

// RankRecord is the ranked queue standing of a player.
type RankRecord struct {
	Tier         string `json:"tier"`
	Division     string `json:"rank"`
	LeaguePoints Number `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}

// APIStats is the canonical value built from the Riot API.
type APIStats struct {
	SummonerID    string      `json:"summonerId,omitempty"`
	AccountID     string      `json:"accountId,omitempty"`
	Puuid         string      `json:"puuid"`
	SummonerLevel int         `json:"summonerLevel"`
	ProfileIconID int         `json:"profileIconId"`
	RiotID        *RiotID     `json:"riotId"`
	Rank          *RankRecord `json:"rank"`
	LastUpdated   time.Time   `json:"lastUpdated"`
}

// ManualRank is the user supplied rank: usually a free text label,
// sometimes an object carrying a numeric rating.
type ManualRank struct {
	raw json.RawMessage
}

// ManualRankFromLabel wraps a free text label, empty labels are absent.
func ManualRankFromLabel(label string) ManualRank {
	if strings.TrimSpace(label) == "" {
		return ManualRank{}
	}
	raw, _ := json.Marshal(label)
	return ManualRank{raw: raw}
}

// Present reports whether a non null rank is set.
func (r ManualRank) Present() bool {
	return len(r.raw) > 0 && !bytes.Equal(r.raw, jsonNull)
}

// Label returns the rank when it's a plain string.
func (r ManualRank) Label() (string, bool) {
	if !r.Present() {
		return "", false
	}
	var label string
	if err := json.Unmarshal(r.raw, &label); err != nil {
		return "", false
	}
	return label, true
}

// Rating returns the "rating" field when the rank is an object.
func (r ManualRank) Rating() (int, bool) {
	if !r.Present() {
		return 0, false
	}
	var obj struct {
		Rating Number `json:"rating"`
	}
	if err := json.Unmarshal(r.raw, &obj); err != nil {
		return 0, false
	}
	return obj.Rating.Int()
}

// MarshalJSON writes the raw value or null.
func (r ManualRank) MarshalJSON() ([]byte, error) {
	if !r.Present() {
		return jsonNull, nil
	}
	return r.raw, nil
}

// UnmarshalJSON keeps a copy of the raw value.
func (r *ManualRank) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull) {
		r.raw = nil
		return nil
	}
	r.raw = append(json.RawMessage(nil), trimmed...)
	return nil
}

// ManualStats is the value entered by the user for games without API.
type ManualStats struct {
	GameUsername string     `json:"game_username"`
	Rank         ManualRank `json:"rank"`
	Elo          Number     `json:"elo"`
	LastUpdated  time.Time  `json:"lastUpdated"`
}

// Blob is the per account stats value, tagged by the owning game integration.
type Blob struct {
	Kind   Kind
	API    *APIStats
	Manual *ManualStats
}

// NewAPIBlob wraps API stats.
func NewAPIBlob(s *APIStats) Blob {
	return Blob{Kind: KindAPI, API: s}
}

// NewManualBlob wraps manual stats.
func NewManualBlob(m *ManualStats) Blob {
	return Blob{Kind: KindManual, Manual: m}
}

// IsEmpty reports a missing stats value.
func (b Blob) IsEmpty() bool {
	return b.Kind == KindNone
}

// LastUpdated returns the time the value was produced.
func (b Blob) LastUpdated() time.Time {
	switch b.Kind {
	case KindAPI:
		return b.API.LastUpdated
	case KindManual:
		return b.Manual.LastUpdated
	}
	return time.Time{}
}

// MarshalJSON writes the carried shape, or null for an empty blob.
func (b Blob) MarshalJSON() ([]byte, error) {
	switch b.Kind {
	case KindAPI:
		return json.Marshal(b.API)
	case KindManual:
		return json.Marshal(b.Manual)
	}
	return jsonNull, nil
}

// Decode reads a stored value using the owning game integration flag.
// The flag picks the shape, fields are never sniffed.
func Decode(raw []byte, apiAvailable bool) (Blob, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull) {
		return Blob{}, nil
	}

	if apiAvailable {
		var s APIStats
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return Blob{}, fmt.Errorf("%w: %v", ErrMalformedBlob, err)
		}
		return NewAPIBlob(&s), nil
	}

	var m ManualStats
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return Blob{}, fmt.Errorf("%w: %v", ErrMalformedBlob, err)
	}
	return NewManualBlob(&m), nil
}
