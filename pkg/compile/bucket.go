package compile

import (
	"maps"
	"slices"
	"strconv"

	"github.com/agentstation/tryouts/pkg/records"
)

// Bucket is the compiled data for one signature. Buckets returned by the
// Engine are read-only for callers.
type Bucket struct {
	Signature records.Signature `json:"signature" yaml:"signature"`
	// Stations in the order they were first recorded.
	Stations   []string `json:"stations" yaml:"stations"`
	Categories []string `json:"categories" yaml:"categories"`
	// Comments is the bucket comment log.
	Comments []string `json:"comments,omitempty" yaml:"comments,omitempty"`

	players map[string]map[records.PlayerID]*Player
}

// Player is everything compiled for one (team, id) pair in a bucket.
type Player struct {
	Team     string                  `json:"team" yaml:"team"`
	ID       records.PlayerID        `json:"id" yaml:"id"`
	Stations map[string]StationScore `json:"stations" yaml:"stations"`
	Comments string                  `json:"comments,omitempty" yaml:"comments,omitempty"`
}

// StationScore is one player's ratings at one station.
type StationScore struct {
	Ratings map[string]Score `json:"ratings" yaml:"ratings"`
	Total   int              `json:"total" yaml:"total"`
}

// Score is a single category rating. An unrated category has Rated false.
type Score struct {
	Value int  `json:"value" yaml:"value"`
	Rated bool `json:"rated" yaml:"rated"`
}

// String returns the rating, or "" when unrated.
func (s Score) String() string {
	if !s.Rated {
		return ""
	}
	return strconv.Itoa(s.Value)
}

func newBucket(sig records.Signature) *Bucket {
	return &Bucket{
		Signature: sig,
		players:   make(map[string]map[records.PlayerID]*Player),
	}
}

// HasStation reports whether name is already in the station list.
func (b *Bucket) HasStation(name string) bool {
	return slices.Contains(b.Stations, name)
}

// SortedStations returns the station list in lexicographic order.
func (b *Bucket) SortedStations() []string {
	out := slices.Clone(b.Stations)
	slices.Sort(out)
	return out
}

// Teams returns the team keys in lexicographic order.
func (b *Bucket) Teams() []string {
	return slices.Sorted(maps.Keys(b.players))
}

// PlayerIDs returns a team's ids in numeric order.
func (b *Bucket) PlayerIDs(team string) []records.PlayerID {
	ids := slices.Collect(maps.Keys(b.players[team]))
	slices.SortFunc(ids, records.PlayerID.Compare)
	return ids
}

// Player looks up one player.
func (b *Bucket) Player(team string, id records.PlayerID) (*Player, bool) {
	p, ok := b.players[team][id]
	return p, ok
}

// Players returns every player, ordered by team then numeric id.
func (b *Bucket) Players() []*Player {
	var out []*Player
	for _, team := range b.Teams() {
		for _, id := range b.PlayerIDs(team) {
			out = append(out, b.players[team][id])
		}
	}
	return out
}

// PlayerCount returns the number of (team, id) pairs.
func (b *Bucket) PlayerCount() int {
	n := 0
	for _, ids := range b.players {
		n += len(ids)
	}
	return n
}

func (b *Bucket) player(team string, id records.PlayerID) *Player {
	ids, ok := b.players[team]
	if !ok {
		ids = make(map[records.PlayerID]*Player)
		b.players[team] = ids
	}
	p, ok := ids[id]
	if !ok {
		p = &Player{Team: team, ID: id, Stations: make(map[string]StationScore)}
		ids[id] = p
	}
	return p
}

func (b *Bucket) holds(team string, id records.PlayerID, station string) bool {
	p, ok := b.Player(team, id)
	if !ok {
		return false
	}
	_, ok = p.Stations[station]
	return ok
}

func (b *Bucket) addStation(name string) {
	if !b.HasStation(name) {
		b.Stations = append(b.Stations, name)
	}
}

func (b *Bucket) addComment(c string) {
	b.Comments = append(b.Comments, c)
}
