package arena

import (
	"io"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/domino14/gomoku/ai/player"
)

// PlayerSummary is how one player fared over a match.
type PlayerSummary struct {
	Kind        string           `yaml:"kind"`
	Wins        int              `yaml:"wins"`
	WinsAsFirst int              `yaml:"wins-as-first"`
	Stats       player.MoveStats `yaml:"stats"`
}

type Summary struct {
	Games         int              `yaml:"games"`
	Players       [2]PlayerSummary `yaml:"players"`
	Draws         int              `yaml:"draws"`
	FirstMoverWon int              `yaml:"first-mover-won"`
	DistinctGames int              `yaml:"distinct-games"`
	MeanLength    float64          `yaml:"mean-length"`
	StdDevLength  float64          `yaml:"stddev-length"`
	ShortestGame  int              `yaml:"shortest-game"`
	LongestGame   int              `yaml:"longest-game"`
}

// Summarize aggregates records produced by Run.
func Summarize(s Settings, records []GameRecord) Summary {
	sum := Summary{
		Games:   len(records),
		Players: [2]PlayerSummary{{Kind: s.Player1}, {Kind: s.Player2}},
	}
	if len(records) == 0 {
		return sum
	}
	for i := range sum.Players {
		sum.Players[i].Wins = lo.CountBy(records, func(r GameRecord) bool { return r.Winner == i })
		sum.Players[i].WinsAsFirst = lo.CountBy(records, func(r GameRecord) bool {
			return r.Winner == i && r.Starter == i
		})
		sum.Players[i].Stats = lo.Reduce(records, func(acc player.MoveStats, r GameRecord, _ int) player.MoveStats {
			return acc.Add(r.Stats[i])
		}, player.MoveStats{})
	}
	sum.Draws = lo.CountBy(records, GameRecord.IsDraw)
	sum.FirstMoverWon = sum.Players[0].WinsAsFirst + sum.Players[1].WinsAsFirst
	sum.DistinctGames = len(lo.Uniq(lo.Map(records, func(r GameRecord, _ int) uint64 {
		return r.Fingerprint
	})))

	lengths := lo.Map(records, func(r GameRecord, _ int) float64 { return float64(len(r.Moves)) })
	sum.MeanLength, sum.StdDevLength = stat.MeanStdDev(lengths, nil)
	if len(lengths) < 2 {
		sum.StdDevLength = 0
	}
	sum.ShortestGame = int(lo.Min(lengths))
	sum.LongestGame = int(lo.Max(lengths))
	return sum
}

func (s Summary) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}
