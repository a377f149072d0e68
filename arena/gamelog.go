package arena

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/gomoku/move"
)

var gameLogHeader = []string{"gameID", "player1", "player2", "starter", "winner", "length", "fingerprint", "moves"}

// WriteGameLog writes one CSV row per game.
func WriteGameLog(w io.Writer, records []GameRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(gameLogHeader); err != nil {
		return err
	}
	for _, r := range records {
		moves := lo.Map(r.Moves, func(m move.Move, _ int) string { return m.String() })
		row := []string{
			strconv.Itoa(r.ID),
			r.Players[0],
			r.Players[1],
			strconv.Itoa(r.Starter),
			strconv.Itoa(r.Winner),
			strconv.Itoa(len(r.Moves)),
			strconv.FormatUint(r.Fingerprint, 16),
			strings.Join(moves, " "),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadGameLog parses a log written by WriteGameLog. Move statistics and the
// final board are not part of the log and come back empty.
func ReadGameLog(r io.Reader) ([]GameRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(gameLogHeader)
	var records []GameRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if row[0] == gameLogHeader[0] {
			continue
		}
		rec, err := parseGameLogRow(row)
		if err != nil {
			return nil, fmt.Errorf("game log row %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseGameLogRow(row []string) (GameRecord, error) {
	var rec GameRecord
	var err error
	if rec.ID, err = strconv.Atoi(row[0]); err != nil {
		return rec, err
	}
	rec.Players = [2]string{row[1], row[2]}
	if rec.Starter, err = strconv.Atoi(row[3]); err != nil {
		return rec, err
	}
	if rec.Winner, err = strconv.Atoi(row[4]); err != nil {
		return rec, err
	}
	length, err := strconv.Atoi(row[5])
	if err != nil {
		return rec, err
	}
	if rec.Fingerprint, err = strconv.ParseUint(row[6], 16, 64); err != nil {
		return rec, err
	}
	for _, f := range strings.Fields(row[7]) {
		m, err := move.FromString(f)
		if err != nil {
			return rec, err
		}
		rec.Moves = append(rec.Moves, m)
	}
	if len(rec.Moves) != length {
		return rec, fmt.Errorf("length %d does not match %d moves", length, len(rec.Moves))
	}
	if Fingerprint(rec.Moves) != rec.Fingerprint {
		return rec, errors.New("fingerprint does not match moves")
	}
	return rec, nil
}
