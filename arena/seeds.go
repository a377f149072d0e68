package arena

import (
	"bufio"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"os"
	"strings"

	"lukechampine.com/frand"
)

// SeedSize is the length of a per-game RNG seed.
const SeedSize = 32

// MasterRNG returns a deterministic RNG for a non-zero seed and a randomly
// seeded one otherwise.
func MasterRNG(seed uint64) *frand.RNG {
	if seed == 0 {
		return frand.New()
	}
	var s [SeedSize]byte
	binary.LittleEndian.PutUint64(s[:], seed)
	return frand.NewCustom(s[:], 1024, 12)
}

// GenerateSeeds draws n per-game seeds from master.
func GenerateSeeds(n int, master *frand.RNG) [][SeedSize]byte {
	seeds := make([][SeedSize]byte, n)
	for i := range seeds {
		seeds[i] = master.Entropy256()
	}
	return seeds
}

func seedRNG(seed [SeedSize]byte) *frand.RNG {
	return frand.NewCustom(seed[:], 1024, 12)
}

// SaveSeeds writes one URL-safe base64 seed per line.
func SaveSeeds(seeds [][SeedSize]byte, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating seed file: %w", err)
	}
	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "# gomoku arena game seeds, one per game")
	for _, seed := range seeds {
		fmt.Fprintln(w, base64.RawURLEncoding.EncodeToString(seed[:]))
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing seed file: %w", err)
	}
	return f.Close()
}

// LoadSeeds reads a file written by SaveSeeds. Blank lines and lines
// starting with '#' are skipped.
func LoadSeeds(path string) ([][SeedSize]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening seed file: %w", err)
	}
	defer f.Close()

	var seeds [][SeedSize]byte
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		decoded, err := base64.RawURLEncoding.DecodeString(line)
		if err != nil {
			return nil, fmt.Errorf("seed at line %d: %w", lineNum, err)
		}
		if len(decoded) != SeedSize {
			return nil, fmt.Errorf("seed at line %d has %d bytes, want %d", lineNum, len(decoded), SeedSize)
		}
		var seed [SeedSize]byte
		copy(seed[:], decoded)
		seeds = append(seeds, seed)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	return seeds, nil
}
