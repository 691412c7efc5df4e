package vectorstore

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/FACorreiaa/go-itinerary-recommender/internal/types"
)

const (
	WordsFile  = "word2vec.txt"
	PlacesFile = "place_vectors.csv"

	minWordTokens   = 10
	minPlaceFields  = 6
	maxLineCapacity = 1 << 20
)

// DefaultSearchPaths are tried, in order, after the configured directory.
var DefaultSearchPaths = []string{"model", "data/model", "config/model"}

var headerLine = regexp.MustCompile(`^\d+\s+\d+$`)

var _ Source = (*FileSource)(nil)

// FileSource reads a whitespace-separated word2vec text table and a
// comma-separated place-vector table from a directory.
type FileSource struct {
	Dir string
}

// FindFileSource returns a FileSource for the first directory containing both
// tables, checking dir first and then DefaultSearchPaths.
func FindFileSource(dir string) (*FileSource, error) {
	candidates := make([]string, 0, len(DefaultSearchPaths)+1)
	if dir != "" {
		candidates = append(candidates, dir)
	}
	candidates = append(candidates, DefaultSearchPaths...)

	for _, c := range candidates {
		if fileExists(filepath.Join(c, WordsFile)) && fileExists(filepath.Join(c, PlacesFile)) {
			return &FileSource{Dir: c}, nil
		}
	}
	return nil, fmt.Errorf("%w (searched %s)", ErrModelNotFound, strings.Join(candidates, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (f *FileSource) Words(_ context.Context) (map[string][]float32, error) {
	file, err := os.Open(filepath.Join(f.Dir, WordsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to open word table: %w", err)
	}
	defer file.Close()
	return ParseWords(file)
}

func (f *FileSource) Places(_ context.Context) ([]types.Place, [][]float32, error) {
	file, err := os.Open(filepath.Join(f.Dir, PlacesFile))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open place table: %w", err)
	}
	defer file.Close()
	return ParsePlaces(file)
}

// ParseWords reads lines of the form "word v1 v2 ... vN". A leading
// "<count> <dim>" header is skipped and lines with fewer than ten tokens are
// dropped.
func ParseWords(r io.Reader) (map[string][]float32, error) {
	words := make(map[string][]float32)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineCapacity)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if lineNo == 1 && headerLine.MatchString(line) {
			continue
		}
		tokens := strings.Fields(line)
		if len(tokens) < minWordTokens {
			continue
		}
		vec, err := parseFloats(tokens[1:])
		if err != nil {
			return nil, &ErrCorruptTable{Table: "words", Line: lineNo, Reason: err.Error(), cause: err}
		}
		words[tokens[0]] = vec
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word table: %w", err)
	}
	return words, nil
}

// ParsePlaces reads rows of the form "id,name,category,lat,lng,v1..vN".
// Empty coordinates become nil and rows with fewer than six fields are skipped.
func ParsePlaces(r io.Reader) ([]types.Place, [][]float32, error) {
	var (
		places []types.Place
		vecs   [][]float32
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineCapacity)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Split(sc.Text(), ",")
		if len(fields) < minPlaceFields {
			continue
		}
		lat, err := parseOptionalFloat(fields[3])
		if err != nil {
			return nil, nil, &ErrCorruptTable{Table: "places", Line: lineNo, Reason: "bad latitude", cause: err}
		}
		lng, err := parseOptionalFloat(fields[4])
		if err != nil {
			return nil, nil, &ErrCorruptTable{Table: "places", Line: lineNo, Reason: "bad longitude", cause: err}
		}
		vec, err := parseFloats(fields[5:])
		if err != nil {
			return nil, nil, &ErrCorruptTable{Table: "places", Line: lineNo, Reason: err.Error(), cause: err}
		}
		places = append(places, types.Place{
			ID:        fields[0],
			Name:      fields[1],
			Category:  fields[2],
			Latitude:  lat,
			Longitude: lng,
		})
		vecs = append(vecs, vec)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read place table: %w", err)
	}
	return places, vecs, nil
}

func parseFloats(tokens []string) ([]float32, error) {
	v := make([]float32, len(tokens))
	for i, t := range tokens {
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 32)
		if err != nil {
			return nil, fmt.Errorf("invalid vector component %q: %w", t, err)
		}
		v[i] = float32(f)
	}
	return v, nil
}

func parseOptionalFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
