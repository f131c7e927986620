package history

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Match is one fuzzy search hit against recorded collection names.
type Match struct {
	JobID      string
	File       string
	Collection string
	Score      float64
}

// matchThreshold is the minimum Jaro-Winkler similarity for a hit.
const matchThreshold = 0.70

// SearchCollections fuzzy-matches query against every recorded collection
// name and returns hits above the similarity threshold, best first.
func (s *Store) SearchCollections(query string, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT job_id, file, collection
		FROM job_files WHERE collection != ''`,
	)
	if err != nil {
		return nil, fmt.Errorf("search collections: %w", mapSQLiteError(err))
	}
	defer rows.Close()

	needle := normalizeName(query)

	var matches []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.JobID, &m.File, &m.Collection); err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		m.Score = float64(edlib.JaroWinklerSimilarity(needle, normalizeName(m.Collection)))
		if m.Score >= matchThreshold {
			matches = append(matches, m)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(matches, func(i, k int) bool { return matches[i].Score > matches[k].Score })
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// normalizeName prepares a collection name for matching: lowercased,
// accents stripped, separators collapsed to single spaces.
func normalizeName(s string) string {
	s = strings.ToLower(s)
	s = removeAccents(s)
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return strings.Join(strings.Fields(s), " ")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}
