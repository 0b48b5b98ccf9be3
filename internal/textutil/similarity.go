package textutil

// CosineSimilarity compares two fingerprints. Nil or empty fingerprints score 0.
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}
	small, large := a, b
	if len(small.grams) > len(large.grams) {
		small, large = large, small
	}
	var dot float64
	for g, c := range small.grams {
		dot += c * large.grams[g]
	}
	return dot / (a.norm * b.norm)
}

// Candidate is one entry offered to BestMatch. Names holds every spelling the
// entry answers to.
type Candidate struct {
	ID    int
	Names []string
}

// Match is the result of BestMatch.
type Match struct {
	ID    int
	Name  string
	Score float64
}

// BestMatch returns the candidate whose closest name scores highest against
// query. An exact match after Normalize wins outright. ok is false when no
// name reaches minScore.
func BestMatch(query string, candidates []Candidate, minScore float64) (Match, bool) {
	normalized := Normalize(query)
	if normalized == "" {
		return Match{}, false
	}
	queryFP := NewFingerprint(query)
	var best Match
	found := false
	for _, cand := range candidates {
		for _, name := range cand.Names {
			if name == "" {
				continue
			}
			if Normalize(name) == normalized {
				return Match{ID: cand.ID, Name: name, Score: 1}, true
			}
			score := CosineSimilarity(queryFP, NewFingerprint(name))
			if score >= minScore && (!found || score > best.Score) {
				best = Match{ID: cand.ID, Name: name, Score: score}
				found = true
			}
		}
	}
	return best, found
}
