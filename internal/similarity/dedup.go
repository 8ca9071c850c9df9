package similarity

import "github.com/avivsbt/NewsSim/internal/newsapi"

// Cluster is a representative article and the ids folded into it.
type Cluster struct {
	Representative newsapi.Article
	Duplicates     []string
	MaxSimilarity  float64
}

// DuplicateScore pairs a folded article with the representative's score for it.
type DuplicateScore struct {
	Article newsapi.Article
	Score   float64
}

type DedupResult struct {
	Clusters []Cluster
	Total    int
	Unique   int
	Removed  int
}

// Deduplicate groups articles in one greedy pass over list order. Each
// unprocessed article becomes a representative and absorbs every other
// unprocessed article it scores at least threshold against. Membership
// is tested against the representative only, so two duplicates in the same
// cluster may score below threshold against each other.
func (t *Table) Deduplicate(threshold float64) DedupResult {
	processed := make(map[string]bool, len(t.articles))
	clusters := make([]Cluster, 0, len(t.articles))

	for _, a := range t.articles {
		if processed[a.ID] {
			continue
		}

		c := Cluster{Representative: a, Duplicates: []string{}}
		for _, b := range t.articles {
			if b.ID == a.ID || processed[b.ID] {
				continue
			}
			score := bounded(a.SimilarityMap[b.ID])
			if score >= threshold {
				c.Duplicates = append(c.Duplicates, b.ID)
				processed[b.ID] = true
				if score > c.MaxSimilarity {
					c.MaxSimilarity = score
				}
			}
		}

		clusters = append(clusters, c)
		processed[a.ID] = true
	}

	return DedupResult{
		Clusters: clusters,
		Total:    len(t.articles),
		Unique:   len(clusters),
		Removed:  len(t.articles) - len(clusters),
	}
}

// DuplicateScores resolves the cluster's duplicate ids against t, in cluster
// order. Ids that t does not know are skipped.
func (c Cluster) DuplicateScores(t *Table) []DuplicateScore {
	out := make([]DuplicateScore, 0, len(c.Duplicates))
	for _, id := range c.Duplicates {
		a, ok := t.Article(id)
		if !ok {
			continue
		}
		out = append(out, DuplicateScore{
			Article: a,
			Score:   bounded(c.Representative.SimilarityMap[id]),
		})
	}
	return out
}

func (c Cluster) HasDuplicates() bool {
	return len(c.Duplicates) > 0
}
