package stats

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat"

	"github.com/cirf-research/cirf-cli/internal/model"
)

const (
	maxClusters   = 5
	maxKMeansIter = 100
	clusterSeed   = 42
)

// ClusterProfile describes one k-means cluster of failure cases.
type ClusterProfile struct {
	ID                int                         `json:"id"`
	Size              int                         `json:"size"`
	AverageTotalScore float64                     `json:"average_total_score"`
	ComponentAverages map[model.Component]float64 `json:"component_averages"`
	TopCountries      []NameCount                 `json:"top_countries"`
	TopSectors        []NameCount                 `json:"top_sectors"`
}

// ClusterAnalysis is the result of k-means clustering over score vectors.
type ClusterAnalysis struct {
	NumClusters int              `json:"n_clusters"`
	Clusters    []ClusterProfile `json:"clusters"`
}

// Cluster partitions cases into k-means clusters over their 13-dimensional
// score vectors, with k = min(5, n/2). Cases without stored scores take a
// neutral 0.5 vector. Nil when fewer than four cases exist. The random
// source is fixed so repeated runs over the same table produce the same
// partition.
func (a *Aggregator) Cluster() *ClusterAnalysis {
	n := len(a.cases)
	if n < 4 {
		return nil
	}
	vectors := make([][]float64, n)
	for i := range a.cases {
		if a.cases[i].Scores != nil {
			vectors[i] = a.cases[i].Scores.Vector()
		} else {
			v := make([]float64, model.NumComponents)
			for j := range v {
				v[j] = model.ScoreMixed
			}
			vectors[i] = v
		}
	}
	k := n / 2
	if k > maxClusters {
		k = maxClusters
	}
	labels := kmeans(vectors, k)
	return a.profile(vectors, labels, k)
}

// kmeans runs Lloyd's algorithm with a fixed seed. Empty clusters keep their
// previous centroid.
func kmeans(vectors [][]float64, k int) []int {
	rng := rand.New(rand.NewPCG(clusterSeed, 0))
	n := len(vectors)
	dim := len(vectors[0])

	centroids := make([][]float64, k)
	for i, idx := range rng.Perm(n)[:k] {
		centroids[i] = append([]float64(nil), vectors[idx]...)
	}

	labels := make([]int, n)
	for iter := 0; iter < maxKMeansIter; iter++ {
		changed := false
		for i, v := range vectors {
			best, bestDist := 0, math.Inf(1)
			for c, centroid := range centroids {
				d := sqDist(v, centroid)
				if d < bestDist {
					best, bestDist = c, d
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}
		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dim)
		}
		for i, v := range vectors {
			c := labels[i]
			counts[c]++
			for j, x := range v {
				sums[c][j] += x
			}
		}
		for c := range centroids {
			if counts[c] == 0 {
				continue
			}
			for j := range centroids[c] {
				centroids[c][j] = sums[c][j] / float64(counts[c])
			}
		}
	}
	return labels
}

func sqDist(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func (a *Aggregator) profile(vectors [][]float64, labels []int, k int) *ClusterAnalysis {
	out := &ClusterAnalysis{NumClusters: k}
	comps := model.Components()
	for c := 0; c < k; c++ {
		var totals []float64
		sums := make([]float64, model.NumComponents)
		countries := make(map[string]int)
		sectors := make(map[string]int)
		size := 0
		for i := range a.cases {
			if labels[i] != c {
				continue
			}
			size++
			for j, x := range vectors[i] {
				sums[j] += x
			}
			if a.cases[i].Scores != nil {
				totals = append(totals, a.cases[i].Scores.TotalScore)
			}
			if a.cases[i].LocationCountry != "" {
				countries[a.cases[i].LocationCountry]++
			}
			if a.cases[i].Sector != "" {
				sectors[a.cases[i].Sector]++
			}
		}
		if size == 0 {
			continue
		}
		p := ClusterProfile{
			ID:                c,
			Size:              size,
			ComponentAverages: make(map[model.Component]float64, model.NumComponents),
			TopCountries:      topN(countries, 3),
			TopSectors:        topN(sectors, 3),
		}
		for j, comp := range comps {
			p.ComponentAverages[comp] = sums[j] / float64(size)
		}
		if len(totals) > 0 {
			p.AverageTotalScore = stat.Mean(totals, nil)
		}
		out.Clusters = append(out.Clusters, p)
	}
	return out
}
