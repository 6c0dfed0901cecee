package cluster

import (
	"fmt"
	"sort"

	"github.com/thebtf/quizdedup/pkg/models"
)

// DefaultMergeMinSize is the smallest cluster that gets an automatic
// merge recommendation; two-member clusters go to human review instead.
// The boundary is a policy constant with no recorded rationale from the
// system's owners, so it is kept configurable rather than baked in.
const DefaultMergeMinSize = 3

// Result pairs the duplicate clusters with the ids left unclustered.
type Result struct {
	Clusters  []models.DuplicateCluster
	UniqueIDs []string
}

// Build unions every duplicate-classified pair and groups items by their
// final root representative. Near-duplicate pairs never reach this
// function; they stay an advisory signal. Transitively connected items
// always land in one cluster even when their direct pairwise score never
// qualified as duplicate.
//
// mergeMinSize is the smallest cluster recommended for merge; values < 2
// fall back to DefaultMergeMinSize. Cluster ids and member lists are
// deterministic: members sort lexicographically and clusters order by
// their smallest member.
func Build(ids []string, duplicatePairs []models.SimilarityEdge, mergeMinSize int) Result {
	if mergeMinSize < 2 {
		mergeMinSize = DefaultMergeMinSize
	}

	uf := newUnionFind(ids)
	for _, pair := range duplicatePairs {
		uf.union(pair.IDA, pair.IDB)
	}

	groups := make(map[string][]string, len(ids))
	for _, id := range ids {
		root := uf.find(id)
		groups[root] = append(groups[root], id)
	}

	result := Result{}
	for _, members := range groups {
		if len(members) < 2 {
			result.UniqueIDs = append(result.UniqueIDs, members[0])
			continue
		}
		sort.Strings(members)

		recommendation := models.RecommendReview
		if len(members) >= mergeMinSize {
			recommendation = models.RecommendMerge
		}
		result.Clusters = append(result.Clusters, models.DuplicateCluster{
			MemberIDs:      members,
			Recommendation: recommendation,
		})
	}

	sort.Slice(result.Clusters, func(i, j int) bool {
		return result.Clusters[i].MemberIDs[0] < result.Clusters[j].MemberIDs[0]
	})
	for i := range result.Clusters {
		result.Clusters[i].ClusterID = fmt.Sprintf("cluster_%d", i+1)
	}
	sort.Strings(result.UniqueIDs)

	return result
}
