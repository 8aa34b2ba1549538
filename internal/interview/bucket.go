package interview

import "strings"

var (
	juniorKeywords     = []string{"intern", "co-op", "junior", "entry"}
	leadershipKeywords = []string{"manager", "lead", "director", "senior", "principal", "staff"}
)

// InferBucket classifies a role title into an experience bucket. The junior
// set is checked first, so "Junior Team Lead" still lands in JUNIOR.
func InferBucket(roleTitle string) Bucket {
	title := strings.ToLower(roleTitle)
	for _, kw := range juniorKeywords {
		if strings.Contains(title, kw) {
			return BucketJunior
		}
	}
	for _, kw := range leadershipKeywords {
		if strings.Contains(title, kw) {
			return BucketLeadership
		}
	}
	return BucketMid
}
